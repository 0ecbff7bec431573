package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":  zapcore.DebugLevel,
		" INFO ": zapcore.InfoLevel,
		"warn":   zapcore.WarnLevel,
		"error":  zapcore.ErrorLevel,
		"":       zapcore.WarnLevel,
		"loud":   zapcore.WarnLevel,
	}
	for in, want := range tests {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNew(t *testing.T) {
	for _, mode := range []string{"dev", "prod"} {
		l, err := New(mode, "debug")
		if err != nil {
			t.Fatalf("New(%s) failed: %v", mode, err)
		}
		if !l.SugaredLogger.Desugar().Core().Enabled(zapcore.DebugLevel) {
			t.Errorf("%s logger should have debug enabled", mode)
		}
		l.With("component", "test").Debug("hello", "k", "v")
	}
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Error("discarded", "k", 1)
	l.Sync()
}
