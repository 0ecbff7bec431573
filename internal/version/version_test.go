package version

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	origCommit, origBuild := Commit, BuildTime
	defer func() { Commit, BuildTime = origCommit, origBuild }()

	Commit = "0123456789abcdef"
	BuildTime = "2024-05-01T12:00:00Z"

	got := String()
	want := "skilltrack dev (commit: 0123456, built: 2024-05-01T12:00:00Z)"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestShortCommit(t *testing.T) {
	origCommit := Commit
	defer func() { Commit = origCommit }()

	Commit = "abc"
	if got := shortCommit(); got != "abc" {
		t.Errorf("shortCommit() = %q, want %q", got, "abc")
	}

	Commit = "unknown"
	if !strings.HasPrefix(String(), "skilltrack dev (commit: unknown") {
		t.Errorf("unexpected version string %q", String())
	}
}
