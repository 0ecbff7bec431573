// Package filesystem contains filesystem-based adapter implementations.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/example/skilltrack/internal/adapters/codec"
	"github.com/example/skilltrack/internal/logger"
	"github.com/example/skilltrack/internal/ports/secondary"
)

// SkillStore implements secondary.SkillStore as one JSON file per key.
type SkillStore struct {
	dir string
	key string
	log *logger.Logger
}

// NewSkillStore creates a filesystem skill store rooted at dir.
// If dir is empty, defaults to ~/.skilltrack.
func NewSkillStore(dir, key string, log *logger.Logger) (*SkillStore, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dir = filepath.Join(home, ".skilltrack")
	}
	if key == "" {
		key = secondary.DefaultStorageKey
	}
	if log == nil {
		log = logger.Nop()
	}

	return &SkillStore{
		dir: dir,
		key: key,
		log: log.With("store", "file", "key", key),
	}, nil
}

// Path returns the file holding the collection.
func (s *SkillStore) Path() string {
	return filepath.Join(s.dir, s.key+".json")
}

// Save writes the collection to a temp file and renames it over the old one,
// so readers never observe a partial write.
func (s *SkillStore) Save(ctx context.Context, records []*secondary.SkillRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := codec.Encode(records)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, s.key+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write skills: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write skills: %w", err)
	}

	if err := os.Rename(tmpName, s.Path()); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace skills file: %w", err)
	}

	return nil
}

// Load reads the collection file. A missing or malformed file reports found=false.
func (s *SkillStore) Load(ctx context.Context) ([]*secondary.SkillRecord, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	data, err := os.ReadFile(s.Path())
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read skills: %w", err)
	}

	records, err := codec.Decode(data)
	if errors.Is(err, codec.ErrMalformed) {
		s.log.Warn("ignoring malformed skills file", "path", s.Path(), "error", err)
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	return records, true, nil
}

// Ensure SkillStore implements the interface.
var _ secondary.SkillStore = (*SkillStore)(nil)
