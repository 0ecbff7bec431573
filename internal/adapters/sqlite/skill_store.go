// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/skilltrack/internal/adapters/codec"
	"github.com/example/skilltrack/internal/logger"
	"github.com/example/skilltrack/internal/ports/secondary"
)

// SkillStore implements secondary.SkillStore on the kv_store table.
type SkillStore struct {
	db  *sql.DB
	key string
	log *logger.Logger
}

// NewSkillStore creates a new SQLite skill store writing under key.
func NewSkillStore(db *sql.DB, key string, log *logger.Logger) *SkillStore {
	if key == "" {
		key = secondary.DefaultStorageKey
	}
	if log == nil {
		log = logger.Nop()
	}
	return &SkillStore{db: db, key: key, log: log.With("store", "sqlite", "key", key)}
}

// Save replaces the stored collection in a single statement.
func (s *SkillStore) Save(ctx context.Context, records []*secondary.SkillRecord) error {
	data, err := codec.Encode(records)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		s.key, data,
	)
	if err != nil {
		return fmt.Errorf("failed to save skills: %w", err)
	}

	return nil
}

// Load returns the stored collection, or found=false on first run or bad data.
func (s *SkillStore) Load(ctx context.Context) ([]*secondary.SkillRecord, bool, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, "SELECT value FROM kv_store WHERE key = ?", s.key).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to load skills: %w", err)
	}

	records, err := codec.Decode(data)
	if errors.Is(err, codec.ErrMalformed) {
		s.log.Warn("ignoring malformed stored skills", "error", err)
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	return records, true, nil
}

// Ensure SkillStore implements the interface.
var _ secondary.SkillStore = (*SkillStore)(nil)
