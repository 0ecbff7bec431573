// Package memory contains an in-process SkillStore for tests and ephemeral runs.
package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/example/skilltrack/internal/adapters/codec"
	"github.com/example/skilltrack/internal/ports/secondary"
)

// SkillStore keeps the encoded collection in a map keyed by storage key.
// Values go through the codec so behaviour matches the durable stores.
type SkillStore struct {
	mu     sync.Mutex
	key    string
	values map[string][]byte
}

// NewSkillStore creates an empty in-memory store.
func NewSkillStore(key string) *SkillStore {
	if key == "" {
		key = secondary.DefaultStorageKey
	}
	return &SkillStore{key: key, values: make(map[string][]byte)}
}

// Save replaces the stored value.
func (s *SkillStore) Save(ctx context.Context, records []*secondary.SkillRecord) error {
	data, err := codec.Encode(records)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[s.key] = data
	return nil
}

// Load returns the stored value, or found=false if none or malformed.
func (s *SkillStore) Load(ctx context.Context) ([]*secondary.SkillRecord, bool, error) {
	s.mu.Lock()
	data, ok := s.values[s.key]
	s.mu.Unlock()
	if !ok {
		return nil, false, nil
	}

	records, err := codec.Decode(data)
	if errors.Is(err, codec.ErrMalformed) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return records, true, nil
}

// SetRaw stores bytes under the store's key without encoding them.
func (s *SkillStore) SetRaw(data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[s.key] = data
}

// Raw returns the encoded bytes currently stored, if any.
func (s *SkillStore) Raw() ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.values[s.key]
	return data, ok
}

// Ensure SkillStore implements the interface.
var _ secondary.SkillStore = (*SkillStore)(nil)
