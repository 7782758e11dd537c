package favorites

import (
	"log/slog"

	"github.com/afariz/mediashelf/internal/domain"
)

const storageKey = "set"

// ByteStore is the persisted-storage collaborator. Satisfied by the bbolt
// store and by in-memory fakes in tests.
type ByteStore interface {
	ReadBytes(key string) ([]byte, bool)
	WriteBytes(key string, data []byte) error
}

// Store owns the session's favorite set and its write-through persistence.
// Reads and toggles happen on the UI loop; no locking needed.
type Store struct {
	bytes  ByteStore
	logger *slog.Logger
	set    Set
}

// NewStore loads the persisted set and returns the store. Missing or
// malformed data yields an empty set; loading never fails the caller.
func NewStore(bytes ByteStore, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	st := &Store{bytes: bytes, logger: logger}
	st.set = st.Load()
	return st
}

// Load reads the persisted favorite set. On absence or corruption it
// returns an empty set.
func (st *Store) Load() Set {
	data, ok := st.bytes.ReadBytes(storageKey)
	if !ok {
		return NewSet()
	}
	set, err := unmarshalSet(data)
	if err != nil {
		st.logger.Warn("discarding corrupt favorites data", "error", err)
		return NewSet()
	}
	return set
}

// Current returns the in-memory set, which is authoritative for the
// session even when persistence fails.
func (st *Store) Current() Set {
	return st.set
}

// Persist writes the set through to storage. Failures are logged, not
// fatal.
func (st *Store) Persist(set Set) {
	data, err := set.marshal()
	if err != nil {
		st.logger.Error("failed to encode favorites", "error", err)
		return
	}
	if err := st.bytes.WriteBytes(storageKey, data); err != nil {
		st.logger.Warn("failed to persist favorites, continuing with in-memory set", "error", err)
	}
}

// Toggle flips membership for id, persists the result, and returns the new
// set.
func (st *Store) Toggle(kind domain.Kind, id string) Set {
	st.set = Toggle(st.set, kind, id)
	st.Persist(st.set)
	return st.set
}
