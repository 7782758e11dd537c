package favorites

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/afariz/mediashelf/internal/domain"
)

// fakeByteStore is an in-memory ByteStore with an optional write failure.
type fakeByteStore struct {
	data     map[string][]byte
	writeErr error
	writes   int
}

func newFakeByteStore() *fakeByteStore {
	return &fakeByteStore{data: make(map[string][]byte)}
}

func (f *fakeByteStore) ReadBytes(key string) ([]byte, bool) {
	data, ok := f.data[key]
	return data, ok
}

func (f *fakeByteStore) WriteBytes(key string, data []byte) error {
	f.writes++
	if f.writeErr != nil {
		return f.writeErr
	}
	f.data[key] = data
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestStoreLoadsPersistedSet(t *testing.T) {
	bytes := newFakeByteStore()
	bytes.data[storageKey] = []byte(`{"movies":["3"],"books":["8"]}`)

	st := NewStore(bytes, discardLogger())

	if !st.Current().Contains(domain.KindMovie, "3") {
		t.Error("expected movie 3 loaded from storage")
	}
	if !st.Current().Contains(domain.KindBook, "8") {
		t.Error("expected book 8 loaded from storage")
	}
}

func TestStoreCorruptDataYieldsEmptySet(t *testing.T) {
	bytes := newFakeByteStore()
	bytes.data[storageKey] = []byte("garbage")

	st := NewStore(bytes, discardLogger())

	for _, kind := range domain.AllKinds() {
		if st.Current().Count(kind) != 0 {
			t.Errorf("count(%s) = %d, want 0 after corrupt load", kind, st.Current().Count(kind))
		}
	}
}

func TestStoreTogglePersists(t *testing.T) {
	bytes := newFakeByteStore()
	st := NewStore(bytes, discardLogger())

	st.Toggle(domain.KindMovie, "5")

	if bytes.writes != 1 {
		t.Fatalf("writes = %d, want 1", bytes.writes)
	}
	reloaded := NewStore(bytes, discardLogger())
	if !reloaded.Current().Contains(domain.KindMovie, "5") {
		t.Error("toggled favorite did not survive a reload")
	}
}

func TestStorePersistFailureKeepsInMemorySet(t *testing.T) {
	bytes := newFakeByteStore()
	bytes.writeErr = errors.New("disk full")

	st := NewStore(bytes, discardLogger())
	set := st.Toggle(domain.KindBook, "7")

	if !set.Contains(domain.KindBook, "7") {
		t.Error("in-memory set must reflect the toggle even when persistence fails")
	}
	if !st.Current().Contains(domain.KindBook, "7") {
		t.Error("Current() must reflect the toggle even when persistence fails")
	}
}
