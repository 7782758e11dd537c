package favorites

import (
	"testing"

	"github.com/afariz/mediashelf/internal/domain"
)

func TestToggleAddsAndRemoves(t *testing.T) {
	s := NewSet()

	s = Toggle(s, domain.KindMovie, "5")
	if !s.Contains(domain.KindMovie, "5") {
		t.Fatal("expected movie 5 to be favorited after toggle")
	}
	if s.Contains(domain.KindBook, "5") {
		t.Error("book 5 should not be favorited; kinds are independent")
	}

	s = Toggle(s, domain.KindMovie, "5")
	if s.Contains(domain.KindMovie, "5") {
		t.Error("expected movie 5 to be removed after second toggle")
	}
}

func TestToggleIsItsOwnInverse(t *testing.T) {
	base := Toggle(Toggle(NewSet(), domain.KindMovie, "1"), domain.KindBook, "9")

	twice := Toggle(Toggle(base, domain.KindMovie, "5"), domain.KindMovie, "5")
	if !base.Equal(twice) {
		t.Error("toggling the same id twice should restore the original set")
	}
}

func TestToggleDoesNotMutateInput(t *testing.T) {
	base := Toggle(NewSet(), domain.KindMovie, "1")
	_ = Toggle(base, domain.KindMovie, "2")

	if base.Contains(domain.KindMovie, "2") {
		t.Error("Toggle mutated its input set")
	}
	if base.Count(domain.KindMovie) != 1 {
		t.Errorf("input set count = %d, want 1", base.Count(domain.KindMovie))
	}
}

func TestIDsSorted(t *testing.T) {
	s := NewSet()
	for _, id := range []string{"9", "2", "7", "1"} {
		s = Toggle(s, domain.KindBook, id)
	}

	ids := s.IDs(domain.KindBook)
	want := []string{"1", "2", "7", "9"}
	if len(ids) != len(want) {
		t.Fatalf("IDs() = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("IDs()[%d] = %s, want %s", i, ids[i], want[i])
		}
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	s := Toggle(Toggle(Toggle(NewSet(), domain.KindMovie, "5"), domain.KindMovie, "2"), domain.KindBook, "11")

	data, err := s.marshal()
	if err != nil {
		t.Fatalf("marshal() error: %v", err)
	}

	got, err := unmarshalSet(data)
	if err != nil {
		t.Fatalf("unmarshalSet() error: %v", err)
	}
	if !s.Equal(got) {
		t.Errorf("round-tripped set differs: got %v movies %v books, want %v / %v",
			got.IDs(domain.KindMovie), got.IDs(domain.KindBook),
			s.IDs(domain.KindMovie), s.IDs(domain.KindBook))
	}
}

func TestUnmarshalStableFormat(t *testing.T) {
	// The persisted shape predates this implementation and must keep parsing.
	data := []byte(`{"movies":["5"],"books":[]}`)
	s, err := unmarshalSet(data)
	if err != nil {
		t.Fatalf("unmarshalSet() error: %v", err)
	}
	if !s.Contains(domain.KindMovie, "5") {
		t.Error("expected movie 5 from persisted data")
	}
	if s.Count(domain.KindBook) != 0 {
		t.Errorf("book count = %d, want 0", s.Count(domain.KindBook))
	}
}

func TestUnmarshalCorruptData(t *testing.T) {
	s, err := unmarshalSet([]byte("{not json"))
	if err == nil {
		t.Fatal("expected error for corrupt data")
	}
	if s.Count(domain.KindMovie) != 0 || s.Count(domain.KindBook) != 0 {
		t.Error("corrupt data should yield an empty set")
	}
}
