package search

import (
	"io"
	"log/slog"
	"testing"

	"github.com/afariz/mediashelf/internal/domain"
)

type fakeSnapshots struct {
	byKind map[domain.Kind][]domain.Item
}

func (f fakeSnapshots) Snapshot(kind domain.Kind) []domain.Item {
	return f.byKind[kind]
}

func newTestService() *Service {
	cache := fakeSnapshots{byKind: map[domain.Kind][]domain.Item{
		domain.KindMovie: {
			{ID: "1", Kind: domain.KindMovie, Title: "Blade Runner", Creator: "Ridley Scott"},
			{ID: "2", Kind: domain.KindMovie, Title: "Heat", Creator: "Michael Mann"},
		},
		domain.KindBook: {
			{ID: "9", Kind: domain.KindBook, Title: "Dune", Creator: "Frank Herbert"},
			{ID: "10", Kind: domain.KindBook, Title: "Neuromancer", Creator: "William Gibson"},
		},
	}}
	return NewService(cache, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestSearchMatchesTitlesAcrossKinds(t *testing.T) {
	svc := newTestService()

	results := svc.Search("ne")

	var ids []string
	for _, r := range results {
		ids = append(ids, r.Item.ID)
	}
	// "ne" matches Blade Runner, Dune, and Neuromancer but not Heat.
	want := map[string]bool{"1": true, "9": true, "10": true}
	if len(ids) != len(want) {
		t.Fatalf("result ids = %v, want 3 matches", ids)
	}
	for _, id := range ids {
		if !want[id] {
			t.Errorf("unexpected match %s", id)
		}
	}
}

func TestSearchMatchesCreator(t *testing.T) {
	svc := newTestService()

	results := svc.Search("gibson")
	if len(results) != 1 || results[0].Item.ID != "10" {
		t.Fatalf("results = %v, want Neuromancer via its author", results)
	}
}

func TestSearchRanksCloserMatchesFirst(t *testing.T) {
	svc := newTestService()

	results := svc.Search("dune")
	if len(results) == 0 {
		t.Fatal("expected a match for dune")
	}
	if results[0].Item.ID != "9" {
		t.Errorf("best match = %s, want the exact title hit", results[0].Item.ID)
	}
	for i := 1; i < len(results); i++ {
		if results[i-1].Rank > results[i].Rank {
			t.Errorf("results out of rank order at %d", i)
		}
	}
}

func TestSearchEmptyTerm(t *testing.T) {
	svc := newTestService()
	if results := svc.Search("   "); results != nil {
		t.Errorf("blank query should return nothing, got %v", results)
	}
}

func TestSearchCaseInsensitive(t *testing.T) {
	svc := newTestService()
	if results := svc.Search("HEAT"); len(results) != 1 || results[0].Item.ID != "2" {
		t.Errorf("results = %v, want Heat regardless of case", results)
	}
}
