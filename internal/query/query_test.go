package query

import (
	"testing"

	"github.com/afariz/mediashelf/internal/domain"
)

func sampleMovies() []domain.Item {
	return []domain.Item{
		{ID: "1", Kind: domain.KindMovie, Title: "The Godfather", Creator: "Francis Ford Coppola", Genre: "Crime"},
		{ID: "2", Kind: domain.KindMovie, Title: "Goodfellas", Creator: "Martin Scorsese", Genre: "Crime"},
		{ID: "3", Kind: domain.KindMovie, Title: "Spirited Away", Creator: "Hayao Miyazaki", Genre: "Animation"},
		{ID: "4", Kind: domain.KindMovie, Title: "Alien", Creator: "Ridley Scott", Genre: "Sci-Fi"},
		{ID: "5", Kind: domain.KindMovie, Title: "Blade Runner", Creator: "Ridley Scott", Genre: "Sci-Fi"},
		{ID: "6", Kind: domain.KindMovie, Title: "Heat", Creator: "Michael Mann", Genre: "Crime"},
		{ID: "7", Kind: domain.KindMovie, Title: "Arrival", Creator: "Denis Villeneuve", Genre: "Sci-Fi"},
	}
}

func TestFilter(t *testing.T) {
	movies := sampleMovies()

	tests := []struct {
		name    string
		term    string
		genre   string
		wantIDs []string
	}{
		{"empty filters match everything", "", GenreAll, []string{"1", "2", "3", "4", "5", "6", "7"}},
		{"title substring", "god", GenreAll, []string{"1"}},
		{"title substring is case-insensitive", "GOOD", GenreAll, []string{"2"}},
		{"creator substring", "scott", GenreAll, []string{"4", "5"}},
		{"genre exact match", "", "Crime", []string{"1", "2", "6"}},
		{"term and genre combine", "a", "Sci-Fi", []string{"4", "5", "7"}},
		{"genre is not substring-matched", "", "Sci", nil},
		{"no matches", "zzz", GenreAll, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(movies, tt.term, tt.genre)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("Filter() returned %d items, want %d", len(got), len(tt.wantIDs))
			}
			for i, item := range got {
				if item.ID != tt.wantIDs[i] {
					t.Errorf("Filter()[%d].ID = %s, want %s", i, item.ID, tt.wantIDs[i])
				}
			}
		})
	}
}

func TestFilterPreservesOrder(t *testing.T) {
	movies := sampleMovies()
	got := Filter(movies, "", "Crime")
	for i := 1; i < len(got); i++ {
		if got[i-1].ID >= got[i].ID {
			t.Errorf("filtered items out of snapshot order: %s before %s", got[i-1].ID, got[i].ID)
		}
	}
}

func TestPaginate(t *testing.T) {
	movies := sampleMovies() // 7 items

	tests := []struct {
		name     string
		page     int
		pageSize int
		wantIDs  []string
	}{
		{"first page", 1, 3, []string{"1", "2", "3"}},
		{"middle page", 2, 3, []string{"4", "5", "6"}},
		{"short last page", 3, 3, []string{"7"}},
		{"past the end", 4, 3, nil},
		{"page zero", 0, 3, nil},
		{"zero page size", 1, 0, nil},
		{"page size larger than set", 1, 50, []string{"1", "2", "3", "4", "5", "6", "7"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Paginate(movies, tt.page, tt.pageSize)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("Paginate(%d, %d) returned %d items, want %d",
					tt.page, tt.pageSize, len(got), len(tt.wantIDs))
			}
			for i, item := range got {
				if item.ID != tt.wantIDs[i] {
					t.Errorf("Paginate()[%d].ID = %s, want %s", i, item.ID, tt.wantIDs[i])
				}
			}
		})
	}
}

func TestPaginatePartitions(t *testing.T) {
	// Walking every page of a filtered set must yield each item exactly once.
	movies := sampleMovies()
	filtered := Filter(movies, "", GenreAll)
	total := TotalPages(len(filtered), DefaultPageSize)

	seen := make(map[string]int)
	for page := 1; page <= total; page++ {
		for _, item := range Paginate(filtered, page, DefaultPageSize) {
			seen[item.ID]++
		}
	}

	if len(seen) != len(filtered) {
		t.Fatalf("pages covered %d distinct items, want %d", len(seen), len(filtered))
	}
	for id, n := range seen {
		if n != 1 {
			t.Errorf("item %s appeared %d times across pages", id, n)
		}
	}
}

func TestGenreOptions(t *testing.T) {
	movies := sampleMovies()
	got := GenreOptions(movies)
	want := []string{GenreAll, "Crime", "Animation", "Sci-Fi"}

	if len(got) != len(want) {
		t.Fatalf("GenreOptions() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("GenreOptions()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestGenreOptionsSkipsEmptyGenre(t *testing.T) {
	items := []domain.Item{
		{ID: "1", Genre: ""},
		{ID: "2", Genre: "Crime"},
	}
	got := GenreOptions(items)
	if len(got) != 2 || got[0] != GenreAll || got[1] != "Crime" {
		t.Errorf("GenreOptions() = %v, want [all Crime]", got)
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		count, pageSize, want int
	}{
		{0, 3, 1},
		{1, 3, 1},
		{3, 3, 1},
		{4, 3, 2},
		{7, 3, 3},
		{9, 3, 3},
		{5, 0, 1},
	}
	for _, tt := range tests {
		if got := TotalPages(tt.count, tt.pageSize); got != tt.want {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", tt.count, tt.pageSize, got, tt.want)
		}
	}
}
