package query

import "github.com/afariz/mediashelf/internal/domain"

// State is the transient, session-scoped query input: one shared search
// term and genre filter, plus an independent page number per kind.
type State struct {
	SearchTerm string
	Genre      string
	pages      map[domain.Kind]int
}

// NewState returns the initial query state: empty search, all genres,
// page 1 everywhere.
func NewState() *State {
	return &State{
		Genre: GenreAll,
		pages: map[domain.Kind]int{
			domain.KindMovie: 1,
			domain.KindBook:  1,
		},
	}
}

// Page returns the current 1-based page for a kind.
func (s *State) Page(kind domain.Kind) int {
	if p, ok := s.pages[kind]; ok {
		return p
	}
	return 1
}

// SetPage moves a kind to the given page; pages below 1 clamp to 1.
func (s *State) SetPage(kind domain.Kind, page int) {
	if page < 1 {
		page = 1
	}
	s.pages[kind] = page
}

// SetSearchTerm updates the shared search term.
func (s *State) SetSearchTerm(term string) {
	s.SearchTerm = term
}

// SetGenre switches the genre filter and resets all page numbers, so a
// narrower result set never leaves the user stranded past its last page.
func (s *State) SetGenre(genre string) {
	if genre == "" {
		genre = GenreAll
	}
	if genre == s.Genre {
		return
	}
	s.Genre = genre
	for kind := range s.pages {
		s.pages[kind] = 1
	}
}
