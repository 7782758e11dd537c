// Package query derives filtered, paginated views from a collection
// snapshot. Everything here is pure: no I/O, no retained state, recomputed
// from scratch on every render tick. Collections are small enough that a
// full rescan is correct-by-construction.
package query

import (
	"strings"

	"github.com/afariz/mediashelf/internal/domain"
)

// GenreAll is the genre filter value that matches every item.
const GenreAll = "all"

// DefaultPageSize is the catalog page size unless configured otherwise.
const DefaultPageSize = 3

// Filter keeps an item iff the search term is a case-insensitive substring
// of its title or creator, and the genre filter is GenreAll or an exact
// genre match. An empty term matches everything.
func Filter(snapshot []domain.Item, term, genre string) []domain.Item {
	term = strings.ToLower(term)
	var out []domain.Item
	for _, item := range snapshot {
		if term != "" &&
			!strings.Contains(strings.ToLower(item.Title), term) &&
			!strings.Contains(strings.ToLower(item.Creator), term) {
			continue
		}
		if genre != GenreAll && item.Genre != genre {
			continue
		}
		out = append(out, item)
	}
	return out
}

// Paginate returns the 1-based page of the given size. An out-of-range
// page yields an empty slice rather than erroring.
func Paginate(items []domain.Item, page, pageSize int) []domain.Item {
	if page < 1 || pageSize < 1 {
		return nil
	}
	start := (page - 1) * pageSize
	if start >= len(items) {
		return nil
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// GenreOptions returns GenreAll followed by the distinct genres present in
// the snapshot, in order of first appearance.
func GenreOptions(snapshot []domain.Item) []string {
	options := []string{GenreAll}
	seen := make(map[string]bool)
	for _, item := range snapshot {
		if item.Genre == "" || seen[item.Genre] {
			continue
		}
		seen[item.Genre] = true
		options = append(options, item.Genre)
	}
	return options
}

// TotalPages returns ceil(count/pageSize), minimum 1 so an empty result
// still renders as "page 1 of 1".
func TotalPages(count, pageSize int) int {
	if pageSize < 1 {
		return 1
	}
	pages := (count + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}
