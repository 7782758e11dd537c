// Package search provides the cross-collection quick search behind the
// omnibar. It matches fuzzily against title and creator over the cached
// snapshots; the catalog views keep their strict substring filtering.
package search

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/afariz/mediashelf/internal/domain"
)

// Snapshots is the read surface the searcher needs from the collection
// cache.
type Snapshots interface {
	Snapshot(kind domain.Kind) []domain.Item
}

// Result is a matched item with its rank (lower is better).
type Result struct {
	Item domain.Item
	Rank int
}

// Service searches both cached collections.
type Service struct {
	cache  Snapshots
	logger *slog.Logger
}

// NewService creates a quick-search service over the collection cache.
func NewService(cache Snapshots, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{cache: cache, logger: logger}
}

// Search fuzzy-matches the query against the title and creator of every
// cached item of both kinds and returns results ranked best-first.
func (s *Service) Search(term string) []Result {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil
	}

	var results []Result
	for _, kind := range domain.AllKinds() {
		for _, item := range s.cache.Snapshot(kind) {
			rank := bestRank(term, item)
			if rank < 0 {
				continue
			}
			results = append(results, Result{Item: item, Rank: rank})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Rank < results[j].Rank
	})

	s.logger.Debug("quick search", "term", term, "results", len(results))
	return results
}

// bestRank returns the better of the title and creator match distances,
// or -1 when neither matches.
func bestRank(term string, item domain.Item) int {
	rank := fuzzy.RankMatchNormalizedFold(term, item.Title)
	if creatorRank := fuzzy.RankMatchNormalizedFold(term, item.Creator); creatorRank >= 0 {
		if rank < 0 || creatorRank < rank {
			rank = creatorRank
		}
	}
	return rank
}
