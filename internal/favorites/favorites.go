// Package favorites holds the persisted favorite-set: two id sets, one per
// catalog kind, owned entirely by this client. The set outlives any
// collection snapshot and may reference ids that no longer exist remotely;
// views treat such dangling favorites as simply absent.
package favorites

import (
	"encoding/json"
	"sort"

	"github.com/afariz/mediashelf/internal/domain"
)

// Set is an immutable favorite set. Toggle returns a new Set; the zero
// value is not usable, construct with NewSet.
type Set struct {
	byKind map[domain.Kind]map[string]struct{}
}

// NewSet returns an empty favorite set.
func NewSet() Set {
	return Set{byKind: map[domain.Kind]map[string]struct{}{
		domain.KindMovie: {},
		domain.KindBook:  {},
	}}
}

// Contains reports membership in O(1).
func (s Set) Contains(kind domain.Kind, id string) bool {
	_, ok := s.byKind[kind][id]
	return ok
}

// Count returns the number of favorites of a kind.
func (s Set) Count(kind domain.Kind) int {
	return len(s.byKind[kind])
}

// IDs returns the favorited ids of a kind in sorted order.
func (s Set) IDs(kind domain.Kind) []string {
	ids := make([]string, 0, len(s.byKind[kind]))
	for id := range s.byKind[kind] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Toggle returns a new set with id added if absent, removed if present.
// It is a pure function of (set, kind, id) and its own inverse; the caller
// is responsible for persisting the result.
func Toggle(s Set, kind domain.Kind, id string) Set {
	next := NewSet()
	for k, ids := range s.byKind {
		for v := range ids {
			next.byKind[k][v] = struct{}{}
		}
	}
	if _, ok := next.byKind[kind][id]; ok {
		delete(next.byKind[kind], id)
	} else {
		next.byKind[kind][id] = struct{}{}
	}
	return next
}

// persistedSet is the stable on-disk format, matching the shape the
// favorites were historically stored in ({"movies":[...],"books":[...]}).
type persistedSet struct {
	Movies []string `json:"movies"`
	Books  []string `json:"books"`
}

func (s Set) marshal() ([]byte, error) {
	return json.Marshal(persistedSet{
		Movies: s.IDs(domain.KindMovie),
		Books:  s.IDs(domain.KindBook),
	})
}

func unmarshalSet(data []byte) (Set, error) {
	var p persistedSet
	if err := json.Unmarshal(data, &p); err != nil {
		return NewSet(), err
	}
	s := NewSet()
	for _, id := range p.Movies {
		s.byKind[domain.KindMovie][id] = struct{}{}
	}
	for _, id := range p.Books {
		s.byKind[domain.KindBook][id] = struct{}{}
	}
	return s, nil
}

// Equal reports whether two sets hold the same memberships.
func (s Set) Equal(other Set) bool {
	for _, kind := range domain.AllKinds() {
		if len(s.byKind[kind]) != len(other.byKind[kind]) {
			return false
		}
		for id := range s.byKind[kind] {
			if !other.Contains(kind, id) {
				return false
			}
		}
	}
	return true
}
