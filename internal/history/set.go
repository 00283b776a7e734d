// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import "sort"

// Set holds catalog identifiers already delivered to the user.
type Set map[string]struct{}

// NewSet returns a set containing ids.
func NewSet(ids ...string) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// Has reports whether id is in the set.
func (s Set) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Add inserts id. Empty identifiers are ignored.
func (s Set) Add(id string) {
	if id == "" {
		return
	}
	s[id] = struct{}{}
}

// Len returns the number of identifiers.
func (s Set) Len() int { return len(s) }

// Clone returns an independent copy. Cloning a nil set yields an empty set.
func (s Set) Clone() Set {
	c := make(Set, len(s))
	for id := range s {
		c[id] = struct{}{}
	}
	return c
}

// IDs returns the identifiers in ascending order.
func (s Set) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
