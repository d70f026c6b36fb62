package factions

import (
	"fmt"
	"sort"
	"strings"
)

// Set is an unordered collection of faction ids.
type Set map[int]bool

// NewSet creates a set from the given faction ids.
func NewSet(ids ...int) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[id] = true
	}
	return s
}

// Clone creates a copy of the set.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	for id := range s {
		out[id] = true
	}
	return out
}

// Contains returns true if the faction id is in the set.
func (s Set) Contains(id int) bool {
	return s[id]
}

// Intersect returns the factions present in both sets.
func (s Set) Intersect(other Set) Set {
	out := make(Set)
	for id := range s {
		if other[id] {
			out[id] = true
		}
	}
	return out
}

// Union returns the factions present in either set.
func (s Set) Union(other Set) Set {
	out := s.Clone()
	for id := range other {
		out[id] = true
	}
	return out
}

// Subtract returns the factions of s that are not in other.
func (s Set) Subtract(other Set) Set {
	out := make(Set)
	for id := range s {
		if !other[id] {
			out[id] = true
		}
	}
	return out
}

// Sorted returns the faction ids in ascending order.
func (s Set) Sorted() []int {
	ids := make([]int, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// String renders the set as a stable, human-readable list.
func (s Set) String() string {
	ids := s.Sorted()
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("%d", id)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// Counter maps faction id to a strictly positive count of active
// occurrences. A faction absent from the map is inactive; entries are
// pruned the moment they reach zero.
type Counter map[int]int

// NewCounter creates an empty counter.
func NewCounter() Counter {
	return make(Counter)
}

// Clone creates a copy of the counter.
func (c Counter) Clone() Counter {
	out := make(Counter, len(c))
	for id, n := range c {
		out[id] = n
	}
	return out
}

// Get returns the count for the faction, zero if inactive.
func (c Counter) Get(id int) int {
	return c[id]
}

// Adjust applies a signed delta to every faction in the set.
// Entries that drop to zero or below are deleted.
func (c Counter) Adjust(set Set, delta int) {
	for id := range set {
		c[id] += delta
		if c[id] <= 0 {
			delete(c, id)
		}
	}
}

// Merge adds every entry of other into the counter.
func (c Counter) Merge(other Counter) {
	for id, n := range other {
		c[id] += n
		if c[id] <= 0 {
			delete(c, id)
		}
	}
}
