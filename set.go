package reunion

import (
	"fmt"
	"sort"
	"strings"
)

// Set is one group of a partition.
type Set[N comparable] map[N]struct{}

// NewSet returns a Set holding members.
func NewSet[N comparable](members ...N) Set[N] {
	s := make(Set[N], len(members))
	for _, m := range members {
		s[m] = struct{}{}
	}
	return s
}

// Contains reports whether n is in s.
func (s Set[N]) Contains(n N) bool {
	_, ok := s[n]
	return ok
}

// Len returns the number of members.
func (s Set[N]) Len() int {
	return len(s)
}

// Members returns the members of s in unspecified order.
func (s Set[N]) Members() []N {
	out := make([]N, 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	return out
}

// Equal reports whether s and other hold exactly the same members.
func (s Set[N]) Equal(other Set[N]) bool {
	if len(s) != len(other) {
		return false
	}
	for n := range s {
		if !other.Contains(n) {
			return false
		}
	}
	return true
}

// String renders the members sorted by their formatted value, e.g. "{1 2}".
func (s Set[N]) String() string {
	parts := make([]string, 0, len(s))
	for n := range s {
		parts = append(parts, fmt.Sprint(n))
	}
	sort.Strings(parts)
	return "{" + strings.Join(parts, " ") + "}"
}

// ContainsSet reports whether sets holds a set equal to want.
func ContainsSet[N comparable](sets []Set[N], want Set[N]) bool {
	for _, s := range sets {
		if s.Equal(want) {
			return true
		}
	}
	return false
}
