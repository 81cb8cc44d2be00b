// Package reunion implements a disjoint-set (union-find) data structure
// with path compression and union by rank. Elements of any comparable type
// are registered lazily the first time they are passed to Find or Union.
//
// A UnionFind is not safe for concurrent use. Every operation that observes
// group membership may also compress paths, so callers that need a
// non-mutating query should work on a Clone.
package reunion

import (
	"fmt"
	"sort"
	"strings"
)

// UnionFind partitions elements of type N into disjoint groups.
//
// The parent map is the forest: an element mapped to itself is a root.
// The rank map holds an upper bound on tree height for every element that
// has been a union operand; it decides merge direction only.
type UnionFind[N comparable] struct {
	size   int
	parent map[N]N
	rank   map[N]int
}

// New creates an empty UnionFind.
func New[N comparable]() *UnionFind[N] {
	return WithCapacity[N](0)
}

// WithCapacity creates an empty UnionFind whose internal maps are sized for
// capacity elements. The capacity also seeds the value reported by Size;
// it does not register any elements. Negative values are treated as 0.
func WithCapacity[N comparable](capacity int) *UnionFind[N] {
	if capacity < 0 {
		capacity = 0
	}
	return &UnionFind[N]{
		size:   capacity,
		parent: make(map[N]N, capacity),
		rank:   make(map[N]int, capacity),
	}
}

// Size returns the capacity hint plus the number of distinct elements
// registered by Find or Union. It is not the number of groups.
func (uf *UnionFind[N]) Size() int {
	return uf.size
}

// Find returns the representative of the group containing node. An unseen
// node is registered as its own singleton group. Every node on the path to
// the root is repointed directly at the root.
func (uf *UnionFind[N]) Find(node N) N {
	p, ok := uf.parent[node]
	if !ok {
		uf.parent[node] = node
		uf.size++
		return node
	}
	if p == node {
		return node
	}

	root := p
	for {
		next := uf.parent[root]
		if next == root {
			break
		}
		root = next
	}

	// Second pass: compress.
	for node != root {
		next := uf.parent[node]
		uf.parent[node] = root
		node = next
	}
	return root
}

// Union merges the groups containing x and y. Both roots receive a rank
// entry even when they are already the same group. On equal rank, x's root
// is attached under y's root and y's root is promoted.
func (uf *UnionFind[N]) Union(x, y N) {
	xRoot := uf.Find(x)
	yRoot := uf.Find(y)

	if _, ok := uf.rank[xRoot]; !ok {
		uf.rank[xRoot] = 0
	}
	if _, ok := uf.rank[yRoot]; !ok {
		uf.rank[yRoot] = 0
	}
	if xRoot == yRoot {
		return
	}

	xRank, yRank := uf.rank[xRoot], uf.rank[yRoot]
	switch {
	case xRank > yRank:
		uf.parent[yRoot] = xRoot
	case xRank < yRank:
		uf.parent[xRoot] = yRoot
	default:
		uf.parent[xRoot] = yRoot
		uf.rank[yRoot] = yRank + 1
	}
}

// Connected reports whether x and y belong to the same group.
func (uf *UnionFind[N]) Connected(x, y N) bool {
	return uf.Find(x) == uf.Find(y)
}

// Ranked returns the elements that hold a rank entry, that is, every element
// that has been the root of a union operand. Order is unspecified.
func (uf *UnionFind[N]) Ranked() []N {
	out := make([]N, 0, len(uf.rank))
	for n := range uf.rank {
		out = append(out, n)
	}
	return out
}

// Subsets returns the current partition restricted to elements that hold a
// rank entry. Elements only ever seen by Find are not reported. The order of
// the returned sets is unspecified.
func (uf *UnionFind[N]) Subsets() []Set[N] {
	groups := make(map[N]Set[N])
	for _, n := range uf.Ranked() {
		root := uf.Find(n)
		s, ok := groups[root]
		if !ok {
			s = make(Set[N])
			groups[root] = s
		}
		s[n] = struct{}{}
	}

	out := make([]Set[N], 0, len(groups))
	for _, s := range groups {
		out = append(out, s)
	}
	return out
}

// TakeSubsets returns the same grouping as Subsets and then resets uf to an
// empty structure with size 0.
func (uf *UnionFind[N]) TakeSubsets() []Set[N] {
	out := uf.Subsets()
	uf.size = 0
	uf.parent = make(map[N]N)
	uf.rank = make(map[N]int)
	return out
}

// Clone returns an independent copy with identical mappings and size.
func (uf *UnionFind[N]) Clone() *UnionFind[N] {
	c := &UnionFind[N]{
		size:   uf.size,
		parent: make(map[N]N, len(uf.parent)),
		rank:   make(map[N]int, len(uf.rank)),
	}
	for k, v := range uf.parent {
		c.parent[k] = v
	}
	for k, v := range uf.rank {
		c.rank[k] = v
	}
	return c
}

// Equal reports whether uf and other have the same size and identical
// parent and rank mappings. Two structures that induce the same partition
// through differently shaped trees are not Equal; use SamePartition for that.
func (uf *UnionFind[N]) Equal(other *UnionFind[N]) bool {
	if uf == nil || other == nil {
		return uf == other
	}
	if uf.size != other.size || len(uf.parent) != len(other.parent) || len(uf.rank) != len(other.rank) {
		return false
	}
	for k, v := range uf.parent {
		if ov, ok := other.parent[k]; !ok || ov != v {
			return false
		}
	}
	for k, v := range uf.rank {
		if ov, ok := other.rank[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// SamePartition reports whether uf and other group their registered elements
// identically, regardless of tree shape, rank or size. Neither receiver is
// mutated.
func (uf *UnionFind[N]) SamePartition(other *UnionFind[N]) bool {
	if uf == nil || other == nil {
		return uf == other
	}
	if len(uf.parent) != len(other.parent) {
		return false
	}
	a, b := uf.Clone(), other.Clone()

	// Map each of a's roots to the root b assigns the same element; the
	// mapping must be a bijection for the partitions to agree.
	forward := make(map[N]N, len(a.parent))
	backward := make(map[N]N, len(a.parent))
	for n := range uf.parent {
		if _, ok := b.parent[n]; !ok {
			return false
		}
		ra, rb := a.Find(n), b.Find(n)
		if got, ok := forward[ra]; ok && got != rb {
			return false
		}
		if got, ok := backward[rb]; ok && got != ra {
			return false
		}
		forward[ra] = rb
		backward[rb] = ra
	}
	return true
}

// String renders a summary of the size and the non-trivial subsets. It
// operates on a clone, so the receiver's tree shape is left untouched.
func (uf *UnionFind[N]) String() string {
	subsets := uf.Clone().Subsets()
	rendered := make([]string, len(subsets))
	for i, s := range subsets {
		rendered[i] = s.String()
	}
	sort.Strings(rendered)
	return fmt.Sprintf("<UnionFind size=%d, non_trivial_subsets=[%s]>", uf.size, strings.Join(rendered, " "))
}
