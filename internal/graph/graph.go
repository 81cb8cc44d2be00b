// Package graph answers connectivity questions about undirected graphs of
// string-identified nodes using the reunion disjoint-set engine.
package graph

import (
	"sort"

	"github.com/papapumpkin/reunion"
)

// Edge is an undirected, optionally weighted connection between two nodes.
type Edge struct {
	From   string  `toml:"from"`
	To     string  `toml:"to"`
	Weight float64 `toml:"weight"`
}

// Graph is an undirected multigraph. Nodes referenced by edges are added
// implicitly.
type Graph struct {
	nodes map[string]struct{}
	order []string // insertion order, for stable iteration
	edges []Edge
}

// New creates an empty Graph.
func New() *Graph {
	return &Graph{nodes: make(map[string]struct{})}
}

// AddNode inserts id. Adding an existing node is a no-op.
func (g *Graph) AddNode(id string) {
	if _, ok := g.nodes[id]; ok {
		return
	}
	g.nodes[id] = struct{}{}
	g.order = append(g.order, id)
}

// AddEdge connects from and to with the given weight, adding either endpoint
// if it is not yet present.
func (g *Graph) AddEdge(from, to string, weight float64) {
	g.AddNode(from)
	g.AddNode(to)
	g.edges = append(g.edges, Edge{From: from, To: to, Weight: weight})
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.order)
}

// Edges returns a copy of the edges in insertion order.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// Component is one connected component.
type Component struct {
	// ID is assigned after sorting, starting at 0.
	ID int
	// Nodes is sorted lexicographically.
	Nodes []string
}

// Components partitions the graph into connected components. Isolated nodes
// form their own single-node components. Components are ordered by size
// (largest first), then by their first node.
func (g *Graph) Components() []Component {
	if len(g.order) == 0 {
		return nil
	}

	uf := reunion.WithCapacity[string](len(g.order))
	for _, e := range g.edges {
		uf.Union(e.From, e.To)
	}

	groups := make(map[string][]string)
	for _, id := range g.order {
		root := uf.Find(id)
		groups[root] = append(groups[root], id)
	}

	comps := make([]Component, 0, len(groups))
	for _, members := range groups {
		sort.Strings(members)
		comps = append(comps, Component{Nodes: members})
	}
	sort.Slice(comps, func(i, j int) bool {
		if len(comps[i].Nodes) != len(comps[j].Nodes) {
			return len(comps[i].Nodes) > len(comps[j].Nodes)
		}
		return comps[i].Nodes[0] < comps[j].Nodes[0]
	})
	for i := range comps {
		comps[i].ID = i
	}
	return comps
}

// Forest is a minimum spanning forest.
type Forest struct {
	Edges  []Edge
	Weight float64
	Trees  int
}

// SpanningForest computes a minimum spanning forest with Kruskal's
// algorithm. Edges of equal weight are considered in insertion order, and
// self-loops are never selected.
func (g *Graph) SpanningForest() Forest {
	edges := g.Edges()
	sort.SliceStable(edges, func(i, j int) bool {
		return edges[i].Weight < edges[j].Weight
	})

	uf := reunion.WithCapacity[string](len(g.order))
	var f Forest
	for _, e := range edges {
		if uf.Connected(e.From, e.To) {
			continue
		}
		uf.Union(e.From, e.To)
		f.Edges = append(f.Edges, e)
		f.Weight += e.Weight
	}
	// Each selected edge joins two trees.
	f.Trees = len(g.order) - len(f.Edges)
	return f
}
