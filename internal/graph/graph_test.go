package graph

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestComponents_Empty(t *testing.T) {
	t.Parallel()
	if comps := New().Components(); comps != nil {
		t.Errorf("Components() on empty graph = %v, want nil", comps)
	}
}

func TestComponents(t *testing.T) {
	t.Parallel()
	g := New()
	g.AddEdge("b", "a", 0)
	g.AddEdge("c", "d", 0)
	g.AddEdge("d", "e", 0)
	g.AddNode("z")
	g.AddNode("a")

	got := g.Components()
	want := []Component{
		{ID: 0, Nodes: []string{"c", "d", "e"}},
		{ID: 1, Nodes: []string{"a", "b"}},
		{ID: 2, Nodes: []string{"z"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Components() mismatch (-want +got):\n%s", diff)
	}
	if g.Len() != 6 {
		t.Errorf("Len() = %d, want 6", g.Len())
	}
}

func TestComponents_SizeTieBreaksOnFirstNode(t *testing.T) {
	t.Parallel()
	g := New()
	g.AddEdge("x", "y", 0)
	g.AddEdge("m", "n", 0)

	got := g.Components()
	if len(got) != 2 {
		t.Fatalf("got %d components, want 2", len(got))
	}
	if got[0].Nodes[0] != "m" || got[1].Nodes[0] != "x" {
		t.Errorf("component order = %v, want m-component first", got)
	}
}

func TestSpanningForest(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		edges      []Edge
		nodes      []string
		wantWeight float64
		wantTrees  int
		wantEdges  int
	}{
		{
			name: "triangle",
			edges: []Edge{
				{From: "a", To: "b", Weight: 1},
				{From: "b", To: "c", Weight: 2},
				{From: "a", To: "c", Weight: 3},
			},
			wantWeight: 3,
			wantTrees:  1,
			wantEdges:  2,
		},
		{
			name: "two trees and an isolated node",
			edges: []Edge{
				{From: "a", To: "b", Weight: 4},
				{From: "c", To: "d", Weight: 1},
				{From: "d", To: "e", Weight: 2},
				{From: "c", To: "e", Weight: 0.5},
			},
			nodes:      []string{"q"},
			wantWeight: 4 + 1 + 0.5,
			wantTrees:  3,
			wantEdges:  3,
		},
		{
			name:       "self loop is skipped",
			edges:      []Edge{{From: "a", To: "a", Weight: -1}},
			wantWeight: 0,
			wantTrees:  1,
			wantEdges:  0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			g := New()
			for _, e := range tt.edges {
				g.AddEdge(e.From, e.To, e.Weight)
			}
			for _, n := range tt.nodes {
				g.AddNode(n)
			}
			f := g.SpanningForest()
			if f.Weight != tt.wantWeight {
				t.Errorf("Weight = %v, want %v", f.Weight, tt.wantWeight)
			}
			if f.Trees != tt.wantTrees {
				t.Errorf("Trees = %d, want %d", f.Trees, tt.wantTrees)
			}
			if len(f.Edges) != tt.wantEdges {
				t.Errorf("len(Edges) = %d, want %d", len(f.Edges), tt.wantEdges)
			}
		})
	}
}

func TestSpanningForest_EqualWeightsKeepInsertionOrder(t *testing.T) {
	t.Parallel()
	g := New()
	g.AddEdge("a", "b", 1)
	g.AddEdge("a", "c", 1)
	g.AddEdge("b", "c", 1)

	got := g.SpanningForest().Edges
	want := []Edge{{From: "a", To: "b", Weight: 1}, {From: "a", To: "c", Weight: 1}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Edges mismatch (-want +got):\n%s", diff)
	}
}
