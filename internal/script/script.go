// Package script loads TOML workload documents that describe a sequence of
// unions, optional lookups, weighted edges, and the partition expected
// afterwards, and applies them to a fresh disjoint-set engine.
package script

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/papapumpkin/reunion"
	"github.com/papapumpkin/reunion/internal/graph"
)

// Sentinel errors for script loading and checking.
var (
	// ErrMalformed indicates the document parsed but is structurally invalid.
	ErrMalformed = errors.New("malformed script")
	// ErrExpectation indicates the resulting partition differs from the expected groups.
	ErrExpectation = errors.New("partition does not match expectation")
)

// Expect is one expected group of the final partition.
type Expect struct {
	Group []string `toml:"group"`
}

// Script is the parsed form of a workload document.
type Script struct {
	Name     string       `toml:"name"`
	Capacity int          `toml:"capacity"`
	Unions   [][]string   `toml:"unions"`
	Finds    []string     `toml:"finds"`
	Edges    []graph.Edge `toml:"edge"`
	Expect   []Expect     `toml:"expect"`
}

// Load reads and validates the script at path.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes and validates a script document.
func Parse(data []byte) (*Script, error) {
	var s Script
	if err := toml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing script: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the structural rules that TOML decoding cannot express.
func (s *Script) Validate() error {
	if s.Capacity < 0 {
		return fmt.Errorf("%w: capacity must be non-negative, got %d", ErrMalformed, s.Capacity)
	}
	for i, pair := range s.Unions {
		if len(pair) != 2 {
			return fmt.Errorf("%w: unions[%d] has %d elements, want 2", ErrMalformed, i, len(pair))
		}
		if pair[0] == "" || pair[1] == "" {
			return fmt.Errorf("%w: unions[%d] has an empty element", ErrMalformed, i)
		}
	}
	for i, e := range s.Edges {
		if e.From == "" || e.To == "" {
			return fmt.Errorf("%w: edge[%d] is missing an endpoint", ErrMalformed, i)
		}
	}
	for i, e := range s.Expect {
		if len(e.Group) == 0 {
			return fmt.Errorf("%w: expect[%d] is empty", ErrMalformed, i)
		}
	}
	return nil
}

// Graph builds a graph from the script's weighted edges.
func (s *Script) Graph() *graph.Graph {
	g := graph.New()
	for _, e := range s.Edges {
		g.AddEdge(e.From, e.To, e.Weight)
	}
	return g
}

// Outcome is the result of applying a script.
type Outcome struct {
	Engine *reunion.UnionFind[string]

	// Subsets holds the non-trivial subsets, each sorted, ordered by first member.
	Subsets [][]string

	// Missing lists expected groups absent from Subsets; Unexpected lists
	// subsets that no expectation named.
	Missing    [][]string
	Unexpected [][]string
}

// Err reports ErrExpectation when the outcome disagrees with the script's
// expectations.
func (o *Outcome) Err() error {
	if len(o.Missing) == 0 && len(o.Unexpected) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %d missing, %d unexpected group(s)", ErrExpectation, len(o.Missing), len(o.Unexpected))
}

// Apply runs the script's unions and finds against a new engine. If the
// script has no expectations, Missing and Unexpected are always empty.
func Apply(s *Script) *Outcome {
	uf := reunion.WithCapacity[string](s.Capacity)
	for _, pair := range s.Unions {
		uf.Union(pair[0], pair[1])
	}
	for _, n := range s.Finds {
		uf.Find(n)
	}

	out := &Outcome{
		Engine:  uf,
		Subsets: normalize(uf.Subsets()),
	}
	if len(s.Expect) == 0 {
		return out
	}

	want := make([]reunion.Set[string], len(s.Expect))
	for i, e := range s.Expect {
		want[i] = reunion.NewSet(e.Group...)
	}
	got := make([]reunion.Set[string], len(out.Subsets))
	for i, g := range out.Subsets {
		got[i] = reunion.NewSet(g...)
	}

	for _, w := range want {
		if !reunion.ContainsSet(got, w) {
			out.Missing = append(out.Missing, sortedMembers(w))
		}
	}
	for _, g := range got {
		if !reunion.ContainsSet(want, g) {
			out.Unexpected = append(out.Unexpected, sortedMembers(g))
		}
	}
	return out
}

func sortedMembers(s reunion.Set[string]) []string {
	m := s.Members()
	sort.Strings(m)
	return m
}

func normalize(sets []reunion.Set[string]) [][]string {
	out := make([][]string, 0, len(sets))
	for _, s := range sets {
		out = append(out, sortedMembers(s))
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.Join(out[i], "\x00") < strings.Join(out[j], "\x00")
	})
	return out
}
