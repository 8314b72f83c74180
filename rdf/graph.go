package rdf

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Graph is an insertion-ordered set of triples plus a prefix-to-namespace
// binding table used for serialization and query convenience. Bindings are
// not part of graph identity.
type Graph struct {
	label    string
	triples  []Triple
	seen     map[Triple]struct{}
	prefixes map[string]string
}

// NewGraph returns an empty graph with a fresh identity label.
func NewGraph() *Graph {
	return &Graph{
		label:    "g" + strings.ReplaceAll(uuid.NewString(), "-", ""),
		seen:     make(map[Triple]struct{}),
		prefixes: make(map[string]string),
	}
}

// Add inserts a triple, keeping set semantics and insertion order.
func (g *Graph) Add(t Triple) {
	if _, ok := g.seen[t]; ok {
		return
	}
	g.seen[t] = struct{}{}
	g.triples = append(g.triples, t)
}

// AddAll inserts every triple of other into g. Prefix bindings of other are
// merged without overwriting existing bindings.
func (g *Graph) AddAll(other *Graph) {
	if other == nil {
		return
	}
	for _, t := range other.triples {
		g.Add(t)
	}
	for prefix, ns := range other.prefixes {
		if _, ok := g.prefixes[prefix]; !ok {
			g.prefixes[prefix] = ns
		}
	}
}

// Union returns a new graph holding the triples of both graphs.
func (g *Graph) Union(other *Graph) *Graph {
	out := NewGraph()
	out.AddAll(g)
	out.AddAll(other)
	return out
}

// Has reports whether the triple is present.
func (g *Graph) Has(t Triple) bool {
	_, ok := g.seen[t]
	return ok
}

// Len returns the number of triples.
func (g *Graph) Len() int { return len(g.triples) }

// Triples returns the triples in insertion order. The slice is shared;
// callers must not mutate it.
func (g *Graph) Triples() []Triple { return g.triples }

// Match returns every triple matching the pattern in insertion order.
// A nil term is a wildcard.
func (g *Graph) Match(s, p, o Term) []Triple {
	var out []Triple
	for _, t := range g.triples {
		if s != nil && t.Subject != s {
			continue
		}
		if p != nil && t.Predicate != p {
			continue
		}
		if o != nil && t.Object != o {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Subjects returns the distinct subjects of triples matching the pattern,
// in first-seen order.
func (g *Graph) Subjects(p, o Term) []Term {
	var out []Term
	seen := make(map[Term]struct{})
	for _, t := range g.Match(nil, p, o) {
		if _, ok := seen[t.Subject]; ok {
			continue
		}
		seen[t.Subject] = struct{}{}
		out = append(out, t.Subject)
	}
	return out
}

// Objects returns the distinct objects of triples matching the pattern,
// in first-seen order.
func (g *Graph) Objects(s, p Term) []Term {
	var out []Term
	seen := make(map[Term]struct{})
	for _, t := range g.Match(s, p, nil) {
		if _, ok := seen[t.Object]; ok {
			continue
		}
		seen[t.Object] = struct{}{}
		out = append(out, t.Object)
	}
	return out
}

// Object returns the object of the first triple matching (s, p), or nil.
func (g *Graph) Object(s, p Term) Term {
	for _, t := range g.triples {
		if t.Subject == s && t.Predicate == p {
			return t.Object
		}
	}
	return nil
}

// Remove deletes every triple matching the pattern and returns the number
// removed. A nil term is a wildcard.
func (g *Graph) Remove(s, p, o Term) int {
	kept := g.triples[:0]
	removed := 0
	for _, t := range g.triples {
		match := (s == nil || t.Subject == s) &&
			(p == nil || t.Predicate == p) &&
			(o == nil || t.Object == o)
		if match {
			delete(g.seen, t)
			removed++
			continue
		}
		kept = append(kept, t)
	}
	g.triples = kept
	return removed
}

// Bind associates a prefix with a namespace IRI for serialization.
// Rebinding a prefix overwrites the previous namespace; consistency across
// graphs is the namespace registry's concern, not the graph's.
func (g *Graph) Bind(prefix, ns string) {
	g.prefixes[prefix] = ns
}

// Namespaces returns a copy of the prefix-to-namespace bindings.
func (g *Graph) Namespaces() map[string]string {
	out := make(map[string]string, len(g.prefixes))
	for prefix, ns := range g.prefixes {
		out[prefix] = ns
	}
	return out
}

// sortedPrefixes returns the bound prefixes in lexical order.
func sortedPrefixes(prefixes map[string]string) []string {
	out := make([]string, 0, len(prefixes))
	for prefix := range prefixes {
		out = append(out, prefix)
	}
	sort.Strings(out)
	return out
}

// LoadFile parses a Turtle file into a new graph.
func LoadFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open graph file: %w", err)
	}
	defer f.Close()

	g, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return g, nil
}
