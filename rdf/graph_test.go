package rdf_test

import (
	"testing"

	"github.com/buildsem/brickcheck/rdf"
)

var (
	s1 = rdf.IRI("http://example.com/s1")
	s2 = rdf.IRI("http://example.com/s2")
	p1 = rdf.IRI("http://example.com/p1")
	p2 = rdf.IRI("http://example.com/p2")
	o1 = rdf.IRI("http://example.com/o1")
	o2 = rdf.IRI("http://example.com/o2")
)

func TestGraphAddDeduplicates(t *testing.T) {
	g := rdf.NewGraph()
	tr := rdf.Triple{Subject: s1, Predicate: p1, Object: o1}
	g.Add(tr)
	g.Add(tr)

	if g.Len() != 1 {
		t.Errorf("expected 1 triple after duplicate Add, got %d", g.Len())
	}
	if !g.Has(tr) {
		t.Error("Has() should report the added triple")
	}
}

func TestGraphMatchWildcards(t *testing.T) {
	g := rdf.NewGraph()
	g.Add(rdf.Triple{Subject: s1, Predicate: p1, Object: o1})
	g.Add(rdf.Triple{Subject: s1, Predicate: p2, Object: o2})
	g.Add(rdf.Triple{Subject: s2, Predicate: p1, Object: o1})

	tests := []struct {
		name    string
		s, p, o rdf.Term
		want    int
	}{
		{"all wildcards", nil, nil, nil, 3},
		{"by subject", s1, nil, nil, 2},
		{"by predicate", nil, p1, nil, 2},
		{"by object", nil, nil, o2, 1},
		{"exact", s1, p1, o1, 1},
		{"no match", s2, p2, nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(g.Match(tt.s, tt.p, tt.o)); got != tt.want {
				t.Errorf("Match() returned %d triples, want %d", got, tt.want)
			}
		})
	}
}

func TestGraphSubjectsAndObjectsAreDistinct(t *testing.T) {
	g := rdf.NewGraph()
	g.Add(rdf.Triple{Subject: s1, Predicate: p1, Object: o1})
	g.Add(rdf.Triple{Subject: s1, Predicate: p1, Object: o2})
	g.Add(rdf.Triple{Subject: s2, Predicate: p1, Object: o1})

	if subjects := g.Subjects(p1, nil); len(subjects) != 2 {
		t.Errorf("Subjects() = %v, want 2 distinct subjects", subjects)
	}
	if objects := g.Objects(s1, p1); len(objects) != 2 {
		t.Errorf("Objects() = %v, want 2 distinct objects", objects)
	}
	if obj := g.Object(s1, p1); obj != rdf.Term(o1) {
		t.Errorf("Object() = %v, want first inserted object %v", obj, o1)
	}
	if obj := g.Object(s2, p2); obj != nil {
		t.Errorf("Object() on absent pattern = %v, want nil", obj)
	}
}

func TestGraphRemove(t *testing.T) {
	g := rdf.NewGraph()
	g.Add(rdf.Triple{Subject: s1, Predicate: p1, Object: o1})
	g.Add(rdf.Triple{Subject: s1, Predicate: p2, Object: o1})
	g.Add(rdf.Triple{Subject: s2, Predicate: p1, Object: o2})

	if removed := g.Remove(nil, p1, nil); removed != 2 {
		t.Errorf("Remove() = %d, want 2", removed)
	}
	if g.Len() != 1 {
		t.Errorf("expected 1 triple left, got %d", g.Len())
	}
	if g.Has(rdf.Triple{Subject: s1, Predicate: p1, Object: o1}) {
		t.Error("removed triple still present")
	}

	// Removed triples can be re-added.
	g.Add(rdf.Triple{Subject: s1, Predicate: p1, Object: o1})
	if g.Len() != 2 {
		t.Errorf("re-add after Remove failed, len = %d", g.Len())
	}
}

func TestGraphUnionMergesBindings(t *testing.T) {
	a := rdf.NewGraph()
	a.Bind("ex", "http://example.com/")
	a.Add(rdf.Triple{Subject: s1, Predicate: p1, Object: o1})

	b := rdf.NewGraph()
	b.Bind("ex", "http://other.example/")
	b.Bind("x", "http://x.example/")
	b.Add(rdf.Triple{Subject: s1, Predicate: p1, Object: o1})
	b.Add(rdf.Triple{Subject: s2, Predicate: p2, Object: o2})

	u := a.Union(b)
	if u.Len() != 2 {
		t.Errorf("union length = %d, want 2", u.Len())
	}

	ns := u.Namespaces()
	if ns["ex"] != "http://example.com/" {
		t.Errorf("union should keep the first binding for ex, got %q", ns["ex"])
	}
	if ns["x"] != "http://x.example/" {
		t.Errorf("union should carry new bindings, got %q", ns["x"])
	}
}

func TestNewBlankNodesAreUnique(t *testing.T) {
	a, b := rdf.NewBlankNode(), rdf.NewBlankNode()
	if a == b {
		t.Error("two fresh blank nodes share a label")
	}
}

func TestIRISplit(t *testing.T) {
	tests := []struct {
		iri       rdf.IRI
		ns, local string
	}{
		{"https://brickschema.org/schema/Brick#Meter", "https://brickschema.org/schema/Brick#", "Meter"},
		{"http://example.com/path/name", "http://example.com/path/", "name"},
		{"nameonly", "", "nameonly"},
	}
	for _, tt := range tests {
		ns, local := tt.iri.Split()
		if ns != tt.ns || local != tt.local {
			t.Errorf("Split(%q) = (%q, %q), want (%q, %q)", tt.iri, ns, local, tt.ns, tt.local)
		}
	}
}
