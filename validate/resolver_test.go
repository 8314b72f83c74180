package validate

import (
	"errors"
	"testing"

	"github.com/buildsem/brickcheck/rdf"
	"github.com/buildsem/brickcheck/vocabulary/sh"
)

func TestViolationPredicateObject(t *testing.T) {
	focus := rdf.IRI("http://example.com/building#meter")
	g := rdf.NewGraph()
	g.Add(rdf.Triple{Subject: rdf.BlankNode("v"), Predicate: sh.FocusNode, Object: focus})

	got, err := violationPredicateObject(g, sh.FocusNode, true)
	if err != nil {
		t.Fatalf("violationPredicateObject() error = %v", err)
	}
	if got != rdf.Term(focus) {
		t.Errorf("got %v, want %v", got, focus)
	}
}

func TestViolationPredicateObjectMissing(t *testing.T) {
	g := rdf.NewGraph()

	// Optional lookups treat absence as a branch.
	got, err := violationPredicateObject(g, sh.Value, false)
	if err != nil || got != nil {
		t.Errorf("optional lookup = (%v, %v), want (nil, nil)", got, err)
	}

	// Mandatory lookups treat absence as a structural defect.
	_, err = violationPredicateObject(g, sh.FocusNode, true)
	if !errors.Is(err, ErrMissingPredicate) {
		t.Errorf("mandatory lookup error = %v, want ErrMissingPredicate", err)
	}
}

func TestViolationPredicateObjectDuplicate(t *testing.T) {
	g := rdf.NewGraph()
	g.Add(rdf.Triple{Subject: rdf.BlankNode("v"), Predicate: sh.FocusNode, Object: rdf.IRI("http://example.com/a")})
	g.Add(rdf.Triple{Subject: rdf.BlankNode("v"), Predicate: sh.FocusNode, Object: rdf.IRI("http://example.com/b")})

	if _, err := violationPredicateObject(g, sh.FocusNode, true); !errors.Is(err, ErrMissingPredicate) {
		t.Errorf("duplicate predicate error = %v, want ErrMissingPredicate", err)
	}
}

func TestQueryDataGraph(t *testing.T) {
	v, err := New()
	if err != nil {
		t.Fatal(err)
	}
	data, err := rdf.DecodeString(`
@prefix ex: <http://example.com/building#> .
@prefix brick: <https://brickschema.org/schema/Brick#> .

ex:meter brick:hasPoint ex:p1, ex:p2 .
`)
	if err != nil {
		t.Fatal(err)
	}
	if err := v.namespaces.RegisterAll(data); err != nil {
		t.Fatal(err)
	}
	v.dataG = data

	matches, err := v.queryDataGraph("ex:meter", "brick:hasPoint", "")
	if err != nil {
		t.Fatalf("queryDataGraph() error = %v", err)
	}
	if len(matches) != 2 {
		t.Errorf("got %d matches, want 2", len(matches))
	}

	_, err = v.queryDataGraph("ex:meter", "brick:isPointOf", "")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("empty result error = %v, want ErrNotFound", err)
	}

	_, err = v.queryDataGraph("bogus:meter", "", "")
	if err == nil {
		t.Error("unknown prefix in a pattern should fail")
	}
}
