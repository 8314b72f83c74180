package rdf_test

import (
	"strings"
	"testing"

	"github.com/buildsem/brickcheck/rdf"
)

func mustDecode(t *testing.T, src string) *rdf.Graph {
	t.Helper()
	g, err := rdf.DecodeString(src)
	if err != nil {
		t.Fatalf("DecodeString() error = %v", err)
	}
	return g
}

func TestDecodePrefixesAndTypes(t *testing.T) {
	g := mustDecode(t, `
@prefix ex: <http://example.com/> .
@prefix brick: <https://brickschema.org/schema/Brick#> .

ex:meter a brick:Meter .
`)

	if g.Len() != 1 {
		t.Fatalf("expected 1 triple, got %d", g.Len())
	}
	want := rdf.Triple{
		Subject:   rdf.IRI("http://example.com/meter"),
		Predicate: rdf.RDFType,
		Object:    rdf.IRI("https://brickschema.org/schema/Brick#Meter"),
	}
	if !g.Has(want) {
		t.Errorf("graph is missing %v", want)
	}
	if ns := g.Namespaces()["ex"]; ns != "http://example.com/" {
		t.Errorf("expected ex bound to http://example.com/, got %q", ns)
	}
}

func TestDecodeSparqlStyleDirectives(t *testing.T) {
	g := mustDecode(t, `
PREFIX ex: <http://example.com/>
BASE <http://example.com/base/>

ex:a ex:p <rel> .
`)

	want := rdf.Triple{
		Subject:   rdf.IRI("http://example.com/a"),
		Predicate: rdf.IRI("http://example.com/p"),
		Object:    rdf.IRI("http://example.com/base/rel"),
	}
	if !g.Has(want) {
		t.Errorf("graph is missing %v", want)
	}
}

func TestDecodeLiterals(t *testing.T) {
	g := mustDecode(t, `
@prefix ex: <http://example.com/> .
@prefix xsd: <http://www.w3.org/2001/XMLSchema#> .

ex:a ex:plain "hello" ;
    ex:tagged "bonjour"@fr ;
    ex:typed "42"^^xsd:long ;
    ex:escaped "line\nbreak \"quoted\"" ;
    ex:count 3 ;
    ex:ratio 1.5 ;
    ex:flag true .
`)

	s := rdf.IRI("http://example.com/a")
	tests := []struct {
		predicate string
		want      rdf.Literal
	}{
		{"plain", rdf.NewLiteral("hello")},
		{"tagged", rdf.Literal{Value: "bonjour", Lang: "fr"}},
		{"typed", rdf.TypedLiteral("42", "http://www.w3.org/2001/XMLSchema#long")},
		{"escaped", rdf.NewLiteral("line\nbreak \"quoted\"")},
		{"count", rdf.TypedLiteral("3", rdf.XSDInteger)},
		{"ratio", rdf.TypedLiteral("1.5", rdf.XSDDecimal)},
		{"flag", rdf.TypedLiteral("true", rdf.XSDBoolean)},
	}
	for _, tt := range tests {
		t.Run(tt.predicate, func(t *testing.T) {
			got := g.Object(s, rdf.IRI("http://example.com/"+tt.predicate))
			if got != rdf.Term(tt.want) {
				t.Errorf("object = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestDecodeBlankNodes(t *testing.T) {
	g := mustDecode(t, `
@prefix ex: <http://example.com/> .

_:labeled ex:p ex:o .
ex:s ex:q [ ex:inner ex:value ] .
`)

	if !g.Has(rdf.Triple{
		Subject:   rdf.BlankNode("labeled"),
		Predicate: rdf.IRI("http://example.com/p"),
		Object:    rdf.IRI("http://example.com/o"),
	}) {
		t.Error("labeled blank node triple missing")
	}

	anon := g.Object(rdf.IRI("http://example.com/s"), rdf.IRI("http://example.com/q"))
	if anon == nil || anon.Kind() != rdf.KindBlank {
		t.Fatalf("expected anonymous blank node object, got %#v", anon)
	}
	inner := g.Object(anon, rdf.IRI("http://example.com/inner"))
	if inner != rdf.Term(rdf.IRI("http://example.com/value")) {
		t.Errorf("inner property = %v, want ex:value", inner)
	}
}

func TestDecodeObjectAndPredicateLists(t *testing.T) {
	g := mustDecode(t, `
@prefix ex: <http://example.com/> .

ex:s ex:p ex:a, ex:b ;
    ex:q ex:c ;
.
`)

	if g.Len() != 3 {
		t.Fatalf("expected 3 triples, got %d", g.Len())
	}
	objects := g.Objects(rdf.IRI("http://example.com/s"), rdf.IRI("http://example.com/p"))
	if len(objects) != 2 {
		t.Errorf("expected 2 objects on ex:p, got %d", len(objects))
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"undefined prefix", `ex:s ex:p ex:o .`},
		{"collection", "@prefix ex: <http://example.com/> .\nex:s ex:p (1 2) ."},
		{"unterminated literal", "@prefix ex: <http://example.com/> .\nex:s ex:p \"open ."},
		{"unterminated iri", `<http://example.com/s> <http://example.com/p> <http://example`},
		{"missing dot", "@prefix ex: <http://example.com/> .\nex:s ex:p ex:o"},
		{"bare plus sign", "@prefix ex: <http://example.com/> .\nex:s ex:p + ."},
		{"bare minus sign", "@prefix ex: <http://example.com/> .\nex:s ex:p - ."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := rdf.DecodeString(tt.src); err == nil {
				t.Error("expected parse error, got nil")
			}
		})
	}
}

func TestDecodeComments(t *testing.T) {
	g := mustDecode(t, `
# leading comment
@prefix ex: <http://example.com/> . # trailing comment
ex:s ex:p ex:o . # another
`)
	if g.Len() != 1 {
		t.Errorf("expected 1 triple, got %d", g.Len())
	}
}

func TestDecodeLocalNamesWithDots(t *testing.T) {
	g := mustDecode(t, `
@prefix ex: <http://example.com/> .
ex:a.b ex:p ex:o .
`)
	if !g.Has(rdf.Triple{
		Subject:   rdf.IRI("http://example.com/a.b"),
		Predicate: rdf.IRI("http://example.com/p"),
		Object:    rdf.IRI("http://example.com/o"),
	}) {
		t.Errorf("dotted local name not preserved: %v", g.Triples())
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := rdf.LoadFile("does/not/exist.ttl"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	src := `@prefix brick: <https://brickschema.org/schema/Brick#> .
@prefix ex: <http://example.com/> .

ex:meter a brick:Meter ;
    brick:hasPoint ex:sensor .
`
	g := mustDecode(t, src)
	out := g.Serialize(g.Namespaces())

	back := mustDecode(t, out)
	if back.Len() != g.Len() {
		t.Fatalf("round trip changed triple count: %d != %d", back.Len(), g.Len())
	}
	for _, tr := range g.Triples() {
		if !back.Has(tr) {
			t.Errorf("round trip lost %v\noutput:\n%s", tr, out)
		}
	}
	if !strings.Contains(out, "brick:Meter") {
		t.Errorf("expected compacted IRI brick:Meter in output:\n%s", out)
	}
}
