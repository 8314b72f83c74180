// Package rdf provides a compact in-memory RDF model: terms, triples, graphs
// with namespace bindings, and a Turtle reader/writer sufficient for shape
// and building-model files.
package rdf

import (
	"strings"

	"github.com/google/uuid"
)

// Standard namespace IRIs used throughout the model.
const (
	NamespaceRDF  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	NamespaceRDFS = "http://www.w3.org/2000/01/rdf-schema#"
	NamespaceOWL  = "http://www.w3.org/2002/07/owl#"
	NamespaceXSD  = "http://www.w3.org/2001/XMLSchema#"
	NamespaceSKOS = "http://www.w3.org/2004/02/skos/core#"
)

// Well-known term IRIs.
const (
	RDFType      IRI = NamespaceRDF + "type"
	RDFSSubClass IRI = NamespaceRDFS + "subClassOf"
	RDFSDomain   IRI = NamespaceRDFS + "domain"
	RDFSRange    IRI = NamespaceRDFS + "range"
	XSDString    IRI = NamespaceXSD + "string"
	XSDInteger   IRI = NamespaceXSD + "integer"
	XSDDecimal   IRI = NamespaceXSD + "decimal"
	XSDBoolean   IRI = NamespaceXSD + "boolean"
)

// TermKind discriminates the RDF term variants.
type TermKind int

const (
	// KindIRI is an IRI reference.
	KindIRI TermKind = iota

	// KindBlank is a blank node.
	KindBlank

	// KindLiteral is a literal with optional language tag or datatype.
	KindLiteral

	// KindGraph is a quoted graph used as a term. RDF proper has no graph
	// terms; they exist here so a violation graph can carry an inner graph
	// of offending triples as the object of a marker predicate.
	KindGraph
)

// Term is an RDF term: IRI reference, blank node, literal, or quoted graph.
// All implementations are comparable so triples can be deduplicated and
// terms can key maps.
type Term interface {
	Kind() TermKind

	// String returns the raw lexical value without serialization syntax:
	// the IRI itself, the blank node label, or the literal value.
	String() string
}

// IRI is an IRI reference term.
type IRI string

// Kind implements Term.
func (i IRI) Kind() TermKind { return KindIRI }

// String implements Term.
func (i IRI) String() string { return string(i) }

// Split separates an IRI into its namespace and local name at the last
// '#' or '/'. The namespace keeps the separator.
func (i IRI) Split() (ns, local string) {
	s := string(i)
	if idx := strings.LastIndexAny(s, "#/"); idx >= 0 {
		return s[:idx+1], s[idx+1:]
	}
	return "", s
}

// BlankNode is a blank node term identified by a label.
type BlankNode string

// Kind implements Term.
func (b BlankNode) Kind() TermKind { return KindBlank }

// String implements Term.
func (b BlankNode) String() string { return string(b) }

// NewBlankNode returns a blank node with a fresh unique label.
func NewBlankNode() BlankNode {
	return BlankNode("n" + strings.ReplaceAll(uuid.NewString(), "-", ""))
}

// Literal is a literal term with an optional language tag or datatype IRI.
type Literal struct {
	Value    string
	Lang     string
	Datatype IRI
}

// Kind implements Term.
func (l Literal) Kind() TermKind { return KindLiteral }

// String implements Term.
func (l Literal) String() string { return l.Value }

// NewLiteral returns a plain string literal.
func NewLiteral(value string) Literal {
	return Literal{Value: value}
}

// TypedLiteral returns a literal with the given datatype IRI.
func TypedLiteral(value string, datatype IRI) Literal {
	return Literal{Value: value, Datatype: datatype}
}

// GraphTerm wraps a graph so it can appear in object position.
type GraphTerm struct {
	Graph *Graph
}

// Kind implements Term.
func (t GraphTerm) Kind() TermKind { return KindGraph }

// String implements Term.
func (t GraphTerm) String() string { return t.Graph.label }

// Triple is one (subject, predicate, object) statement.
type Triple struct {
	Subject   Term
	Predicate Term
	Object    Term
}
