// Package brick provides term IRIs from the Brick schema and its shape
// namespace, plus the offending-triple marker used by the violation
// post-processor.
package brick

import (
	"strings"

	"github.com/buildsem/brickcheck/rdf"
)

// Namespace is the base IRI of the Brick schema.
const Namespace = "https://brickschema.org/schema/Brick#"

// ShapeNamespace is the base IRI of the Brick shape (bsh:) namespace.
const ShapeNamespace = "https://brickschema.org/schema/BrickShape#"

// OffendingTriple is the marker predicate under which resolved offending
// triples are attached to a violation graph. Its object is an inner graph
// holding the data-graph triple(s) identified as the cause.
const OffendingTriple rdf.IRI = ShapeNamespace + "offendingTriple"

// AbsentValue stands in for the object of a reconstructed offending triple
// when the violation carries no sh:value, e.g. a minCount violation.
const AbsentValue rdf.IRI = ShapeNamespace + "AbsentValue"

// DomainShapeSuffix names shapes synthesized for a property's declared
// domain: a property brick:xyz yields the shape bsh:xyzDomainShape.
const DomainShapeSuffix = "DomainShape"

// Core classes referenced by the embedded ontology subset.
const (
	Equipment rdf.IRI = Namespace + "Equipment"
	Meter     rdf.IRI = Namespace + "Meter"
	Point     rdf.IRI = Namespace + "Point"
	Sensor    rdf.IRI = Namespace + "Sensor"
	Location  rdf.IRI = Namespace + "Location"
)

// Core properties referenced by the embedded ontology subset.
const (
	HasPoint    rdf.IRI = Namespace + "hasPoint"
	IsPointOf   rdf.IRI = Namespace + "isPointOf"
	HasLocation rdf.IRI = Namespace + "hasLocation"
	Feeds       rdf.IRI = Namespace + "feeds"
)

// PropertyForDomainShape recovers the Brick property IRI from a domain-shape
// local name, reporting false when the name does not follow the convention.
func PropertyForDomainShape(shapeLocalName string) (rdf.IRI, bool) {
	if !strings.HasSuffix(shapeLocalName, DomainShapeSuffix) {
		return "", false
	}
	prop := strings.TrimSuffix(shapeLocalName, DomainShapeSuffix)
	if prop == "" {
		return "", false
	}
	return rdf.IRI(Namespace + prop), true
}
