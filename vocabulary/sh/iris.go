// Package sh provides term IRIs from the W3C SHACL vocabulary used by the
// validation engine and the violation post-processor.
package sh

import "github.com/buildsem/brickcheck/rdf"

// Namespace is the base IRI of the SHACL vocabulary.
const Namespace = "http://www.w3.org/ns/shacl#"

// Reporting terms carried by validation reports and results.
const (
	// ValidationReport is the class of the report node.
	ValidationReport rdf.IRI = Namespace + "ValidationReport"

	// ValidationResult is the class of one reported violation.
	ValidationResult rdf.IRI = Namespace + "ValidationResult"

	// Conforms links the report to its boolean conformance flag.
	Conforms rdf.IRI = Namespace + "conforms"

	// Result links the report node to each violation node.
	Result rdf.IRI = Namespace + "result"

	// FocusNode names the data-graph resource the violated shape applies to.
	FocusNode rdf.IRI = Namespace + "focusNode"

	// ResultPath names the property path of a path-based constraint.
	ResultPath rdf.IRI = Namespace + "resultPath"

	// Value names the offending value, when the constraint has one.
	Value rdf.IRI = Namespace + "value"

	// SourceShape names the shape that produced the violation.
	SourceShape rdf.IRI = Namespace + "sourceShape"

	// SourceConstraintComponent names the violated constraint component.
	SourceConstraintComponent rdf.IRI = Namespace + "sourceConstraintComponent"

	// ResultSeverity names the severity of the violation.
	ResultSeverity rdf.IRI = Namespace + "resultSeverity"

	// ResultMessage carries the human-readable violation message.
	ResultMessage rdf.IRI = Namespace + "resultMessage"

	// Violation is the default severity.
	Violation rdf.IRI = Namespace + "Violation"
)

// Shape-definition terms read by the engine.
const (
	// NodeShape is the class of node shapes.
	NodeShape rdf.IRI = Namespace + "NodeShape"

	// TargetClass selects focus nodes by rdf:type.
	TargetClass rdf.IRI = Namespace + "targetClass"

	// TargetSubjectsOf selects focus nodes appearing as subjects of a property.
	TargetSubjectsOf rdf.IRI = Namespace + "targetSubjectsOf"

	// Property links a node shape to a property shape.
	Property rdf.IRI = Namespace + "property"

	// Path names the property constrained by a property shape.
	Path rdf.IRI = Namespace + "path"

	// MinCount is the minimum cardinality constraint parameter.
	MinCount rdf.IRI = Namespace + "minCount"

	// MaxCount is the maximum cardinality constraint parameter.
	MaxCount rdf.IRI = Namespace + "maxCount"

	// Class is the value-class constraint parameter.
	Class rdf.IRI = Namespace + "class"

	// Datatype is the literal-datatype constraint parameter.
	Datatype rdf.IRI = Namespace + "datatype"

	// Message carries the shape author's violation message.
	Message rdf.IRI = Namespace + "message"
)

// Constraint component IRIs named in validation results.
const (
	MinCountConstraintComponent rdf.IRI = Namespace + "MinCountConstraintComponent"
	MaxCountConstraintComponent rdf.IRI = Namespace + "MaxCountConstraintComponent"
	ClassConstraintComponent    rdf.IRI = Namespace + "ClassConstraintComponent"
	DatatypeConstraintComponent rdf.IRI = Namespace + "DatatypeConstraintComponent"
)
