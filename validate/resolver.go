package validate

import (
	"errors"
	"fmt"

	"github.com/buildsem/brickcheck/rdf"
	"github.com/buildsem/brickcheck/vocabulary/brick"
	"github.com/buildsem/brickcheck/vocabulary/sh"
)

// resolveViolation finds the data-graph triple(s) that triggered one
// violation and attaches them under the bsh:offendingTriple marker. Two
// heuristics apply, in order: path-based when the violation carries a
// result path, domain-shape-based when its source shape follows the
// <property>DomainShape naming convention. A violation matching neither is
// logged and left with zero attachments.
func (v *Validator) resolveViolation(violation *rdf.Graph) error {
	resultPath, err := violationPredicateObject(violation, sh.ResultPath, false)
	if err != nil {
		return err
	}
	if resultPath != nil {
		return v.resolveByPath(violation, resultPath)
	}
	return v.resolveByDomainShape(violation)
}

// resolveByPath reconstructs the single offending triple
// (focusNode, resultPath, value) for a path-based violation. Cardinality
// violations carry no sh:value; the bsh:AbsentValue marker stands in rather
// than a fabricated value.
func (v *Validator) resolveByPath(violation *rdf.Graph, resultPath rdf.Term) error {
	focus, err := violationPredicateObject(violation, sh.FocusNode, true)
	if err != nil {
		return err
	}
	value, err := violationPredicateObject(violation, sh.Value, false)
	if err != nil {
		return err
	}
	if value == nil {
		value = brick.AbsentValue
	}

	// TODO: a violation where the focus node is the object of the violated
	// path (inverse path) would need the triple queried from the data graph
	// instead of assuming the focus node is the subject. No such violation
	// has been observed yet.
	inner := rdf.NewGraph()
	inner.Add(rdf.Triple{Subject: focus, Predicate: resultPath, Object: value})
	v.attach(violation, inner)
	return nil
}

// resolveByDomainShape recovers the violated Brick property from the source
// shape's name, then queries the data graph for every assertion of that
// property on the focus node. Each match becomes one attachment: this kind
// of shape is inherently ambiguous about which assertion is the true cause.
func (v *Validator) resolveByDomainShape(violation *rdf.Graph) error {
	sourceShape, err := violationPredicateObject(violation, sh.SourceShape, true)
	if err != nil {
		return err
	}
	shapeIRI, ok := sourceShape.(rdf.IRI)
	if !ok {
		v.markUnresolved(violation)
		return nil
	}
	_, shapeName := shapeIRI.Split()
	property, ok := brick.PropertyForDomainShape(shapeName)
	if !ok {
		v.markUnresolved(violation)
		return nil
	}

	focus, err := violationPredicateObject(violation, sh.FocusNode, true)
	if err != nil {
		return err
	}
	focusIRI, ok := focus.(rdf.IRI)
	if !ok {
		return fmt.Errorf("%w: focus node %s is not an IRI", ErrUnknownNamespace, focus.String())
	}
	ns, name := focusIRI.Split()
	prefixes := v.namespaces.PrefixesFor(ns)
	if len(prefixes) == 0 {
		return fmt.Errorf("%w: %s", ErrUnknownNamespace, focusIRI)
	}

	_, propertyName := property.Split()
	matches, err := v.queryDataGraph(prefixes[0]+":"+name, "brick:"+propertyName, "")
	if errors.Is(err, ErrNotFound) {
		// The shape fired but the asserting triple is gone from the data
		// graph; surface it as unresolved instead of aborting the run.
		v.log.Warn("domain-shape query found no data triples",
			"focus", focusIRI.String(), "property", property.String())
		v.markUnresolved(violation)
		return nil
	}
	if err != nil {
		return err
	}

	for _, match := range matches {
		inner := rdf.NewGraph()
		inner.Add(rdf.Triple{Subject: focus, Predicate: property, Object: match.Object})
		v.attach(violation, inner)
	}
	return nil
}

// attach links an inner graph of offending triples onto the violation under
// a fresh blank node. The violation owns the inner graph outright.
func (v *Validator) attach(violation *rdf.Graph, inner *rdf.Graph) {
	violation.Add(rdf.Triple{
		Subject:   rdf.NewBlankNode(),
		Predicate: brick.OffendingTriple,
		Object:    rdf.GraphTerm{Graph: inner},
	})
}

func (v *Validator) markUnresolved(violation *rdf.Graph) {
	v.unresolved++
	v.log.Error("no triple finder for violation",
		"violation", violation.Serialize(nil))
}

// violationPredicateObject returns the object of the unique triple in the
// violation carrying the given predicate. With mustFind set, anything other
// than exactly one match is a structural error; otherwise a missing
// predicate is a normal branch and yields nil.
func violationPredicateObject(violation *rdf.Graph, predicate rdf.IRI, mustFind bool) (rdf.Term, error) {
	matches := violation.Match(nil, predicate, nil)
	if mustFind && len(matches) != 1 {
		return nil, fmt.Errorf("%w: want exactly one %s, found %d",
			ErrMissingPredicate, predicate, len(matches))
	}
	if len(matches) == 0 {
		return nil, nil
	}
	return matches[0].Object, nil
}
