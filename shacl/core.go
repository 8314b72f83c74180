package shacl

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/buildsem/brickcheck/rdf"
	"github.com/buildsem/brickcheck/vocabulary/sh"
)

// CoreEngine is a built-in SHACL engine covering the constraint components
// exercised by the Brick shape files: sh:targetClass and sh:targetSubjectsOf
// targets, node-level sh:class, and property shapes with sh:minCount,
// sh:maxCount, sh:class, and sh:datatype. RDFS inference is limited to the
// subclass hierarchy; owlrl falls back to the same closure.
type CoreEngine struct {
	log *slog.Logger
}

// NewCoreEngine returns an engine logging through the given logger.
func NewCoreEngine(logger *slog.Logger) *CoreEngine {
	if logger == nil {
		logger = slog.Default()
	}
	return &CoreEngine{log: logger}
}

// nodeShape is a parsed shape with its targets and constraints.
type nodeShape struct {
	node             rdf.Term
	targetClasses    []rdf.Term
	targetSubjectsOf []rdf.Term
	class            rdf.Term
	message          string
	properties       []propertyConstraint
}

// propertyConstraint is a parsed sh:property shape.
type propertyConstraint struct {
	node     rdf.Term
	path     rdf.Term
	minCount int
	maxCount int
	class    rdf.Term
	datatype rdf.Term
	message  string
}

// violation is one constraint failure prior to report construction.
type violation struct {
	focus     rdf.Term
	path      rdf.Term
	value     rdf.Term
	shape     rdf.Term
	component rdf.IRI
	message   string
}

// Validate implements Engine.
func (e *CoreEngine) Validate(data, shapes, ont *rdf.Graph, opts Options) (*Result, error) {
	shapeList, err := e.parseShapes(shapes, opts.MetaSHACL)
	if err != nil {
		return nil, err
	}
	if opts.Debug {
		e.log.Debug("parsed shapes graph", "shapes", len(shapeList))
	}

	working := data.Union(ont)
	types := typeIndex(working, opts.Inference)

	var violations []violation
	for _, shape := range shapeList {
		for _, focus := range focusNodes(working, shape) {
			violations = append(violations, checkFocus(working, types, shape, focus)...)
			if opts.AbortOnFirst && len(violations) > 0 {
				violations = violations[:1]
				break
			}
		}
		if opts.AbortOnFirst && len(violations) > 0 {
			break
		}
	}

	result := &Result{Conforms: len(violations) == 0}
	result.Results = buildReport(violations, data, shapes)
	result.Text = reportText(violations)
	if opts.Debug {
		e.log.Debug("validation finished", "conforms", result.Conforms, "violations", len(violations))
	}
	return result, nil
}

// parseShapes extracts node shapes and their constraints. With meta enabled
// it also rejects structurally broken shapes.
func (e *CoreEngine) parseShapes(shapes *rdf.Graph, meta bool) ([]nodeShape, error) {
	var order []rdf.Term
	seen := make(map[rdf.Term]struct{})
	add := func(node rdf.Term) {
		if _, ok := seen[node]; ok {
			return
		}
		seen[node] = struct{}{}
		order = append(order, node)
	}
	for _, node := range shapes.Subjects(rdf.RDFType, sh.NodeShape) {
		add(node)
	}
	for _, node := range shapes.Subjects(sh.TargetClass, nil) {
		add(node)
	}
	for _, node := range shapes.Subjects(sh.TargetSubjectsOf, nil) {
		add(node)
	}

	out := make([]nodeShape, 0, len(order))
	for _, node := range order {
		shape := nodeShape{
			node:             node,
			targetClasses:    shapes.Objects(node, sh.TargetClass),
			targetSubjectsOf: shapes.Objects(node, sh.TargetSubjectsOf),
			class:            shapes.Object(node, sh.Class),
		}
		if msg := shapes.Object(node, sh.Message); msg != nil {
			shape.message = msg.String()
		}
		for _, pnode := range shapes.Objects(node, sh.Property) {
			pc, err := parsePropertyConstraint(shapes, pnode)
			if err != nil {
				return nil, err
			}
			shape.properties = append(shape.properties, pc)
		}
		if meta && shape.class == nil && len(shape.properties) == 0 {
			e.log.Warn("shape declares no constraints", "shape", node.String())
		}
		out = append(out, shape)
	}
	return out, nil
}

func parsePropertyConstraint(shapes *rdf.Graph, pnode rdf.Term) (propertyConstraint, error) {
	pc := propertyConstraint{
		node:     pnode,
		path:     shapes.Object(pnode, sh.Path),
		minCount: -1,
		maxCount: -1,
		class:    shapes.Object(pnode, sh.Class),
		datatype: shapes.Object(pnode, sh.Datatype),
	}
	if pc.path == nil {
		return pc, fmt.Errorf("property shape %s has no sh:path", pnode.String())
	}
	if msg := shapes.Object(pnode, sh.Message); msg != nil {
		pc.message = msg.String()
	}
	var err error
	if pc.minCount, err = countParam(shapes, pnode, sh.MinCount); err != nil {
		return pc, err
	}
	if pc.maxCount, err = countParam(shapes, pnode, sh.MaxCount); err != nil {
		return pc, err
	}
	return pc, nil
}

// countParam reads a non-negative integer constraint parameter, -1 if absent.
func countParam(shapes *rdf.Graph, node rdf.Term, param rdf.IRI) (int, error) {
	obj := shapes.Object(node, param)
	if obj == nil {
		return -1, nil
	}
	n, err := strconv.Atoi(obj.String())
	if err != nil || n < 0 {
		return -1, fmt.Errorf("bad value %q for %s on %s", obj.String(), param, node.String())
	}
	return n, nil
}

// focusNodes computes the focus nodes targeted by a shape, in first-seen
// order and without duplicates.
func focusNodes(working *rdf.Graph, shape nodeShape) []rdf.Term {
	var out []rdf.Term
	seen := make(map[rdf.Term]struct{})
	add := func(node rdf.Term) {
		if _, ok := seen[node]; ok {
			return
		}
		seen[node] = struct{}{}
		out = append(out, node)
	}
	for _, class := range shape.targetClasses {
		for _, node := range working.Subjects(rdf.RDFType, class) {
			add(node)
		}
	}
	for _, prop := range shape.targetSubjectsOf {
		for _, node := range working.Subjects(prop, nil) {
			add(node)
		}
	}
	return out
}

func checkFocus(working *rdf.Graph, types *typeResolver, shape nodeShape, focus rdf.Term) []violation {
	var out []violation

	if shape.class != nil && !types.isInstance(focus, shape.class) {
		msg := shape.message
		if msg == "" {
			msg = fmt.Sprintf("Value does not have class %s", shape.class.String())
		}
		out = append(out, violation{
			focus:     focus,
			value:     focus,
			shape:     shape.node,
			component: sh.ClassConstraintComponent,
			message:   msg,
		})
	}

	for _, pc := range shape.properties {
		values := working.Objects(focus, pc.path)

		if pc.minCount >= 0 && len(values) < pc.minCount {
			out = append(out, violation{
				focus:     focus,
				path:      pc.path,
				shape:     pc.node,
				component: sh.MinCountConstraintComponent,
				message:   messageOr(pc.message, fmt.Sprintf("Less than %d values on path %s", pc.minCount, pc.path.String())),
			})
		}
		if pc.maxCount >= 0 && len(values) > pc.maxCount {
			out = append(out, violation{
				focus:     focus,
				path:      pc.path,
				shape:     pc.node,
				component: sh.MaxCountConstraintComponent,
				message:   messageOr(pc.message, fmt.Sprintf("More than %d values on path %s", pc.maxCount, pc.path.String())),
			})
		}
		if pc.class != nil {
			for _, value := range values {
				if types.isInstance(value, pc.class) {
					continue
				}
				out = append(out, violation{
					focus:     focus,
					path:      pc.path,
					value:     value,
					shape:     pc.node,
					component: sh.ClassConstraintComponent,
					message:   messageOr(pc.message, fmt.Sprintf("Value does not have class %s", pc.class.String())),
				})
			}
		}
		if pc.datatype != nil {
			for _, value := range values {
				if literalHasDatatype(value, pc.datatype) {
					continue
				}
				out = append(out, violation{
					focus:     focus,
					path:      pc.path,
					value:     value,
					shape:     pc.node,
					component: sh.DatatypeConstraintComponent,
					message:   messageOr(pc.message, fmt.Sprintf("Value does not have datatype %s", pc.datatype.String())),
				})
			}
		}
	}
	return out
}

func messageOr(msg, fallback string) string {
	if msg != "" {
		return msg
	}
	return fallback
}

func literalHasDatatype(value rdf.Term, datatype rdf.Term) bool {
	lit, ok := value.(rdf.Literal)
	if !ok {
		return false
	}
	dt := lit.Datatype
	if dt == "" {
		dt = rdf.XSDString
	}
	return rdf.Term(dt) == datatype
}
