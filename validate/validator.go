// Package validate post-processes SHACL validation output for Brick models:
// it accumulates namespace prefixes across all participating graphs, regroups
// the flat results graph into one sub-graph per violation, and reconstructs
// the data-graph triple(s) that caused each violation.
package validate

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/buildsem/brickcheck/namespace"
	"github.com/buildsem/brickcheck/rdf"
	"github.com/buildsem/brickcheck/shacl"
	"github.com/buildsem/brickcheck/vocabulary/sh"
)

// ErrMissingPredicate reports a violation sub-graph lacking a descriptive
// predicate that must appear exactly once.
var ErrMissingPredicate = errors.New("violation is missing a required predicate")

// ErrNotFound reports an empty result from a must-find pattern query.
var ErrNotFound = errors.New("no matching triple")

// ErrUnknownNamespace reports a focus node whose namespace is not bound to
// any registered prefix.
var ErrUnknownNamespace = errors.New("no registered prefix for namespace")

// Validator wraps a SHACL engine and enriches its non-conforming results
// with offending-triple attachments. A Validator holds instance-scoped
// mutable state (namespace registry, violation dictionary) and is not safe
// for concurrent use; give each concurrent caller its own instance.
type Validator struct {
	log            *slog.Logger
	engine         shacl.Engine
	attachOffender bool

	brickG *rdf.Graph // default ontology, rdfs:domain/range stripped
	shapeG *rdf.Graph // default shapes, extended by AddShapeFile
	dataG  *rdf.Graph // data graph of the current validate call

	namespaces *namespace.Registry
	violations map[rdf.Term]*rdf.Graph
	order      []rdf.Term
	unresolved int
}

// Option configures a Validator.
type Option func(*Validator)

// WithEngine replaces the built-in SHACL engine.
func WithEngine(engine shacl.Engine) Option {
	return func(v *Validator) { v.engine = engine }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(v *Validator) { v.log = logger }
}

// WithAttachOffender toggles offending-triple attachment. When disabled,
// Validate returns the engine's raw results unchanged.
func WithAttachOffender(attach bool) Option {
	return func(v *Validator) { v.attachOffender = attach }
}

// New builds a Validator with the embedded Brick ontology and shape subsets
// as defaults. The ontology's rdfs:domain and rdfs:range assertions are
// removed before reasoning; domain checking is the job of the bsh domain
// shapes, not the reasoner.
func New(opts ...Option) (*Validator, error) {
	v := &Validator{
		log:            slog.Default(),
		attachOffender: true,
		namespaces:     namespace.NewRegistry(),
		violations:     make(map[rdf.Term]*rdf.Graph),
	}
	for _, opt := range opts {
		opt(v)
	}
	if v.engine == nil {
		v.engine = shacl.NewCoreEngine(v.log)
	}

	var err error
	if v.brickG, err = rdf.DecodeString(brickTTL); err != nil {
		return nil, fmt.Errorf("parse embedded ontology: %w", err)
	}
	v.brickG.Remove(nil, rdf.RDFSDomain, nil)
	v.brickG.Remove(nil, rdf.RDFSRange, nil)

	if v.shapeG, err = rdf.DecodeString(brickShapeTTL); err != nil {
		return nil, fmt.Errorf("parse embedded shapes: %w", err)
	}

	if err := v.namespaces.RegisterAll(v.brickG); err != nil {
		return nil, err
	}
	if err := v.namespaces.RegisterAll(v.shapeG); err != nil {
		return nil, err
	}
	return v, nil
}

// Request carries the inputs of one validate call. Nil Shapes or Ontology
// select the embedded defaults.
type Request struct {
	Data     *rdf.Graph
	Shapes   *rdf.Graph
	Ontology *rdf.Graph

	Inference    shacl.Inference
	AbortOnError bool
	Advanced     bool
	MetaSHACL    bool
	Debug        bool
}

// Outcome is the validate result. When the data conforms, or attachment is
// disabled, Results is the engine's raw results graph; otherwise it is the
// union of all enriched violation sub-graphs.
type Outcome struct {
	Conforms bool
	Results  *rdf.Graph
	Text     string
}

// Validate runs the engine and, on non-conformance, finds and attaches the
// offending triple(s) for each violation. Engine failures propagate
// unchanged; namespace conflicts and structurally broken violations abort
// the call with no partial results.
func (v *Validator) Validate(req Request) (*Outcome, error) {
	if req.Data == nil {
		return nil, errors.New("validate: data graph is required")
	}
	if req.Inference == "" {
		req.Inference = shacl.InferenceRDFS
	}
	shapes := req.Shapes
	if shapes == nil {
		shapes = v.shapeG
	}
	ontology := req.Ontology
	if ontology == nil {
		ontology = v.brickG
	}

	res, err := v.engine.Validate(req.Data, shapes, ontology, shacl.Options{
		Inference:    req.Inference,
		AbortOnFirst: req.AbortOnError,
		MetaSHACL:    req.MetaSHACL,
		Advanced:     req.Advanced,
		Debug:        req.Debug,
	})
	if err != nil {
		return nil, err
	}

	v.dataG = req.Data
	v.violations = make(map[rdf.Term]*rdf.Graph)
	v.order = nil
	v.unresolved = 0

	if res.Conforms || !v.attachOffender {
		return &Outcome{Conforms: res.Conforms, Results: res.Results, Text: res.Text}, nil
	}

	// Registration order: shape graph, then results graph, then data graph.
	if err := v.namespaces.RegisterAll(shapes); err != nil {
		return nil, err
	}
	if err := v.attachOffendingTriples(res.Results); err != nil {
		return nil, err
	}

	merged := rdf.NewGraph()
	for prefix, ns := range v.namespaces.Snapshot() {
		merged.Bind(prefix, ns)
	}
	for _, key := range v.order {
		merged.AddAll(v.violations[key])
	}
	return &Outcome{Conforms: false, Results: merged, Text: res.Text}, nil
}

// attachOffendingTriples regroups the flat results graph into one sub-graph
// per violation and resolves each one.
//
// The results graph mixes violation triples with report metadata, and a
// violation node can appear as an object before all of its descriptive
// triples have been seen. Grouping therefore takes two passes: the first
// discovers every violation key, the second assigns triples to keys.
func (v *Validator) attachOffendingTriples(results *rdf.Graph) error {
	if err := v.namespaces.RegisterAll(results); err != nil {
		return err
	}
	if err := v.namespaces.RegisterAll(v.dataG); err != nil {
		return err
	}
	snapshot := v.namespaces.Snapshot()

	for _, t := range results.Triples() {
		if t.Predicate != rdf.Term(sh.Result) {
			continue
		}
		if _, ok := v.violations[t.Object]; ok {
			continue
		}
		g := rdf.NewGraph()
		for prefix, ns := range snapshot {
			g.Bind(prefix, ns)
		}
		v.violations[t.Object] = g
		v.order = append(v.order, t.Object)
	}

	for _, t := range results.Triples() {
		if g, ok := v.violations[t.Subject]; ok {
			g.Add(t)
		}
	}

	for _, key := range v.order {
		g := v.violations[key]
		if g.Len() == 0 {
			v.log.Warn("violation has no descriptive triples", "violation", key.String())
			continue
		}
		if err := v.resolveViolation(g); err != nil {
			return err
		}
	}
	return nil
}

// AddShapeFile merges a Turtle shape file into the default shape graph used
// by subsequent validate calls without an explicit shapes graph.
func (v *Validator) AddShapeFile(path string) error {
	v.log.Info("loading shape file", "path", path)
	g, err := rdf.LoadFile(path)
	if err != nil {
		return err
	}
	if err := v.namespaces.RegisterAll(g); err != nil {
		return err
	}
	v.shapeG.AddAll(g)
	return nil
}

// AddShapeGlob loads every shape file matching a doublestar glob pattern.
func (v *Validator) AddShapeGlob(pattern string) error {
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return fmt.Errorf("bad shape glob %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		return fmt.Errorf("no shape files match %q", pattern)
	}
	for _, path := range matches {
		if err := v.AddShapeFile(path); err != nil {
			return err
		}
	}
	return nil
}

// AccumulatedNamespaces returns the prefix mapping gathered so far.
func (v *Validator) AccumulatedNamespaces() map[string]string {
	return v.namespaces.Snapshot()
}

// ViolationList returns the enriched violation sub-graphs in discovery order.
func (v *Validator) ViolationList() []*rdf.Graph {
	out := make([]*rdf.Graph, 0, len(v.order))
	for _, key := range v.order {
		out = append(out, v.violations[key])
	}
	return out
}

// UnresolvedCount returns how many violations of the last validate call no
// heuristic could resolve.
func (v *Validator) UnresolvedCount() int { return v.unresolved }
