// Package shacl defines the validation-engine boundary and a compact
// built-in engine covering the constraint components used by Brick shapes.
package shacl

import (
	"fmt"

	"github.com/buildsem/brickcheck/rdf"
)

// Inference selects the reasoning applied to the data graph before
// constraint evaluation.
type Inference string

const (
	// InferenceNone applies no reasoning.
	InferenceNone Inference = "none"

	// InferenceRDFS applies RDFS subclass reasoning.
	InferenceRDFS Inference = "rdfs"

	// InferenceOWLRL applies OWL-RL reasoning.
	InferenceOWLRL Inference = "owlrl"

	// InferenceBoth applies RDFS and OWL-RL reasoning.
	InferenceBoth Inference = "both"
)

// ParseInference validates an inference mode string.
func ParseInference(s string) (Inference, error) {
	switch Inference(s) {
	case InferenceNone, InferenceRDFS, InferenceOWLRL, InferenceBoth:
		return Inference(s), nil
	default:
		return "", fmt.Errorf("unknown inference mode %q (want none, rdfs, owlrl, or both)", s)
	}
}

// Options carries the per-call engine settings.
type Options struct {
	// Inference is the reasoning mode applied before evaluation.
	Inference Inference

	// AbortOnFirst stops evaluation at the first violation.
	AbortOnFirst bool

	// MetaSHACL validates the shapes graph itself before evaluating data.
	MetaSHACL bool

	// Advanced enables SHACL Advanced Features where the engine supports them.
	Advanced bool

	// Debug enables verbose engine logging.
	Debug bool
}

// Result is the engine's native output: the conformance flag, the flat
// results graph, and a human-readable summary.
type Result struct {
	Conforms bool
	Results  *rdf.Graph
	Text     string
}

// Engine validates a data graph against a shapes graph with the support of
// an ontology graph.
type Engine interface {
	Validate(data, shapes, ont *rdf.Graph, opts Options) (*Result, error)
}
