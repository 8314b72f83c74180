// Package namespace accumulates prefix-to-namespace bindings across every
// graph that participates in a validation session.
package namespace

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/buildsem/brickcheck/rdf"
)

// ErrPrefixConflict reports an attempt to rebind a prefix to a different
// namespace IRI. Two inputs disagreeing about the meaning of a prefix is a
// caller error with no recovery path; the current validation must abort.
var ErrPrefixConflict = errors.New("namespace prefix conflict")

// Registry is an additive-only mapping from prefix to namespace IRI. A
// prefix, once bound, maps to the same IRI for the registry's lifetime.
// Registry is not safe for concurrent use; give each concurrent caller its
// own validator instance.
type Registry struct {
	prefixes map[string]string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{prefixes: make(map[string]string)}
}

// Bind registers or confirms a prefix binding. Rebinding a prefix to a
// different namespace fails with ErrPrefixConflict.
func (r *Registry) Bind(prefix, ns string) error {
	if existing, ok := r.prefixes[prefix]; ok {
		if existing != ns {
			return fmt.Errorf("%w: prefix %q bound to %s, cannot rebind to %s",
				ErrPrefixConflict, prefix, existing, ns)
		}
		return nil
	}
	r.prefixes[prefix] = ns
	return nil
}

// RegisterAll binds every prefix exposed by the graph's own namespace
// bindings. Prefixes are visited in lexical order so conflict errors are
// deterministic.
func (r *Registry) RegisterAll(g *rdf.Graph) error {
	namespaces := g.Namespaces()
	prefixes := make([]string, 0, len(namespaces))
	for prefix := range namespaces {
		prefixes = append(prefixes, prefix)
	}
	sort.Strings(prefixes)
	for _, prefix := range prefixes {
		if err := r.Bind(prefix, namespaces[prefix]); err != nil {
			return err
		}
	}
	return nil
}

// Snapshot returns a copy of the current mapping.
func (r *Registry) Snapshot() map[string]string {
	out := make(map[string]string, len(r.prefixes))
	for prefix, ns := range r.prefixes {
		out[prefix] = ns
	}
	return out
}

// Len returns the number of bound prefixes.
func (r *Registry) Len() int { return len(r.prefixes) }

// PrefixesFor returns every prefix bound to exactly the given namespace
// IRI, in lexical order.
func (r *Registry) PrefixesFor(ns string) []string {
	var out []string
	for prefix, bound := range r.prefixes {
		if bound == ns {
			out = append(out, prefix)
		}
	}
	sort.Strings(out)
	return out
}

// Expand resolves a prefixed name like "brick:hasPoint" against the
// registry. Full IRIs wrapped in angle brackets and strings without a colon
// pass through unchanged.
func (r *Registry) Expand(name string) (rdf.IRI, error) {
	if strings.HasPrefix(name, "<") && strings.HasSuffix(name, ">") {
		return rdf.IRI(name[1 : len(name)-1]), nil
	}
	idx := strings.Index(name, ":")
	if idx < 0 {
		return rdf.IRI(name), nil
	}
	prefix, local := name[:idx], name[idx+1:]
	// Leave absolute IRIs such as http://... alone.
	if strings.HasPrefix(local, "//") {
		return rdf.IRI(name), nil
	}
	ns, ok := r.prefixes[prefix]
	if !ok {
		return "", fmt.Errorf("unknown namespace prefix %q in %q", prefix, name)
	}
	return rdf.IRI(ns + local), nil
}
