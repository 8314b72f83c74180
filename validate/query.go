package validate

import (
	"fmt"

	"github.com/buildsem/brickcheck/rdf"
)

// queryDataGraph executes a triple-pattern query against the data graph of
// the current validate call. Each pattern is a prefixed name, a full IRI in
// angle brackets, or the empty string as a wildcard. An empty result fails
// with ErrNotFound; callers for whom absence is legitimate must treat that
// error as a branch, not a failure.
func (v *Validator) queryDataGraph(s, p, o string) ([]rdf.Triple, error) {
	subject, err := v.resolvePattern(s)
	if err != nil {
		return nil, err
	}
	predicate, err := v.resolvePattern(p)
	if err != nil {
		return nil, err
	}
	object, err := v.resolvePattern(o)
	if err != nil {
		return nil, err
	}

	matches := v.dataG.Match(subject, predicate, object)
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: pattern (%s %s %s)",
			ErrNotFound, orWildcard(s), orWildcard(p), orWildcard(o))
	}
	return matches, nil
}

func (v *Validator) resolvePattern(pattern string) (rdf.Term, error) {
	if pattern == "" {
		return nil, nil
	}
	iri, err := v.namespaces.Expand(pattern)
	if err != nil {
		return nil, err
	}
	return iri, nil
}

func orWildcard(pattern string) string {
	if pattern == "" {
		return "?"
	}
	return pattern
}
