// Package report renders enriched violation graphs as compact text blocks
// appended after the validation engine's own summary.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/buildsem/brickcheck/rdf"
	"github.com/buildsem/brickcheck/vocabulary/brick"
)

// unresolvedPlaceholder flags a violation no triple finder handled, so it
// stays visible to a human reviewer instead of rendering as an empty section.
const unresolvedPlaceholder = "Please add triple finder for the above violation!!!\n"

// Serializer writes violation graphs, with their offending-triple
// attachments, to an output stream.
type Serializer struct {
	violations []*rdf.Graph
	namespaces map[string]string
	out        io.Writer
}

// NewSerializer builds a serializer over the given violations. The
// namespace mapping is used to compact IRIs in every rendered graph.
func NewSerializer(violations []*rdf.Graph, namespaces map[string]string, out io.Writer) *Serializer {
	return &Serializer{
		violations: violations,
		namespaces: namespaces,
		out:        out,
	}
}

// AppendToOutput renders every violation and its offending triples.
func (s *Serializer) AppendToOutput() error {
	_, err := fmt.Fprintf(s.out,
		"\nAdditional info (%d constraint violations with offending triples):\n",
		len(s.violations))
	if err != nil {
		return err
	}

	for _, violation := range s.violations {
		if err := s.appendViolation("\nConstraint violation:\n", violation); err != nil {
			return err
		}
	}
	return nil
}

// appendViolation renders the violation body, then each attached inner
// graph under its own heading.
func (s *Serializer) appendViolation(msg string, violation *rdf.Graph) error {
	if err := s.appendGraph(msg, violation); err != nil {
		return err
	}

	var inner []*rdf.Graph
	for _, t := range violation.Triples() {
		if t.Predicate != rdf.Term(brick.OffendingTriple) {
			continue
		}
		if gt, ok := t.Object.(rdf.GraphTerm); ok {
			inner = append(inner, gt.Graph)
		}
	}

	if len(inner) == 0 {
		_, err := io.WriteString(s.out, unresolvedPlaceholder)
		return err
	}

	heading := "Offending triple:\n"
	if len(inner) > 1 {
		heading = "Potential offending triples:\n"
	}
	if _, err := io.WriteString(s.out, heading); err != nil {
		return err
	}
	for _, g := range inner {
		if err := s.appendGraph("", g); err != nil {
			return err
		}
	}
	return nil
}

// appendGraph serializes a graph, suppressing prefix declarations, blank
// lines, and the offending-triple framing lines (that predicate only links
// an inner graph and carries no information of its own).
func (s *Serializer) appendGraph(msg string, g *rdf.Graph) error {
	if msg != "" {
		if _, err := io.WriteString(s.out, msg); err != nil {
			return err
		}
	}

	_, marker := brick.OffendingTriple.Split()
	for _, line := range strings.Split(g.Serialize(s.namespaces), "\n") {
		if strings.HasPrefix(line, "@prefix") ||
			strings.Contains(line, marker) ||
			strings.TrimSpace(line) == "" {
			continue
		}
		if _, err := fmt.Fprintln(s.out, line); err != nil {
			return err
		}
	}
	return nil
}
