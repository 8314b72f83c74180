package rdf

import (
	"fmt"
	"strings"
)

// Serialize renders the graph as Turtle using the given prefix bindings for
// compaction. Triples are grouped by subject in insertion order, so output
// is deterministic for a deterministically built graph.
func (g *Graph) Serialize(prefixes map[string]string) string {
	var sb strings.Builder

	for _, prefix := range sortedPrefixes(prefixes) {
		sb.WriteString(fmt.Sprintf("@prefix %s: <%s> .\n", prefix, prefixes[prefix]))
	}
	if len(prefixes) > 0 {
		sb.WriteString("\n")
	}

	var subjects []Term
	bySubject := make(map[Term][]Triple)
	for _, t := range g.triples {
		if _, ok := bySubject[t.Subject]; !ok {
			subjects = append(subjects, t.Subject)
		}
		bySubject[t.Subject] = append(bySubject[t.Subject], t)
	}

	for _, subject := range subjects {
		writeSubjectBlock(&sb, subject, bySubject[subject], prefixes)
		sb.WriteString("\n")
	}

	return sb.String()
}

func writeSubjectBlock(sb *strings.Builder, subject Term, triples []Triple, prefixes map[string]string) {
	for i, t := range triples {
		verb := formatTerm(t.Predicate, prefixes)
		if t.Predicate == RDFType {
			verb = "a"
		}
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%s %s %s", formatTerm(subject, prefixes), verb, formatTerm(t.Object, prefixes)))
		} else {
			sb.WriteString(fmt.Sprintf("    %s %s", verb, formatTerm(t.Object, prefixes)))
		}
		if i < len(triples)-1 {
			sb.WriteString(" ;\n")
		} else {
			sb.WriteString(" .\n")
		}
	}
}

// formatTerm renders a term in Turtle syntax, compacting IRIs to prefixed
// names where a binding covers them.
func formatTerm(term Term, prefixes map[string]string) string {
	switch t := term.(type) {
	case IRI:
		return formatIRI(t, prefixes)
	case BlankNode:
		return "_:" + string(t)
	case GraphTerm:
		return "_:" + t.Graph.label
	case Literal:
		return formatLiteral(t, prefixes)
	default:
		return fmt.Sprintf("%q", term.String())
	}
}

func formatIRI(iri IRI, prefixes map[string]string) string {
	best := ""
	bestPrefix := ""
	for _, prefix := range sortedPrefixes(prefixes) {
		ns := prefixes[prefix]
		if ns == "" || !strings.HasPrefix(string(iri), ns) || len(ns) <= len(best) {
			continue
		}
		local := string(iri)[len(ns):]
		if !validLocalName(local) {
			continue
		}
		best = ns
		bestPrefix = prefix
	}
	if best == "" {
		return fmt.Sprintf("<%s>", string(iri))
	}
	return bestPrefix + ":" + string(iri)[len(best):]
}

func validLocalName(local string) bool {
	for _, c := range local {
		if !isLocalChar(c) {
			return false
		}
	}
	return !strings.HasSuffix(local, ".")
}

func formatLiteral(l Literal, prefixes map[string]string) string {
	quoted := fmt.Sprintf("\"%s\"", escapeLiteral(l.Value))
	if l.Lang != "" {
		return quoted + "@" + l.Lang
	}
	if l.Datatype != "" && l.Datatype != XSDString {
		return quoted + "^^" + formatIRI(l.Datatype, prefixes)
	}
	return quoted
}

// escapeLiteral escapes special characters for Turtle literal output.
func escapeLiteral(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\r", "\\r")
	s = strings.ReplaceAll(s, "\t", "\\t")
	return s
}
