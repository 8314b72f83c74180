package shacl

import (
	"fmt"
	"strings"

	"github.com/buildsem/brickcheck/rdf"
	"github.com/buildsem/brickcheck/vocabulary/sh"
)

// buildReport assembles the flat results graph in the standard validation
// report shape: one report node linked to each violation node via sh:result.
// Prefix bindings from the data and shapes graphs are carried over so the
// report is self-describing.
func buildReport(violations []violation, data, shapes *rdf.Graph) *rdf.Graph {
	g := rdf.NewGraph()
	g.Bind("sh", sh.Namespace)
	g.Bind("rdf", rdf.NamespaceRDF)
	bindMissing(g, shapes.Namespaces())
	bindMissing(g, data.Namespaces())

	report := rdf.NewBlankNode()
	g.Add(rdf.Triple{Subject: report, Predicate: rdf.RDFType, Object: sh.ValidationReport})
	g.Add(rdf.Triple{
		Subject:   report,
		Predicate: sh.Conforms,
		Object:    rdf.TypedLiteral(fmt.Sprintf("%t", len(violations) == 0), rdf.XSDBoolean),
	})

	for _, v := range violations {
		vnode := rdf.NewBlankNode()
		g.Add(rdf.Triple{Subject: report, Predicate: sh.Result, Object: vnode})
		g.Add(rdf.Triple{Subject: vnode, Predicate: rdf.RDFType, Object: sh.ValidationResult})
		g.Add(rdf.Triple{Subject: vnode, Predicate: sh.ResultSeverity, Object: sh.Violation})
		g.Add(rdf.Triple{Subject: vnode, Predicate: sh.SourceConstraintComponent, Object: v.component})
		g.Add(rdf.Triple{Subject: vnode, Predicate: sh.SourceShape, Object: v.shape})
		g.Add(rdf.Triple{Subject: vnode, Predicate: sh.FocusNode, Object: v.focus})
		if v.path != nil {
			g.Add(rdf.Triple{Subject: vnode, Predicate: sh.ResultPath, Object: v.path})
		}
		if v.value != nil {
			g.Add(rdf.Triple{Subject: vnode, Predicate: sh.Value, Object: v.value})
		}
		if v.message != "" {
			g.Add(rdf.Triple{Subject: vnode, Predicate: sh.ResultMessage, Object: rdf.NewLiteral(v.message)})
		}
	}
	return g
}

func bindMissing(g *rdf.Graph, namespaces map[string]string) {
	bound := g.Namespaces()
	for prefix, ns := range namespaces {
		if _, ok := bound[prefix]; !ok {
			g.Bind(prefix, ns)
		}
	}
}

// reportText renders the engine's human-readable summary.
func reportText(violations []violation) string {
	var sb strings.Builder
	sb.WriteString("Validation Report\n")
	if len(violations) == 0 {
		sb.WriteString("Conforms: True\n")
		return sb.String()
	}

	sb.WriteString("Conforms: False\n")
	sb.WriteString(fmt.Sprintf("Results (%d):\n", len(violations)))
	for _, v := range violations {
		_, component := v.component.Split()
		sb.WriteString(fmt.Sprintf("Constraint Violation in %s (%s):\n", component, v.component))
		sb.WriteString("\tSeverity: sh:Violation\n")
		sb.WriteString(fmt.Sprintf("\tSource Shape: %s\n", v.shape.String()))
		sb.WriteString(fmt.Sprintf("\tFocus Node: %s\n", v.focus.String()))
		if v.path != nil {
			sb.WriteString(fmt.Sprintf("\tResult Path: %s\n", v.path.String()))
		}
		if v.value != nil {
			sb.WriteString(fmt.Sprintf("\tValue Node: %s\n", v.value.String()))
		}
		if v.message != "" {
			sb.WriteString(fmt.Sprintf("\tMessage: %s\n", v.message))
		}
	}
	return sb.String()
}
