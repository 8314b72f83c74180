package shacl

import "github.com/buildsem/brickcheck/rdf"

// typeResolver answers rdf:type membership questions against the working
// graph, optionally widened by the rdfs:subClassOf closure.
type typeResolver struct {
	asserted map[rdf.Term][]rdf.Term
	supers   map[rdf.Term]map[rdf.Term]struct{}
	infer    bool
}

// typeIndex builds a resolver over the working graph for the given
// inference mode. The rdfs, owlrl, and both modes all apply the subclass
// closure; owlrl-specific rules beyond it are not implemented.
func typeIndex(working *rdf.Graph, mode Inference) *typeResolver {
	r := &typeResolver{
		asserted: make(map[rdf.Term][]rdf.Term),
		supers:   make(map[rdf.Term]map[rdf.Term]struct{}),
		infer:    mode != InferenceNone && mode != "",
	}

	direct := make(map[rdf.Term][]rdf.Term)
	for _, t := range working.Triples() {
		switch t.Predicate {
		case rdf.Term(rdf.RDFType):
			r.asserted[t.Subject] = append(r.asserted[t.Subject], t.Object)
		case rdf.Term(rdf.RDFSSubClass):
			direct[t.Subject] = append(direct[t.Subject], t.Object)
		}
	}

	if !r.infer {
		return r
	}
	for class := range direct {
		closure := make(map[rdf.Term]struct{})
		collectSupers(class, direct, closure)
		r.supers[class] = closure
	}
	return r
}

func collectSupers(class rdf.Term, direct map[rdf.Term][]rdf.Term, closure map[rdf.Term]struct{}) {
	for _, super := range direct[class] {
		if _, ok := closure[super]; ok {
			continue
		}
		closure[super] = struct{}{}
		collectSupers(super, direct, closure)
	}
}

// isInstance reports whether node has the class as an asserted or (under
// inference) inherited rdf:type.
func (r *typeResolver) isInstance(node, class rdf.Term) bool {
	for _, t := range r.asserted[node] {
		if t == class {
			return true
		}
		if !r.infer {
			continue
		}
		if _, ok := r.supers[t][class]; ok {
			return true
		}
	}
	return false
}
