package validate

import _ "embed"

// Default ontology and shape graphs, used when a validate call supplies
// none of its own. Both are Brick subsets sufficient for domain-shape and
// cardinality checking.

//go:embed ontologies/Brick.ttl
var brickTTL string

//go:embed ontologies/BrickShape.ttl
var brickShapeTTL string
