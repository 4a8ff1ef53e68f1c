// Package umls loads the UMLS Semantic Network from a relational UMLS
// installation and exposes its relations as graphs.
//
// The Semantic Network defines the semantic types of the Metathesaurus and
// the relationships between them. Two tables are read: SRDEF, the type and
// relation definitions, and SRSTR, the (type, relation, type) structure.
// Semantic groups come from the pipe-delimited SemGroups.txt file.
//
// # Sessions
//
// A SemanticNetwork is built from an explicit Config:
//
//	cfg, err := umls.LoadConfig("semnet.yaml")
//	if err != nil {
//	    return err
//	}
//	sn, err := umls.New(ctx, cfg, umls.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	defer sn.Close()
//
// Tests and callers that already hold a connection inject it with
// WithDriver, and a preloaded group table with WithGroups.
//
// # Relation Graphs
//
// Graph loads every SRSTR row of a relation whose ends are semantic types
// and inserts an edge parent → child per row (the second type of the row is
// the parent). When the relation has more than one root, a node named ROOT
// is added above them:
//
//	isa, err := sn.Graph(ctx, "isa")
//	isa.Successors(umls.Root) // [Entity Event]
//
// Graphs are cached per relation for the lifetime of the session, whatever
// options later calls pass. Concurrent first requests for the same
// relation share one query. A failed query is not cached.
package umls
