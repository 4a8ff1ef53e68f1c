// Package graph provides the simple graph used to hold a semantic network
// relation.
//
// A Graph is either directed or undirected and never holds parallel edges:
// adding an edge that already exists is a no-op. Nodes are opaque string
// identifiers (semantic type names in this repository).
//
// # Insertion Direction
//
// Every edge is recorded with the direction it was inserted in, even when
// the graph is undirected. InDegree and Roots are computed from that
// direction, so a taxonomy loaded as undirected still knows which of its
// nodes were never the target of an edge:
//
//	g := graph.NewUndirected()
//	g.AddEdge("Entity", "Physical Object")
//	g.Roots() // [Entity]
//	g.Neighbors("Physical Object") // [Entity]
//
// # Concurrency
//
// A Graph is not safe for concurrent mutation. Graphs handed out by the
// umls package are fully built before publication and must be treated as
// read-only by callers.
package graph
