package graph

import (
	"maps"
	"slices"
)

// Edge is an edge as it was inserted, From → To.
type Edge struct {
	From string
	To   string
}

// Graph is a directed or undirected simple graph over string nodes.
type Graph struct {
	directed bool
	// adj holds successors for directed graphs and neighbours (both
	// directions) for undirected ones.
	adj map[string]map[string]struct{}
	// in holds the sources of every edge pointing at a node, by insertion
	// direction, regardless of directedness.
	in    map[string]map[string]struct{}
	edges []Edge
}

// NewDirected returns an empty directed graph.
func NewDirected() *Graph {
	return newGraph(true)
}

// NewUndirected returns an empty undirected graph.
func NewUndirected() *Graph {
	return newGraph(false)
}

func newGraph(directed bool) *Graph {
	return &Graph{
		directed: directed,
		adj:      make(map[string]map[string]struct{}),
		in:       make(map[string]map[string]struct{}),
	}
}

// Directed reports whether g is directed.
func (g *Graph) Directed() bool { return g.directed }

// AddNode adds id to the graph. It reports whether the node was new.
func (g *Graph) AddNode(id string) bool {
	if _, ok := g.adj[id]; ok {
		return false
	}
	g.adj[id] = make(map[string]struct{})
	g.in[id] = make(map[string]struct{})
	return true
}

// AddEdge adds the edge from → to, adding missing endpoints. It reports
// whether the edge was new. For undirected graphs {from, to} and {to, from}
// are the same edge and Edges keeps the first direction, but both insertion
// directions still count towards InDegree.
func (g *Graph) AddEdge(from, to string) bool {
	g.AddNode(from)
	g.AddNode(to)
	g.in[to][from] = struct{}{}
	if g.HasEdge(from, to) {
		return false
	}
	g.adj[from][to] = struct{}{}
	if !g.directed {
		g.adj[to][from] = struct{}{}
	}
	g.edges = append(g.edges, Edge{From: from, To: to})
	return true
}

// HasNode reports whether id is in the graph.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.adj[id]
	return ok
}

// HasEdge reports whether the edge from → to exists. For undirected graphs
// the order of the endpoints does not matter.
func (g *Graph) HasEdge(from, to string) bool {
	succ, ok := g.adj[from]
	if !ok {
		return false
	}
	_, ok = succ[to]
	return ok
}

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.adj) }

// Size returns the number of edges.
func (g *Graph) Size() int { return len(g.edges) }

// Nodes returns all nodes in sorted order.
func (g *Graph) Nodes() []string {
	return slices.Sorted(maps.Keys(g.adj))
}

// Edges returns the edges in insertion order and direction.
func (g *Graph) Edges() []Edge {
	return slices.Clone(g.edges)
}

// Successors returns the targets of edges leaving id, sorted. For undirected
// graphs these are all neighbours of id.
func (g *Graph) Successors(id string) []string {
	return slices.Sorted(maps.Keys(g.adj[id]))
}

// Predecessors returns the sources of edges entering id, sorted. For
// undirected graphs these are all neighbours of id.
func (g *Graph) Predecessors(id string) []string {
	if !g.directed {
		return g.Neighbors(id)
	}
	return slices.Sorted(maps.Keys(g.in[id]))
}

// Neighbors returns every node adjacent to id in either direction, sorted.
func (g *Graph) Neighbors(id string) []string {
	seen := make(map[string]struct{}, len(g.adj[id])+len(g.in[id]))
	for n := range g.adj[id] {
		seen[n] = struct{}{}
	}
	for n := range g.in[id] {
		seen[n] = struct{}{}
	}
	return slices.Sorted(maps.Keys(seen))
}

// InDegree returns the number of distinct nodes that were inserted as the
// source of an edge ending at id. It is 0 for unknown nodes.
func (g *Graph) InDegree(id string) int {
	return len(g.in[id])
}

// Roots returns the nodes that are not the target of any inserted edge,
// sorted.
func (g *Graph) Roots() []string {
	var roots []string
	for id, src := range g.in {
		if len(src) == 0 {
			roots = append(roots, id)
		}
	}
	slices.Sort(roots)
	return roots
}
