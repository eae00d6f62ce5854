package graph

import (
	"slices"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

var ErrSelfLoop = errors.New("self-loops are not allowed in a simple graph")

// Edge is an undirected edge normalized so that Compare(U, V) < 0
type Edge struct {
	U, V Node
}

func NewEdge(u, v Node) Edge {
	if Compare(u, v) > 0 {
		u, v = v, u
	}
	return Edge{U: u, V: v}
}

// Graph is a simple undirected graph. Callers build it once and then treat it as read-only.
type Graph struct {
	adjacency map[Node]map[Node]bool
	edges     int
}

func New() *Graph {
	return &Graph{adjacency: make(map[Node]map[Node]bool)}
}

func (g *Graph) AddNode(node Node) {
	if _, ok := g.adjacency[node]; !ok {
		g.adjacency[node] = make(map[Node]bool)
	}
}

func (g *Graph) AddEdge(u, v Node) error {
	if u == v {
		return errors.Wrapf(ErrSelfLoop, "edge (%v, %v)", u, v)
	}
	g.AddNode(u)
	g.AddNode(v)
	if !g.adjacency[u][v] {
		g.adjacency[u][v] = true
		g.adjacency[v][u] = true
		g.edges++
	}
	return nil
}

func (g *Graph) HasNode(node Node) bool {
	_, ok := g.adjacency[node]
	return ok
}

func (g *Graph) HasEdge(u, v Node) bool {
	return g.adjacency[u][v]
}

func (g *Graph) NumNodes() int {
	return len(g.adjacency)
}

func (g *Graph) NumEdges() int {
	return g.edges
}

// Nodes returns every node in natural order
func (g *Graph) Nodes() []Node {
	nodes := lo.Keys(g.adjacency)
	slices.SortFunc(nodes, Compare)
	return nodes
}

// Edges returns every edge once, normalized and sorted
func (g *Graph) Edges() []Edge {
	edges := make([]Edge, 0, g.edges)
	for u, neighbors := range g.adjacency {
		for v := range neighbors {
			if Compare(u, v) < 0 {
				edges = append(edges, Edge{U: u, V: v})
			}
		}
	}
	slices.SortFunc(edges, func(a, b Edge) int {
		if c := Compare(a.U, b.U); c != 0 {
			return c
		}
		return Compare(a.V, b.V)
	})
	return edges
}

// Neighbors returns the neighbors of node in natural order
func (g *Graph) Neighbors(node Node) []Node {
	neighbors := lo.Keys(g.adjacency[node])
	slices.SortFunc(neighbors, Compare)
	return neighbors
}
