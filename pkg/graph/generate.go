package graph

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Empty returns n isolated integer nodes 0..n-1
func Empty(n int) *Graph {
	g := New()
	for i := range n {
		g.AddNode(Int(i))
	}
	return g
}

func Path(n int) *Graph {
	g := Empty(n)
	for i := 1; i < n; i++ {
		g.mustAddEdge(Int(i-1), Int(i))
	}
	return g
}

func Cycle(n int) *Graph {
	g := Path(n)
	if n > 2 {
		g.mustAddEdge(Int(n-1), Int(0))
	}
	return g
}

func Complete(n int) *Graph {
	g := Empty(n)
	for i := range n {
		for j := i + 1; j < n; j++ {
			g.mustAddEdge(Int(i), Int(j))
		}
	}
	return g
}

// Star returns a center node 0 joined to leaves 1..n
func Star(n int) *Graph {
	g := Empty(n + 1)
	for i := 1; i <= n; i++ {
		g.mustAddEdge(Int(0), Int(i))
	}
	return g
}

// Grid2D returns a rows x cols lattice whose nodes are (row, col) tuples
func Grid2D(rows, cols int) *Graph {
	g := New()
	for r := range rows {
		for c := range cols {
			g.AddNode(Tuple(r, c))
			if r > 0 {
				g.mustAddEdge(Tuple(r-1, c), Tuple(r, c))
			}
			if c > 0 {
				g.mustAddEdge(Tuple(r, c-1), Tuple(r, c))
			}
		}
	}
	return g
}

// Generate builds a graph from a short description such as "path:4", "complete:3" or "grid:2x3"
func Generate(description string) (*Graph, error) {
	kind, argument, ok := strings.Cut(strings.ToLower(strings.TrimSpace(description)), ":")
	if !ok {
		return nil, errors.Errorf("invalid generator %q: expected <kind>:<size>", description)
	}

	if kind == "grid" {
		rowsStr, colsStr, ok := strings.Cut(argument, "x")
		if !ok {
			return nil, errors.Errorf("invalid grid size %q: expected <rows>x<cols>", argument)
		}
		rows, err := parseSize(rowsStr)
		if err != nil {
			return nil, err
		}
		cols, err := parseSize(colsStr)
		if err != nil {
			return nil, err
		}
		return Grid2D(rows, cols), nil
	}

	size, err := parseSize(argument)
	if err != nil {
		return nil, err
	}

	generators := map[string]func(int) *Graph{
		"empty":    Empty,
		"path":     Path,
		"line":     Path,
		"cycle":    Cycle,
		"complete": Complete,
		"clique":   Complete,
		"star":     Star,
	}
	generator, ok := generators[kind]
	if !ok {
		return nil, errors.Errorf("unknown graph generator %q", kind)
	}
	return generator(size), nil
}

func parseSize(value string) (int, error) {
	size, err := strconv.Atoi(value)
	if err != nil || size < 0 {
		return 0, errors.Errorf("invalid graph size %q", value)
	}
	return size, nil
}

// Generators only join distinct nodes
func (g *Graph) mustAddEdge(u, v Node) {
	if err := g.AddEdge(u, v); err != nil {
		panic(err)
	}
}
