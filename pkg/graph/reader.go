package graph

import (
	"bufio"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// A token is either a parenthesized tuple or an integer
var tokenPattern = regexp.MustCompile(`\(.*?\)|-?\d+`)

// ReadFile reads a graph from its textual description:
//
//	# comment
//	0 1          edge between integer nodes
//	(0,0) (0,1)  edge between tuple nodes
//	5            isolated node
func ReadFile(path string) (*Graph, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "cannot open graph file")
	}
	defer file.Close()

	g, err := Read(file)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read graph %v", path)
	}
	return g, nil
}

func Read(r io.Reader) (*Graph, error) {
	g := New()
	scanner := bufio.NewScanner(r)

	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		// Skip blank lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		tokens := tokenPattern.FindAllString(line, -1)
		switch len(tokens) {
		case 1:
			node, err := ParseNode(tokens[0])
			if err != nil {
				return nil, errors.Wrapf(err, "line %d", lineNumber)
			}
			g.AddNode(node)
		case 2:
			u, err := ParseNode(tokens[0])
			if err != nil {
				return nil, errors.Wrapf(err, "line %d", lineNumber)
			}
			v, err := ParseNode(tokens[1])
			if err != nil {
				return nil, errors.Wrapf(err, "line %d", lineNumber)
			}
			if err := g.AddEdge(u, v); err != nil {
				return nil, errors.Wrapf(err, "line %d", lineNumber)
			}
		default:
			return nil, errors.Errorf("line %d: unrecognized line %q (expected one or two nodes)", lineNumber, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "error reading graph")
	}
	return g, nil
}

// Write renders g in the format accepted by Read: edges first, then isolated nodes
func Write(w io.Writer, g *Graph) error {
	buffered := bufio.NewWriter(w)
	for _, edge := range g.Edges() {
		if _, err := buffered.WriteString(edge.U.String() + " " + edge.V.String() + "\n"); err != nil {
			return err
		}
	}
	for _, node := range g.Nodes() {
		if len(g.adjacency[node]) == 0 {
			if _, err := buffered.WriteString(node.String() + "\n"); err != nil {
				return err
			}
		}
	}
	return buffered.Flush()
}
