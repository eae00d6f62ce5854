package graph

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// MaxArity is the largest tuple a node identifier may carry (chimera coordinates use four)
const MaxArity = 4

// Node identifies a graph vertex: either a plain integer or a tuple of integers.
// Node is comparable so it can be used as a map key.
type Node struct {
	coords [MaxArity]int
	arity  int // 0 stands for a plain integer stored in coords[0]
}

// Int returns an integer node
func Int(value int) Node {
	return Node{coords: [MaxArity]int{value}}
}

// Tuple returns a tuple node; it panics if more than MaxArity coordinates are given
func Tuple(coords ...int) Node {
	if len(coords) == 0 || len(coords) > MaxArity {
		panic(fmt.Sprintf("tuple node must have between 1 and %v coordinates: got %v", MaxArity, len(coords)))
	}
	node := Node{arity: len(coords)}
	copy(node.coords[:], coords)
	return node
}

func (node Node) IsTuple() bool {
	return node.arity > 0
}

// Coords returns the tuple's coordinates, or a single-element slice for an integer node
func (node Node) Coords() []int {
	if node.arity == 0 {
		return []int{node.coords[0]}
	}
	return append([]int(nil), node.coords[:node.arity]...)
}

func (node Node) String() string {
	if node.arity == 0 {
		return strconv.Itoa(node.coords[0])
	}
	// A 1-tuple keeps its trailing comma, e.g. "(3,)"
	if node.arity == 1 {
		return fmt.Sprintf("(%d,)", node.coords[0])
	}
	return "(" + strings.Join(lo.Map(node.Coords(), func(coord int, _ int) string { return strconv.Itoa(coord) }), ", ") + ")"
}

// MarshalJSON renders integers as numbers and tuples as arrays
func (node Node) MarshalJSON() ([]byte, error) {
	if node.arity == 0 {
		return json.Marshal(node.coords[0])
	}
	return json.Marshal(node.Coords())
}

// Compare defines the natural total order on nodes: integers first, then tuples by arity, then lexicographically
func Compare(a, b Node) int {
	if a.arity != b.arity {
		if a.arity < b.arity {
			return -1
		}
		return 1
	}

	length := max(a.arity, 1)
	for i := range length {
		if a.coords[i] < b.coords[i] {
			return -1
		} else if a.coords[i] > b.coords[i] {
			return 1
		}
	}
	return 0
}

// ParseNode parses "7", "(0,1)" or "(0, 1, 2)"
func ParseNode(token string) (Node, error) {
	token = strings.TrimSpace(token)

	if strings.HasPrefix(token, "(") && strings.HasSuffix(token, ")") {
		inner := strings.TrimSpace(token[1 : len(token)-1])
		parts := strings.Split(inner, ",")
		// Python-style 1-tuples end with a comma
		if len(parts) > 1 && strings.TrimSpace(parts[len(parts)-1]) == "" {
			parts = parts[:len(parts)-1]
		}
		if len(parts) == 0 || len(parts) > MaxArity {
			return Node{}, errors.Errorf("invalid tuple node %q: between 1 and %v coordinates are supported", token, MaxArity)
		}

		coords := make([]int, 0, len(parts))
		for _, part := range parts {
			coord, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				return Node{}, errors.Wrapf(err, "invalid tuple node %q", token)
			}
			coords = append(coords, coord)
		}
		return Tuple(coords...), nil
	}

	value, err := strconv.Atoi(token)
	if err != nil {
		return Node{}, errors.Wrapf(err, "invalid node %q", token)
	}
	return Int(value), nil
}
