package embedding

import (
	"fmt"

	"github.com/limaJavier/minorembed/pkg/graph"
)

// Scheme gives a unique variable index to every (logical, physical) node pair and vice versa.
// Indices run from 1 to n*m, logical nodes in the outer order and physical nodes in the inner
// order, both sorted naturally. A Scheme is never mutated after construction.
type Scheme struct {
	logical       []graph.Node
	physical      []graph.Node
	logicalIndex  map[graph.Node]uint64
	physicalIndex map[graph.Node]uint64
}

func NewScheme(logical, physical *graph.Graph) *Scheme {
	scheme := &Scheme{
		logical:       logical.Nodes(),
		physical:      physical.Nodes(),
		logicalIndex:  make(map[graph.Node]uint64),
		physicalIndex: make(map[graph.Node]uint64),
	}
	for i, node := range scheme.logical {
		scheme.logicalIndex[node] = uint64(i)
	}
	for a, node := range scheme.physical {
		scheme.physicalIndex[node] = uint64(a)
	}
	return scheme
}

// Index returns the variable x(logical, physical); both nodes must belong to the scheme
func (scheme *Scheme) Index(logical, physical graph.Node) uint64 {
	i, ok := scheme.logicalIndex[logical]
	if !ok {
		panic(fmt.Sprintf("logical node %v is not part of the scheme", logical))
	}
	a, ok := scheme.physicalIndex[physical]
	if !ok {
		panic(fmt.Sprintf("physical node %v is not part of the scheme", physical))
	}
	return i*uint64(len(scheme.physical)) + a + 1
}

// Attributes returns the node pair of a variable index in [1, Variables()]
func (scheme *Scheme) Attributes(index uint64) (logical, physical graph.Node) {
	if !scheme.Contains(index) {
		panic(fmt.Sprintf("variable %v is outside the scheme's range [1, %v]", index, scheme.Variables()))
	}
	index = index - 1
	m := uint64(len(scheme.physical))
	return scheme.logical[index/m], scheme.physical[index%m]
}

func (scheme *Scheme) Contains(index uint64) bool {
	return index >= 1 && index <= scheme.Variables()
}

func (scheme *Scheme) Variables() uint64 {
	return uint64(len(scheme.logical)) * uint64(len(scheme.physical))
}

func (scheme *Scheme) LogicalNodes() []graph.Node {
	return scheme.logical
}

func (scheme *Scheme) PhysicalNodes() []graph.Node {
	return scheme.physical
}

// literal returns x(logical, physical) as a positive DIMACS literal
func (scheme *Scheme) literal(logical, physical graph.Node) int64 {
	return int64(scheme.Index(logical, physical))
}
