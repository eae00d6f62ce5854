package embedding

import (
	"github.com/limaJavier/minorembed/pkg/graph"
	"github.com/onsi/gomega/matchers/support/goraph/bipartitegraph"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

var ErrInvalidEmbedding = errors.New("invalid embedding")

// Verify checks that embedding places every logical node on a physical node, that no physical
// node hosts two logical nodes unless sharing is allowed, and that every logical edge lands on a
// physical edge (or on a single node, when sharing is allowed)
func Verify(embedding Embedding, logical, physical *graph.Graph, allowSharedPhysical bool) error {
	logicalNodes := logical.Nodes()

	for _, node := range logicalNodes {
		host, ok := embedding[node]
		if !ok {
			return errors.Wrapf(ErrInvalidEmbedding, "logical node %v is not assigned", node)
		}
		if !physical.HasNode(host) {
			return errors.Wrapf(ErrInvalidEmbedding, "logical node %v is assigned to unknown physical node %v", node, host)
		}
	}

	if !allowSharedPhysical {
		injective, err := injective(embedding, logicalNodes)
		if err != nil {
			return err
		}
		if !injective {
			return errors.Wrap(ErrInvalidEmbedding, "two logical nodes share a physical node")
		}
	}

	for _, edge := range logical.Edges() {
		a, b := embedding[edge.U], embedding[edge.V]
		if a == b && allowSharedPhysical {
			continue
		}
		if !physical.HasEdge(a, b) {
			return errors.Wrapf(ErrInvalidEmbedding, "logical edge (%v, %v) maps to non-adjacent physical nodes (%v, %v)", edge.U, edge.V, a, b)
		}
	}

	return nil
}

// injective reports whether every logical node can be matched to its own host, i.e. whether the
// largest matching between logical nodes and hosts covers every logical node
func injective(embedding Embedding, logicalNodes []graph.Node) (bool, error) {
	hosts := lo.Uniq(lo.Map(logicalNodes, func(node graph.Node, _ int) graph.Node { return embedding[node] }))

	// Transform nodes to slices of any
	logicalAny := lo.Map(logicalNodes, func(node graph.Node, _ int) any { return node })
	hostsAny := lo.Map(hosts, func(node graph.Node, _ int) any { return node })

	neighbors := func(logicalAny any, hostAny any) (bool, error) {
		return embedding[logicalAny.(graph.Node)] == hostAny.(graph.Node), nil
	}

	bipartite, err := bipartitegraph.NewBipartiteGraph(logicalAny, hostsAny, neighbors)
	if err != nil {
		return false, errors.Wrap(err, "cannot build assignment graph")
	}

	return len(bipartite.LargestMatching()) == len(logicalNodes), nil
}
