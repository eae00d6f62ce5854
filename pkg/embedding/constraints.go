package embedding

import (
	"github.com/limaJavier/minorembed/pkg/graph"
)

type constraintState struct {
	scheme              *Scheme
	logical             *graph.Graph
	physical            *graph.Graph
	physicalEdges       map[graph.Edge]bool // Normalized (min, max) pairs
	allowSharedPhysical bool
}

// Every logical node maps to exactly one physical node: one at-least-one clause over x(i, .)
// followed by pairwise at-most-one clauses
func exactlyOneConstraints(state constraintState) []Clause {
	physical := state.scheme.PhysicalNodes()
	m := len(physical)
	clauses := make([]Clause, 0, len(state.scheme.LogicalNodes())*(1+m*(m-1)/2))

	for _, i := range state.scheme.LogicalNodes() {
		atLeastOne := make([]int64, 0, m)
		for _, a := range physical {
			atLeastOne = append(atLeastOne, state.scheme.literal(i, a))
		}
		clauses = append(clauses, Clause{Literals: atLeastOne, Kind: AtLeastOne})

		for p := range m - 1 {
			for q := p + 1; q < m; q++ {
				clauses = append(clauses, Clause{
					Literals: []int64{-state.scheme.literal(i, physical[p]), -state.scheme.literal(i, physical[q])},
					Kind:     AtMostOne,
				})
			}
		}
	}

	return clauses
}

// No physical node hosts two logical nodes, unless sharing is allowed
func mutualExclusionConstraints(state constraintState) []Clause {
	if state.allowSharedPhysical {
		return nil
	}

	logical := state.scheme.LogicalNodes()
	n := len(logical)
	clauses := make([]Clause, 0, len(state.scheme.PhysicalNodes())*n*max(n-1, 0)/2)

	for _, a := range state.scheme.PhysicalNodes() {
		for p := range n - 1 {
			for q := p + 1; q < n; q++ {
				clauses = append(clauses, Clause{
					Literals: []int64{-state.scheme.literal(logical[p], a), -state.scheme.literal(logical[q], a)},
					Kind:     MutualExclusion,
				})
			}
		}
	}

	return clauses
}

// The endpoints of every logical edge land on distinct, adjacent physical nodes: every ordered
// physical pair (a, b) that is not a physical edge, a == b included, is forbidden
func edgeConsistencyConstraints(state constraintState) []Clause {
	clauses := make([]Clause, 0)
	physical := state.scheme.PhysicalNodes()

	for _, edge := range state.logical.Edges() {
		i, j := edge.U, edge.V
		for _, a := range physical {
			for _, b := range physical {
				if a == b || !state.physicalEdges[graph.NewEdge(a, b)] {
					clauses = append(clauses, Clause{
						Literals: []int64{-state.scheme.literal(i, a), -state.scheme.literal(j, b)},
						Kind:     EdgeConsistency,
					})
				}
			}
		}
	}

	return clauses
}
