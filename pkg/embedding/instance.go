package embedding

import (
	"fmt"
	"strings"

	"github.com/limaJavier/minorembed/pkg/graph"
	"github.com/limaJavier/minorembed/pkg/sat"
	"github.com/samber/lo"
)

// Clause is a disjunction of signed variable indices tagged with its origin.
// Its position in Instance.Clauses is its index (the DIMACS id is index + 1).
type Clause struct {
	Literals []int64
	Kind     Kind
}

// String renders the clause as "[lit, lit, ..., kind]"
func (clause Clause) String() string {
	items := lo.Map(clause.Literals, func(literal int64, _ int) string { return fmt.Sprint(literal) })
	return "[" + strings.Join(append(items, clause.Kind.String()), ", ") + "]"
}

// Instance is the CNF formulation of embedding a logical graph into a physical one
type Instance struct {
	Scheme              *Scheme
	Clauses             []Clause
	AllowSharedPhysical bool
}

// Encode builds the instance for embedding logical into physical. When allowSharedPhysical is
// true several logical nodes may share a physical node. The clause set is satisfiable iff an
// embedding exists under that policy.
func Encode(logical, physical *graph.Graph, allowSharedPhysical bool) *Instance {
	scheme := NewScheme(logical, physical)

	state := constraintState{
		scheme:              scheme,
		logical:             logical,
		physical:            physical,
		physicalEdges:       lo.SliceToMap(physical.Edges(), func(edge graph.Edge) (graph.Edge, bool) { return edge, true }),
		allowSharedPhysical: allowSharedPhysical,
	}

	// Constraints functions, in emission order
	constraints := []func(state constraintState) []Clause{
		exactlyOneConstraints,
		mutualExclusionConstraints,
		edgeConsistencyConstraints,
	}

	instance := &Instance{Scheme: scheme, AllowSharedPhysical: allowSharedPhysical}
	for _, constraint := range constraints {
		instance.Clauses = append(instance.Clauses, constraint(state)...)
	}
	return instance
}

func (instance *Instance) Variables() uint64 {
	return instance.Scheme.Variables()
}

// SAT returns the solver-facing form of the instance, labelled with each clause's kind
func (instance *Instance) SAT() sat.SAT {
	return sat.SAT{
		Variables: instance.Variables(),
		Clauses:   lo.Map(instance.Clauses, func(clause Clause, _ int) []int64 { return clause.Literals }),
		Labels:    lo.Map(instance.Clauses, func(clause Clause, _ int) string { return clause.Kind.String() }),
	}
}

// WriteDIMACSFile writes the annotated DIMACS artifact, creating or overwriting path
func (instance *Instance) WriteDIMACSFile(path string) error {
	return instance.SAT().WriteDIMACSFile(path)
}

// KindCounts returns how many clauses of each kind the instance holds
func (instance *Instance) KindCounts() map[Kind]int {
	return lo.CountValuesBy(instance.Clauses, func(clause Clause) Kind { return clause.Kind })
}
