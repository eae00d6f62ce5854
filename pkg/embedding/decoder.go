package embedding

import (
	"fmt"
	"strings"

	"github.com/limaJavier/minorembed/pkg/graph"
	"github.com/limaJavier/minorembed/pkg/sat"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// Embedding maps logical nodes to the physical nodes hosting them
type Embedding map[graph.Node]graph.Node

// CoreClause is a clause implicated in an unsatisfiable outcome
type CoreClause struct {
	Index int // 0-based position in Instance.Clauses
	Clause
}

// ID is the 1-based clause id used by the DIMACS annotations
func (clause CoreClause) ID() int {
	return clause.Index + 1
}

var ErrNotDecodable = errors.New("result cannot be decoded")

// Decode builds the embedding from the positive literals of a satisfying assignment.
// Literals outside the scheme's range (selector variables) are ignored.
func (instance *Instance) Decode(result sat.Result) (Embedding, error) {
	if result.Status != sat.StatusSat {
		return nil, errors.Wrapf(ErrNotDecodable, "expected a SAT result, got %v", result.Status)
	}

	embedding := make(Embedding)
	for _, literal := range result.Solution {
		// Acknowledge only positive variables belonging to the scheme
		if literal > 0 && instance.Scheme.Contains(uint64(literal)) {
			logical, physical := instance.Scheme.Attributes(uint64(literal))
			embedding[logical] = physical
		}
	}
	return embedding, nil
}

// Explain maps an unsatisfiable core back to the clauses it names. When the engine provided no
// core, every clause is returned and fallback is true.
func (instance *Instance) Explain(result sat.Result) (core []CoreClause, fallback bool, err error) {
	if result.Status != sat.StatusUnsat {
		return nil, false, errors.Wrapf(ErrNotDecodable, "expected an UNSAT result, got %v", result.Status)
	}

	if result.Core == nil {
		return lo.Map(instance.Clauses, func(clause Clause, index int) CoreClause {
			return CoreClause{Index: index, Clause: clause}
		}), true, nil
	}

	core = make([]CoreClause, 0, len(result.Core))
	for _, index := range result.Core {
		if index < 0 || index >= len(instance.Clauses) {
			return nil, false, errors.Errorf("core clause %d is outside the instance's %d clauses", index, len(instance.Clauses))
		}
		core = append(core, CoreClause{Index: index, Clause: instance.Clauses[index]})
	}
	return core, false, nil
}

// Describe renders the clause in domain terms, e.g. "not (0 -> 1) or not (1 -> 1)"
func (clause CoreClause) Describe(scheme *Scheme) string {
	terms := lo.Map(clause.Literals, func(literal int64, _ int) string {
		logical, physical := scheme.Attributes(uint64(max(literal, -literal)))
		if literal < 0 {
			return fmt.Sprintf("not (%v -> %v)", logical, physical)
		}
		return fmt.Sprintf("(%v -> %v)", logical, physical)
	})

	var subject string
	switch clause.Kind {
	case AtLeastOne:
		subject = "logical node needs a host"
	case AtMostOne:
		subject = "logical node has a single host"
	case MutualExclusion:
		subject = "physical node hosts a single logical node"
	case EdgeConsistency:
		subject = "logical edge needs adjacent hosts"
	}

	if len(terms) == 0 {
		return fmt.Sprintf("%v: empty clause", subject)
	}
	return fmt.Sprintf("%v: %v", subject, strings.Join(terms, " or "))
}
