package sat

import (
	"slices"

	"github.com/samber/lo"
)

// WithSelectors guards every clause C_i with a fresh selector s_i as (-s_i v C_i), where
// s_i = Variables + i + 1, and returns the guarded instance plus the selectors to assume true.
// Assuming every selector leaves satisfiability unchanged.
func (s SAT) WithSelectors() (SAT, []int64) {
	guarded := SAT{
		Variables: s.Variables + uint64(len(s.Clauses)),
		Clauses:   make([][]int64, len(s.Clauses)),
		Labels:    s.Labels,
	}
	assumptions := make([]int64, len(s.Clauses))

	for i, clause := range s.Clauses {
		selector := Selector(s.Variables, i)
		guarded.Clauses[i] = append([]int64{-selector}, clause...)
		assumptions[i] = selector
	}

	return guarded, assumptions
}

// Selector returns the selector variable guarding the clause at index
func Selector(variables uint64, index int) int64 {
	return int64(variables) + int64(index) + 1
}

// CoreClauses translates the selector literals an engine blamed for unsatisfiability back into
// sorted 0-based clause indices. It returns nil when no selector could be translated.
func CoreClauses(core []int64, variables uint64, clauses int) []int {
	indices := lo.FilterMap(core, func(literal int64, _ int) (int, bool) {
		index := literal - int64(variables) - 1
		return int(index), literal > 0 && index >= 0 && index < int64(clauses)
	})
	if len(indices) == 0 {
		return nil
	}

	indices = lo.Uniq(indices)
	slices.Sort(indices)
	return indices
}
