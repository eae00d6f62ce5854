package embedding

import (
	"context"
	"time"

	"github.com/limaJavier/minorembed/pkg/graph"
	"github.com/limaJavier/minorembed/pkg/sat"
	"github.com/pkg/errors"
)

// BoundedSolver solves a DIMACS artifact under a deadline; *sat.Runner implements it
type BoundedSolver interface {
	Solve(ctx context.Context, dimacsPath string, instance sat.SAT, timeout time.Duration) sat.Result
}

// Attempt gathers everything produced while embedding one pair of graphs
type Attempt struct {
	Instance     *Instance
	Result       sat.Result
	Embedding    Embedding    // Set when Result is SAT
	Core         []CoreClause // Set when Result is UNSAT
	CoreFallback bool         // Core holds every clause because the engine gave none
	EncodingTime time.Duration
}

type Embedder struct {
	solver              BoundedSolver
	allowSharedPhysical bool
}

func NewEmbedder(solver BoundedSolver, allowSharedPhysical bool) *Embedder {
	return &Embedder{solver: solver, allowSharedPhysical: allowSharedPhysical}
}

// Embed encodes the pair of graphs, writes the DIMACS artifact at dimacsPath, solves it under
// timeout and decodes the outcome. Solver failures and timeouts are reported through
// Attempt.Result; the error return is reserved for I/O failures and broken invariants.
func (embedder *Embedder) Embed(ctx context.Context, logical, physical *graph.Graph, dimacsPath string, timeout time.Duration) (Attempt, error) {
	//** Encode
	start := time.Now()
	instance := Encode(logical, physical, embedder.allowSharedPhysical)
	satInstance := instance.SAT()
	if err := satInstance.WriteDIMACSFile(dimacsPath); err != nil {
		return Attempt{}, err
	}
	attempt := Attempt{Instance: instance, EncodingTime: time.Since(start)}

	//** Solve
	attempt.Result = embedder.solver.Solve(ctx, dimacsPath, satInstance, timeout)

	//** Decode
	var err error
	switch attempt.Result.Status {
	case sat.StatusSat:
		attempt.Embedding, err = instance.Decode(attempt.Result)
		if err != nil {
			return attempt, err
		}
		if err := Verify(attempt.Embedding, logical, physical, embedder.allowSharedPhysical); err != nil {
			return attempt, errors.Wrap(err, "decoded embedding does not satisfy the constraints")
		}
	case sat.StatusUnsat:
		attempt.Core, attempt.CoreFallback, err = instance.Explain(attempt.Result)
		if err != nil {
			return attempt, err
		}
	}

	return attempt, nil
}
