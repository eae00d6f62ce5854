package embedding

import (
	"math/rand"
	"testing"

	"github.com/limaJavier/minorembed/pkg/graph"
	"github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
)

func randomGraph(n int, p float64) *graph.Graph {
	g := graph.Empty(n)
	for i := range n {
		for j := i + 1; j < n; j++ {
			if rand.Float64() < p {
				_ = g.AddEdge(graph.Int(i), graph.Int(j))
			}
		}
	}
	return g
}

func TestClauseCounts(t *testing.T) {
	for range 20 {
		for _, allowShared := range []bool{false, true} {
			//** Arrange
			logical := randomGraph(rand.Intn(5)+1, 0.5)
			physical := randomGraph(rand.Intn(6)+1, 0.4)
			n, m := logical.NumNodes(), physical.NumNodes()

			//** Act
			instance := Encode(logical, physical, allowShared)
			counts := instance.KindCounts()

			//** Assert
			assert.Equal(t, n, counts[AtLeastOne])
			assert.Equal(t, n*m*(m-1)/2, counts[AtMostOne])
			if allowShared {
				assert.Zero(t, counts[MutualExclusion])
			} else {
				assert.Equal(t, m*n*(n-1)/2, counts[MutualExclusion])
			}
			// Every ordered pair that is not a physical edge (2 orientations each), diagonal included
			assert.Equal(t, logical.NumEdges()*(m*m-2*physical.NumEdges()), counts[EdgeConsistency])
			assert.Len(t, instance.Clauses, counts[AtLeastOne]+counts[AtMostOne]+counts[MutualExclusion]+counts[EdgeConsistency])
		}
	}
}

func TestLiteralsStayInSchemeRange(t *testing.T) {
	instance := Encode(randomGraph(4, 0.6), graph.Grid2D(2, 3), false)

	for _, clause := range instance.Clauses {
		for _, literal := range clause.Literals {
			assert.NotZero(t, literal)
			assert.True(t, instance.Scheme.Contains(uint64(max(literal, -literal))), "literal %v out of range", literal)
		}
	}
}

func TestClausesAreEmittedByFamily(t *testing.T) {
	//** Arrange
	logical := graph.Path(2)
	physical := graph.Path(2)

	//** Act
	instance := Encode(logical, physical, false)

	//** Assert
	// x(0,0)=1 x(0,1)=2 x(1,0)=3 x(1,1)=4
	expected := []Clause{
		{Literals: []int64{1, 2}, Kind: AtLeastOne},
		{Literals: []int64{-1, -2}, Kind: AtMostOne},
		{Literals: []int64{3, 4}, Kind: AtLeastOne},
		{Literals: []int64{-3, -4}, Kind: AtMostOne},
		{Literals: []int64{-1, -3}, Kind: MutualExclusion},
		{Literals: []int64{-2, -4}, Kind: MutualExclusion},
		{Literals: []int64{-1, -3}, Kind: EdgeConsistency},
		{Literals: []int64{-2, -4}, Kind: EdgeConsistency},
	}
	assert.Equal(t, expected, instance.Clauses)
}

func TestSharingDropsOnlyMutualExclusion(t *testing.T) {
	g := gomega.NewWithT(t)
	logical, physical := graph.Cycle(3), graph.Path(3)

	strict := Encode(logical, physical, false)
	shared := Encode(logical, physical, true)

	withoutExclusion := make([]Clause, 0, len(strict.Clauses))
	for _, clause := range strict.Clauses {
		if clause.Kind != MutualExclusion {
			withoutExclusion = append(withoutExclusion, clause)
		}
	}
	g.Expect(shared.Clauses).To(gomega.Equal(withoutExclusion))
	g.Expect(shared.Variables()).To(gomega.Equal(strict.Variables()))
}

func TestSATLabelsMatchKinds(t *testing.T) {
	instance := Encode(graph.Path(3), graph.Cycle(3), false)
	satInstance := instance.SAT()

	assert.Equal(t, instance.Variables(), satInstance.Variables)
	assert.Len(t, satInstance.Labels, len(instance.Clauses))
	for i, label := range satInstance.Labels {
		kind, err := ParseKind(label)
		assert.NoError(t, err)
		assert.Equal(t, instance.Clauses[i].Kind, kind)
	}

	_, err := ParseKind("generic")
	assert.Error(t, err)
}
