package sat

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestWithSelectors(t *testing.T) {
	//** Arrange
	instance := SAT{Variables: 4, Clauses: [][]int64{{1, 2}, {-3}, {}}, Labels: []string{"a", "b", "c"}}

	//** Act
	guarded, assumptions := instance.WithSelectors()

	//** Assert
	expected := SAT{Variables: 7, Clauses: [][]int64{{-5, 1, 2}, {-6, -3}, {-7}}, Labels: []string{"a", "b", "c"}}
	if diff := cmp.Diff(expected, guarded); diff != "" {
		t.Errorf("unexpected guarded instance (-want +got):\n%s", diff)
	}
	assert.Equal(t, []int64{5, 6, 7}, assumptions)
	assert.Equal(t, [][]int64{{1, 2}, {-3}, {}}, instance.Clauses, "the original instance must not be mutated")
}

func TestCoreClauses(t *testing.T) {
	// Selectors of a 4-variable, 3-clause instance are 5, 6 and 7
	assert.Equal(t, []int{0, 2}, CoreClauses([]int64{7, 5, 7}, 4, 3))
	assert.Equal(t, []int{1}, CoreClauses([]int64{-5, 6, 2, 9}, 4, 3))
	assert.Nil(t, CoreClauses(nil, 4, 3))
	assert.Nil(t, CoreClauses([]int64{1, 2}, 4, 3))
}
