package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/limaJavier/minorembed/pkg/embedding"
	"github.com/limaJavier/minorembed/pkg/graph"
	"github.com/limaJavier/minorembed/pkg/sat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadGraph(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.txt")
	require.NoError(t, os.WriteFile(path, []byte("0 1\n1 2\n"), 0666))

	fromFile, err := loadGraph(path, "")
	require.NoError(t, err)
	assert.Equal(t, 3, fromFile.NumNodes())
	assert.Equal(t, 2, fromFile.NumEdges())

	generated, err := loadGraph("", "grid:2x2")
	require.NoError(t, err)
	assert.Equal(t, 4, generated.NumNodes())

	_, err = loadGraph("", "")
	assert.Error(t, err)
}

func TestWriteEmbedding(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	placement := embedding.Embedding{graph.Int(0): graph.Tuple(0, 1), graph.Int(1): graph.Tuple(1, 1)}

	require.NoError(t, writeEmbedding(placement, path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	var output map[string][]int
	require.NoError(t, json.Unmarshal(content, &output))
	assert.Equal(t, map[string][]int{"0": {0, 1}, "1": {1, 1}}, output)
}

func TestWriteCore(t *testing.T) {
	//** Arrange
	instance := embedding.Encode(graph.Complete(3), graph.Path(2), false)
	core, fallback, err := instance.Explain(sat.Result{Status: sat.StatusUnsat, Core: []int{0}})
	require.NoError(t, err)
	attempt := embedding.Attempt{Instance: instance, Core: core, CoreFallback: fallback}
	var output bytes.Buffer

	//** Act
	writeCore(&output, attempt)

	//** Assert
	lines := strings.Split(strings.TrimSpace(output.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Core: 1 of 18 clauses", lines[0])
	assert.Equal(t, "c id 1 [1, 2, at_least_one] logical node needs a host: (0 -> 0) or (0 -> 1)", lines[1])
}

func TestCommandsAreRegistered(t *testing.T) {
	for _, name := range []string{"run", "solve", sat.WorkerCommand} {
		command, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, command.Name())
	}
	assert.True(t, workerCmd.Hidden)
}
