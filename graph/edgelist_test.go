package graph_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/bedrock/graph"
)

// TestReadEdgeList parses comments, blank lines and duplicates.
func TestReadEdgeList(t *testing.T) {
	in := `# six vertices, 5 isolated
6

0 1
0 2
1 3
2 3
2 3
3 4
`
	g, err := graph.ReadEdgeList(strings.NewReader(in))
	require.NoError(t, err)
	require.Equal(t, 6, g.VertexCount())
	require.Equal(t, 5, g.EdgeCount())
	require.Equal(t, []int{1, 2}, g.Neighbors(0))
	require.Empty(t, g.Neighbors(5))
}

// TestReadEdgeList_Errors covers each malformed shape.
func TestReadEdgeList_Errors(t *testing.T) {
	for name, in := range map[string]string{
		"empty":        "",
		"onlyComments": "# nothing\n",
		"badCount":     "x\n",
		"countFields":  "3 4\n",
		"negative":     "-2\n",
		"edgeFields":   "3\n0 1 2\n",
		"badEndpoint":  "3\n0 y\n",
		"outOfRange":   "3\n0 3\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := graph.ReadEdgeList(strings.NewReader(in))
			require.ErrorIs(t, err, graph.ErrParse)
		})
	}
}

// TestEdgeList_RoundTrip writes a generated graph and reads it back.
func TestEdgeList_RoundTrip(t *testing.T) {
	g, err := graph.Build(nil, graph.Grid(3, 3), graph.Cycle(4))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, graph.WriteEdgeList(&buf, g))
	back, err := graph.ReadEdgeList(&buf)
	require.NoError(t, err)

	require.Equal(t, g.VertexCount(), back.VertexCount())
	for v := 0; v < g.VertexCount(); v++ {
		require.Equal(t, g.Neighbors(v), back.Neighbors(v))
	}
}
