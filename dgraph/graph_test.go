package dgraph_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/bundleplan/dgraph"
)

func TestGraph_AddNodeAddEdge(t *testing.T) {
	g := dgraph.New[string]()
	a := g.AddNode("a")
	b := g.AddNode("b")

	require.NoError(t, g.AddEdge(a, b))
	require.Equal(t, []dgraph.NodeID{b}, g.NodesConnectedFrom(a))
	require.Equal(t, []dgraph.NodeID{a}, g.NodesConnectedTo(b))

	payload, ok := g.GetNode(a)
	require.True(t, ok)
	require.Equal(t, "a", payload)
}

func TestGraph_AddEdgeMissingNode(t *testing.T) {
	g := dgraph.New[string]()
	a := g.AddNode("a")
	require.ErrorIs(t, g.AddEdge(a, 999), dgraph.ErrNodeNotFound)
}

func TestGraph_AddEdgeIdempotent(t *testing.T) {
	g := dgraph.New[int]()
	a := g.AddNode(1)
	b := g.AddNode(2)
	require.NoError(t, g.AddEdge(a, b))
	require.NoError(t, g.AddEdge(a, b))
	require.Len(t, g.NodesConnectedFrom(a), 1)
}

func TestGraph_RemoveNodeDropsIncidentEdges(t *testing.T) {
	g := dgraph.New[int]()
	a := g.AddNode(1)
	b := g.AddNode(2)
	c := g.AddNode(3)
	require.NoError(t, g.AddEdge(a, b))
	require.NoError(t, g.AddEdge(b, c))

	g.RemoveNode(b)

	require.Empty(t, g.NodesConnectedFrom(a))
	require.Empty(t, g.NodesConnectedTo(c))
	require.Equal(t, []dgraph.NodeID{a, c}, g.Nodes())
}

func TestGraph_NodesInsertionOrder(t *testing.T) {
	g := dgraph.New[int]()
	ids := make([]dgraph.NodeID, 5)
	for i := range ids {
		ids[i] = g.AddNode(i)
	}
	require.Equal(t, ids, g.Nodes())
}
