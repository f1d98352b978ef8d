package topology_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iti/pathsel/topology"
)

func buildLine(t *testing.T, n int) *topology.Topology {
	b := topology.NewBuilder()
	for i := 0; i < n; i++ {
		b.AddNode(topology.NodeID(i), map[string]float64{"cpu": float64(i + 1)})
	}
	for i := 0; i < n-1; i++ {
		id := topology.LinkID(i)
		b.AddLink(id, topology.NodeID(i), topology.NodeID(i+1), map[string]float64{"bw": 10})
		b.AddLink(id+1000, topology.NodeID(i+1), topology.NodeID(i), map[string]float64{"bw": 10})
	}
	topo, err := b.Build()
	require.NoError(t, err)
	return topo
}

func TestShortestPathOnLine(t *testing.T) {
	topo := buildLine(t, 4)
	nodes, ok := topo.ShortestPath(0, 3)
	require.True(t, ok)
	require.Equal(t, []topology.NodeID{0, 1, 2, 3}, nodes)
}

func TestDiameterOnLine(t *testing.T) {
	topo := buildLine(t, 4)
	require.Equal(t, 3.0, topo.Diameter())
}

func TestGeneratePathsRanksByLength(t *testing.T) {
	topo := buildLine(t, 4)
	paths := topo.GeneratePaths(0, 3, 3)
	require.NotEmpty(t, paths)
	require.Equal(t, []topology.NodeID{0, 1, 2, 3}, paths[0])
}

func TestDuplicateNodeRejected(t *testing.T) {
	b := topology.NewBuilder()
	b.AddNode(0, nil)
	b.AddNode(0, nil)
	_, err := b.Build()
	require.Error(t, err)
}

func TestTotalResourceSumsNodesAndLinks(t *testing.T) {
	topo := buildLine(t, 3)
	// nodes: 1+2+3=6 cpu; no cpu on links
	require.Equal(t, 6.0, topo.TotalResource("cpu"))
}
