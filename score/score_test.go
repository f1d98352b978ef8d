package score_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iti/pathsel/pptc"
	"github.com/iti/pathsel/score"
	"github.com/iti/pathsel/topology"
)

func plainPath(n int) *pptc.PlainPath {
	nodes := make([]topology.NodeID, n)
	for i := range nodes {
		nodes[i] = topology.NodeID(i)
	}
	return pptc.NewPlainPath(nodes)
}

// TestLengthOrderFourNodeLine mirrors spec scenario 1: three candidates of
// lengths {4,5,6} order ascending by length, ties broken by index.
func TestLengthOrderFourNodeLine(t *testing.T) {
	paths := []pptc.Path{plainPath(6), plainPath(4), plainPath(5)}
	order := score.LengthOrder(paths)
	require.Equal(t, []int{1, 2, 0}, order)
}

func TestLengthOrderTiesBreakByIndex(t *testing.T) {
	paths := []pptc.Path{plainPath(3), plainPath(3), plainPath(3)}
	order := score.LengthOrder(paths)
	require.Equal(t, []int{0, 1, 2}, order)
}

func buildWeighted(t *testing.T) (*topology.Topology, map[string]float64) {
	b := topology.NewBuilder()
	b.AddNode(0, map[string]float64{"cpu": 1})
	b.AddNode(1, map[string]float64{"cpu": 5})
	b.AddNode(2, map[string]float64{"cpu": 2})
	b.AddLink(0, 0, 1, nil)
	b.AddLink(1, 1, 2, nil)
	topo, err := b.Build()
	require.NoError(t, err)
	return topo, map[string]float64{"cpu": 1}
}

func TestResourceOrderPrefersHigherCapacityPath(t *testing.T) {
	topo, w := buildWeighted(t)
	high := pptc.NewPlainPath([]topology.NodeID{0, 1})  // touches cpu=5
	low := pptc.NewPlainPath([]topology.NodeID{0, 2})   // max cpu=2 at node 2 (no 0->2 link, so MaxResourceAlongNodes sees only the two nodes)
	paths := []pptc.Path{low, high}
	order := score.ResourceOrder(paths, topo, w)
	require.Equal(t, 1, order[0], "higher-capacity path should rank first")
}

func TestPathScoreUsesMinOverNodesAndLenResource(t *testing.T) {
	topo, _ := buildWeighted(t)
	p := pptc.NewPlainPath([]topology.NodeID{0, 1, 2})
	s := score.PathScore(p, topo, map[string]float64{"cpu": 1, "len": -1})
	// min cpu across nodes 0,1,2 is 1; len resource contributes -1*3.
	require.Equal(t, 1.0-3.0, s)
}
