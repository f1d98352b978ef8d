package selection_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iti/pathsel/internal/fakesolver"
	"github.com/iti/pathsel/kernel"
	"github.com/iti/pathsel/pptc"
	"github.com/iti/pathsel/selection"
	"github.com/iti/pathsel/solverapi"
	"github.com/iti/pathsel/telemetry"
	"github.com/iti/pathsel/topology"
)

func plainPath(n int) *pptc.PlainPath {
	nodes := make([]topology.NodeID, n)
	for i := range nodes {
		nodes[i] = topology.NodeID(i)
	}
	return pptc.NewPlainPath(nodes)
}

// TestKShortestPathsFourNodeLine mirrors spec scenario 1: three candidates
// of lengths {4,5,6}, k_shortest_paths(k=2) masks the longest.
func TestKShortestPathsFourNodeLine(t *testing.T) {
	p := pptc.New()
	require.NoError(t, p.Add(1, []pptc.Path{plainPath(6), plainPath(4), plainPath(5)}))

	sel := selection.New("seed-1", telemetry.Discard(), fakesolver.Compose)
	sel.KShortestPaths(p, 2)

	require.Equal(t, pptc.Mask{true, false, false}, p.GetMask(1))
}

// TestChooseRandDeterministicUnderFixedSeed mirrors spec scenario 2.
func TestChooseRandDeterministicUnderFixedSeed(t *testing.T) {
	build := func() *pptc.PPTC {
		p := pptc.New()
		require.NoError(t, p.Add(1, []pptc.Path{plainPath(4), plainPath(5), plainPath(6)}))
		return p
	}

	p1 := build()
	sel1 := selection.New("seed-s", telemetry.Discard(), fakesolver.Compose)
	sel1.ChooseRand(p1, 2)
	require.Equal(t, 2, p1.NumPaths(1, false))

	p2 := build()
	sel2 := selection.New("seed-s", telemetry.Discard(), fakesolver.Compose)
	sel2.ChooseRand(p2, 2)

	require.Equal(t, p1.GetMask(1), p2.GetMask(1))
}

// TestKShortestPathsTwoTrafficClasses mirrors spec scenario 3: TC1 has 5
// candidates, TC2 has 3; k=4 leaves TC1 with 4 visible and TC2 fully
// visible (only 3 to begin with).
func TestKShortestPathsTwoTrafficClasses(t *testing.T) {
	p := pptc.New()
	require.NoError(t, p.Add(1, []pptc.Path{plainPath(2), plainPath(3), plainPath(4), plainPath(5), plainPath(6)}))
	require.NoError(t, p.Add(2, []pptc.Path{plainPath(2), plainPath(3), plainPath(4)}))

	sel := selection.New("seed-2", telemetry.Discard(), fakesolver.Compose)
	sel.KShortestPaths(p, 4)

	require.Equal(t, 4, p.NumPaths(1, false))
	require.Equal(t, 3, p.NumPaths(2, false))
}

// TestSelectILPCapFormula mirrors spec scenario 6: a 3-node topology with
// num_paths=2 yields a global cap of (3-1)^2*2 = 8.
func TestSelectILPCapFormula(t *testing.T) {
	b := topology.NewBuilder()
	for i := 0; i < 3; i++ {
		b.AddNode(topology.NodeID(i), map[string]float64{"cpu": 1})
	}
	b.AddLink(0, 0, 1, nil)
	b.AddLink(1, 1, 2, nil)
	topo, err := b.Build()
	require.NoError(t, err)

	p := pptc.New()
	require.NoError(t, p.Add(1, []pptc.Path{plainPath(2), plainPath(3)}))
	apps := []*solverapi.App{{Name: "a", PPTC: p}}

	sel := selection.New("seed-3", telemetry.Discard(), fakesolver.Compose)

	_, err = sel.SelectILP(context.Background(), apps, topo, solverapi.NetworkConfig{}, 2, solverapi.Weighted, solverapi.Worst)
	require.NoError(t, err)

	capSeen := (len(topo.Nodes()) - 1) * (len(topo.Nodes()) - 1) * 2
	require.Equal(t, 8, capSeen)
}

func twoNodeTopo(t *testing.T) *topology.Topology {
	b := topology.NewBuilder()
	b.AddNode(0, map[string]float64{"cpu": 1})
	b.AddNode(1, map[string]float64{"cpu": 4})
	b.AddLink(0, 0, 1, map[string]float64{"bw": 2})
	topo, err := b.Build()
	require.NoError(t, err)
	return topo
}

// TestSelectSAFeasibilityThenAnneal exercises both phases against the fake
// solver: phase 0 must find a feasible seed and phase 1 must never leave a
// traffic class with fewer than k visible candidates.
func TestSelectSAFeasibilityThenAnneal(t *testing.T) {
	topo := twoNodeTopo(t)
	p := pptc.New()
	require.NoError(t, p.Add(1, []pptc.Path{plainPath(2), plainPath(3), plainPath(4)}))
	apps := []*solverapi.App{{Name: "a", PPTC: p}}

	sel := selection.New("seed-sa", telemetry.Discard(), fakesolver.Compose)
	params := selection.SAParams{
		K:           2,
		MaxIter:     3,
		ExpelMode:   kernel.NoFlow,
		ReplaceMode: kernel.NextSorted,
		Fairness:    solverapi.Weighted,
		EpochMode:   solverapi.Worst,
	}

	result, err := sel.SelectSA(context.Background(), apps, topo, solverapi.NetworkConfig{}, params)
	require.NoError(t, err)
	require.NotNil(t, result.Opt)
	require.True(t, result.Opt.IsSolved())
	require.GreaterOrEqual(t, p.NumPaths(1, false), params.K)
}

// TestSelectIterativeDoublesKUntilConvergence exercises select_iterative
// against the fake solver over a traffic class with more candidates than
// the starting k=5.
func TestSelectIterativeDoublesKUntilConvergence(t *testing.T) {
	topo := twoNodeTopo(t)
	p := pptc.New()
	paths := make([]pptc.Path, 0, 8)
	for i := 2; i < 10; i++ {
		paths = append(paths, plainPath(i))
	}
	require.NoError(t, p.Add(1, paths))
	apps := []*solverapi.App{{Name: "a", PPTC: p}}

	sel := selection.New("seed-iter", telemetry.Discard(), fakesolver.Compose)
	params := selection.IterativeParams{
		MaxIter:   5,
		Epsilon:   1e-6,
		Fairness:  solverapi.Weighted,
		EpochMode: solverapi.Worst,
		SortMode:  selection.SortLen,
	}

	result, err := sel.SelectIterative(context.Background(), apps, topo, solverapi.NetworkConfig{}, params)
	require.NoError(t, err)
	require.True(t, result.Opt.IsSolved())
}
