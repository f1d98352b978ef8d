package kernel_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iti/pathsel/kernel"
	"github.com/iti/pathsel/pptc"
	"github.com/iti/pathsel/rng"
	"github.com/iti/pathsel/solverapi"
)

func TestExpelAllMasksEverything(t *testing.T) {
	mask := pptc.Mask{false, false, false}
	kernel.Expel(mask, 1, solverapi.NewFlowTensor(), kernel.All, rng.New("t"))
	for _, m := range mask {
		require.True(t, m)
	}
}

func TestExpelNoFlowMasksZeroFlowPaths(t *testing.T) {
	mask := pptc.Mask{false, false}
	xps := solverapi.NewFlowTensor()
	xps.Set(1, 0, []solverapi.FlowVar{solverapi.Decision(0)})
	xps.Set(1, 1, []solverapi.FlowVar{solverapi.Decision(0.5)})

	kernel.Expel(mask, 1, xps, kernel.NoFlow, rng.New("t"))
	require.True(t, mask[0])
	require.False(t, mask[1])
}

func TestExplored_ContainsDetectsBitwiseDuplicates(t *testing.T) {
	e := kernel.NewExplored()
	m1 := pptc.Mask{false, true, false}
	e.Record(1, m1)
	require.True(t, e.Contains(1, pptc.Mask{false, true, false}))
	require.False(t, e.Contains(1, pptc.Mask{true, true, false}))
}

func TestReplaceRestoresVisibleCountToK(t *testing.T) {
	explored := kernel.NewExplored()
	mask := pptc.Mask{true, true, false, true}
	order := []int{0, 1, 2, 3}
	err := kernel.Replace(explored, mask, 1, 2, kernel.NextSorted, order, nil, rng.New("t"))
	require.NoError(t, err)
	require.Equal(t, 2, mask.VisibleCount())
}

func TestReplaceNoOpWhenAlreadyAtK(t *testing.T) {
	explored := kernel.NewExplored()
	mask := pptc.Mask{false, false, true}
	before := mask.Clone()
	err := kernel.Replace(explored, mask, 1, 2, kernel.RandomReplace, nil, nil, rng.New("t"))
	require.NoError(t, err)
	require.True(t, before.Equal(mask))
}
