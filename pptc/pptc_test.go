package pptc_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iti/pathsel/pptc"
	"github.com/iti/pathsel/topology"
)

func plainPaths(lengths ...int) []pptc.Path {
	out := make([]pptc.Path, len(lengths))
	for i, n := range lengths {
		nodes := make([]topology.NodeID, n)
		for j := range nodes {
			nodes[j] = topology.NodeID(j)
		}
		out[i] = pptc.NewPlainPath(nodes)
	}
	return out
}

func TestAddRejectsDuplicateTC(t *testing.T) {
	p := pptc.New()
	require.NoError(t, p.Add(1, plainPaths(2, 3)))
	require.Error(t, p.Add(1, plainPaths(2)))
}

func TestSetMaskRejectsWrongLength(t *testing.T) {
	p := pptc.New()
	require.NoError(t, p.Add(1, plainPaths(2, 3)))
	err := p.SetMask(1, pptc.Mask{true})
	require.Error(t, err)
}

func TestVisiblePathsReflectsMask(t *testing.T) {
	p := pptc.New()
	require.NoError(t, p.Add(1, plainPaths(2, 3, 4)))
	require.NoError(t, p.SetMask(1, pptc.Mask{false, true, false}))
	visible := p.VisiblePaths(1)
	require.Len(t, visible, 2)
	require.Equal(t, 2, visible[0].Length())
	require.Equal(t, 4, visible[1].Length())
}

func TestMergeRejectsOverlappingTC(t *testing.T) {
	a := pptc.New()
	require.NoError(t, a.Add(1, plainPaths(2)))
	b := pptc.New()
	require.NoError(t, b.Add(1, plainPaths(3)))

	_, err := pptc.Merge(a, b)
	require.Error(t, err)
}

func TestMergeUnionsDistinctTCs(t *testing.T) {
	a := pptc.New()
	require.NoError(t, a.Add(1, plainPaths(2)))
	b := pptc.New()
	require.NoError(t, b.Add(2, plainPaths(3)))

	merged, err := pptc.Merge(a, b)
	require.NoError(t, err)
	require.True(t, merged.Contains(1))
	require.True(t, merged.Contains(2))
}

func TestFilterPathsHasMboxPredicate(t *testing.T) {
	plain := pptc.NewPlainPath([]topology.NodeID{0, 1})
	mbox := pptc.NewMboxPath([]topology.NodeID{0, 1, 2}, []topology.NodeID{1})
	paths := []pptc.Path{plain, mbox}

	filtered := pptc.FilterPaths(paths, nil, pptc.HasMboxPredicate)
	require.Len(t, filtered, 1)
	require.Same(t, mbox, filtered[0])
}
