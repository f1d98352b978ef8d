package pathtree_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iti/pathsel/pathtree"
	"github.com/iti/pathsel/pptc"
	"github.com/iti/pathsel/topology"
)

func TestBuildPlainBucketSortsByLength(t *testing.T) {
	long := pptc.NewPlainPath([]topology.NodeID{0, 1, 2, 3})
	short := pptc.NewPlainPath([]topology.NodeID{0, 1})
	tree, err := pathtree.Build([]pptc.Path{long, short})
	require.NoError(t, err)
	require.False(t, tree.Empty())

	// the short path (index 1) sorts first within the single plain bucket
	require.Equal(t, 1, tree.Next())
	require.Equal(t, 0, tree.Next())
	require.Equal(t, 1, tree.Next()) // wraps
}

func TestBuildMboxBucketsRoundRobinsAcrossMiddleboxes(t *testing.T) {
	a := pptc.NewMboxPath([]topology.NodeID{0, 1, 2}, []topology.NodeID{1})
	b := pptc.NewMboxPath([]topology.NodeID{0, 3, 2}, []topology.NodeID{3})
	tree, err := pathtree.Build([]pptc.Path{a, b})
	require.NoError(t, err)

	first := tree.Next()
	second := tree.Next()
	require.NotEqual(t, first, second, "round robin should alternate buckets before repeating")
}

func TestBuildRejectsUnknownVariant(t *testing.T) {
	_, err := pathtree.Build([]pptc.Path{fakePath{}})
	require.Error(t, err)
}

type fakePath struct{}

func (fakePath) Nodes() []topology.NodeID                  { return nil }
func (fakePath) Length() int                                { return 0 }
func (fakePath) Middleboxes() ([]topology.NodeID, bool) { return nil, false }
