package cluster_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iti/pathsel/cluster"
	"github.com/iti/pathsel/traffic"
)

// TestAgglomerativeTwoClusters mirrors spec scenario 5: volume vectors
// [1,1], [10,10], [1,1] reduced to 2 buckets via per-bucket max should
// yield [1,1], [10,10], [1,1] — the TC that started as an outlier keeps
// its own bucket's representative, not a positional column.
func TestAgglomerativeTwoClusters(t *testing.T) {
	tcs := []*traffic.TrafficClass{
		traffic.New(1, 0, 0, 0, []float64{1, 1}, "", ""),
		traffic.New(2, 0, 0, 0, []float64{10, 10}, "", ""),
		traffic.New(3, 0, 0, 0, []float64{1, 1}, "", ""),
	}

	err := cluster.ClusterTCs(tcs, 2, cluster.Agglomerative)
	require.NoError(t, err)

	require.Equal(t, []float64{1, 1}, tcs[0].VolFlows)
	require.Equal(t, []float64{10, 10}, tcs[1].VolFlows)
	require.Equal(t, []float64{1, 1}, tcs[2].VolFlows)
}

func TestKMeansRequiresMatchingClusterCount(t *testing.T) {
	tcs := []*traffic.TrafficClass{
		traffic.New(1, 0, 0, 0, []float64{1, 1}, "", ""),
		traffic.New(2, 0, 0, 0, []float64{10, 10}, "", ""),
	}
	err := cluster.ClusterTCs(tcs, 1, cluster.KMeans)
	require.Error(t, err)
}

func TestKMeansWithMatchingCountAssignsOwnCenter(t *testing.T) {
	tcs := []*traffic.TrafficClass{
		traffic.New(1, 0, 0, 0, []float64{1, 1}, "", ""),
		traffic.New(2, 0, 0, 0, []float64{10, 10}, "", ""),
	}
	err := cluster.ClusterTCs(tcs, 2, cluster.KMeans)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 1}, tcs[0].VolFlows)
	require.Equal(t, []float64{10, 10}, tcs[1].VolFlows)
}
