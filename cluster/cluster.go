// Package cluster implements the traffic-volume clustering preprocessor
// spec.md §4.7 describes: reducing each traffic class's per-epoch volume
// vector to one of num_clusters representatives, via k-means or
// max-agglomerative clustering. Neither algorithm exists as a library in
// the retrieved pack (gonum ships none), so the clustering loops
// themselves are this module's own code; distances, sums and scaling go
// through gonum/floats, while the per-bucket element-wise max is a plain
// loop over math.Max.
package cluster

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/iti/pathsel/selerr"
	"github.com/iti/pathsel/traffic"
)

// Method selects the clustering algorithm.
type Method string

const (
	KMeans        Method = "kmeans"
	Agglomerative Method = "agg"
)

// maxKMeansIters bounds Lloyd's algorithm iterations; volume vectors are
// low-dimensional and small in count, so convergence is fast in practice.
const maxKMeansIters = 50

// ClusterTCs stacks tcs' per-epoch volume vectors into a |tcs| x |epochs|
// matrix and reduces it to numClusters representatives, replacing each
// TC's VolFlows in place via traffic.TrafficClass.SetVolFlows.
//
// kmeans fits numClusters centers over the TC vectors and assigns TC i the
// i-th center; this is only well defined when numClusters == len(tcs)
// (spec §4.7, §9 Open Question), and ClusterTCs returns an
// *selerr.InvalidConfigError if the caller passes a mismatched count
// rather than silently indexing out of bounds.
//
// agg fits agglomerative clustering into numClusters buckets, then for
// each bucket takes the element-wise max of the volumes assigned to it;
// each TC receives the representative of whichever bucket it was
// assigned to, not a positional column.
func ClusterTCs(tcs []*traffic.TrafficClass, numClusters int, method Method) error {
	if len(tcs) == 0 || numClusters <= 0 {
		return nil
	}

	matrix := make([][]float64, len(tcs))
	for i, tc := range tcs {
		matrix[i] = append([]float64(nil), tc.VolFlows...)
	}

	switch method {
	case KMeans:
		if numClusters != len(tcs) {
			return selerr.NewInvalidConfig("num_clusters", "kmeans requires num_clusters == len(tcs)")
		}
		centers := kmeans(matrix, numClusters)
		for i, tc := range tcs {
			tc.SetVolFlows(centers[i])
		}
		return nil
	case Agglomerative:
		assignment := agglomerative(matrix, numClusters)
		buckets := make([][]float64, numClusters)
		for i, b := range assignment {
			buckets[b] = elementwiseMax(buckets[b], matrix[i])
		}
		for i, tc := range tcs {
			tc.SetVolFlows(buckets[assignment[i]])
		}
		return nil
	default:
		return selerr.NewInvalidConfig("cluster_method", string(method))
	}
}

func elementwiseMax(a, b []float64) []float64 {
	if a == nil {
		return append([]float64(nil), b...)
	}
	out := make([]float64, len(a))
	for i := range a {
		out[i] = math.Max(a[i], b[i])
	}
	return out
}

// kmeans runs Lloyd's algorithm deterministically: centers are seeded from
// the first k input vectors (stable given fixed input order, matching
// spec §5's determinism requirement without needing an RNG draw here) and
// refined by repeated nearest-center assignment and centroid averaging.
func kmeans(vectors [][]float64, k int) [][]float64 {
	dim := len(vectors[0])
	centers := make([][]float64, k)
	for i := 0; i < k; i++ {
		centers[i] = append([]float64(nil), vectors[i%len(vectors)]...)
	}

	assignment := make([]int, len(vectors))
	for iter := 0; iter < maxKMeansIters; iter++ {
		changed := false
		for i, v := range vectors {
			best, bestDist := 0, math.Inf(1)
			for c, center := range centers {
				d := floats.Distance(v, center, 2)
				if d < bestDist {
					best, bestDist = c, d
				}
			}
			if assignment[i] != best {
				assignment[i] = best
				changed = true
			}
		}

		sums := make([][]float64, k)
		counts := make([]int, k)
		for c := range sums {
			sums[c] = make([]float64, dim)
		}
		for i, v := range vectors {
			c := assignment[i]
			floats.Add(sums[c], v)
			counts[c]++
		}
		for c := range centers {
			if counts[c] == 0 {
				continue
			}
			floats.Scale(1/float64(counts[c]), sums[c])
			centers[c] = sums[c]
		}

		if !changed {
			break
		}
	}
	return centers
}

// agglomerative performs centroid-linkage hierarchical clustering,
// repeatedly merging the two clusters whose centroids are closest until k
// remain, and returns
// the resulting bucket assignment per input vector.
func agglomerative(vectors [][]float64, k int) []int {
	n := len(vectors)
	if k >= n {
		assignment := make([]int, n)
		for i := range assignment {
			assignment[i] = i % k
		}
		return assignment
	}

	clusters := make([][]int, n)
	for i := range clusters {
		clusters[i] = []int{i}
	}

	centroid := func(members []int) []float64 {
		dim := len(vectors[0])
		sum := make([]float64, dim)
		for _, idx := range members {
			floats.Add(sum, vectors[idx])
		}
		floats.Scale(1/float64(len(members)), sum)
		return sum
	}

	for len(clusters) > k {
		bi, bj, bestDist := -1, -1, math.Inf(1)
		for i := 0; i < len(clusters); i++ {
			ci := centroid(clusters[i])
			for j := i + 1; j < len(clusters); j++ {
				cj := centroid(clusters[j])
				d := floats.Distance(ci, cj, 2)
				if d < bestDist {
					bi, bj, bestDist = i, j, d
				}
			}
		}
		clusters[bi] = append(clusters[bi], clusters[bj]...)
		clusters = append(clusters[:bj], clusters[bj+1:]...)
	}

	assignment := make([]int, n)
	for b, members := range clusters {
		for _, idx := range members {
			assignment[idx] = b
		}
	}
	return assignment
}
