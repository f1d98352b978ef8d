// Package score implements the pure scoring functions spec.md §4.2
// describes: length ordering for k-shortest, resource-weighted scoring for
// k-resource and the SA replace variant. All three are ordinary value
// functions over a topology and a path list -- no mutation, no RNG, no
// solver calls -- so they are trivially unit-testable and reusable by every
// selector that needs an ordering.
package score

import (
	"sort"

	"github.com/iti/pathsel/pptc"
	"github.com/iti/pathsel/topology"
)

// LengthOrder returns the indices of paths ordered by ascending node
// count, ties broken by original index (spec §4.2, §8 scenario 1).
func LengthOrder(paths []pptc.Path) []int {
	idx := make([]int, len(paths))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		la, lb := paths[idx[a]].Length(), paths[idx[b]].Length()
		if la != lb {
			return la < lb
		}
		return idx[a] < idx[b]
	})
	return idx
}

// ResourceScores computes, for every path, the resource score defined in
// §4.2:
//
//	score(p) = Σ_r (max_{n ∈ p.nodes ∪ p.links} t.resources(n).get(r,0) / N[r]) * W[r]  -  len(p)/d
//
// where N[r] is t.TotalResource(r) and d is t.Diameter(). Higher is
// better. W with a zero diameter is treated as if d were 1, to avoid a
// division by zero on a single-node topology; the length penalty
// degenerates to len(p) in that degenerate case, which matches the
// single-node topology having no meaningful diameter to normalize against.
func ResourceScores(paths []pptc.Path, topo *topology.Topology, w map[string]float64) []float64 {
	d := topo.Diameter()
	if d == 0 {
		d = 1
	}
	out := make([]float64, len(paths))
	for i, p := range paths {
		var sum float64
		for r, weight := range w {
			n := topo.TotalResource(r)
			if n == 0 {
				continue
			}
			maxR := topo.MaxResourceAlongNodes(p.Nodes(), r)
			sum += (maxR / n) * weight
		}
		sum -= float64(p.Length()) / d
		out[i] = sum
	}
	return out
}

// ResourceOrder returns path indices sorted by descending resource score,
// ties broken by original index (spec §4.2).
func ResourceOrder(paths []pptc.Path, topo *topology.Topology, w map[string]float64) []int {
	scores := ResourceScores(paths, topo, w)
	idx := make([]int, len(paths))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		if scores[idx[a]] != scores[idx[b]] {
			return scores[idx[a]] > scores[idx[b]]
		}
		return idx[a] < idx[b]
	})
	return idx
}

// lenResourceName is the synthetic resource PathScore folds the path length
// into, per spec §4.2: "with a synthetic resource `len` taking the path
// length."
const lenResourceName = "len"

// PathScore computes the SA replace-variant score for a single path (§4.2):
//
//	Σ_r W[r] * min_{n in p} t.resources(n).get(r,0)
//
// with a synthetic "len" resource carrying the path's length, so that
// including a "len" entry in w lets callers penalize (or reward) longer
// paths the same way any other resource is weighted.
func PathScore(p pptc.Path, topo *topology.Topology, w map[string]float64) float64 {
	var sum float64
	for r, weight := range w {
		if r == lenResourceName {
			sum += weight * float64(p.Length())
			continue
		}
		sum += weight * topo.MinResourceAlongNodes(p.Nodes(), r)
	}
	return sum
}

// PathScoreOrder sorts path indices by descending PathScore, ties broken
// by original index. This is the one-time precomputed sort the pathscore
// replace mode (§4.5) walks.
func PathScoreOrder(paths []pptc.Path, topo *topology.Topology, w map[string]float64) []int {
	scores := make([]float64, len(paths))
	for i, p := range paths {
		scores[i] = PathScore(p, topo, w)
	}
	idx := make([]int, len(paths))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		if scores[idx[a]] != scores[idx[b]] {
			return scores[idx[a]] > scores[idx[b]]
		}
		return idx[a] < idx[b]
	})
	return idx
}
