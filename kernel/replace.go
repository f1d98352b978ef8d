package kernel

import (
	"github.com/iti/pathsel/pathtree"
	"github.com/iti/pathsel/pptc"
	"github.com/iti/pathsel/rng"
)

// ReplaceMode selects one of the four replace policies spec.md §4.5
// defines. Values match the external enum in §6.
type ReplaceMode int

const (
	NextSorted       ReplaceMode = 1
	RandomReplace    ReplaceMode = 3
	PathTreeReplace  ReplaceMode = 4
	PathScoreReplace ReplaceMode = 6
)

// maxDuplicateRetries bounds the duplicate-avoidance retries for random
// and pathtree replace, per spec §7: "_replace duplicate-avoidance
// (bounded to 100 tries)."
const maxDuplicateRetries = 100

// Replace mutates mask in place to restore it to k visible paths, after
// Expel has removed some. order is the traffic class's pre-order
// permutation (ascending length for NextSorted, descending path score for
// PathScoreReplace); it is ignored by RandomReplace and PathTreeReplace.
// tree is consulted only by PathTreeReplace.
func Replace(explored *Explored, mask pptc.Mask, tc, k int, mode ReplaceMode, order []int, tree *pathtree.PathTree, strm *rng.Stream) error {
	visible := mask.VisibleCount()
	replaceLen := k - visible
	if replaceLen <= 0 {
		return nil
	}

	unused := maskedIndices(mask)
	if len(unused) < replaceLen {
		for i := range mask {
			mask[i] = false
		}
		return nil
	}

	switch mode {
	case NextSorted, PathScoreReplace:
		return replaceSorted(explored, mask, tc, replaceLen, unused, order, strm)
	case RandomReplace:
		return replaceRandom(explored, mask, tc, replaceLen, unused, strm)
	case PathTreeReplace:
		return replacePathTree(explored, mask, tc, replaceLen, unused, tree, strm)
	default:
		return nil
	}
}

func maskedIndices(mask pptc.Mask) []int {
	out := make([]int, 0, len(mask))
	for i, masked := range mask {
		if masked {
			out = append(out, i)
		}
	}
	return out
}

// replaceSorted backs both next_sorted and pathscore replace: both walk
// combinations of the unused set, ordered by a precomputed permutation
// (length order or path-score order), in ascending lexicographic order,
// accepting the first combination whose resulting mask is new.
func replaceSorted(explored *Explored, mask pptc.Mask, tc, replaceLen int, unused, order []int, strm *rng.Stream) error {
	ordered := orderedByRank(unused, order)

	combo := make([]int, replaceLen)
	for i := range combo {
		combo[i] = i
	}
	for {
		candidate := mask.Clone()
		for _, pos := range combo {
			candidate[ordered[pos]] = false
		}
		if !explored.Contains(tc, candidate) {
			copy(mask, candidate)
			return nil
		}
		if !nextCombination(combo, len(ordered)) {
			break
		}
	}

	// Fallback: the sorted walk exhausted every combination without
	// finding a new mask; pick replaceLen indices uniformly at random
	// (spec §4.5: "Fallback: if exhausted, pick replace_len indices
	// uniformly at random").
	picked := strm.Sample(len(unused), replaceLen)
	for _, p := range picked {
		mask[unused[p]] = false
	}
	return nil
}

// orderedByRank returns unused sorted by ascending rank in order, where
// order is a permutation of all candidate indices (e.g. score.LengthOrder's
// output): the unused index that appears earliest in order comes first.
func orderedByRank(unused, order []int) []int {
	rank := make(map[int]int, len(order))
	for pos, idx := range order {
		rank[idx] = pos
	}
	out := make([]int, len(unused))
	copy(out, unused)
	// insertion sort is fine: replace sets are small relative to the
	// overall candidate count spec.md targets.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && rank[out[j-1]] > rank[out[j]]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

// nextCombination advances combo (indices into a virtual [0,n) universe,
// strictly increasing) to the lexicographically next combination of the
// same size. Returns false once every combination has been produced.
func nextCombination(combo []int, n int) bool {
	r := len(combo)
	i := r - 1
	for i >= 0 && combo[i] == n-r+i {
		i--
	}
	if i < 0 {
		return false
	}
	combo[i]++
	for j := i + 1; j < r; j++ {
		combo[j] = combo[j-1] + 1
	}
	return true
}

func replaceRandom(explored *Explored, mask pptc.Mask, tc, replaceLen int, unused []int, strm *rng.Stream) error {
	var candidate pptc.Mask
	for attempt := 0; attempt < maxDuplicateRetries; attempt++ {
		candidate = mask.Clone()
		picked := strm.Sample(len(unused), replaceLen)
		for _, p := range picked {
			candidate[unused[p]] = false
		}
		if !explored.Contains(tc, candidate) {
			copy(mask, candidate)
			return nil
		}
	}
	// Exhausted retries: accept the last candidate regardless (spec §4.5:
	// "otherwise accept last candidate regardless").
	copy(mask, candidate)
	return nil
}

func replacePathTree(explored *Explored, mask pptc.Mask, tc, replaceLen int, unused []int, tree *pathtree.PathTree, strm *rng.Stream) error {
	if tree == nil || tree.Empty() {
		return replaceRandom(explored, mask, tc, replaceLen, unused, strm)
	}
	unusedSet := make(map[int]bool, len(unused))
	for _, u := range unused {
		unusedSet[u] = true
	}

	var candidate pptc.Mask
	for attempt := 0; attempt < maxDuplicateRetries; attempt++ {
		picked := make(map[int]bool, replaceLen)
		// Draw until replaceLen distinct, still-masked indices are
		// collected. The tree's own bucket cursors bound how many draws
		// are useful; guard against spinning forever on a starved tree.
		maxDraws := len(unused) * 4
		if maxDraws < replaceLen*4 {
			maxDraws = replaceLen * 4
		}
		for draws := 0; len(picked) < replaceLen && draws < maxDraws; draws++ {
			idx := tree.Next()
			if unusedSet[idx] {
				picked[idx] = true
			}
		}
		if len(picked) < replaceLen {
			return replaceRandom(explored, mask, tc, replaceLen, unused, strm)
		}
		candidate = mask.Clone()
		for idx := range picked {
			candidate[idx] = false
		}
		if !explored.Contains(tc, candidate) {
			copy(mask, candidate)
			return nil
		}
	}
	copy(mask, candidate)
	return nil
}
