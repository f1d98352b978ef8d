package kernel

import (
	"github.com/iti/pathsel/pptc"
	"github.com/iti/pathsel/rng"
	"github.com/iti/pathsel/solverapi"
)

// ExpelMode selects one of the four expel policies spec.md §4.4 defines.
// Values match the external enum in §6.
type ExpelMode int

const (
	NoFlow      ExpelMode = 1
	InverseFlow ExpelMode = 2
	RandomExpel ExpelMode = 3
	All         ExpelMode = 4
)

// Expel mutates mask in place according to mode, using tc's flow variables
// from xps. It implements the running-counter-over-visible-paths
// invariant §4.4 calls out: no_flow and inverse_flow index into xps by a
// dense counter over currently-visible paths, never by raw mask index, so
// visible paths map densely onto solver variables regardless of how many
// candidates are masked out ahead of them.
func Expel(mask pptc.Mask, tc int, xps *solverapi.FlowTensor, mode ExpelMode, strm *rng.Stream) {
	switch mode {
	case All:
		for i := range mask {
			mask[i] = true
		}
	case RandomExpel:
		for i, masked := range mask {
			if masked {
				continue
			}
			if strm.Bernoulli(0.5) {
				mask[i] = true
			}
		}
	case NoFlow:
		visibleIdx := 0
		for i, masked := range mask {
			if masked {
				continue
			}
			row := xps.Row(tc, visibleIdx)
			visibleIdx++
			if allZero(row) {
				mask[i] = true
			}
		}
	case InverseFlow:
		visibleIdx := 0
		for i, masked := range mask {
			if masked {
				continue
			}
			row := xps.Row(tc, visibleIdx)
			visibleIdx++
			f := meanDecisionFlow(row)
			if strm.Bernoulli(1 - f) {
				mask[i] = true
			}
		}
	}
}

func allZero(row []solverapi.FlowVar) bool {
	for _, v := range row {
		if v.Value() != 0 {
			return false
		}
	}
	return true
}

// meanDecisionFlow averages only the Decision-variant entries of row, per
// spec §9's design note that inverse_flow reads decision variables, not
// constant literals. A row with no decision entries has no flow evidence
// to go on and is treated as f=0, which inverse_flow then expels with
// certainty.
func meanDecisionFlow(row []solverapi.FlowVar) float64 {
	var sum float64
	var n int
	for _, v := range row {
		if v.IsDecision() {
			sum += v.Value()
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
