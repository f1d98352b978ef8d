package selection

import (
	"github.com/iti/pathsel/pptc"
	"github.com/iti/pathsel/score"
	"github.com/iti/pathsel/telemetry"
)

// KShortestPaths implements k_shortest_paths (spec §4.3): for each traffic
// class, it computes the length ordering, masks every candidate, then
// unmasks the first min(k,n) indices in that order. It returns the
// per-TC order arrays so a caller doing incremental growth (select_
// iterative's preorder) can reuse them without recomputing.
func (s *Selector) KShortestPaths(p *pptc.PPTC, k int) map[int][]int {
	orders := make(map[int][]int, len(p.TCs()))
	for _, tc := range p.TCs() {
		paths := p.AllPaths(tc)
		order := score.LengthOrder(paths)
		orders[tc] = order

		mask := make(pptc.Mask, len(paths))
		for i := range mask {
			mask[i] = true
		}
		limit := k
		if limit > len(order) {
			limit = len(order)
		}
		for i := 0; i < limit; i++ {
			mask[order[i]] = false
		}
		_ = p.SetMask(tc, mask)

		s.Observer.Emit(telemetry.Event{Selector: "k_shortest", TC: tc, K: k})
	}
	return orders
}
