package selection

import (
	"github.com/iti/pathsel/pptc"
	"github.com/iti/pathsel/score"
	"github.com/iti/pathsel/telemetry"
	"github.com/iti/pathsel/topology"
)

// KResourcePaths implements k_resource_paths (spec §4.3): identical shape
// to KShortestPaths, but ordered by descending resource score (§4.2)
// against topo under weight map w instead of by ascending length.
func (s *Selector) KResourcePaths(p *pptc.PPTC, k int, w map[string]float64, topo *topology.Topology) map[int][]int {
	orders := make(map[int][]int, len(p.TCs()))
	for _, tc := range p.TCs() {
		paths := p.AllPaths(tc)
		order := score.ResourceOrder(paths, topo, w)
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

		s.Observer.Emit(telemetry.Event{Selector: "k_resource", TC: tc, K: k})
	}
	return orders
}
