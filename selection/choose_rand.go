package selection

import (
	"strconv"

	"github.com/iti/pathsel/pptc"
	"github.com/iti/pathsel/telemetry"
)

// ChooseRand implements choose_rand (spec §4.3): for each traffic class
// with total candidate count n, if n > k it unmasks k distinct indices
// drawn uniformly without replacement and masks the rest; otherwise it
// clears the mask entirely.
func (s *Selector) ChooseRand(p *pptc.PPTC, k int) {
	for _, tc := range p.TCs() {
		n := p.NumPaths(tc, true)
		if n <= k {
			p.Unmask(tc)
			continue
		}
		strm := s.RNG.Derive("choose_rand/" + strconv.Itoa(tc))
		picked := strm.Sample(n, k)
		mask := make(pptc.Mask, n)
		for i := range mask {
			mask[i] = true
		}
		for _, idx := range picked {
			mask[idx] = false
		}
		_ = p.SetMask(tc, mask)

		s.Observer.Emit(telemetry.Event{Selector: "choose_rand", TC: tc, K: k})
	}
}
