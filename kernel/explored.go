// Package kernel implements the Expel/Replace mask mutators spec.md §4.4
// and §4.5 describe: the policies that turn a traffic class's current mask
// plus the solver's flow variables into a new candidate mask, with
// duplicate-combination avoidance against a per-TC explored history.
package kernel

import "github.com/iti/pathsel/pptc"

// Explored tracks, per traffic class, every mask previously proposed
// within one simulated-annealing run (spec §3: "explored[tc] is an
// ordered sequence of masks previously proposed; duplicates are forbidden
// under bitwise equality"). It lives only for the duration of one SA
// invocation.
type Explored struct {
	history map[int][]pptc.Mask
}

// NewExplored returns an empty Explored set.
func NewExplored() *Explored {
	return &Explored{history: make(map[int][]pptc.Mask)}
}

// Record appends m to tc's explored history.
func (e *Explored) Record(tc int, m pptc.Mask) {
	e.history[tc] = append(e.history[tc], m.Clone())
}

// Contains reports whether m is bitwise-equal to any mask already recorded
// for tc.
func (e *Explored) Contains(tc int, m pptc.Mask) bool {
	for _, seen := range e.history[tc] {
		if seen.Equal(m) {
			return true
		}
	}
	return false
}

// History returns tc's recorded masks, in the order they were proposed.
func (e *Explored) History(tc int) []pptc.Mask {
	return e.history[tc]
}
