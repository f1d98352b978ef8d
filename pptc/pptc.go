package pptc

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// Mask is a per-path boolean mask for one traffic class. true means masked
// out (hidden); false means selected (visible) -- spec §4.1: "mask[i]=0
// means path i participates; 1 means suppressed."
type Mask []bool

// Clone returns an independent copy of m.
func (m Mask) Clone() Mask {
	out := make(Mask, len(m))
	copy(out, m)
	return out
}

// Equal reports whether m and other are bitwise identical, the comparison
// the explored-set (§4.5) uses to reject duplicate proposals.
func (m Mask) Equal(other Mask) bool {
	if len(m) != len(other) {
		return false
	}
	for i := range m {
		if m[i] != other[i] {
			return false
		}
	}
	return true
}

// VisibleCount returns the number of unmasked (visible) entries.
func (m Mask) VisibleCount() int {
	n := 0
	for _, masked := range m {
		if !masked {
			n++
		}
	}
	return n
}

// VisibleIndices returns, in ascending order, the indices where the mask is
// false (visible).
func (m Mask) VisibleIndices() []int {
	idx := make([]int, 0, m.VisibleCount())
	for i, masked := range m {
		if !masked {
			idx = append(idx, i)
		}
	}
	return idx
}

// tcEntry bundles one traffic class's candidate paths with its mask. Paths
// are never deleted (spec §3 invariant); only the mask changes.
type tcEntry struct {
	paths []Path
	mask  Mask
}

// PPTC maps traffic-class id -> (candidate paths, mask). Path ordering
// within a TC is stable for the lifetime of the PPTC: indices into the mask
// are meaningful and selectors rely on that (spec §3).
type PPTC struct {
	order   []int
	entries map[int]*tcEntry
}

// New returns an empty PPTC.
func New() *PPTC {
	return &PPTC{entries: make(map[int]*tcEntry)}
}

// Add registers tc's candidate paths, fully visible (mask all false). It is
// an error to Add the same tc id twice.
func (p *PPTC) Add(tc int, paths []Path) error {
	if _, dup := p.entries[tc]; dup {
		return fmt.Errorf("pptc: traffic class %d already present", tc)
	}
	ps := make([]Path, len(paths))
	copy(ps, paths)
	p.order = append(p.order, tc)
	p.entries[tc] = &tcEntry{paths: ps, mask: make(Mask, len(ps))}
	return nil
}

// TCs returns the traffic-class ids in the PPTC, in insertion order.
func (p *PPTC) TCs() []int {
	out := make([]int, len(p.order))
	copy(out, p.order)
	return out
}

// AllPaths returns tc's full candidate sequence, masked or not.
func (p *PPTC) AllPaths(tc int) []Path {
	e, ok := p.entries[tc]
	if !ok {
		return nil
	}
	return e.paths
}

// VisiblePaths returns the subset of tc's candidates currently unmasked, in
// original order.
func (p *PPTC) VisiblePaths(tc int) []Path {
	e, ok := p.entries[tc]
	if !ok {
		return nil
	}
	out := make([]Path, 0, e.mask.VisibleCount())
	for _, i := range e.mask.VisibleIndices() {
		out = append(out, e.paths[i])
	}
	return out
}

// NumPaths returns tc's candidate count: the total if all is true, or the
// visible-only count otherwise.
func (p *PPTC) NumPaths(tc int, all bool) int {
	e, ok := p.entries[tc]
	if !ok {
		return 0
	}
	if all {
		return len(e.paths)
	}
	return e.mask.VisibleCount()
}

// SetMask replaces tc's mask wholesale. m.Size must equal tc's total
// candidate count (spec §3 invariant).
func (p *PPTC) SetMask(tc int, m Mask) error {
	e, ok := p.entries[tc]
	if !ok {
		return fmt.Errorf("pptc: unknown traffic class %d", tc)
	}
	if len(m) != len(e.paths) {
		return fmt.Errorf("pptc: mask length %d does not match %d candidates for tc %d", len(m), len(e.paths), tc)
	}
	e.mask = m.Clone()
	return nil
}

// Unmask clears tc's mask, making every candidate visible.
func (p *PPTC) Unmask(tc int) {
	e, ok := p.entries[tc]
	if !ok {
		return
	}
	e.mask = make(Mask, len(e.paths))
}

// GetMask returns tc's current mask. The returned slice aliases internal
// state (the same "mutable reference" contract spec §3 describes) so
// callers may mutate entries in place; structural changes must go through
// SetMask to preserve the length invariant.
func (p *PPTC) GetMask(tc int) Mask {
	e, ok := p.entries[tc]
	if !ok {
		return nil
	}
	return e.mask
}

// MaxPaths returns the largest candidate count across all traffic classes.
// If all is false, counts only visible candidates per TC.
func (p *PPTC) MaxPaths(all bool) int {
	max := 0
	for _, tc := range p.order {
		if n := p.NumPaths(tc, all); n > max {
			max = n
		}
	}
	return max
}

// Merge returns a new PPTC unioning every traffic class across all inputs;
// nil inputs are skipped. It is an error for two inputs to define the same
// traffic class id, mirroring Add's duplicate check.
func Merge(all ...*PPTC) (*PPTC, error) {
	out := New()
	for _, src := range all {
		if src == nil {
			continue
		}
		for _, tc := range src.order {
			e := src.entries[tc]
			if err := out.Add(tc, e.paths); err != nil {
				return nil, err
			}
			if err := out.SetMask(tc, e.mask); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// Contains reports whether tc is present in the PPTC.
func (p *PPTC) Contains(tc int) bool {
	return slices.Contains(p.order, tc)
}
