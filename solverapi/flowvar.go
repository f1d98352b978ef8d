package solverapi

// FlowVar is the sum type spec.md §9 calls for in place of a sparse tensor
// whose entries are "either an integer literal (treated as constant) or a
// solver decision variable carrying a .x value": FlowVar = Const(float) |
// Decision(float). Only Decision values participate in inverse_flow's
// mean-flow computation (§4.4); Const values are literal and excluded.
type FlowVar struct {
	value    float64
	decision bool
}

// Const wraps a literal flow value that is not a solver decision variable.
func Const(v float64) FlowVar { return FlowVar{value: v, decision: false} }

// Decision wraps a solver decision variable's resolved value.
func Decision(v float64) FlowVar { return FlowVar{value: v, decision: true} }

// Value returns the flow value regardless of variant.
func (f FlowVar) Value() float64 { return f.value }

// IsDecision reports whether f came from a solver decision variable, as
// opposed to being a constant literal.
func (f FlowVar) IsDecision() bool { return f.decision }

// FlowTensor is xps[tcid][visiblePathIdx][epoch], the 3-tensor of flow
// variables spec.md §6 describes. It is indexed by the dense
// visible-path-index counter (§4.4's invariant: "visible paths map densely
// to solver variables"), never by raw candidate index -- callers must
// enumerate a mask and advance the column counter only on visible entries,
// exactly as §9's "implicit dense mapping" design note requires.
type FlowTensor struct {
	byTC map[int][][]FlowVar // byTC[tc][visibleIdx][epoch]
}

// NewFlowTensor returns an empty FlowTensor.
func NewFlowTensor() *FlowTensor {
	return &FlowTensor{byTC: make(map[int][][]FlowVar)}
}

// Set stores the per-epoch flow values for tc's visible path at
// visibleIdx (the dense index among currently-visible paths, not the raw
// candidate index).
func (t *FlowTensor) Set(tc, visibleIdx int, epochs []FlowVar) {
	rows := t.byTC[tc]
	for len(rows) <= visibleIdx {
		rows = append(rows, nil)
	}
	rows[visibleIdx] = epochs
	t.byTC[tc] = rows
}

// Row returns tc's flow values for visible path visibleIdx across all
// epochs, or nil if absent.
func (t *FlowTensor) Row(tc, visibleIdx int) []FlowVar {
	rows, ok := t.byTC[tc]
	if !ok || visibleIdx < 0 || visibleIdx >= len(rows) {
		return nil
	}
	return rows[visibleIdx]
}

// VisibleCount returns how many visible-path rows tc has in the tensor.
func (t *FlowTensor) VisibleCount(tc int) int {
	return len(t.byTC[tc])
}
