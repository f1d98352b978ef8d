package selection

import (
	"context"
	"math"
	"time"

	"github.com/iti/pathsel/pptc"
	"github.com/iti/pathsel/score"
	"github.com/iti/pathsel/selerr"
	"github.com/iti/pathsel/solverapi"
	"github.com/iti/pathsel/telemetry"
	"github.com/iti/pathsel/topology"
)

// SortMode selects the preorder select_iterative grows k against.
type SortMode string

const (
	SortLen      SortMode = "len"
	SortResource SortMode = "resource"
)

// IterativeParams holds select_iterative's tunables (spec §4.3).
type IterativeParams struct {
	MaxIter   int
	Epsilon   float64
	Fairness  solverapi.Fairness
	EpochMode solverapi.EpochComposition
	SortMode  SortMode
	Weights   map[string]float64 // used only when SortMode == SortResource
}

// SelectIterative implements select_iterative (spec §4.3): starting from
// k=5, it preorders every traffic class's candidates once by SortMode,
// then repeatedly doubles k -- unmasking a growing prefix of the
// preorder, composing, and solving -- until the iteration budget is
// exhausted, the objective stops improving materially, or every
// candidate is already enabled.
func (s *Selector) SelectIterative(ctx context.Context, apps []*solverapi.App, topo *topology.Topology, netcfg solverapi.NetworkConfig, params IterativeParams) (Result, error) {
	start := time.Now()

	orders, err := s.buildIterativePreorder(apps, topo, params)
	if err != nil {
		return Result{}, err
	}

	k := 5
	delta := math.Inf(1)
	oldObj := 0.0
	maxPaths := maxCandidates(apps)

	var lastOpt solverapi.Opt
	var solverTotal float64

	for iter := 0; iter < params.MaxIter && delta > params.Epsilon && k < maxPaths; iter++ {
		applyPreorderPrefix(apps, orders, k)

		opt, solverSecs, serr := s.solveOnce(ctx, apps, topo, netcfg, params.Fairness, params.EpochMode)
		solverTotal += solverSecs
		if serr == nil && opt.IsSolved() {
			obj := opt.GetSolvedObjective()
			delta = obj - oldObj
			oldObj = obj
			lastOpt = opt
		}

		s.Observer.Emit(telemetry.Event{Selector: "iterative", Iter: iter, K: k, Delta: delta})
		k *= 2
	}

	if lastOpt == nil {
		return Result{SolverSeconds: solverTotal, WallSeconds: elapsed(start)}, selerr.NewUnsolvable("iterative", nil)
	}

	chosen, err := lastOpt.GetChosenPaths(true)
	if err != nil {
		return Result{Opt: lastOpt, SolverSeconds: solverTotal, WallSeconds: elapsed(start)}, err
	}
	propagateChosenMasks(apps, chosen)

	return Result{
		Opt:           lastOpt,
		SolverSeconds: solverTotal,
		WallSeconds:   elapsed(start),
	}, nil
}

// buildIterativePreorder computes, for every app and traffic class, the
// index permutation select_iterative grows k against.
func (s *Selector) buildIterativePreorder(apps []*solverapi.App, topo *topology.Topology, params IterativeParams) (map[*solverapi.App]map[int][]int, error) {
	orders := make(map[*solverapi.App]map[int][]int, len(apps))
	for _, app := range apps {
		if app.PPTC == nil {
			continue
		}
		perTC := make(map[int][]int, len(app.PPTC.TCs()))
		for _, tc := range app.PPTC.TCs() {
			paths := app.PPTC.AllPaths(tc)
			var order []int
			switch params.SortMode {
			case SortLen:
				order = score.LengthOrder(paths)
			case SortResource:
				order = score.ResourceOrder(paths, topo, params.Weights)
			default:
				return nil, selerr.NewInvalidConfig("sort_mode", string(params.SortMode))
			}
			perTC[tc] = order
		}
		orders[app] = perTC
	}
	return orders, nil
}

func applyPreorderPrefix(apps []*solverapi.App, orders map[*solverapi.App]map[int][]int, k int) {
	for _, app := range apps {
		if app.PPTC == nil {
			continue
		}
		for _, tc := range app.PPTC.TCs() {
			order := orders[app][tc]
			n := len(order)
			mask := make(pptc.Mask, n)
			for i := range mask {
				mask[i] = true
			}
			limit := k
			if limit > n {
				limit = n
			}
			for i := 0; i < limit; i++ {
				mask[order[i]] = false
			}
			_ = app.PPTC.SetMask(tc, mask)
		}
	}
}
