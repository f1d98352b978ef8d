package selection

import (
	"context"
	"time"

	"github.com/iti/pathsel/pptc"
	"github.com/iti/pathsel/selerr"
	"github.com/iti/pathsel/solverapi"
	"github.com/iti/pathsel/telemetry"
	"github.com/iti/pathsel/topology"
)

// SelectILP implements select_ilp (spec §4.3): compose every application
// into a single optimization, add a global cap of (num_nodes-1)^2 * k
// total chosen paths, solve, and propagate the solver's chosen-path mask
// back into each app's PPTC. It returns *selerr.UnsolvableError if the
// solver finds no feasible solution.
func (s *Selector) SelectILP(ctx context.Context, apps []*solverapi.App, topo *topology.Topology, netcfg solverapi.NetworkConfig, k int, fairness solverapi.Fairness, epochMode solverapi.EpochComposition) (Result, error) {
	start := time.Now()

	opt, err := s.Compose(apps, topo, netcfg, fairness, epochMode)
	if err != nil {
		return Result{}, err
	}

	numNodes := len(topo.Nodes())
	pathCap := (numNodes - 1) * (numNodes - 1) * k
	opt.CapNumPaths(pathCap)

	if err := opt.Solve(ctx); err != nil {
		return Result{Opt: opt, SolverSeconds: opt.GetTime(), WallSeconds: elapsed(start)}, selerr.NewUnsolvable("ilp", err)
	}
	if !opt.IsSolved() {
		return Result{Opt: opt, SolverSeconds: opt.GetTime(), WallSeconds: elapsed(start)}, selerr.NewUnsolvable("ilp", nil)
	}

	chosen, err := opt.GetChosenPaths(false)
	if err != nil {
		return Result{}, err
	}
	propagateChosenMasks(apps, chosen)

	s.Observer.Emit(telemetry.Event{Selector: "ilp", K: k, Fields: map[string]any{"cap": pathCap}})

	return Result{
		Opt:           opt,
		SolverSeconds: opt.GetTime(),
		WallSeconds:   elapsed(start),
	}, nil
}

// propagateChosenMasks copies chosen's masks, traffic class by traffic
// class, onto the matching app's PPTC -- the "propagate the solver's
// chosen-path mask into PPTC" step §4.3 describes.
func propagateChosenMasks(apps []*solverapi.App, chosen *pptc.PPTC) {
	for _, app := range apps {
		if app.PPTC == nil {
			continue
		}
		for _, tc := range app.PPTC.TCs() {
			if !chosen.Contains(tc) {
				continue
			}
			_ = app.PPTC.SetMask(tc, chosen.GetMask(tc))
		}
	}
}
