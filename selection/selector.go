// Package selection implements the six top-level path-selection
// strategies spec.md §4.3 describes, sharing one Selector type that
// threads a seeded RNG stream and a telemetry Observer through every
// policy (spec §9: "a Selector constructed with an explicit seeded RNG
// handle, threaded through choose, expel, replace, acceptance").
package selection

import (
	"context"
	"time"

	"github.com/iti/pathsel/rng"
	"github.com/iti/pathsel/solverapi"
	"github.com/iti/pathsel/telemetry"
	"github.com/iti/pathsel/topology"
)

// Selector bundles the ambient state every selection strategy needs:
// determinism via RNG, observability via Observer, and the opaque solver
// entry point via Compose.
type Selector struct {
	RNG      *rng.Stream
	Observer *telemetry.Observer
	Compose  solverapi.ComposeFunc
}

// New constructs a Selector with a fresh stream named seed (spec §5:
// "given a fixed RNG seed and fixed solver, all selectors must produce
// identical outputs across runs"). A nil observer is accepted; Observer
// methods are no-ops on a nil receiver.
func New(seed string, observer *telemetry.Observer, compose solverapi.ComposeFunc) *Selector {
	return &Selector{
		RNG:      rng.New(seed),
		Observer: observer,
		Compose:  compose,
	}
}

// Result is what a solver-driven selector returns: the best Opt, the total
// wall time and the accumulated solver time. It carries no chosen-path
// PPTC; selectors write the chosen masks onto the PPTCs of the apps passed
// in, and callers read them from there.
type Result struct {
	Opt         solverapi.Opt
	WallSeconds float64
	SolverSeconds float64
}

// solveOnce runs one compose+solve cycle and reports the elapsed solver
// time the way spec.md's selectors accumulate it across potentially many
// solver calls.
func (s *Selector) solveOnce(ctx context.Context, apps []*solverapi.App, topo *topology.Topology, netcfg solverapi.NetworkConfig, fairness solverapi.Fairness, epochMode solverapi.EpochComposition) (solverapi.Opt, float64, error) {
	opt, err := s.Compose(apps, topo, netcfg, fairness, epochMode)
	if err != nil {
		return nil, 0, err
	}
	if err := opt.Solve(ctx); err != nil {
		return opt, opt.GetTime(), err
	}
	return opt, opt.GetTime(), nil
}

// maxCandidates returns the largest per-TC candidate count across every
// app's PPTC, the "max_paths" referenced by the iterative selector's
// termination condition.
func maxCandidates(apps []*solverapi.App) int {
	max := 0
	for _, app := range apps {
		if app.PPTC == nil {
			continue
		}
		if m := app.PPTC.MaxPaths(true); m > max {
			max = m
		}
	}
	return max
}

// elapsed returns the wall-clock seconds since start.
func elapsed(start time.Time) float64 {
	return time.Since(start).Seconds()
}
