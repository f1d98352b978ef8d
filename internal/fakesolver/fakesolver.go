// Package fakesolver is a deterministic, in-process stand-in for the
// external compose_apps/Opt contract (solverapi.Opt), grounded in mrnes's
// own "fast, lightweight flow approximation" style (flow-sim.go) rather
// than a real linear or integer program: it assigns each visible path an
// equal share of flow and folds per-traffic-class resource scores into a
// single objective under the requested fairness rule and epoch
// composition. It exists so selection tests can exercise
// Compose/Solve/GetChosenPaths/GetXPS without a real solver dependency.
package fakesolver

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/iti/pathsel/pptc"
	"github.com/iti/pathsel/score"
	"github.com/iti/pathsel/solverapi"
	"github.com/iti/pathsel/topology"
)

// Solver is the fake Opt implementation.
type Solver struct {
	apps      []*solverapi.App
	topo      *topology.Topology
	netcfg    solverapi.NetworkConfig
	fairness  solverapi.Fairness
	epochMode solverapi.EpochComposition

	capNumPaths int // 0 means uncapped

	solved     bool
	objective  float64
	solveTime  float64
	xps        *solverapi.FlowTensor
	chosenPPTC *pptc.PPTC
}

// Compose implements solverapi.ComposeFunc. It is the package-level entry
// point selection tests wire in place of a real solver.
func Compose(apps []*solverapi.App, topo *topology.Topology, netcfg solverapi.NetworkConfig, fairness solverapi.Fairness, epochMode solverapi.EpochComposition) (solverapi.Opt, error) {
	return &Solver{
		apps:      apps,
		topo:      topo,
		netcfg:    netcfg,
		fairness:  fairness,
		epochMode: epochMode,
	}, nil
}

// CapNumPaths records a global visible-path-count ceiling; Solve reports
// infeasible if the composed apps exceed it, mirroring select_ilp's
// (num_nodes-1)^2*k constraint (spec §4.3).
func (s *Solver) CapNumPaths(n int) {
	s.capNumPaths = n
}

// Solve computes the fake objective. It returns an error only when ctx is
// already done; infeasibility is surfaced only through IsSolved, matching the real
// solver contract's "blocking, opaque call" shape (spec §6).
func (s *Solver) Solve(ctx context.Context) error {
	start := time.Now()
	defer func() { s.solveTime = time.Since(start).Seconds() }()

	if err := ctx.Err(); err != nil {
		return err
	}

	total := 0
	for _, app := range s.apps {
		if app.PPTC == nil {
			continue
		}
		for _, tc := range app.PPTC.TCs() {
			total += app.PPTC.NumPaths(tc, false)
		}
	}
	if s.capNumPaths > 0 && total > s.capNumPaths {
		s.solved = false
		return nil
	}
	if total == 0 {
		s.solved = false
		return nil
	}

	s.xps = solverapi.NewFlowTensor()
	appValues := make([]float64, 0, len(s.apps))
	chosen := pptc.New()

	for _, app := range s.apps {
		if app.PPTC == nil {
			continue
		}
		tcValues := make([]float64, 0, len(app.PPTC.TCs()))
		for _, tc := range app.PPTC.TCs() {
			visible := app.PPTC.VisiblePaths(tc)
			n := len(visible)
			if n == 0 {
				continue
			}
			scores := score.ResourceScores(visible, s.topo, s.netcfg.Weights)
			share := 1.0 / float64(n)
			var tcSum float64
			for i, sc := range scores {
				s.xps.Set(tc, i, []solverapi.FlowVar{solverapi.Decision(share)})
				tcSum += sc
			}
			tcValues = append(tcValues, tcSum)

			_ = chosen.Add(tc, app.PPTC.AllPaths(tc))
			_ = chosen.SetMask(tc, app.PPTC.GetMask(tc))
		}
		appValues = append(appValues, combineFairness(s.fairness, tcValues))
	}

	s.objective = combineEpochs(s.epochMode, appValues)
	s.chosenPPTC = chosen
	s.solved = true
	return nil
}

// combineFairness folds a traffic class's per-TC values into one
// per-application scalar the way the three fairness rules (spec §6)
// describe: weighted sums every TC's contribution, proportional rewards
// diminishing returns via log, and max-min is bottleneck-limited by the
// worst-served TC.
func combineFairness(f solverapi.Fairness, values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	switch f {
	case solverapi.ProportionalFairness:
		var sum float64
		for _, v := range values {
			sum += math.Log1p(math.Max(v, -0.999999))
		}
		return sum
	case solverapi.MaxMinFairness:
		min := values[0]
		for _, v := range values[1:] {
			if v < min {
				min = v
			}
		}
		return min
	default: // Weighted
		var sum float64
		for _, v := range values {
			sum += v
		}
		return sum
	}
}

// combineEpochs folds per-application values into the run's scalar
// objective under the requested epoch composition (spec §6).
func combineEpochs(e solverapi.EpochComposition, values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	switch e {
	case solverapi.Worst:
		min := values[0]
		for _, v := range values[1:] {
			if v < min {
				min = v
			}
		}
		return min
	case solverapi.Sum:
		var sum float64
		for _, v := range values {
			sum += v
		}
		return sum
	default: // Average
		var sum float64
		for _, v := range values {
			sum += v
		}
		return sum / float64(len(values))
	}
}

// IsSolved reports whether the last Solve call found a feasible solution.
func (s *Solver) IsSolved() bool { return s.solved }

// GetTime returns the last Solve call's wall time in seconds.
func (s *Solver) GetTime() float64 { return s.solveTime }

// GetSolvedObjective returns the last solve's objective value.
func (s *Solver) GetSolvedObjective() float64 { return s.objective }

// GetChosenPaths returns a PPTC reflecting the current visible masks
// across every composed application. The fake solver does not implement
// an LP relaxation distinct from its integral solution, so relaxed is
// accepted but ignored.
func (s *Solver) GetChosenPaths(relaxed bool) (*pptc.PPTC, error) {
	if s.chosenPPTC == nil {
		return nil, fmt.Errorf("fakesolver: GetChosenPaths called before a solved Solve")
	}
	return s.chosenPPTC, nil
}

// GetXPS returns the flow tensor computed by the last Solve call.
func (s *Solver) GetXPS() *solverapi.FlowTensor {
	if s.xps == nil {
		return solverapi.NewFlowTensor()
	}
	return s.xps
}

// solutionSummary is the shape Write/WriteSolution persist -- just enough
// to inspect a run after the fact, not a faithful solver dump.
type solutionSummary struct {
	Objective float64 `json:"objective" yaml:"objective"`
	Solved    bool    `json:"solved" yaml:"solved"`
	SolveTime float64 `json:"solve_time" yaml:"solve_time"`
	Fairness  string  `json:"fairness" yaml:"fairness"`
	Epoch     string  `json:"epoch" yaml:"epoch"`
}

// Write persists a debug summary, choosing JSON or YAML by filename
// extension -- the same extension-dispatch WriteToFile uses throughout
// desc-topo.go.
func (s *Solver) Write(filename string) error {
	return s.writeSummary(filename)
}

// WriteSolution is Write's solution-only counterpart; the fake solver
// keeps no separate model/solution distinction, so both write the same
// summary.
func (s *Solver) WriteSolution(filename string) error {
	return s.writeSummary(filename)
}

func (s *Solver) writeSummary(filename string) error {
	summary := solutionSummary{
		Objective: s.objective,
		Solved:    s.solved,
		SolveTime: s.solveTime,
		Fairness:  s.fairness.String(),
		Epoch:     s.epochMode.String(),
	}

	ext := path.Ext(filename)
	var bytes []byte
	var err error
	switch ext {
	case ".yaml", ".YAML", ".yml":
		bytes, err = yaml.Marshal(summary)
	case ".json", ".JSON":
		bytes, err = json.MarshalIndent(summary, "", "\t")
	default:
		return fmt.Errorf("fakesolver: unsupported write extension %q", ext)
	}
	if err != nil {
		return err
	}

	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.Write(bytes)
	return err
}
