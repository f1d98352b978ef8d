package selection

import (
	"context"
	"math"
	"strconv"
	"time"

	"github.com/iti/pathsel/kernel"
	"github.com/iti/pathsel/pathtree"
	"github.com/iti/pathsel/pptc"
	"github.com/iti/pathsel/rng"
	"github.com/iti/pathsel/score"
	"github.com/iti/pathsel/selerr"
	"github.com/iti/pathsel/solverapi"
	"github.com/iti/pathsel/telemetry"
	"github.com/iti/pathsel/topology"
)

// SAParams holds select_sa's tunables (spec §4.3). TStart and C default to
// 0.72 and 0.88 respectively when left at zero; ApplyDefaults sets them.
type SAParams struct {
	K           int
	MaxIter     int
	TStart      float64
	C           float64
	Fairness    solverapi.Fairness
	EpochMode   solverapi.EpochComposition
	ExpelMode   kernel.ExpelMode
	ReplaceMode kernel.ReplaceMode
	Weights     map[string]float64
}

// ApplyDefaults fills TStart and C with spec.md's defaults if left zero.
func (p *SAParams) ApplyDefaults() {
	if p.TStart == 0 {
		p.TStart = 0.72
	}
	if p.C == 0 {
		p.C = 0.88
	}
}

// saState is the per-traffic-class bookkeeping select_sa threads across
// both phases.
type saState struct {
	owner *pptc.PPTC
	order []int // replace's preorder (length or path-score), nil if unused by ReplaceMode
	tree  *pathtree.PathTree
	strm  *rng.Stream
	best  pptc.Mask
}

// SelectSA implements select_sa (spec §4.3): a feasibility phase that
// seeds every traffic class with its k-shortest mask and retries under
// expel=all until the solver reports a feasible solution, followed by a
// hill-climbing annealing phase that perturbs each TC's mask via
// Expel+Replace, accepts the perturbation only when it does not worsen
// the objective, and returns the best masks found.
func (s *Selector) SelectSA(ctx context.Context, apps []*solverapi.App, topo *topology.Topology, netcfg solverapi.NetworkConfig, params SAParams) (Result, error) {
	params.ApplyDefaults()
	start := time.Now()

	states, err := s.buildSAStates(apps, topo, params)
	if err != nil {
		return Result{}, err
	}
	explored := kernel.NewExplored()

	var solverTotal float64

	bestOpt, serr := s.saPhase0(ctx, apps, topo, netcfg, params, states, explored, &solverTotal)
	if serr != nil {
		return Result{SolverSeconds: solverTotal, WallSeconds: elapsed(start)}, serr
	}

	bestOpt = s.saPhase1(ctx, apps, topo, netcfg, params, states, explored, bestOpt, &solverTotal)

	for tc, st := range states {
		_ = st.owner.SetMask(tc, st.best)
	}

	return Result{
		Opt:           bestOpt,
		SolverSeconds: solverTotal,
		WallSeconds:   elapsed(start),
	}, nil
}

func (s *Selector) buildSAStates(apps []*solverapi.App, topo *topology.Topology, params SAParams) (map[int]*saState, error) {
	states := make(map[int]*saState)
	for _, app := range apps {
		if app.PPTC == nil {
			continue
		}
		for _, tc := range app.PPTC.TCs() {
			paths := app.PPTC.AllPaths(tc)

			var order []int
			switch params.ReplaceMode {
			case kernel.NextSorted:
				order = score.LengthOrder(paths)
			case kernel.PathScoreReplace:
				order = score.PathScoreOrder(paths, topo, params.Weights)
			}

			tree, err := pathtree.Build(paths)
			if err != nil {
				return nil, err
			}

			states[tc] = &saState{
				owner: app.PPTC,
				order: order,
				tree:  tree,
				strm:  s.RNG.Derive("sa/tc/" + strconv.Itoa(tc)),
			}
		}
	}
	return states, nil
}

// saPhase0 implements the feasibility phase: seed k-shortest, try to
// solve, and on failure retry with expel=all + the configured replace
// mode up to params.MaxIter times.
func (s *Selector) saPhase0(ctx context.Context, apps []*solverapi.App, topo *topology.Topology, netcfg solverapi.NetworkConfig, params SAParams, states map[int]*saState, explored *kernel.Explored, solverTotal *float64) (solverapi.Opt, error) {
	for tc, st := range states {
		paths := st.owner.AllPaths(tc)
		order := score.LengthOrder(paths)
		mask := make(pptc.Mask, len(paths))
		for i := range mask {
			mask[i] = true
		}
		limit := params.K
		if limit > len(order) {
			limit = len(order)
		}
		for i := 0; i < limit; i++ {
			mask[order[i]] = false
		}
		_ = st.owner.SetMask(tc, mask)
		explored.Record(tc, mask)
		st.best = mask.Clone()
	}

	opt, solverSecs, serr := s.solveOnce(ctx, apps, topo, netcfg, params.Fairness, params.EpochMode)
	*solverTotal += solverSecs
	if serr == nil && opt.IsSolved() {
		return opt, nil
	}

	for attempt := 0; attempt < params.MaxIter; attempt++ {
		for tc, st := range states {
			newmask := st.best.Clone()
			kernel.Expel(newmask, tc, solverapi.NewFlowTensor(), kernel.All, st.strm)
			_ = kernel.Replace(explored, newmask, tc, params.K, params.ReplaceMode, st.order, st.tree, st.strm)
			_ = st.owner.SetMask(tc, newmask)
			if !explored.Contains(tc, newmask) {
				explored.Record(tc, newmask)
			}
			st.best = newmask
		}

		opt, solverSecs, serr = s.solveOnce(ctx, apps, topo, netcfg, params.Fairness, params.EpochMode)
		*solverTotal += solverSecs
		if serr == nil && opt.IsSolved() {
			return opt, nil
		}
	}

	return nil, selerr.NewUnsolvable("sa phase0", serr)
}

// saPhase1 implements the annealing phase described in SelectSA's doc
// comment.
func (s *Selector) saPhase1(ctx context.Context, apps []*solverapi.App, topo *topology.Topology, netcfg solverapi.NetworkConfig, params SAParams, states map[int]*saState, explored *kernel.Explored, bestOpt solverapi.Opt, solverTotal *float64) solverapi.Opt {
	acceptStrm := s.RNG.Derive("sa/accept")
	bestObj := bestOpt.GetSolvedObjective()

	for kIter := 1; kIter <= params.MaxIter; kIter++ {
		t := params.TStart * math.Pow(params.C, float64(kIter))

		xps := bestOpt.GetXPS()
		for tc, st := range states {
			if params.K >= st.owner.NumPaths(tc, true) {
				continue
			}
			newmask := st.best.Clone()
			kernel.Expel(newmask, tc, xps, params.ExpelMode, st.strm)
			_ = kernel.Replace(explored, newmask, tc, params.K, params.ReplaceMode, st.order, st.tree, st.strm)
			_ = st.owner.SetMask(tc, newmask)
			// Expel+Replace can leave newmask bitwise-identical to the mask
			// already on record (e.g. nothing was expelled and replaceLen
			// was <= 0); only record genuinely new proposals so explored[tc]
			// stays free of duplicates.
			if !explored.Contains(tc, newmask) {
				explored.Record(tc, newmask)
			}
		}

		opt, solverSecs, serr := s.solveOnce(ctx, apps, topo, netcfg, params.Fairness, params.EpochMode)
		*solverTotal += solverSecs

		accepted := false
		delta := 0.0
		if serr == nil && opt.IsSolved() {
			newObj := opt.GetSolvedObjective()
			delta = newObj - bestObj
			prob := saAcceptProbability(bestObj, newObj, t)
			u := acceptStrm.Float64()
			if u <= prob {
				accepted = true
				bestOpt = opt
				bestObj = newObj
				for tc, st := range states {
					if hist := explored.History(tc); len(hist) > 0 {
						st.best = hist[len(hist)-1]
					}
				}
			}
		}

		s.Observer.Emit(telemetry.Event{Selector: "sa", Iter: kIter, K: params.K, Delta: delta, Accepted: accepted, Fields: map[string]any{"t": t}})
	}

	return bestOpt
}

// saAcceptProbability is the SA acceptance rule spec.md §4.3 specifies:
// hill-climbing (1 if old<=new else 0). The classical Metropolis form
//
//	math.Min(1, math.Exp((newObj-oldObj)/t))
//
// is the form the docstrings and the t parameter suggest was originally
// intended (spec §9 Open Question); t is threaded through as a future
// hyperparameter but unused by the hill-climbing contract implemented
// here.
func saAcceptProbability(oldObj, newObj, t float64) float64 {
	_ = t
	if oldObj <= newObj {
		return 1
	}
	return 0
}
