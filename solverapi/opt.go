package solverapi

import (
	"context"

	"github.com/iti/pathsel/pptc"
	"github.com/iti/pathsel/topology"
)

// App bundles one application's traffic classes and candidate paths for
// the solver (spec §3: "a set of traffic classes with candidate end-to-end
// paths"). Constraint/objective/cost wiring is the solver's own concern
// (out of scope per spec §1) and is not represented here; only the shape
// compose_apps needs from each application is.
type App struct {
	Name string
	PPTC *pptc.PPTC
}

// NetworkConfig carries the ambient, typed settings a caller supplies to
// compose_apps alongside fairness and epoch mode -- e.g. per-resource
// weights used by resource-aware objectives. It is ordinary data, not a
// config-file loader (file/CLI loading is an explicit Non-goal); its shape
// mirrors the plain defaulted structs mrnes uses for experiment parameters
// (desc-topo.go's ExpParameter).
type NetworkConfig struct {
	Weights map[string]float64
}

// Opt is the external solver contract spec.md §6 describes. The
// selection core treats every method as a blocking, opaque call; it never
// inspects the solver's internals.
type Opt interface {
	// CapNumPaths adds a global constraint limiting the total number of
	// chosen paths across all applications and traffic classes.
	CapNumPaths(n int)

	// Solve runs the composed optimization. It blocks; spec §5 states
	// there is no cancellation contract at this layer, but ctx is honored
	// on a best-effort basis by implementations that can.
	Solve(ctx context.Context) error

	// IsSolved reports whether Solve found a feasible solution.
	IsSolved() bool

	// GetTime returns the solver's own internal wall time for the last
	// Solve call, in seconds.
	GetTime() float64

	// GetSolvedObjective returns the solved objective value.
	GetSolvedObjective() float64

	// GetChosenPaths returns the solver-selected paths as a PPTC with
	// masks set to reflect the solution. If relaxed is true the solver
	// may return its LP relaxation's chosen paths instead of the final
	// integral solution.
	GetChosenPaths(relaxed bool) (*pptc.PPTC, error)

	// GetXPS returns the solver's flow-variable tensor.
	GetXPS() *FlowTensor

	// Write and WriteSolution persist debug artifacts. Per spec §7 these
	// are best-effort: a failure here must not affect selection, so
	// callers log but do not propagate the returned error into a
	// selector's result.
	Write(path string) error
	WriteSolution(path string) error
}

// ComposeFunc is the compose_apps entry point spec.md §6 describes:
// composing a set of applications, a topology, and network configuration
// into a single Opt under the given fairness rule and epoch composition.
// Selectors take a ComposeFunc instead of depending on a concrete solver,
// so tests can substitute internal/fakesolver.
type ComposeFunc func(apps []*App, topo *topology.Topology, netcfg NetworkConfig, fairness Fairness, epochMode EpochComposition) (Opt, error)
