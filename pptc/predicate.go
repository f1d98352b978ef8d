package pptc

import "github.com/iti/pathsel/topology"

// Predicate filters candidate paths before they are ever added to a PPTC,
// the same per-application filter hook original_source/server/server.py
// applies through its _predicatedict before assign_to_tc. It is not part
// of the distilled spec but is cheap to carry and lets callers exclude
// paths (e.g. ones missing a required middlebox) without involving the
// mask/selector machinery at all.
type Predicate func(p Path, topo *topology.Topology) bool

// NullPredicate accepts every path, mirroring server.py's null_predicate.
func NullPredicate(Path, *topology.Topology) bool { return true }

// HasMboxPredicate accepts only paths carrying at least one middlebox,
// mirroring server.py's has_mbox_predicate.
func HasMboxPredicate(p Path, _ *topology.Topology) bool {
	mboxes, ok := p.Middleboxes()
	return ok && len(mboxes) > 0
}

// FilterPaths returns the subset of paths satisfying pred.
func FilterPaths(paths []Path, topo *topology.Topology, pred Predicate) []Path {
	out := make([]Path, 0, len(paths))
	for _, p := range paths {
		if pred(p, topo) {
			out = append(out, p)
		}
	}
	return out
}
