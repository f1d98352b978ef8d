package topology

import (
	"math"

	"gonum.org/v1/gonum/graph/path"
)

// GeneratePaths supplements the candidate-path generation the distilled
// spec assumes happens elsewhere: the original server (original_source's
// server.py, generate_paths_ie) enumerates a bounded number of ingress ->
// egress paths from a networkx topology before ever building a PPTC. This
// is the same step expressed over the gonum topology built here, using
// Yen's algorithm for k shortest loopless paths instead of hand-rolled DFS
// enumeration (mrnes only ever needed a single shortest path, routes.go;
// candidate generation needs several, ranked).
//
// It returns up to k node-id sequences from ingress to egress, ordered by
// increasing length, or an empty slice if no path exists.
func (t *Topology) GeneratePaths(ingress, egress NodeID, k int) [][]NodeID {
	src, ok := t.gNodes[ingress]
	if !ok {
		return nil
	}
	dst, ok := t.gNodes[egress]
	if !ok {
		return nil
	}
	if k <= 0 {
		return nil
	}

	// gonum v0.15.0's YenKShortestPaths takes a path-weight bound ahead of the
	// endpoints; math.Inf(1) keeps every loopless path eligible, matching
	// the unbounded search the call site wants.
	raw := path.YenKShortestPaths(t.g, k, math.Inf(1), src, dst)
	out := make([][]NodeID, 0, len(raw))
	for _, p := range raw {
		seq := make([]NodeID, len(p))
		for i, n := range p {
			seq[i] = NodeID(n.ID())
		}
		out = append(out, seq)
	}
	return out
}
