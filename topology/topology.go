// Package topology holds the directed network graph the selection core
// reads resources and distances from (spec.md §3). Graph storage and
// shortest-path computation follow mrnes's routes.go pattern almost
// exactly (buildconnGraph / getSPTree / path.DijkstraFrom), generalized
// from mrnes's hop-count-only edges to a directed graph carrying named
// resource capacities on both nodes and links.
package topology

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
)

// NodeID identifies a topology node. Node identities are small dense
// integers, the same convention mrnes uses for device ids.
type NodeID int

// LinkID identifies a directed link between two nodes.
type LinkID int

// Node holds a node's resource capacities, keyed by resource name.
type Node struct {
	ID        NodeID
	Resources map[string]float64
}

// Link holds a directed edge's resource capacities.
type Link struct {
	ID        LinkID
	From, To  NodeID
	Resources map[string]float64
}

// Topology is the read-only directed graph the selection core consults for
// path scoring (§4.2) and candidate generation. It is built once via
// Builder and never mutated afterward; the core treats it as read-only
// (spec §5).
type Topology struct {
	nodes map[NodeID]*Node
	links map[LinkID]*Link

	// linkByEndpoints indexes links by (from,to) so that a Path (a plain
	// sequence of node ids) can recover the links it traverses without
	// carrying link ids of its own.
	linkByEndpoints map[[2]NodeID]*Link

	g      *simple.WeightedDirectedGraph
	gNodes map[NodeID]simple.Node

	// cachedSP mirrors mrnes's cachedSP: shortest-path trees are expensive
	// to build and are reused across both Diameter and ShortestPath calls.
	cachedSP map[NodeID]path.Shortest

	diameter     float64
	diameterDone bool
}

// Builder assembles a Topology incrementally, mirroring the Frame-then-Desc
// two-phase construction mrnes uses throughout desc-topo.go: accumulate
// loosely validated pieces, then Build() finalizes shared state (here, the
// gonum graph and lookup indices) once.
type Builder struct {
	nodes []*Node
	links []*Link
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// AddNode registers a node with the given resource capacities. The
// resources map is not copied; callers should not mutate it afterward.
func (b *Builder) AddNode(id NodeID, resources map[string]float64) *Builder {
	if resources == nil {
		resources = map[string]float64{}
	}
	b.nodes = append(b.nodes, &Node{ID: id, Resources: resources})
	return b
}

// AddLink registers a directed link from -> to with the given resource
// capacities.
func (b *Builder) AddLink(id LinkID, from, to NodeID, resources map[string]float64) *Builder {
	if resources == nil {
		resources = map[string]float64{}
	}
	b.links = append(b.links, &Link{ID: id, From: from, To: to, Resources: resources})
	return b
}

// Build finalizes the Topology: it fills the node/link maps, builds the
// gonum weighted directed graph with unit edge weights (the same
// hop-counting convention mrnes uses so that shortest paths minimize hop
// count, routes.go: "Weighting each edge by 1 ... is sort of what local
// routing like OSPF does"), and resets the shortest-path cache.
func (b *Builder) Build() (*Topology, error) {
	t := &Topology{
		nodes:           make(map[NodeID]*Node, len(b.nodes)),
		links:           make(map[LinkID]*Link, len(b.links)),
		linkByEndpoints: make(map[[2]NodeID]*Link, len(b.links)),
		gNodes:          make(map[NodeID]simple.Node, len(b.nodes)),
		cachedSP:        make(map[NodeID]path.Shortest),
	}

	t.g = simple.NewWeightedDirectedGraph(0, math.Inf(1))

	for _, n := range b.nodes {
		if _, dup := t.nodes[n.ID]; dup {
			return nil, fmt.Errorf("topology: duplicate node id %d", n.ID)
		}
		t.nodes[n.ID] = n
		gn := simple.Node(int64(n.ID))
		t.gNodes[n.ID] = gn
		t.g.AddNode(gn)
	}

	for _, l := range b.links {
		if _, dup := t.links[l.ID]; dup {
			return nil, fmt.Errorf("topology: duplicate link id %d", l.ID)
		}
		fromN, ok := t.gNodes[l.From]
		if !ok {
			return nil, fmt.Errorf("topology: link %d references unknown node %d", l.ID, l.From)
		}
		toN, ok := t.gNodes[l.To]
		if !ok {
			return nil, fmt.Errorf("topology: link %d references unknown node %d", l.ID, l.To)
		}
		t.links[l.ID] = l
		t.linkByEndpoints[[2]NodeID{l.From, l.To}] = l
		t.g.SetWeightedEdge(simple.WeightedEdge{F: fromN, T: toN, W: 1.0})
	}

	return t, nil
}

// Nodes returns the node ids in the topology, order unspecified.
func (t *Topology) Nodes() []NodeID {
	ids := make([]NodeID, 0, len(t.nodes))
	for id := range t.nodes {
		ids = append(ids, id)
	}
	return ids
}

// LinkBetween returns the link from -> to, if one exists.
func (t *Topology) LinkBetween(from, to NodeID) (*Link, bool) {
	l, ok := t.linkByEndpoints[[2]NodeID{from, to}]
	return l, ok
}

// NodeResource returns resource r's capacity at node id, or 0 if the node
// or resource is unknown.
func (t *Topology) NodeResource(id NodeID, r string) float64 {
	n, ok := t.nodes[id]
	if !ok {
		return 0
	}
	return n.Resources[r]
}

// LinkResource returns resource r's capacity on the link from -> to, or 0
// if no such link or resource exists.
func (t *Topology) LinkResource(from, to NodeID, r string) float64 {
	l, ok := t.linkByEndpoints[[2]NodeID{from, to}]
	if !ok {
		return 0
	}
	return l.Resources[r]
}

// TotalResource sums resource r's capacity across every node and link in
// the topology (spec §3's N[r] = t.total_resource(r)).
func (t *Topology) TotalResource(r string) float64 {
	var total float64
	for _, n := range t.nodes {
		total += n.Resources[r]
	}
	for _, l := range t.links {
		total += l.Resources[r]
	}
	return total
}

// MaxResourceAlongNodes returns the maximum capacity of resource r across
// the given node sequence and the links directly connecting consecutive
// nodes in it -- exactly the "nodes ∪ links" union the resource score
// formula in §4.2 maximizes over.
func (t *Topology) MaxResourceAlongNodes(nodes []NodeID, r string) float64 {
	max := 0.0
	for i, n := range nodes {
		if v := t.NodeResource(n, r); v > max {
			max = v
		}
		if i > 0 {
			if v := t.LinkResource(nodes[i-1], n, r); v > max {
				max = v
			}
		}
	}
	return max
}

// MinResourceAlongNodes returns the minimum capacity of resource r across
// the node sequence only (used by the SA path-score variant in §4.2, which
// takes a min over nodes rather than a max over nodes-and-links).
func (t *Topology) MinResourceAlongNodes(nodes []NodeID, r string) float64 {
	if len(nodes) == 0 {
		return 0
	}
	min := math.Inf(1)
	for _, n := range nodes {
		if v := t.NodeResource(n, r); v < min {
			min = v
		}
	}
	if math.IsInf(min, 1) {
		return 0
	}
	return min
}

// sptFrom returns (and caches) the shortest-path tree rooted at from,
// mirroring mrnes's getSPTree.
func (t *Topology) sptFrom(from NodeID) path.Shortest {
	if spt, ok := t.cachedSP[from]; ok {
		return spt
	}
	spt := path.DijkstraFrom(t.gNodes[from], t.g)
	t.cachedSP[from] = spt
	return spt
}

// Diameter returns the longest shortest path (in hops) over all ordered
// node pairs, computed by building a shortest-path tree rooted at every
// node and taking the largest finite weight found -- the brute-force
// generalization of mrnes's single-source getSPTree to an all-pairs query.
// The result is cached after the first call since the topology is
// immutable once built.
func (t *Topology) Diameter() float64 {
	if t.diameterDone {
		return t.diameter
	}
	var diameter float64
	for from := range t.nodes {
		spt := t.sptFrom(from)
		for to := range t.nodes {
			if from == to {
				continue
			}
			_, weight := spt.To(int64(to))
			if math.IsInf(weight, 1) {
				continue
			}
			if weight > diameter {
				diameter = weight
			}
		}
	}
	t.diameter = diameter
	t.diameterDone = true
	return t.diameter
}

// ShortestPath returns the node sequence of the shortest path from -> to,
// and whether one exists.
func (t *Topology) ShortestPath(from, to NodeID) ([]NodeID, bool) {
	spt := t.sptFrom(from)
	nodes, weight := spt.To(int64(to))
	if math.IsInf(weight, 1) || len(nodes) == 0 {
		return nil, false
	}
	out := make([]NodeID, len(nodes))
	for i, n := range nodes {
		out[i] = NodeID(n.ID())
	}
	return out, true
}

// graphNode exposes the underlying gonum node for a topology node id.
func (t *Topology) graphNode(id NodeID) graph.Node {
	return t.gNodes[id]
}
