// Package pptc holds the Path variants and the Paths-Per-Traffic-Class
// (PPTC) container spec.md §3-§4.1 describes: a TC -> (candidate path
// sequence, boolean mask) mapping that is the sole selection state every
// selector mutates.
package pptc

import "github.com/iti/pathsel/topology"

// Path is the capability trait spec.md §9 calls for in place of dynamic
// dispatch on a plain-vs-middlebox path variant: both variants satisfy it,
// and code that only needs node sequence and length (scoring, PathTree's
// plain-path bucket) never has to branch on which one it holds.
type Path interface {
	Nodes() []topology.NodeID
	Length() int

	// Middleboxes returns the path's ordered middlebox nodes and true, or
	// (nil, false) if this path variant does not carry middlebox
	// information (a PlainPath).
	Middleboxes() ([]topology.NodeID, bool)
}

// PlainPath is a path of nodes and links only.
type PlainPath struct {
	nodes []topology.NodeID
}

// NewPlainPath constructs a PlainPath from its node sequence. The slice is
// copied.
func NewPlainPath(nodes []topology.NodeID) *PlainPath {
	n := make([]topology.NodeID, len(nodes))
	copy(n, nodes)
	return &PlainPath{nodes: n}
}

func (p *PlainPath) Nodes() []topology.NodeID { return p.nodes }
func (p *PlainPath) Length() int              { return len(p.nodes) }
func (p *PlainPath) Middleboxes() ([]topology.NodeID, bool) {
	return nil, false
}

// MboxPath is a path additionally carrying an ordered list of middlebox
// nodes it traverses, from which PathTree buckets it (§4.6).
type MboxPath struct {
	nodes  []topology.NodeID
	mboxes []topology.NodeID
}

// NewMboxPath constructs an MboxPath. Both slices are copied.
func NewMboxPath(nodes, mboxes []topology.NodeID) *MboxPath {
	n := make([]topology.NodeID, len(nodes))
	copy(n, nodes)
	m := make([]topology.NodeID, len(mboxes))
	copy(m, mboxes)
	return &MboxPath{nodes: n, mboxes: m}
}

func (p *MboxPath) Nodes() []topology.NodeID { return p.nodes }
func (p *MboxPath) Length() int              { return len(p.nodes) }
func (p *MboxPath) Middleboxes() ([]topology.NodeID, bool) {
	return p.mboxes, true
}
