// Package traffic holds the TrafficClass type (spec.md §3).
package traffic

import "gonum.org/v1/gonum/floats"

// TrafficClass is an aggregate of flows sharing an ingress/egress pair, a
// priority, and a per-epoch volume profile. Its ID is unique within one
// selection run and indexes directly into the PPTC the selectors mutate.
type TrafficClass struct {
	ID       int
	Ingress  int
	Egress   int
	Priority int

	// VolFlows holds the per-epoch traffic volume. It may be replaced
	// wholesale by the clustering preprocessor (§4.7).
	VolFlows []float64

	SrcPrefix string
	DstPrefix string
}

// New constructs a TrafficClass with the given identity and volume vector.
// The volume slice is copied so that callers retain ownership of their own
// buffer.
func New(id, ingress, egress, priority int, volFlows []float64, srcPrefix, dstPrefix string) *TrafficClass {
	vol := make([]float64, len(volFlows))
	copy(vol, volFlows)
	return &TrafficClass{
		ID:        id,
		Ingress:   ingress,
		Egress:    egress,
		Priority:  priority,
		VolFlows:  vol,
		SrcPrefix: srcPrefix,
		DstPrefix: dstPrefix,
	}
}

// MeanVolume returns the mean of VolFlows across epochs, or 0 if empty.
func (tc *TrafficClass) MeanVolume() float64 {
	if len(tc.VolFlows) == 0 {
		return 0
	}
	return floats.Sum(tc.VolFlows) / float64(len(tc.VolFlows))
}

// SetVolFlows replaces the volume vector, e.g. with the cluster
// representative the clustering preprocessor assigned.
func (tc *TrafficClass) SetVolFlows(v []float64) {
	tc.VolFlows = append(tc.VolFlows[:0], v...)
}
