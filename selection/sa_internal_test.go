package selection

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestSaAcceptProbabilityIsHillClimbing mirrors spec scenario 4's intent:
// the acceptance rule only ever accepts non-worsening moves, never the
// Metropolis form the docstrings and unused t parameter hint at.
func TestSaAcceptProbabilityIsHillClimbing(t *testing.T) {
	require.Equal(t, 1.0, saAcceptProbability(5, 5, 0.5))
	require.Equal(t, 1.0, saAcceptProbability(5, 9, 0.5))
	require.Equal(t, 0.0, saAcceptProbability(9, 5, 0.5))
}
