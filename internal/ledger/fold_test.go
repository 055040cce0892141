package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arkamesh/arka/internal/record"
	"github.com/arkamesh/arka/internal/testutil"
)

func TestFold_SumsDeltas(t *testing.T) {
	events := []record.TrustEvent{
		testutil.Event("x", record.KindReliefAction, 0.5, 1),
		testutil.Event("x", record.KindConsentRevoked, -1.0, 2),
		testutil.Event("x", record.KindReliefAction, 0.5, 3),
	}
	assert.Equal(t, 0.0, Fold(events))
}

func TestFold_EmptyHistoryIsNeutral(t *testing.T) {
	assert.Equal(t, 0.0, Fold(nil))
	assert.Equal(t, 0.0, Fold([]record.TrustEvent{}))
}

func TestFold_NegativeTotalAllowed(t *testing.T) {
	events := []record.TrustEvent{
		testutil.Event("x", record.KindConsentRevoked, -1.0, 1),
		testutil.Event("x", record.KindWarn, -0.25, 2),
	}
	assert.Equal(t, -1.25, Fold(events))
}

func TestFold_RoundsThreeDecimals(t *testing.T) {
	// 0.1+0.2 is not representable exactly; the fold normalizes it.
	events := []record.TrustEvent{
		testutil.Event("x", record.KindCommend, 0.1, 1),
		testutil.Event("x", record.KindCommend, 0.2, 2),
	}
	assert.Equal(t, 0.3, Fold(events))
}

func TestFoldPrefix(t *testing.T) {
	events := []record.TrustEvent{
		testutil.Event("x", record.KindReliefAction, 0.5, 1),
		testutil.Event("x", record.KindConsentRevoked, -1.0, 2),
		testutil.Event("x", record.KindRepair, 0.75, 3),
	}

	assert.Equal(t, 0.0, FoldPrefix(events, 0))
	assert.Equal(t, 0.5, FoldPrefix(events, 1))
	assert.Equal(t, -0.5, FoldPrefix(events, 2))
	assert.Equal(t, 0.25, FoldPrefix(events, 3))
	// Past the end clamps to the full history.
	assert.Equal(t, 0.25, FoldPrefix(events, 10))
}

func TestVerify_ConsistentHistory(t *testing.T) {
	events := []record.TrustEvent{
		testutil.Event("x", record.KindReliefAction, 0.5, 1),
		testutil.Event("x", record.KindWarn, -0.25, 4),
		testutil.Event("x", record.KindCommend, 0.25, 9),
	}
	require.NoError(t, Verify(events))
}

func TestVerify_EmptyHistory(t *testing.T) {
	require.NoError(t, Verify(nil))
}

func TestVerify_RejectsNonIncreasingSeq(t *testing.T) {
	events := []record.TrustEvent{
		testutil.Event("x", record.KindReliefAction, 0.5, 5),
		testutil.Event("x", record.KindWarn, -0.25, 5),
	}
	err := Verify(events)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "append order")
}

func TestVerify_RejectsDecreasingSeq(t *testing.T) {
	events := []record.TrustEvent{
		testutil.Event("x", record.KindReliefAction, 0.5, 7),
		testutil.Event("x", record.KindWarn, -0.25, 3),
	}
	require.Error(t, Verify(events))
}
