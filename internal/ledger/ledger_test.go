package ledger

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arkamesh/arka/internal/record"
	"github.com/arkamesh/arka/internal/testutil"
)

// memLog is an in-memory EventLog preserving per-node append order.
type memLog struct {
	events map[string][]record.TrustEvent
}

func newMemLog() *memLog {
	return &memLog{events: make(map[string][]record.TrustEvent)}
}

func (m *memLog) AppendTrustEvent(_ context.Context, ev record.TrustEvent) error {
	m.events[ev.NodeID] = append(m.events[ev.NodeID], ev)
	return nil
}

func (m *memLog) TrustHistory(_ context.Context, nodeID string) ([]record.TrustEvent, error) {
	return m.events[nodeID], nil
}

func newTestLedger(log EventLog) *Ledger {
	return New(log,
		WithIDGenerator(NewFixedIDGenerator("ev-1", "ev-2", "ev-3", "ev-4")),
		WithNow(func() time.Time { return testutil.FixtureTime }),
	)
}

func TestLedger_AppendStampsEvent(t *testing.T) {
	log := newMemLog()
	l := newTestLedger(log)
	ctx := context.Background()

	err := l.Append(ctx, record.TrustEvent{
		NodeID: "depot-2",
		Kind:   record.KindReliefAction,
		Delta:  0.5,
	})
	require.NoError(t, err)

	history, err := l.History(ctx, "depot-2")
	require.NoError(t, err)
	require.Len(t, history, 1)

	ev := history[0]
	assert.Equal(t, "ev-1", ev.ID)
	assert.Equal(t, testutil.FixtureTime, ev.Timestamp)
	assert.Equal(t, int64(1), ev.Seq)
}

func TestLedger_AppendKeepsCallerIDAndTimestamp(t *testing.T) {
	log := newMemLog()
	l := newTestLedger(log)
	ctx := context.Background()

	ts := testutil.FixtureTime.Add(-time.Hour)
	err := l.Append(ctx, record.TrustEvent{
		ID:        "caller-id",
		NodeID:    "depot-2",
		Kind:      record.KindWarn,
		Delta:     -0.25,
		Timestamp: ts,
	})
	require.NoError(t, err)

	history, _ := l.History(ctx, "depot-2")
	require.Len(t, history, 1)
	assert.Equal(t, "caller-id", history[0].ID)
	assert.Equal(t, ts, history[0].Timestamp)
}

func TestLedger_AppendRejectsInvalid(t *testing.T) {
	log := newMemLog()
	l := newTestLedger(log)
	ctx := context.Background()

	err := l.Append(ctx, record.TrustEvent{Kind: record.KindWarn, Delta: -0.25})
	require.Error(t, err)
	assert.True(t, record.IsInputError(err))

	err = l.Append(ctx, record.TrustEvent{NodeID: "x", Kind: record.KindWarn, Delta: math.NaN()})
	require.Error(t, err)
	assert.True(t, record.IsInputError(err))

	// Nothing was written.
	assert.Empty(t, log.events)
}

func TestLedger_ScoreFoldsHistory(t *testing.T) {
	log := newMemLog()
	l := newTestLedger(log)
	ctx := context.Background()

	deltas := []float64{0.5, -1.0, 0.5}
	for _, d := range deltas {
		require.NoError(t, l.Append(ctx, record.TrustEvent{
			NodeID: "node-x",
			Kind:   record.KindReliefAction,
			Delta:  d,
		}))
	}

	score, err := l.Score(ctx, "node-x")
	require.NoError(t, err)
	assert.Equal(t, 0.0, score)
}

func TestLedger_ScoreUnknownNode(t *testing.T) {
	l := newTestLedger(newMemLog())

	score, err := l.Score(context.Background(), "never-seen")
	require.NoError(t, err)
	assert.Equal(t, 0.0, score)
}

func TestLedger_SeqIsolatesPerNodeOrder(t *testing.T) {
	log := newMemLog()
	l := newTestLedger(log)
	ctx := context.Background()

	require.NoError(t, l.Append(ctx, record.TrustEvent{NodeID: "a", Kind: record.KindCommend, Delta: 0.25}))
	require.NoError(t, l.Append(ctx, record.TrustEvent{NodeID: "b", Kind: record.KindCommend, Delta: 0.25}))
	require.NoError(t, l.Append(ctx, record.TrustEvent{NodeID: "a", Kind: record.KindWarn, Delta: -0.25}))

	historyA, _ := l.History(ctx, "a")
	require.Len(t, historyA, 2)
	// Seq gaps from interleaved nodes are fine; order within the node
	// must still be strictly increasing.
	assert.Equal(t, int64(1), historyA[0].Seq)
	assert.Equal(t, int64(3), historyA[1].Seq)
	require.NoError(t, Verify(historyA))
}

func TestLedger_ResumedClock(t *testing.T) {
	log := newMemLog()
	l := New(log,
		WithClock(NewClockAt(41)),
		WithIDGenerator(NewFixedIDGenerator("ev-1")),
	)
	ctx := context.Background()

	require.NoError(t, l.Append(ctx, record.TrustEvent{NodeID: "a", Kind: record.KindCommend, Delta: 0.25}))

	history, _ := l.History(ctx, "a")
	require.Len(t, history, 1)
	assert.Equal(t, int64(42), history[0].Seq)
}

func TestFixedIDGenerator_PanicsWhenExhausted(t *testing.T) {
	g := NewFixedIDGenerator("only")
	assert.Equal(t, "only", g.Generate())
	assert.Panics(t, func() { g.Generate() })
}
