package ledger

import (
	"fmt"
	"math"

	"github.com/arkamesh/arka/internal/record"
)

// Fold derives a trust score from a node's full event history: the sum
// of all deltas, rounded to three decimals. An empty history folds to
// 0.0; absence of history means neutral trust, not an error.
//
// Pure function. The score is never cached across writes; callers fold
// the history at read time.
func Fold(events []record.TrustEvent) float64 {
	var sum float64
	for _, ev := range events {
		sum += ev.Delta
	}
	return round3(sum)
}

// FoldPrefix folds only the first n events of the history. Historical
// score snapshots remain reproducible because the log is append-only:
// replaying a prefix always yields the score as of that point.
func FoldPrefix(events []record.TrustEvent, n int) float64 {
	if n > len(events) {
		n = len(events)
	}
	return Fold(events[:n])
}

// Verify checks prefix consistency of a node's history: the fold of
// each prefix must equal the incrementally accumulated sum, and seq
// numbers must be strictly increasing. A violation means the store
// returned events out of append order.
func Verify(events []record.TrustEvent) error {
	var sum float64
	var lastSeq int64
	for i, ev := range events {
		if i > 0 && ev.Seq <= lastSeq {
			return fmt.Errorf("event %d: seq %d not after %d: history out of append order", i, ev.Seq, lastSeq)
		}
		lastSeq = ev.Seq
		sum += ev.Delta
		if got, want := FoldPrefix(events, i+1), round3(sum); got != want {
			return fmt.Errorf("event %d: prefix fold %v != accumulated %v", i, got, want)
		}
	}
	return nil
}

// round3 rounds to three decimal places.
func round3(x float64) float64 {
	return math.Round(x*1000) / 1000
}
