// Package ledger implements the append-only trust ledger.
//
// Each node has an independent event sequence. Appends stamp events
// with a monotonic logical seq; scores are derived on demand by
// folding the node's full history. There is no cache and therefore no
// invalidation: a score read is always a full scan of that node's
// history at call time.
//
// The ledger validates structure only. It is a ledger, not a policy
// gate: no business rule (negative totals, delta caps) ever rejects an
// append. Corrections are new events, never retroactive edits.
package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/arkamesh/arka/internal/record"
)

// EventLog is the storage the ledger appends to and reads from.
// Satisfied by *store.Store.
//
// Implementations must preserve per-node append order on read; global
// ordering across nodes is not required.
type EventLog interface {
	AppendTrustEvent(ctx context.Context, ev record.TrustEvent) error
	TrustHistory(ctx context.Context, nodeID string) ([]record.TrustEvent, error)
}

// IDGenerator produces event ids. UUIDGenerator is the production
// implementation; tests use FixedIDGenerator for stable histories.
type IDGenerator interface {
	Generate() string
}

// UUIDGenerator generates time-sortable UUIDv7 event ids.
type UUIDGenerator struct{}

// Generate creates a new UUIDv7 as a hyphenated string.
// Panics if UUID generation fails (should never happen in practice).
func (g UUIDGenerator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// FixedIDGenerator returns predetermined ids for testing.
//
// This enables deterministic histories and golden trace comparison.
// Panics when all ids are consumed - a fail-fast signal that a test
// asked for more events than it declared.
type FixedIDGenerator struct {
	ids []string
	idx int
}

// NewFixedIDGenerator creates a generator that returns ids in order.
func NewFixedIDGenerator(ids ...string) *FixedIDGenerator {
	return &FixedIDGenerator{ids: ids}
}

// Generate returns the next predetermined id.
func (g *FixedIDGenerator) Generate() string {
	if g.idx >= len(g.ids) {
		panic("ledger: FixedIDGenerator exhausted")
	}
	id := g.ids[g.idx]
	g.idx++
	return id
}

// Ledger binds the append and fold operations to an event log.
type Ledger struct {
	log   EventLog
	clock *Clock
	ids   IDGenerator
	now   func() time.Time
}

// Option customizes a Ledger.
type Option func(*Ledger)

// WithClock replaces the ledger's logical clock. Used on startup to
// resume from the store's last seq, and by tests for fixed sequences.
func WithClock(c *Clock) Option {
	return func(l *Ledger) { l.clock = c }
}

// WithIDGenerator replaces the event id generator.
func WithIDGenerator(g IDGenerator) Option {
	return func(l *Ledger) { l.ids = g }
}

// WithNow replaces the wall-clock source for omitted timestamps.
func WithNow(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// New creates a Ledger over the given event log.
func New(log EventLog, opts ...Option) *Ledger {
	l := &Ledger{
		log:   log,
		clock: NewClock(),
		ids:   UUIDGenerator{},
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Append validates and appends one trust event.
//
// The event's node id must be non-empty and its delta finite;
// violations surface as *record.InputError with nothing written.
// A zero timestamp is filled with now(); an empty id gets a fresh
// UUIDv7. Seq is always assigned here - callers never pick their own.
func (l *Ledger) Append(ctx context.Context, ev record.TrustEvent) error {
	if err := ev.Validate(); err != nil {
		return err
	}

	if ev.ID == "" {
		ev.ID = l.ids.Generate()
	}
	if ev.Timestamp.IsZero() {
		ev.Timestamp = l.now().UTC()
	}
	ev.Seq = l.clock.Next()

	if err := l.log.AppendTrustEvent(ctx, ev); err != nil {
		return fmt.Errorf("append trust event: %w", err)
	}
	return nil
}

// Score folds the node's full history into its current trust score,
// rounded to three decimals. An unknown node scores 0.0 without error.
func (l *Ledger) Score(ctx context.Context, nodeID string) (float64, error) {
	events, err := l.log.TrustHistory(ctx, nodeID)
	if err != nil {
		return 0, fmt.Errorf("trust score: %w", err)
	}
	return Fold(events), nil
}

// History returns the node's events in append order. Used for audit
// and for replay verification; an unknown node yields an empty slice.
func (l *Ledger) History(ctx context.Context, nodeID string) ([]record.TrustEvent, error) {
	events, err := l.log.TrustHistory(ctx, nodeID)
	if err != nil {
		return nil, fmt.Errorf("trust history: %w", err)
	}
	return events, nil
}
