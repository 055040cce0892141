package store

import (
	"context"
	"fmt"
	"time"

	"github.com/arkamesh/arka/internal/record"
)

// WriteNeed inserts a need record into the store.
// Uses ON CONFLICT(id) DO NOTHING for idempotency - duplicate IDs are
// silently ignored. Records are immutable: a node supersedes a need by
// submitting a new record, never by updating the old row.
func (s *Store) WriteNeed(ctx context.Context, need record.NeedRecord) error {
	itemsJSON, err := marshalNeedItems(need.Items)
	if err != nil {
		return fmt.Errorf("write need: %w", err)
	}
	constraintsJSON, err := marshalConstraints(need.Constraints)
	if err != nil {
		return fmt.Errorf("write need: %w", err)
	}
	hintsJSON, err := marshalHints(need.TrustHints)
	if err != nil {
		return fmt.Errorf("write need: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO needs
		(id, node_id, items, urgency, vitality, region, constraints, trust_hints, cold_chain, seq, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		need.ID,
		need.NodeID,
		itemsJSON,
		need.Urgency,
		need.Vitality,
		need.Location.Region,
		constraintsJSON,
		hintsJSON,
		boolToInt(need.ColdChain),
		need.Seq,
		need.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("write need: %w", err)
	}

	return nil
}

// WriteOffer inserts an offer record into the store.
// Same idempotency and immutability contract as WriteNeed.
func (s *Store) WriteOffer(ctx context.Context, offer record.OfferRecord) error {
	itemsJSON, err := marshalOfferItems(offer.Items)
	if err != nil {
		return fmt.Errorf("write offer: %w", err)
	}
	constraintsJSON, err := marshalConstraints(offer.Constraints)
	if err != nil {
		return fmt.Errorf("write offer: %w", err)
	}
	hintsJSON, err := marshalHints(offer.TrustHints)
	if err != nil {
		return fmt.Errorf("write offer: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO offers
		(id, node_id, items, constraints, trust_hints, availability_hours, region, seq, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		offer.ID,
		offer.NodeID,
		itemsJSON,
		constraintsJSON,
		hintsJSON,
		offer.AvailabilityHours,
		offer.Location.Region,
		offer.Seq,
		offer.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("write offer: %w", err)
	}

	return nil
}

// AppendTrustEvent inserts one trust event.
//
// Each event is a single INSERT committed on its own, so concurrent
// appends are never interleaved or lost. Uses ON CONFLICT(id) DO
// NOTHING for idempotency. Events are never updated or deleted - the
// trust log is append-only and corrections are new events.
func (s *Store) AppendTrustEvent(ctx context.Context, ev record.TrustEvent) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO trust_events
		(id, node_id, kind, delta, reason, ts, seq)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		ev.ID,
		ev.NodeID,
		string(ev.Kind),
		ev.Delta,
		ev.Reason,
		ev.Timestamp.UTC().Format(time.RFC3339Nano),
		ev.Seq,
	)
	if err != nil {
		return fmt.Errorf("append trust event: %w", err)
	}

	return nil
}

// RegisterNode upserts a node registry entry.
//
// Re-registering an existing node updates its type (a participant may
// later become logistics-capable) but keeps its original seq, so
// logistics discovery order stays stable.
func (s *Store) RegisterNode(ctx context.Context, node record.Node) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO nodes (node_id, type, seq)
		VALUES (?, ?, ?)
		ON CONFLICT(node_id) DO UPDATE SET type = excluded.type
	`,
		node.NodeID,
		string(node.Type),
		node.Seq,
	)
	if err != nil {
		return fmt.Errorf("register node: %w", err)
	}

	return nil
}

// boolToInt maps a Go bool onto a SQLite integer column.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
