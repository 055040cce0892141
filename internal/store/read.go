package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/arkamesh/arka/internal/record"
)

// ListNeeds returns all need records with deterministic ordering.
// Results are ordered by seq ASC, id ASC so that snapshot reads replay
// identically.
//
// Returns an empty slice (not nil) if no records exist.
func (s *Store) ListNeeds(ctx context.Context) ([]record.NeedRecord, error) {
	return s.queryNeeds(ctx, `
		SELECT id, node_id, items, urgency, vitality, region, constraints, trust_hints, cold_chain, seq, created_at
		FROM needs
		ORDER BY seq ASC, id ASC
	`)
}

// NeedsForNode returns all need records published by one node, oldest
// first.
func (s *Store) NeedsForNode(ctx context.Context, nodeID string) ([]record.NeedRecord, error) {
	return s.queryNeeds(ctx, `
		SELECT id, node_id, items, urgency, vitality, region, constraints, trust_hints, cold_chain, seq, created_at
		FROM needs
		WHERE node_id = ?
		ORDER BY seq ASC, id ASC
	`, nodeID)
}

// LatestNeedForNode returns the node's most recent need record - the
// one that supersedes all its earlier submissions.
// Returns sql.ErrNoRows if the node has never published a need.
func (s *Store) LatestNeedForNode(ctx context.Context, nodeID string) (record.NeedRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, node_id, items, urgency, vitality, region, constraints, trust_hints, cold_chain, seq, created_at
		FROM needs
		WHERE node_id = ?
		ORDER BY seq DESC, id DESC
		LIMIT 1
	`, nodeID)

	return scanNeedRow(row)
}

// ListOffers returns all offer records with deterministic ordering.
// Returns an empty slice (not nil) if no records exist.
func (s *Store) ListOffers(ctx context.Context) ([]record.OfferRecord, error) {
	return s.queryOffers(ctx, `
		SELECT id, node_id, items, constraints, trust_hints, availability_hours, region, seq, created_at
		FROM offers
		ORDER BY seq ASC, id ASC
	`)
}

// OffersForNode returns all offer records published by one node,
// oldest first.
func (s *Store) OffersForNode(ctx context.Context, nodeID string) ([]record.OfferRecord, error) {
	return s.queryOffers(ctx, `
		SELECT id, node_id, items, constraints, trust_hints, availability_hours, region, seq, created_at
		FROM offers
		WHERE node_id = ?
		ORDER BY seq ASC, id ASC
	`, nodeID)
}

// ListLogisticsNodes returns the ids of all logistics-capable nodes in
// registration order. The route estimator takes this snapshot as an
// explicit input rather than scanning storage itself.
func (s *Store) ListLogisticsNodes(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT node_id FROM nodes
		WHERE type = ?
		ORDER BY seq ASC, node_id ASC
	`, string(record.NodeLogistics))
	if err != nil {
		return nil, fmt.Errorf("query logistics nodes: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan logistics node: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate logistics nodes: %w", err)
	}

	if ids == nil {
		ids = []string{}
	}

	return ids, nil
}

// TrustHistory returns a node's trust events in append order.
// Per-node order is authoritative (seq ASC, id ASC); an unknown node
// yields an empty slice, not an error.
func (s *Store) TrustHistory(ctx context.Context, nodeID string) ([]record.TrustEvent, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, node_id, kind, delta, reason, ts, seq
		FROM trust_events
		WHERE node_id = ?
		ORDER BY seq ASC, id ASC
	`, nodeID)
	if err != nil {
		return nil, fmt.Errorf("query trust history: %w", err)
	}
	defer rows.Close()

	var events []record.TrustEvent
	for rows.Next() {
		ev, err := scanTrustEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate trust history: %w", err)
	}

	if events == nil {
		events = []record.TrustEvent{}
	}

	return events, nil
}

// TrustNodes returns all distinct node ids that have trust events.
// Used by replay verification to enumerate histories.
func (s *Store) TrustNodes(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT node_id FROM trust_events
		ORDER BY node_id
	`)
	if err != nil {
		return nil, fmt.Errorf("query trust nodes: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan trust node: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate trust nodes: %w", err)
	}

	if ids == nil {
		ids = []string{}
	}

	return ids, nil
}

// LastSeq returns the highest seq number used across all record
// tables. Used on startup to resume the logical clock from the correct
// position.
func (s *Store) LastSeq(ctx context.Context) (int64, error) {
	var maxSeq int64

	for _, table := range []string{"needs", "offers", "nodes", "trust_events"} {
		var seq int64
		query := fmt.Sprintf("SELECT COALESCE(MAX(seq), 0) FROM %s", table)
		if err := s.db.QueryRowContext(ctx, query).Scan(&seq); err != nil {
			return 0, fmt.Errorf("get last seq from %s: %w", table, err)
		}
		if seq > maxSeq {
			maxSeq = seq
		}
	}

	return maxSeq, nil
}

// queryNeeds runs a needs query and scans all rows.
func (s *Store) queryNeeds(ctx context.Context, query string, args ...any) ([]record.NeedRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query needs: %w", err)
	}
	defer rows.Close()

	var needs []record.NeedRecord
	for rows.Next() {
		need, err := scanNeed(rows)
		if err != nil {
			return nil, err
		}
		needs = append(needs, need)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate needs: %w", err)
	}

	// Return empty slice instead of nil
	if needs == nil {
		needs = []record.NeedRecord{}
	}

	return needs, nil
}

// queryOffers runs an offers query and scans all rows.
func (s *Store) queryOffers(ctx context.Context, query string, args ...any) ([]record.OfferRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query offers: %w", err)
	}
	defer rows.Close()

	var offers []record.OfferRecord
	for rows.Next() {
		offer, err := scanOffer(rows)
		if err != nil {
			return nil, err
		}
		offers = append(offers, offer)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate offers: %w", err)
	}

	if offers == nil {
		offers = []record.OfferRecord{}
	}

	return offers, nil
}

// scanNeed scans a row into a NeedRecord.
func scanNeed(rows *sql.Rows) (record.NeedRecord, error) {
	var need record.NeedRecord
	var itemsJSON, constraintsJSON, hintsJSON, createdAt string
	var coldChain int

	if err := rows.Scan(
		&need.ID, &need.NodeID, &itemsJSON, &need.Urgency, &need.Vitality,
		&need.Location.Region, &constraintsJSON, &hintsJSON, &coldChain,
		&need.Seq, &createdAt,
	); err != nil {
		return record.NeedRecord{}, fmt.Errorf("scan need: %w", err)
	}

	return decodeNeed(need, itemsJSON, constraintsJSON, hintsJSON, coldChain, createdAt)
}

// scanNeedRow scans a single row into a NeedRecord.
func scanNeedRow(row *sql.Row) (record.NeedRecord, error) {
	var need record.NeedRecord
	var itemsJSON, constraintsJSON, hintsJSON, createdAt string
	var coldChain int

	if err := row.Scan(
		&need.ID, &need.NodeID, &itemsJSON, &need.Urgency, &need.Vitality,
		&need.Location.Region, &constraintsJSON, &hintsJSON, &coldChain,
		&need.Seq, &createdAt,
	); err != nil {
		return record.NeedRecord{}, err
	}

	return decodeNeed(need, itemsJSON, constraintsJSON, hintsJSON, coldChain, createdAt)
}

// decodeNeed fills the JSON and time columns of a scanned need.
func decodeNeed(need record.NeedRecord, itemsJSON, constraintsJSON, hintsJSON string, coldChain int, createdAt string) (record.NeedRecord, error) {
	items, err := unmarshalNeedItems(itemsJSON)
	if err != nil {
		return record.NeedRecord{}, err
	}
	need.Items = items

	constraints, err := unmarshalConstraints(constraintsJSON)
	if err != nil {
		return record.NeedRecord{}, err
	}
	need.Constraints = constraints

	hints, err := unmarshalHints(hintsJSON)
	if err != nil {
		return record.NeedRecord{}, err
	}
	need.TrustHints = hints

	need.ColdChain = coldChain != 0

	ts, err := parseTimestamp(createdAt)
	if err != nil {
		return record.NeedRecord{}, fmt.Errorf("decode need: %w", err)
	}
	need.CreatedAt = ts

	return need, nil
}

// scanOffer scans a row into an OfferRecord.
func scanOffer(rows *sql.Rows) (record.OfferRecord, error) {
	var offer record.OfferRecord
	var itemsJSON, constraintsJSON, hintsJSON, createdAt string

	if err := rows.Scan(
		&offer.ID, &offer.NodeID, &itemsJSON, &constraintsJSON, &hintsJSON,
		&offer.AvailabilityHours, &offer.Location.Region, &offer.Seq, &createdAt,
	); err != nil {
		return record.OfferRecord{}, fmt.Errorf("scan offer: %w", err)
	}

	items, err := unmarshalOfferItems(itemsJSON)
	if err != nil {
		return record.OfferRecord{}, err
	}
	offer.Items = items

	constraints, err := unmarshalConstraints(constraintsJSON)
	if err != nil {
		return record.OfferRecord{}, err
	}
	offer.Constraints = constraints

	hints, err := unmarshalHints(hintsJSON)
	if err != nil {
		return record.OfferRecord{}, err
	}
	offer.TrustHints = hints

	ts, err := parseTimestamp(createdAt)
	if err != nil {
		return record.OfferRecord{}, fmt.Errorf("decode offer: %w", err)
	}
	offer.CreatedAt = ts

	return offer, nil
}

// scanTrustEvent scans a row into a TrustEvent.
func scanTrustEvent(rows *sql.Rows) (record.TrustEvent, error) {
	var ev record.TrustEvent
	var kind, ts string

	if err := rows.Scan(
		&ev.ID, &ev.NodeID, &kind, &ev.Delta, &ev.Reason, &ts, &ev.Seq,
	); err != nil {
		return record.TrustEvent{}, fmt.Errorf("scan trust event: %w", err)
	}

	ev.Kind = record.EventKind(kind)

	parsed, err := parseTimestamp(ts)
	if err != nil {
		return record.TrustEvent{}, fmt.Errorf("decode trust event: %w", err)
	}
	ev.Timestamp = parsed

	return ev, nil
}

// parseTimestamp parses a stored RFC 3339 timestamp column.
func parseTimestamp(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	ts, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return ts, nil
}
