// Package testutil provides deterministic helpers shared by tests:
// a resettable logical clock and builders for record fixtures.
package testutil

import (
	"fmt"
	"time"

	"github.com/arkamesh/arka/internal/record"
)

// FixtureTime is the wall-clock instant used by deterministic fixtures.
var FixtureTime = time.Date(2025, 7, 21, 12, 0, 0, 0, time.UTC)

// Offer builds an offer record for a node with the given items.
func Offer(nodeID string, items ...record.OfferItem) record.OfferRecord {
	return record.OfferRecord{
		ID:        fmt.Sprintf("offer-%s", nodeID),
		NodeID:    nodeID,
		Items:     items,
		CreatedAt: FixtureTime,
	}
}

// OfferItem builds a plain offer item with no capability flags.
func OfferItem(name string, quantity int) record.OfferItem {
	return record.OfferItem{Item: name, Quantity: quantity}
}

// ColdChainItem builds an offer item flagged cold_chain.
func ColdChainItem(name string, quantity int) record.OfferItem {
	return record.OfferItem{
		Item:       name,
		Quantity:   quantity,
		Dimensions: map[string]bool{"cold_chain": true},
	}
}

// NeedItem builds a need item line.
func NeedItem(name string, quantity int) record.NeedItem {
	return record.NeedItem{Item: name, Quantity: quantity}
}

// Need builds a need record for a node with the given items.
func Need(nodeID string, items ...record.NeedItem) record.NeedRecord {
	return record.NeedRecord{
		ID:        fmt.Sprintf("need-%s", nodeID),
		NodeID:    nodeID,
		Items:     items,
		CreatedAt: FixtureTime,
	}
}

// Event builds a trust event with an explicit seq, as the store would
// return it.
func Event(nodeID string, kind record.EventKind, delta float64, seq int64) record.TrustEvent {
	return record.TrustEvent{
		ID:        fmt.Sprintf("ev-%s-%d", nodeID, seq),
		NodeID:    nodeID,
		Kind:      kind,
		Delta:     delta,
		Timestamp: FixtureTime,
		Seq:       seq,
	}
}
