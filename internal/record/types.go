package record

import "time"

// NeedItem is a single line of a published need: an item name and the
// quantity required. Unit is informational (e.g. "vials", "kg").
type NeedItem struct {
	Item     string `json:"item"`
	Quantity int    `json:"quantity"`
	Unit     string `json:"unit,omitempty"`
}

// OfferItem is a single line of a published offer. Dimensions carries
// capability flags for the offered item, e.g. {"cold_chain": true}.
type OfferItem struct {
	Item       string          `json:"item"`
	Quantity   int             `json:"quantity"`
	Dimensions map[string]bool `json:"dimensions,omitempty"`
}

// Location is a coarse position report. Only the region is compared;
// the system never computes real distances.
type Location struct {
	Region string `json:"region,omitempty"`
}

// Constraints carries routing and risk constraints reported by a node.
type Constraints struct {
	Routes    []string `json:"routes,omitempty"`
	RiskFlags []string `json:"risk_flags,omitempty"`
}

// NeedRecord is a node's published list of needed items.
//
// Immutable once stored. Seq is the store-assigned logical sequence
// number; CreatedAt is informational.
type NeedRecord struct {
	ID          string      `json:"id"`
	NodeID      string      `json:"node_id"`
	Items       []NeedItem  `json:"items"`
	Urgency     float64     `json:"urgency"`
	Vitality    float64     `json:"vitality"`
	Location    Location    `json:"location"`
	Constraints Constraints `json:"constraints"`
	TrustHints  []string    `json:"trust_hints,omitempty"`
	ColdChain   bool        `json:"cold_chain,omitempty"`
	Seq         int64       `json:"seq"`
	CreatedAt   time.Time   `json:"created_at"`
}

// OfferRecord is a node's published list of offered items.
//
// AvailabilityHours is how long the offer stands, as reported by the
// offering node. Zero means unspecified.
type OfferRecord struct {
	ID                string      `json:"id"`
	NodeID            string      `json:"node_id"`
	Items             []OfferItem `json:"items"`
	Constraints       Constraints `json:"constraints"`
	TrustHints        []string    `json:"trust_hints,omitempty"`
	AvailabilityHours int         `json:"availability_hours,omitempty"`
	Location          Location    `json:"location"`
	Seq               int64       `json:"seq"`
	CreatedAt         time.Time   `json:"created_at"`
}

// EventKind categorizes a trust event.
type EventKind string

const (
	// KindReliefAction records a completed relief action by the node.
	KindReliefAction EventKind = "relief_action"

	// KindConsentRevoked records a counterparty revoking consent.
	KindConsentRevoked EventKind = "consent_revoked"

	// KindWarn records a warning issued against the node.
	KindWarn EventKind = "warn"

	// KindCommend records a commendation from another node.
	KindCommend EventKind = "commend"

	// KindRepair records a restorative action after a negative event.
	KindRepair EventKind = "repair"
)

// CanonicalDelta returns the conventional delta for an event kind.
// This is policy, not mechanism: the ledger stores whatever delta the
// caller supplies, and callers are free to override these values.
func CanonicalDelta(kind EventKind) (float64, bool) {
	switch kind {
	case KindReliefAction:
		return 0.5, true
	case KindConsentRevoked:
		return -1.0, true
	case KindWarn:
		return -0.25, true
	case KindCommend:
		return 0.25, true
	case KindRepair:
		return 0.75, true
	default:
		return 0, false
	}
}

// TrustEvent is one entry in a node's append-only trust log.
//
// Seq is the authoritative per-node order; Timestamp is informational
// only and never used for ordering.
type TrustEvent struct {
	ID        string    `json:"id"`
	NodeID    string    `json:"node_id"`
	Kind      EventKind `json:"event_kind"`
	Delta     float64   `json:"delta"`
	Reason    string    `json:"reason,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Seq       int64     `json:"seq"`
}

// MatchedItem is one need/offer item pairing inside a match.
// Coverage is min(offered/needed, 1), or 0 when nothing is offered.
type MatchedItem struct {
	Item            string  `json:"item"`
	QuantityNeeded  int     `json:"quantity_needed"`
	QuantityOffered int     `json:"quantity_offered"`
	Coverage        float64 `json:"coverage"`
}

// MatchResult is one offer's aggregate match against a query.
//
// NeedNode is set only when matching a stored need record rather than
// an ad-hoc item list. Route is filled in by the route estimator when
// the caller requests enrichment. MatchedAt is an audit timestamp
// stamped by the caller, never by the engine itself.
type MatchResult struct {
	OfferNode    string        `json:"offer_node"`
	NeedNode     string        `json:"need_node,omitempty"`
	MatchedItems []MatchedItem `json:"matched_items"`
	Score        float64       `json:"score"`
	Route        *Route        `json:"route,omitempty"`
	MatchedAt    time.Time     `json:"matched_at,omitzero"`
}

// Route is a simulated logistics estimate between a need and an offer.
// It is a plausibility signal, not a routing plan.
type Route struct {
	LogisticsNodes      []string `json:"logistics_nodes"`
	EstimatedTravelTime string   `json:"estimated_travel_time"`
	RiskScore           float64  `json:"risk_score"`
}

// NodeType classifies an entry in the node registry.
type NodeType string

const (
	// NodeParticipant publishes needs and/or offers.
	NodeParticipant NodeType = "participant"

	// NodeLogistics can carry goods between other nodes and is picked
	// up by the route estimator.
	NodeLogistics NodeType = "logistics"
)

// Node is an entry in the node registry.
type Node struct {
	NodeID string   `json:"node_id"`
	Type   NodeType `json:"type"`
	Seq    int64    `json:"seq"`
}
