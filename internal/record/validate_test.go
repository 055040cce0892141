package record

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func validNeed() NeedRecord {
	return NeedRecord{
		NodeID:  "shelter-7",
		Items:   []NeedItem{{Item: "insulin", Quantity: 2}},
		Urgency: 0.9,
	}
}

func TestNeedRecord_Validate(t *testing.T) {
	require.NoError(t, validNeed().Validate())
}

func TestNeedRecord_Validate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*NeedRecord)
	}{
		{"empty node id", func(n *NeedRecord) { n.NodeID = "" }},
		{"no items", func(n *NeedRecord) { n.Items = nil }},
		{"empty item name", func(n *NeedRecord) { n.Items[0].Item = "  " }},
		{"negative quantity", func(n *NeedRecord) { n.Items[0].Quantity = -1 }},
		{"urgency above 1", func(n *NeedRecord) { n.Urgency = 1.5 }},
		{"negative vitality", func(n *NeedRecord) { n.Vitality = -0.1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			need := validNeed()
			tt.mutate(&need)
			err := need.Validate()
			require.Error(t, err)
			require.True(t, IsInputError(err), "want InputError, got %T", err)
		})
	}
}

func TestOfferRecord_Validate(t *testing.T) {
	offer := OfferRecord{
		NodeID: "depot-2",
		Items:  []OfferItem{{Item: "insulin", Quantity: 5}},
	}
	require.NoError(t, offer.Validate())

	offer.Items[0].Quantity = -3
	err := offer.Validate()
	require.Error(t, err)
	require.True(t, IsInputError(err))

	offer.Items[0].Quantity = 5
	offer.AvailabilityHours = -1
	require.Error(t, offer.Validate())
}

func TestOfferRecord_Validate_ZeroQuantityAllowed(t *testing.T) {
	// Zero is a legal quantity: the offer still matches on item name.
	offer := OfferRecord{
		NodeID: "depot-2",
		Items:  []OfferItem{{Item: "insulin", Quantity: 0}},
	}
	require.NoError(t, offer.Validate())
}

func TestTrustEvent_Validate(t *testing.T) {
	ev := TrustEvent{NodeID: "depot-2", Kind: KindReliefAction, Delta: 0.5}
	require.NoError(t, ev.Validate())

	tests := []struct {
		name   string
		mutate func(*TrustEvent)
	}{
		{"empty node id", func(e *TrustEvent) { e.NodeID = "" }},
		{"empty kind", func(e *TrustEvent) { e.Kind = "" }},
		{"NaN delta", func(e *TrustEvent) { e.Delta = math.NaN() }},
		{"Inf delta", func(e *TrustEvent) { e.Delta = math.Inf(1) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bad := ev
			tt.mutate(&bad)
			err := bad.Validate()
			require.Error(t, err)
			require.True(t, IsInputError(err))
		})
	}
}

func TestTrustEvent_Validate_NoBusinessLimits(t *testing.T) {
	// The ledger is not a policy gate: arbitrarily large negative
	// deltas are structurally valid.
	ev := TrustEvent{NodeID: "depot-2", Kind: KindWarn, Delta: -1000000}
	require.NoError(t, ev.Validate())
}

func TestCanonicalDelta(t *testing.T) {
	tests := []struct {
		kind  EventKind
		delta float64
	}{
		{KindReliefAction, 0.5},
		{KindConsentRevoked, -1.0},
		{KindWarn, -0.25},
		{KindCommend, 0.25},
		{KindRepair, 0.75},
	}
	for _, tt := range tests {
		delta, ok := CanonicalDelta(tt.kind)
		require.True(t, ok, "kind %s", tt.kind)
		require.Equal(t, tt.delta, delta)
	}

	_, ok := CanonicalDelta("made_up")
	require.False(t, ok)
}
