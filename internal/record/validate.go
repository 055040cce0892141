package record

import (
	"fmt"
	"math"
)

// Validate checks a need record at the storage boundary.
// Returns an *InputError describing the first violation found.
func (n NeedRecord) Validate() error {
	if n.NodeID == "" {
		return NewInputError("node_id", "must not be empty")
	}
	if len(n.Items) == 0 {
		return NewInputError("items", "must not be empty")
	}
	for i, item := range n.Items {
		if err := validateItem(fmt.Sprintf("items[%d]", i), item.Item, item.Quantity); err != nil {
			return err
		}
	}
	if n.Urgency < 0 || n.Urgency > 1 {
		return NewInputError("urgency", "must be in [0,1]")
	}
	if n.Vitality < 0 || n.Vitality > 1 {
		return NewInputError("vitality", "must be in [0,1]")
	}
	return nil
}

// Validate checks an offer record at the storage boundary.
func (o OfferRecord) Validate() error {
	if o.NodeID == "" {
		return NewInputError("node_id", "must not be empty")
	}
	if len(o.Items) == 0 {
		return NewInputError("items", "must not be empty")
	}
	for i, item := range o.Items {
		if err := validateItem(fmt.Sprintf("items[%d]", i), item.Item, item.Quantity); err != nil {
			return err
		}
	}
	if o.AvailabilityHours < 0 {
		return NewInputError("availability_hours", "must not be negative")
	}
	return nil
}

// Validate checks a trust event before it is appended.
//
// Only structural validity is checked. The ledger never rejects an
// event on business grounds: there is no cap on negative totals and no
// allowed range for deltas beyond being finite.
func (e TrustEvent) Validate() error {
	if e.NodeID == "" {
		return NewInputError("node_id", "must not be empty")
	}
	if e.Kind == "" {
		return NewInputError("event_kind", "must not be empty")
	}
	if math.IsNaN(e.Delta) || math.IsInf(e.Delta, 0) {
		return NewInputError("delta", "must be finite")
	}
	return nil
}

// validateItem checks the shared item-line constraints.
func validateItem(field, name string, quantity int) error {
	if ItemKey(name) == "" {
		return NewInputError(field+".item", "must not be empty")
	}
	if quantity < 0 {
		return NewInputError(field+".quantity", "must not be negative")
	}
	return nil
}
