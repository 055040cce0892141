package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/arkamesh/arka/internal/record"
)

// marshalJSON serializes a value to JSON TEXT for a record column.
// HTML escaping is disabled so stored text matches what callers submit
// byte for byte.
func marshalJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("marshal record column: %w", err)
	}
	// Encoder adds a trailing newline, remove it
	return strings.TrimSpace(buf.String()), nil
}

// marshalNeedItems converts need items to JSON TEXT for storage.
func marshalNeedItems(items []record.NeedItem) (string, error) {
	if items == nil {
		return "[]", nil
	}
	return marshalJSON(items)
}

// marshalOfferItems converts offer items to JSON TEXT for storage.
func marshalOfferItems(items []record.OfferItem) (string, error) {
	if items == nil {
		return "[]", nil
	}
	return marshalJSON(items)
}

// marshalConstraints converts constraints to JSON TEXT for storage.
func marshalConstraints(c record.Constraints) (string, error) {
	return marshalJSON(c)
}

// marshalHints converts a trust-hint list to JSON TEXT for storage.
func marshalHints(hints []string) (string, error) {
	if hints == nil {
		return "[]", nil
	}
	return marshalJSON(hints)
}

// unmarshalNeedItems parses JSON TEXT back to need items.
func unmarshalNeedItems(data string) ([]record.NeedItem, error) {
	if data == "" || data == "[]" {
		return nil, nil
	}
	var items []record.NeedItem
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		return nil, fmt.Errorf("unmarshal need items: %w", err)
	}
	return items, nil
}

// unmarshalOfferItems parses JSON TEXT back to offer items.
func unmarshalOfferItems(data string) ([]record.OfferItem, error) {
	if data == "" || data == "[]" {
		return nil, nil
	}
	var items []record.OfferItem
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		return nil, fmt.Errorf("unmarshal offer items: %w", err)
	}
	return items, nil
}

// unmarshalConstraints parses JSON TEXT back to constraints.
func unmarshalConstraints(data string) (record.Constraints, error) {
	var c record.Constraints
	if data == "" || data == "{}" {
		return c, nil
	}
	if err := json.Unmarshal([]byte(data), &c); err != nil {
		return record.Constraints{}, fmt.Errorf("unmarshal constraints: %w", err)
	}
	return c, nil
}

// unmarshalHints parses JSON TEXT back to a trust-hint list.
func unmarshalHints(data string) ([]string, error) {
	if data == "" || data == "[]" {
		return nil, nil
	}
	var hints []string
	if err := json.Unmarshal([]byte(data), &hints); err != nil {
		return nil, fmt.Errorf("unmarshal trust hints: %w", err)
	}
	return hints, nil
}
