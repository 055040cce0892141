package harness

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/arkamesh/arka/internal/record"
)

// TraceSnapshot captures the ranked trace of a scenario execution in a
// deterministic serial form: struct field order fixes key order, and
// scores/coverages are rounded to three decimals.
type TraceSnapshot struct {
	Scenario string        `json:"scenario"`
	Ranked   []RankedEntry `json:"ranked"`
}

// RankedEntry is one ranked match in the trace.
type RankedEntry struct {
	OfferNode string        `json:"offer_node"`
	Items     []TraceItem   `json:"items"`
	Score     float64       `json:"score"`
	Route     *record.Route `json:"route,omitempty"`
}

// TraceItem is one matched item pair in the trace.
type TraceItem struct {
	Item     string  `json:"item"`
	Needed   int     `json:"needed"`
	Offered  int     `json:"offered"`
	Coverage float64 `json:"coverage"`
}

// snapshot converts a result to its trace form.
func snapshot(result *Result) TraceSnapshot {
	snap := TraceSnapshot{
		Scenario: result.Scenario.Name,
		Ranked:   make([]RankedEntry, 0, len(result.Ranked)),
	}
	for _, res := range result.Ranked {
		entry := RankedEntry{
			OfferNode: res.OfferNode,
			Items:     make([]TraceItem, 0, len(res.MatchedItems)),
			Score:     round3(res.Score),
			Route:     res.Route,
		}
		for _, mi := range res.MatchedItems {
			entry.Items = append(entry.Items, TraceItem{
				Item:     mi.Item,
				Needed:   mi.QuantityNeeded,
				Offered:  mi.QuantityOffered,
				Coverage: round3(mi.Coverage),
			})
		}
		snap.Ranked = append(snap.Ranked, entry)
	}
	return snap
}

// RunWithGolden executes a scenario and compares its ranked trace
// against a golden file in testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Golden files are the source of truth for expected ranking behavior;
// a diff here means the scoring rules changed.
func RunWithGolden(t *testing.T, s *Scenario) error {
	t.Helper()

	result, err := Run(s)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(snapshot(result), "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, s.Name, data)

	return nil
}
