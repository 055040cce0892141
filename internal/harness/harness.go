// Package harness runs conformance scenarios against the matching
// pipeline.
//
// A scenario is a YAML file describing a query, an offer snapshot, and
// the expected ranking. The harness executes Compute, optional route
// enrichment, and Rank entirely in memory - no store, no wall clock -
// so every run of a scenario produces an identical trace. Golden
// files pin those traces down byte for byte.
package harness

import (
	"fmt"
	"math"

	"github.com/arkamesh/arka/internal/match"
	"github.com/arkamesh/arka/internal/record"
	"github.com/arkamesh/arka/internal/route"
)

// Result is the outcome of running one scenario.
type Result struct {
	Scenario *Scenario
	Ranked   []record.MatchResult
}

// Run executes a scenario: Compute over the scenario's offers, route
// enrichment when logistics nodes are listed, then Rank.
func Run(s *Scenario) (*Result, error) {
	results, err := match.Compute(s.query(), s.offers(), s.matchConfig())
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", s.Name, err)
	}

	if len(s.Logistics) > 0 {
		for i := range results {
			r := route.Estimate(results[i].NeedNode, results[i].OfferNode, s.Logistics)
			results[i].Route = &r
		}
	}

	return &Result{
		Scenario: s,
		Ranked:   match.Rank(results),
	}, nil
}

// Check validates a result against the scenario's expectations:
// ranking order by offer node id, and scores (rounded to three
// decimals) when the scenario declares them.
func Check(result *Result) error {
	expect := result.Scenario.Expect

	if len(result.Ranked) != len(expect.Ranking) {
		return fmt.Errorf("scenario %s: got %d results, want %d",
			result.Scenario.Name, len(result.Ranked), len(expect.Ranking))
	}

	for i, res := range result.Ranked {
		if res.OfferNode != expect.Ranking[i] {
			return fmt.Errorf("scenario %s: rank %d is %s, want %s",
				result.Scenario.Name, i, res.OfferNode, expect.Ranking[i])
		}
	}

	if len(expect.Scores) > 0 {
		if len(expect.Scores) != len(result.Ranked) {
			return fmt.Errorf("scenario %s: %d expected scores for %d results",
				result.Scenario.Name, len(expect.Scores), len(result.Ranked))
		}
		for i, res := range result.Ranked {
			if got, want := round3(res.Score), expect.Scores[i]; got != want {
				return fmt.Errorf("scenario %s: rank %d score %v, want %v",
					result.Scenario.Name, i, got, want)
			}
		}
	}

	return nil
}

// round3 rounds to three decimal places for score comparison and
// trace serialization. Raw float sums carry representation noise
// (0.4+0.3 != 0.7 exactly) that would make golden traces flap.
func round3(x float64) float64 {
	return math.Round(x*1000) / 1000
}
