// Package route implements the naive route estimator.
//
// The estimate is a plausibility signal derived from how many
// logistics-capable nodes are known at evaluation time. It is a
// documented heuristic, not a probabilistic model, and never a real
// routing system.
package route

import (
	"fmt"
	"math"

	"github.com/arkamesh/arka/internal/record"
)

// HopMinutes is the simulated travel time contributed by each known
// logistics node.
const HopMinutes = 30

// UnknownTravelTime is the sentinel travel time reported when no
// logistics nodes are known.
const UnknownTravelTime = "unknown"

// Estimate produces a coarse logistics estimate for a matched
// need/offer pair from the current snapshot of logistics node ids.
//
// With no logistics nodes the route is the maximum-uncertainty
// sentinel: travel time "unknown", risk 1.0. Otherwise travel time is
// 30 minutes per known node and risk is 1/count rounded to two
// decimals; in this simplified model more intermediaries lower per-hop
// risk.
//
// Pure function of its inputs: recomputed per request, never cached.
// The id slice is copied so callers may reuse their snapshot.
// The need and offer node ids identify the pair being estimated; the
// heuristic itself depends only on the logistics snapshot.
func Estimate(needNode, offerNode string, logistics []string) record.Route {
	if len(logistics) == 0 {
		return record.Route{
			LogisticsNodes:      []string{},
			EstimatedTravelTime: UnknownTravelTime,
			RiskScore:           1.0,
		}
	}

	ids := make([]string, len(logistics))
	copy(ids, logistics)

	n := len(ids)
	return record.Route{
		LogisticsNodes:      ids,
		EstimatedTravelTime: fmt.Sprintf("%dm", HopMinutes*n),
		RiskScore:           round2(1.0 / float64(n)),
	}
}

// round2 rounds to two decimal places.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
