package match

import (
	"github.com/arkamesh/arka/internal/record"
)

// DimensionColdChain is the offer-item capability flag checked by the
// cold-chain bonus.
const DimensionColdChain = "cold_chain"

// Query is the need side of a match evaluation. It is either built
// from a stored NeedRecord (see ComputeForNeed) or assembled ad hoc
// from a raw item list.
type Query struct {
	// Items are the needed items. Matching is case-insensitive on the
	// item name.
	Items []record.NeedItem

	// ColdChain signals that the requester needs cold-chain handling.
	ColdChain bool

	// TrustedNodes is the requester's set of vouched node ids, used by
	// the trust-overlap bonus.
	TrustedNodes []string

	// Region is the requester's coarse region, used by the locality
	// bonus.
	Region string
}

// Coverage returns the fraction of a needed quantity satisfiable by an
// offered quantity, clamped to [0,1].
//
// A zero offered quantity yields coverage 0 rather than a division
// error; the item still counts as matched on its name. A zero needed
// quantity is fully covered by any positive offer.
func Coverage(needed, offered int) float64 {
	if offered <= 0 {
		return 0.0
	}
	if needed <= 0 {
		return 1.0
	}
	c := float64(offered) / float64(needed)
	if c > 1.0 {
		return 1.0
	}
	return c
}

// Compute evaluates the query against every offer and returns one
// MatchResult per offer with at least one matched item. Offers with
// zero matched items are excluded entirely; there are no zero-score
// entries in the output.
//
// For each matched (need item, offer item) pair the pair score is
//
//	itemWeight + quantityWeight*coverage + bonuses
//
// and an offer's aggregate score is the SUM of its pair scores. This
// is a deliberate rule: an offer satisfying several distinct needed
// items outranks one satisfying a single item equally well.
//
// Results preserve offer order; matched items preserve evaluation
// order (offer items outer, needed items inner). Callers wanting a
// ranked view pass the output through Rank.
//
// Returns *record.InputError if any needed or offered quantity is
// negative. No partial results are returned on error.
func Compute(q Query, offers []record.OfferRecord, cfg Config) ([]record.MatchResult, error) {
	for _, item := range q.Items {
		if item.Quantity < 0 {
			return nil, record.NewInputError("query.items", "quantity must not be negative")
		}
		if record.ItemKey(item.Item) == "" {
			return nil, record.NewInputError("query.items", "item name must not be empty")
		}
	}
	for _, offer := range offers {
		for _, item := range offer.Items {
			if item.Quantity < 0 {
				return nil, record.NewInputError("offer.items", "quantity must not be negative")
			}
		}
	}

	trusted := make(map[string]bool, len(q.TrustedNodes))
	for _, id := range q.TrustedNodes {
		trusted[id] = true
	}

	results := make([]record.MatchResult, 0, len(offers))
	for _, offer := range offers {
		res := evaluateOffer(q, offer, cfg, trusted)
		if len(res.MatchedItems) == 0 {
			continue
		}
		results = append(results, res)
	}
	return results, nil
}

// ComputeForNeed evaluates a stored need record against the offers.
// The query is derived from the record: trusted nodes from its trust
// hints, region from its location, and the cold-chain flag as given.
// Every result carries the need's node id.
func ComputeForNeed(need record.NeedRecord, offers []record.OfferRecord, cfg Config) ([]record.MatchResult, error) {
	q := Query{
		Items:        need.Items,
		ColdChain:    need.ColdChain,
		TrustedNodes: need.TrustHints,
		Region:       need.Location.Region,
	}
	results, err := Compute(q, offers, cfg)
	if err != nil {
		return nil, err
	}
	for i := range results {
		results[i].NeedNode = need.NodeID
	}
	return results, nil
}

// evaluateOffer scores a single offer against the query.
func evaluateOffer(q Query, offer record.OfferRecord, cfg Config, trusted map[string]bool) record.MatchResult {
	res := record.MatchResult{OfferNode: offer.NodeID}

	// Offer-level bonuses are independent of the item pair; compute
	// them once.
	overlap := cfg.TrustOverlap && vouchOverlap(offer.TrustHints, trusted)
	local := cfg.Locality && q.Region != "" && q.Region == offer.Location.Region

	for _, offered := range offer.Items {
		offeredKey := record.ItemKey(offered.Item)
		for _, needed := range q.Items {
			if record.ItemKey(needed.Item) != offeredKey {
				continue
			}

			coverage := Coverage(needed.Quantity, offered.Quantity)
			pair := itemWeight + quantityWeight*coverage
			if cfg.ColdChain && q.ColdChain && offered.Dimensions[DimensionColdChain] {
				pair += bonusWeight
			}
			if overlap {
				pair += bonusWeight
			}
			if local {
				pair += bonusWeight
			}

			res.MatchedItems = append(res.MatchedItems, record.MatchedItem{
				Item:            needed.Item,
				QuantityNeeded:  needed.Quantity,
				QuantityOffered: offered.Quantity,
				Coverage:        coverage,
			})
			res.Score += pair
		}
	}
	return res
}

// vouchOverlap reports whether any of the offer's vouching nodes is in
// the requester's trusted set.
func vouchOverlap(hints []string, trusted map[string]bool) bool {
	for _, id := range hints {
		if trusted[id] {
			return true
		}
	}
	return false
}
