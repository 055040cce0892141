package match

// Scoring weights. An item-name match alone is worth itemWeight; the
// quantity term scales quantityWeight by coverage; each enabled bonus
// that applies adds bonusWeight.
const (
	itemWeight     = 0.4
	quantityWeight = 0.3
	bonusWeight    = 0.1
)

// Config toggles the optional bonus terms of the pair score. Each
// bonus is independent; with the zero value no bonuses apply and the
// score is purely item + quantity.
type Config struct {
	// ColdChain awards a bonus when the query signals a cold-chain
	// requirement and the offered item's dimensions flag cold_chain.
	ColdChain bool

	// TrustOverlap awards a bonus when the offering node's vouching
	// set intersects the requester's trusted-node set.
	TrustOverlap bool

	// Locality awards a bonus when both sides report the same coarse
	// region.
	Locality bool
}

// DefaultConfig returns the default engine configuration: all bonus
// terms disabled.
func DefaultConfig() Config {
	return Config{}
}
