package harness

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/arkamesh/arka/internal/match"
	"github.com/arkamesh/arka/internal/record"
)

// Scenario defines a conformance test scenario for the matching
// pipeline: a query, a set of offers, optional logistics nodes for
// route enrichment, and the expected ranking.
type Scenario struct {
	// Name uniquely identifies this scenario; it is also the golden
	// file name.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Config toggles the bonus terms for this scenario.
	Config ConfigSpec `yaml:"config,omitempty"`

	// Query is the need side of the evaluation.
	Query QuerySpec `yaml:"query"`

	// Offers is the offer snapshot, in publication order.
	Offers []OfferSpec `yaml:"offers"`

	// Logistics lists logistics node ids. When present, every ranked
	// match is enriched with a route estimate.
	Logistics []string `yaml:"logistics,omitempty"`

	// Expect declares the expected outcome.
	Expect ExpectClause `yaml:"expect"`
}

// ConfigSpec mirrors match.Config in YAML form.
type ConfigSpec struct {
	ColdChainBonus    bool `yaml:"cold_chain_bonus,omitempty"`
	TrustOverlapBonus bool `yaml:"trust_overlap_bonus,omitempty"`
	LocalityBonus     bool `yaml:"locality_bonus,omitempty"`
}

// QuerySpec is the YAML form of a match query.
type QuerySpec struct {
	Items        []ItemSpec `yaml:"items"`
	ColdChain    bool       `yaml:"cold_chain,omitempty"`
	TrustedNodes []string   `yaml:"trusted_nodes,omitempty"`
	Region       string     `yaml:"region,omitempty"`
}

// ItemSpec is one needed item line.
type ItemSpec struct {
	Item     string `yaml:"item"`
	Quantity int    `yaml:"quantity"`
}

// OfferSpec is the YAML form of an offer record.
type OfferSpec struct {
	NodeID     string          `yaml:"node_id"`
	Region     string          `yaml:"region,omitempty"`
	TrustHints []string        `yaml:"trust_hints,omitempty"`
	Items      []OfferItemSpec `yaml:"items"`
}

// OfferItemSpec is one offered item line.
type OfferItemSpec struct {
	Item       string          `yaml:"item"`
	Quantity   int             `yaml:"quantity"`
	Dimensions map[string]bool `yaml:"dimensions,omitempty"`
}

// ExpectClause declares the expected ranking. Scores, when present,
// are compared after rounding to three decimals.
type ExpectClause struct {
	Ranking []string  `yaml:"ranking"`
	Scores  []float64 `yaml:"scores,omitempty"`
}

// LoadScenario reads and validates a single scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}

	if s.Name == "" {
		return nil, fmt.Errorf("scenario %s: name is required", path)
	}
	if len(s.Query.Items) == 0 {
		return nil, fmt.Errorf("scenario %s: query.items is required", path)
	}
	if len(s.Offers) == 0 {
		return nil, fmt.Errorf("scenario %s: offers is required", path)
	}

	return &s, nil
}

// LoadScenarios reads every *.yaml scenario under dir, sorted by file
// name for a deterministic test order.
func LoadScenarios(dir string) ([]*Scenario, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("glob scenarios: %w", err)
	}
	sort.Strings(matches)

	scenarios := make([]*Scenario, 0, len(matches))
	for _, path := range matches {
		s, err := LoadScenario(path)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// matchConfig converts the YAML config to the engine config.
func (s *Scenario) matchConfig() match.Config {
	return match.Config{
		ColdChain:    s.Config.ColdChainBonus,
		TrustOverlap: s.Config.TrustOverlapBonus,
		Locality:     s.Config.LocalityBonus,
	}
}

// query converts the YAML query to the engine query.
func (s *Scenario) query() match.Query {
	q := match.Query{
		ColdChain:    s.Query.ColdChain,
		TrustedNodes: s.Query.TrustedNodes,
		Region:       s.Query.Region,
	}
	for _, item := range s.Query.Items {
		q.Items = append(q.Items, record.NeedItem{Item: item.Item, Quantity: item.Quantity})
	}
	return q
}

// offers converts the YAML offers to offer records.
func (s *Scenario) offers() []record.OfferRecord {
	offers := make([]record.OfferRecord, 0, len(s.Offers))
	for _, spec := range s.Offers {
		offer := record.OfferRecord{
			NodeID:     spec.NodeID,
			TrustHints: spec.TrustHints,
			Location:   record.Location{Region: spec.Region},
		}
		for _, item := range spec.Items {
			offer.Items = append(offer.Items, record.OfferItem{
				Item:       item.Item,
				Quantity:   item.Quantity,
				Dimensions: item.Dimensions,
			})
		}
		offers = append(offers, offer)
	}
	return offers
}
