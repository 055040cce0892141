package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/arkamesh/arka/internal/config"
	"github.com/arkamesh/arka/internal/match"
	"github.com/arkamesh/arka/internal/record"
	"github.com/arkamesh/arka/internal/route"
)

// MatchOptions holds flags for the match command.
type MatchOptions struct {
	*RootOptions
	Items     []string
	NeedNode  string
	ColdChain bool
	Vouch     []string
	Region    string
	NoRoutes  bool

	// Bonus toggles; nil means "use the configured value".
	coldChainBonus    bool
	trustOverlapBonus bool
	localityBonus     bool
}

// NewMatchCommand creates the match command.
func NewMatchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &MatchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Rank offers against a need",
		Long: `Evaluate every stored offer against a need and print ranked matches.

The need is either ad hoc (--item, repeatable) or a node's latest
stored need record (--need-node). Each matched offer is enriched with
a simulated route estimate unless --no-routes is given.

Scoring: each matched item pair is worth 0.4 for the name match plus
0.3 scaled by coverage, plus any enabled bonuses; an offer's score is
the sum over its matched pairs, so multi-item coverage outranks
single-item precision.

Examples:
  arka match --item insulin:2
  arka match --need-node shelter-7
  arka match --item insulin:2 --cold-chain --cold-chain-bonus`,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMatch(opts, cmd)
		},
	}

	cmd.Flags().StringArrayVar(&opts.Items, "item", nil, "needed item as name:quantity (repeatable)")
	cmd.Flags().StringVar(&opts.NeedNode, "need-node", "", "match the latest stored need of this node")
	cmd.Flags().BoolVar(&opts.ColdChain, "cold-chain", false, "ad-hoc query requires cold-chain handling")
	cmd.Flags().StringArrayVar(&opts.Vouch, "vouch", nil, "trusted node id for the ad-hoc query (repeatable)")
	cmd.Flags().StringVar(&opts.Region, "region", "", "coarse region for the ad-hoc query")
	cmd.Flags().BoolVar(&opts.NoRoutes, "no-routes", false, "skip route enrichment")
	cmd.Flags().BoolVar(&opts.coldChainBonus, "cold-chain-bonus", false, "enable the cold-chain bonus term")
	cmd.Flags().BoolVar(&opts.trustOverlapBonus, "trust-overlap-bonus", false, "enable the trust-overlap bonus term")
	cmd.Flags().BoolVar(&opts.localityBonus, "locality-bonus", false, "enable the locality bonus term")

	return cmd
}

func runMatch(opts *MatchOptions, cmd *cobra.Command) error {
	ctx := context.Background()

	if len(opts.Items) == 0 && opts.NeedNode == "" {
		return NewExitError(ExitCommandError, "either --item or --need-node is required")
	}
	if len(opts.Items) > 0 && opts.NeedNode != "" {
		return NewExitError(ExitCommandError, "--item and --need-node are mutually exclusive")
	}

	st, err := openStore(opts.RootOptions)
	if err != nil {
		return err
	}
	defer st.Close()

	snapshot, err := st.ReadSnapshot(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read snapshot", err)
	}

	cfg := matchConfig(opts, cmd)

	var results []record.MatchResult
	if opts.NeedNode != "" {
		need, err := st.LatestNeedForNode(ctx, opts.NeedNode)
		if errors.Is(err, sql.ErrNoRows) {
			return NewExitError(ExitCommandError, fmt.Sprintf("node %q has no stored need", opts.NeedNode))
		}
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to load need", err)
		}
		results, err = match.ComputeForNeed(need, snapshot.Offers, cfg)
		if err != nil {
			return WrapExitError(ExitCommandError, "match failed", err)
		}
	} else {
		q := match.Query{
			ColdChain:    opts.ColdChain,
			TrustedNodes: opts.Vouch,
			Region:       opts.Region,
		}
		for _, spec := range opts.Items {
			item, err := parseNeedItem(spec)
			if err != nil {
				return WrapExitError(ExitCommandError, "invalid --item", err)
			}
			q.Items = append(q.Items, item)
		}
		results, err = match.Compute(q, snapshot.Offers, cfg)
		if err != nil {
			return WrapExitError(ExitCommandError, "match failed", err)
		}
	}

	// Enrich with route estimates and stamp the audit timestamp. Both
	// happen here at the boundary: the engine itself never touches the
	// wall clock.
	matchedAt := time.Now().UTC()
	for i := range results {
		if !opts.NoRoutes {
			r := route.Estimate(results[i].NeedNode, results[i].OfferNode, snapshot.Logistics)
			results[i].Route = &r
		}
		results[i].MatchedAt = matchedAt
	}

	ranked := match.Rank(results)

	if opts.Format == "json" {
		return writeJSON(cmd.OutOrStdout(), ranked)
	}
	return printMatches(cmd, ranked)
}

// matchConfig resolves bonus toggles: an explicitly set flag wins over
// the configured default.
func matchConfig(opts *MatchOptions, cmd *cobra.Command) match.Config {
	cfg := config.MatchConfig()
	if cmd.Flags().Changed("cold-chain-bonus") {
		cfg.ColdChain = opts.coldChainBonus
	}
	if cmd.Flags().Changed("trust-overlap-bonus") {
		cfg.TrustOverlap = opts.trustOverlapBonus
	}
	if cmd.Flags().Changed("locality-bonus") {
		cfg.Locality = opts.localityBonus
	}
	return cfg
}

// printMatches renders ranked matches as text.
func printMatches(cmd *cobra.Command, ranked []record.MatchResult) error {
	w := cmd.OutOrStdout()

	if len(ranked) == 0 {
		fmt.Fprintln(w, "(no matches)")
		return nil
	}

	for i, res := range ranked {
		fmt.Fprintf(w, "#%d %s score=%.2f\n", i+1, res.OfferNode, res.Score)
		for _, mi := range res.MatchedItems {
			fmt.Fprintf(w, "   %s needed=%d offered=%d coverage=%.2f\n",
				mi.Item, mi.QuantityNeeded, mi.QuantityOffered, mi.Coverage)
		}
		if res.Route != nil {
			fmt.Fprintf(w, "   route: %d logistics nodes, travel=%s risk=%.2f\n",
				len(res.Route.LogisticsNodes), res.Route.EstimatedTravelTime, res.Route.RiskScore)
		}
	}
	return nil
}
