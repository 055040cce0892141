package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arkamesh/arka/internal/route"
)

// RouteOptions holds flags for the route command.
type RouteOptions struct {
	*RootOptions
	NeedNode  string
	OfferNode string
}

// NewRouteCommand creates the route command.
func NewRouteCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RouteOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "route",
		Short: "Estimate a logistics route for a need/offer pair",
		Long: `Produce a coarse logistics estimate for a matched need/offer pair
from the currently registered logistics nodes.

The estimate is a plausibility signal, not a routing plan: travel time
is 30 minutes per known logistics node, and risk is 1/count. With no
logistics nodes the route is the unknown/maximum-risk sentinel.

Example:
  arka route --need-node shelter-7 --offer-node depot-2`,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoute(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.NeedNode, "need-node", "", "need-side node id (required)")
	_ = cmd.MarkFlagRequired("need-node")
	cmd.Flags().StringVar(&opts.OfferNode, "offer-node", "", "offer-side node id (required)")
	_ = cmd.MarkFlagRequired("offer-node")

	return cmd
}

func runRoute(opts *RouteOptions, cmd *cobra.Command) error {
	ctx := context.Background()

	st, err := openStore(opts.RootOptions)
	if err != nil {
		return err
	}
	defer st.Close()

	logistics, err := st.ListLogisticsNodes(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list logistics nodes", err)
	}

	r := route.Estimate(opts.NeedNode, opts.OfferNode, logistics)

	if opts.Format == "json" {
		return writeJSON(cmd.OutOrStdout(), r)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Route %s -> %s\n", opts.NeedNode, opts.OfferNode)
	if len(r.LogisticsNodes) == 0 {
		fmt.Fprintln(w, "  logistics: (none known)")
	} else {
		fmt.Fprintf(w, "  logistics: %s\n", strings.Join(r.LogisticsNodes, ", "))
	}
	fmt.Fprintf(w, "  travel:    %s\n", r.EstimatedTravelTime)
	fmt.Fprintf(w, "  risk:      %.2f\n", r.RiskScore)
	return nil
}
