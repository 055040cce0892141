package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/arkamesh/arka/internal/record"
)

// OfferAddOptions holds flags for `offer add`.
type OfferAddOptions struct {
	*RootOptions
	Node              string
	Items             []string
	Region            string
	Vouch             []string
	Routes            []string
	RiskFlags         []string
	AvailabilityHours int
}

// NewOfferCommand creates the `offer` command group.
func NewOfferCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "offer",
		Short: "Publish and inspect offer records",
	}
	cmd.AddCommand(newOfferAddCommand(rootOpts))
	cmd.AddCommand(newOfferListCommand(rootOpts))
	return cmd
}

func newOfferAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &OfferAddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Publish an offer record",
		Long: `Publish a node's list of offered items.

Item specs may carry capability flags after the quantity, e.g.
"insulin:5:cold_chain" offers 5 units with cold-chain handling.

Examples:
  arka offer add --node depot-2 --item insulin:5:cold_chain --availability-hours 48
  arka offer add --node depot-2 --item water:100 --item blankets:30 --region north`,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOfferAdd(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Node, "node", "", "publishing node id (required)")
	_ = cmd.MarkFlagRequired("node")
	cmd.Flags().StringArrayVar(&opts.Items, "item", nil, "offered item as name:quantity[:flags] (repeatable, required)")
	_ = cmd.MarkFlagRequired("item")
	cmd.Flags().StringVar(&opts.Region, "region", "", "coarse region")
	cmd.Flags().StringArrayVar(&opts.Vouch, "vouch", nil, "vouching node id (repeatable)")
	cmd.Flags().StringArrayVar(&opts.Routes, "route", nil, "accessible route (repeatable)")
	cmd.Flags().StringArrayVar(&opts.RiskFlags, "risk-flag", nil, "risk flag (repeatable)")
	cmd.Flags().IntVar(&opts.AvailabilityHours, "availability-hours", 0, "hours the offer stands (0 = unspecified)")

	return cmd
}

func runOfferAdd(opts *OfferAddOptions, cmd *cobra.Command) error {
	ctx := context.Background()

	items := make([]record.OfferItem, 0, len(opts.Items))
	for _, spec := range opts.Items {
		item, err := parseOfferItem(spec)
		if err != nil {
			return WrapExitError(ExitCommandError, "invalid --item", err)
		}
		items = append(items, item)
	}

	offer := record.OfferRecord{
		ID:     newRecordID(),
		NodeID: opts.Node,
		Items:  items,
		Constraints: record.Constraints{
			Routes:    opts.Routes,
			RiskFlags: opts.RiskFlags,
		},
		TrustHints:        opts.Vouch,
		AvailabilityHours: opts.AvailabilityHours,
		Location:          record.Location{Region: opts.Region},
		CreatedAt:         time.Now().UTC(),
	}

	if err := offer.Validate(); err != nil {
		return WrapExitError(ExitCommandError, "invalid offer record", err)
	}

	st, err := openStore(opts.RootOptions)
	if err != nil {
		return err
	}
	defer st.Close()

	clock, err := resumedClock(ctx, st)
	if err != nil {
		return err
	}
	offer.Seq = clock.Next()

	if err := st.WriteOffer(ctx, offer); err != nil {
		return WrapExitError(ExitCommandError, "failed to write offer", err)
	}

	if opts.Format == "json" {
		return writeJSON(cmd.OutOrStdout(), offer)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Recorded offer %s for node %s (%d items)\n", offer.ID, offer.NodeID, len(offer.Items))
	return nil
}

// OfferListOptions holds flags for `offer list`.
type OfferListOptions struct {
	*RootOptions
	Node string
}

func newOfferListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &OfferListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "list",
		Short:         "List offer records",
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOfferList(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Node, "node", "", "filter to one node")

	return cmd
}

func runOfferList(opts *OfferListOptions, cmd *cobra.Command) error {
	ctx := context.Background()

	st, err := openStore(opts.RootOptions)
	if err != nil {
		return err
	}
	defer st.Close()

	var offers []record.OfferRecord
	if opts.Node != "" {
		offers, err = st.OffersForNode(ctx, opts.Node)
	} else {
		offers, err = st.ListOffers(ctx)
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list offers", err)
	}

	if opts.Format == "json" {
		return writeJSON(cmd.OutOrStdout(), offers)
	}

	w := cmd.OutOrStdout()
	if len(offers) == 0 {
		fmt.Fprintln(w, "(no offers)")
		return nil
	}
	for _, offer := range offers {
		fmt.Fprintf(w, "[%d] %s node=%s items=%s\n",
			offer.Seq, offer.ID, offer.NodeID, formatOfferItems(offer.Items))
	}
	return nil
}

// formatOfferItems renders an item list as "insulin:5,water:100".
func formatOfferItems(items []record.OfferItem) string {
	out := ""
	for i, item := range items {
		if i > 0 {
			out += ","
		}
		out += fmt.Sprintf("%s:%d", item.Item, item.Quantity)
	}
	return out
}
