package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/arkamesh/arka/internal/record"
)

// NeedAddOptions holds flags for `need add`.
type NeedAddOptions struct {
	*RootOptions
	Node      string
	Items     []string
	Urgency   float64
	Vitality  float64
	Region    string
	ColdChain bool
	Vouch     []string
	Routes    []string
	RiskFlags []string
}

// NewNeedCommand creates the `need` command group.
func NewNeedCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "need",
		Short: "Publish and inspect need records",
	}
	cmd.AddCommand(newNeedAddCommand(rootOpts))
	cmd.AddCommand(newNeedListCommand(rootOpts))
	return cmd
}

func newNeedAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &NeedAddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Publish a need record",
		Long: `Publish a node's list of needed items.

Records are immutable: submitting again supersedes the previous need
rather than editing it.

Examples:
  arka need add --node shelter-7 --item insulin:2:vials --urgency 0.9
  arka need add --node camp-a --item water:40:l --item blankets:12 --region north --cold-chain`,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNeedAdd(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Node, "node", "", "publishing node id (required)")
	_ = cmd.MarkFlagRequired("node")
	cmd.Flags().StringArrayVar(&opts.Items, "item", nil, "needed item as name:quantity[:unit] (repeatable, required)")
	_ = cmd.MarkFlagRequired("item")
	cmd.Flags().Float64Var(&opts.Urgency, "urgency", 0, "urgency in [0,1]")
	cmd.Flags().Float64Var(&opts.Vitality, "vitality", 0, "vitality in [0,1]")
	cmd.Flags().StringVar(&opts.Region, "region", "", "coarse region")
	cmd.Flags().BoolVar(&opts.ColdChain, "cold-chain", false, "need requires cold-chain handling")
	cmd.Flags().StringArrayVar(&opts.Vouch, "vouch", nil, "trusted node id (repeatable)")
	cmd.Flags().StringArrayVar(&opts.Routes, "route", nil, "accessible route (repeatable)")
	cmd.Flags().StringArrayVar(&opts.RiskFlags, "risk-flag", nil, "risk flag (repeatable)")

	return cmd
}

func runNeedAdd(opts *NeedAddOptions, cmd *cobra.Command) error {
	ctx := context.Background()

	items := make([]record.NeedItem, 0, len(opts.Items))
	for _, spec := range opts.Items {
		item, err := parseNeedItem(spec)
		if err != nil {
			return WrapExitError(ExitCommandError, "invalid --item", err)
		}
		items = append(items, item)
	}

	need := record.NeedRecord{
		ID:       newRecordID(),
		NodeID:   opts.Node,
		Items:    items,
		Urgency:  opts.Urgency,
		Vitality: opts.Vitality,
		Location: record.Location{Region: opts.Region},
		Constraints: record.Constraints{
			Routes:    opts.Routes,
			RiskFlags: opts.RiskFlags,
		},
		TrustHints: opts.Vouch,
		ColdChain:  opts.ColdChain,
		CreatedAt:  time.Now().UTC(),
	}

	if err := need.Validate(); err != nil {
		return WrapExitError(ExitCommandError, "invalid need record", err)
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
	need.Seq = clock.Next()

	if err := st.WriteNeed(ctx, need); err != nil {
		return WrapExitError(ExitCommandError, "failed to write need", err)
	}

	if opts.Format == "json" {
		return writeJSON(cmd.OutOrStdout(), need)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Recorded need %s for node %s (%d items)\n", need.ID, need.NodeID, len(need.Items))
	return nil
}

// NeedListOptions holds flags for `need list`.
type NeedListOptions struct {
	*RootOptions
	Node string
}

func newNeedListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &NeedListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "list",
		Short:         "List need records",
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNeedList(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Node, "node", "", "filter to one node")

	return cmd
}

func runNeedList(opts *NeedListOptions, cmd *cobra.Command) error {
	ctx := context.Background()

	st, err := openStore(opts.RootOptions)
	if err != nil {
		return err
	}
	defer st.Close()

	var needs []record.NeedRecord
	if opts.Node != "" {
		needs, err = st.NeedsForNode(ctx, opts.Node)
	} else {
		needs, err = st.ListNeeds(ctx)
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list needs", err)
	}

	if opts.Format == "json" {
		return writeJSON(cmd.OutOrStdout(), needs)
	}

	w := cmd.OutOrStdout()
	if len(needs) == 0 {
		fmt.Fprintln(w, "(no needs)")
		return nil
	}
	for _, need := range needs {
		fmt.Fprintf(w, "[%d] %s node=%s urgency=%.2f items=%s\n",
			need.Seq, need.ID, need.NodeID, need.Urgency, formatNeedItems(need.Items))
	}
	return nil
}

// formatNeedItems renders an item list as "insulin:2,water:40".
func formatNeedItems(items []record.NeedItem) string {
	out := ""
	for i, item := range items {
		if i > 0 {
			out += ","
		}
		out += fmt.Sprintf("%s:%d", item.Item, item.Quantity)
	}
	return out
}
