package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arkamesh/arka/internal/ledger"
	"github.com/arkamesh/arka/internal/record"
)

// NewTrustCommand creates the `trust` command group.
func NewTrustCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trust",
		Short: "Append to and query the trust ledger",
	}
	cmd.AddCommand(newTrustAddCommand(rootOpts))
	cmd.AddCommand(newTrustScoreCommand(rootOpts))
	cmd.AddCommand(newTrustHistoryCommand(rootOpts))
	cmd.AddCommand(newTrustVerifyCommand(rootOpts))
	return cmd
}

// TrustAddOptions holds flags for `trust add`.
type TrustAddOptions struct {
	*RootOptions
	Node   string
	Kind   string
	Delta  float64
	Reason string
}

func newTrustAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TrustAddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Append a trust event",
		Long: `Append one event to a node's trust log.

If --delta is omitted the canonical delta for the kind is used
(relief_action +0.5, consent_revoked -1.0, warn -0.25, commend +0.25,
repair +0.75). The ledger stores whatever delta it is given - there is
no cap on negative totals, and corrections are new events rather than
edits.

Examples:
  arka trust add --node depot-2 --kind relief_action --reason "delivered insulin"
  arka trust add --node depot-2 --kind warn --delta -0.5`,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrustAdd(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Node, "node", "", "node id (required)")
	_ = cmd.MarkFlagRequired("node")
	cmd.Flags().StringVar(&opts.Kind, "kind", "", "event kind (required)")
	_ = cmd.MarkFlagRequired("kind")
	cmd.Flags().Float64Var(&opts.Delta, "delta", 0, "signed score delta (default: canonical for the kind)")
	cmd.Flags().StringVar(&opts.Reason, "reason", "", "human-readable reason")

	return cmd
}

func runTrustAdd(opts *TrustAddOptions, cmd *cobra.Command) error {
	ctx := context.Background()

	kind := record.EventKind(opts.Kind)
	delta := opts.Delta
	if !cmd.Flags().Changed("delta") {
		canonical, ok := record.CanonicalDelta(kind)
		if !ok {
			return NewExitError(ExitCommandError,
				fmt.Sprintf("no canonical delta for kind %q: pass --delta explicitly", opts.Kind))
		}
		delta = canonical
	}

	st, err := openStore(opts.RootOptions)
	if err != nil {
		return err
	}
	defer st.Close()

	led, err := openLedger(ctx, st)
	if err != nil {
		return err
	}

	ev := record.TrustEvent{
		NodeID: opts.Node,
		Kind:   kind,
		Delta:  delta,
		Reason: opts.Reason,
	}
	if err := led.Append(ctx, ev); err != nil {
		if record.IsInputError(err) {
			return WrapExitError(ExitCommandError, "invalid trust event", err)
		}
		return WrapExitError(ExitCommandError, "failed to append trust event", err)
	}

	score, err := led.Score(ctx, opts.Node)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to compute score", err)
	}

	if opts.Format == "json" {
		return writeJSON(cmd.OutOrStdout(), map[string]any{
			"node_id": opts.Node,
			"kind":    kind,
			"delta":   delta,
			"score":   score,
		})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Appended %s (%+.3f) for node %s; score is now %.3f\n",
		kind, delta, opts.Node, score)
	return nil
}

// TrustNodeOptions holds flags for `trust score` and `trust history`.
type TrustNodeOptions struct {
	*RootOptions
	Node string
}

func newTrustScoreCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TrustNodeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Compute a node's trust score",
		Long: `Fold a node's full trust history into its current score.

The score is the sum of all event deltas rounded to three decimals,
recomputed from the log on every call. An unknown node scores 0.0 -
absence of history means neutral trust, not an error.`,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrustScore(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Node, "node", "", "node id (required)")
	_ = cmd.MarkFlagRequired("node")

	return cmd
}

func runTrustScore(opts *TrustNodeOptions, cmd *cobra.Command) error {
	ctx := context.Background()

	st, err := openStore(opts.RootOptions)
	if err != nil {
		return err
	}
	defer st.Close()

	led, err := openLedger(ctx, st)
	if err != nil {
		return err
	}

	score, err := led.Score(ctx, opts.Node)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to compute score", err)
	}

	if opts.Format == "json" {
		return writeJSON(cmd.OutOrStdout(), map[string]any{
			"node_id": opts.Node,
			"score":   score,
		})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%.3f\n", score)
	return nil
}

func newTrustHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TrustNodeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "history",
		Short:         "Show a node's trust events in append order",
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrustHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Node, "node", "", "node id (required)")
	_ = cmd.MarkFlagRequired("node")

	return cmd
}

func runTrustHistory(opts *TrustNodeOptions, cmd *cobra.Command) error {
	ctx := context.Background()

	st, err := openStore(opts.RootOptions)
	if err != nil {
		return err
	}
	defer st.Close()

	led, err := openLedger(ctx, st)
	if err != nil {
		return err
	}

	events, err := led.History(ctx, opts.Node)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read history", err)
	}

	if opts.Format == "json" {
		return writeJSON(cmd.OutOrStdout(), events)
	}

	w := cmd.OutOrStdout()
	if len(events) == 0 {
		fmt.Fprintln(w, "(no events)")
		return nil
	}
	for _, ev := range events {
		fmt.Fprintf(w, "[%d] %s %+.3f %s\n", ev.Seq, ev.Kind, ev.Delta, ev.Reason)
	}
	return nil
}

// TrustVerifyOptions holds flags for `trust verify`.
type TrustVerifyOptions struct {
	*RootOptions
}

// verifyReport is the per-node outcome of a replay verification.
type verifyReport struct {
	NodeID string  `json:"node_id"`
	Events int     `json:"events"`
	Score  float64 `json:"score"`
	Error  string  `json:"error,omitempty"`
}

func newTrustVerifyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TrustVerifyOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Replay every node's trust history and verify consistency",
		Long: `Replay each node's trust history and verify prefix consistency:
folding every prefix of the log must agree with incremental
accumulation, and seq numbers must be strictly increasing.

Exits 1 if any node's history fails verification.`,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrustVerify(opts, cmd)
		},
	}

	return cmd
}

func runTrustVerify(opts *TrustVerifyOptions, cmd *cobra.Command) error {
	ctx := context.Background()

	st, err := openStore(opts.RootOptions)
	if err != nil {
		return err
	}
	defer st.Close()

	nodes, err := st.TrustNodes(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list trust nodes", err)
	}

	reports := make([]verifyReport, 0, len(nodes))
	failures := 0
	for _, nodeID := range nodes {
		events, err := st.TrustHistory(ctx, nodeID)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to read history", err)
		}

		report := verifyReport{
			NodeID: nodeID,
			Events: len(events),
			Score:  ledger.Fold(events),
		}
		if err := ledger.Verify(events); err != nil {
			report.Error = err.Error()
			failures++
		}
		reports = append(reports, report)
	}

	if opts.Format == "json" {
		if err := writeJSON(cmd.OutOrStdout(), map[string]any{
			"nodes":    reports,
			"failures": failures,
		}); err != nil {
			return err
		}
	} else {
		w := cmd.OutOrStdout()
		for _, r := range reports {
			if r.Error != "" {
				fmt.Fprintf(w, "FAIL %s (%d events): %s\n", r.NodeID, r.Events, r.Error)
			} else {
				fmt.Fprintf(w, "ok   %s (%d events) score=%.3f\n", r.NodeID, r.Events, r.Score)
			}
		}
		fmt.Fprintf(w, "%d node(s) verified, %d failure(s)\n", len(reports), failures)
	}

	if failures > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d node(s) failed replay verification", failures))
	}
	return nil
}
