package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arkamesh/arka/internal/record"
)

// NodeOptions holds flags for `node add`.
type NodeOptions struct {
	*RootOptions
	Node string
	Type string
}

// NewNodeCommand creates the `node` command group.
func NewNodeCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "node",
		Short: "Manage the node registry",
	}
	cmd.AddCommand(newNodeAddCommand(rootOpts))
	return cmd
}

func newNodeAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &NodeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a node",
		Long: `Register a node in the registry.

Logistics-type nodes are discovered by the route estimator; everything
else is a plain participant. Re-registering updates the type but keeps
the node's original discovery order.

Examples:
  arka node add --node courier-3 --type logistics
  arka node add --node shelter-7`,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNodeAdd(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Node, "node", "", "node id (required)")
	_ = cmd.MarkFlagRequired("node")
	cmd.Flags().StringVar(&opts.Type, "type", string(record.NodeParticipant), "node type (participant|logistics)")

	return cmd
}

func runNodeAdd(opts *NodeOptions, cmd *cobra.Command) error {
	ctx := context.Background()

	nodeType := record.NodeType(opts.Type)
	if nodeType != record.NodeParticipant && nodeType != record.NodeLogistics {
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid node type %q", opts.Type))
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

	node := record.Node{
		NodeID: opts.Node,
		Type:   nodeType,
		Seq:    clock.Next(),
	}

	if err := st.RegisterNode(ctx, node); err != nil {
		return WrapExitError(ExitCommandError, "failed to register node", err)
	}

	if opts.Format == "json" {
		return writeJSON(cmd.OutOrStdout(), node)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Registered node %s (%s)\n", node.NodeID, node.Type)
	return nil
}
