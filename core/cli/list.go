package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/hail-kang/faex/core/driver"
)

// ListOptions holds the parsed flags for "list".
type ListOptions struct {
	Path  string
	Depth int
}

// ListRunFunc is the function signature for the list command handler.
type ListRunFunc func(ctx context.Context, opts ListOptions) error

// NewListCmd creates the "list" subcommand.
func NewListCmd(runFunc ListRunFunc) *cobra.Command {
	var opts ListOptions

	cmd := &cobra.Command{
		Use:   "list <path>",
		Short: "List declared and detected exceptions per endpoint",
		Args:  cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			opts.Path = args[0]
			if err := validatePathArg(opts.Path); err != nil {
				return err
			}
			return validateDepth(opts.Depth)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFunc(cmd.Context(), opts)
		},
	}

	cmd.Flags().IntVar(&opts.Depth, "depth", driver.DefaultMaxDepth, "Maximum call depth for transitive analysis")

	return cmd
}
