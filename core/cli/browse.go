package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/hail-kang/faex/core/driver"
)

// BrowseOptions holds the parsed flags for "browse".
type BrowseOptions struct {
	Path  string
	Depth int
}

// BrowseRunFunc is the function signature for the browse command handler.
type BrowseRunFunc func(ctx context.Context, opts BrowseOptions) error

// NewBrowseCmd creates the "browse" subcommand.
func NewBrowseCmd(runFunc BrowseRunFunc) *cobra.Command {
	var opts BrowseOptions

	cmd := &cobra.Command{
		Use:   "browse <path>",
		Short: "Browse endpoints interactively",
		Long:  "Browse opens an interactive terminal view of the analyzed endpoints with their declared and detected exceptions.",
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
