package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hail-kang/faex/core/driver"
)

// SuggestOptions holds the parsed flags for "suggest".
type SuggestOptions struct {
	Path   string
	Depth  int
	Format string
}

// SuggestRunFunc is the function signature for the suggest command handler.
type SuggestRunFunc func(ctx context.Context, opts SuggestOptions) error

// NewSuggestCmd creates the "suggest" subcommand.
func NewSuggestCmd(runFunc SuggestRunFunc) *cobra.Command {
	var opts SuggestOptions

	cmd := &cobra.Command{
		Use:   "suggest <path>",
		Short: "Generate exception declarations for endpoints with issues",
		Args:  cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			opts.Path = args[0]
			if err := validatePathArg(opts.Path); err != nil {
				return err
			}
			if opts.Format != "text" && opts.Format != "diff" {
				return fmt.Errorf("--format must be text or diff (got %q)", opts.Format)
			}
			return validateDepth(opts.Depth)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFunc(cmd.Context(), opts)
		},
	}

	cmd.Flags().IntVar(&opts.Depth, "depth", driver.DefaultMaxDepth, "Maximum call depth for transitive analysis")
	cmd.Flags().StringVar(&opts.Format, "format", "text", "Output format: text or diff")

	return cmd
}
