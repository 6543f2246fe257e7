package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hail-kang/faex/core/driver"
)

// CheckOptions holds the parsed flags for "check".
type CheckOptions struct {
	Path       string
	Depth      int
	Ignore     []string
	Format     string
	Strict     bool
	ConfigPath string
	Verbose    bool
	Quiet      bool

	// *Set report whether the corresponding flag was passed explicitly,
	// so config-file values only fill in unset flags.
	DepthSet  bool
	FormatSet bool
	StrictSet bool
}

// CheckRunFunc is the function signature for the check command handler.
// It is injected by the wiring layer (cmd/faex/main.go).
type CheckRunFunc func(ctx context.Context, opts CheckOptions) error

// NewCheckCmd creates the "check" subcommand.
func NewCheckCmd(runFunc CheckRunFunc) *cobra.Command {
	var opts CheckOptions

	cmd := &cobra.Command{
		Use:   "check <path>",
		Short: "Check for undeclared exceptions in FastAPI endpoints",
		Long:  "Check analyzes a Python file or directory and reports exceptions that endpoints raise but do not declare.",
		Args:  cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			opts.Path = args[0]
			if err := validatePathArg(opts.Path); err != nil {
				return err
			}
			if opts.ConfigPath != "" {
				if err := validatePathArg(opts.ConfigPath); err != nil {
					return fmt.Errorf("--config: %w", err)
				}
			}
			if err := validateFormat(opts.Format); err != nil {
				return err
			}
			return validateDepth(opts.Depth)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.DepthSet = cmd.Flags().Changed("depth")
			opts.FormatSet = cmd.Flags().Changed("format")
			opts.StrictSet = cmd.Flags().Changed("strict")
			return runFunc(cmd.Context(), opts)
		},
	}

	cmd.Flags().IntVar(&opts.Depth, "depth", driver.DefaultMaxDepth, "Maximum call depth for transitive analysis")
	cmd.Flags().StringArrayVar(&opts.Ignore, "ignore", nil, "Exception classes to ignore (repeatable)")
	cmd.Flags().StringVar(&opts.Format, "format", "text", "Output format: text, json, or github")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "Also fail on unused exception declarations")
	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "Path to a .faex.yaml configuration file")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show detailed analysis")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Only report via the exit code")

	return cmd
}

func validateFormat(format string) error {
	switch format {
	case "text", "json", "github":
		return nil
	}
	return fmt.Errorf("--format must be text, json, or github (got %q)", format)
}

func validateDepth(depth int) error {
	if depth < 0 {
		return fmt.Errorf("--depth must be >= 0 (got %d)", depth)
	}
	return nil
}
