package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"

	"github.com/hail-kang/faex/core/cli"
	"github.com/hail-kang/faex/core/config"
	"github.com/hail-kang/faex/core/driver"
	pythondriver "github.com/hail-kang/faex/drivers/python"
	"github.com/hail-kang/faex/pkg/render"
	"github.com/hail-kang/faex/pkg/tui"
)

const version = "0.1.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pyDriver := pythondriver.NewDriver()

	runCheck := func(ctx context.Context, opts cli.CheckOptions) error {
		cfg, err := loadConfig(opts.ConfigPath, opts.Path)
		if err != nil {
			return err
		}

		depth := opts.Depth
		if !opts.DepthSet {
			depth = cfg.MaxDepth(depth)
		}
		format := opts.Format
		if !opts.FormatSet {
			format = cfg.OutputFormat(format)
		}
		strict := opts.Strict
		if !opts.StrictSet {
			strict = cfg.StrictMode(strict)
		}

		result, err := pyDriver.Analyze(ctx, opts.Path, driver.Options{
			MaxDepth: depth,
			Ignore:   cfg.IgnoreList(opts.Ignore),
		})
		if err != nil {
			return err
		}

		if !opts.Quiet {
			for _, msg := range result.Errors {
				fmt.Fprintf(os.Stderr, "warning: %s\n", msg)
			}
		}

		var formatter render.Formatter
		if format == "text" && isatty.IsTerminal(os.Stdout.Fd()) {
			formatter = render.ColorFormatter{}
		} else {
			formatter, err = render.New(format)
			if err != nil {
				return err
			}
		}

		if out := formatter.Format(result, opts.Verbose); out != "" && !opts.Quiet {
			fmt.Println(out)
		}

		if result.HasIssues() || (strict && result.HasUnused()) {
			os.Exit(1)
		}
		return nil
	}

	runList := func(ctx context.Context, opts cli.ListOptions) error {
		result, err := pyDriver.Analyze(ctx, opts.Path, driver.Options{MaxDepth: opts.Depth})
		if err != nil {
			return err
		}
		printWarnings(result.Errors)
		fmt.Println(render.List(result))
		return nil
	}

	runSuggest := func(ctx context.Context, opts cli.SuggestOptions) error {
		result, err := pyDriver.Analyze(ctx, opts.Path, driver.Options{MaxDepth: opts.Depth})
		if err != nil {
			return err
		}
		printWarnings(result.Errors)
		fmt.Println(render.Suggestions(result, opts.Format == "diff"))
		return nil
	}

	runBrowse := func(ctx context.Context, opts cli.BrowseOptions) error {
		result, err := pyDriver.Analyze(ctx, opts.Path, driver.Options{MaxDepth: opts.Depth})
		if err != nil {
			return err
		}
		printWarnings(result.Errors)
		return tui.Browse(result)
	}

	root := cli.NewRootCmd(version)
	root.AddCommand(cli.NewCheckCmd(runCheck))
	root.AddCommand(cli.NewListCmd(runList))
	root.AddCommand(cli.NewSuggestCmd(runSuggest))
	root.AddCommand(cli.NewBrowseCmd(runBrowse))

	if err := root.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// loadConfig loads an explicit --config file, or falls back to the
// .faex.yaml next to the analyzed path. A nil config is valid: all
// accessors fall back to flag values.
func loadConfig(configPath, target string) (*config.Config, error) {
	if configPath != "" {
		return config.Load(configPath)
	}
	return config.LoadDefault(target)
}

func printWarnings(errors []string) {
	for _, msg := range errors {
		fmt.Fprintf(os.Stderr, "warning: %s\n", msg)
	}
}
