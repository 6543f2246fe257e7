package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the top-level faex command.
func NewRootCmd(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "faex",
		Short: "FastAPI exception validator",
		Long:  "Faex validates that exceptions raised by FastAPI endpoints are declared in their route metadata.",
	}

	cmd.Version = version

	return cmd
}

// validatePathArg checks the positional path argument before a command runs.
// A nonexistent path is caller misuse, surfaced here so the analysis core
// never sees it.
func validatePathArg(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("path does not exist: %s", path)
		}
		return fmt.Errorf("cannot access path: %w", err)
	}
	return nil
}
