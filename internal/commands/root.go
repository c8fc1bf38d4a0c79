package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/smartcart-dev/smartcart/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands
// registered.
func NewRootCommand() *cobra.Command {
	var dataDir string

	rootCmd := &cobra.Command{
		Use:     "smartcart",
		Short:   "Envelope budgeting from the command line",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", defaultDataDir(), "data directory")

	rootCmd.AddCommand(newInitCommand(&dataDir))
	rootCmd.AddCommand(newStatusCommand(&dataDir))
	rootCmd.AddCommand(newEnvelopeCommand(&dataDir))
	rootCmd.AddCommand(newItemCommand(&dataDir))
	rootCmd.AddCommand(newHistoryCommand(&dataDir))
	rootCmd.AddCommand(newExportCommand(&dataDir))
	rootCmd.AddCommand(newResetCommand(&dataDir))

	return rootCmd
}

func defaultDataDir() string {
	if dir := os.Getenv("SMARTCART_DATA"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".smartcart"
	}
	return filepath.Join(home, ".smartcart")
}
