package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/winterop/winrtgen/cmd/winrtgen/commands"
	"github.com/winterop/winrtgen/logger"
)

var rootCmd = &cobra.Command{
	Use:   "winrtgen",
	Short: "winrtgen - WinRT metadata binding generator",
	Long: `winrtgen - selection-driven binding generator for WinRT metadata.

winrtgen resolves a declared selection of interop types against installed
metadata packages, computes the transitive dependency closure, and emits
the result as a single generated source file.

Available commands:
  generate - Resolve a declaration and write the generated bindings
  version  - Show winrtgen version information

Examples:
  winrtgen generate --manifest bindings.txt --output src/
  winrtgen generate --manifest bindings.txt --output src/ --watch
  winrtgen version`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		jsonLogs, _ := cmd.Flags().GetBool("json-logs")
		if err := logger.Initialize(jsonLogs, verbosity); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Cleanup()
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv)")
	rootCmd.PersistentFlags().Bool("json-logs", false, "Emit logs as JSON instead of console output")

	rootCmd.AddCommand(commands.GenerateCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
