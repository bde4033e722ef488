package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/winterop/winrtgen/config"
	"github.com/winterop/winrtgen/errors"
	"github.com/winterop/winrtgen/generate"
	"github.com/winterop/winrtgen/logger"
	"github.com/winterop/winrtgen/metadata"
	"github.com/winterop/winrtgen/selector"
)

var (
	generateManifest   string
	generateConfig     string
	generateOutput     string
	generateOutFile    string
	generateFormatter  string
	generateMode       string
	generateFoundation bool
	generateWatch      bool
)

// GenerateCmd represents the generate command
var GenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Resolve a declaration and write the generated bindings",
	Long: `Resolve the type selection declared in a manifest file against the
installed metadata packages and write the generated source file.

The manifest holds one declaration:

  dependencies
      os
      nuget: Contoso.Lighting
  types
      windows.devices.lights.*
      contoso.lighting.{Lamp, LampArray}

Settings come from winrtgen.toml, WINRTGEN_* environment variables and
flags, in ascending precedence.

Examples:
  winrtgen generate --manifest bindings.txt --output src/
  winrtgen generate --manifest bindings.txt --output src/ --foundation
  winrtgen generate --manifest bindings.txt --output src/ --watch`,
	RunE: runGenerate,
}

func init() {
	GenerateCmd.Flags().StringVarP(&generateManifest, "manifest", "m", "", "Declaration manifest file (required)")
	GenerateCmd.Flags().StringVar(&generateConfig, "config", "", "Config file (default: ./winrtgen.toml if present)")
	GenerateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Output directory for the generated file")
	GenerateCmd.Flags().StringVar(&generateOutFile, "out-file", "", "Generated file name (default: winrt.rs)")
	GenerateCmd.Flags().StringVar(&generateFormatter, "formatter", "", "Formatter command line (default: rustfmt; empty string disables)")
	GenerateCmd.Flags().StringVar(&generateMode, "mode", "", "Formatter mode: pipe or in-place")
	GenerateCmd.Flags().BoolVar(&generateFoundation, "foundation", false, "Include the foundation namespaces instead of pruning them")
	GenerateCmd.Flags().BoolVarP(&generateWatch, "watch", "w", false, "Regenerate whenever a consumed metadata file changes")
	GenerateCmd.MarkFlagRequired("manifest")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	declaration, err := os.ReadFile(generateManifest)
	if err != nil {
		return errors.Wrapf(err, "failed to read manifest %s", generateManifest)
	}

	artifact, err := runOnce(cmd, settings, string(declaration))
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Generated %s (%d types, %d namespaces)\n",
		artifact.OutputPath, artifact.TypeCount, artifact.Namespaces)

	if !generateWatch {
		return nil
	}
	return watch(cmd, settings, artifact)
}

// loadSettings layers flag overrides on top of the file/env settings.
func loadSettings(cmd *cobra.Command) (*config.Settings, error) {
	settings, err := config.Load(generateConfig)
	if err != nil {
		return nil, err
	}
	if generateOutput != "" {
		settings.OutputDir = generateOutput
	}
	if generateOutFile != "" {
		settings.OutputFile = generateOutFile
	}
	if cmd.Flags().Changed("formatter") {
		settings.Formatter = generateFormatter
	}
	if generateMode != "" {
		settings.FormatterMode = generateMode
	}
	if generateFoundation {
		settings.IncludeFoundation = true
	}
	return settings, nil
}

func runOnce(cmd *cobra.Command, settings *config.Settings, declaration string) (*generate.Artifact, error) {
	artifact, err := generate.Run(settings, declaration, metadata.OpenIndex)
	if err != nil {
		var parseErr *selector.ParseError
		if errors.As(err, &parseErr) {
			// Full span-anchored diagnostic on stderr, short error for cobra
			fmt.Fprintln(cmd.ErrOrStderr(), parseErr.FormatError(selector.ErrorContextTerminal))
			cmd.SilenceUsage = true
		}
		return nil, err
	}
	return artifact, nil
}

// watch regenerates on metadata changes until interrupted.
func watch(cmd *cobra.Command, settings *config.Settings, artifact *generate.Artifact) error {
	paths := append([]string{generateManifest}, artifact.WatchPaths...)
	watcher, err := config.NewWatcher(paths)
	if err != nil {
		return errors.Wrap(err, "failed to watch metadata files")
	}
	defer watcher.Stop()

	watcher.OnChange(func() {
		declaration, readErr := os.ReadFile(generateManifest)
		if readErr != nil {
			logger.Errorw("Failed to re-read manifest", "path", generateManifest, "error", readErr)
			return
		}
		if _, runErr := runOnce(cmd, settings, string(declaration)); runErr != nil {
			// Keep watching; the previous artifact stays in place
			logger.Errorw("Regeneration failed", "error", runErr)
			return
		}
		logger.Infow("Regenerated", "output", artifact.OutputPath)
	})
	watcher.Start()

	fmt.Fprintf(cmd.OutOrStdout(), "Watching %d files for changes (Ctrl+C to stop)\n", len(paths))

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	return nil
}
