// =============================================================================
// Survey Workbook Extractor - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands are attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (surveyextract)
//   ├── extractCmd  (surveyextract extract)
//   ├── validateCmd (surveyextract validate)
//   └── versionCmd  (surveyextract version)
//
// CONFIGURATION:
//   The root command owns the global flags (--config, --verbose). Each
//   subcommand loads the configuration itself; a .env file in the working
//   directory is read into the environment first so SURVEYX_* overrides can
//   live there.
//
// =============================================================================

package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// cfgFile holds the path to the configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "surveyextract",
	Short: "Survey Workbook Extractor - Consolidate poll result workbooks into one master table",

	Long: `Survey Workbook Extractor is a CLI tool that scans a directory of
per-country poll result workbooks, extracts the two target tables from each
via a fixed positional template, and consolidates the rows into one master
table.

Key Features:
  - Fixed-offset extraction of summary and question rows
  - Sheet-specific resolution of demographic column positions
  - Per-file, per-sheet and per-row failure isolation: one bad input never
    aborts the run
  - Master table written once at the end, as a workbook and optionally as a
    CSV mirror

Example Usage:
  surveyextract extract                     # Process all workbooks in the input directory
  surveyextract extract --config ./my.yaml  # Use a custom configuration file
  surveyextract extract --dry-run           # Extract and report without writing output
  surveyextract validate                    # Check configuration and list candidate workbooks`,

	Run: func(cmd *cobra.Command, args []string) {
		// No subcommand: print the help message.
		cmd.Help()
	},

	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// A missing .env file is fine; SURVEYX_* variables may come from
		// the real environment instead.
		_ = godotenv.Load()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// init sets up the global flags.
func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the configuration file (default is config.yaml)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable debug output",
	)
}

// initLogging installs the default slog logger at the configured level.
// --verbose wins over the configuration file.
func initLogging(level string) {
	if verbose {
		level = "debug"
	}

	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})
	slog.SetDefault(slog.New(handler))
}
