// =============================================================================
// Survey Workbook Extractor - Validate Command
// =============================================================================
//
// This file defines the 'validate' command, which checks the configuration
// and the input directory without extracting anything.
//
// COMMAND USAGE:
//   surveyextract validate
//
// OUTPUT:
//   The resolved configuration (after defaults and environment overrides)
//   and the list of workbooks that an extract run would process.
//
// =============================================================================

package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/surveyetl/surveyextract/internal/config"
	"github.com/surveyetl/surveyextract/pkg/utils"
)

// validateCmd represents the 'validate' command.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration and list candidate workbooks",
	Long: `The validate command loads the configuration, applies defaults and
environment overrides, and reports what an extract run would do: the
resolved settings and the workbooks that discovery would pick up. Nothing
is extracted or written.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate()
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

// runValidate loads and prints the resolved configuration, then lists the
// candidate workbooks.
func runValidate() error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	fmt.Println("=== Resolved Configuration ===")
	fmt.Printf("Input directory:  %s\n", cfg.InputDir)
	fmt.Printf("Output file:      %s\n", cfg.OutputFile)
	fmt.Printf("CSV mirror:       %t\n", cfg.CSVMirror)
	fmt.Printf("Log level:        %s\n", cfg.LogLevel)
	fmt.Printf("Target sheets:    %s\n", strings.Join(cfg.Sheets, ", "))
	fmt.Printf("Country pattern:  %s\n", cfg.CountryPattern)
	fmt.Printf("Age groups:       %s\n", strings.Join(cfg.AgeGroups, ", "))

	fm := utils.NewFileManager(cfg.InputDir)
	files, err := fm.DiscoverWorkbooks()
	if err != nil {
		return fmt.Errorf("failed to read input directory: %w", err)
	}

	fmt.Printf("\n=== Candidate Workbooks (%d) ===\n", len(files))
	for _, f := range files {
		fmt.Printf("  %s\n", filepath.Base(f))
	}
	if len(files) == 0 {
		fmt.Println("  (none found)")
	}

	return nil
}
