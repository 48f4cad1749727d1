// =============================================================================
// Survey Workbook Extractor - Main Entry Point
// =============================================================================
//
// This is the main entry point for the Survey Workbook Extractor CLI. It
// initializes the Cobra CLI framework and delegates command execution to the
// cmd package.
//
// USAGE:
//   surveyextract extract    - Extract all workbooks in the input directory
//   surveyextract validate   - Check the configuration without extracting
//   surveyextract version    - Display the application version
//
// ARCHITECTURE:
//   - cmd/       : CLI command definitions (Cobra)
//   - internal/  : Core extraction logic (not for external import)
//   - pkg/       : Shared utilities
//
// =============================================================================

package main

import (
	"github.com/surveyetl/surveyextract/cmd"
)

// main simply calls the Execute function from the cmd package, which
// initializes and runs the Cobra CLI.
func main() {
	cmd.Execute()
}
