// =============================================================================
// Survey Workbook Extractor - Extract Command
// =============================================================================
//
// This file defines the 'extract' command, the main command of the tool. It
// orchestrates the whole batch pass.
//
// COMMAND USAGE:
//   surveyextract extract [flags]
//
// FLAGS:
//   --dry-run : Run the full extraction and print the summary without
//               writing the master table
//   --file    : Process only the given workbook instead of scanning the
//               input directory
//
// PROCESSING PIPELINE:
//   1. Load configuration
//   2. Discover input workbooks
//   3. For each workbook, sequentially:
//      a. Resolve the country from the filename
//      b. Filter sheets to the allow-list
//      c. Extract summary and question rows from each target sheet
//   4. Validate the accumulated records against the master schema
//   5. Write the master workbook (and CSV mirror, if enabled) in one pass
//   6. Write the run summary log
//
// =============================================================================

package cmd

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/surveyetl/surveyextract/internal/config"
	"github.com/surveyetl/surveyextract/internal/extractor"
	"github.com/surveyetl/surveyextract/internal/masterfile"
	"github.com/surveyetl/surveyextract/internal/types"
	"github.com/surveyetl/surveyextract/internal/validation"
	"github.com/surveyetl/surveyextract/pkg/utils"
)

// dryRun runs the extraction without writing the output files.
var dryRun bool

// singleFile restricts the run to one workbook path.
var singleFile string

// extractCmd represents the 'extract' command.
var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract survey tables from input workbooks into the master table",
	Long: `The extract command scans the input directory for workbooks, applies the
fixed-offset extraction template to each target sheet, and writes the
consolidated master table.

Processing is sequential: each workbook is read to completion before the
next begins. Errors are isolated per scope - a corrupt workbook skips that
file, a malformed sheet skips that sheet, a rejected row skips that row -
and the run itself never aborts because of a data-shape anomaly in one
input. The only unrecoverable condition is failure to write the master
table at the end.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runExtract()
	},
}

// init registers the extract command with the root command and sets up
// flags.
func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().BoolVar(
		&dryRun,
		"dry-run",
		false,
		"Run the extraction without writing the master table",
	)

	extractCmd.Flags().StringVar(
		&singleFile,
		"file",
		"",
		"Process only the given workbook instead of scanning the input directory",
	)
}

// runExtract is the main function that orchestrates the batch pass.
func runExtract() error {
	started := time.Now()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	initLogging(cfg.LogLevel)

	// =========================================================================
	// STEP 1: DISCOVER INPUT WORKBOOKS
	// =========================================================================

	var files []string
	if singleFile != "" {
		if !utils.FileExists(singleFile) {
			return fmt.Errorf("workbook not found: %s", singleFile)
		}
		files = []string{singleFile}
	} else {
		fm := utils.NewFileManager(cfg.InputDir)
		files, err = fm.DiscoverWorkbooks()
		if err != nil {
			return fmt.Errorf("failed to discover input workbooks: %w", err)
		}
	}

	if len(files) == 0 {
		fmt.Println("No workbooks found in the input directory.")
		return nil
	}

	// =========================================================================
	// STEP 2: EXTRACT
	// =========================================================================

	ext := extractor.New(cfg, slog.Default())
	result := ext.Run(files)

	// =========================================================================
	// STEP 3: VALIDATE AGAINST THE MASTER SCHEMA
	// =========================================================================
	// The extractor builds records positionally, so violations here point at
	// schema drift, not at bad input data. Offending records are dropped
	// from the output, never silently written.

	columns := types.MasterColumnsFor(cfg.AgeGroups)
	schemaErrs := validation.ValidateRecords(result.Records, columns)

	records := result.Records
	if len(schemaErrs) > 0 {
		for i := range schemaErrs {
			slog.Warn("schema violation", slog.String("detail", schemaErrs[i].Error()))
		}
		records = dropInvalid(result.Records, schemaErrs)
	}

	// =========================================================================
	// STEP 4: WRITE THE MASTER TABLE
	// =========================================================================

	if !dryRun {
		if err := masterfile.WriteXLSX(cfg.OutputFile, columns, records); err != nil {
			return fmt.Errorf("failed to write master table: %w", err)
		}
		if cfg.CSVMirror {
			if err := masterfile.WriteCSV(cfg.CSVMirrorPath(), columns, records); err != nil {
				return fmt.Errorf("failed to write csv mirror: %w", err)
			}
		}
	}

	// =========================================================================
	// STEP 5: SUMMARY
	// =========================================================================

	summary := utils.RunSummary{
		RunID:            result.RunID,
		Started:          started,
		Elapsed:          result.Elapsed,
		FilesProcessed:   result.FilesProcessed,
		FilesFailed:      result.FilesFailed,
		SheetsProcessed:  result.SheetsProcessed,
		SheetsSkipped:    result.SheetsSkipped,
		RecordsExtracted: len(records),
		SchemaErrors:     len(schemaErrs),
	}
	if !dryRun {
		summary.OutputFile = cfg.OutputFile

		logPath, err := utils.WriteSummaryLog(summary, filepath.Dir(cfg.OutputFile))
		if err != nil {
			// The master table is already on disk; a missing summary log is
			// not worth failing the run over.
			slog.Warn("failed to write summary log", slog.Any("error", err))
		} else {
			slog.Info("summary log written", slog.String("path", logPath))
		}
	}

	printSummary(summary, dryRun)
	return nil
}

// dropInvalid filters out the records named by the schema errors.
func dropInvalid(records []types.Record, errs []validation.SchemaError) []types.Record {
	bad := make(map[int]bool, len(errs))
	for _, e := range errs {
		bad[e.RecordIndex] = true
	}

	kept := make([]types.Record, 0, len(records))
	for i, r := range records {
		if bad[i] {
			continue
		}
		kept = append(kept, r)
	}
	return kept
}

// printSummary prints the human-readable run summary to stdout.
func printSummary(s utils.RunSummary, dry bool) {
	fmt.Println("\n=== Extraction Complete ===")
	fmt.Printf("Files processed:   %d\n", s.FilesProcessed)
	fmt.Printf("Files failed:      %d\n", s.FilesFailed)
	fmt.Printf("Sheets processed:  %d\n", s.SheetsProcessed)
	fmt.Printf("Sheets skipped:    %d\n", s.SheetsSkipped)
	fmt.Printf("Records extracted: %d\n", s.RecordsExtracted)
	if s.SchemaErrors > 0 {
		fmt.Printf("Schema errors:     %d\n", s.SchemaErrors)
	}
	fmt.Printf("Time elapsed:      %s\n", s.Elapsed)
	if dry {
		fmt.Println("Dry run: master table not written.")
	} else {
		fmt.Printf("Output:            %s\n", s.OutputFile)
	}
}
