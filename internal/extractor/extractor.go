// =============================================================================
// Survey Workbook Extractor - Extraction Pipeline
// =============================================================================
//
// This module contains the batch extraction pipeline. It orchestrates the
// run across all discovered workbooks and isolates failures at three scopes:
//
//   1. File-level:  a workbook that cannot be opened or read is skipped and
//                   the run continues with the next file.
//   2. Sheet-level: a sheet that cannot be read, or that is too short to
//                   contain the header row, is skipped and other sheets and
//                   files continue.
//   3. Row-level:   a rejected row contributes no record; extraction of the
//                   sheet continues.
//
// Partial success is an explicit, typed outcome: every scope reports through
// FileResult / SheetResult values rather than through panics or aborts. The
// run never stops because of a data-shape anomaly in one input.
//
// =============================================================================

package extractor

import (
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/surveyetl/surveyextract/internal/config"
	"github.com/surveyetl/surveyextract/internal/types"
	"github.com/surveyetl/surveyextract/internal/workbook"
)

// =============================================================================
// RESULT STRUCTURES
// =============================================================================

// RunResult is the outcome of one batch run across all input workbooks.
type RunResult struct {
	// RunID identifies this run in logs and in the summary report.
	RunID string

	// Records is the master table content: every accepted record across all
	// files and sheets, in processing order.
	Records []types.Record

	// Files holds the per-file outcomes, in processing order.
	Files []FileResult

	// FilesProcessed and FilesFailed count workbooks that were extracted and
	// workbooks that were skipped entirely because they could not be read.
	FilesProcessed int
	FilesFailed    int

	// SheetsProcessed and SheetsSkipped count target sheets extracted and
	// target sheets skipped (unreadable or too short).
	SheetsProcessed int
	SheetsSkipped   int

	// Elapsed is the wall-clock duration of the run.
	Elapsed time.Duration
}

// FileResult is the outcome of processing a single workbook.
type FileResult struct {
	// Path is the workbook path.
	Path string

	// Country is the country resolved from the filename, or the
	// UnknownCountry sentinel when the filename does not match the pattern.
	Country string

	// Sheets holds the per-sheet outcomes for the target sheets found in
	// this workbook, in the workbook's native sheet order.
	Sheets []SheetResult

	// Err is set when the workbook itself could not be opened or read. The
	// file contributed no records in that case.
	Err error
}

// Records returns all records extracted from this file, in sheet order.
func (fr FileResult) Records() []types.Record {
	var records []types.Record
	for _, sr := range fr.Sheets {
		records = append(records, sr.Records...)
	}
	return records
}

// SheetResult is the outcome of extracting a single target sheet.
type SheetResult struct {
	// Sheet is the sheet name.
	Sheet string

	// Skipped is true when the sheet contributed nothing; SkipReason says
	// why.
	Skipped    bool
	SkipReason string

	// Records are the accepted records from this sheet: the two summary
	// rows first, then accepted question rows in row order.
	Records []types.Record
}

// =============================================================================
// EXTRACTOR
// =============================================================================

// Extractor runs the fixed-offset extraction template over workbooks.
type Extractor struct {
	cfg    *config.Config
	logger *slog.Logger
}

// New creates an Extractor. A nil logger falls back to slog.Default.
func New(cfg *config.Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{cfg: cfg, logger: logger}
}

// Run processes the given workbook paths sequentially and accumulates the
// master table. Failures inside one file never affect the others.
func (e *Extractor) Run(paths []string) *RunResult {
	start := time.Now()
	result := &RunResult{RunID: uuid.New().String()}

	e.logger.Info("starting extraction run",
		slog.String("run_id", result.RunID),
		slog.Int("file_count", len(paths)))

	for _, path := range paths {
		fr := e.ExtractFile(path)
		result.Files = append(result.Files, fr)

		if fr.Err != nil {
			result.FilesFailed++
			e.logger.Warn("skipping file",
				slog.String("file", filepath.Base(path)),
				slog.Any("error", fr.Err))
			continue
		}

		result.FilesProcessed++
		for _, sr := range fr.Sheets {
			if sr.Skipped {
				result.SheetsSkipped++
				continue
			}
			result.SheetsProcessed++
			result.Records = append(result.Records, sr.Records...)
		}
	}

	result.Elapsed = time.Since(start)

	e.logger.Info("extraction run complete",
		slog.String("run_id", result.RunID),
		slog.Int("files_processed", result.FilesProcessed),
		slog.Int("files_failed", result.FilesFailed),
		slog.Int("sheets_processed", result.SheetsProcessed),
		slog.Int("sheets_skipped", result.SheetsSkipped),
		slog.Int("records", len(result.Records)),
		slog.Duration("elapsed", result.Elapsed))

	return result
}

// ExtractFile processes one workbook: resolves the country from the
// filename, filters sheets to the allow-list, and extracts each target sheet
// in the workbook's native order.
func (e *Extractor) ExtractFile(path string) FileResult {
	fileName := filepath.Base(path)
	result := FileResult{
		Path:    path,
		Country: e.ResolveCountry(fileName),
	}

	log := e.logger.With(
		slog.String("file", fileName),
		slog.String("country", result.Country))

	log.Info("processing file")

	wb, err := workbook.Open(path)
	if err != nil {
		result.Err = err
		return result
	}
	defer wb.Close()

	for _, sheet := range wb.SheetNames() {
		if !e.cfg.SheetAllowed(sheet) {
			continue
		}

		grid, err := wb.Grid(sheet)
		if err != nil {
			// Sheet-level scope: one unreadable sheet does not take down
			// the file.
			log.Warn("skipping sheet",
				slog.String("sheet", sheet),
				slog.Any("error", err))
			result.Sheets = append(result.Sheets, SheetResult{
				Sheet:      sheet,
				Skipped:    true,
				SkipReason: err.Error(),
			})
			continue
		}

		result.Sheets = append(result.Sheets, e.extractSheet(log, result.Country, sheet, grid))
	}

	return result
}

// ResolveCountry extracts the country name from a workbook filename using
// the configured pattern. Filenames that do not match yield the
// UnknownCountry sentinel; no trimming or case normalization is applied
// beyond the capture itself.
func (e *Extractor) ResolveCountry(fileName string) string {
	m := e.cfg.CountryRegexp().FindStringSubmatch(fileName)
	if len(m) > 1 {
		return m[1]
	}
	return types.UnknownCountry
}
