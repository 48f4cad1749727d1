// =============================================================================
// Survey Workbook Extractor - Master Table Writers
// =============================================================================
//
// This module writes the accumulated master table in one pass at the end of
// a run. The primary output is a workbook with a single sheet holding the
// header row and one data row per record. An optional CSV mirror of the same
// table can be written next to it; the mirror gets a UTF-8 BOM so Excel
// opens it with the right encoding.
//
// Failure to write the primary output is the only unrecoverable condition in
// the whole pipeline, so errors from here propagate instead of being logged
// and swallowed.
//
// =============================================================================

package masterfile

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/surveyetl/surveyextract/internal/types"
)

// sheetName is the sheet the master table is written to.
const sheetName = "Sheet1"

// utf8BOM is prepended to the CSV mirror for Excel compatibility.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteXLSX writes the master table as a workbook at the given path. The
// directory is created if needed.
func WriteXLSX(path string, columns []string, records []types.Record) error {
	slog.Info("writing master workbook",
		slog.String("path", path),
		slog.Int("records", len(records)))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for i, record := range records {
		row := record.Row()
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}

		addr, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to address row %d: %w", i+2, err)
		}
		if err := f.SetSheetRow(sheetName, addr, &cells); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save master workbook: %w", err)
	}

	return nil
}

// WriteCSV writes the master table as a CSV file at the given path.
func WriteCSV(path string, columns []string, records []types.Record) error {
	slog.Info("writing master csv",
		slog.String("path", path),
		slog.Int("records", len(records)))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create csv file: %w", err)
	}
	defer file.Close()

	if _, err := file.Write(utf8BOM); err != nil {
		return fmt.Errorf("failed to write BOM: %w", err)
	}

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(columns); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}
	for i, record := range records {
		if err := writer.Write(record.Row()); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	return writer.Error()
}
