// =============================================================================
// Survey Workbook Extractor - File Manager Utility
// =============================================================================
//
// This module provides the filesystem half of the pipeline:
//   - Workbook discovery (non-recursive, extension-filtered, temp files
//     skipped)
//   - Directory management
//   - Run summary log generation
//
// Discovery applies exactly two filters: the entry must end in the workbook
// extension and must not carry the Office lock-file prefix. Subdirectories
// are not descended into.
//
// =============================================================================

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	// WorkbookExtension is the input spreadsheet extension.
	WorkbookExtension = ".xlsx"

	// TempFilePrefix marks Office lock files left next to open workbooks.
	TempFilePrefix = "~$"
)

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager handles file operations for the extractor.
type FileManager struct {
	// InputDir is the directory scanned for input workbooks.
	InputDir string
}

// NewFileManager creates a FileManager for the given input directory.
func NewFileManager(inputDir string) *FileManager {
	return &FileManager{InputDir: inputDir}
}

// DiscoverWorkbooks lists the input workbooks in InputDir. Entries are
// returned in directory listing order; no ordering beyond that is
// guaranteed.
func (fm *FileManager) DiscoverWorkbooks() ([]string, error) {
	entries, err := os.ReadDir(fm.InputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory %s: %w", fm.InputDir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(strings.ToLower(name), WorkbookExtension) {
			continue
		}
		if strings.HasPrefix(name, TempFilePrefix) {
			continue
		}
		files = append(files, filepath.Join(fm.InputDir, name))
	}

	return files, nil
}

// =============================================================================
// DIRECTORY HELPERS
// =============================================================================

// EnsureDir creates the directory (and parents) if it does not exist.
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}
	return nil
}

// FileExists reports whether the path exists and is not a directory.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// =============================================================================
// RUN SUMMARY LOG
// =============================================================================

// RunSummary captures the outcome of one extraction run for the summary log.
type RunSummary struct {
	// RunID identifies the run; it matches the run_id in the structured
	// logs.
	RunID string

	// Started is when the run began.
	Started time.Time

	// Elapsed is the wall-clock duration of the run.
	Elapsed time.Duration

	// FilesProcessed and FilesFailed count input workbooks.
	FilesProcessed int
	FilesFailed    int

	// SheetsProcessed and SheetsSkipped count target sheets.
	SheetsProcessed int
	SheetsSkipped   int

	// RecordsExtracted is the number of rows in the master table.
	RecordsExtracted int

	// SchemaErrors is the number of records rejected by validation.
	SchemaErrors int

	// OutputFile is the path of the master workbook, empty on a dry run.
	OutputFile string
}

// WriteSummaryLog writes a human-readable summary of the run into dir and
// returns the path of the log file.
func WriteSummaryLog(summary RunSummary, dir string) (string, error) {
	if err := EnsureDir(dir); err != nil {
		return "", err
	}

	name := fmt.Sprintf("extract_summary_%s.log", summary.Started.Format("20060102_150405"))
	path := filepath.Join(dir, name)

	var b strings.Builder
	b.WriteString("=== Survey Extraction Summary ===\n")
	fmt.Fprintf(&b, "Run ID:            %s\n", summary.RunID)
	fmt.Fprintf(&b, "Started:           %s\n", summary.Started.Format(time.RFC3339))
	fmt.Fprintf(&b, "Elapsed:           %s\n", summary.Elapsed)
	fmt.Fprintf(&b, "Files processed:   %d\n", summary.FilesProcessed)
	fmt.Fprintf(&b, "Files failed:      %d\n", summary.FilesFailed)
	fmt.Fprintf(&b, "Sheets processed:  %d\n", summary.SheetsProcessed)
	fmt.Fprintf(&b, "Sheets skipped:    %d\n", summary.SheetsSkipped)
	fmt.Fprintf(&b, "Records extracted: %d\n", summary.RecordsExtracted)
	fmt.Fprintf(&b, "Schema errors:     %d\n", summary.SchemaErrors)
	if summary.OutputFile != "" {
		fmt.Fprintf(&b, "Output file:       %s\n", summary.OutputFile)
	} else {
		b.WriteString("Output file:       (dry run, not written)\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return "", fmt.Errorf("failed to write summary log: %w", err)
	}

	return path, nil
}
