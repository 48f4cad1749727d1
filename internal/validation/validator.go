// =============================================================================
// Survey Workbook Extractor - Record Validation
// =============================================================================
//
// This module checks extracted records against the fixed master schema
// before they are written out. The extractor builds records positionally, so
// in a healthy run nothing here fires; the checks exist to catch schema
// drift (for example a configured age-group list whose length no longer
// matches the master columns) before it silently corrupts the output table.
//
// ERROR HANDLING:
//   - Errors are collected, not returned at the first failure.
//   - Each error carries the record index and the offending field so a bad
//     batch can be traced back to its source row.
//
// =============================================================================

package validation

import (
	"fmt"

	"github.com/surveyetl/surveyextract/internal/types"
)

// =============================================================================
// SCHEMA ERROR
// =============================================================================

// SchemaError describes one record that does not fit the master schema.
type SchemaError struct {
	// RecordIndex is the zero-based position of the record in the run.
	RecordIndex int

	// Field names the schema field that failed, when a single field can be
	// blamed.
	Field string

	// Message is a human-readable description.
	Message string
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("record %d, field %q: %s", e.RecordIndex, e.Field, e.Message)
	}
	return fmt.Sprintf("record %d: %s", e.RecordIndex, e.Message)
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidateRecords checks every record against the given master columns and
// returns all violations found. A nil return means the whole batch is
// writable.
func ValidateRecords(records []types.Record, columns []string) []SchemaError {
	var errs []SchemaError

	wantValues := len(columns) - 3 // Country, Sheet, Metric carry the rest

	for i, record := range records {
		if record.Country == "" {
			errs = append(errs, SchemaError{
				RecordIndex: i,
				Field:       "Country",
				Message:     "empty country (resolver must emit the Unknown sentinel)",
			})
		}
		if record.Sheet == "" {
			errs = append(errs, SchemaError{
				RecordIndex: i,
				Field:       "Sheet",
				Message:     "empty sheet name",
			})
		}
		if record.Metric == "" {
			errs = append(errs, SchemaError{
				RecordIndex: i,
				Field:       "Metric/Question",
				Message:     "empty metric label (summary rows must fall back to their sentinel)",
			})
		}
		if len(record.Values) != wantValues {
			errs = append(errs, SchemaError{
				RecordIndex: i,
				Message: fmt.Sprintf("record has %d response values, master schema has %d",
					len(record.Values), wantValues),
			})
		}
	}

	return errs
}
