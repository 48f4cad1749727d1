// =============================================================================
// Survey Workbook Extractor - Shared Types
// =============================================================================
//
// This package contains the master record schema and the positional contract
// of the source workbooks. Types defined here are used by:
//   - extractor
//   - validation
//   - masterfile
//
// The row/column offsets below are a positional contract inherited from the
// survey tabulation template: behavior is defined by position, not by what
// the cells happen to say. They are named constants on purpose and are not
// exposed through configuration.
//
// =============================================================================

package types

// =============================================================================
// POSITIONAL CONTRACT
// =============================================================================

const (
	// HeaderRowIndex is the zero-based row holding the demographic column
	// labels (spreadsheet row 7).
	HeaderRowIndex = 6

	// HeaderColStart and HeaderColEnd bound the header scan span, inclusive
	// (spreadsheet columns C through N).
	HeaderColStart = 2
	HeaderColEnd   = 13

	// LabelColIndex is the column holding metric and question labels
	// (spreadsheet column B).
	LabelColIndex = 1

	// SummaryRowFirst and SummaryRowSecond are the two fixed summary rows
	// (spreadsheet rows 9 and 10). Each always yields one record.
	SummaryRowFirst  = 8
	SummaryRowSecond = 9

	// QuestionRowStart is the first row scanned for open-ended question
	// records (spreadsheet row 11).
	QuestionRowStart = 10

	// TotalRespColIndex, MaleColIndex and FemaleColIndex are fixed: every
	// processed sheet is assumed to place these three metrics in the same
	// columns, regardless of the header row's content.
	TotalRespColIndex = 2
	MaleColIndex      = 3
	FemaleColIndex    = 4
)

// =============================================================================
// SENTINELS
// =============================================================================

const (
	// MissingValue marks a response column that is absent from the sheet or
	// out of bounds. It is a literal sentinel, never an empty cell.
	MissingValue = "N/A"

	// UnknownCountry is used when the filename does not match the country
	// pattern.
	UnknownCountry = "Unknown"

	// UnknownSummaryFirst and UnknownSummarySecond are the fallback labels
	// for the two summary rows when their label cell is empty or missing.
	UnknownSummaryFirst  = "Unknown_1"
	UnknownSummarySecond = "Unknown_2"
)

// =============================================================================
// MASTER SCHEMA
// =============================================================================

// AgeGroupColumns is the fixed set of demographic bracket labels. Their
// column positions are sheet-dependent and resolved from the header row of
// each sheet; the labels themselves never change.
var AgeGroupColumns = []string{
	"18-24",
	"25-34",
	"35-44",
	"35+",
	"45+",
	"45-54",
	"55-64",
	"55+",
	"65+",
	"NET: 18-34",
	"NET: 35-54",
	"NET: 35+",
	"NET: 55+",
}

// FixedResponseColumns are the three response columns with hardcoded
// positions, in master-schema order.
var FixedResponseColumns = []string{"Total Resp", "Male", "Female"}

// MasterColumns returns the full 19-column header of the master table:
// Country, Sheet, Metric/Question, the three fixed response columns, then
// one column per age group.
func MasterColumns() []string {
	return MasterColumnsFor(AgeGroupColumns)
}

// MasterColumnsFor builds the master-table header for a custom age-group
// list. The three label columns and the three fixed response columns are
// always present; only the age-group tail varies.
func MasterColumnsFor(ageGroups []string) []string {
	columns := []string{"Country", "Sheet", "Metric/Question"}
	columns = append(columns, FixedResponseColumns...)
	columns = append(columns, ageGroups...)
	return columns
}

// =============================================================================
// RECORD
// =============================================================================

// Record is one row of the master table. Records are purely additive: once
// built they are never updated or deleted.
type Record struct {
	// Country is the country resolved from the source filename, or the
	// UnknownCountry sentinel.
	Country string

	// Sheet is the name of the source sheet ("Table 196" or "Table 197").
	Sheet string

	// Metric is the metric or question label from the label column.
	Metric string

	// Values holds the response values in master-schema order: Total Resp,
	// Male, Female, then one value per entry of AgeGroupColumns. A value is
	// MissingValue when the source column is absent or out of bounds, and
	// the empty string when the cell exists but is empty.
	Values []string
}

// Row flattens the record into a master-table row matching MasterColumns.
func (r Record) Row() []string {
	row := make([]string, 0, 3+len(r.Values))
	row = append(row, r.Country, r.Sheet, r.Metric)
	row = append(row, r.Values...)
	return row
}
