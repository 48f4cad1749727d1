// =============================================================================
// Survey Workbook Extractor - Sheet Extraction
// =============================================================================
//
// This module applies the fixed-offset extraction template to one sheet's
// cell grid:
//
//   - The header row (index 6, columns 2-13) yields the observed demographic
//     labels; each configured age group resolves to a sheet-specific column,
//     or to no column at all when the sheet lacks it.
//   - Rows 8 and 9 are the named summary rows. Each one always yields a
//     record, even when every response cell is empty.
//   - Rows 10 and up are question rows. A row yields a record only when its
//     label is textual and at least one response cell is non-empty.
//
// Total Resp, Male and Female are read from fixed columns 2, 3 and 4
// regardless of the header row's content; only the age-group columns move
// between sheets.
//
// =============================================================================

package extractor

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/surveyetl/surveyextract/internal/types"
	"github.com/surveyetl/surveyextract/internal/workbook"
)

// extractSheet runs the template over one target sheet. The sheet must have
// more rows than the header row index, otherwise it lacks the structure the
// template assumes and is skipped with a single diagnostic.
func (e *Extractor) extractSheet(log *slog.Logger, country, sheet string, grid workbook.Grid) SheetResult {
	result := SheetResult{Sheet: sheet}

	if grid.Rows() <= types.HeaderRowIndex {
		result.Skipped = true
		result.SkipReason = "not enough rows"
		log.Warn("skipping sheet: not enough rows",
			slog.String("sheet", sheet),
			slog.Int("rows", grid.Rows()))
		return result
	}

	headers := observedHeaders(grid)
	positions := resolveAgePositions(e.cfg.AgeGroups, headers)

	log.Debug("resolved sheet layout",
		slog.String("sheet", sheet),
		slog.Any("headers", headers))

	// Named summary rows: one record each, unconditionally.
	summaryRows := []struct {
		row      int
		fallback string
	}{
		{types.SummaryRowFirst, types.UnknownSummaryFirst},
		{types.SummaryRowSecond, types.UnknownSummarySecond},
	}
	for _, sr := range summaryRows {
		metric := grid.Cell(sr.row, types.LabelColIndex)
		if strings.TrimSpace(metric) == "" {
			metric = sr.fallback
		}
		result.Records = append(result.Records,
			e.buildRecord(grid, sr.row, country, sheet, metric, positions))
	}

	// Question rows: scan to the end of the sheet. Rejected rows are
	// silently skipped.
	for row := types.QuestionRowStart; row < grid.Rows(); row++ {
		label := grid.Cell(row, types.LabelColIndex)
		if !isTextualLabel(label) {
			continue
		}
		if !hasResponseValue(grid, row) {
			continue
		}
		result.Records = append(result.Records,
			e.buildRecord(grid, row, country, sheet, label, positions))
	}

	log.Debug("sheet extracted",
		slog.String("sheet", sheet),
		slog.Int("records", len(result.Records)))

	return result
}

// observedHeaders reads the header row across the fixed column span, drops
// empty cells, and returns the remaining labels in left-to-right order.
func observedHeaders(grid workbook.Grid) []string {
	var headers []string
	for col := types.HeaderColStart; col <= types.HeaderColEnd; col++ {
		cell := strings.TrimSpace(grid.Cell(types.HeaderRowIndex, col))
		if cell == "" {
			continue
		}
		headers = append(headers, cell)
	}
	return headers
}

// resolveAgePositions maps each age-group label to its column index for this
// sheet: the label's position within the observed header list plus the start
// of the header span. Labels missing from the headers get no entry, which
// reads as the MissingValue sentinel downstream.
func resolveAgePositions(ageGroups, headers []string) map[string]int {
	positions := make(map[string]int, len(ageGroups))
	for _, group := range ageGroups {
		for i, header := range headers {
			if header == group {
				positions[group] = i + types.HeaderColStart
				break
			}
		}
	}
	return positions
}

// buildRecord pulls one master-table record out of the grid at the given
// row. Columns beyond the sheet's width, unresolved age groups, and rows
// beyond the grid all read as the MissingValue sentinel; empty cells that do
// exist in the sheet read as the empty string.
func (e *Extractor) buildRecord(grid workbook.Grid, row int, country, sheet, metric string, positions map[string]int) types.Record {
	width := grid.Width()

	cell := func(col int) string {
		if row >= grid.Rows() || col >= width {
			return types.MissingValue
		}
		return grid.Cell(row, col)
	}

	values := make([]string, 0, len(types.FixedResponseColumns)+len(e.cfg.AgeGroups))
	values = append(values,
		cell(types.TotalRespColIndex),
		cell(types.MaleColIndex),
		cell(types.FemaleColIndex))

	for _, group := range e.cfg.AgeGroups {
		col, ok := positions[group]
		if !ok {
			values = append(values, types.MissingValue)
			continue
		}
		values = append(values, cell(col))
	}

	return types.Record{
		Country: country,
		Sheet:   sheet,
		Metric:  metric,
		Values:  values,
	}
}

// isTextualLabel reports whether a label cell holds real text: non-empty
// after trimming and not a bare number. Numeric labels mark continuation or
// index rows, not questions.
func isTextualLabel(s string) bool {
	t := strings.TrimSpace(s)
	if t == "" {
		return false
	}
	if _, err := strconv.ParseFloat(t, 64); err == nil {
		return false
	}
	return true
}

// hasResponseValue reports whether at least one cell in the response span
// (columns 2-13) of the row is non-empty.
func hasResponseValue(grid workbook.Grid, row int) bool {
	for col := types.HeaderColStart; col <= types.HeaderColEnd; col++ {
		if !grid.CellEmpty(row, col) {
			return true
		}
	}
	return false
}
