// =============================================================================
// Survey Workbook Extractor - Workbook Access
// =============================================================================
//
// This module wraps excelize behind the two operations the extractor needs:
// enumerate sheet names and read a sheet as a cell grid. The Grid type gives
// bounds-checked, read-only access to the raw cell values; rows coming out
// of excelize are ragged (trailing empty cells are dropped), so all position
// math in the extractor goes through Grid instead of indexing slices
// directly.
//
// =============================================================================

package workbook

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Workbook is an open spreadsheet file. It is read once and closed; handles
// are never pooled or reused across files.
type Workbook struct {
	path string
	file *excelize.File
}

// Open opens the workbook at the given path.
func Open(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	return &Workbook{path: path, file: f}, nil
}

// Close releases the underlying file.
func (w *Workbook) Close() error {
	return w.file.Close()
}

// Path returns the path the workbook was opened from.
func (w *Workbook) Path() string {
	return w.path
}

// SheetNames returns the sheet names in the workbook's native order.
func (w *Workbook) SheetNames() []string {
	return w.file.GetSheetList()
}

// Grid reads the named sheet as a cell grid.
func (w *Workbook) Grid(sheet string) (Grid, error) {
	rows, err := w.file.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	return Grid(rows), nil
}

// =============================================================================
// CELL GRID
// =============================================================================

// Grid is the raw 2D grid of cell values for one sheet, addressed by
// (row, column) zero-based index. Rows may have different lengths.
type Grid [][]string

// Rows returns the number of rows in the grid.
func (g Grid) Rows() int {
	return len(g)
}

// Width returns the width of the widest row. A column index at or beyond
// Width does not exist anywhere in the sheet.
func (g Grid) Width() int {
	width := 0
	for _, row := range g {
		if len(row) > width {
			width = len(row)
		}
	}
	return width
}

// Cell returns the raw value at (row, col), or the empty string when the
// address is outside the grid.
func (g Grid) Cell(row, col int) string {
	if row < 0 || row >= len(g) {
		return ""
	}
	if col < 0 || col >= len(g[row]) {
		return ""
	}
	return g[row][col]
}

// CellEmpty reports whether the cell at (row, col) is empty or missing.
func (g Grid) CellEmpty(row, col int) bool {
	return strings.TrimSpace(g.Cell(row, col)) == ""
}
