package workbook

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeTestWorkbook(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.xlsx")

	f := excelize.NewFile()
	defer f.Close()

	_, err := f.NewSheet("Table 196")
	require.NoError(t, err)

	require.NoError(t, f.SetCellValue("Table 196", "A1", "alpha"))
	require.NoError(t, f.SetCellValue("Table 196", "C2", 42))
	require.NoError(t, f.SaveAs(path))

	return path
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.xlsx"))
	assert.Error(t, err)
}

func TestWorkbook_SheetNamesAndGrid(t *testing.T) {
	path := writeTestWorkbook(t)

	wb, err := Open(path)
	require.NoError(t, err)
	defer wb.Close()

	assert.Equal(t, path, wb.Path())
	assert.Equal(t, []string{"Sheet1", "Table 196"}, wb.SheetNames())

	grid, err := wb.Grid("Table 196")
	require.NoError(t, err)

	assert.Equal(t, 2, grid.Rows())
	assert.Equal(t, "alpha", grid.Cell(0, 0))
	assert.Equal(t, "42", grid.Cell(1, 2))

	_, err = wb.Grid("No Such Sheet")
	assert.Error(t, err)
}

func TestGrid_BoundsAndWidth(t *testing.T) {
	grid := Grid{
		{"a"},
		{"b", "", "c"},
	}

	assert.Equal(t, 2, grid.Rows())
	assert.Equal(t, 3, grid.Width())

	assert.Equal(t, "c", grid.Cell(1, 2))
	assert.Equal(t, "", grid.Cell(0, 5), "beyond row width")
	assert.Equal(t, "", grid.Cell(9, 0), "beyond row count")
	assert.Equal(t, "", grid.Cell(-1, -1), "negative address")

	assert.False(t, grid.CellEmpty(0, 0))
	assert.True(t, grid.CellEmpty(1, 1), "empty cell")
	assert.True(t, grid.CellEmpty(5, 5), "missing cell")
}

func TestGrid_Empty(t *testing.T) {
	var grid Grid
	assert.Zero(t, grid.Rows())
	assert.Zero(t, grid.Width())
	assert.Equal(t, "", grid.Cell(0, 0))
}
