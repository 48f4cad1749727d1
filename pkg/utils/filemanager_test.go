package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
}

func TestDiscoverWorkbooks(t *testing.T) {
	dir := t.TempDir()

	touch(t, filepath.Join(dir, "poll_a.xlsx"))
	touch(t, filepath.Join(dir, "POLL_B.XLSX"))       // extension match is case-insensitive
	touch(t, filepath.Join(dir, "~$poll_a.xlsx"))     // Office lock file
	touch(t, filepath.Join(dir, "notes.txt"))         // wrong extension
	touch(t, filepath.Join(dir, "legacy_export.xls")) // wrong extension
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0755))
	touch(t, filepath.Join(dir, "nested", "poll_c.xlsx")) // not recursive

	fm := NewFileManager(dir)
	files, err := fm.DiscoverWorkbooks()
	require.NoError(t, err)

	require.Len(t, files, 2)
	assert.Contains(t, files, filepath.Join(dir, "poll_a.xlsx"))
	assert.Contains(t, files, filepath.Join(dir, "POLL_B.XLSX"))
}

func TestDiscoverWorkbooks_MissingDir(t *testing.T) {
	fm := NewFileManager(filepath.Join(t.TempDir(), "nope"))
	_, err := fm.DiscoverWorkbooks()
	assert.Error(t, err)
}

func TestEnsureDirAndFileExists(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "a", "b")

	require.NoError(t, EnsureDir(nested))
	info, err := os.Stat(nested)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	assert.False(t, FileExists(nested), "directories are not files")
	assert.False(t, FileExists(filepath.Join(dir, "absent")))

	path := filepath.Join(nested, "f.txt")
	touch(t, path)
	assert.True(t, FileExists(path))
}

func TestWriteSummaryLog(t *testing.T) {
	dir := t.TempDir()

	summary := RunSummary{
		RunID:            "run-123",
		Started:          time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC),
		Elapsed:          3 * time.Second,
		FilesProcessed:   4,
		FilesFailed:      1,
		SheetsProcessed:  7,
		SheetsSkipped:    2,
		RecordsExtracted: 150,
		OutputFile:       "/data/Master_Survey_Data.xlsx",
	}

	path, err := WriteSummaryLog(summary, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "extract_summary_20260301_123000.log"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	content := string(data)
	assert.Contains(t, content, "run-123")
	assert.Contains(t, content, "Files processed:   4")
	assert.Contains(t, content, "Records extracted: 150")
	assert.Contains(t, content, "/data/Master_Survey_Data.xlsx")
}

func TestWriteSummaryLog_DryRun(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteSummaryLog(RunSummary{Started: time.Now()}, dir)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "(dry run, not written)")
}
