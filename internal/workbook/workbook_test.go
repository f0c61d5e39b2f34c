package workbook

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	scanerrors "github.com/anstrom/scansheet/internal/errors"
)

func openSaved(t *testing.T, path string) *excelize.File {
	t.Helper()
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestWorkbookSheets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "report.xlsx")

	wb, err := Create(path, DefaultOptions())
	require.NoError(t, err)

	for _, name := range []string{"Host vs Services", "Host vs OSs", "OS vs Hosts"} {
		ws, err := wb.AddWorksheet(name)
		require.NoError(t, err)
		require.NoError(t, ws.WriteTable([]string{"File", "Host IP"}, [][]any{{"a.xml", "10.0.0.1"}}))
	}
	assert.Equal(t, []string{"Host vs Services", "Host vs OSs", "OS vs Hosts"}, wb.Sheets())
	assert.Equal(t, path, wb.Path())
	require.NoError(t, wb.Close())

	f := openSaved(t, path)
	assert.Equal(t, []string{"Host vs Services", "Host vs OSs", "OS vs Hosts"}, f.GetSheetList())
}

func TestWriteTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")

	wb, err := Create(path, DefaultOptions())
	require.NoError(t, err)

	ws, err := wb.AddWorksheet("Host vs OSs")
	require.NoError(t, err)

	headers := []string{"File", "Host IP", "Operating System", "Accuracy"}
	rows := [][]any{
		{"a.xml", "10.0.0.1", "Linux 4.x", 95},
		{"a.xml", "10.0.0.2", "Windows 10", 88},
	}
	require.NoError(t, ws.WriteTable(headers, rows))
	require.NoError(t, wb.Close())

	f := openSaved(t, path)
	got, err := f.GetRows("Host vs OSs")
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"File", "Host IP", "Operating System", "Accuracy"},
		{"a.xml", "10.0.0.1", "Linux 4.x", "95"},
		{"a.xml", "10.0.0.2", "Windows 10", "88"},
	}, got)

	tables, err := f.GetTables("Host vs OSs")
	require.NoError(t, err)
	require.Len(t, tables, 1)
	assert.Equal(t, "A1:D3", tables[0].Range)
	assert.Equal(t, "HostvsOSs", tables[0].Name)
	assert.Equal(t, DefaultTableStyle, tables[0].StyleName)
}

func TestWriteTableEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")

	wb, err := Create(path, DefaultOptions())
	require.NoError(t, err)
	ws, err := wb.AddWorksheet("OS vs Hosts")
	require.NoError(t, err)

	require.NoError(t, ws.WriteTable([]string{"File", "Operating System", "Host IP Count", "Host IP"}, nil))
	require.NoError(t, wb.Close())

	f := openSaved(t, path)
	got, err := f.GetRows("OS vs Hosts")
	require.NoError(t, err)
	require.Len(t, got, 1, "only the header row carries data")

	tables, err := f.GetTables("OS vs Hosts")
	require.NoError(t, err)
	require.Len(t, tables, 1)
	assert.Equal(t, "A1:D2", tables[0].Range)
}

func TestWriteTableValidation(t *testing.T) {
	wb, err := Create(filepath.Join(t.TempDir(), "report.xlsx"), DefaultOptions())
	require.NoError(t, err)
	ws, err := wb.AddWorksheet("Sheet")
	require.NoError(t, err)

	t.Run("no headers", func(t *testing.T) {
		err := ws.WriteTable(nil, nil)
		assert.True(t, scanerrors.IsCode(err, scanerrors.CodeWorkbookWrite))
	})

	t.Run("ragged row", func(t *testing.T) {
		err := ws.WriteTable([]string{"A", "B"}, [][]any{{"only one"}})
		require.Error(t, err)
		assert.True(t, scanerrors.IsCode(err, scanerrors.CodeWorkbookWrite))
		assert.Contains(t, err.Error(), "sheet: Sheet")
	})
}

func TestDuplicateWorksheet(t *testing.T) {
	wb, err := Create(filepath.Join(t.TempDir(), "report.xlsx"), DefaultOptions())
	require.NoError(t, err)

	_, err = wb.AddWorksheet("Host vs OSs")
	require.NoError(t, err)
	_, err = wb.AddWorksheet("host vs osS")
	assert.True(t, scanerrors.IsCode(err, scanerrors.CodeWorkbookWrite))
	assert.Equal(t, []string{"Host vs OSs"}, wb.Sheets())
}

func TestClose(t *testing.T) {
	t.Run("second close is rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "report.xlsx")
		wb, err := Create(path, DefaultOptions())
		require.NoError(t, err)
		_, err = wb.AddWorksheet("Host vs Services")
		require.NoError(t, err)

		require.NoError(t, wb.Close())
		assert.ErrorIs(t, wb.Close(), scanerrors.ErrWorkbookClosed)

		_, err = wb.AddWorksheet("late")
		assert.ErrorIs(t, err, scanerrors.ErrWorkbookClosed)

		_, err = os.Stat(path)
		assert.NoError(t, err)
	})

	t.Run("save failure is typed", func(t *testing.T) {
		dir := t.TempDir()
		// A directory where the file should go makes SaveAs fail.
		path := filepath.Join(dir, "report.xlsx")
		require.NoError(t, os.Mkdir(path, 0o755))

		wb, err := Create(path, DefaultOptions())
		require.NoError(t, err)
		_, err = wb.AddWorksheet("Host vs Services")
		require.NoError(t, err)

		err = wb.Close()
		require.Error(t, err)
		assert.True(t, scanerrors.IsCode(err, scanerrors.CodeWorkbookClose))

		var wbErr *scanerrors.WorkbookError
		require.ErrorAs(t, err, &wbErr)
		assert.Equal(t, path, wbErr.Path)
	})
}

func TestCreateErrors(t *testing.T) {
	_, err := Create("", DefaultOptions())
	assert.True(t, scanerrors.IsCode(err, scanerrors.CodeWorkbookCreate))

	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))
	_, err = Create(filepath.Join(blocker, "report.xlsx"), DefaultOptions())
	assert.True(t, scanerrors.IsCode(err, scanerrors.CodeWorkbookCreate))
}

func TestTableName(t *testing.T) {
	tests := map[string]string{
		"Host vs Services": "HostvsServices",
		"OS vs Hosts":      "OSvsHosts",
		"2024 scan":        "_2024scan",
		"***":              "_",
	}
	for in, want := range tests {
		assert.Equal(t, want, tableName(in), in)
	}
}

func TestDiscard(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	wb, err := Create(path, DefaultOptions())
	require.NoError(t, err)
	_, err = wb.AddWorksheet("Host vs Services")
	require.NoError(t, err)

	require.NoError(t, wb.Discard())
	require.NoError(t, wb.Discard())
	assert.ErrorIs(t, wb.Close(), scanerrors.ErrWorkbookClosed)

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "discarded workbook must not be written")
}
