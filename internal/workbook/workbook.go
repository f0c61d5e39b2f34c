// Package workbook writes report tables into an .xlsx file using excelize.
// A Workbook is created once per run, receives one table per worksheet and is
// saved exactly once by Close.
package workbook

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	scanerrors "github.com/anstrom/scansheet/internal/errors"
)

const (
	// DefaultTableStyle is the built-in Excel table style applied to every sheet.
	DefaultTableStyle = "TableStyleMedium9"

	outputDirPerm = 0o755

	minColumnWidth = 8.0
	maxColumnWidth = 80.0
	columnPadding  = 2.0
)

// Options control how tables are rendered.
type Options struct {
	// TableStyle is an Excel built-in table style name
	TableStyle string
	// FreezeHeader keeps the header row visible while scrolling
	FreezeHeader bool
	// AutoFitColumns sizes columns to their longest cell
	AutoFitColumns bool
}

// DefaultOptions returns the rendering used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		TableStyle:     DefaultTableStyle,
		FreezeHeader:   true,
		AutoFitColumns: true,
	}
}

// Workbook is an output spreadsheet being assembled in memory.
type Workbook struct {
	file   *excelize.File
	path   string
	opts   Options
	sheets []string
	closed bool
}

// Worksheet is a handle on one sheet of a Workbook.
type Worksheet struct {
	wb   *Workbook
	name string
}

// Create starts a new workbook that will be saved to path on Close.
// The output directory is created if needed.
func Create(path string, opts Options) (*Workbook, error) {
	if path == "" {
		return nil, scanerrors.WrapWorkbookError(scanerrors.CodeWorkbookCreate, "Output path is empty", path, nil)
	}
	if err := os.MkdirAll(filepath.Dir(path), outputDirPerm); err != nil {
		return nil, scanerrors.WrapWorkbookError(scanerrors.CodeWorkbookCreate, "Failed to create output directory", path, err)
	}
	if opts.TableStyle == "" {
		opts.TableStyle = DefaultTableStyle
	}

	return &Workbook{
		file: excelize.NewFile(),
		path: path,
		opts: opts,
	}, nil
}

// Path returns the output file path.
func (w *Workbook) Path() string {
	return w.path
}

// Sheets returns the worksheet names in creation order.
func (w *Workbook) Sheets() []string {
	return append([]string(nil), w.sheets...)
}

// AddWorksheet appends a worksheet. The first call takes over the default
// sheet excelize creates, so the saved file holds only named sheets.
func (w *Workbook) AddWorksheet(name string) (*Worksheet, error) {
	if w.closed {
		return nil, scanerrors.ErrWorkbookClosed
	}
	for _, existing := range w.sheets {
		if strings.EqualFold(existing, name) {
			return nil, scanerrors.WrapWorkbookError(scanerrors.CodeWorkbookWrite, "Worksheet already exists", w.path, nil).WithSheet(name)
		}
	}

	var err error
	if len(w.sheets) == 0 {
		err = w.file.SetSheetName(w.file.GetSheetName(0), name)
	} else {
		_, err = w.file.NewSheet(name)
	}
	if err != nil {
		return nil, scanerrors.WrapWorkbookError(scanerrors.CodeWorkbookWrite, "Failed to add worksheet", w.path, err).WithSheet(name)
	}

	w.sheets = append(w.sheets, name)
	return &Worksheet{wb: w, name: name}, nil
}

// WriteTable renders a header row followed by rows and wraps them in an
// Excel table. Numeric values are stored as numbers, everything else as text.
func (s *Worksheet) WriteTable(headers []string, rows [][]any) error {
	if s.wb.closed {
		return scanerrors.ErrWorkbookClosed
	}
	if len(headers) == 0 {
		return s.writeError("Table has no columns", nil)
	}

	f := s.wb.file
	header := make([]any, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := f.SetSheetRow(s.name, "A1", &header); err != nil {
		return s.writeError("Failed to write header row", err)
	}

	for i, row := range rows {
		if len(row) != len(headers) {
			return s.writeError(fmt.Sprintf("Row %d has %d cells, expected %d", i+1, len(row), len(headers)), nil)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return s.writeError("Invalid cell reference", err)
		}
		values := row
		if err := f.SetSheetRow(s.name, cell, &values); err != nil {
			return s.writeError("Failed to write row", err)
		}
	}

	// Excel tables need at least one body row, even an empty one.
	lastRow := len(rows) + 1
	if len(rows) == 0 {
		lastRow = 2
	}
	lastCell, err := excelize.CoordinatesToCellName(len(headers), lastRow)
	if err != nil {
		return s.writeError("Invalid cell reference", err)
	}
	if err := f.AddTable(s.name, &excelize.Table{
		Range:     "A1:" + lastCell,
		Name:      tableName(s.name),
		StyleName: s.wb.opts.TableStyle,
	}); err != nil {
		return s.writeError("Failed to add table", err)
	}

	if s.wb.opts.FreezeHeader {
		if err := f.SetPanes(s.name, &excelize.Panes{
			Freeze:      true,
			YSplit:      1,
			TopLeftCell: "A2",
			ActivePane:  "bottomLeft",
		}); err != nil {
			return s.writeError("Failed to freeze header row", err)
		}
	}

	if s.wb.opts.AutoFitColumns {
		if err := s.fitColumns(headers, rows); err != nil {
			return err
		}
	}

	return nil
}

func (s *Worksheet) fitColumns(headers []string, rows [][]any) error {
	for col, h := range headers {
		width := float64(utf8.RuneCountInString(h))
		for _, row := range rows {
			if w := float64(utf8.RuneCountInString(fmt.Sprint(row[col]))); w > width {
				width = w
			}
		}
		width += columnPadding
		width = min(max(width, minColumnWidth), maxColumnWidth)

		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return s.writeError("Invalid column", err)
		}
		if err := s.wb.file.SetColWidth(s.name, name, name, width); err != nil {
			return s.writeError("Failed to set column width", err)
		}
	}
	return nil
}

func (s *Worksheet) writeError(message string, err error) error {
	return scanerrors.WrapWorkbookError(scanerrors.CodeWorkbookWrite, message, s.wb.path, err).WithSheet(s.name)
}

// Close saves the workbook to disk. It must be called exactly once; later
// calls return errors.ErrWorkbookClosed.
func (w *Workbook) Close() error {
	if w.closed {
		return scanerrors.ErrWorkbookClosed
	}
	w.closed = true

	if len(w.sheets) > 0 {
		w.file.SetActiveSheet(0)
	}
	saveErr := w.file.SaveAs(w.path)
	closeErr := w.file.Close()
	if saveErr != nil {
		return scanerrors.ErrWorkbookClose(w.path, saveErr)
	}
	if closeErr != nil {
		return scanerrors.ErrWorkbookClose(w.path, closeErr)
	}
	return nil
}

// Discard releases the workbook without writing anything to disk.
func (w *Workbook) Discard() error {
	if w.closed {
		return nil
	}
	w.closed = true
	return w.file.Close()
}

// tableName derives an Excel table name from a sheet name: letters, digits
// and underscores only, starting with a letter or underscore.
func tableName(sheet string) string {
	var b strings.Builder
	for _, r := range sheet {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		}
	}
	name := b.String()
	if name == "" || (name[0] >= '0' && name[0] <= '9') {
		name = "_" + name
	}
	return name
}
