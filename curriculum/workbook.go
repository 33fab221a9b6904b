package curriculum

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// Grid is one sheet rendered to rows of text cells. Numbers and dates
// come out as their display strings, blank cells as "". Rows may be
// ragged; use Cell for bounds-safe access.
type Grid [][]string

func (g Grid) Cell(row, col int) string {
	if row < 0 || row >= len(g) {
		return ""
	}
	return cellAt(g[row], col)
}

func cellAt(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

// Workbook is a multi-sheet tabular document opened from disk.
type Workbook interface {
	SheetNames() []string
	Sheet(name string) (Grid, error)
	Close() error
}

// OpenWorkbook opens path as a workbook, picking the backend by
// extension: .xls goes through the legacy BIFF reader, everything
// else through excelize.
func OpenWorkbook(path string) (Workbook, error) {
	if strings.ToLower(filepath.Ext(path)) == ".xls" {
		return openXLS(path)
	}
	return openXLSX(path)
}

type xlsxWorkbook struct {
	f *excelize.File
}

func openXLSX(path string) (Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "workbook open")
	}
	return &xlsxWorkbook{f: f}, nil
}

func (w *xlsxWorkbook) SheetNames() []string {
	return w.f.GetSheetList()
}

func (w *xlsxWorkbook) Sheet(name string) (Grid, error) {
	rows, err := w.f.GetRows(name)
	if err != nil {
		return nil, errors.Wrap(err, "sheet read")
	}
	grid := make(Grid, len(rows))
	for i, row := range rows {
		grid[i] = row
	}
	return grid, nil
}

func (w *xlsxWorkbook) Close() error {
	return w.f.Close()
}

type xlsWorkbook struct {
	book   *xls.WorkBook
	closer io.Closer
}

func openXLS(path string) (Workbook, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "workbook open")
	}
	book, err := xls.OpenReader(f, "utf-8")
	if err != nil {
		f.Close()
		return nil, errors.Wrap(err, "workbook open")
	}
	return &xlsWorkbook{book: book, closer: f}, nil
}

func (w *xlsWorkbook) SheetNames() []string {
	names := make([]string, 0, w.book.NumSheets())
	for i := 0; i < w.book.NumSheets(); i++ {
		names = append(names, w.book.GetSheet(i).Name)
	}
	return names
}

func (w *xlsWorkbook) Sheet(name string) (Grid, error) {
	for i := 0; i < w.book.NumSheets(); i++ {
		sheet := w.book.GetSheet(i)
		if sheet.Name != name {
			continue
		}
		grid := make(Grid, 0, int(sheet.MaxRow)+1)
		for r := 0; r <= int(sheet.MaxRow); r++ {
			row := sheet.Row(r)
			if row == nil {
				grid = append(grid, nil)
				continue
			}
			cells := make([]string, row.LastCol())
			for c := row.FirstCol(); c < row.LastCol(); c++ {
				cells[c] = row.Col(c)
			}
			grid = append(grid, cells)
		}
		return grid, nil
	}
	return nil, errors.New("no such sheet: " + name)
}

func (w *xlsWorkbook) Close() error {
	return w.closer.Close()
}

func hasSheet(book Workbook, name string) bool {
	for _, n := range book.SheetNames() {
		if n == name {
			return true
		}
	}
	return false
}
