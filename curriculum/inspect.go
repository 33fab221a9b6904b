package curriculum

import (
	"fmt"
	"os"
)

const defaultPreviewRows = 5

// SheetStructure describes one sheet: its first row as headers, a
// handful of the following rows as a preview, and every data row in
// full.
type SheetStructure struct {
	Headers  []string   `json:"headers"`
	Preview  [][]string `json:"preview_data"`
	FullData [][]string `json:"full_data"`
	RowCount int        `json:"row_count"`
}

// Structure reports what a workbook looks like before a real parse is
// attempted. Single-sheet mode fills SheetName/Headers/Preview,
// all-sheets mode fills Sheets.
type Structure struct {
	Success   bool                      `json:"success"`
	Error     string                    `json:"error,omitempty"`
	SheetName string                    `json:"sheet_name,omitempty"`
	Headers   []string                  `json:"headers,omitempty"`
	Preview   [][]string                `json:"preview_data,omitempty"`
	FullData  [][]string                `json:"full_data,omitempty"`
	Sheets    map[string]SheetStructure `json:"sheets,omitempty"`
}

// GetStructure is the preflight inspection helper: it checks that the
// file exists and is non-empty, then previews sheetName (or every
// sheet when sheetName is ""), reading at most limitRows rows below
// the header. It never returns an error; failures come back flagged
// inside the Structure.
func GetStructure(path, sheetName string, limitRows int) Structure {
	if limitRows <= 0 {
		limitRows = defaultPreviewRows
	}

	stat, err := os.Stat(path)
	if os.IsNotExist(err) {
		return Structure{Success: false, Error: "file not found: " + path}
	}
	if err != nil {
		return Structure{Success: false, Error: err.Error()}
	}
	if stat.Size() == 0 {
		return Structure{Success: false, Error: "file is zero-size: " + path}
	}

	book, err := OpenWorkbook(path)
	if err != nil {
		return Structure{Success: false, Error: err.Error()}
	}
	defer book.Close()

	if sheetName != "" {
		if !hasSheet(book, sheetName) {
			return Structure{Success: false, Error: "no such sheet: " + sheetName}
		}
		preview, err := previewSheet(book, sheetName, limitRows)
		if err != nil {
			return Structure{Success: false, Error: err.Error()}
		}
		return Structure{
			Success:   true,
			SheetName: sheetName,
			Headers:   preview.Headers,
			Preview:   preview.Preview,
			FullData:  preview.FullData,
		}
	}

	sheets := map[string]SheetStructure{}
	for _, name := range book.SheetNames() {
		preview, err := previewSheet(book, name, limitRows)
		if err != nil {
			return Structure{Success: false, Error: fmt.Sprintf("sheet %q: %v", name, err)}
		}
		sheets[name] = preview
	}
	return Structure{Success: true, Sheets: sheets}
}

func previewSheet(book Workbook, name string, limitRows int) (SheetStructure, error) {
	grid, err := book.Sheet(name)
	if err != nil {
		return SheetStructure{}, err
	}

	s := SheetStructure{
		Headers:  []string{},
		Preview:  [][]string{},
		FullData: [][]string{},
		RowCount: len(grid),
	}
	if len(grid) > 0 {
		s.Headers = grid[0]
	}
	for i := 1; i < len(grid); i++ {
		s.FullData = append(s.FullData, grid[i])
		if i <= limitRows {
			s.Preview = append(s.Preview, grid[i])
		}
	}
	return s, nil
}
