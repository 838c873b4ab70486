package fetcher

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/leadflow-cli/internal/model"
)

// LoadTable reads a source file into a raw table, dispatching on extension.
// The table's Source field is filled in by the caller.
func LoadTable(path string) (*model.RawTable, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ReadCSV(path, CSVOptions{})
	case ".xlsx", ".xls":
		// Legacy BIFF .xls is not readable by the OOXML parser; such files
		// fail at open and are skipped at the file level like any other
		// unreadable source.
		return ReadXLSX(path, XLSXOptions{})
	default:
		return nil, eris.Errorf("fetcher: unsupported file extension %q", filepath.Ext(path))
	}
}

// buildTable assembles a raw table from a header and string rows. Blank
// header cells get positional names so row maps never collide on "". Rows
// shorter than the header are padded with empty cells; longer rows are
// truncated.
func buildTable(header []string, rows [][]string) *model.RawTable {
	columns := make([]string, len(header))
	seen := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.TrimSpace(h)
		if name == "" {
			name = fmt.Sprintf("column_%d", i+1)
		}
		// Repeated headers get a numeric suffix so later columns stay
		// addressable.
		if n := seen[name]; n > 0 {
			seen[name] = n + 1
			name = fmt.Sprintf("%s_%d", name, n+1)
		} else {
			seen[name] = 1
		}
		columns[i] = name
	}

	t := &model.RawTable{Columns: columns}
	for _, raw := range rows {
		if emptyRow(raw) {
			continue
		}
		row := make(model.Row, len(columns))
		for i, col := range columns {
			if i < len(raw) {
				row[col] = raw[i]
			} else {
				row[col] = ""
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func emptyRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
