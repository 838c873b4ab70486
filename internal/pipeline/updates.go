package pipeline

import (
	"strings"

	"github.com/sells-group/leadflow-cli/internal/model"
)

// updateSeparator joins the per-column fragments of a merged update string.
const updateSeparator = " | "

// emptyCellValues are literal strings that count as an empty cell. "nan" and
// "None" leak out of upstream exports that serialized missing values.
var emptyCellValues = map[string]bool{
	"":     true,
	"nan":  true,
	"none": true,
	"null": true,
}

// EmptyCell reports whether a cell value is empty after trimming.
func EmptyCell(v string) bool {
	return emptyCellValues[strings.ToLower(strings.TrimSpace(v))]
}

// MergeUpdateColumns folds a row's update columns into one audit string.
// Each non-empty cell contributes a "<column>: <value>" fragment in table
// column order, so provenance of which column said what survives the merge.
// A row with no fragments yields the "No updates" sentinel.
func MergeUpdateColumns(row model.Row, updateColumns []string) string {
	var fragments []string
	for _, col := range updateColumns {
		v := strings.TrimSpace(row[col])
		if EmptyCell(v) {
			continue
		}
		fragments = append(fragments, col+": "+v)
	}
	if len(fragments) == 0 {
		return model.NoUpdates
	}
	return strings.Join(fragments, updateSeparator)
}
