package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/leadflow-cli/internal/model"
)

func TestMergeUpdateColumns(t *testing.T) {
	row := model.Row{
		"call 1":    "no answer",
		"call 2":    "  interested  ",
		"follow up": "",
	}

	got := MergeUpdateColumns(row, []string{"call 1", "call 2", "follow up"})
	assert.Equal(t, "call 1: no answer | call 2: interested", got)
}

func TestMergeUpdateColumns_SingleFragment(t *testing.T) {
	row := model.Row{"call 1": "busy", "call 2": ""}

	got := MergeUpdateColumns(row, []string{"call 1", "call 2"})
	assert.Equal(t, "call 1: busy", got)
}

func TestMergeUpdateColumns_AllEmpty(t *testing.T) {
	row := model.Row{"call 1": "", "call 2": "nan", "call 3": "None"}

	got := MergeUpdateColumns(row, []string{"call 1", "call 2", "call 3"})
	assert.Equal(t, model.NoUpdates, got)
}

// Fragment order follows the column order the caller passes, which is table
// column order, so the audit trail reads in source order.
func TestMergeUpdateColumns_OrderFollowsColumns(t *testing.T) {
	row := model.Row{"b": "2", "a": "1"}

	assert.Equal(t, "b: 2 | a: 1", MergeUpdateColumns(row, []string{"b", "a"}))
	assert.Equal(t, "a: 1 | b: 2", MergeUpdateColumns(row, []string{"a", "b"}))
}

func TestEmptyCell(t *testing.T) {
	assert.True(t, EmptyCell(""))
	assert.True(t, EmptyCell("  "))
	assert.True(t, EmptyCell("nan"))
	assert.True(t, EmptyCell("NaN"))
	assert.True(t, EmptyCell("None"))
	assert.True(t, EmptyCell("null"))
	assert.False(t, EmptyCell("0"))
	assert.False(t, EmptyCell("n/a interested"))
}
