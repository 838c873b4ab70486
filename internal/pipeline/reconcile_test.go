package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/leadflow-cli/internal/model"
)

func leadsTable(name string, columns []string, rows []model.Row) *model.RawTable {
	return &model.RawTable{
		Source: model.SourceFile{
			Path:     "/data/nimal/" + name,
			Name:     name,
			Kind:     model.KindLeads,
			Employee: "Nimal",
		},
		Columns: columns,
		Rows:    rows,
	}
}

func TestReconcileLeads(t *testing.T) {
	table := leadsTable("leads_week1.csv",
		[]string{"Full Name", "Email", "Phone", "City"},
		[]model.Row{
			{"Full Name": "amal PERERA", "Email": "Amal@Example.COM", "Phone": "0771234567", "City": "colombo"},
			{"Full Name": "nan", "Email": "", "Phone": "", "City": "None"},
			{"Full Name": "Bad Phone", "Email": "bad@example.com", "Phone": "123"},
		},
	)

	leads := ReconcileLeads([]*model.RawTable{table}, 9)
	require.Len(t, leads, 2)

	assert.Equal(t, "Amal Perera", leads[0].Name)
	assert.Equal(t, "amal@example.com", leads[0].Email)
	assert.Equal(t, "94771234567", leads[0].Phone)
	assert.Equal(t, "Colombo", leads[0].City)
	assert.Equal(t, "leads_week1.csv", leads[0].OriginalFile)
	assert.Equal(t, "Nimal", leads[0].Employee)

	// Invalid phone is blanked; the email keeps the row alive.
	assert.Equal(t, "", leads[1].Phone)
	assert.Equal(t, "bad@example.com", leads[1].Email)
}

// A row is pruned only when every contact field is empty; any single one,
// city included, keeps it.
func TestReconcileLeads_AnyContactFieldKeepsRow(t *testing.T) {
	table := leadsTable("leads.csv",
		[]string{"Full Name", "Email", "Phone", "City"},
		[]model.Row{
			{"Full Name": "", "Email": "", "Phone": "", "City": "Kandy"},
			{"Full Name": "", "Email": "", "Phone": "", "City": ""},
		},
	)

	leads := ReconcileLeads([]*model.RawTable{table}, 9)
	require.Len(t, leads, 1)
	assert.Equal(t, "Kandy", leads[0].City)
	assert.Equal(t, "", leads[0].Name)
}

// When a table carries two name-role columns the first populated one wins, in
// table column order.
func TestReconcileLeads_FirstNonEmptyMerge(t *testing.T) {
	table := leadsTable("leads.csv",
		[]string{"Name", "Full Name", "Phone"},
		[]model.Row{
			{"Name": "", "Full Name": "from second column", "Phone": "0771234567"},
			{"Name": "from first column", "Full Name": "ignored", "Phone": "0772222222"},
		},
	)

	leads := ReconcileLeads([]*model.RawTable{table}, 9)
	require.Len(t, leads, 2)
	assert.Equal(t, "From Second Column", leads[0].Name)
	assert.Equal(t, "From First Column", leads[1].Name)
}

func TestReconcileLeads_DedupesAcrossTables(t *testing.T) {
	a := leadsTable("a.csv", []string{"Name", "Phone"},
		[]model.Row{{"Name": "Amal", "Phone": "0771234567"}})
	b := leadsTable("b.csv", []string{"Name", "Phone"},
		[]model.Row{{"Name": "Amal", "Phone": "+94 77 123 4567"}})

	leads := ReconcileLeads([]*model.RawTable{a, b}, 9)
	require.Len(t, leads, 1)
	assert.Equal(t, "a.csv", leads[0].OriginalFile)
}

func TestReconcileUpdates(t *testing.T) {
	runTime := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	table := &model.RawTable{
		Source:  model.SourceFile{Name: "updates.csv", Kind: model.KindUpdates, Employee: "Kasun"},
		Columns: []string{"Name", "Phone", "Call 1", "Call 2"},
		Rows: []model.Row{
			{"Name": "amal", "Phone": "0771234567", "Call 1": "no answer", "Call 2": "interested"},
			{"Name": "nimal", "Phone": "0772222222", "Call 1": "", "Call 2": ""},
		},
	}

	updates := ReconcileUpdates([]*model.RawTable{table}, 9, runTime)
	require.Len(t, updates, 2)

	assert.Equal(t, "Amal", updates[0].Name)
	assert.Equal(t, "Call 1: no answer | Call 2: interested", updates[0].UpdateText)
	assert.Equal(t, runTime, updates[0].Timestamp)
	assert.Equal(t, "Kasun", updates[0].Employee)

	// A progress row with every update cell empty still records the sentinel.
	assert.Equal(t, model.NoUpdates, updates[1].UpdateText)
}

// A table with no recognizable update columns falls back to the unclassified
// columns so the progress text is not lost.
func TestReconcileUpdates_FallbackColumns(t *testing.T) {
	table := &model.RawTable{
		Source:  model.SourceFile{Name: "progress.csv", Kind: model.KindUpdates},
		Columns: []string{"Name", "Phone", "Week 12"},
		Rows: []model.Row{
			{"Name": "Amal", "Phone": "0771234567", "Week 12": "meeting booked"},
		},
	}

	updates := ReconcileUpdates([]*model.RawTable{table}, 9, time.Now())
	require.Len(t, updates, 1)
	assert.Equal(t, "Week 12: meeting booked", updates[0].UpdateText)
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "amal@example.com", normalizeEmail(" Amal@Example.com "))
	assert.Equal(t, "", normalizeEmail("nan"))
	assert.Equal(t, "", normalizeEmail("a@b"), "too short, no dot")
	assert.Equal(t, "", normalizeEmail("not-an-email"))
}

func TestTitleCaseName(t *testing.T) {
	assert.Equal(t, "Amal Perera", titleCaseName("AMAL PERERA"))
	assert.Equal(t, "Amal Perera", titleCaseName("amal perera"))
	assert.Equal(t, "", titleCaseName("nan"))
	assert.Equal(t, "", titleCaseName("  "))
}
