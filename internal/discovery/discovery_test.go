package discovery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/leadflow-cli/internal/model"
)

func TestCategorizeFile(t *testing.T) {
	tests := []struct {
		name string
		want model.FileKind
	}{
		{"leads_march.csv", model.KindLeads},
		{"Prospects 2024.xlsx", model.KindLeads},
		{"customer_list.csv", model.KindLeads},
		{"leads_updated.xlsx", model.KindUpdates},
		{"followup_week2.csv", model.KindUpdates},
		{"Status Report Jan.xlsx", model.KindUpdates},
		{"call_log.csv", model.KindCallLogs},
		{"dialer_report.xlsx", model.KindCallLogs},
		{"communication history.csv", model.KindCallLogs},
		{"misc.csv", model.KindLeads},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CategorizeFile(tt.name), "file %q", tt.name)
		})
	}
}

// "Status Report" matches both update and call-log keywords; update wins by
// check order since progress sheets outnumber dialer exports in practice.
func TestCategorizeFile_UpdateBeforeCallLog(t *testing.T) {
	assert.Equal(t, model.KindUpdates, CategorizeFile("status_report.csv"))
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	mk := func(parts ...string) {
		path := filepath.Join(append([]string{root}, parts...)...)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("x\n"), 0o644))
	}

	mk("kasun", "leads_week1.csv")
	mk("kasun", "call_logs", "dialer.xlsx")
	mk("data", "leads", "bulk_leads.csv")
	mk("orphan_leads.csv")
	mk("notes.txt") // not a spreadsheet

	files, err := Discover(root)
	require.NoError(t, err)
	require.Len(t, files, 4)

	byName := make(map[string]model.SourceFile, len(files))
	for _, f := range files {
		byName[f.Name] = f
	}

	assert.Equal(t, "Kasun", byName["leads_week1.csv"].Employee)
	// Generic folder names are skipped walking outwards.
	assert.Equal(t, "Kasun", byName["dialer.xlsx"].Employee)
	assert.Equal(t, model.UnknownName, byName["bulk_leads.csv"].Employee)
	assert.Equal(t, model.UnknownName, byName["orphan_leads.csv"].Employee)

	assert.Equal(t, model.KindCallLogs, byName["dialer.xlsx"].Kind)
	assert.Equal(t, model.KindLeads, byName["bulk_leads.csv"].Kind)

	// Sorted by path, the stable concatenation order downstream.
	for i := 1; i < len(files); i++ {
		assert.Less(t, files[i-1].Path, files[i].Path)
	}
}

func TestDiscover_MissingRoot(t *testing.T) {
	// An unreadable root is skipped rather than fatal; the run proceeds empty.
	files, err := Discover(filepath.Join(t.TempDir(), "does-not-exist"))
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestEmployeeFromPath(t *testing.T) {
	root := string(filepath.Separator) + "in"
	join := func(parts ...string) string {
		return filepath.Join(append([]string{root}, parts...)...)
	}

	assert.Equal(t, "Kasun Perera", employeeFromPath(root, join("kasun perera", "leads.csv")))
	assert.Equal(t, "Kasun", employeeFromPath(root, join("kasun", "updates", "file.csv")))
	assert.Equal(t, model.UnknownName, employeeFromPath(root, join("file.csv")))
	assert.Equal(t, model.UnknownName, employeeFromPath(root, join("data", "leads", "file.csv")))
	// Two-letter folders are initials or codes, not names.
	assert.Equal(t, model.UnknownName, employeeFromPath(root, join("jk", "file.csv")))
	assert.Equal(t, model.UnknownName, employeeFromPath(root, join(".hidden", "file.csv")))
}
