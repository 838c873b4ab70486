package fetcher

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSV(t *testing.T) {
	in := "Name, Phone ,Email\n" +
		"Amal,0771234567,amal@example.com\n" +
		"Nimal,0772222222\n"

	table, err := parseCSV(strings.NewReader(in), CSVOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{"Name", "Phone", "Email"}, table.Columns)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "amal@example.com", table.Rows[0]["Email"])
	// Short row is padded to the header.
	assert.Equal(t, "", table.Rows[1]["Email"])
}

func TestParseCSV_SkipsEmptyRows(t *testing.T) {
	in := "Name,Phone\n" +
		"Amal,0771234567\n" +
		",\n" +
		"Nimal,0772222222\n"

	table, err := parseCSV(strings.NewReader(in), CSVOptions{})
	require.NoError(t, err)
	assert.Len(t, table.Rows, 2)
}

func TestParseCSV_CustomDelimiter(t *testing.T) {
	table, err := parseCSV(strings.NewReader("Name;Phone\nAmal;0771234567\n"), CSVOptions{Delimiter: ';'})
	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "Phone"}, table.Columns)
	assert.Equal(t, "0771234567", table.Rows[0]["Phone"])
}

func TestParseCSV_EmptyFile(t *testing.T) {
	_, err := parseCSV(strings.NewReader(""), CSVOptions{})
	assert.Error(t, err)
}

func TestReadCSV_MissingFile(t *testing.T) {
	_, err := ReadCSV(filepath.Join(t.TempDir(), "missing.csv"), CSVOptions{})
	assert.Error(t, err)
}

func TestLoadTable_DispatchesOnExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "leads.csv")
	require.NoError(t, os.WriteFile(path, []byte("Name,Phone\nAmal,0771234567\n"), 0o644))

	table, err := LoadTable(path)
	require.NoError(t, err)
	assert.Len(t, table.Rows, 1)

	_, err = LoadTable(filepath.Join(dir, "notes.txt"))
	assert.Error(t, err)
}
