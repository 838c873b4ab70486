package model

import "time"

// SourceFile is one discovered spreadsheet export.
type SourceFile struct {
	Path     string
	Name     string // base name, used as original_file on every record
	Kind     FileKind
	Employee string // nearest non-generic parent directory, title-cased
}

// Row maps a column name to its cell value. Cells are strings; numeric
// spreadsheet cells arrive already rendered by the reader.
type Row map[string]string

// RawTable is the row-oriented contents of one source file. Column order is
// preserved from the file so downstream merging stays deterministic.
type RawTable struct {
	Source  SourceFile
	Columns []string
	Rows    []Row
}

// Lead is a canonical lead record. At least one of Name/Email/Phone/City is
// non-empty; rows failing that are dropped during reconciliation.
type Lead struct {
	Name         string
	Email        string
	Phone        string // international form, empty if invalid
	City         string
	OriginalFile string
	Employee     string
}

// HasContact reports whether the record carries any contact identity.
func (l Lead) HasContact() bool {
	return l.Name != "" || l.Email != "" || l.Phone != "" || l.City != ""
}

// NoUpdates is the sentinel update text for rows whose update columns were
// all empty.
const NoUpdates = "No updates"

// Update is one follow-up row with its update columns folded into a single
// audit string. Timestamp is the processing run's time; the source data
// carries no independent update time.
type Update struct {
	Name         string
	Email        string
	Phone        string
	City         string
	UpdateText   string
	OriginalFile string
	Employee     string
	Timestamp    time.Time
}

// UnknownName is the fallback name for call groups with no usable name.
const UnknownName = "Unknown"

// CallLog is one cleaned call event. Timestamp is nil when the source value
// did not parse; the row is still retained.
type CallLog struct {
	Phone           string // international form
	RawPhone        string // value as found in the source
	Name            string
	Timestamp       *time.Time
	TimeOfDay       string // original time-of-day field, verbatim
	DurationSeconds int
	DurationParsed  bool // false when the duration value could not be parsed
	OriginalFile    string
	Employee        string
	Passthrough     Row // original non-contact columns, kept for the report
}

// CallAnalysis is the per-phone aggregate over all cleaned call events.
// Recomputed each run, never mutated in place.
type CallAnalysis struct {
	Phone                 string
	Name                  string
	CallCount             int
	TotalDurationSeconds  int
	AvgTimePerCallSeconds float64 // denominator counts only positive durations
	AvgGapDays            float64
	MinGapDays            float64
	MaxGapDays            float64
	FirstCall             *time.Time
	LastCall              *time.Time
	DistinctCallDays      int
	Timeline              []string // "YYYY-MM-DD <time>", chronological
}

// Result bundles the canonical tables produced by one run.
type Result struct {
	Leads       []Lead
	Updates     []Update
	CallLogs    []CallLog
	CallColumns []string // passthrough column order for the call-log report
	Analyses    []CallAnalysis
	RunTime     time.Time
}

// Employees returns the distinct employee names across all tables.
func (r *Result) Employees() []string {
	seen := make(map[string]bool)
	var out []string
	add := func(e string) {
		if e != "" && !seen[e] {
			seen[e] = true
			out = append(out, e)
		}
	}
	for _, l := range r.Leads {
		add(l.Employee)
	}
	for _, u := range r.Updates {
		add(u.Employee)
	}
	for _, c := range r.CallLogs {
		add(c.Employee)
	}
	return out
}
