package pipeline

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/leadflow-cli/internal/model"
)

// Report file names, fixed.
const (
	LeadsReportFile       = "cleaned_leads.csv"
	UpdatesReportFile     = "cleaned_updates.csv"
	CallLogsReportFile    = "cleaned_call_logs.csv"
	AnalysisReportFile    = "call_analysis_table.csv"
	PerformanceReportFile = "overall_performance.csv"
)

// timelineSeparator joins the per-call timeline entries in the analysis table.
const timelineSeparator = " | "

// analysisColumns is the ordered column set of call_analysis_table.csv.
var analysisColumns = []string{
	"phone",
	"name",
	"no_of_times_called",
	"total_time_spent",
	"avg_time_per_call",
	"avg_gap_between_calls",
	"min_gap_between_calls",
	"max_gap_between_calls",
	"first_call_date",
	"last_call_date",
	"total_call_days",
	"dates_times_called",
}

// WriteReports writes the canonical tables as CSV files into dir. Empty
// tables are skipped except overall_performance, which is always written.
// Any write failure is fatal: silent data loss is unacceptable here.
func WriteReports(dir string, res *model.Result) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return eris.Wrap(err, "report: create output directory")
	}

	if len(res.Leads) > 0 {
		if err := writeLeadsReport(filepath.Join(dir, LeadsReportFile), res.Leads); err != nil {
			return err
		}
	}
	if len(res.Updates) > 0 {
		if err := writeUpdatesReport(filepath.Join(dir, UpdatesReportFile), res.Updates); err != nil {
			return err
		}
	}
	if len(res.CallLogs) > 0 {
		if err := writeCallLogsReport(filepath.Join(dir, CallLogsReportFile), res.CallLogs, res.CallColumns); err != nil {
			return err
		}
	}
	if len(res.Analyses) > 0 {
		if err := writeAnalysisReport(filepath.Join(dir, AnalysisReportFile), res.Analyses); err != nil {
			return err
		}
	}
	if err := writePerformanceReport(filepath.Join(dir, PerformanceReportFile), res); err != nil {
		return err
	}

	zap.L().Info("report: wrote output tables",
		zap.String("dir", dir),
		zap.Int("leads", len(res.Leads)),
		zap.Int("updates", len(res.Updates)),
		zap.Int("call_logs", len(res.CallLogs)),
		zap.Int("analyses", len(res.Analyses)),
	)
	return nil
}

func writeLeadsReport(path string, leads []model.Lead) error {
	columns := []string{"name", "email", "phone"}
	withCity := anyLeadCity(leads)
	if withCity {
		columns = append(columns, "city")
	}
	columns = append(columns, "original_file", "employee")

	rows := make([][]string, 0, len(leads))
	for _, l := range leads {
		row := []string{l.Name, l.Email, l.Phone}
		if withCity {
			row = append(row, l.City)
		}
		row = append(row, l.OriginalFile, l.Employee)
		rows = append(rows, row)
	}
	return writeCSV(path, columns, rows)
}

func writeUpdatesReport(path string, updates []model.Update) error {
	columns := []string{"name", "email", "phone"}
	withCity := anyUpdateCity(updates)
	if withCity {
		columns = append(columns, "city")
	}
	columns = append(columns, "update_text", "original_file", "employee", "timestamp")

	rows := make([][]string, 0, len(updates))
	for _, u := range updates {
		row := []string{u.Name, u.Email, u.Phone}
		if withCity {
			row = append(row, u.City)
		}
		row = append(row,
			u.UpdateText,
			u.OriginalFile,
			u.Employee,
			u.Timestamp.Format("2006-01-02 15:04:05"),
		)
		rows = append(rows, row)
	}
	return writeCSV(path, columns, rows)
}

func writeCallLogsReport(path string, calls []model.CallLog, passthrough []string) error {
	columns := append([]string{"phone", "phone_cleaned", "name", "original_file", "employee"}, passthrough...)

	rows := make([][]string, 0, len(calls))
	for _, c := range calls {
		row := []string{c.RawPhone, c.Phone, c.Name, c.OriginalFile, c.Employee}
		for _, col := range passthrough {
			row = append(row, c.Passthrough[col])
		}
		rows = append(rows, row)
	}
	return writeCSV(path, columns, rows)
}

func writeAnalysisReport(path string, analyses []model.CallAnalysis) error {
	rows := make([][]string, 0, len(analyses))
	for _, a := range analyses {
		rows = append(rows, []string{
			a.Phone,
			a.Name,
			fmt.Sprintf("%d", a.CallCount),
			FormatDuration(a.TotalDurationSeconds),
			FormatDuration(int(a.AvgTimePerCallSeconds)),
			fmt.Sprintf("%.2f", a.AvgGapDays),
			fmt.Sprintf("%.2f", a.MinGapDays),
			fmt.Sprintf("%.2f", a.MaxGapDays),
			formatCallDate(a.FirstCall),
			formatCallDate(a.LastCall),
			fmt.Sprintf("%d", a.DistinctCallDays),
			strings.Join(a.Timeline, timelineSeparator),
		})
	}
	return writeCSV(path, analysisColumns, rows)
}

// writePerformanceReport emits the metric/value summary. Employee count is
// attributed from leads; the contact rate is distinct update phones over
// total leads.
func writePerformanceReport(path string, res *model.Result) error {
	rows := [][]string{
		{"Total Leads", fmt.Sprintf("%d", len(res.Leads))},
		{"Total Updates", fmt.Sprintf("%d", len(res.Updates))},
		{"Total Call Logs", fmt.Sprintf("%d", len(res.CallLogs))},
	}

	if len(res.Leads) > 0 {
		employees := make(map[string]bool)
		for _, l := range res.Leads {
			if l.Employee != "" {
				employees[l.Employee] = true
			}
		}
		rows = append(rows, []string{"Total Employees", fmt.Sprintf("%d", len(employees))})
	}

	if len(res.Leads) > 0 && len(res.Updates) > 0 {
		contacted := make(map[string]bool)
		for _, u := range res.Updates {
			if u.Phone != "" {
				contacted[u.Phone] = true
			}
		}
		rate := float64(len(contacted)) / float64(len(res.Leads)) * 100
		rows = append(rows, []string{"Contact Rate", fmt.Sprintf("%.1f%%", rate)})
	}

	return writeCSV(path, []string{"Metric", "Value"}, rows)
}

func writeCSV(path string, columns []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "report: create %s", filepath.Base(path))
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(columns); err != nil {
		return eris.Wrapf(err, "report: write header of %s", filepath.Base(path))
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return eris.Wrapf(err, "report: write row of %s", filepath.Base(path))
		}
	}
	w.Flush()
	return eris.Wrapf(w.Error(), "report: flush %s", filepath.Base(path))
}

func formatCallDate(t *time.Time) string {
	if t == nil {
		return "Unknown"
	}
	return t.Format("2006-01-02 15:04:05")
}

func anyLeadCity(leads []model.Lead) bool {
	for _, l := range leads {
		if l.City != "" {
			return true
		}
	}
	return false
}

func anyUpdateCity(updates []model.Update) bool {
	for _, u := range updates {
		if u.City != "" {
			return true
		}
	}
	return false
}
