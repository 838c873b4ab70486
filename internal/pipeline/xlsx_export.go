package pipeline

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/leadflow-cli/internal/model"
)

// WriteWorkbook writes the canonical tables into a single Excel workbook,
// one sheet per non-empty table, for consumers who review the run in a
// spreadsheet instead of the CSVs.
func WriteWorkbook(dir string, res *model.Result) error {
	f := xlsx.NewFile()

	if len(res.Leads) > 0 {
		rows := make([][]string, 0, len(res.Leads))
		for _, l := range res.Leads {
			rows = append(rows, []string{l.Name, l.Email, l.Phone, l.City, l.OriginalFile, l.Employee})
		}
		if err := addSheet(f, "Leads",
			[]string{"name", "email", "phone", "city", "original_file", "employee"}, rows); err != nil {
			return err
		}
	}

	if len(res.Updates) > 0 {
		rows := make([][]string, 0, len(res.Updates))
		for _, u := range res.Updates {
			rows = append(rows, []string{
				u.Name, u.Email, u.Phone, u.City, u.UpdateText,
				u.OriginalFile, u.Employee, u.Timestamp.Format("2006-01-02 15:04:05"),
			})
		}
		if err := addSheet(f, "Updates",
			[]string{"name", "email", "phone", "city", "update_text", "original_file", "employee", "timestamp"}, rows); err != nil {
			return err
		}
	}

	if len(res.Analyses) > 0 {
		rows := make([][]string, 0, len(res.Analyses))
		for _, a := range res.Analyses {
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
		if err := addSheet(f, "Call Analysis", analysisColumns, rows); err != nil {
			return err
		}
	}

	if len(f.Sheets) == 0 {
		return nil
	}

	path := filepath.Join(dir, "lead_analysis.xlsx")
	if err := f.Save(path); err != nil {
		return eris.Wrap(err, "xlsx export: save workbook")
	}
	return nil
}

func addSheet(f *xlsx.File, name string, columns []string, rows [][]string) error {
	sheet, err := f.AddSheet(name)
	if err != nil {
		return eris.Wrapf(err, "xlsx export: add sheet %s", name)
	}

	header := sheet.AddRow()
	for _, col := range columns {
		header.AddCell().Value = col
	}
	for _, row := range rows {
		r := sheet.AddRow()
		for _, cell := range row {
			r.AddCell().Value = cell
		}
	}
	return nil
}
