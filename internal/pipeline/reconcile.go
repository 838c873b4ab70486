package pipeline

import (
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sells-group/leadflow-cli/internal/model"
)

var titleCaser = cases.Title(language.English)

// ReconcileLeads turns raw lead tables into canonical lead records: per-table
// column classification, first-non-empty merge of duplicated contact columns,
// phone/email normalization, title-cased name and city, pruning of rows with
// no contact identity, then deduplication across the concatenation.
func ReconcileLeads(tables []*model.RawTable, minPhoneDigits int) []model.Lead {
	var leads []model.Lead

	for _, t := range tables {
		byRole := ClassifyColumns(t.Columns)

		for _, row := range t.Rows {
			lead := model.Lead{
				Name:         titleCaseName(firstNonEmpty(row, byRole[model.RoleName])),
				Email:        normalizeEmail(firstNonEmpty(row, byRole[model.RoleEmail])),
				Phone:        leadPhone(firstNonEmpty(row, byRole[model.RolePhone]), minPhoneDigits),
				City:         titleCaseName(firstNonEmpty(row, byRole[model.RoleCity])),
				OriginalFile: t.Source.Name,
				Employee:     t.Source.Employee,
			}
			if !lead.HasContact() {
				continue
			}
			leads = append(leads, lead)
		}

		zap.L().Debug("reconcile: processed leads table",
			zap.String("file", t.Source.Name),
			zap.Int("rows", len(t.Rows)),
		)
	}

	return DedupeLeads(leads)
}

// ReconcileUpdates turns raw update tables into canonical update records. The
// run timestamp is stamped onto every record; the source data carries no
// update time of its own.
func ReconcileUpdates(tables []*model.RawTable, minPhoneDigits int, runTime time.Time) []model.Update {
	var updates []model.Update

	for _, t := range tables {
		byRole := ClassifyColumns(t.Columns)
		updateCols := byRole[model.RoleUpdate]
		if len(updateCols) == 0 {
			// A progress file with no recognizable update columns still has
			// rows worth keeping: fall back to every non-contact column.
			updateCols = byRole[model.RoleOther]
		}

		for _, row := range t.Rows {
			u := model.Update{
				Name:         titleCaseName(firstNonEmpty(row, byRole[model.RoleName])),
				Email:        normalizeEmail(firstNonEmpty(row, byRole[model.RoleEmail])),
				Phone:        leadPhone(firstNonEmpty(row, byRole[model.RolePhone]), minPhoneDigits),
				City:         titleCaseName(firstNonEmpty(row, byRole[model.RoleCity])),
				UpdateText:   MergeUpdateColumns(row, updateCols),
				OriginalFile: t.Source.Name,
				Employee:     t.Source.Employee,
				Timestamp:    runTime,
			}
			updates = append(updates, u)
		}

		zap.L().Debug("reconcile: processed updates table",
			zap.String("file", t.Source.Name),
			zap.Int("rows", len(t.Rows)),
			zap.Strings("update_columns", updateCols),
		)
	}

	return DedupeUpdates(updates)
}

// firstNonEmpty returns the first non-empty cell among the given columns, in
// table column order. A row with both "Name" and "Full Name" populated takes
// whichever column the table lists first.
func firstNonEmpty(row model.Row, columns []string) string {
	for _, col := range columns {
		v := strings.TrimSpace(row[col])
		if !EmptyCell(v) {
			return v
		}
	}
	return ""
}

// leadPhone canonicalizes to international form and blanks values that fail
// validation. Lead and update records never carry a wrong-looking number.
func leadPhone(raw string, minDigits int) string {
	if raw == "" {
		return ""
	}
	p := CanonicalPhone(raw, model.PhoneInternational)
	if !ValidInternationalPhone(p, minDigits) {
		return ""
	}
	return p
}

// normalizeEmail trims and lower-cases an email, blanking values that fail a
// minimal shape check.
func normalizeEmail(raw string) string {
	e := strings.ToLower(strings.TrimSpace(raw))
	if EmptyCell(e) {
		return ""
	}
	if len(e) <= 5 || !strings.Contains(e, "@") || !strings.Contains(e, ".") {
		return ""
	}
	return e
}

func titleCaseName(s string) string {
	s = strings.TrimSpace(s)
	if EmptyCell(s) {
		return ""
	}
	return titleCaser.String(strings.ToLower(s))
}
