// Package pipeline implements the reconciliation batch: column role
// classification, phone/duration normalization, deduplication, per-phone call
// aggregation, and report assembly.
package pipeline

import (
	"regexp"
	"strings"

	"github.com/sells-group/leadflow-cli/internal/model"
)

// rolePatterns maps a role to the header substrings that select it. Matching
// is substring-based on the trimmed, lower-cased header. Order inside a slice
// is irrelevant; precedence between roles is fixed by roleOrder.
var rolePatterns = map[model.ColumnRole][]string{
	model.RoleName:   {"name", "fullname", "full name", "first name", "contact name", "person"},
	model.RoleEmail:  {"email", "e-mail", "mail"},
	model.RolePhone:  {"phone", "mobile", "number", "contact", "tel", "telephone"},
	model.RoleCity:   {"city", "town", "location", "area", "district"},
	model.RoleUpdate: {"update", "followup", "follow up", "status", "remark", "comment", "note", "call", "follow", "weekend"},
}

// roleOrder fixes matching precedence. A header like "contact" satisfies both
// the Name and Phone lists; the first matching role wins, so "contact name"
// is a Name and a bare "contact" falls through Name to Phone.
var roleOrder = []model.ColumnRole{
	model.RoleName,
	model.RoleEmail,
	model.RolePhone,
	model.RoleCity,
	model.RoleUpdate,
}

// ordinalUpdatePattern catches numbered follow-up headers that carry no
// keyword from the Update list, e.g. "1st attempt" or "second try".
var ordinalUpdatePattern = regexp.MustCompile(`\b(\d+(st|nd|rd|th)|first|second|third)\b`)

// ClassifyColumn assigns a semantic role to a raw column header. It is a pure
// function of the trimmed, lower-cased header text.
func ClassifyColumn(header string) model.ColumnRole {
	h := strings.ToLower(strings.TrimSpace(header))
	if h == "" {
		return model.RoleOther
	}

	for _, role := range roleOrder {
		for _, pattern := range rolePatterns[role] {
			if strings.Contains(h, pattern) {
				return role
			}
		}
	}

	if ordinalUpdatePattern.MatchString(h) {
		return model.RoleUpdate
	}

	return model.RoleOther
}

// ClassifyColumns maps every column of a table to its role, preserving table
// column order within each role.
func ClassifyColumns(columns []string) map[model.ColumnRole][]string {
	byRole := make(map[model.ColumnRole][]string)
	for _, col := range columns {
		role := ClassifyColumn(col)
		byRole[role] = append(byRole[role], col)
	}
	return byRole
}
