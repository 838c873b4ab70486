package pipeline

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/leadflow-cli/internal/model"
)

// keySeparator builds composite dedup keys. Unit separator cannot occur in
// cell values.
const keySeparator = "\x1f"

// DedupeLeads removes key-equal lead records, keeping the first occurrence in
// concatenation order. The key is (canonical phone, canonical email); records
// where both are empty never collide. Exact-row duplicates collapse under the
// same key because every keyed field is already normalized.
func DedupeLeads(leads []model.Lead) []model.Lead {
	seenExact := make(map[string]bool)
	seenKey := make(map[string]bool)
	out := make([]model.Lead, 0, len(leads))

	for _, l := range leads {
		exact := strings.Join([]string{l.Name, l.Email, l.Phone, l.City}, keySeparator)
		if seenExact[exact] {
			continue
		}
		seenExact[exact] = true

		if l.Phone != "" || l.Email != "" {
			key := l.Phone + keySeparator + l.Email
			if seenKey[key] {
				continue
			}
			seenKey[key] = true
		}
		out = append(out, l)
	}

	if removed := len(leads) - len(out); removed > 0 {
		zap.L().Info("dedupe: removed duplicate leads",
			zap.Int("original", len(leads)),
			zap.Int("kept", len(out)),
			zap.Int("removed", removed),
		)
	}
	return out
}

// DedupeUpdates removes duplicate update records by (name, phone, updateText),
// keep-first, after an exact-row pass.
func DedupeUpdates(updates []model.Update) []model.Update {
	seenExact := make(map[string]bool)
	seenKey := make(map[string]bool)
	out := make([]model.Update, 0, len(updates))

	for _, u := range updates {
		exact := strings.Join([]string{u.Name, u.Email, u.Phone, u.City, u.UpdateText}, keySeparator)
		if seenExact[exact] {
			continue
		}
		seenExact[exact] = true

		key := strings.Join([]string{u.Name, u.Phone, u.UpdateText}, keySeparator)
		if seenKey[key] {
			continue
		}
		seenKey[key] = true
		out = append(out, u)
	}

	if removed := len(updates) - len(out); removed > 0 {
		zap.L().Info("dedupe: removed duplicate updates",
			zap.Int("original", len(updates)),
			zap.Int("kept", len(out)),
			zap.Int("removed", removed),
		)
	}
	return out
}

// DedupeCallLogs removes exact full-row duplicates only. Repeated identical
// calls at different timestamps are legitimate distinct events, so there is
// no key-based pass for call logs.
func DedupeCallLogs(calls []model.CallLog) []model.CallLog {
	seen := make(map[string]bool)
	out := make([]model.CallLog, 0, len(calls))

	for _, c := range calls {
		ts := ""
		if c.Timestamp != nil {
			ts = c.Timestamp.Format("2006-01-02 15:04:05")
		}
		parts := []string{c.Phone, c.RawPhone, c.Name, ts, c.TimeOfDay}
		for _, col := range sortedKeys(c.Passthrough) {
			parts = append(parts, col, c.Passthrough[col])
		}
		key := strings.Join(parts, keySeparator)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, c)
	}

	if removed := len(calls) - len(out); removed > 0 {
		zap.L().Info("dedupe: removed exact duplicate call records",
			zap.Int("original", len(calls)),
			zap.Int("kept", len(out)),
			zap.Int("removed", removed),
		)
	}
	return out
}

func sortedKeys(row model.Row) []string {
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
