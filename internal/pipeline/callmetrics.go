package pipeline

import (
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/leadflow-cli/internal/model"
)

// CallLogOptions configures call-log cleaning.
type CallLogOptions struct {
	// MinPhoneDigits gates a row into the aggregates. Default is the same
	// 9-digit minimum ValidInternationalPhone falls back to.
	MinPhoneDigits int
	// TimeLayouts are tried in order when parsing the timestamp column.
	TimeLayouts []string
}

// DefaultTimeLayouts covers the timestamp shapes observed across call-log
// exports.
func DefaultTimeLayouts() []string {
	return []string{
		"2006-01-02 15:04:05",
		"2006-01-02 15:04",
		"2006-01-02T15:04:05",
		"2006-01-02",
		"01/02/2006 15:04:05",
		"01/02/2006 15:04",
		"01/02/2006",
		"02-01-2006 15:04:05",
		time.RFC3339,
	}
}

// timestampKeywords and durationKeywords drive the heuristic column lookup
// for call-log tables, which rarely share a schema across dialer exports.
var (
	timestampKeywords = []string{"date", "time", "timestamp"}
	durationKeywords  = []string{"duration", "call time", "length"}
)

// CleanCallLogs normalizes raw call-log tables into call events. Rows without
// a destination number, or whose number fails canonicalization or the minimum
// length, are dropped. Unparseable timestamps become nil with the row kept;
// unparseable durations become 0 with DurationParsed=false. The returned
// column list is the union of passthrough columns in first-seen order, for
// the cleaned call-log report.
func CleanCallLogs(tables []*model.RawTable, opts CallLogOptions) ([]model.CallLog, []string) {
	if opts.MinPhoneDigits <= 0 {
		opts.MinPhoneDigits = minValidDigits
	}
	layouts := opts.TimeLayouts
	if len(layouts) == 0 {
		layouts = DefaultTimeLayouts()
	}

	var calls []model.CallLog
	var passthrough []string
	seenCol := make(map[string]bool)

	for _, t := range tables {
		byRole := ClassifyColumns(t.Columns)
		phoneCols := byRole[model.RolePhone]
		nameCols := byRole[model.RoleName]
		tsCol := findTimestampColumn(t, layouts)
		durCol := findDurationColumn(t)
		todCol := findTimeOfDayColumn(t.Columns, tsCol)

		if len(phoneCols) == 0 {
			zap.L().Warn("callmetrics: table has no destination-number column, skipping",
				zap.String("file", t.Source.Name),
			)
			continue
		}

		passCols := passthroughColumns(t.Columns, phoneCols, nameCols)
		for _, col := range passCols {
			if !seenCol[col] {
				seenCol[col] = true
				passthrough = append(passthrough, col)
			}
		}

		kept, dropped := 0, 0
		for _, row := range t.Rows {
			rawPhone := firstNonEmpty(row, phoneCols)
			if rawPhone == "" {
				dropped++
				continue
			}
			phone := CanonicalPhone(rawPhone, model.PhoneInternational)
			if !ValidInternationalPhone(phone, opts.MinPhoneDigits) {
				dropped++
				continue
			}

			call := model.CallLog{
				Phone:        phone,
				RawPhone:     rawPhone,
				Name:         firstNonEmpty(row, nameCols),
				OriginalFile: t.Source.Name,
				Employee:     t.Source.Employee,
				Passthrough:  make(model.Row, len(passCols)),
			}
			if tsCol != "" {
				call.Timestamp = parseTimestamp(row[tsCol], layouts)
			}
			if todCol != "" {
				call.TimeOfDay = strings.TrimSpace(row[todCol])
			}
			if durCol != "" {
				call.DurationSeconds, call.DurationParsed = ParseDuration(row[durCol])
			}
			for _, col := range passCols {
				call.Passthrough[col] = row[col]
			}

			calls = append(calls, call)
			kept++
		}

		zap.L().Info("callmetrics: cleaned call-log table",
			zap.String("file", t.Source.Name),
			zap.Int("kept", kept),
			zap.Int("dropped", dropped),
		)
	}

	return DedupeCallLogs(calls), passthrough
}

// AggregateCalls groups cleaned call events by canonical phone and computes
// the per-phone analysis. Group order follows first occurrence in the event
// stream, which itself follows stable discovery order.
func AggregateCalls(calls []model.CallLog) []model.CallAnalysis {
	groups := make(map[string][]model.CallLog)
	var order []string
	for _, c := range calls {
		if _, ok := groups[c.Phone]; !ok {
			order = append(order, c.Phone)
		}
		groups[c.Phone] = append(groups[c.Phone], c)
	}

	analyses := make([]model.CallAnalysis, 0, len(order))
	for _, phone := range order {
		analyses = append(analyses, analyzeGroup(phone, groups[phone]))
	}

	zap.L().Info("callmetrics: aggregated call events",
		zap.Int("events", len(calls)),
		zap.Int("phones", len(analyses)),
	)
	return analyses
}

func analyzeGroup(phone string, group []model.CallLog) model.CallAnalysis {
	a := model.CallAnalysis{
		Phone:     phone,
		Name:      majorityName(group),
		CallCount: len(group),
	}

	positive := 0
	for _, c := range group {
		a.TotalDurationSeconds += c.DurationSeconds
		if c.DurationSeconds > 0 {
			positive++
		}
	}
	if positive > 0 {
		a.AvgTimePerCallSeconds = float64(a.TotalDurationSeconds) / float64(positive)
	}

	var stamps []time.Time
	for _, c := range group {
		if c.Timestamp != nil {
			stamps = append(stamps, *c.Timestamp)
		}
	}
	sort.Slice(stamps, func(i, j int) bool { return stamps[i].Before(stamps[j]) })

	if len(stamps) > 0 {
		first, last := stamps[0], stamps[len(stamps)-1]
		a.FirstCall = &first
		a.LastCall = &last

		days := make(map[string]bool, len(stamps))
		for _, s := range stamps {
			days[s.Format("2006-01-02")] = true
		}
		a.DistinctCallDays = len(days)
	}

	if len(stamps) >= 2 {
		var gaps []float64
		for i := 1; i < len(stamps); i++ {
			gaps = append(gaps, stamps[i].Sub(stamps[i-1]).Hours()/24)
		}
		a.MinGapDays, a.MaxGapDays = gaps[0], gaps[0]
		sum := 0.0
		for _, g := range gaps {
			sum += g
			if g < a.MinGapDays {
				a.MinGapDays = g
			}
			if g > a.MaxGapDays {
				a.MaxGapDays = g
			}
		}
		a.AvgGapDays = sum / float64(len(gaps))
	}

	a.Timeline = buildTimeline(group)
	return a
}

// majorityName picks the most frequent non-empty name in the group, ties
// broken by first occurrence.
func majorityName(group []model.CallLog) string {
	counts := make(map[string]int)
	var order []string
	for _, c := range group {
		n := strings.TrimSpace(c.Name)
		if EmptyCell(n) {
			continue
		}
		if counts[n] == 0 {
			order = append(order, n)
		}
		counts[n]++
	}

	best := ""
	for _, n := range order {
		if best == "" || counts[n] > counts[best] {
			best = n
		}
	}
	if best == "" {
		return model.UnknownName
	}
	return best
}

// buildTimeline renders every call as "YYYY-MM-DD <time>", chronologically
// sorted with unknown dates after all known ones.
func buildTimeline(group []model.CallLog) []string {
	type entry struct {
		when     *time.Time
		rendered string
	}

	entries := make([]entry, 0, len(group))
	for _, c := range group {
		tod := c.TimeOfDay
		if tod == "" && c.Timestamp != nil {
			tod = c.Timestamp.Format("15:04:05")
		}
		if c.Timestamp != nil {
			entries = append(entries, entry{
				when:     c.Timestamp,
				rendered: c.Timestamp.Format("2006-01-02") + " " + tod,
			})
		} else {
			entries = append(entries, entry{rendered: "Unknown Date " + tod})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].when == nil {
			return false
		}
		if entries[j].when == nil {
			return true
		}
		return entries[i].when.Before(*entries[j].when)
	})

	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = strings.TrimSpace(e.rendered)
	}
	return out
}

func parseTimestamp(raw string, layouts []string) *time.Time {
	v := strings.TrimSpace(raw)
	if EmptyCell(v) {
		return nil
	}
	for _, layout := range layouts {
		if ts, err := time.Parse(layout, v); err == nil {
			return &ts
		}
	}
	return nil
}

// findTimestampColumn picks the first date/time-keyword column whose sample
// values actually parse against the configured layouts.
func findTimestampColumn(t *model.RawTable, layouts []string) string {
	for _, col := range t.Columns {
		lower := strings.ToLower(col)
		match := false
		for _, kw := range timestampKeywords {
			if strings.Contains(lower, kw) {
				match = true
				break
			}
		}
		if !match {
			continue
		}
		if sampleParses(t, col, layouts) {
			return col
		}
	}
	return ""
}

// sampleParses checks up to five non-empty values of a column against the
// layouts.
func sampleParses(t *model.RawTable, col string, layouts []string) bool {
	checked := 0
	for _, row := range t.Rows {
		v := strings.TrimSpace(row[col])
		if EmptyCell(v) {
			continue
		}
		if parseTimestamp(v, layouts) != nil {
			return true
		}
		checked++
		if checked >= 5 {
			break
		}
	}
	return false
}

// findDurationColumn picks the first duration-keyword column with any
// non-empty value.
func findDurationColumn(t *model.RawTable) string {
	for _, col := range t.Columns {
		lower := strings.ToLower(col)
		for _, kw := range durationKeywords {
			if !strings.Contains(lower, kw) {
				continue
			}
			for _, row := range t.Rows {
				if !EmptyCell(row[col]) {
					return col
				}
			}
		}
	}
	return ""
}

// findTimeOfDayColumn picks a bare time-of-day column distinct from the
// timestamp column, preferring an exact "time" header.
func findTimeOfDayColumn(columns []string, tsCol string) string {
	for _, col := range columns {
		if col != tsCol && strings.EqualFold(strings.TrimSpace(col), "time") {
			return col
		}
	}
	return ""
}

// passthroughColumns returns the table columns that are not consumed as name
// or phone sources, preserving table order.
func passthroughColumns(columns, phoneCols, nameCols []string) []string {
	consumed := make(map[string]bool, len(phoneCols)+len(nameCols))
	for _, c := range phoneCols {
		consumed[c] = true
	}
	for _, c := range nameCols {
		consumed[c] = true
	}
	var out []string
	for _, c := range columns {
		if !consumed[c] {
			out = append(out, c)
		}
	}
	return out
}
