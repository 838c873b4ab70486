package pipeline

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Implicit unit values used when a duration mentions a unit but carries no
// digit ("a few mins", "about an hour").
const (
	defaultHours   = 1
	defaultMinutes = 5
	defaultSeconds = 30
)

var firstNumber = regexp.MustCompile(`\d+`)

// ParseDuration converts a free-form call-duration value to whole seconds.
// It accepts plain numbers (already seconds), "HH:MM:SS" / "MM:SS", the
// compact "00h 00m 00s" form, unit words ("hour"/"hr", "min", "sec") with a
// leading integer, and bare integers in free text (interpreted as minutes).
//
// It never panics. ok is false when the value could not be parsed; the
// returned seconds are then 0. Callers that need to distinguish "unknown"
// from a genuine zero-length call must check ok, not the value.
func ParseDuration(raw string) (seconds int, ok bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return 0, false
	}

	// Already a number: seconds.
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		if n < 0 {
			return 0, false
		}
		return int(n), true
	}

	// Compact "00h 00m 00s" token form.
	if strings.Contains(s, "h") && strings.Contains(s, "m") && strings.Contains(s, "s") {
		if secs, tokOK := parseTokenForm(s); tokOK {
			return secs, true
		}
	}

	// Colon-delimited HH:MM:SS or MM:SS.
	if strings.Contains(s, ":") {
		return parseColonForm(s)
	}

	// Unit words with optional leading integer.
	switch {
	case strings.Contains(s, "hour") || strings.Contains(s, "hr"):
		return numberOrDefault(s, defaultHours) * 3600, true
	case strings.Contains(s, "min"):
		return numberOrDefault(s, defaultMinutes) * 60, true
	case strings.Contains(s, "sec"):
		return numberOrDefault(s, defaultSeconds), true
	}

	// Bare integer somewhere in free text: minutes.
	if m := firstNumber.FindString(s); m != "" {
		n, err := strconv.Atoi(m)
		if err == nil {
			return n * 60, true
		}
	}

	return 0, false
}

// parseTokenForm parses "00h 00m 00s". All three units are required.
func parseTokenForm(s string) (int, bool) {
	parts := strings.Fields(s)
	if len(parts) != 3 {
		return 0, false
	}
	h, errH := strconv.Atoi(strings.TrimSuffix(parts[0], "h"))
	m, errM := strconv.Atoi(strings.TrimSuffix(parts[1], "m"))
	sec, errS := strconv.Atoi(strings.TrimSuffix(parts[2], "s"))
	if errH != nil || errM != nil || errS != nil {
		return 0, false
	}
	return h*3600 + m*60 + sec, true
}

// parseColonForm parses "HH:MM:SS" (3 parts) or "MM:SS" (2 parts).
func parseColonForm(s string) (int, bool) {
	parts := strings.Split(s, ":")
	nums := make([]float64, len(parts))
	for i, p := range parts {
		n, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return 0, false
		}
		nums[i] = n
	}
	switch len(nums) {
	case 3:
		return int(nums[0]*3600 + nums[1]*60 + nums[2]), true
	case 2:
		return int(nums[0]*60 + nums[1]), true
	}
	return 0, false
}

func numberOrDefault(s string, def int) int {
	if m := firstNumber.FindString(s); m != "" {
		if n, err := strconv.Atoi(m); err == nil {
			return n
		}
	}
	return def
}

// FormatDuration renders seconds as "H:MM:SS", or "M:SS" under an hour.
// Zero renders as "0:00".
func FormatDuration(totalSeconds int) string {
	if totalSeconds <= 0 {
		return "0:00"
	}
	h := totalSeconds / 3600
	m := (totalSeconds % 3600) / 60
	s := totalSeconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
