package pipeline

import (
	"strings"

	"github.com/sells-group/leadflow-cli/internal/model"
)

// countryCode is the calling code both canonical phone forms are anchored on.
const countryCode = "94"

// subscriberDigits is the length of a full subscriber number without any
// prefix.
const subscriberDigits = 9

// minValidDigits is the single minimum length a validated international
// number must meet: the country code plus a seven-digit local number.
const minValidDigits = len(countryCode) + 7

// CanonicalPhone normalizes a free-form phone value to the requested form.
//
// International form: digits only, starting with "94". Inputs that cannot be
// normalized keep their original value so the caller can decide whether to
// treat the record as invalid.
//
// Domestic form: exactly 10 digits starting with "0". Anything that fails
// that shape returns "" — a wrong-looking number is never retained.
func CanonicalPhone(raw string, form model.PhoneForm) string {
	if raw == "" {
		return raw
	}

	digits := stripNonDigits(raw)
	// Spreadsheet numeric formatting pads phone cells with trailing zeros.
	digits = strings.TrimRight(digits, "0")
	if digits == "" {
		if form == model.PhoneDomestic {
			return ""
		}
		return raw
	}

	switch form {
	case model.PhoneDomestic:
		return domesticForm(digits)
	default:
		return internationalForm(digits, raw)
	}
}

func internationalForm(digits, raw string) string {
	switch {
	case strings.HasPrefix(digits, countryCode):
		if len(digits) >= subscriberDigits {
			return digits
		}
		return raw // too short to be a 94-prefixed number
	case len(digits) == subscriberDigits:
		return countryCode + digits
	case len(digits) == 10 && strings.HasPrefix(digits, "0"):
		return countryCode + digits[1:]
	case len(digits) == 7:
		return countryCode + digits
	case len(digits) > subscriberDigits:
		// Assume a foreign or malformed prefix; keep the subscriber part.
		return countryCode + digits[len(digits)-subscriberDigits:]
	default:
		return countryCode + digits
	}
}

func domesticForm(digits string) string {
	switch {
	case strings.HasPrefix(digits, countryCode):
		digits = "0" + digits[len(countryCode):]
	case len(digits) == subscriberDigits && !strings.HasPrefix(digits, "0"):
		digits = "0" + digits
	}

	if len(digits) == 10 && strings.HasPrefix(digits, "0") {
		return digits
	}
	return ""
}

// ValidInternationalPhone reports whether s is a fully canonical
// international number: digits only, "94" prefix, at least minDigits long.
// Values with leftover non-digit artifacts (e.g. a scientific-notation "E")
// fail this check.
func ValidInternationalPhone(s string, minDigits int) bool {
	if minDigits <= 0 {
		minDigits = minValidDigits
	}
	if len(s) < minDigits || !strings.HasPrefix(s, countryCode) {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func stripNonDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
