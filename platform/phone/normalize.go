// Package phone provides phone number utilities.
// This is part of the platform layer and contains no business logic.
package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

const (
	defaultRegion = "BR"
	countryCode   = "55"
)

// NormalizeE164 formats a phone number to E.164. If parsing fails, it returns the trimmed input.
func NormalizeE164(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return trimmed
	}

	number, err := phonenumbers.Parse(trimmed, defaultRegion)
	if err != nil {
		return trimmed
	}

	if !phonenumbers.IsValidNumber(number) {
		return trimmed
	}

	return phonenumbers.Format(number, phonenumbers.E164)
}

// NormalizeBR canonicalizes a Brazilian phone number into the digit-only
// form 55 + DDD + number. A leading country prefix is always stripped before
// the length fixups so renormalizing a previous result is a no-op. Mobile
// numbers written without the leading 9 (legacy 8-digit local numbers
// starting 6-9) get the 9 inserted after the area code.
func NormalizeBR(input string) string {
	digits := Digits(input)
	if digits == "" {
		return ""
	}

	if strings.HasPrefix(digits, countryCode) {
		digits = digits[2:]
	}

	if len(digits) == 10 {
		ddd := digits[:2]
		local := digits[2:]
		if local[0] >= '6' && local[0] <= '9' {
			local = "9" + local
		}
		digits = ddd + local
	}

	return countryCode + digits
}

// Digits strips everything but decimal digits from the input.
func Digits(input string) string {
	var b strings.Builder
	for _, r := range input {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
