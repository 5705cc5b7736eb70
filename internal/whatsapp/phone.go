package whatsapp

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

const MinPhoneLength = 10

// NormalizePhone trims raw and drops everything except digits and a leading plus.
func NormalizePhone(raw string) string {
	raw = strings.TrimSpace(raw)
	var b strings.Builder
	for i, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Recipient formats a normalised number as E.164 digits for region. Numbers
// that do not parse as valid are returned without the plus sign.
func Recipient(normalized, region string) string {
	if region != "" {
		if num, err := phonenumbers.Parse(normalized, region); err == nil && phonenumbers.IsValidNumber(num) {
			return strings.TrimPrefix(phonenumbers.Format(num, phonenumbers.E164), "+")
		}
	}
	return strings.TrimPrefix(normalized, "+")
}
