package sanitizer

import (
	"strings"

	"github.com/nyaruka/phonenumbers"

	"pillziy/pkg/locale"
)

// NormalizePhone converts a composed phone value ("+44 7400 123456") to E.164.
// Countries listing several dial codes ("+1 809, +1 829, +1 849 555-1234")
// resolve against their first one. A value that is only a dial code, or does
// not parse, normalizes to "".
func NormalizePhone(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	if !strings.HasPrefix(value, "+") {
		value = "+" + value
	}

	full := "+" + digitsOf(value)
	if c, ok := locale.Countries().MatchDialCode(value); ok {
		if national, found := strings.CutPrefix(value, c.DialCode); found {
			if digitsOf(national) == "" {
				return ""
			}
			full = c.PrimaryDialCode() + digitsOf(national)
		}
	}

	parsed, err := phonenumbers.Parse(full, "")
	if err != nil {
		return ""
	}
	return phonenumbers.Format(parsed, phonenumbers.E164)
}

func digitsOf(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
