// Package numberplan implements phoneinput.Engine on top of libphonenumber
// metadata (github.com/nyaruka/phonenumbers).
package numberplan

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/nyaruka/phonenumbers"
)

var ErrUnknownRegion = errors.New("unknown numbering plan region")

type Engine struct {
	templates sync.Map // region code -> *template
}

func New() *Engine {
	return &Engine{}
}

// Format lays out national digits for region. Complete numbers use the
// region's national format. Partial numbers are poured into a template
// derived from the region's example number, even when a shorter local
// format would match them. Digits the template cannot hold come back
// unformatted.
func (e *Engine) Format(nationalDigits, regionCode string) (out string, err error) {
	defer recoverInto(&err)

	regionCode = strings.ToUpper(regionCode)
	if phonenumbers.GetCountryCodeForRegion(regionCode) == 0 {
		return "", fmt.Errorf("%w: %q", ErrUnknownRegion, regionCode)
	}
	if nationalDigits == "" {
		return "", nil
	}
	if onlyDigits(nationalDigits) != nationalDigits {
		return "", fmt.Errorf("national number %q must contain digits only", nationalDigits)
	}

	tpl := e.template(regionCode)
	if formatted, ok := formatComplete(nationalDigits, regionCode, tpl.slots(nationalDigits)); ok {
		return formatted, nil
	}

	return tpl.apply(nationalDigits), nil
}

// MaxLengthExceeded reports whether fullNumber ("+<digits>") is longer than
// the plan behind its calling code allows. Numbers that cannot be parsed for
// any other reason are not considered too long.
func (e *Engine) MaxLengthExceeded(fullNumber string) (exceeded bool) {
	defer func() {
		if recover() != nil {
			exceeded = false
		}
	}()

	num, err := phonenumbers.Parse(fullNumber, "")
	if err != nil {
		return errors.Is(err, phonenumbers.ErrNumTooLong)
	}
	return phonenumbers.IsPossibleNumberWithReason(num) == phonenumbers.TOO_LONG
}

func (e *Engine) IsValid(fullNumber string) (valid bool) {
	defer func() {
		if recover() != nil {
			valid = false
		}
	}()

	num, err := phonenumbers.Parse(fullNumber, "")
	if err != nil {
		return false
	}
	return phonenumbers.IsValidNumber(num)
}

// E164 normalizes a composed value such as "+44 7400 123456" to "+447400123456".
func (e *Engine) E164(value string) (out string, err error) {
	defer recoverInto(&err)

	num, err := phonenumbers.Parse(value, "")
	if err != nil {
		return "", fmt.Errorf("failed to parse phone number: %w", err)
	}
	return phonenumbers.Format(num, phonenumbers.E164), nil
}

func (e *Engine) template(region string) *template {
	if t, ok := e.templates.Load(region); ok {
		return t.(*template)
	}
	t, _ := e.templates.LoadOrStore(region, newTemplate(region))
	return t.(*template)
}

// formatComplete uses the region's national format when it keeps exactly the
// typed digits, or the typed digits minus a national prefix the formatter added.
// Numbers shorter than fullLength must be valid for the region, so a local-only
// prefix of a longer number is left to the template.
func formatComplete(national, region string, fullLength int) (string, bool) {
	num, err := phonenumbers.Parse(national, region)
	if err != nil {
		return "", false
	}
	if len(national) < fullLength && !phonenumbers.IsValidNumberForRegion(num, region) {
		return "", false
	}
	formatted := phonenumbers.Format(num, phonenumbers.NATIONAL)
	digits := onlyDigits(formatted)

	switch {
	case formatted == national:
		return "", false
	case digits == national:
		return formatted, true
	case len(digits) > len(national) && strings.HasSuffix(digits, national):
		return dropLeadingDigits(formatted, len(digits)-len(national))
	default:
		return "", false
	}
}

// dropLeadingDigits removes the first n digits of s and the separators that
// followed them. It refuses when that would leave an unbalanced group.
func dropLeadingDigits(s string, n int) (string, bool) {
	i := 0
	for ; i < len(s) && n > 0; i++ {
		if s[i] >= '0' && s[i] <= '9' {
			n--
		}
	}
	rest := strings.TrimLeft(s[i:], " -")
	if rest == "" || strings.ContainsAny(s[:i], "()") || strings.HasPrefix(rest, ")") {
		return "", false
	}
	return rest, true
}

func recoverInto(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("phonenumbers panicked: %v", r)
	}
}

func onlyDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
