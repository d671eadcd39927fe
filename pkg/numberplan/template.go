package numberplan

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// template is a region's example number in national format with its digits
// treated as slots, e.g. "(201) 555-0123" for US.
type template struct {
	layout   string
	prefix   string // national prefix digits at the start of layout, "0" for GB
	noPrefix string // layout without the national prefix
}

func newTemplate(region string) *template {
	example := phonenumbers.GetExampleNumber(region)
	if example == nil {
		return &template{}
	}

	t := &template{layout: phonenumbers.Format(example, phonenumbers.NATIONAL)}
	t.noPrefix = t.layout

	layoutDigits := onlyDigits(t.layout)
	nsn := phonenumbers.GetNationalSignificantNumber(example)
	if len(layoutDigits) > len(nsn) && strings.HasSuffix(layoutDigits, nsn) {
		t.prefix = layoutDigits[:len(layoutDigits)-len(nsn)]
		if rest, ok := dropLeadingDigits(t.layout, len(t.prefix)); ok {
			t.noPrefix = rest
		} else {
			t.noPrefix = ""
		}
	}
	return t
}

// layoutFor picks the layout with the national prefix when digits start with it.
func (t *template) layoutFor(digits string) string {
	if t.prefix != "" && strings.HasPrefix(digits, t.prefix) {
		return t.layout
	}
	return t.noPrefix
}

// slots is the number of digits a full-length number starting with digits has.
func (t *template) slots(digits string) int {
	return len(onlyDigits(t.layoutFor(digits)))
}

// apply pours digits into the layout and cuts it after the last digit. Digits
// are returned as typed while they still fit in the first group, or when
// there are more of them than the layout has slots.
func (t *template) apply(digits string) string {
	layout := t.layoutFor(digits)
	if layout == "" {
		return digits
	}

	slots := len(onlyDigits(layout))
	if len(digits) > slots || len(digits) < firstGroup(layout) {
		return digits
	}

	var b strings.Builder
	i, open := 0, false
	for _, r := range layout {
		if r >= '0' && r <= '9' {
			if i == len(digits) {
				break
			}
			b.WriteByte(digits[i])
			i++
			continue
		}
		if i == len(digits) {
			if r == ')' && open {
				b.WriteRune(r)
			}
			break
		}
		switch r {
		case '(':
			open = true
		case ')':
			open = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// firstGroup counts the digit slots before the first separator that follows a digit.
func firstGroup(layout string) int {
	n := 0
	for _, r := range layout {
		if r >= '0' && r <= '9' {
			n++
			continue
		}
		if n > 0 {
			break
		}
	}
	return n
}
