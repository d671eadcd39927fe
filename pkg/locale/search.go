package locale

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var folder = cases.Fold()

// fold lower-cases s and strips combining marks so "Curaçao" matches "curacao".
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	return folder.String(stripped)
}

// Search filters the table the way the picker does: the query is matched
// against "CODE-Name", ignoring case and accents. A query starting with '+'
// matches dial codes instead. An empty query returns the whole table.
func (t *Table) Search(query string) []Country {
	query = strings.TrimSpace(query)
	if query == "" {
		return t.All()
	}

	var out []Country
	if strings.HasPrefix(query, "+") {
		want := "+" + onlyDigits(query)
		for _, c := range t.countries {
			for _, dc := range c.DialCodes() {
				if strings.HasPrefix("+"+onlyDigits(dc), want) {
					out = append(out, c)
					break
				}
			}
		}
		return out
	}

	needle := fold(query)
	for _, c := range t.countries {
		if strings.Contains(fold(c.Code+"-"+c.Name), needle) {
			out = append(out, c)
		}
	}
	return out
}

func Search(query string) []Country {
	return countries.Search(query)
}
