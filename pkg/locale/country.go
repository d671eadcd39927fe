package locale

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultCountryCode = "US"

	// regionalIndicatorA is the code point of REGIONAL INDICATOR SYMBOL LETTER A.
	regionalIndicatorA = 0x1F1E6
)

//go:embed countries.yaml
var countriesYAML []byte

type Country struct {
	Code     string `yaml:"code" json:"code"`           // numbering-plan region, ISO 3166-1 alpha-2 (e.g. "US")
	Name     string `yaml:"name" json:"name"`           // display name
	Flag     string `yaml:"flag" json:"flag"`           // emoji flag glyph
	DialCode string `yaml:"dial_code" json:"dial_code"` // "+1", or "+1 809, +1 829" for several prefixes
}

func (c Country) IsZero() bool {
	return c.Code == ""
}

// DialCodes splits DialCode into its comma-separated prefixes.
func (c Country) DialCodes() []string {
	parts := strings.Split(c.DialCode, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// PrimaryDialCode is the first dial code segment reduced to '+' and digits,
// e.g. "+1 809, +1 829" becomes "+1809".
func (c Country) PrimaryDialCode() string {
	first, _, _ := strings.Cut(c.DialCode, ",")
	var b strings.Builder
	for _, r := range first {
		if r == '+' || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// AreaCode is the digits that follow the calling code in the first dial
// code segment, e.g. "684" for "+1 684". It is empty when the dial code is a
// bare calling code.
func (c Country) AreaCode() string {
	first, _, _ := strings.Cut(c.DialCode, ",")
	_, area, ok := strings.Cut(strings.TrimSpace(first), " ")
	if !ok {
		return ""
	}
	var b strings.Builder
	for _, r := range area {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

type Table struct {
	countries   []Country
	byCode      map[string]int
	defaultCode string
}

type tableFile struct {
	Countries []Country `yaml:"countries"`
}

// ParseTable decodes a YAML country table. Codes are upper-cased, flags are
// derived from the code when missing, and duplicates are rejected.
func ParseTable(data []byte) (*Table, error) {
	var file tableFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to decode country table: %w", err)
	}
	return NewTable(file.Countries)
}

func NewTable(countries []Country) (*Table, error) {
	if len(countries) == 0 {
		return nil, fmt.Errorf("country table is empty")
	}

	t := &Table{
		countries: make([]Country, 0, len(countries)),
		byCode:    make(map[string]int, len(countries)),
	}

	for i, c := range countries {
		c.Code = strings.ToUpper(strings.TrimSpace(c.Code))
		c.Name = strings.TrimSpace(c.Name)
		c.DialCode = strings.TrimSpace(c.DialCode)

		if len(c.Code) != 2 {
			return nil, fmt.Errorf("country %d: code must have two letters, got %q", i, c.Code)
		}
		if c.Name == "" {
			return nil, fmt.Errorf("country %s: name is empty", c.Code)
		}
		if !strings.HasPrefix(c.DialCode, "+") || len(c.PrimaryDialCode()) < 2 {
			return nil, fmt.Errorf("country %s: dial code %q must start with '+' and a digit", c.Code, c.DialCode)
		}
		if _, dup := t.byCode[c.Code]; dup {
			return nil, fmt.Errorf("country %s: duplicate code", c.Code)
		}
		if c.Flag == "" {
			c.Flag = FlagFor(c.Code)
		}

		t.byCode[c.Code] = len(t.countries)
		t.countries = append(t.countries, c)
	}

	t.defaultCode = t.countries[0].Code
	if _, ok := t.byCode[DefaultCountryCode]; ok {
		t.defaultCode = DefaultCountryCode
	}

	return t, nil
}

// All returns a copy of the table in display order.
func (t *Table) All() []Country {
	out := make([]Country, len(t.countries))
	copy(out, t.countries)
	return out
}

func (t *Table) Len() int {
	return len(t.countries)
}

func (t *Table) Lookup(code string) (Country, bool) {
	i, ok := t.byCode[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return Country{}, false
	}
	return t.countries[i], true
}

// Default is the fallback selection: US when the table has it, else the first entry.
func (t *Table) Default() Country {
	c, _ := t.Lookup(t.defaultCode)
	return c
}

// WithDefault returns a copy of the table whose Default is code.
func (t *Table) WithDefault(code string) (*Table, error) {
	c, ok := t.Lookup(code)
	if !ok {
		return nil, fmt.Errorf("default country %q is not in the table", code)
	}
	clone := *t
	clone.defaultCode = c.Code
	return &clone, nil
}

// MatchDialCode finds the country whose dial code is the longest prefix of a
// composed value such as "+44 7400 123456". Ties prefer the default country,
// then table order.
func (t *Table) MatchDialCode(value string) (Country, bool) {
	digits := "+" + onlyDigits(value)
	if !strings.HasPrefix(strings.TrimSpace(value), "+") || digits == "+" {
		return Country{}, false
	}

	best, bestLen := -1, 0
	for i, c := range t.countries {
		for _, dc := range c.DialCodes() {
			code := "+" + onlyDigits(dc)
			if !strings.HasPrefix(digits, code) {
				continue
			}
			preferDefault := len(code) == bestLen && c.Code == t.defaultCode
			if len(code) > bestLen || preferDefault {
				best, bestLen = i, len(code)
			}
		}
	}
	if best < 0 {
		return Country{}, false
	}
	return t.countries[best], true
}

// FlagFor builds the emoji flag from a two-letter region code.
func FlagFor(code string) string {
	code = strings.ToUpper(code)
	if len(code) != 2 || code[0] < 'A' || code[0] > 'Z' || code[1] < 'A' || code[1] > 'Z' {
		return ""
	}
	return string([]rune{
		rune(regionalIndicatorA + int(code[0]-'A')),
		rune(regionalIndicatorA + int(code[1]-'A')),
	})
}

func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

var countries = mustParse(countriesYAML)

func mustParse(data []byte) *Table {
	t, err := ParseTable(data)
	if err != nil {
		panic(err)
	}
	return t
}

// Countries is the built-in table shipped with the binary.
func Countries() *Table {
	return countries
}

func All() []Country {
	return countries.All()
}

func Lookup(code string) (Country, bool) {
	return countries.Lookup(code)
}

func Default() Country {
	return countries.Default()
}
