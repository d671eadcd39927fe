// Package phoneinput holds the state of a country-aware phone number field.
//
// An Input owns the selected country and the formatted national number typed
// so far. It changes only through SelectCountry and ApplyKeystroke, and pushes
// the composed value ("<dial code> <formatted number>") to its owner after
// every accepted change. Invalid characters and over-long numbers are dropped
// silently; numbering-plan failures degrade to unformatted input.
//
// An Input is not safe for concurrent use.
package phoneinput

import (
	"fmt"
	"strings"

	"pillziy/pkg/locale"
	"pillziy/pkg/logger"
)

type State int

const (
	Empty State = iota
	Accumulating
)

func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case Accumulating:
		return "accumulating"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(text []byte) error {
	switch string(text) {
	case "empty":
		*s = Empty
	case "accumulating":
		*s = Accumulating
	default:
		return fmt.Errorf("unknown input state %q", text)
	}
	return nil
}

type Rejection int

const (
	NotRejected Rejection = iota
	InvalidCharacter
	TooLong
)

func (r Rejection) String() string {
	switch r {
	case NotRejected:
		return ""
	case InvalidCharacter:
		return "invalid_character"
	case TooLong:
		return "too_long"
	default:
		return fmt.Sprintf("Rejection(%d)", int(r))
	}
}

func (r Rejection) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *Rejection) UnmarshalText(text []byte) error {
	switch string(text) {
	case "":
		*r = NotRejected
	case "invalid_character":
		*r = InvalidCharacter
	case "too_long":
		*r = TooLong
	default:
		return fmt.Errorf("unknown rejection %q", text)
	}
	return nil
}

// Result describes what a keystroke did. Display is always the text the host
// control must show afterwards: the new formatting when accepted, the last
// accepted text when rejected.
type Result struct {
	Accepted  bool
	Rejection Rejection
	Display   string
	Value     string
	State     State
	// Formatted is false when the engine failed and Display is the raw input.
	Formatted bool
	// Valid is the engine's advisory verdict on the full number.
	Valid bool
}

// ChangeFunc receives the composed value after every accepted change.
type ChangeFunc func(value string)

type Option func(*Input)

func WithOnChange(fn ChangeFunc) Option {
	return func(in *Input) {
		in.onChange = fn
	}
}

func WithLogger(log *logger.Logger) Option {
	return func(in *Input) {
		in.log = log
	}
}

type Input struct {
	engine   Engine
	country  locale.Country
	display  string
	value    string
	onChange ChangeFunc
	log      *logger.Logger
}

// New creates an input with country selected and nothing typed. Nothing is
// emitted until the first selection or keystroke.
func New(engine Engine, country locale.Country, opts ...Option) *Input {
	in := &Input{
		engine:  engine,
		country: country,
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

func (in *Input) Country() locale.Country {
	return in.country
}

// Display is the formatted national number without the calling code.
func (in *Input) Display() string {
	return in.display
}

// Value is the last composed value handed to the owner.
func (in *Input) Value() string {
	return in.value
}

func (in *Input) State() State {
	if onlyDigits(in.display) == "" {
		return Empty
	}
	return Accumulating
}

// SelectCountry switches the numbering plan, clears what was typed and emits
// the bare dial code. Re-selecting the current country resets the same way.
func (in *Input) SelectCountry(country locale.Country) {
	in.country = country
	in.display = ""
	in.emit(country.DialCode)
}

// ApplyKeystroke takes the full content of the text field after an edit.
func (in *Input) ApplyKeystroke(raw string) Result {
	if !allowedInput(raw) {
		return in.reject(InvalidCharacter)
	}

	digits := onlyDigits(raw)
	fullNumber := in.country.PrimaryDialCode() + digits

	if digits != "" {
		exceeded, err := in.maxLengthExceeded(fullNumber)
		if err != nil {
			return in.acceptRaw(raw, err)
		}
		if exceeded {
			return in.reject(TooLong)
		}
	}

	display, err := in.format(digits)
	if err != nil {
		return in.acceptRaw(raw, err)
	}
	if strings.HasPrefix(strings.TrimSpace(raw), "+") {
		display = "+" + display
	}

	in.display = display
	in.emit(in.country.DialCode + " " + display)

	return Result{
		Accepted:  true,
		Display:   in.display,
		Value:     in.value,
		State:     in.State(),
		Formatted: true,
		Valid:     digits != "" && in.isValid(fullNumber),
	}
}

func (in *Input) reject(reason Rejection) Result {
	if in.log != nil {
		in.log.Debug("Keystroke rejected",
			"country", in.country.Code,
			"reason", reason.String(),
		)
	}
	return Result{
		Rejection: reason,
		Display:   in.display,
		Value:     in.value,
		State:     in.State(),
		Formatted: true,
	}
}

func (in *Input) acceptRaw(raw string, cause error) Result {
	if in.log != nil {
		in.log.Warn("Phone formatting failed, keeping raw input",
			"country", in.country.Code,
			"error", cause,
		)
	}
	in.display = raw
	in.emit(in.country.DialCode + " " + raw)
	return Result{
		Accepted: true,
		Display:  in.display,
		Value:    in.value,
		State:    in.State(),
	}
}

func (in *Input) emit(value string) {
	in.value = value
	if in.onChange != nil {
		in.onChange(value)
	}
}

// format asks the engine for the national layout of digits. Area codes
// carried by the dial code ("+1 684") are formatted along with the digits so
// the plan sees a whole national number, then cut off again.
func (in *Input) format(digits string) (display string, err error) {
	if digits == "" {
		return "", nil
	}
	area := in.country.AreaCode()
	err = guard(func() error {
		var ferr error
		display, ferr = in.engine.Format(area+digits, in.country.Code)
		return ferr
	})
	if err == nil && area != "" {
		display, err = cutAreaCode(display, area)
	}
	if err == nil && onlyDigits(display) != digits {
		err = fmt.Errorf("formatter changed the digits: %q -> %q", digits, display)
	}
	return display, err
}

func (in *Input) maxLengthExceeded(fullNumber string) (exceeded bool, err error) {
	err = guard(func() error {
		exceeded = in.engine.MaxLengthExceeded(fullNumber)
		return nil
	})
	return exceeded, err
}

func (in *Input) isValid(fullNumber string) (valid bool) {
	_ = guard(func() error {
		valid = in.engine.IsValid(fullNumber)
		return nil
	})
	return valid
}

// cutAreaCode removes the leading area code from a formatted number along
// with the brackets and separators around it: "(684) 633-1234" gives "633-1234".
func cutAreaCode(formatted, area string) (string, error) {
	i, n := 0, 0
	for ; i < len(formatted) && n < len(area); i++ {
		c := formatted[i]
		if c < '0' || c > '9' {
			continue
		}
		if c != area[n] {
			break
		}
		n++
	}
	if n < len(area) {
		return "", fmt.Errorf("formatted number %q does not start with area code %s", formatted, area)
	}
	return strings.TrimLeft(formatted[i:], " -)"), nil
}

// guard turns a panic inside the engine into an error.
func guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("numbering plan engine panicked: %v", r)
		}
	}()
	return fn()
}

func allowedInput(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r == ' ', r == '(', r == ')', r == '+', r == '-':
		default:
			return false
		}
	}
	return true
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
