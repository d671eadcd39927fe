// Package tui is the terminal host for the phone input: a filterable country
// picker and a phone field that runs every edit through phoneinput.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pillziy/pkg/locale"
	"pillziy/pkg/logger"
	"pillziy/pkg/numberplan"
	"pillziy/pkg/phoneinput"
)

// Focus is the control that receives key presses.
type Focus int

const (
	PickerFocus Focus = iota
	PhoneFocus
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Padding(0, 1)
	dialCodeStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	valueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	rejectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	boxStyle      = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("12")).
			Padding(0, 1)
)

type KeyMap struct {
	Select key.Binding
	Switch key.Binding
	Back   key.Binding
	Quit   key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select country"),
		),
		Switch: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch field"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back to countries"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

type Config struct {
	Countries *locale.Table
	// Country is the initially selected code; empty means the table default.
	Country string
	Engine  phoneinput.Engine
	Log     *logger.Logger
}

type countryItem struct {
	country locale.Country
}

func (i countryItem) Title() string {
	return fmt.Sprintf("%s  %s", locale.FlagFor(i.country.Code), i.country.Name)
}

func (i countryItem) Description() string {
	return i.country.Code + "  " + i.country.DialCode
}

// FilterValue lets the filter match both the code and the name.
func (i countryItem) FilterValue() string {
	return i.country.Code + "-" + i.country.Name
}

// Model represents the state of the terminal phone input.
type Model struct {
	countries list.Model
	phone     textinput.Model
	input     *phoneinput.Input
	keyMap    KeyMap

	focus  Focus
	last   phoneinput.Result
	width  int
	height int
	quit   bool
}

func New(cfg Config) (Model, error) {
	if cfg.Countries == nil {
		cfg.Countries = locale.Countries()
	}
	if cfg.Engine == nil {
		cfg.Engine = numberplan.New()
	}
	if cfg.Log == nil {
		cfg.Log = logger.Discard()
	}

	selected := cfg.Countries.Default()
	if cfg.Country != "" {
		c, ok := cfg.Countries.Lookup(cfg.Country)
		if !ok {
			return Model{}, fmt.Errorf("unknown country %q", cfg.Country)
		}
		selected = c
	}

	all := cfg.Countries.All()
	items := make([]list.Item, len(all))
	index := 0
	for i, c := range all {
		items[i] = countryItem{country: c}
		if c.Code == selected.Code {
			index = i
		}
	}

	countries := list.New(items, list.NewDefaultDelegate(), 76, 20)
	countries.Title = "Country"
	countries.SetShowHelp(false)
	countries.SetShowStatusBar(false)
	countries.Styles.NoItems = dimStyle.Padding(0, 2)
	countries.Select(index)

	phone := textinput.New()
	phone.Placeholder = "Phone number"
	phone.Prompt = ""
	phone.CharLimit = 32
	phone.Width = 24

	return Model{
		countries: countries,
		phone:     phone,
		input:     phoneinput.New(cfg.Engine, selected, phoneinput.WithLogger(cfg.Log)),
		keyMap:    DefaultKeyMap(),
		focus:     PickerFocus,
	}, nil
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Value is the composed value last emitted by the input.
func (m Model) Value() string {
	return m.input.Value()
}

func (m Model) Country() locale.Country {
	return m.input.Country()
}

func (m Model) Focus() Focus {
	return m.focus
}

// Quitting reports whether the user asked to leave.
func (m Model) Quitting() bool {
	return m.quit
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		index := m.countries.Index()
		m.countries.SetSize(msg.Width-4, max(msg.Height-10, 5))
		m.countries.Select(index)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keyMap.Quit) {
			m.quit = true
			return m, tea.Quit
		}
		if m.focus == PhoneFocus {
			return m.updatePhone(msg)
		}
		return m.updatePicker(msg)
	}

	return m, nil
}

func (m Model) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The list owns every key while the filter prompt is open.
	if m.countries.FilterState() != list.Filtering {
		switch {
		case key.Matches(msg, m.keyMap.Select):
			if item, ok := m.countries.SelectedItem().(countryItem); ok {
				m.input.SelectCountry(item.country)
				m.phone.SetValue("")
				m.last = phoneinput.Result{}
			}
			return m.focusPhone()
		case key.Matches(msg, m.keyMap.Switch):
			return m.focusPhone()
		}
	}

	var cmd tea.Cmd
	m.countries, cmd = m.countries.Update(msg)
	return m, cmd
}

func (m Model) updatePhone(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Back), key.Matches(msg, m.keyMap.Switch):
		m.focus = PickerFocus
		m.phone.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	before := m.phone.Value()
	m.phone, cmd = m.phone.Update(msg)
	if m.phone.Value() == before {
		return m, cmd
	}

	m.last = m.input.ApplyKeystroke(m.phone.Value())
	if m.phone.Value() != m.last.Display {
		m.phone.SetValue(m.last.Display)
		m.phone.CursorEnd()
	}
	return m, cmd
}

func (m Model) focusPhone() (tea.Model, tea.Cmd) {
	m.focus = PhoneFocus
	return m, m.phone.Focus()
}

func (m Model) View() string {
	if m.quit {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("PILLziy phone input"))
	b.WriteString("\n\n")

	if m.focus == PickerFocus {
		b.WriteString(m.countries.View())
		b.WriteString("\n\n")
	}

	country := m.input.Country()
	field := fmt.Sprintf("%s %s %s",
		locale.FlagFor(country.Code),
		dialCodeStyle.Render(country.DialCode),
		m.phone.View(),
	)
	b.WriteString(boxStyle.Render(field))
	b.WriteString("\n")

	b.WriteString(dimStyle.Render("value: "))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%q", m.input.Value())))
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render(m.helpLine()))
	return b.String()
}

func (m Model) statusLine() string {
	switch m.last.Rejection {
	case phoneinput.InvalidCharacter:
		return rejectStyle.Render("only digits, spaces, ( ) + and - are allowed")
	case phoneinput.TooLong:
		return rejectStyle.Render("number is too long for " + m.input.Country().Name)
	}
	switch {
	case m.last.Valid:
		return valueStyle.Render("valid number")
	case m.last.Accepted && !m.last.Formatted:
		return dimStyle.Render("unformatted")
	default:
		return dimStyle.Render(m.input.State().String())
	}
}

func (m Model) helpLine() string {
	if m.focus == PickerFocus {
		return "/ filter • enter select • tab phone • ctrl+c quit"
	}
	return "type a number • esc countries • ctrl+c quit"
}
