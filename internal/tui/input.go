package tui

import (
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/catalogedit/internal/catalog"
)

// fieldInput is the editing widget behind one text field.
type fieldInput interface {
	Value() string
	SetValue(string)
	Focus() tea.Cmd
	Blur()
	View() string
	update(tea.Msg) tea.Cmd
	setWidth(int)
}

type lineInput struct{ textinput.Model }

func (l *lineInput) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	l.Model, cmd = l.Model.Update(msg)
	return cmd
}

func (l *lineInput) setWidth(w int) { l.Width = w }

type areaInput struct{ textarea.Model }

func (a *areaInput) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	a.Model, cmd = a.Model.Update(msg)
	return cmd
}

func (a *areaInput) setWidth(w int) { a.SetWidth(w) }

// newFieldInput builds an unbounded widget so stored values are never cut.
// The description gets a textarea to keep its line breaks.
func newFieldInput(f catalog.Field) fieldInput {
	if f == catalog.FieldDescription {
		ta := textarea.New()
		ta.Prompt = ""
		ta.ShowLineNumbers = false
		ta.CharLimit = 0
		ta.MaxHeight = 0
		ta.SetHeight(4)
		ta.Blur()
		return &areaInput{ta}
	}
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 0
	return &lineInput{ti}
}

// multiline reports whether up and down belong to the widget rather than
// to field focus.
func multiline(f catalog.Field) bool { return f == catalog.FieldDescription }
