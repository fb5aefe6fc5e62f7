package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jask/catalogedit/internal/catalog"
	"github.com/jask/catalogedit/internal/editor"
)

func (a *App) View() string {
	if a.done {
		return ""
	}
	var body string
	if a.screen == screenSignIn {
		body = a.renderSignIn()
	} else {
		body = a.renderEditor()
	}
	lines := []string{body}
	if n := a.notice; n.Visible {
		style := infoStyle
		if n.Level == editor.LevelError {
			style = errorStyle
		}
		lines = append(lines, style.Render(n.Message))
	}
	if a.status != "" {
		lines = append(lines, warnStyle.Render(a.status))
	}
	return strings.Join(lines, "\n") + "\n"
}

func (a *App) renderSignIn() string {
	lines := []string{
		titleStyle.Render("Sign in"),
		"",
		"A vendor must be signed in to edit products.",
		a.signin.View(),
		"",
		helpStyle.Render("enter: sign in  esc: quit"),
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}

func (a *App) renderEditor() string {
	snap := a.ctl.Snapshot()
	header := titleStyle.Render("Edit product "+snap.ID) + " " + phaseStyle.Render(snap.Phase.String())

	switch snap.Phase {
	case editor.PhaseIdle, editor.PhaseLoading:
		return header + "\n\nLoading product..."
	case editor.PhaseLoadFailed:
		msg := "Could not load product"
		if snap.Err != nil {
			msg += ": " + snap.Err.Error()
		}
		return header + "\n\n" + errorStyle.Render(msg) + "\n\n" + helpStyle.Render("r: retry  esc: quit")
	case editor.PhaseDone, editor.PhaseClosed:
		return header
	}

	rows := make([]string, 0, len(catalog.AllFields())+4)
	for i, f := range catalog.AllFields() {
		rows = append(rows, a.renderField(i, f, snap.Edit))
	}
	if tags := snap.Edit.Tags(); len(tags) > 0 {
		chips := make([]string, 0, len(tags))
		for _, t := range tags {
			chips = append(chips, tagStyle(strings.ToLower(t)).Render(t))
		}
		rows = append(rows, "", labelStyle.Render("Tags")+lipgloss.JoinHorizontal(lipgloss.Top, chips...))
	}
	if n := len(snap.Edit.DirtyFields()); n > 0 {
		rows = append(rows, "", dirtyStyle.Render(fmt.Sprintf("%d unsaved change(s)", n)))
	}
	if snap.Phase == editor.PhaseSubmitting {
		rows = append(rows, "", "Saving...")
	}
	if snap.Phase == editor.PhaseEditable && snap.Err != nil {
		rows = append(rows, "", errorStyle.Render(snap.Err.Error()))
	}
	rows = append(rows, "", helpStyle.Render("tab/shift+tab: move  ←/→: category  ctrl+s: save  ctrl+d: delete  ctrl+n: dismiss  esc: quit"))

	return header + "\n\n" + panelStyle.Render(strings.Join(rows, "\n"))
}

func (a *App) renderField(i int, f catalog.Field, edit catalog.EditState) string {
	label := labelStyle.Render(f.Label())
	if i == a.focus {
		label = focusStyle.Render(f.Label())
	}
	mark := " "
	switch {
	case a.locked[f]:
		mark = warnStyle.Render("!")
	case edit.Dirty(f):
		mark = dirtyStyle.Render("*")
	}
	var value string
	if f == catalog.FieldCategory {
		value = renderCategories(edit.Category)
	} else {
		value = a.inputs[f].View()
	}
	return mark + label + value
}

func renderCategories(cur catalog.Category) string {
	parts := make([]string, 0, len(catalog.Categories()))
	for _, c := range catalog.Categories() {
		if c == cur {
			parts = append(parts, chosenStyle.Render("["+string(c)+"]"))
		} else {
			parts = append(parts, optionStyle.Render(string(c)))
		}
	}
	return strings.Join(parts, " ")
}
