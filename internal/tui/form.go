package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// formField describes one prompt in a sequential input form.
type formField struct {
	label       string
	placeholder string
	allowBlank  bool
}

// form walks the user through its fields one prompt at a time, the way
// the classic console loop would, then hands the collected values to
// submit. Values are trimmed; blank answers only pass when the field
// allows them.
type form struct {
	title  string
	fields []formField
	values []string
	idx    int
	input  textinput.Model
	submit func(values []string)
}

func newForm(title string, fields []formField, submit func(values []string)) *form {
	input := textinput.New()
	input.Placeholder = fields[0].placeholder
	input.Focus()
	input.CharLimit = 64
	return &form{
		title:  title,
		fields: fields,
		input:  input,
		submit: submit,
	}
}

// advance records the current answer and moves to the next field, or
// submits once every field has been answered.
func (f *form) advance() {
	value := strings.TrimSpace(f.input.Value())
	if value == "" && !f.fields[f.idx].allowBlank {
		return
	}
	f.values = append(f.values, value)
	f.idx++
	if f.idx >= len(f.fields) {
		f.submit(f.values)
		return
	}
	f.input.SetValue("")
	f.input.Placeholder = f.fields[f.idx].placeholder
}

func (f *form) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return cmd
}

func (f *form) View() string {
	var b strings.Builder
	b.WriteString(formTitleStyle.Render(f.title))
	b.WriteString("\n\n")
	for i, field := range f.fields {
		switch {
		case i < f.idx:
			answer := f.values[i]
			if answer == "" {
				answer = "(kept)"
			}
			b.WriteString(formDoneStyle.Render(field.label+": "+answer) + "\n")
		case i == f.idx:
			b.WriteString(field.label + ": " + f.input.View() + "\n")
		}
	}
	b.WriteString("\n" + formHelpStyle.Render("enter next · esc cancel"))
	return b.String()
}
