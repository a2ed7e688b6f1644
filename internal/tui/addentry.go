package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/saadjs/caltrack/internal/model"
)

const (
	fieldName = iota
	fieldAmount
	fieldCalories
	fieldProtein
	fieldCarbs
	fieldFat
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Name",
	"Amount (g)",
	"kcal / 100 g",
	"Protein / 100 g",
	"Carbs / 100 g",
	"Fat / 100 g",
}

type addEntryModel struct {
	inputs  []textinput.Model
	focused int
	saving  bool
	err     string
}

type backToHistoryMsg struct{}

type submitEntryMsg struct{ entry model.NewEntry }

func newAddEntryModel() addEntryModel {
	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		in := textinput.New()
		in.CharLimit = 64
		in.Width = 32
		in.Cursor.SetMode(cursor.CursorStatic)
		if i == fieldName {
			in.Placeholder = "e.g. oats"
		} else {
			in.Placeholder = "0"
		}
		inputs[i] = in
	}
	inputs[fieldName].Focus()
	return addEntryModel{inputs: inputs}
}

func (m *addEntryModel) focus(i int) {
	m.inputs[m.focused].Blur()
	m.focused = (i + fieldCount) % fieldCount
	m.inputs[m.focused].Focus()
}

func (m addEntryModel) Update(msg tea.Msg) (addEntryModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && !m.saving {
		switch key.String() {
		case "esc":
			return m, func() tea.Msg { return backToHistoryMsg{} }
		case "tab", "down":
			m.focus(m.focused + 1)
			return m, nil
		case "shift+tab", "up":
			m.focus(m.focused - 1)
			return m, nil
		case "enter":
			if m.focused < fieldCount-1 {
				m.focus(m.focused + 1)
				return m, nil
			}
			entry, err := m.entry()
			if err != nil {
				m.err = err.Error()
				return m, nil
			}
			m.err = ""
			m.saving = true
			return m, func() tea.Msg { return submitEntryMsg{entry: entry} }
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	return m, cmd
}

// entry parses the form. Nutrient fields may be left blank.
func (m addEntryModel) entry() (model.NewEntry, error) {
	name := strings.TrimSpace(m.inputs[fieldName].Value())
	if name == "" {
		return model.NewEntry{}, fmt.Errorf("name is required")
	}
	values := make([]float64, fieldCount)
	for i := fieldAmount; i < fieldCount; i++ {
		raw := strings.TrimSpace(m.inputs[i].Value())
		if raw == "" {
			if i == fieldAmount || i == fieldCalories {
				return model.NewEntry{}, fmt.Errorf("%s is required", strings.ToLower(fieldLabels[i]))
			}
			continue
		}
		v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
		if err != nil || v < 0 {
			return model.NewEntry{}, fmt.Errorf("%s must be a non-negative number", strings.ToLower(fieldLabels[i]))
		}
		values[i] = v
	}
	return model.NewEntry{
		Name:            name,
		AmountG:         values[fieldAmount],
		CaloriesPer100G: values[fieldCalories],
		ProteinPer100G:  values[fieldProtein],
		CarbsPer100G:    values[fieldCarbs],
		FatPer100G:      values[fieldFat],
	}, nil
}

func (m addEntryModel) View() string {
	rows := []string{styleHeader.Render("Add entry")}
	for i, in := range m.inputs {
		label := "  " + fieldLabels[i]
		if i == m.focused {
			label = styleSelected.Render("> " + fieldLabels[i])
		}
		rows = append(rows, label, styleInput.Width(in.Width).Render(in.View()))
	}
	if m.err != "" {
		rows = append(rows, styleError.Render(m.err))
	}
	if m.saving {
		rows = append(rows, styleDimmed.Render("saving..."))
	}
	rows = append(rows, styleHelp.Render("tab next  enter confirm  esc back"))
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
