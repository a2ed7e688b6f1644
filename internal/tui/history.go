package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/saadjs/caltrack/internal/i18n"
	"github.com/saadjs/caltrack/internal/service"
)

type historyModel struct {
	tr       *i18n.Translator
	report   *service.HistoryReport
	cursor   int
	expanded bool
	loading  bool
	status   string
	err      string
}

func newHistoryModel(tr *i18n.Translator) historyModel {
	return historyModel{tr: tr}
}

func (m *historyModel) setReport(report *service.HistoryReport, err error) {
	m.loading = false
	if err != nil {
		m.err = err.Error()
		return
	}
	m.err = ""
	m.report = report
	if m.cursor >= len(m.days()) {
		m.cursor = max(0, len(m.days())-1)
	}
}

func (m historyModel) days() []service.HistoryDay {
	if m.report == nil {
		return nil
	}
	return m.report.Days
}

func (m historyModel) Update(msg tea.Msg) (historyModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || m.loading {
		return m, nil
	}
	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			m.expanded = false
		}
	case "down", "j":
		if m.cursor < len(m.days())-1 {
			m.cursor++
			m.expanded = false
		}
	case "enter", " ":
		m.expanded = !m.expanded
	}
	return m, nil
}

func (m historyModel) View() string {
	var b strings.Builder
	b.WriteString(styleHeader.Render("caltrack"))
	b.WriteString("\n")
	if m.report != nil {
		b.WriteString(styleDimmed.Render(m.tr.Sprintf(i18n.MsgGoal, m.report.Goal, m.tr.Word(string(m.report.GoalType)))))
		b.WriteString("\n\n")
	}

	switch {
	case m.loading:
		b.WriteString(styleDimmed.Render("..."))
	case m.err != "":
		b.WriteString(styleError.Render(m.err))
	case len(m.days()) == 0:
		b.WriteString(styleDimmed.Render(m.tr.Sprintf(i18n.MsgNoHistory)))
	default:
		for i, d := range m.days() {
			line := m.tr.Sprintf(i18n.MsgHistoryDay, d.Date, d.TotalCalories, len(d.Entries))
			band := BandStyle(d.Band).Render(m.tr.Word(string(d.Band)))
			if i == m.cursor {
				b.WriteString(styleSelected.Render("> "+line) + "  " + band + "\n")
				if m.expanded {
					b.WriteString(m.dayDetail(d))
				}
				continue
			}
			b.WriteString("  " + styleItemName.Render(line) + "  " + band + "\n")
		}
	}

	if m.status != "" {
		b.WriteString("\n" + styleDimmed.Render(m.status))
	}
	b.WriteString(styleHelp.Render("\n↑/↓ move  enter details  a add  r reload  q quit"))
	return b.String()
}

func (m historyModel) dayDetail(d service.HistoryDay) string {
	var b strings.Builder
	for _, e := range d.Entries {
		fmt.Fprintf(&b, "    %-28s %6.0f g\n", truncate(e.Name, 28), e.AmountG)
	}
	n := d.Nutrients
	fmt.Fprintf(&b, "    %s  %s  %s\n",
		styleProtein.Render(fmt.Sprintf("P %.1f g", n.ProteinG)),
		styleCarbs.Render(fmt.Sprintf("C %.1f g", n.CarbsG)),
		styleFat.Render(fmt.Sprintf("F %.1f g", n.FatG)))
	return b.String()
}
