// Package tui is the interactive history browser with a quick-add entry form.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/saadjs/caltrack/internal/i18n"
	"github.com/saadjs/caltrack/internal/model"
	"github.com/saadjs/caltrack/internal/service"
)

// Source supplies the data the TUI shows and stores new entries.
type Source interface {
	History(ctx context.Context) (*service.HistoryReport, error)
	AddEntry(ctx context.Context, in model.NewEntry) (service.EntryLine, error)
}

type page int

const (
	pageHistory page = iota
	pageAdd
)

type App struct {
	ctx     context.Context
	src     Source
	tr      *i18n.Translator
	page    page
	history historyModel
	add     addEntryModel
	width   int
	height  int
}

func New(ctx context.Context, src Source, tr *i18n.Translator) *App {
	if tr == nil {
		tr = i18n.MustNew(i18n.DefaultLocale)
	}
	return &App{
		ctx:     ctx,
		src:     src,
		tr:      tr,
		page:    pageHistory,
		history: newHistoryModel(tr),
	}
}

func (a *App) Init() tea.Cmd {
	a.history.loading = true
	return loadHistory(a.ctx, a.src)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.page == pageHistory {
			switch msg.String() {
			case "q":
				return a, tea.Quit
			case "a":
				a.add = newAddEntryModel()
				a.page = pageAdd
				return a, nil
			case "r":
				a.history.loading = true
				return a, loadHistory(a.ctx, a.src)
			}
		}

	case backToHistoryMsg:
		a.page = pageHistory
		return a, nil

	case submitEntryMsg:
		return a, addEntry(a.ctx, a.src, msg.entry)

	case entryAddedMsg:
		if msg.err != nil {
			a.add.err = msg.err.Error()
			a.add.saving = false
			return a, nil
		}
		a.page = pageHistory
		a.history.status = a.tr.Sprintf(i18n.MsgEntryAdded, msg.line.Name, msg.line.Calories)
		a.history.loading = true
		return a, loadHistory(a.ctx, a.src)

	case historyLoadedMsg:
		a.history.setReport(msg.report, msg.err)
		return a, nil
	}

	var cmd tea.Cmd
	switch a.page {
	case pageHistory:
		a.history, cmd = a.history.Update(msg)
	case pageAdd:
		a.add, cmd = a.add.Update(msg)
	}
	return a, cmd
}

func (a *App) View() string {
	if a.page == pageAdd {
		return a.add.View()
	}
	return a.history.View()
}

// Run starts the program on the terminal and blocks until the user quits.
func Run(ctx context.Context, src Source, tr *i18n.Translator) error {
	_, err := tea.NewProgram(New(ctx, src, tr), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

type historyLoadedMsg struct {
	report *service.HistoryReport
	err    error
}

type entryAddedMsg struct {
	line service.EntryLine
	err  error
}

func loadHistory(ctx context.Context, src Source) tea.Cmd {
	return func() tea.Msg {
		report, err := src.History(ctx)
		return historyLoadedMsg{report: report, err: err}
	}
}

func addEntry(ctx context.Context, src Source, in model.NewEntry) tea.Cmd {
	return func() tea.Msg {
		line, err := src.AddEntry(ctx, in)
		return entryAddedMsg{line: line, err: err}
	}
}
