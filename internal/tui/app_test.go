package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saadjs/caltrack/internal/i18n"
	"github.com/saadjs/caltrack/internal/model"
	"github.com/saadjs/caltrack/internal/nutrition"
	"github.com/saadjs/caltrack/internal/service"
)

type fakeSource struct {
	report  *service.HistoryReport
	added   []model.NewEntry
	addErr  error
	histErr error
}

func (f *fakeSource) History(context.Context) (*service.HistoryReport, error) {
	return f.report, f.histErr
}

func (f *fakeSource) AddEntry(_ context.Context, in model.NewEntry) (service.EntryLine, error) {
	if f.addErr != nil {
		return service.EntryLine{}, f.addErr
	}
	f.added = append(f.added, in)
	e := model.Entry{Name: in.Name, AmountG: in.AmountG, CaloriesPer100G: in.CaloriesPer100G}
	return service.EntryLine{Entry: e, Calories: nutrition.CalculateCalories(e)}, nil
}

func sampleReport() *service.HistoryReport {
	return &service.HistoryReport{
		Goal:     2000,
		GoalType: model.GoalTypeManual,
		Days: []service.HistoryDay{
			{DailyBucket: model.DailyBucket{Date: "2026-03-02", TotalCalories: 2100, Entries: []model.Entry{{Name: "pizza", AmountG: 500}}}, Band: nutrition.BandDanger},
			{DailyBucket: model.DailyBucket{Date: "2026-03-01", TotalCalories: 900, Entries: []model.Entry{{Name: "soup", AmountG: 300}}}, Band: nutrition.BandUnder},
		},
	}
}

// drive feeds msg to the app and runs the returned commands until none
// produce a message.
func drive(t *testing.T, a *App, msg tea.Msg) {
	t.Helper()
	if msg == nil {
		return
	}
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, cmd := range batch {
			if cmd != nil {
				drive(t, a, cmd())
			}
		}
		return
	}
	_, cmd := a.Update(msg)
	if cmd != nil {
		drive(t, a, cmd())
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(t *testing.T, a *App, text string) {
	t.Helper()
	for _, r := range text {
		drive(t, a, key(string(r)))
	}
}

func TestHistoryLoadsAndNavigates(t *testing.T) {
	t.Parallel()
	src := &fakeSource{report: sampleReport()}
	a := New(context.Background(), src, i18n.MustNew("en"))
	drive(t, a, a.Init()())

	view := a.View()
	assert.Contains(t, view, "Goal: 2,000 kcal (manual)")
	assert.Contains(t, view, "> 2026-03-02  2,100 kcal  (1 entries)")
	assert.Contains(t, view, "danger")

	drive(t, a, key("down"))
	drive(t, a, key("enter"))
	view = a.View()
	assert.Contains(t, view, "> 2026-03-01")
	assert.Contains(t, view, "soup")
	assert.NotContains(t, view, "pizza")
}

func TestHistoryShowsEmptyAndErrorStates(t *testing.T) {
	t.Parallel()
	a := New(context.Background(), &fakeSource{report: &service.HistoryReport{}}, i18n.MustNew("de"))
	drive(t, a, a.Init()())
	assert.Contains(t, a.View(), "Noch kein Verlauf")

	b := New(context.Background(), &fakeSource{histErr: errors.New("disk gone")}, nil)
	drive(t, b, b.Init()())
	assert.Contains(t, b.View(), "disk gone")
}

func TestQuickAddSubmitsEntryAndReloads(t *testing.T) {
	t.Parallel()
	src := &fakeSource{report: sampleReport()}
	a := New(context.Background(), src, i18n.MustNew("en"))
	drive(t, a, a.Init()())

	drive(t, a, key("a"))
	require.Equal(t, pageAdd, a.page)
	typeText(t, a, "oats")
	drive(t, a, key("enter"))
	typeText(t, a, "50")
	drive(t, a, key("enter"))
	typeText(t, a, "380")
	drive(t, a, key("enter"))
	typeText(t, a, "13,5")
	drive(t, a, key("enter"))
	drive(t, a, key("enter"))
	drive(t, a, key("enter"))

	require.Len(t, src.added, 1)
	got := src.added[0]
	assert.Equal(t, "oats", got.Name)
	assert.Equal(t, 50.0, got.AmountG)
	assert.Equal(t, 380.0, got.CaloriesPer100G)
	assert.Equal(t, 13.5, got.ProteinPer100G)
	assert.Equal(t, pageHistory, a.page)
	assert.Contains(t, a.View(), "Added oats: 190 kcal")
}

func TestQuickAddValidatesAndEscapes(t *testing.T) {
	t.Parallel()
	src := &fakeSource{report: sampleReport()}
	a := New(context.Background(), src, nil)
	drive(t, a, a.Init()())
	drive(t, a, key("a"))

	for i := 0; i < fieldCount; i++ {
		drive(t, a, key("enter"))
	}
	assert.Contains(t, a.View(), "name is required")
	assert.Empty(t, src.added)

	drive(t, a, key("esc"))
	assert.Equal(t, pageHistory, a.page)
	assert.True(t, strings.Contains(a.View(), "2026-03-02"))
}

func TestQuickAddShowsStoreError(t *testing.T) {
	t.Parallel()
	src := &fakeSource{report: sampleReport(), addErr: errors.New("invalid input: amount")}
	a := New(context.Background(), src, nil)
	drive(t, a, a.Init()())
	drive(t, a, key("a"))
	typeText(t, a, "x")
	for _, v := range []string{"1", "1"} {
		drive(t, a, key("enter"))
		typeText(t, a, v)
	}
	for i := fieldCalories; i < fieldCount; i++ {
		drive(t, a, key("enter"))
	}
	assert.Equal(t, pageAdd, a.page)
	assert.Contains(t, a.View(), "invalid input: amount")
}
