package tui

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"habitmind/internal/tracker"
)

type Tab int

const (
	TabHabits Tab = iota
	TabMood
	TabStats
)

var tabNames = []string{"Habits", "Mood", "Stats"}

type SessionState int

const (
	StateBrowse SessionState = iota
	StateAddHabit
	StateConfirmDelete
)

type habitForm struct {
	Title     string
	Frequency string
}

type Model struct {
	tracker *tracker.Tracker
	keys    KeyMap
	help    help.Model

	tab    Tab
	state  SessionState
	cursor int

	form      *huh.Form
	formModel *habitForm

	deleteTarget string

	err      error
	quitting bool
	width    int
}

func New(tr *tracker.Tracker) Model {
	return Model{
		tracker: tr,
		keys:    DefaultKeyMap(),
		help:    help.New(),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m *Model) newHabitForm() {
	m.formModel = &habitForm{Frequency: "daily"}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Habit title").
				Value(&m.formModel.Title),
			huh.NewSelect[string]().
				Title("Frequency").
				Options(
					huh.NewOption("Daily", "daily"),
					huh.NewOption("Weekly", "weekly"),
				).
				Value(&m.formModel.Frequency),
		),
	)
}
