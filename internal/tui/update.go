package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"habitmind/internal/models"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		switch m.state {
		case StateAddHabit:
			return m.updateAddHabit(msg)
		case StateConfirmDelete:
			return m.updateConfirmDelete(msg)
		default:
			return m.updateBrowse(msg)
		}
	}

	if m.state == StateAddHabit && m.form != nil {
		form, cmd := m.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.form = f
		}
		return m, cmd
	}
	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	habits := m.tracker.Habits()

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.NextTab):
		m.tab = (m.tab + 1) % Tab(len(tabNames))
		m.cursor = 0

	case key.Matches(msg, m.keys.PrevTab):
		m.tab = (m.tab + Tab(len(tabNames)) - 1) % Tab(len(tabNames))
		m.cursor = 0

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if limit := m.listLen(); m.cursor < limit-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Toggle):
		if m.tab == TabHabits && m.cursor < len(habits) {
			_, err := m.tracker.ToggleCompletion(habits[m.cursor].ID, todayString())
			m.err = err
		}

	case key.Matches(msg, m.keys.Add):
		if m.tab == TabHabits {
			m.state = StateAddHabit
			m.newHabitForm()
			return m, m.form.Init()
		}

	case key.Matches(msg, m.keys.Delete):
		if m.tab == TabHabits && m.cursor < len(habits) {
			m.state = StateConfirmDelete
			m.deleteTarget = habits[m.cursor].ID
		}

	default:
		// On the mood tab, 1-4 log a manual mood entry.
		if m.tab == TabMood {
			if idx := moodHotkey(msg.String()); idx >= 0 {
				_, err := m.tracker.AddMoodEntry(models.Moods[idx], models.SourceManual, "")
				m.err = err
			}
		}
	}

	return m, nil
}

func (m Model) updateAddHabit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		m.state = StateBrowse
		m.form = nil
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		_, err := m.tracker.AddHabit(m.formModel.Title, models.Frequency(m.formModel.Frequency))
		m.err = err
		m.state = StateBrowse
		m.form = nil
	}
	return m, cmd
}

func (m Model) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.tracker.DeleteHabit(m.deleteTarget)
		if m.cursor > 0 {
			m.cursor--
		}
	}
	m.state = StateBrowse
	m.deleteTarget = ""
	return m, nil
}

func (m Model) listLen() int {
	switch m.tab {
	case TabHabits:
		return len(m.tracker.Habits())
	case TabMood:
		return len(m.tracker.MoodHistory())
	default:
		return 0
	}
}

func moodHotkey(s string) int {
	switch s {
	case "1":
		return 0
	case "2":
		return 1
	case "3":
		return 2
	case "4":
		return 3
	}
	return -1
}
