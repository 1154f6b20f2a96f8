package tui

import (
	"fmt"
	"strings"
	"time"

	"habitmind/internal/analytics"
	"habitmind/internal/models"
)

func todayString() string {
	return time.Now().Format(models.DayLayout)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	// Tab bar
	var tabs []string
	for i, name := range tabNames {
		if Tab(i) == m.tab {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}
	b.WriteString(strings.Join(tabs, " "))
	b.WriteString("\n\n")

	switch m.state {
	case StateAddHabit:
		if m.form != nil {
			b.WriteString(m.form.View())
		}
	case StateConfirmDelete:
		b.WriteString("Delete this habit permanently? (y/n)\n")
	default:
		switch m.tab {
		case TabHabits:
			b.WriteString(m.viewHabits())
		case TabMood:
			b.WriteString(m.viewMood())
		case TabStats:
			b.WriteString(m.viewStats())
		}
	}

	if m.err != nil {
		b.WriteString("\n" + errStyle.Render(m.err.Error()) + "\n")
	}

	b.WriteString("\n" + m.help.View(m.keys))
	return b.String()
}

func (m Model) viewHabits() string {
	habits := m.tracker.Habits()
	if len(habits) == 0 {
		return dimStyle.Render("No habits yet. Press 'a' to add one.") + "\n"
	}

	day := todayString()
	var b strings.Builder
	for i, h := range habits {
		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
		}

		box := "[ ]"
		title := h.Title
		if h.CompletedOn(day) {
			box = doneStyle.Render("[x]")
			title = doneStyle.Render(title)
		}

		fmt.Fprintf(&b, "%s%s %s %s\n", cursor, box, title,
			dimStyle.Render(fmt.Sprintf("(%s, streak %d)", h.Frequency, h.Streak)))
	}
	return b.String()
}

func (m Model) viewMood() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Log: 1 Happy  2 Stressed  3 Tired  4 Focused"))
	b.WriteString("\n")

	history := m.tracker.MoodHistory()
	if len(history) == 0 {
		b.WriteString(dimStyle.Render("No mood entries yet.") + "\n")
		return b.String()
	}

	for i, e := range history {
		if i >= 12 {
			break
		}
		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
		}
		line := fmt.Sprintf("%s%-8s %s", cursor, e.Mood, dimStyle.Render(e.Date))
		if e.Note != "" {
			line += " " + dimStyle.Render("— "+e.Note)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (m Model) viewStats() string {
	state := m.tracker.State()
	snap := analytics.Compute(state.Habits, state.MoodHistory, time.Now())

	var b strings.Builder
	fmt.Fprintf(&b, "Habit score       %d (%s)\n", snap.Score, snap.Grade)
	fmt.Fprintf(&b, "7-day consistency %d%%\n", snap.Consistency)
	fmt.Fprintf(&b, "Today             %d%%\n", snap.TodayCompletion)
	fmt.Fprintf(&b, "Best streak       %d\n", snap.BestStreak)
	if snap.HasBestMood {
		fmt.Fprintf(&b, "Productive mood   %s\n", snap.BestMood)
	}

	b.WriteString("\n")
	for _, day := range snap.Week {
		mood := dimStyle.Render("  —")
		if day.MoodScore != nil {
			mood = fmt.Sprintf("%3.0f", *day.MoodScore)
		}
		fmt.Fprintf(&b, "%s  %3d%% %s  mood %s\n",
			day.Day, day.CompletionRate, sparkbar(day.CompletionRate), mood)
	}
	return b.String()
}

func sparkbar(pct int) string {
	filled := pct / 10
	return doneStyle.Render(strings.Repeat("█", filled)) +
		dimStyle.Render(strings.Repeat("░", 10-filled))
}
