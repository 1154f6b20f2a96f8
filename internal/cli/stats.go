package cli

import (
	"fmt"
	"strings"
	"time"

	"habitmind/internal/analytics"
)

type StatsCmd struct{}

func (c *StatsCmd) Run(ctx *Context) error {
	if err := ctx.loadTracker(); err != nil {
		return err
	}

	state := ctx.Tracker.State()
	snap := analytics.Compute(state.Habits, state.MoodHistory, time.Now())

	fmt.Printf("Habit score:      %d (%s)\n", snap.Score, snap.Grade)
	fmt.Printf("7-day consistency: %d%%\n", snap.Consistency)
	fmt.Printf("Today:            %d%% of habits done\n", snap.TodayCompletion)
	fmt.Printf("Best streak:      %d\n", snap.BestStreak)
	if snap.HasBestMood {
		fmt.Printf("Most productive mood: %s\n", snap.BestMood)
	}

	fmt.Println("\nLast 7 days:")
	for _, day := range snap.Week {
		mood := "  -"
		if day.MoodScore != nil {
			mood = fmt.Sprintf("%3.0f", *day.MoodScore)
		}
		fmt.Printf("  %s  done %3d%%  mood %s  %s\n",
			day.Day, day.CompletionRate, mood, bar(day.CompletionRate))
	}
	return nil
}

func bar(pct int) string {
	filled := pct / 10
	return strings.Repeat("#", filled) + strings.Repeat(".", 10-filled)
}
