package cli

import (
	"fmt"

	"habitmind/internal/models"
)

type HabitAddCmd struct {
	Title     string `arg:"" help:"Habit title."`
	Frequency string `short:"f" help:"Frequency (daily|weekly)." default:"daily"`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	if err := ctx.loadTracker(); err != nil {
		return err
	}

	var freq models.Frequency
	switch c.Frequency {
	case "daily":
		freq = models.FrequencyDaily
	case "weekly":
		freq = models.FrequencyWeekly
	default:
		return fmt.Errorf("invalid frequency: %s", c.Frequency)
	}

	habit, err := ctx.Tracker.AddHabit(c.Title, freq)
	if err != nil {
		return err
	}

	fmt.Printf("Added habit: %s (%s) [%s]\n", habit.Title, habit.Frequency, shortID(habit.ID))
	return nil
}
