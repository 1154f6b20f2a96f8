package cli

import "fmt"

type HabitDoneCmd struct {
	Habit string `arg:"" help:"Habit id or title prefix."`
	Date  string `short:"d" help:"Date to toggle (YYYY-MM-DD, 'today', 'yesterday')." default:"today"`
}

func (c *HabitDoneCmd) Run(ctx *Context) error {
	if err := ctx.loadTracker(); err != nil {
		return err
	}

	day, err := resolveDay(c.Date)
	if err != nil {
		return err
	}

	habit, err := ctx.Tracker.FindHabit(c.Habit)
	if err != nil {
		return err
	}

	updated, err := ctx.Tracker.ToggleCompletion(habit.ID, day)
	if err != nil {
		return err
	}

	if updated.CompletedOn(day) {
		fmt.Printf("Marked %q done for %s (streak %d)\n", updated.Title, day, updated.Streak)
	} else {
		fmt.Printf("Unmarked %q for %s (streak %d)\n", updated.Title, day, updated.Streak)
	}
	return nil
}
