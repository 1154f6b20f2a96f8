package cli

import (
	"errors"
	"fmt"

	"habitmind/internal/tracker"
)

type HabitDeleteCmd struct {
	Habit string `arg:"" help:"Habit id or title prefix."`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
	if err := ctx.loadTracker(); err != nil {
		return err
	}

	habit, err := ctx.Tracker.FindHabit(c.Habit)
	if errors.Is(err, tracker.ErrHabitNotFound) {
		// Deleting something that's already gone is fine.
		fmt.Println("No such habit.")
		return nil
	}
	if err != nil {
		return err
	}

	ctx.Tracker.DeleteHabit(habit.ID)
	fmt.Printf("Deleted habit: %s\n", habit.Title)
	return nil
}
