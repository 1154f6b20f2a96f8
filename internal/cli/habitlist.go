package cli

import "fmt"

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *Context) error {
	if err := ctx.loadTracker(); err != nil {
		return err
	}

	habits := ctx.Tracker.Habits()
	if len(habits) == 0 {
		fmt.Println("No habits yet. Add one with 'habitmind habit add <title>'.")
		return nil
	}

	day := today()
	for _, h := range habits {
		fmt.Printf("%s %-30s %-7s streak %-3d [%s]\n",
			checkbox(h.CompletedOn(day)), h.Title, h.Frequency, h.Streak, shortID(h.ID))
	}
	return nil
}
