package cli

import "fmt"

type MoodHistoryCmd struct {
	Limit int `short:"l" help:"Number of entries to show." default:"10"`
}

func (c *MoodHistoryCmd) Run(ctx *Context) error {
	if err := ctx.loadTracker(); err != nil {
		return err
	}

	history := ctx.Tracker.MoodHistory()
	if len(history) == 0 {
		fmt.Println("No mood entries yet. Log one with 'habitmind mood log <mood>'.")
		return nil
	}

	for i, e := range history {
		if i >= c.Limit {
			break
		}
		line := fmt.Sprintf("%s  %-8s (%s)", e.Date, e.Mood, e.Source)
		if e.Note != "" {
			line += "  " + e.Note
		}
		fmt.Println(line)
	}
	return nil
}
