package cli

import (
	"fmt"

	"habitmind/internal/models"
)

type MoodLogCmd struct {
	Mood string `arg:"" help:"Mood (Happy|Stressed|Tired|Focused)."`
	Note string `short:"n" help:"Optional note."`
}

func (c *MoodLogCmd) Run(ctx *Context) error {
	if err := ctx.loadTracker(); err != nil {
		return err
	}

	mood, err := models.ParseMood(c.Mood)
	if err != nil {
		return err
	}

	entry, err := ctx.Tracker.AddMoodEntry(mood, models.SourceManual, c.Note)
	if err != nil {
		return err
	}

	fmt.Printf("Logged mood: %s at %s\n", entry.Mood, entry.Date)
	return nil
}
