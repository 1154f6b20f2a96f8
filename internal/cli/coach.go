package cli

import (
	"context"
	"fmt"

	"habitmind/internal/coach"
)

type CoachCmd struct {
	APIKey string `help:"Override the stored coaching API key." env:"HABITMIND_API_KEY"`
}

func (c *CoachCmd) Run(ctx *Context) error {
	if err := ctx.loadTracker(); err != nil {
		return err
	}
	state := ctx.Tracker.State()

	key := c.APIKey
	if key == "" {
		key = state.APIKey
	}

	// A missing or broken coaching backend is never fatal: the summarizer
	// degrades to its deterministic templates.
	var gen coach.TextGenerator
	if key != "" {
		g, err := coach.NewGeminiGenerator(context.Background(), key, "")
		if err != nil {
			ctx.Logger.Debug("coaching backend unavailable, using templates")
		} else {
			gen = g
		}
	}

	advice := coach.NewSummarizer(gen, ctx.Logger).
		Coach(context.Background(), state.Habits, state.MoodHistory)

	fmt.Printf("Focus:         %s\n", advice.Focus)
	fmt.Printf("Improvement:   %s\n", advice.Improvement)
	fmt.Printf("Encouragement: %s\n", advice.Encouragement)
	if advice.MoodInsight != "" {
		fmt.Printf("Mood insight:  %s\n", advice.MoodInsight)
	}
	if len(advice.ActionItems) > 0 {
		fmt.Println("Action items:")
		for _, item := range advice.ActionItems {
			fmt.Printf("  - %s\n", item)
		}
	}
	return nil
}
