package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"habitmind/internal/models"
	"habitmind/internal/vision"
)

type MoodDetectCmd struct {
	Detector string        `help:"Landmark detector endpoint." default:""`
	Timeout  time.Duration `help:"Give up after this long without a stable mood." default:"30s"`
	Window   int           `help:"Frames in the majority-vote window." default:"12"`
	DryRun   bool          `help:"Classify without recording a mood entry."`
}

func (c *MoodDetectCmd) Run(cliCtx *Context) error {
	if err := cliCtx.loadTracker(); err != nil {
		return err
	}

	endpoint := c.Detector
	if endpoint == "" {
		endpoint = cliCtx.DetectorURL
	}

	source := vision.NewHTTPSource(endpoint)
	session := vision.NewSession(source, cliCtx.Logger,
		vision.WithTimeout(c.Timeout),
		vision.WithWindow(c.Window),
		vision.WithStatus(func(s string) {
			fmt.Printf("\r%-30s", s)
		}),
	)

	// Ctrl-C stops the session without recording anything.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := session.Run(ctx)
	fmt.Println()
	switch {
	case errors.Is(err, vision.ErrDetectionTimeout):
		return fmt.Errorf("detection timed out; no mood recorded")
	case errors.Is(err, context.Canceled):
		fmt.Println("Detection cancelled; no mood recorded.")
		return nil
	case err != nil:
		return err
	}

	fmt.Printf("Detected mood: %s (smile %.2f, EAR %.2f, curve %+.3f)\n",
		result.Mood, result.Metrics.SmileRatio, result.Metrics.AvgEAR, result.Metrics.MouthCurvature)

	if c.DryRun {
		return nil
	}

	entry, err := cliCtx.Tracker.AddMoodEntry(result.Mood, models.SourceWebcam, "")
	if err != nil {
		return err
	}
	fmt.Printf("Recorded mood entry at %s\n", entry.Date)
	return nil
}
