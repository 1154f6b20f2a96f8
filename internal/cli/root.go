package cli

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"habitmind/internal/auth"
	"habitmind/internal/models"
	"habitmind/internal/storage"
	"habitmind/internal/tracker"
)

type Context struct {
	Store   storage.Provider
	Tracker *tracker.Tracker
	Auth    *auth.LocalProvider
	Logger  *zap.Logger

	// DetectorURL is the landmark-detector sidecar endpoint for `mood detect`.
	DetectorURL string
}

// loadTracker loads persisted state into the tracker; every mutating command
// starts here.
func (ctx *Context) loadTracker() error {
	return ctx.Tracker.Load()
}

func today() string {
	return time.Now().Format(models.DayLayout)
}

// resolveDay accepts "" (today), "today", "yesterday", or YYYY-MM-DD.
func resolveDay(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return today(), nil
	case "yesterday":
		return time.Now().AddDate(0, 0, -1).Format(models.DayLayout), nil
	}
	if _, err := time.Parse(models.DayLayout, s); err != nil {
		return "", fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return s, nil
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
