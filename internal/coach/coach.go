// Package coach builds a structured summary of habit and mood state, asks a
// generative-text capability for coaching advice, and degrades to a
// deterministic rule table when that capability is missing or misbehaves.
package coach

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"habitmind/internal/models"
)

// Advice is the coaching output contract. Focus, Improvement, and
// Encouragement are always present; the fallback path also always populates
// MoodInsight and ActionItems.
type Advice struct {
	Focus         string   `json:"focus"`
	Improvement   string   `json:"improvement"`
	Encouragement string   `json:"encouragement"`
	MoodInsight   string   `json:"moodInsight,omitempty"`
	ActionItems   []string `json:"actionItems,omitempty"`
}

// TextGenerator is the external coaching capability.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type Trend string

const (
	TrendImproving Trend = "improving"
	TrendDeclining Trend = "declining"
	TrendStable    Trend = "stable"
)

type MoodPattern struct {
	Trend    Trend
	Dominant models.Mood
}

// Summarizer dispatches to the generator when one is configured and falls
// back to the template table otherwise. The raw generator error never reaches
// the caller.
type Summarizer struct {
	gen    TextGenerator
	logger *zap.Logger
	now    func() time.Time
}

func NewSummarizer(gen TextGenerator, logger *zap.Logger) *Summarizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Summarizer{
		gen:    gen,
		logger: logger,
		now:    time.Now,
	}
}

// Coach produces the advice bundle for the current state.
func (s *Summarizer) Coach(ctx context.Context, habits []models.Habit, history []models.MoodEntry) Advice {
	recentMood := "Neutral"
	if len(history) > 0 {
		recentMood = string(history[0].Mood)
	}
	pattern := AnalyzeMoodPattern(history)
	rate := CompletionRate(habits, s.now())

	if s.gen != nil {
		advice, err := s.generate(ctx, habits, history)
		if err != nil {
			s.logger.Debug("coaching capability failed, using fallback", zap.Error(err))
		} else {
			return advice
		}
	}

	return Fallback(recentMood, rate, pattern)
}

func (s *Summarizer) generate(ctx context.Context, habits []models.Habit, history []models.MoodEntry) (Advice, error) {
	raw, err := s.gen.Generate(ctx, BuildPrompt(habits, history, s.now()))
	if err != nil {
		return Advice{}, fmt.Errorf("generate: %w", err)
	}

	var advice Advice
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &advice); err != nil {
		return Advice{}, fmt.Errorf("malformed coaching response: %w", err)
	}
	if advice.Focus == "" || advice.Improvement == "" || advice.Encouragement == "" {
		return Advice{}, fmt.Errorf("coaching response missing required fields")
	}
	return advice, nil
}

// BuildPrompt renders the structured habit and mood summary sent to the
// coaching capability.
func BuildPrompt(habits []models.Habit, history []models.MoodEntry, now time.Time) string {
	today := now.Format(models.DayLayout)

	var b strings.Builder
	b.WriteString("You are a supportive habit coach. Based on the data below, reply with JSON only:\n")
	b.WriteString(`{"focus": string, "improvement": string, "encouragement": string, "moodInsight": string, "actionItems": [string, string, string]}`)
	b.WriteString("\n\nHabits:\n")
	if len(habits) == 0 {
		b.WriteString("- none yet\n")
	}
	for _, h := range habits {
		status := "not done today"
		if h.CompletedOn(today) {
			status = "done today"
		}
		fmt.Fprintf(&b, "- %s (%s): %s, streak %d\n", h.Title, h.Frequency, status, h.Streak)
	}

	b.WriteString("\nRecent moods (most recent first):\n")
	if len(history) == 0 {
		b.WriteString("- none recorded\n")
	}
	for i, e := range history {
		if i >= 7 {
			break
		}
		fmt.Fprintf(&b, "- %s: %s (%s)\n", e.Date, e.Mood, e.Source)
	}
	return b.String()
}

// AnalyzeMoodPattern derives a trend and dominant mood from the last 7
// entries. The trend compares positive-mood counts (Happy/Focused) between
// the 3 most recent entries and the 3 before them; fewer than 6 entries reads
// as stable.
func AnalyzeMoodPattern(history []models.MoodEntry) MoodPattern {
	window := history
	if len(window) > 7 {
		window = window[:7]
	}

	pattern := MoodPattern{Trend: TrendStable}
	if len(window) == 0 {
		return pattern
	}

	counts := make(map[models.Mood]int, 4)
	for _, e := range window {
		counts[e.Mood]++
	}
	best := 0
	for _, m := range models.Moods {
		if counts[m] > best {
			best = counts[m]
			pattern.Dominant = m
		}
	}

	if len(window) >= 6 {
		recent := positiveCount(window[:3])
		previous := positiveCount(window[3:6])
		switch {
		case recent > previous:
			pattern.Trend = TrendImproving
		case recent < previous:
			pattern.Trend = TrendDeclining
		}
	}
	return pattern
}

func positiveCount(entries []models.MoodEntry) int {
	n := 0
	for _, e := range entries {
		if e.Mood == models.MoodHappy || e.Mood == models.MoodFocused {
			n++
		}
	}
	return n
}

// CompletionRate is the fraction of habits completed today, in [0,1].
func CompletionRate(habits []models.Habit, now time.Time) float64 {
	if len(habits) == 0 {
		return 0
	}
	today := now.Format(models.DayLayout)
	done := 0
	for _, h := range habits {
		if h.CompletedOn(today) {
			done++
		}
	}
	return float64(done) / float64(len(habits))
}

// stripCodeFence removes markdown code-fence markers the capability sometimes
// wraps its JSON in.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
