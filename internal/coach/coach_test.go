package coach

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"habitmind/internal/models"
)

var now = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

type stubGenerator struct {
	response string
	err      error
	prompt   string
}

func (g *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.prompt = prompt
	return g.response, g.err
}

func habitsWithRate(done, total int) []models.Habit {
	today := now.Format(models.DayLayout)
	habits := make([]models.Habit, total)
	for i := range habits {
		habits[i] = models.Habit{ID: string(rune('a' + i)), Title: "h", Frequency: models.FrequencyDaily}
		if i < done {
			habits[i].CompletedDates = []string{today}
		}
	}
	return habits
}

func entries(moods ...models.Mood) []models.MoodEntry {
	out := make([]models.MoodEntry, len(moods))
	for i, m := range moods {
		out[i] = models.MoodEntry{
			ID:   string(rune('a' + i)),
			Date: now.Add(-time.Duration(i) * time.Hour).Format(time.RFC3339),
			Mood: m,
		}
	}
	return out
}

func TestFallbackPerfectDayOverridesStressedTemplate(t *testing.T) {
	advice := Fallback("Stressed", 1.0, MoodPattern{Trend: TrendStable})

	// The 100% override replaces the raw Stressed template text.
	assert.NotEqual(t, templates["Stressed"].Improvement, advice.Improvement)
	assert.NotEqual(t, templates["Stressed"].Encouragement, advice.Encouragement)
	assert.Contains(t, advice.Improvement, "Perfect day")
	// Bonus action item on top of the template's three.
	assert.Len(t, advice.ActionItems, 4)
	// The focus line still comes from the Stressed bundle.
	assert.Equal(t, templates["Stressed"].Focus, advice.Focus)
}

func TestFallbackLowCompletionReplacesActionItems(t *testing.T) {
	advice := Fallback("Happy", 0.2, MoodPattern{Trend: TrendStable})

	assert.Contains(t, advice.Improvement, "Start small")
	require.Len(t, advice.ActionItems, 3)
	assert.NotEqual(t, templates["Happy"].ActionItems, advice.ActionItems)
}

func TestFallbackHighCompletionPraisesCount(t *testing.T) {
	advice := Fallback("Tired", 0.75, MoodPattern{Trend: TrendStable})

	assert.Contains(t, advice.Encouragement, "75%")
	// Improvement stays from the template at this band.
	assert.Equal(t, templates["Tired"].Improvement, advice.Improvement)
}

func TestFallbackUnknownMoodUsesDefaultBundle(t *testing.T) {
	advice := Fallback("Neutral", 0.5, MoodPattern{})
	assert.Equal(t, templates["Neutral"].Focus, advice.Focus)

	advice = Fallback("Confused", 0.5, MoodPattern{})
	assert.Equal(t, templates["Neutral"].Focus, advice.Focus)
}

func TestFallbackAppendsTrendClause(t *testing.T) {
	improving := Fallback("Focused", 0.5, MoodPattern{Trend: TrendImproving})
	assert.Contains(t, improving.MoodInsight, "trending up")

	declining := Fallback("Focused", 0.5, MoodPattern{Trend: TrendDeclining})
	assert.Contains(t, declining.MoodInsight, "dipping")

	stable := Fallback("Focused", 0.5, MoodPattern{Trend: TrendStable})
	assert.Equal(t, templates["Focused"].MoodInsight, stable.MoodInsight)
}

func TestFallbackAlwaysPopulatesEveryField(t *testing.T) {
	for _, mood := range []string{"Happy", "Stressed", "Tired", "Focused", "Neutral"} {
		for _, rate := range []float64{0, 0.2, 0.5, 0.7, 1.0} {
			advice := Fallback(mood, rate, MoodPattern{})
			assert.NotEmpty(t, advice.Focus, "%s/%v", mood, rate)
			assert.NotEmpty(t, advice.Improvement, "%s/%v", mood, rate)
			assert.NotEmpty(t, advice.Encouragement, "%s/%v", mood, rate)
			assert.NotEmpty(t, advice.MoodInsight, "%s/%v", mood, rate)
			assert.NotEmpty(t, advice.ActionItems, "%s/%v", mood, rate)
		}
	}
}

func TestAnalyzeMoodPattern(t *testing.T) {
	// Recent 3 all positive, previous 3 all negative: improving.
	p := AnalyzeMoodPattern(entries(
		models.MoodHappy, models.MoodFocused, models.MoodHappy,
		models.MoodTired, models.MoodStressed, models.MoodTired,
	))
	assert.Equal(t, TrendImproving, p.Trend)

	// Reversed: declining.
	p = AnalyzeMoodPattern(entries(
		models.MoodTired, models.MoodStressed, models.MoodTired,
		models.MoodHappy, models.MoodFocused, models.MoodHappy,
	))
	assert.Equal(t, TrendDeclining, p.Trend)
	assert.Equal(t, models.MoodTired, p.Dominant)

	// Too little data reads as stable.
	p = AnalyzeMoodPattern(entries(models.MoodHappy, models.MoodHappy))
	assert.Equal(t, TrendStable, p.Trend)
	assert.Equal(t, models.MoodHappy, p.Dominant)

	p = AnalyzeMoodPattern(nil)
	assert.Equal(t, TrendStable, p.Trend)
}

func TestStripCodeFence(t *testing.T) {
	fenced := "```json\n{\"focus\": \"x\"}\n```"
	assert.Equal(t, `{"focus": "x"}`, stripCodeFence(fenced))

	bare := `{"focus": "x"}`
	assert.Equal(t, bare, stripCodeFence(bare))

	plainFence := "```\n{\"focus\": \"x\"}\n```"
	assert.Equal(t, `{"focus": "x"}`, stripCodeFence(plainFence))
}

func newTestSummarizer(gen TextGenerator) *Summarizer {
	s := NewSummarizer(gen, nil)
	s.now = func() time.Time { return now }
	return s
}

func TestCoachUsesGeneratorResponse(t *testing.T) {
	gen := &stubGenerator{response: "```json\n" + `{
		"focus": "model focus",
		"improvement": "model improvement",
		"encouragement": "model encouragement",
		"moodInsight": "model insight",
		"actionItems": ["a", "b"]
	}` + "\n```"}

	advice := newTestSummarizer(gen).Coach(context.Background(), habitsWithRate(1, 2), entries(models.MoodHappy))
	assert.Equal(t, "model focus", advice.Focus)
	assert.Equal(t, []string{"a", "b"}, advice.ActionItems)
}

func TestCoachFallsBackOnGeneratorError(t *testing.T) {
	gen := &stubGenerator{err: errors.New("network down")}

	advice := newTestSummarizer(gen).Coach(context.Background(), habitsWithRate(2, 2), entries(models.MoodStressed))
	// Transport failure degrades to the template path; the raw error never
	// surfaces in the result.
	assert.Contains(t, advice.Improvement, "Perfect day")
	assert.NotContains(t, advice.Focus, "network down")
}

func TestCoachFallsBackOnMalformedResponse(t *testing.T) {
	gen := &stubGenerator{response: "sorry, I can't help with that"}

	advice := newTestSummarizer(gen).Coach(context.Background(), nil, entries(models.MoodTired))
	assert.Equal(t, templates["Tired"].Focus, advice.Focus)
}

func TestCoachFallsBackOnMissingRequiredFields(t *testing.T) {
	gen := &stubGenerator{response: `{"focus": "only focus"}`}

	advice := newTestSummarizer(gen).Coach(context.Background(), nil, nil)
	assert.Equal(t, templates["Neutral"].Focus, advice.Focus)
}

func TestCoachWithoutGeneratorUsesFallback(t *testing.T) {
	advice := newTestSummarizer(nil).Coach(context.Background(), nil, nil)
	assert.NotEmpty(t, advice.Focus)
	assert.NotEmpty(t, advice.ActionItems)
}

func TestBuildPromptSummarizesState(t *testing.T) {
	habits := []models.Habit{
		{Title: "Drink water", Frequency: models.FrequencyDaily, Streak: 3,
			CompletedDates: []string{now.Format(models.DayLayout)}},
		{Title: "Read", Frequency: models.FrequencyWeekly, Streak: 1},
	}
	history := entries(models.MoodFocused, models.MoodTired)

	prompt := BuildPrompt(habits, history, now)
	assert.Contains(t, prompt, "Drink water (daily): done today, streak 3")
	assert.Contains(t, prompt, "Read (weekly): not done today, streak 1")
	assert.Contains(t, prompt, "Focused")
	assert.Contains(t, prompt, `"focus"`)
}

func TestBuildPromptCapsMoodHistoryAtSeven(t *testing.T) {
	history := entries(
		models.MoodHappy, models.MoodHappy, models.MoodHappy, models.MoodHappy,
		models.MoodHappy, models.MoodHappy, models.MoodHappy, models.MoodTired,
	)
	prompt := BuildPrompt(nil, history, now)
	assert.Equal(t, 7, strings.Count(prompt, "Happy ("))
	assert.NotContains(t, prompt, "Tired")
}

func TestCompletionRate(t *testing.T) {
	assert.Equal(t, 0.0, CompletionRate(nil, now))
	assert.Equal(t, 0.5, CompletionRate(habitsWithRate(1, 2), now))
	assert.Equal(t, 1.0, CompletionRate(habitsWithRate(3, 3), now))
}
