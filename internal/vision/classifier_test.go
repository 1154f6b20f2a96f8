package vision

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"habitmind/internal/models"
)

func TestClassifyNoSignalDefaultsToFocused(t *testing.T) {
	// Engineered so every band misses: no smile, flat curvature, eyes just
	// outside both the neutral and the wide band, brows above the neutral
	// band.
	m := Metrics{
		SmileRatio:     0.40,
		MouthOpenRatio: 0.10,
		AvgEAR:         0.335,
		LeftEAR:        0.335,
		RightEAR:       0.335,
		BrowRatio:      0.15,
		MouthCurvature: 0,
	}

	r := Classify(m)
	assert.Equal(t, Scores{}, r.Scores)
	assert.Equal(t, models.MoodFocused, r.Mood)
}

func TestClassifyClearMarginHappy(t *testing.T) {
	m := Metrics{
		SmileRatio:     0.50,
		MouthOpenRatio: 0.30,
		AvgEAR:         0.30,
		LeftEAR:        0.30,
		RightEAR:       0.30,
		BrowRatio:      0.10,
		MouthCurvature: 0.03,
	}

	r := Classify(m)
	assert.Equal(t, 5, r.Scores.Happy)
	assert.LessOrEqual(t, r.Scores.Stressed, 1)
	assert.LessOrEqual(t, r.Scores.Tired, 1)
	assert.LessOrEqual(t, r.Scores.Focused, 1)
	assert.Equal(t, models.MoodHappy, r.Mood)
}

func TestClassifyThinMarginRejected(t *testing.T) {
	// Stressed=2 (mild frown + low brow), Tired=1 (slightly low EAR):
	// a one-point lead below the confidence bar falls back to Focused.
	m := Metrics{
		SmileRatio:     0.40,
		MouthOpenRatio: 0.10,
		AvgEAR:         0.24,
		LeftEAR:        0.24,
		RightEAR:       0.24,
		BrowRatio:      0.08,
		MouthCurvature: -0.01,
	}

	r := Classify(m)
	assert.Equal(t, 2, r.Scores.Stressed)
	assert.Equal(t, 1, r.Scores.Tired)
	assert.Equal(t, models.MoodFocused, r.Mood)
}

func TestClassifyTiredWithClearMargin(t *testing.T) {
	// Heavy lids plus a yawn.
	m := Metrics{
		SmileRatio:     0.40,
		MouthOpenRatio: 0.45,
		AvgEAR:         0.15,
		LeftEAR:        0.15,
		RightEAR:       0.15,
		BrowRatio:      0.10,
		MouthCurvature: 0,
	}

	r := Classify(m)
	assert.Equal(t, 5, r.Scores.Tired)
	assert.Equal(t, models.MoodTired, r.Mood)
}

func TestClassifyFrownOverridesWideMouth(t *testing.T) {
	// A wide mouth with downturned corners is a grimace, not a smile: the
	// curvature penalty must zero out the smile-ratio contribution.
	m := Metrics{
		SmileRatio:     0.50,
		MouthOpenRatio: 0.10,
		AvgEAR:         0.30,
		LeftEAR:        0.30,
		RightEAR:       0.30,
		BrowRatio:      0.07,
		MouthCurvature: -0.03,
	}

	r := Classify(m)
	assert.Equal(t, 0, r.Scores.Happy)
	assert.Equal(t, models.MoodStressed, r.Mood)
}

func TestClassifyNeutralBandScoresFocused(t *testing.T) {
	m := Metrics{
		SmileRatio:     0.40,
		MouthOpenRatio: 0.05,
		AvgEAR:         0.29,
		LeftEAR:        0.29,
		RightEAR:       0.29,
		BrowRatio:      0.10,
		MouthCurvature: 0.002,
	}

	r := Classify(m)
	assert.Equal(t, 3, r.Scores.Focused)
	assert.Equal(t, models.MoodFocused, r.Mood)
}

func TestSmootherMajority(t *testing.T) {
	s := NewSmoother(5)
	for _, m := range []models.Mood{
		models.MoodHappy, models.MoodTired, models.MoodHappy,
		models.MoodHappy, models.MoodFocused,
	} {
		s.Add(m)
	}

	assert.True(t, s.Full())
	mood, ok := s.Majority()
	assert.True(t, ok)
	assert.Equal(t, models.MoodHappy, mood)
}

func TestSmootherSlidesWindow(t *testing.T) {
	s := NewSmoother(3)
	s.Add(models.MoodTired)
	s.Add(models.MoodTired)
	s.Add(models.MoodHappy)
	s.Add(models.MoodHappy)
	s.Add(models.MoodHappy)

	// The two Tired frames have slid out.
	mood, _ := s.Majority()
	assert.Equal(t, models.MoodHappy, mood)
	assert.Equal(t, 3, s.Len())
}

func TestSmootherTieGoesToFirstReached(t *testing.T) {
	s := NewSmoother(4)
	s.Add(models.MoodTired)
	s.Add(models.MoodHappy)
	s.Add(models.MoodHappy)
	s.Add(models.MoodTired)

	// 2-2 tie; Tired reached count 2 last, Happy first.
	mood, _ := s.Majority()
	assert.Equal(t, models.MoodHappy, mood)
}

func TestSmootherEmpty(t *testing.T) {
	s := NewSmoother(3)
	_, ok := s.Majority()
	assert.False(t, ok)
	assert.False(t, s.Full())
}
