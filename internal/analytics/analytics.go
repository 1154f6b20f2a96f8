// Package analytics derives habit and mood statistics. Everything here is a
// pure function over the current collections; nothing mutates state.
package analytics

import (
	"math"
	"time"

	"habitmind/internal/models"
)

const windowDays = 7

// moodValues is the fixed mood-to-number mapping used for the weekly chart.
var moodValues = map[models.Mood]float64{
	models.MoodHappy:    100,
	models.MoodFocused:  80,
	models.MoodTired:    40,
	models.MoodStressed: 20,
}

// DayStat is one point of the trailing-week series. MoodScore is nil when no
// mood was recorded that day; a missing day must never average in as zero.
type DayStat struct {
	Day            string // YYYY-MM-DD
	CompletionRate int
	MoodScore      *float64
}

// Snapshot bundles every derived stat for one point in time.
type Snapshot struct {
	BestStreak      int
	Consistency     int
	TodayCompletion int
	Score           int
	Grade           string
	BestMood        models.Mood
	HasBestMood     bool
	Week            []DayStat
}

// Compute derives the full snapshot from the current collections.
func Compute(habits []models.Habit, history []models.MoodEntry, now time.Time) Snapshot {
	score := HabitScore(habits, now)
	best, ok := BestMoodForProductivity(habits, history)
	return Snapshot{
		BestStreak:      BestStreak(habits),
		Consistency:     Consistency(habits, now),
		TodayCompletion: TodayCompletion(habits, now),
		Score:           score,
		Grade:           Grade(score),
		BestMood:        best,
		HasBestMood:     ok,
		Week:            WeeklySeries(habits, history, now),
	}
}

// BestStreak is the maximum streak counter across all habits.
func BestStreak(habits []models.Habit) int {
	best := 0
	for _, h := range habits {
		if h.Streak > best {
			best = h.Streak
		}
	}
	return best
}

// Consistency is the percentage of possible completions achieved over the
// trailing 7-day window (today inclusive). Zero when there are no habits.
func Consistency(habits []models.Habit, now time.Time) int {
	if len(habits) == 0 {
		return 0
	}

	window := make(map[string]bool, windowDays)
	for i := 0; i < windowDays; i++ {
		window[now.AddDate(0, 0, -i).Format(models.DayLayout)] = true
	}

	done := 0
	for _, h := range habits {
		for _, d := range h.CompletedDates {
			if window[d] {
				done++
			}
		}
	}

	possible := len(habits) * windowDays
	return int(math.Round(float64(done) / float64(possible) * 100))
}

// TodayCompletion is the percentage of habits completed today.
func TodayCompletion(habits []models.Habit, now time.Time) int {
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
	return int(math.Round(float64(done) / float64(len(habits)) * 100))
}

// HabitScore blends consistency, today's completion, and a capped streak bonus
// into a composite 0-100 score.
func HabitScore(habits []models.Habit, now time.Time) int {
	consistency := float64(Consistency(habits, now))
	today := float64(TodayCompletion(habits, now))
	streakBonus := math.Min(float64(BestStreak(habits))*5, 100)
	return int(math.Round(0.4*consistency + 0.4*today + 0.2*streakBonus))
}

// Grade maps a habit score to a letter grade.
func Grade(score int) string {
	switch {
	case score >= 90:
		return "A+"
	case score >= 80:
		return "A"
	case score >= 70:
		return "B"
	case score >= 60:
		return "C"
	default:
		return "D"
	}
}

// BestMoodForProductivity tallies habit completions against the mood recorded
// on the same calendar day and returns the mood with the most raw completions.
// The tally is not normalized by how often each mood was logged, so a mood
// that is simply logged most often is favored; this is a known weakness kept
// for parity with the shipped behavior. Returns false when no completion
// coincides with a recorded mood.
func BestMoodForProductivity(habits []models.Habit, history []models.MoodEntry) (models.Mood, bool) {
	// date -> mood, last write wins while scanning the most-recent-first
	// history (so the earliest entry of a day ends up in the lookup).
	moodByDay := make(map[string]models.Mood, len(history))
	for _, e := range history {
		day, ok := entryDay(e)
		if !ok {
			continue
		}
		moodByDay[day] = e.Mood
	}

	tally := make(map[models.Mood]int)
	for _, h := range habits {
		for _, d := range h.CompletedDates {
			if mood, ok := moodByDay[d]; ok {
				tally[mood]++
			}
		}
	}

	var best models.Mood
	bestCount := 0
	for _, m := range models.Moods {
		if tally[m] > bestCount {
			best = m
			bestCount = tally[m]
		}
	}
	return best, bestCount > 0
}

// WeeklySeries returns per-day completion rate and mood score for the trailing
// 7 calendar days, oldest first.
func WeeklySeries(habits []models.Habit, history []models.MoodEntry, now time.Time) []DayStat {
	// Bucket mood values per day up front.
	byDay := make(map[string][]float64)
	for _, e := range history {
		day, ok := entryDay(e)
		if !ok {
			continue
		}
		if v, ok := moodValues[e.Mood]; ok {
			byDay[day] = append(byDay[day], v)
		}
	}

	series := make([]DayStat, 0, windowDays)
	for i := windowDays - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i).Format(models.DayLayout)

		rate := 0
		if len(habits) > 0 {
			done := 0
			for _, h := range habits {
				if h.CompletedOn(day) {
					done++
				}
			}
			rate = int(math.Round(float64(done) / float64(len(habits)) * 100))
		}

		stat := DayStat{Day: day, CompletionRate: rate}
		if values := byDay[day]; len(values) > 0 {
			sum := 0.0
			for _, v := range values {
				sum += v
			}
			mean := sum / float64(len(values))
			stat.MoodScore = &mean
		}
		series = append(series, stat)
	}
	return series
}

// MoodValue exposes the fixed mood-to-number mapping.
func MoodValue(m models.Mood) (float64, bool) {
	v, ok := moodValues[m]
	return v, ok
}

func entryDay(e models.MoodEntry) (string, bool) {
	ts, err := time.Parse(time.RFC3339, e.Date)
	if err != nil {
		return "", false
	}
	return ts.Format(models.DayLayout), true
}
