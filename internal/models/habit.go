package models

import "time"

// DayLayout is the calendar-date format used for completion tracking.
const DayLayout = "2006-01-02"

type Frequency string

const (
	FrequencyDaily  Frequency = "daily"
	FrequencyWeekly Frequency = "weekly"
)

// Habit represents a recurring practice to track
type Habit struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Frequency Frequency `json:"frequency"`
	// CompletedDates holds YYYY-MM-DD strings, each at most once.
	CompletedDates []string  `json:"completedDates"`
	Streak         int       `json:"streak"`
	CreatedAt      time.Time `json:"createdAt"`
}

// CompletedOn reports whether the habit was marked done on the given day (YYYY-MM-DD).
func (h Habit) CompletedOn(day string) bool {
	for _, d := range h.CompletedDates {
		if d == day {
			return true
		}
	}
	return false
}
