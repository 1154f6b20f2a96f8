package models

import "fmt"

type Mood string

const (
	MoodHappy    Mood = "Happy"
	MoodStressed Mood = "Stressed"
	MoodTired    Mood = "Tired"
	MoodFocused  Mood = "Focused"
)

// Moods lists every valid mood label in display order.
var Moods = []Mood{MoodHappy, MoodStressed, MoodTired, MoodFocused}

func ParseMood(s string) (Mood, error) {
	for _, m := range Moods {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("invalid mood: %q", s)
}

type MoodSource string

const (
	SourceManual MoodSource = "manual"
	SourceWebcam MoodSource = "webcam"
)

// MoodEntry represents a single timestamped emotional-state record
type MoodEntry struct {
	ID     string     `json:"id"`
	Date   string     `json:"date"` // RFC3339 timestamp
	Mood   Mood       `json:"mood"`
	Source MoodSource `json:"source"`
	Note   string     `json:"note,omitempty"`
}
