package models

// State is the root aggregate: everything the app persists, serialized as one
// atomic JSON blob. Habits keep insertion order; MoodHistory is most-recent-first.
type State struct {
	Habits      []Habit     `json:"habits"`
	MoodHistory []MoodEntry `json:"moodHistory"`
	UserName    string      `json:"userName"`
	APIKey      string      `json:"apiKey,omitempty"`
}

// Clone returns a deep copy so callers can hand out state without aliasing
// the tracker's internal slices.
func (s State) Clone() State {
	out := s
	out.Habits = make([]Habit, len(s.Habits))
	for i, h := range s.Habits {
		out.Habits[i] = h
		out.Habits[i].CompletedDates = append([]string(nil), h.CompletedDates...)
	}
	out.MoodHistory = append([]MoodEntry(nil), s.MoodHistory...)
	return out
}
