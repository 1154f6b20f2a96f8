package tracker

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"habitmind/internal/models"
	"habitmind/internal/storage"
)

var (
	ErrEmptyTitle    = errors.New("habit title must not be empty")
	ErrHabitNotFound = errors.New("habit not found")
)

// Tracker owns the in-memory application state and is the only writer to the
// storage provider. All mutations are read-modify-write cycles over the whole
// aggregate followed by a persistence write; a failed write is logged but the
// in-memory state stays authoritative for the session.
type Tracker struct {
	mu     sync.Mutex
	store  storage.Provider
	logger *zap.Logger
	state  models.State
	now    func() time.Time
}

func New(store storage.Provider, logger *zap.Logger) *Tracker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tracker{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// Load pulls the persisted state into memory. Must be called before mutations.
func (t *Tracker) Load() error {
	if err := t.store.Load(); err != nil {
		return err
	}
	state, err := t.store.GetState()
	if err != nil {
		return fmt.Errorf("failed to load state: %w", err)
	}

	t.mu.Lock()
	t.state = state
	t.mu.Unlock()
	return nil
}

// persist writes the current aggregate through to storage. Called with the
// mutex held.
func (t *Tracker) persist() {
	if err := t.store.SaveState(t.state.Clone()); err != nil {
		t.logger.Warn("persist failed, in-memory state remains authoritative",
			zap.Error(err))
	}
}

// AddHabit creates a habit with zeroed derived fields and appends it to the
// collection. Titles that are empty or whitespace-only are rejected.
func (t *Tracker) AddHabit(title string, freq models.Frequency) (models.Habit, error) {
	if strings.TrimSpace(title) == "" {
		return models.Habit{}, ErrEmptyTitle
	}
	if freq != models.FrequencyDaily && freq != models.FrequencyWeekly {
		return models.Habit{}, fmt.Errorf("invalid frequency: %q", freq)
	}

	habit := models.Habit{
		ID:             uuid.New().String(),
		Title:          title,
		Frequency:      freq,
		CompletedDates: []string{},
		Streak:         0,
		CreatedAt:      t.now(),
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.state.Habits = append(t.state.Habits, habit)
	t.persist()
	return habit, nil
}

// ToggleCompletion flips membership of day (YYYY-MM-DD) in the habit's
// completed-date set and recomputes the streak counter. The streak is the
// total count of completed dates, not a consecutive-day run.
func (t *Tracker) ToggleCompletion(habitID, day string) (models.Habit, error) {
	if _, err := time.Parse(models.DayLayout, day); err != nil {
		return models.Habit{}, fmt.Errorf("invalid date %q: %w", day, err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	for i := range t.state.Habits {
		h := &t.state.Habits[i]
		if h.ID != habitID {
			continue
		}

		if h.CompletedOn(day) {
			kept := h.CompletedDates[:0]
			for _, d := range h.CompletedDates {
				if d != day {
					kept = append(kept, d)
				}
			}
			h.CompletedDates = kept
		} else {
			h.CompletedDates = append(h.CompletedDates, day)
			sort.Strings(h.CompletedDates)
		}
		h.Streak = len(h.CompletedDates)

		t.persist()
		return *h, nil
	}

	return models.Habit{}, ErrHabitNotFound
}

// DeleteHabit removes the habit permanently. Deleting an unknown id is a
// no-op; mood entries are independent and are never cascaded.
func (t *Tracker) DeleteHabit(habitID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	kept := t.state.Habits[:0]
	removed := false
	for _, h := range t.state.Habits {
		if h.ID == habitID {
			removed = true
			continue
		}
		kept = append(kept, h)
	}
	t.state.Habits = kept

	if removed {
		t.persist()
	}
}

// AddMoodEntry records a mood observation, prepending it to the history so the
// most recent entry is always first.
func (t *Tracker) AddMoodEntry(mood models.Mood, source models.MoodSource, note string) (models.MoodEntry, error) {
	if _, err := models.ParseMood(string(mood)); err != nil {
		return models.MoodEntry{}, err
	}

	entry := models.MoodEntry{
		ID:     uuid.New().String(),
		Date:   t.now().Format(time.RFC3339),
		Mood:   mood,
		Source: source,
		Note:   note,
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.state.MoodHistory = append([]models.MoodEntry{entry}, t.state.MoodHistory...)
	t.persist()
	return entry, nil
}

func (t *Tracker) SetUserName(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state.UserName = name
	t.persist()
}

func (t *Tracker) SetAPIKey(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state.APIKey = key
	t.persist()
}

// State returns a deep copy of the aggregate.
func (t *Tracker) State() models.State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.Clone()
}

func (t *Tracker) Habits() []models.Habit {
	return t.State().Habits
}

func (t *Tracker) MoodHistory() []models.MoodEntry {
	return t.State().MoodHistory
}

// FindHabit resolves a habit by id or by unique title prefix, a convenience
// for CLI callers.
func (t *Tracker) FindHabit(ref string) (models.Habit, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var match *models.Habit
	for i := range t.state.Habits {
		h := &t.state.Habits[i]
		if h.ID == ref {
			return *h, nil
		}
		if strings.HasPrefix(strings.ToLower(h.Title), strings.ToLower(ref)) {
			if match != nil {
				return models.Habit{}, fmt.Errorf("ambiguous habit reference %q", ref)
			}
			match = h
		}
	}
	if match == nil {
		return models.Habit{}, ErrHabitNotFound
	}
	return *match, nil
}
