package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"habitmind/internal/models"
)

func sampleState() models.State {
	created := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	return models.State{
		Habits: []models.Habit{
			{
				ID:             "h1",
				Title:          "Drink water",
				Frequency:      models.FrequencyDaily,
				CompletedDates: []string{"2025-03-09", "2025-03-10"},
				Streak:         2,
				CreatedAt:      created,
			},
			{
				ID:             "h2",
				Title:          "Read",
				Frequency:      models.FrequencyWeekly,
				CompletedDates: []string{},
				Streak:         0,
				CreatedAt:      created,
			},
		},
		MoodHistory: []models.MoodEntry{
			{ID: "m1", Date: "2025-03-10T09:00:00Z", Mood: models.MoodFocused, Source: models.SourceWebcam},
			{ID: "m2", Date: "2025-03-09T21:15:00Z", Mood: models.MoodTired, Source: models.SourceManual, Note: "long day"},
		},
		UserName: "Sam",
		APIKey:   "test-key",
	}
}

func TestJSONStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "habitmind.json")
	store := NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}

	want := sampleState()
	if err := store.SaveState(want); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Fresh instance reading the same file
	reopened := NewJSONStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	got, err := reopened.GetState()
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("state round-trip mismatch (-want +got):\n%s", diff)
	}
}

func TestJSONStoreLoadBeforeInit(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "missing.json"))
	if err := store.Load(); err == nil {
		t.Error("expected error loading uninitialized storage")
	}
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "habitmind.db")
	store := NewSQLiteStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	defer store.Close()

	want := sampleState()
	if err := store.SaveState(want); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.GetState()
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("state round-trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSQLiteStoreInitSeedsEmptyState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "habitmind.db")
	store := NewSQLiteStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	defer store.Close()

	state, err := store.GetState()
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(state.Habits) != 0 || len(state.MoodHistory) != 0 {
		t.Errorf("expected empty seeded state, got %+v", state)
	}
}

func TestGetStateReturnsCopy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "habitmind.json")
	store := NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	if err := store.SaveState(sampleState()); err != nil {
		t.Fatalf("save: %v", err)
	}

	first, _ := store.GetState()
	first.Habits[0].CompletedDates[0] = "1999-01-01"
	first.UserName = "tampered"

	second, _ := store.GetState()
	if second.Habits[0].CompletedDates[0] != "2025-03-09" {
		t.Error("mutating a returned state leaked into the store")
	}
	if second.UserName != "Sam" {
		t.Error("mutating a returned state leaked into the store")
	}
}
