package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"habitmind/internal/models"
)

type JSONStore struct {
	path  string
	state *models.State
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Check if file already exists
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.state = &models.State{
		Habits:      []models.Habit{},
		MoodHistory: []models.MoodEntry{},
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'habitmind init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.state = &models.State{}
	if err := json.Unmarshal(data, s.state); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	// Ensure slices are initialized
	if s.state.Habits == nil {
		s.state.Habits = []models.Habit{}
	}
	if s.state.MoodHistory == nil {
		s.state.MoodHistory = []models.MoodEntry{}
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) GetState() (models.State, error) {
	if s.state == nil {
		return models.State{}, fmt.Errorf("storage not loaded")
	}
	return s.state.Clone(), nil
}

func (s *JSONStore) SaveState(state models.State) error {
	if s.state == nil {
		return fmt.Errorf("storage not loaded")
	}
	next := state.Clone()
	s.state = &next
	return s.save()
}

// GetConfigPath returns the path to the underlying storage file.
func (s *JSONStore) GetConfigPath() string {
	return s.path
}
