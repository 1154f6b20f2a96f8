package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"habitmind/internal/models"
	_ "modernc.org/sqlite"
)

// stateKey is the fixed identifier the state blob is stored under.
const stateKey = "state"

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

func (s *SQLiteStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.createSchema(); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	// Seed an empty state blob if none is present
	if _, err := s.GetState(); err != nil {
		empty := models.State{
			Habits:      []models.Habit{},
			MoodHistory: []models.MoodEntry{},
		}
		if err := s.SaveState(empty); err != nil {
			return fmt.Errorf("failed to save initial state: %w", err)
		}
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'habitmind init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) createSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS app_state (
			key  TEXT PRIMARY KEY,
			data TEXT NOT NULL
		)
	`)
	return err
}

func (s *SQLiteStore) GetState() (models.State, error) {
	if s.db == nil {
		return models.State{}, fmt.Errorf("storage not loaded")
	}

	var data string
	err := s.db.QueryRow(`SELECT data FROM app_state WHERE key = ?`, stateKey).Scan(&data)
	if err == sql.ErrNoRows {
		return models.State{}, fmt.Errorf("no state stored")
	}
	if err != nil {
		return models.State{}, fmt.Errorf("failed to read state: %w", err)
	}

	var state models.State
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		return models.State{}, fmt.Errorf("failed to parse state: %w", err)
	}
	if state.Habits == nil {
		state.Habits = []models.Habit{}
	}
	if state.MoodHistory == nil {
		state.MoodHistory = []models.MoodEntry{}
	}

	return state, nil
}

func (s *SQLiteStore) SaveState(state models.State) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to serialize state: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO app_state (key, data) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET data = excluded.data
	`, stateKey, string(data))
	if err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}

	return nil
}

// GetDB exposes the underlying connection for diagnostics.
func (s *SQLiteStore) GetDB() *sql.DB {
	return s.db
}

// GetConfigPath returns the path to the underlying database file.
func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}
