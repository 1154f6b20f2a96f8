package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	ps "github.com/mitchellh/go-ps"

	"habitmind/internal/storage"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false

	// Check 1: storage reachable
	if err := checkStorageReachable(ctx); err != nil {
		fmt.Printf("❌ Storage reachable: FAIL\n   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Storage reachable: OK\n")
	}

	// Check 2: state parses and is internally consistent
	if err := checkStateValid(ctx); err != nil {
		fmt.Printf("❌ State validation: FAIL\n   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ State validation: OK\n")
	}

	// Check 3: single writer, warn when another habitmind process is running
	if err := checkSingleProcess(); err != nil {
		fmt.Printf("⚠ Single process: WARNING\n   %v\n", err)
	} else {
		fmt.Printf("✓ Single process: OK\n")
	}

	// Check 4: clock/timezone sanity
	if err := checkClockTimezone(); err != nil {
		fmt.Printf("❌ Clock/timezone: FAIL\n   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Clock/timezone: OK\n")
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	fmt.Println("All diagnostics passed!")
	return nil
}

func checkStorageReachable(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load storage: %w", err)
	}

	if sqliteStore, ok := ctx.Store.(*storage.SQLiteStore); ok {
		db := sqliteStore.GetDB()
		if db == nil {
			return fmt.Errorf("database connection is nil")
		}
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}
	return nil
}

func checkStateValid(ctx *Context) error {
	state, err := ctx.Store.GetState()
	if err != nil {
		return fmt.Errorf("failed to read state: %w", err)
	}

	habitIDs := make(map[string]bool, len(state.Habits))
	for _, h := range state.Habits {
		if habitIDs[h.ID] {
			return fmt.Errorf("duplicate habit ID found: %s", h.ID)
		}
		habitIDs[h.ID] = true

		seen := make(map[string]bool, len(h.CompletedDates))
		for _, d := range h.CompletedDates {
			if seen[d] {
				return fmt.Errorf("habit %q has duplicate completion date %s", h.Title, d)
			}
			seen[d] = true
		}
		if h.Streak != len(h.CompletedDates) {
			return fmt.Errorf("habit %q streak counter (%d) disagrees with completion count (%d)",
				h.Title, h.Streak, len(h.CompletedDates))
		}
	}
	return nil
}

// Two habitmind processes sharing one storage file can silently lose writes;
// the state engine assumes a single writer.
func checkSingleProcess() error {
	self := os.Getpid()
	binary := strings.ToLower(filepath.Base(os.Args[0]))

	procs, err := ps.Processes()
	if err != nil {
		return fmt.Errorf("failed to list processes: %w", err)
	}

	for _, p := range procs {
		if p.Pid() == self {
			continue
		}
		if strings.ToLower(p.Executable()) == binary {
			return fmt.Errorf("another %s process is running (pid %d); concurrent use of the same storage file is unsupported",
				binary, p.Pid())
		}
	}
	return nil
}

func checkClockTimezone() error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}
