package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"habitmind/internal/auth"
	"habitmind/internal/cli"
	"habitmind/internal/storage"
	"habitmind/internal/tracker"
)

var CLI struct {
	Version  kong.VersionFlag
	Config   string `help:"Storage file path." type:"path" default:"~/.config/habitmind/habitmind.db"`
	Detector string `help:"Landmark detector endpoint for mood detection." default:"http://127.0.0.1:8787/detect"`
	Debug    bool   `help:"Enable debug logging."`

	Init  cli.InitCmd `cmd:"" help:"Initialize habitmind storage."`
	Tui   cli.TuiCmd  `cmd:"" help:"Launch the interactive dashboard." default:"1"`
	Habit struct {
		Add    cli.HabitAddCmd    `cmd:"" help:"Add a new habit."`
		List   cli.HabitListCmd   `cmd:"" help:"List habits."`
		Done   cli.HabitDoneCmd   `cmd:"" help:"Toggle a habit's completion for a day."`
		Delete cli.HabitDeleteCmd `cmd:"" help:"Delete a habit."`
	} `cmd:"" help:"Manage habits."`
	Mood struct {
		Log     cli.MoodLogCmd     `cmd:"" help:"Log a mood manually."`
		History cli.MoodHistoryCmd `cmd:"" help:"Show recent mood entries."`
		Detect  cli.MoodDetectCmd  `cmd:"" help:"Detect mood from the webcam detector."`
	} `cmd:"" help:"Track mood."`
	Stats  cli.StatsCmd  `cmd:"" help:"Show derived statistics."`
	Coach  cli.CoachCmd  `cmd:"" help:"Get coaching advice."`
	APIKey cli.APIKeyCmd `cmd:"" name:"apikey" help:"Store the coaching API key."`
	Backup struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Snapshot the storage file."`
		List    cli.BackupListCmd    `cmd:"" help:"List snapshots."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore a snapshot."`
	} `cmd:"" help:"Manage storage backups."`
	Account struct {
		Signup cli.AccountSignupCmd `cmd:"" help:"Create an account."`
		Login  cli.AccountLoginCmd  `cmd:"" help:"Sign in."`
		Logout cli.AccountLogoutCmd `cmd:"" help:"Sign out."`
		Status cli.AccountStatusCmd `cmd:"" help:"Show the current session."`
		Verify cli.AccountVerifyCmd `cmd:"" help:"Verify the account with a token."`
	} `cmd:"" help:"Manage the account."`
	Doctor cli.DoctorCmd `cmd:"" help:"Run diagnostics."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("habitmind"),
		kong.Description("Habit and mood tracker with webcam mood detection and AI coaching"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.3.0"},
	)

	logger := newLogger(CLI.Debug)
	defer logger.Sync()

	// JSON file or SQLite database, decided by extension.
	var store storage.Provider
	if strings.HasSuffix(CLI.Config, ".json") {
		store = storage.NewJSONStore(CLI.Config)
	} else {
		store = storage.NewSQLiteStore(CLI.Config)
	}

	accountPath := filepath.Join(filepath.Dir(CLI.Config), "account.json")

	appCtx := &cli.Context{
		Store:       store,
		Tracker:     tracker.New(store, logger),
		Auth:        auth.NewLocalProvider(accountPath),
		Logger:      logger,
		DetectorURL: CLI.Detector,
	}

	err := ctx.Run(appCtx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger(debug bool) *zap.Logger {
	config := zap.NewProductionConfig()
	config.OutputPaths = []string{"stderr"}
	if debug {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}
	logger, err := config.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
