package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zayedkhan1/Event-Reminder-application/internal/config"
	applog "github.com/zayedkhan1/Event-Reminder-application/internal/log"
	"github.com/zayedkhan1/Event-Reminder-application/internal/notify"
	"github.com/zayedkhan1/Event-Reminder-application/internal/reminder"
	"github.com/zayedkhan1/Event-Reminder-application/internal/storage"
	"github.com/zayedkhan1/Event-Reminder-application/internal/update"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "eventreminder failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Stderr is owned by the TUI, so logs go to a file when configured.
	if cfg.LogPath != "" {
		if err := applog.SetOutput(cfg.LogPath); err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
	}

	store, err := storage.OpenSQLite(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	var notifier notify.Notifier = notify.NoopNotifier{}
	if cfg.DesktopNotifications {
		notifier = notify.ExecNotifier{}
	}
	var audio notify.AudioPlayer = notify.NoopAudioPlayer{}
	if cfg.AlertSound != "" {
		audio = notify.ExecAudioPlayer{SoundPath: cfg.AlertSound}
	}

	svc := reminder.NewService(store, reminder.Options{
		Notifier:         notifier,
		Buffer:           cfg.SchedulerBuffer,
		TickInterval:     time.Duration(cfg.TickSeconds) * time.Second,
		SyncPollInterval: time.Duration(cfg.SyncPollSeconds) * time.Second,
	})
	svc.Start()
	defer svc.Stop()

	program := tea.NewProgram(update.NewModel(svc, audio), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run interface: %w", err)
	}
	return nil
}
