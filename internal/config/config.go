// Package config loads the application configuration from a YAML file, with
// EVENTREMINDER_* environment variables taking precedence. A missing file is
// created with defaults on first run.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// DBPath is the sqlite file holding the durable event blob.
	DBPath string `yaml:"db_path"`

	// DesktopNotifications enables the OS-level alert side channel.
	DesktopNotifications bool `yaml:"desktop_notifications"`

	// AlertSound is a sound file played for ~3s when a reminder fires.
	// Empty disables the audio cue.
	AlertSound string `yaml:"alert_sound"`

	// TickSeconds is the scheduler polling period.
	TickSeconds int `yaml:"tick_seconds"`

	// SyncPollSeconds is how often the store is checked for writes from
	// another instance.
	SyncPollSeconds int `yaml:"sync_poll_seconds"`

	// SchedulerBuffer is the due-event channel capacity.
	SchedulerBuffer int `yaml:"scheduler_buffer"`

	// LogPath, if set, redirects diagnostics away from stderr so the TUI
	// stays clean.
	LogPath string `yaml:"log_path"`
}

func Default() *Config {
	return &Config{
		DBPath:               defaultDBPath(),
		DesktopNotifications: true,
		TickSeconds:          10,
		SyncPollSeconds:      2,
		SchedulerBuffer:      16,
	}
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "eventreminder.db"
	}
	return filepath.Join(home, ".local", "share", "eventreminder", "events.db")
}

// DefaultPath is where Load looks when no path is given.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(home, ".config", "eventreminder", "config.yaml")
}

func (c *Config) Normalize() {
	if strings.TrimSpace(c.DBPath) == "" {
		c.DBPath = defaultDBPath()
	}
	if c.TickSeconds <= 0 {
		c.TickSeconds = 10
	}
	if c.SyncPollSeconds <= 0 {
		c.SyncPollSeconds = 2
	}
	if c.SchedulerBuffer <= 0 {
		c.SchedulerBuffer = 16
	}
}

// Load reads the config at path, creating it with defaults on first run, then
// applies environment overrides.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := Default()
			applyEnv(cfg)
			if saveErr := Save(path, cfg); saveErr != nil {
				return cfg, saveErr
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()
	applyEnv(&cfg)
	return &cfg, nil
}

// Save writes the config atomically with 0600 permissions.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}
	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".eventreminder-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("EVENTREMINDER_DB_PATH")); v != "" {
		cfg.DBPath = v
	}
	if v, ok := getEnvBool("EVENTREMINDER_DESKTOP_NOTIFICATIONS"); ok {
		cfg.DesktopNotifications = v
	}
	if v := strings.TrimSpace(os.Getenv("EVENTREMINDER_ALERT_SOUND")); v != "" {
		cfg.AlertSound = v
	}
	if v, ok := getEnvInt("EVENTREMINDER_TICK_SECONDS"); ok && v > 0 {
		cfg.TickSeconds = v
	}
	if v, ok := getEnvInt("EVENTREMINDER_SYNC_POLL_SECONDS"); ok && v > 0 {
		cfg.SyncPollSeconds = v
	}
	if v, ok := getEnvInt("EVENTREMINDER_SCHEDULER_BUFFER"); ok && v > 0 {
		cfg.SchedulerBuffer = v
	}
	if v := strings.TrimSpace(os.Getenv("EVENTREMINDER_LOG_PATH")); v != "" {
		cfg.LogPath = v
	}
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
