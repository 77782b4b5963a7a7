package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const DefaultDateLayout = "Monday, January 2, 2006"

type ReminderConfig struct {
	Enabled  bool     `mapstructure:"enabled"`
	Time     string   `mapstructure:"time"`     // "21:00"
	Workdays []string `mapstructure:"workdays"` // ["Mon","Tue","Wed","Thu","Fri"]
	Holidays []string `mapstructure:"holidays"` // ["2025-01-26", "2025-08-15"]
	Timezone string   `mapstructure:"timezone"` // e.g. "Asia/Kolkata" (optional)
}

type ThemeConfig struct {
	// System is consulted only when no theme was ever saved: auto|dark|light.
	System string `mapstructure:"system"`
}

type NotifyConfig struct {
	Desktop bool `mapstructure:"desktop"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	Path  string `mapstructure:"path"`
}

type EncryptionConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type Config struct {
	DataDir    string           `mapstructure:"data_dir"`
	DateLayout string           `mapstructure:"date_layout"`
	Theme      ThemeConfig      `mapstructure:"theme"`
	Notify     NotifyConfig     `mapstructure:"notify"`
	Log        LogConfig        `mapstructure:"log"`
	Encryption EncryptionConfig `mapstructure:"encryption"`
	Reminder   ReminderConfig   `mapstructure:"reminder"`
}

func Default() Config {
	dataDir := "journal-data"
	if home, err := os.UserHomeDir(); err == nil {
		dataDir = filepath.Join(home, ".local", "share", "journal")
	}
	return Config{
		DataDir:    dataDir,
		DateLayout: DefaultDateLayout,
		Theme:      ThemeConfig{System: "auto"},
		Notify:     NotifyConfig{Desktop: false},
		Log:        LogConfig{Level: "info"},
		Reminder: ReminderConfig{
			Enabled:  false,
			Time:     "21:00",
			Workdays: []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"},
			Holidays: []string{},
			Timezone: "",
		},
	}
}

func xdgConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "journal", "config.yaml"), nil
}

// Load reads ~/.config/journal/config.yaml. A missing file is not an error.
func Load() (Config, error) {
	path, err := xdgConfigPath()
	if err != nil {
		return Default(), err
	}
	return LoadFile(path)
}

// LoadFile reads config from path, layered over defaults and JOURNAL_* env vars.
func LoadFile(path string) (Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(path)
	v.SetEnvPrefix("journal")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// defaults
	v.SetDefault("data_dir", cfg.DataDir)
	v.SetDefault("date_layout", cfg.DateLayout)
	v.SetDefault("theme.system", cfg.Theme.System)
	v.SetDefault("notify.desktop", cfg.Notify.Desktop)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.path", cfg.Log.Path)
	v.SetDefault("encryption.enabled", cfg.Encryption.Enabled)
	v.SetDefault("reminder.enabled", cfg.Reminder.Enabled)
	v.SetDefault("reminder.time", cfg.Reminder.Time)
	v.SetDefault("reminder.workdays", cfg.Reminder.Workdays)
	v.SetDefault("reminder.holidays", cfg.Reminder.Holidays)
	v.SetDefault("reminder.timezone", cfg.Reminder.Timezone)

	if err := v.ReadInConfig(); err != nil && !isNotExist(err) {
		return cfg, fmt.Errorf("config read: %w", err)
	}
	// decode into a zero value; mapstructure never shrinks a populated slice
	cfg = Config{}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("config unmarshal: %w", err)
	}

	cfg.DataDir = expandHome(cfg.DataDir)
	if strings.TrimSpace(cfg.DateLayout) == "" {
		cfg.DateLayout = DefaultDateLayout
	}
	cfg.Theme.System = strings.ToLower(strings.TrimSpace(cfg.Theme.System))
	switch cfg.Theme.System {
	case "auto", "dark", "light":
	default:
		return cfg, fmt.Errorf("theme.system must be auto, dark or light, got %q", cfg.Theme.System)
	}

	// normalize workdays
	days := cfg.Reminder.Workdays[:0]
	for _, d := range cfg.Reminder.Workdays {
		d = strings.ToLower(strings.TrimSpace(d))
		if len(d) < 3 {
			continue
		}
		days = append(days, strings.ToUpper(d[:1])+d[1:3])
	}
	cfg.Reminder.Workdays = days
	return cfg, nil
}

// LogPath is where the rotated log file lives unless log.path overrides it.
func (c Config) LogPath() string {
	if p := strings.TrimSpace(c.Log.Path); p != "" {
		return expandHome(p)
	}
	return filepath.Join(c.DataDir, "journal.log")
}

func (c Config) DBPath() string { return filepath.Join(c.DataDir, "journal.db") }

func (c Config) SaltPath() string { return filepath.Join(c.DataDir, "salt") }

func (c Config) Location() *time.Location {
	if tz := strings.TrimSpace(c.Reminder.Timezone); tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}
	return time.Local
}

func isNotExist(err error) bool {
	var nf viper.ConfigFileNotFoundError
	return errors.As(err, &nf) || errors.Is(err, fs.ErrNotExist)
}

func expandHome(p string) string {
	if strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, p[2:])
		}
	}
	return p
}
