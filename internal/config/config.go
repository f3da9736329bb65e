package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/christopherklint97/pomoplan/internal/schedule"
	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	Intervals     IntervalConfig `toml:"intervals"`
	Output        OutputConfig   `toml:"output"`
	Notifications NotifyConfig   `toml:"notifications"`
}

type IntervalConfig struct {
	PomodoroMinutes   int `toml:"pomodoro_minutes"`
	ShortBreakMinutes int `toml:"short_break_minutes"`
	LongBreakMinutes  int `toml:"long_break_minutes"`
	GroupSize         int `toml:"group_size"`
}

type OutputConfig struct {
	IncludeStats       bool `toml:"include_stats"`
	IncludeShortBreaks bool `toml:"include_short_breaks"`
	IncludeLongBreaks  bool `toml:"include_long_breaks"`
}

type NotifyConfig struct {
	Enabled bool `toml:"enabled"`
}

func DefaultConfig() Config {
	return Config{
		Intervals: IntervalConfig{
			PomodoroMinutes:   25,
			ShortBreakMinutes: 5,
			LongBreakMinutes:  15,
			GroupSize:         4,
		},
		Output: OutputConfig{
			IncludeStats:      true,
			IncludeLongBreaks: true,
		},
		Notifications: NotifyConfig{
			Enabled: true,
		},
	}
}

func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".config", "pomoplan"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the config file, layering stored values over defaults so
// that fields missing from the file keep their default values.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			applyEnvOverrides(&cfg)
			return &cfg, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("POMOPLAN_POMODORO_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Intervals.PomodoroMinutes = n
		}
	}
	if v := os.Getenv("POMOPLAN_SHORT_BREAK_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.Intervals.ShortBreakMinutes = n
		}
	}
	if v := os.Getenv("POMOPLAN_LONG_BREAK_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.Intervals.LongBreakMinutes = n
		}
	}
	if v := os.Getenv("POMOPLAN_GROUP_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Intervals.GroupSize = n
		}
	}
}

func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// SaveIntervals persists the last-used interval and output settings
// using a read-modify-write approach to preserve other sections.
func SaveIntervals(intervals IntervalConfig, output OutputConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}

	cfg := make(map[string]any)

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading config: %w", err)
	}
	if len(data) > 0 {
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}
	}

	cfg["intervals"] = map[string]any{
		"pomodoro_minutes":    intervals.PomodoroMinutes,
		"short_break_minutes": intervals.ShortBreakMinutes,
		"long_break_minutes":  intervals.LongBreakMinutes,
		"group_size":          intervals.GroupSize,
	}
	cfg["output"] = map[string]any{
		"include_stats":        output.IncludeStats,
		"include_short_breaks": output.IncludeShortBreaks,
		"include_long_breaks":  output.IncludeLongBreaks,
	}

	if err := EnsureConfigDir(); err != nil {
		return err
	}

	out, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, out, 0644)
}

// Settings converts the interval and output sections into generator
// settings.
func (c *Config) Settings() schedule.Settings {
	return schedule.Settings{
		PomodoroMinutes:    c.Intervals.PomodoroMinutes,
		ShortBreakMinutes:  c.Intervals.ShortBreakMinutes,
		LongBreakMinutes:   c.Intervals.LongBreakMinutes,
		GroupSize:          c.Intervals.GroupSize,
		IncludeStats:       c.Output.IncludeStats,
		IncludeShortBreaks: c.Output.IncludeShortBreaks,
		IncludeLongBreaks:  c.Output.IncludeLongBreaks,
	}
}
