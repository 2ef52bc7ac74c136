package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Settings holds the user-tunable runtime parameters.
// Values are resolved in order: defaults, then the YAML file, then environment variables.
type Settings struct {
	Port         string        `yaml:"port" env:"PORT"`
	Language     string        `yaml:"language" env:"LANGUAGE"`
	RefreshMin   int           `yaml:"refresh_interval_min" env:"REFRESH_INTERVAL_MIN"`
	WindowBefore int           `yaml:"window_before" env:"WINDOW_BEFORE"`
	WindowAfter  int           `yaml:"window_after" env:"WINDOW_AFTER"`
	HTTPTimeout  time.Duration `yaml:"http_timeout" env:"HTTP_TIMEOUT"`
}

// DefaultSettings returns the settings used when nothing overrides them.
func DefaultSettings() Settings {
	return Settings{
		Port:         DefaultPort,
		Language:     DefaultLanguage,
		RefreshMin:   DefaultRefreshMin,
		WindowBefore: DefaultWindowBefore,
		WindowAfter:  DefaultWindowAfter,
		HTTPTimeout:  DefaultHTTPTimeout,
	}
}

// LoadSettings resolves the settings from path (optional) and the process environment.
// When path is empty, the GO_ANNIVERSARY_CONFIG variable is consulted.
func LoadSettings(path string) (Settings, error) {
	return LoadSettingsWithEnv(path, nil)
}

// LoadSettingsWithEnv is LoadSettings with an explicit environment.
// A nil environment means the process environment.
func LoadSettingsWithEnv(path string, environ map[string]string) (Settings, error) {
	cfg := DefaultSettings()

	if path == "" {
		if environ != nil {
			path = environ[EnvConfigPath]
		} else {
			path = os.Getenv(EnvConfigPath)
		}
	}

	if path != "" {
		if err := loadSettingsFile(path, &cfg); err != nil {
			return Settings{}, err
		}
	}

	opts := env.Options{Prefix: EnvPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Settings{}, fmt.Errorf("%s: %w", ErrSettingsEnv, err)
	}

	if err := cfg.Validate(); err != nil {
		return Settings{}, err
	}
	return cfg, nil
}

func loadSettingsFile(path string, cfg *Settings) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrSettingsFile, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("%s: %w", ErrSettingsParse, err)
	}
	slog.Debug(MsgSettingsFile, LogKeyComponent, CompSettings, LogKeyFile, path)
	return nil
}

// Validate checks that every value is usable.
func (s Settings) Validate() error {
	if s.Port == "" {
		return errors.New(ErrPortRequired)
	}
	if p, err := strconv.Atoi(s.Port); err != nil || p < 0 || p > 65535 {
		return fmt.Errorf("%s: port %q", ErrSettingsRange, s.Port)
	}
	if s.RefreshMin < 0 {
		return fmt.Errorf("%s: refresh interval %d", ErrSettingsRange, s.RefreshMin)
	}
	if s.WindowBefore < 0 || s.WindowAfter < 0 {
		return fmt.Errorf("%s: window %d/%d", ErrSettingsRange, s.WindowBefore, s.WindowAfter)
	}
	if s.HTTPTimeout <= 0 {
		return fmt.Errorf("%s: http timeout %s", ErrSettingsRange, s.HTTPTimeout)
	}
	return nil
}

// RefreshInterval returns the feed rebuild interval, or 0 when disabled.
func (s Settings) RefreshInterval() time.Duration {
	return time.Duration(s.RefreshMin) * time.Minute
}
