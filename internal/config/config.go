// Package config loads cue's optional YAML configuration.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"
	yaml "go.yaml.in/yaml/v3"

	"cue-cli/internal/logx"
	"cue-cli/internal/model"
)

const FileName = "config.yaml"

type Config struct {
	Log   logx.Config `yaml:"log"`
	Timer TimerConfig `yaml:"timer"`
	UI    UIConfig    `yaml:"ui"`
}

type TimerConfig struct {
	TicksPerSecond  int     `yaml:"ticksPerSecond"`
	CooldownSeconds float64 `yaml:"cooldownSeconds"`
	// AutoAdvance starts the next schedule line once the cooldown ends.
	AutoAdvance bool `yaml:"autoAdvance"`
}

type UIConfig struct {
	// StartView is "schedule" or "task".
	StartView string `yaml:"startView"`
	// Accent is a lipgloss colour ("62", "#d80065").
	Accent string `yaml:"accent"`
}

const (
	ViewSchedule = "schedule"
	ViewTask     = "task"
)

var colorPattern = regexp.MustCompile(`^(#[0-9a-fA-F]{6}|#[0-9a-fA-F]{3}|[0-9]{1,3})$`)

func Default() Config {
	return Config{
		Log: logx.Config{Level: "info"},
		Timer: TimerConfig{
			TicksPerSecond:  model.TicksPerSecond,
			CooldownSeconds: model.CooldownDuration.Seconds(),
			AutoAdvance:     true,
		},
		UI: UIConfig{
			StartView: ViewSchedule,
			Accent:    "#d80065",
		},
	}
}

func (c *Config) Validate() error {
	if err := c.Timer.Validate(); err != nil {
		return fmt.Errorf("timer: %w", err)
	}
	if err := c.UI.Validate(); err != nil {
		return fmt.Errorf("ui: %w", err)
	}
	return nil
}

func (c *TimerConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.TicksPerSecond, validation.Required, validation.Min(1), validation.Max(60)),
		validation.Field(&c.CooldownSeconds, validation.Min(0.0)),
	)
}

func (c *UIConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.StartView, validation.In(ViewSchedule, ViewTask)),
		validation.Field(&c.Accent, validation.Match(colorPattern)),
	)
}

func (c TimerConfig) Cooldown() time.Duration {
	return time.Duration(c.CooldownSeconds * float64(time.Second))
}

func (c TimerConfig) TickInterval() time.Duration {
	return time.Second / time.Duration(c.TicksPerSecond)
}

// Path returns the config file inside dir.
func Path(dir string) string {
	return filepath.Join(dir, FileName)
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, err
	}
	if err := decode(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func decode(b []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// LoadEnv reads .env files from the working directory and dir. Variables
// already set in the environment win.
func LoadEnv(dir string) error {
	var files []string
	for _, p := range []string{".env", filepath.Join(dir, ".env")} {
		if _, err := os.Stat(p); err == nil {
			files = append(files, p)
		}
	}
	if len(files) == 0 {
		return nil
	}
	return godotenv.Load(files...)
}
