package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vancomm/minesweeper-engine/internal/mines"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownPreset = errors.New("unknown preset")
	ErrInvalidConfig = errors.New("invalid config")
)

type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

type Config struct {
	Development   bool              `yaml:"development"`
	DefaultPreset string            `yaml:"default_preset"`
	Expansion     string            `yaml:"expansion"`
	Seed          uint64            `yaml:"seed"`
	Presets       map[string]string `yaml:"presets"`
	Log           LogConfig         `yaml:"log"`
}

func Default() Config {
	return Config{
		DefaultPreset: "beginner",
		Expansion:     mines.ExpandOrthogonal.String(),
		Presets: map[string]string{
			"beginner":     "9:9:10",
			"intermediate": "16:16:40",
			"expert":       "30:16:99",
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 7,
		},
	}
}

// Load reads the YAML file at path over [Default]. Presets in the file are
// added to the built-in ones.
func Load(path string) (Config, error) {
	cfg := Default()

	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer func() {
		_ = file.Close()
	}()

	if err := yaml.NewDecoder(file).Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("unable to decode config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %w", ErrInvalidConfig, err)
	}
	if _, err := mines.ParseExpansion(c.Expansion); err != nil {
		return fmt.Errorf("%w: expansion: %w", ErrInvalidConfig, err)
	}
	for name := range c.Presets {
		if _, err := c.Preset(name); err != nil {
			return fmt.Errorf("%w: presets.%s: %w", ErrInvalidConfig, name, err)
		}
	}
	if _, ok := c.Presets[c.DefaultPreset]; !ok {
		return fmt.Errorf("%w: default_preset: %w %q", ErrInvalidConfig, ErrUnknownPreset, c.DefaultPreset)
	}
	if c.Log.MaxSizeMB < 0 || c.Log.MaxBackups < 0 || c.Log.MaxAgeDays < 0 {
		return fmt.Errorf("%w: log rotation limits must not be negative", ErrInvalidConfig)
	}
	return nil
}

// Preset resolves a named board using the configured expansion mode.
func (c Config) Preset(name string) (mines.GameParams, error) {
	seed, ok := c.Presets[name]
	if !ok {
		seed, ok = c.Presets[strings.ToLower(name)]
	}
	if !ok {
		return mines.GameParams{}, fmt.Errorf("%w %q (have %s)",
			ErrUnknownPreset, name, strings.Join(c.PresetNames(), ", "),
		)
	}

	params, err := mines.ParseSeed(seed)
	if err != nil {
		return mines.GameParams{}, err
	}
	if params.Expansion, err = mines.ParseExpansion(c.Expansion); err != nil {
		return mines.GameParams{}, err
	}
	if err := params.Validate(); err != nil {
		return mines.GameParams{}, err
	}
	return params, nil
}

func (c Config) PresetNames() []string {
	names := make([]string, 0, len(c.Presets))
	for name := range c.Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c Config) LogLevel() logrus.Level {
	level, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

func (c Config) Fields() logrus.Fields {
	return map[string]any{
		"development":    c.Development,
		"default_preset": c.DefaultPreset,
		"expansion":      c.Expansion,
		"seed":           c.Seed,
		"presets":        c.PresetNames(),
		"log_level":      c.Log.Level,
		"log_file":       c.Log.File,
	}
}
