package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vancomm/minesweeper-engine/internal/mines"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mines.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	p, err := cfg.Preset(cfg.DefaultPreset)
	require.NoError(t, err)
	assert.Equal(t, mines.GameParams{Width: 9, Height: 9, MineCount: 10}, p)

	assert.Equal(t, []string{"beginner", "expert", "intermediate"}, cfg.PresetNames())
	assert.Equal(t, logrus.InfoLevel, cfg.LogLevel())
}

func TestPreset(t *testing.T) {
	cfg := Default()

	tests := []struct {
		name string
		want mines.GameParams
	}{
		{"beginner", mines.GameParams{Width: 9, Height: 9, MineCount: 10}},
		{"Intermediate", mines.GameParams{Width: 16, Height: 16, MineCount: 40}},
		{"EXPERT", mines.GameParams{Width: 30, Height: 16, MineCount: 99}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			p, err := cfg.Preset(test.name)
			require.NoError(t, err)
			assert.Equal(t, test.want, p)
		})
	}

	_, err := cfg.Preset("nightmare")
	assert.ErrorIs(t, err, ErrUnknownPreset)

	cfg.Expansion = "zero"
	p, err := cfg.Preset("beginner")
	require.NoError(t, err)
	assert.Equal(t, mines.ExpandZero, p.Expansion)
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
development: true
default_preset: tiny
expansion: zero
seed: 42
presets:
  tiny: "5:5:3"
log:
  level: debug
  file: /tmp/mines.log
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.Development)
	assert.Equal(t, "tiny", cfg.DefaultPreset)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, logrus.DebugLevel, cfg.LogLevel())
	assert.Equal(t, "/tmp/mines.log", cfg.Log.File)
	// untouched values keep their defaults
	assert.Equal(t, 10, cfg.Log.MaxSizeMB)
	assert.Contains(t, cfg.Presets, "expert")

	p, err := cfg.Preset("tiny")
	require.NoError(t, err)
	assert.Equal(t, mines.GameParams{Width: 5, Height: 5, MineCount: 3, Expansion: mines.ExpandZero}, p)
}

func TestLoadEmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"log level", "log:\n  level: loud\n"},
		{"expansion", "expansion: diagonal\n"},
		{"preset seed", "presets:\n  broken: \"9x9x10\"\n"},
		{"preset too many mines", "presets:\n  full: \"2:2:4\"\n"},
		{"preset trailing junk", "presets:\n  typo: \"9:9:10x\"\n"},
		{"preset too large", "presets:\n  huge: \"100000:100000:10\"\n"},
		{"default preset", "default_preset: missing\n"},
		{"rotation", "log:\n  max_backups: -1\n"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, test.body))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDevelopment(t *testing.T) {
	t.Setenv("DEVELOPMENT", "1")
	assert.True(t, Development())
	t.Setenv("DEVELOPMENT", "0")
	assert.False(t, Development())
}

func TestFields(t *testing.T) {
	f := Default().Fields()
	assert.Equal(t, "beginner", f["default_preset"])
	assert.Equal(t, "orthogonal", f["expansion"])
}
