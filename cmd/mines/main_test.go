package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/mines"
)

func TestExpansionValue(t *testing.T) {
	var e mines.Expansion
	v := newExpansionValue(mines.ExpandOrthogonal, &e)
	assert.Equal(t, "orthogonal", v.String())

	require.NoError(t, v.Set("zero"))
	assert.Equal(t, mines.ExpandZero, e)
	assert.Equal(t, "zero", v.String())

	assert.Error(t, v.Set("diagonal"))
	assert.Equal(t, mines.ExpandZero, e)
}

func TestNewRandIsSeeded(t *testing.T) {
	assert.Equal(t, newRand(42).Uint64(), newRand(42).Uint64())
}

func TestFlagsOverrideConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mines.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
default_preset: small
seed: 7
presets:
  small: "6:6:5"
`), 0o644))

	t.Cleanup(func() { opts = options{} })
	require.NoError(t, rootCmd.ParseFlags([]string{
		"--config", path,
		"--expand", "zero",
		"-H", "4",
		"-m", "3",
	}))

	cfg, err := loadConfig(rootCmd)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), cfg.Seed)
	assert.Equal(t, "zero", cfg.Expansion)

	params, err := gameParams(rootCmd, cfg)
	require.NoError(t, err)
	assert.Equal(t, mines.GameParams{
		Width: 6, Height: 4, MineCount: 3, Expansion: mines.ExpandZero,
	}, params)

	cfg.DefaultPreset = "nightmare"
	_, err = gameParams(rootCmd, cfg)
	assert.ErrorIs(t, err, config.ErrUnknownPreset)
}
