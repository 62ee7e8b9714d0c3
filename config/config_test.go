package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, Default(), s)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv(EnvTrials, "1000")
	t.Setenv(EnvSeed, "-17")
	t.Setenv(EnvWorkers, "3")
	t.Setenv(EnvFormat, FormatBoth)
	t.Setenv(EnvOutputDir, "out")
	t.Setenv(EnvResamples, "5000")

	s, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Settings{
		Trials:    1000,
		Seed:      -17,
		Workers:   3,
		OutputDir: "out",
		Format:    FormatBoth,
		Resamples: 5000,
	}, s)
}

func TestLoad_EnvFile(t *testing.T) {
	t.Cleanup(func() {
		os.Unsetenv(EnvTrials)
		os.Unsetenv(EnvFormat)
	})
	os.Unsetenv(EnvTrials)
	os.Unsetenv(EnvFormat)

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("WARTIME_TRIALS=40\nWARTIME_FORMAT=fb\n"), 0644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 40, s.Trials)
	assert.Equal(t, FormatFB, s.Format)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv(EnvTrials, "many")
	_, err := Load("")
	assert.ErrorContains(t, err, EnvTrials)

	t.Setenv(EnvTrials, "0")
	_, err = Load("")
	assert.Error(t, err)

	t.Setenv(EnvTrials, "10")
	t.Setenv(EnvFormat, "xml")
	_, err = Load("")
	assert.ErrorContains(t, err, "xml")
}
