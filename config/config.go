// Package config loads defaults for the wartime binaries from the
// environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables read by Load.
const (
	EnvTrials    = "WARTIME_TRIALS"
	EnvSeed      = "WARTIME_SEED"
	EnvWorkers   = "WARTIME_WORKERS"
	EnvOutputDir = "WARTIME_OUTPUT_DIR"
	EnvFormat    = "WARTIME_FORMAT"
	EnvResamples = "WARTIME_RESAMPLES"
)

// Sample file formats.
const (
	FormatCSV  = "csv"
	FormatFB   = "fb"
	FormatBoth = "both"
)

// Settings are the run parameters shared by both binaries
type Settings struct {
	Trials    int    // Games per variant
	Seed      int64  // 0 = seed from the clock
	Workers   int    // 0 = NumCPU, 1 = serial
	OutputDir string // Where samples are written and read
	Format    string // csv, fb or both
	Resamples int    // Bootstrap trials per pair, 0 = sample size
}

// Default returns 250 trials written as CSV to the working directory.
func Default() Settings {
	return Settings{
		Trials:    250,
		OutputDir: ".",
		Format:    FormatCSV,
	}
}

// Validate checks the settings are usable.
func (s Settings) Validate() error {
	if s.Trials < 1 {
		return fmt.Errorf("trials must be positive, got %d", s.Trials)
	}
	if s.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", s.Workers)
	}
	if s.Resamples < 0 {
		return fmt.Errorf("resamples must not be negative, got %d", s.Resamples)
	}
	switch s.Format {
	case FormatCSV, FormatFB, FormatBoth:
	default:
		return fmt.Errorf("unknown sample format %q (want csv, fb or both)", s.Format)
	}
	return nil
}

// Load starts from Default, applies envFile if it exists, then the
// process environment. Variables already set in the environment win
// over the file.
func Load(envFile string) (Settings, error) {
	s := Default()

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return s, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	var err error
	if s.Trials, err = envInt(EnvTrials, s.Trials); err != nil {
		return s, err
	}
	if s.Seed, err = envInt64(EnvSeed, s.Seed); err != nil {
		return s, err
	}
	if s.Workers, err = envInt(EnvWorkers, s.Workers); err != nil {
		return s, err
	}
	if s.Resamples, err = envInt(EnvResamples, s.Resamples); err != nil {
		return s, err
	}
	if v, ok := os.LookupEnv(EnvOutputDir); ok && v != "" {
		s.OutputDir = v
	}
	if v, ok := os.LookupEnv(EnvFormat); ok && v != "" {
		s.Format = v
	}

	return s, s.Validate()
}

func envInt(name string, def int) (int, error) {
	v, ok := os.LookupEnv(name)
	if !ok || v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def, fmt.Errorf("%s: %w", name, err)
	}
	return n, nil
}

func envInt64(name string, def int64) (int64, error) {
	v, ok := os.LookupEnv(name)
	if !ok || v == "" {
		return def, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return def, fmt.Errorf("%s: %w", name, err)
	}
	return n, nil
}
