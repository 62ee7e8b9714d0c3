package sampleio

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/signalnine/wartime/gosim/analysis"
)

// ManifestVersion is the current manifest format version.
const ManifestVersion = "1.0"

// Manifest records what a simulation run produced.
type Manifest struct {
	RunID     string            `json:"run_id"`
	Version   string            `json:"version"`
	CreatedAt time.Time         `json:"created_at"`
	Seed      uint64            `json:"seed"`
	Trials    int               `json:"trials"`
	Variants  []VariantManifest `json:"variants"`
	SampleSet string            `json:"sample_set,omitempty"`
}

// VariantManifest describes one variant's sample.
type VariantManifest struct {
	Name       string           `json:"name"`
	WarDeposit int              `json:"war_deposit"`
	Reduction  bool             `json:"reduction"`
	Seed       uint64           `json:"seed"`
	File       string           `json:"file,omitempty"`
	Summary    analysis.Summary `json:"summary"`
}

// NewManifest stamps a fresh run ID.
func NewManifest(seed uint64, trials int) *Manifest {
	return &Manifest{
		RunID:     uuid.New().String(),
		Version:   ManifestVersion,
		CreatedAt: time.Now().UTC(),
		Seed:      seed,
		Trials:    trials,
	}
}

// WriteJSON writes v as indented JSON, going through a temp file so a
// crash never leaves a half-written file behind.
func WriteJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filepath.Base(path), err)
	}

	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to finalize %s: %w", filepath.Base(path), err)
	}
	return nil
}

// LoadManifest reads a manifest written by WriteJSON.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to unmarshal manifest: %w", err)
	}
	if _, err := uuid.Parse(m.RunID); err != nil {
		return nil, fmt.Errorf("manifest has invalid run id %q: %w", m.RunID, err)
	}
	return &m, nil
}
