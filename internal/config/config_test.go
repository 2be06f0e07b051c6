package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/SsinghBh/PINN-lab/internal/problem"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Problem.Mass != 1.0 {
		t.Errorf("expected mass 1.0, got %f", cfg.Problem.Mass)
	}
	if cfg.Problem.Horizon <= 0 {
		t.Error("horizon should be positive")
	}
	if cfg.Training.Steps <= 0 {
		t.Error("steps should be positive")
	}

	o, err := cfg.Oscillator()
	if err != nil {
		t.Fatal(err)
	}
	if o.Regime() != problem.Underdamped {
		t.Errorf("default problem should be underdamped, got %v", o.Regime())
	}

	if _, err := cfg.Sampler(); err != nil {
		t.Error(err)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("underdamped")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Problem.Damping != 0.2 {
		t.Errorf("expected damping 0.2, got %f", cfg.Problem.Damping)
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) == 0 {
		t.Error("expected presets")
	}
}

func TestPresetRegimes(t *testing.T) {
	tests := []struct {
		name     string
		expected problem.Regime
	}{
		{"underdamped", problem.Underdamped},
		{"critical", problem.CriticallyDamped},
		{"overdamped", problem.Overdamped},
		{"stiff", problem.Underdamped},
	}

	for _, tt := range tests {
		cfg := GetPreset(tt.name)
		if cfg == nil {
			t.Fatalf("missing preset %s", tt.name)
		}
		o, err := cfg.Oscillator()
		if err != nil {
			t.Fatalf("preset %s: %v", tt.name, err)
		}
		if o.Regime() != tt.expected {
			t.Errorf("preset %s: expected %v, got %v", tt.name, tt.expected, o.Regime())
		}
	}
}

func TestLoadSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	cfg := DefaultConfig()
	cfg.Problem.Damping = 0.7
	cfg.Training.Steps = 123
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Problem.Damping != 0.7 {
		t.Errorf("expected damping 0.7, got %f", loaded.Problem.Damping)
	}
	if loaded.Training.Steps != 123 {
		t.Errorf("expected 123 steps, got %d", loaded.Training.Steps)
	}
}

func TestLoad_PartialOverridesKeepDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "partial.yaml")

	content := []byte("problem:\n  damping: 2.5\n")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Problem.Damping != 2.5 {
		t.Errorf("expected damping 2.5, got %f", cfg.Problem.Damping)
	}
	if cfg.Training.Steps == 0 {
		t.Error("unset sections should keep defaults")
	}
}

func TestOscillator_BadForcing(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Problem.Forcing.Kind = "sawtooth"
	if _, err := cfg.Oscillator(); err == nil {
		t.Error("unknown forcing should error")
	}
}
