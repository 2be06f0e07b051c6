package config

import "sort"

// Presets are ready-made problem setups covering the damping regimes and the
// forced cases. All use the default network and training sections unless
// noted.
var Presets = map[string]*Config{
	"underdamped": presetWith(ProblemConfig{
		Mass: 1.0, Damping: 0.2, Stiffness: 1.0, Horizon: 20.0,
		X0: 0.0, V0: 1.0, Forcing: ForcingConfig{Kind: "none"},
	}, nil),
	"critical": presetWith(ProblemConfig{
		Mass: 1.0, Damping: 2.0, Stiffness: 1.0, Horizon: 10.0,
		X0: 1.0, V0: 0.0, Forcing: ForcingConfig{Kind: "none"},
	}, nil),
	"overdamped": presetWith(ProblemConfig{
		Mass: 1.0, Damping: 4.0, Stiffness: 1.0, Horizon: 10.0,
		X0: 1.0, V0: 0.0, Forcing: ForcingConfig{Kind: "none"},
	}, nil),
	"forced": presetWith(ProblemConfig{
		Mass: 1.0, Damping: 0.5, Stiffness: 4.0, Horizon: 15.0,
		X0: 0.0, V0: 0.0, Forcing: ForcingConfig{Kind: "sine", Amplitude: 1.0, Omega: 1.0},
	}, nil),
	"kicked": presetWith(ProblemConfig{
		Mass: 1.0, Damping: 0.3, Stiffness: 1.0, Horizon: 15.0,
		X0: 0.0, V0: 0.0, Forcing: ForcingConfig{Kind: "step", Amplitude: 1.0, Onset: 2.0},
	}, nil),
	"stiff": presetWith(ProblemConfig{
		Mass: 1.0, Damping: 0.4, Stiffness: 25.0, Horizon: 8.0,
		X0: 0.5, V0: 0.0, Forcing: ForcingConfig{Kind: "none"},
	}, &TrainingConfig{
		Steps: 40000, LearningRate: 5e-4, ResidualWeight: 1.0, BoundaryWeight: 10.0, LogEvery: 100,
	}),
}

func presetWith(p ProblemConfig, t *TrainingConfig) *Config {
	cfg := DefaultConfig()
	cfg.Problem = p
	if t != nil {
		cfg.Training = *t
	}
	return cfg
}

// GetPreset returns a copy, so callers can layer overrides on top
// without touching the shared table.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
