package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/SsinghBh/PINN-lab/internal/pinn"
	"github.com/SsinghBh/PINN-lab/internal/problem"
	"github.com/SsinghBh/PINN-lab/internal/sampler"
)

// Config mirrors the train command's flags. A YAML file can set any subset;
// unset fields keep their defaults.
type Config struct {
	Problem  ProblemConfig  `yaml:"problem" json:"problem"`
	Network  NetworkConfig  `yaml:"network" json:"network"`
	Training TrainingConfig `yaml:"training" json:"training"`
	Sampling SamplingConfig `yaml:"sampling" json:"sampling"`
	Seed     int64          `yaml:"seed" json:"seed"`
}

type ProblemConfig struct {
	Mass      float64       `yaml:"mass" json:"mass"`
	Damping   float64       `yaml:"damping" json:"damping"`
	Stiffness float64       `yaml:"stiffness" json:"stiffness"`
	Horizon   float64       `yaml:"horizon" json:"horizon"`
	X0        float64       `yaml:"x0" json:"x0"`
	V0        float64       `yaml:"v0" json:"v0"`
	Forcing   ForcingConfig `yaml:"forcing" json:"forcing"`
}

type ForcingConfig struct {
	Kind      string  `yaml:"kind" json:"kind"` // none, sine, step
	Amplitude float64 `yaml:"amplitude" json:"amplitude"`
	Omega     float64 `yaml:"omega" json:"omega"`
	Onset     float64 `yaml:"onset" json:"onset"`
}

type NetworkConfig struct {
	HiddenLayers int `yaml:"hidden_layers" json:"hidden_layers"`
	HiddenWidth  int `yaml:"hidden_width" json:"hidden_width"`
}

type TrainingConfig struct {
	Steps          int     `yaml:"steps" json:"steps"`
	LearningRate   float64 `yaml:"learning_rate" json:"learning_rate"`
	ResidualWeight float64 `yaml:"residual_weight" json:"residual_weight"`
	BoundaryWeight float64 `yaml:"boundary_weight" json:"boundary_weight"`
	LogEvery       int     `yaml:"log_every" json:"log_every"`
}

type SamplingConfig struct {
	Collocation int    `yaml:"collocation" json:"collocation"`
	Boundary    int    `yaml:"boundary" json:"boundary"`
	Strategy    string `yaml:"strategy" json:"strategy"` // uniform, random
}

func DefaultConfig() *Config {
	return &Config{
		Problem: ProblemConfig{
			Mass:      problem.DefaultMass,
			Damping:   problem.DefaultDamping,
			Stiffness: problem.DefaultStiffness,
			Horizon:   problem.DefaultHorizon,
			X0:        0.0,
			V0:        1.0,
			Forcing:   ForcingConfig{Kind: "none"},
		},
		Network: NetworkConfig{
			HiddenLayers: pinn.DefaultHiddenLayers,
			HiddenWidth:  pinn.DefaultHiddenWidth,
		},
		Training: TrainingConfig{
			Steps:          pinn.DefaultSteps,
			LearningRate:   pinn.DefaultLearningRate,
			ResidualWeight: 1.0,
			BoundaryWeight: 1.0,
			LogEvery:       pinn.DefaultLogEvery,
		},
		Sampling: SamplingConfig{
			Collocation: sampler.DefaultNumCollocation,
			Boundary:    sampler.DefaultNumBoundary,
			Strategy:    string(sampler.Uniform),
		},
		Seed: 42,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Oscillator materializes the problem section.
func (c *Config) Oscillator() (*problem.Oscillator, error) {
	f, err := problem.ForcingFromName(c.Problem.Forcing.Kind,
		c.Problem.Forcing.Amplitude, c.Problem.Forcing.Omega, c.Problem.Forcing.Onset)
	if err != nil {
		return nil, err
	}
	o := &problem.Oscillator{
		Mass:      c.Problem.Mass,
		Damping:   c.Problem.Damping,
		Stiffness: c.Problem.Stiffness,
		Horizon:   c.Problem.Horizon,
		X0:        c.Problem.X0,
		V0:        c.Problem.V0,
		Forcing:   f,
	}
	if err := o.Validate(); err != nil {
		return nil, fmt.Errorf("problem config: %w", err)
	}
	return o, nil
}

// Sampler materializes the sampling section.
func (c *Config) Sampler() (*sampler.Sampler, error) {
	s := sampler.New(c.Problem.Horizon, c.Seed)
	s.NumCollocation = c.Sampling.Collocation
	s.NumBoundary = c.Sampling.Boundary
	s.Strategy = sampler.Strategy(c.Sampling.Strategy)
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("sampling config: %w", err)
	}
	return s, nil
}

// NetworkConfig materializes the network section.
func (c *Config) NetworkConfig() pinn.NetworkConfig {
	return pinn.NetworkConfig{
		HiddenLayers: c.Network.HiddenLayers,
		HiddenWidth:  c.Network.HiddenWidth,
	}
}

// TrainConfig materializes the training section.
func (c *Config) TrainConfig() pinn.TrainConfig {
	return pinn.TrainConfig{
		Steps:          c.Training.Steps,
		LearningRate:   c.Training.LearningRate,
		ResidualWeight: c.Training.ResidualWeight,
		BoundaryWeight: c.Training.BoundaryWeight,
		LogEvery:       c.Training.LogEvery,
		Seed:           c.Seed,
	}
}
