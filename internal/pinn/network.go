package pinn

import (
	"fmt"

	. "github.com/gomlx/gomlx/pkg/core/graph"
	"github.com/gomlx/gomlx/pkg/ml/context"
	"github.com/gomlx/gomlx/pkg/ml/layers/activations"
	"github.com/gomlx/gomlx/pkg/ml/layers/fnn"
)

const (
	DefaultHiddenLayers = 3
	DefaultHiddenWidth  = 32
)

// NetworkConfig is the shape of the function approximator: 1 input (time),
// HiddenLayers hidden layers of HiddenWidth tanh units, 2 outputs (x, v).
type NetworkConfig struct {
	HiddenLayers int
	HiddenWidth  int
}

func DefaultNetworkConfig() NetworkConfig {
	return NetworkConfig{
		HiddenLayers: DefaultHiddenLayers,
		HiddenWidth:  DefaultHiddenWidth,
	}
}

func (c NetworkConfig) Validate() error {
	if c.HiddenLayers < 1 {
		return fmt.Errorf("need at least one hidden layer, got %d", c.HiddenLayers)
	}
	if c.HiddenWidth < 1 {
		return fmt.Errorf("hidden width must be positive, got %d", c.HiddenWidth)
	}
	return nil
}

// stateNet builds the approximator sub-graph: times shaped (n, 1) in, state
// pairs shaped (n, 2) out. All calls share variables through the context
// scope, so the training, prediction, and residual graphs see the same
// weights.
func stateNet(ctx *context.Context, times *Node, cfg NetworkConfig) *Node {
	return fnn.New(ctx.In("state_net"), times, 2).
		NumHiddenLayers(cfg.HiddenLayers, cfg.HiddenWidth).
		Activation(activations.TypeTanh).
		Done()
}
