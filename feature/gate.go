package feature

import (
	"os"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/wippyai/signal-host/errors"
)

// Signal gates the bind/poll/unbind operations on signal subscriptions.
const Signal = "signal"

// Gate tracks which unstable features are enabled. All gated operations
// call Check before doing any other work. The zero value has every
// feature disabled.
type Gate struct {
	enabled map[string]bool
	mu      sync.RWMutex
}

// NewGate creates a gate with the given features enabled.
func NewGate(features ...string) *Gate {
	g := &Gate{enabled: make(map[string]bool, len(features))}
	for _, f := range features {
		g.enabled[f] = true
	}
	return g
}

// Enable turns a feature on.
func (g *Gate) Enable(feature string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.enabled == nil {
		g.enabled = make(map[string]bool)
	}
	g.enabled[feature] = true
}

// Disable turns a feature off.
func (g *Gate) Disable(feature string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.enabled, feature)
}

// Enabled reports whether a feature is on.
func (g *Gate) Enabled(feature string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.enabled[feature]
}

// Check returns a FeatureDisabled error for the given phase if the
// feature is off, nil otherwise.
func (g *Gate) Check(phase errors.Phase, feature string) error {
	if g.Enabled(feature) {
		return nil
	}
	return errors.FeatureDisabled(phase, feature)
}

// fileConfig is the on-disk shape of a gate configuration.
type fileConfig struct {
	Unstable []string `toml:"unstable"`
}

// Load reads a TOML gate configuration:
//
//	unstable = ["signal"]
func Load(path string) (*Gate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			Detail("read %s", path).
			Cause(err).
			Build()
	}
	return Parse(data)
}

// Parse decodes a TOML gate configuration from raw bytes.
func Parse(data []byte) (*Gate, error) {
	var cfg fileConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			Detail("decode gate config").
			Cause(err).
			Build()
	}
	return NewGate(cfg.Unstable...), nil
}
