package signalhost

import (
	"github.com/wippyai/signal-host/feature"
	"github.com/wippyai/signal-host/ops"
	"github.com/wippyai/signal-host/resource"
	"github.com/wippyai/signal-host/signal"
)

// Host bundles the resource table, feature gate, signal manager, and op
// registry into one runtime surface.
type Host struct {
	table   *resource.Table
	gate    *feature.Gate
	manager *signal.Manager
	ops     *ops.Registry
}

// New creates a host with the signal ops registered. A nil gate enables
// the signal feature; pass an explicit gate to control gating.
func New(gate *feature.Gate) (*Host, error) {
	if gate == nil {
		gate = feature.NewGate(feature.Signal)
	}

	table := resource.NewTable()
	manager := signal.NewManager(table, gate)
	registry := ops.NewRegistry()
	if err := ops.RegisterSignalOps(registry, manager); err != nil {
		return nil, err
	}

	return &Host{
		table:   table,
		gate:    gate,
		manager: manager,
		ops:     registry,
	}, nil
}

// Manager returns the signal lifecycle manager.
func (h *Host) Manager() *signal.Manager { return h.manager }

// Ops returns the op registry for request/response dispatch.
func (h *Host) Ops() *ops.Registry { return h.ops }

// Gate returns the feature gate.
func (h *Host) Gate() *feature.Gate { return h.gate }

// Table returns the resource table.
func (h *Host) Table() *resource.Table { return h.table }

// Close drops all live resources, waking any suspended polls.
func (h *Host) Close() error {
	return h.table.Close()
}
