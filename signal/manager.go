package signal

import (
	"context"

	"go.uber.org/zap"

	"github.com/wippyai/signal-host/errors"
	"github.com/wippyai/signal-host/feature"
	"github.com/wippyai/signal-host/resource"
)

// StreamType tags signal stream slots in the resource table.
const StreamType resource.TypeID = 1

// Manager implements the signal subscription lifecycle over a shared
// resource table: Bind opens a subscription and registers it, Poll waits
// for the next delivery, Unbind wakes any waiting poll and releases the
// subscription. Bind and Unbind never block; Poll is the only operation
// that suspends.
type Manager struct {
	table *resource.Table
	gate  *feature.Gate
}

// NewManager creates a manager over the given table and feature gate.
func NewManager(table *resource.Table, gate *feature.Gate) *Manager {
	return &Manager{table: table, gate: gate}
}

// Table returns the manager's resource table.
func (m *Manager) Table() *resource.Table {
	return m.table
}

// Bind subscribes to a signal number and registers the subscription,
// returning its handle. Establishing the subscription suppresses the
// process's default disposition for that signal while the stream is
// alive. Streams are never closed implicitly: a bound handle that is
// never unbound leaks its subscription.
func (m *Manager) Bind(signo int) (resource.Handle, error) {
	if err := m.gate.Check(errors.PhaseBind, feature.Signal); err != nil {
		return 0, err
	}
	if !supported {
		return 0, errors.Unsupported(errors.PhaseBind)
	}

	s, err := newStream(signo)
	if err != nil {
		Logger().Warn("signal subscription refused",
			zap.Int("signo", signo), zap.Error(err))
		return 0, err
	}

	rid, err := m.table.Add(StreamType, s)
	if err != nil {
		s.Drop()
		return 0, errors.New(errors.PhaseBind, errors.KindClosed).
			Signo(signo).
			Cause(err).
			Build()
	}

	Logger().Debug("signal bound",
		zap.Int("signo", signo),
		zap.String("name", Name(signo)),
		zap.Uint32("rid", uint32(rid)))
	return rid, nil
}

// Poll waits for the next delivery on a bound handle. It returns true
// when a signal arrives, false when the handle is unbound while the
// poll is waiting, and an error if the handle does not name a live
// stream or ctx is canceled. After a true result the caller issues a
// fresh Poll for the next occurrence; deliveries are not buffered
// beyond the subscription's single pending slot.
//
// Only one Poll may wait on a handle at a time; a second concurrent
// Poll fails with a poll_in_flight error rather than displacing the
// first waiter.
func (m *Manager) Poll(ctx context.Context, rid resource.Handle) (bool, error) {
	if err := m.gate.Check(errors.PhasePoll, feature.Signal); err != nil {
		return false, err
	}
	if !supported {
		return false, errors.Unsupported(errors.PhasePoll)
	}

	v, ok := m.table.GetTyped(rid, StreamType)
	if !ok {
		return false, errors.InvalidResource(uint32(rid))
	}
	s := v.(*Stream)

	if err := s.beginWait(rid); err != nil {
		return false, err
	}
	defer s.endWait()

	// If the handle was unbound between the lookup and here, the
	// stream's done channel is already closed and wait resolves
	// immediately with no delivery. A waiter is never left suspended
	// on a removed resource.
	return s.wait(ctx)
}

// Unbind removes a bound handle, waking any poll suspended on it (the
// woken poll resolves with no delivery) and releasing the OS
// subscription. Unbinding a handle that does not name a live stream,
// including one already unbound, fails with an unknown_resource error.
func (m *Manager) Unbind(rid resource.Handle) error {
	if err := m.gate.Check(errors.PhaseUnbind, feature.Signal); err != nil {
		return err
	}
	if !supported {
		return errors.Unsupported(errors.PhaseUnbind)
	}

	v, ok := m.table.RemoveTyped(rid, StreamType)
	if !ok {
		return errors.UnknownResource(uint32(rid))
	}

	Logger().Debug("signal unbound",
		zap.Int("signo", v.(*Stream).Signo()),
		zap.Uint32("rid", uint32(rid)))
	return nil
}
