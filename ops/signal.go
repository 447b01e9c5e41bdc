package ops

import (
	"context"
	"encoding/json"

	"github.com/wippyai/signal-host/resource"
	"github.com/wippyai/signal-host/signal"
)

// Op names for the signal lifecycle.
const (
	OpSignalBind   = "signal_bind"
	OpSignalPoll   = "signal_poll"
	OpSignalUnbind = "signal_unbind"
)

// BindRequest subscribes to a signal number.
type BindRequest struct {
	Signo int `json:"signo"`
}

// BindResponse carries the handle of the new subscription.
type BindResponse struct {
	RID uint32 `json:"rid"`
}

// PollRequest waits for the next delivery on a handle.
type PollRequest struct {
	RID uint32 `json:"rid"`
}

// PollResponse reports whether a signal was delivered (true) or the
// subscription ended without further deliveries (false).
type PollResponse struct {
	Delivered bool `json:"delivered"`
}

// UnbindRequest releases a handle.
type UnbindRequest struct {
	RID uint32 `json:"rid"`
}

// UnbindResponse is empty; unbind reports only success or failure.
type UnbindResponse struct{}

// RegisterSignalOps wires the signal manager's three operations into the
// registry under the signal_* op names.
func RegisterSignalOps(r *Registry, m *signal.Manager) error {
	if err := r.Register(OpSignalBind, func(_ context.Context, payload json.RawMessage) (any, error) {
		var req BindRequest
		if err := decode(payload, &req); err != nil {
			return nil, err
		}
		rid, err := m.Bind(req.Signo)
		if err != nil {
			return nil, err
		}
		return BindResponse{RID: uint32(rid)}, nil
	}); err != nil {
		return err
	}

	if err := r.Register(OpSignalPoll, func(ctx context.Context, payload json.RawMessage) (any, error) {
		var req PollRequest
		if err := decode(payload, &req); err != nil {
			return nil, err
		}
		delivered, err := m.Poll(ctx, resource.Handle(req.RID))
		if err != nil {
			return nil, err
		}
		return PollResponse{Delivered: delivered}, nil
	}); err != nil {
		return err
	}

	return r.Register(OpSignalUnbind, func(_ context.Context, payload json.RawMessage) (any, error) {
		var req UnbindRequest
		if err := decode(payload, &req); err != nil {
			return nil, err
		}
		if err := m.Unbind(resource.Handle(req.RID)); err != nil {
			return nil, err
		}
		return UnbindResponse{}, nil
	})
}
