package ops

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"github.com/wippyai/signal-host/errors"
)

// Handler processes one decoded request payload and returns a response
// value to be encoded back to the caller.
type Handler func(ctx context.Context, payload json.RawMessage) (any, error)

// Registry routes named operations to handlers over a JSON
// request/response frame. Handlers that suspend do so on the caller's
// context; the registry itself never blocks.
type Registry struct {
	handlers map[string]Handler
	mu       sync.RWMutex
}

// NewRegistry creates an empty op registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Register adds a named op. Registering an empty or duplicate name fails.
func (r *Registry) Register(name string, h Handler) error {
	if name == "" {
		return errors.InvalidInput(errors.PhaseDispatch, "op name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.handlers[name]; exists {
		return errors.InvalidInput(errors.PhaseDispatch, "op "+name+" already registered")
	}
	r.handlers[name] = h
	return nil
}

// Names returns the registered op names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Invoke dispatches a request payload to the named op and encodes its
// response. Errors from the handler pass through unwrapped.
func (r *Registry) Invoke(ctx context.Context, name string, payload json.RawMessage) (json.RawMessage, error) {
	r.mu.RLock()
	h, ok := r.handlers[name]
	r.mu.RUnlock()

	if !ok {
		return nil, errors.NotFound(name)
	}

	resp, err := h(ctx, payload)
	if err != nil {
		return nil, err
	}

	out, err := json.Marshal(resp)
	if err != nil {
		return nil, errors.New(errors.PhaseDispatch, errors.KindInvalidInput).
			Detail("encode %s response", name).
			Cause(err).
			Build()
	}
	return out, nil
}

// decode unmarshals a request payload into v, mapping failures to a
// dispatch-phase invalid_input error.
func decode(payload json.RawMessage, v any) error {
	if err := json.Unmarshal(payload, v); err != nil {
		return errors.New(errors.PhaseDispatch, errors.KindInvalidInput).
			Detail("decode request").
			Cause(err).
			Build()
	}
	return nil
}
