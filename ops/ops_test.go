//go:build unix

package ops

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/wippyai/signal-host/errors"
	"github.com/wippyai/signal-host/feature"
	"github.com/wippyai/signal-host/resource"
	"github.com/wippyai/signal-host/signal"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	reg := NewRegistry()
	mgr := signal.NewManager(resource.NewTable(), feature.NewGate(feature.Signal))
	if err := RegisterSignalOps(reg, mgr); err != nil {
		t.Fatalf("RegisterSignalOps failed: %v", err)
	}
	return reg
}

func invoke(t *testing.T, reg *Registry, name string, req, resp any) {
	t.Helper()
	payload, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	out, err := reg.Invoke(context.Background(), name, payload)
	if err != nil {
		t.Fatalf("%s failed: %v", name, err)
	}
	if err := json.Unmarshal(out, resp); err != nil {
		t.Fatalf("unmarshal %s response: %v", name, err)
	}
}

func TestRegistry_Register(t *testing.T) {
	reg := NewRegistry()
	noop := func(context.Context, json.RawMessage) (any, error) { return nil, nil }

	if err := reg.Register("", noop); err == nil {
		t.Fatal("empty op name should be rejected")
	}
	if err := reg.Register("op_a", noop); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := reg.Register("op_a", noop); err == nil {
		t.Fatal("duplicate registration should be rejected")
	}
}

func TestRegistry_Names(t *testing.T) {
	reg := newTestRegistry(t)

	names := reg.Names()
	want := []string{OpSignalBind, OpSignalPoll, OpSignalUnbind}
	if len(names) != len(want) {
		t.Fatalf("expected %d ops, got %v", len(want), names)
	}
	for i, n := range want {
		if names[i] != n {
			t.Fatalf("expected %v, got %v", want, names)
		}
	}
}

func TestRegistry_UnknownOp(t *testing.T) {
	reg := newTestRegistry(t)

	_, err := reg.Invoke(context.Background(), "signal_read", nil)
	if !stderrors.Is(err, errors.NotFound("")) {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestRegistry_MalformedPayload(t *testing.T) {
	reg := newTestRegistry(t)

	_, err := reg.Invoke(context.Background(), OpSignalBind, json.RawMessage(`{"signo":`))
	var serr *errors.Error
	if !stderrors.As(err, &serr) || serr.Kind != errors.KindInvalidInput {
		t.Fatalf("expected invalid_input, got %v", err)
	}
}

func TestSignalOps_BindUnbindRoundTrip(t *testing.T) {
	reg := newTestRegistry(t)

	var bind BindResponse
	invoke(t, reg, OpSignalBind, BindRequest{Signo: int(syscall.SIGUSR1)}, &bind)
	if bind.RID == 0 {
		t.Fatal("expected non-zero rid")
	}

	var unbind UnbindResponse
	invoke(t, reg, OpSignalUnbind, UnbindRequest{RID: bind.RID}, &unbind)

	// Second unbind must fail.
	payload, _ := json.Marshal(UnbindRequest{RID: bind.RID})
	_, err := reg.Invoke(context.Background(), OpSignalUnbind, payload)
	if !stderrors.Is(err, errors.UnknownResource(0)) {
		t.Fatalf("double unbind: expected unknown_resource, got %v", err)
	}
}

func TestSignalOps_PollDelivery(t *testing.T) {
	reg := newTestRegistry(t)

	var bind BindResponse
	invoke(t, reg, OpSignalBind, BindRequest{Signo: int(syscall.SIGUSR2)}, &bind)
	defer func() {
		payload, _ := json.Marshal(UnbindRequest{RID: bind.RID})
		reg.Invoke(context.Background(), OpSignalUnbind, payload)
	}()

	if err := syscall.Kill(os.Getpid(), syscall.SIGUSR2); err != nil {
		t.Fatalf("kill: %v", err)
	}

	var poll PollResponse
	invoke(t, reg, OpSignalPoll, PollRequest{RID: bind.RID}, &poll)
	if !poll.Delivered {
		t.Fatal("expected delivered == true")
	}
}

func TestSignalOps_UnbindResolvesPendingPoll(t *testing.T) {
	reg := newTestRegistry(t)

	var bind BindResponse
	invoke(t, reg, OpSignalBind, BindRequest{Signo: int(syscall.SIGHUP)}, &bind)

	type result struct {
		resp json.RawMessage
		err  error
	}
	res := make(chan result, 1)
	go func() {
		payload, _ := json.Marshal(PollRequest{RID: bind.RID})
		out, err := reg.Invoke(context.Background(), OpSignalPoll, payload)
		res <- result{resp: out, err: err}
	}()

	// Let the poll reach its suspension point before unbinding.
	time.Sleep(50 * time.Millisecond)

	var unbind UnbindResponse
	invoke(t, reg, OpSignalUnbind, UnbindRequest{RID: bind.RID}, &unbind)

	select {
	case r := <-res:
		if r.err != nil {
			t.Fatalf("pending poll should resolve, not error: %v", r.err)
		}
		var poll PollResponse
		if err := json.Unmarshal(r.resp, &poll); err != nil {
			t.Fatalf("unmarshal poll response: %v", err)
		}
		if poll.Delivered {
			t.Fatal("poll resolved by unbind must report delivered == false")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("pending poll never resolved")
	}
}

func TestSignalOps_PollUnknownRID(t *testing.T) {
	reg := newTestRegistry(t)

	payload, _ := json.Marshal(PollRequest{RID: 1234})
	_, err := reg.Invoke(context.Background(), OpSignalPoll, payload)
	if !stderrors.Is(err, errors.InvalidResource(0)) {
		t.Fatalf("expected invalid_resource, got %v", err)
	}
}

func TestSignalOps_FeatureDisabled(t *testing.T) {
	reg := NewRegistry()
	mgr := signal.NewManager(resource.NewTable(), feature.NewGate())
	if err := RegisterSignalOps(reg, mgr); err != nil {
		t.Fatalf("RegisterSignalOps failed: %v", err)
	}

	for _, tc := range []struct {
		name string
		req  any
	}{
		{OpSignalBind, BindRequest{Signo: int(syscall.SIGUSR1)}},
		{OpSignalPoll, PollRequest{RID: 1}},
		{OpSignalUnbind, UnbindRequest{RID: 1}},
	} {
		payload, _ := json.Marshal(tc.req)
		_, err := reg.Invoke(context.Background(), tc.name, payload)
		var serr *errors.Error
		if !stderrors.As(err, &serr) || serr.Kind != errors.KindFeatureDisabled {
			t.Fatalf("%s: expected feature_disabled, got %v", tc.name, err)
		}
	}
}

func TestSignalOps_ResponseShape(t *testing.T) {
	reg := newTestRegistry(t)

	payload, _ := json.Marshal(BindRequest{Signo: int(syscall.SIGUSR1)})
	out, err := reg.Invoke(context.Background(), OpSignalBind, payload)
	if err != nil {
		t.Fatalf("bind failed: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(out, &raw); err != nil {
		t.Fatalf("bind response is not an object: %v", err)
	}
	if _, ok := raw["rid"]; !ok || len(raw) != 1 {
		t.Fatalf("bind response should carry exactly {rid}: %s", out)
	}

	rid := uint32(raw["rid"].(float64))
	payload, _ = json.Marshal(UnbindRequest{RID: rid})
	out, err = reg.Invoke(context.Background(), OpSignalUnbind, payload)
	if err != nil {
		t.Fatalf("unbind failed: %v", err)
	}
	if string(out) != "{}" {
		t.Fatalf("unbind response should be empty object, got %s", out)
	}
}
