//go:build unix

package signalhost

import (
	"context"
	stderrors "errors"
	"syscall"
	"testing"
	"time"

	"github.com/wippyai/signal-host/errors"
	"github.com/wippyai/signal-host/feature"
)

func TestHost_DefaultGateEnablesSignal(t *testing.T) {
	host, err := New(nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer host.Close()

	rid, err := host.Manager().Bind(int(syscall.SIGUSR1))
	if err != nil {
		t.Fatalf("Bind failed: %v", err)
	}
	if err := host.Manager().Unbind(rid); err != nil {
		t.Fatalf("Unbind failed: %v", err)
	}
}

func TestHost_ExplicitGate(t *testing.T) {
	host, err := New(feature.NewGate())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer host.Close()

	_, err = host.Manager().Bind(int(syscall.SIGUSR1))
	var serr *errors.Error
	if !stderrors.As(err, &serr) || serr.Kind != errors.KindFeatureDisabled {
		t.Fatalf("expected feature_disabled, got %v", err)
	}
}

func TestHost_CloseWakesPolls(t *testing.T) {
	host, err := New(nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	rid, err := host.Manager().Bind(int(syscall.SIGUSR1))
	if err != nil {
		t.Fatalf("Bind failed: %v", err)
	}

	done := make(chan struct{})
	var delivered bool
	var pollErr error
	go func() {
		delivered, pollErr = host.Manager().Poll(context.Background(), rid)
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	if err := host.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("poll not resolved by Close")
	}
	if pollErr != nil {
		t.Fatalf("poll should resolve, not error: %v", pollErr)
	}
	if delivered {
		t.Fatal("poll resolved by shutdown must report no delivery")
	}
}

func TestHost_OpsWired(t *testing.T) {
	host, err := New(nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer host.Close()

	if got := len(host.Ops().Names()); got != 3 {
		t.Fatalf("expected 3 registered ops, got %d", got)
	}
}
