//go:build unix

package signal

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"golang.org/x/sys/unix"

	"github.com/wippyai/signal-host/errors"
	"github.com/wippyai/signal-host/resource"
)

const supported = true

// Stream is one live subscription to an OS signal. It owns the Notify
// channel exclusively; the subscription is released when the stream is
// dropped. At most one task may wait on a stream at a time.
type Stream struct {
	ch       chan os.Signal
	done     chan struct{}
	signo    int
	mu       sync.Mutex
	inFlight bool
	closed   bool
}

func newStream(signo int) (*Stream, error) {
	if err := validateSignal(signo); err != nil {
		return nil, err
	}

	// Buffer of one: deliveries while nobody waits are coalesced into a
	// single pending event, matching the OS-level semantics.
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.Signal(signo))

	return &Stream{
		signo: signo,
		ch:    ch,
		done:  make(chan struct{}),
	}, nil
}

// Signo returns the subscribed signal number.
func (s *Stream) Signo() int { return s.signo }

// Drop releases the OS subscription and wakes any waiting task. The
// woken wait resolves with no delivery. Invoked by the resource table
// during removal; safe to call more than once.
func (s *Stream) Drop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	signal.Stop(s.ch)
	close(s.done)
}

// beginWait reserves the stream's single waiting-task slot.
func (s *Stream) beginWait(rid resource.Handle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight {
		return errors.PollInFlight(uint32(rid))
	}
	s.inFlight = true
	return nil
}

func (s *Stream) endWait() {
	s.mu.Lock()
	s.inFlight = false
	s.mu.Unlock()
}

// wait blocks until a signal is delivered (true), the stream is dropped
// (false), or ctx is canceled (error). An already-buffered delivery
// resolves immediately without suspending.
func (s *Stream) wait(ctx context.Context) (bool, error) {
	select {
	case <-s.ch:
		return true, nil
	case <-s.done:
		return false, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

// validateSignal rejects numbers the platform cannot subscribe to.
// SIGKILL and SIGSTOP are never catchable; anything the platform has no
// name for (including realtime signals) is refused rather than passed
// through to Notify, which would accept it silently.
func validateSignal(signo int) error {
	sig := syscall.Signal(signo)
	if signo <= 0 || unix.SignalName(sig) == "" {
		return errors.Subscription(signo, "not a recognized signal number")
	}
	if sig == syscall.SIGKILL || sig == syscall.SIGSTOP {
		return errors.Subscription(signo, unix.SignalName(sig)+" cannot be caught")
	}
	return nil
}

// Name returns the platform name for a signal number ("SIGHUP"), or ""
// if the number is not recognized.
func Name(signo int) string {
	return unix.SignalName(syscall.Signal(signo))
}

// Number returns the signal number for a platform name ("SIGHUP" or
// "HUP"), or 0 if the name is not recognized.
func Number(name string) int {
	if name == "" {
		return 0
	}
	if len(name) < 3 || name[:3] != "SIG" {
		name = "SIG" + name
	}
	return int(unix.SignalNum(name))
}
