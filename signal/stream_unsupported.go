//go:build !unix

package signal

import (
	"context"

	"github.com/wippyai/signal-host/errors"
	"github.com/wippyai/signal-host/resource"
)

const supported = false

// Stream is a placeholder on platforms without a signal-subscription
// facility. The manager fails every operation before a Stream can be
// created, so none of these methods are reachable.
type Stream struct{}

func newStream(signo int) (*Stream, error) {
	return nil, errors.Unsupported(errors.PhaseBind)
}

func (s *Stream) Signo() int { return 0 }

func (s *Stream) Drop() {}

func (s *Stream) beginWait(resource.Handle) error {
	return errors.Unsupported(errors.PhasePoll)
}

func (s *Stream) endWait() {}

func (s *Stream) wait(context.Context) (bool, error) {
	return false, errors.Unsupported(errors.PhasePoll)
}

// Name always returns "" on platforms without signal subscriptions.
func Name(signo int) string { return "" }

// Number always returns 0 on platforms without signal subscriptions.
func Number(name string) int { return 0 }
