package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseBind     Phase = "bind"     // subscription setup
	PhasePoll     Phase = "poll"     // waiting for delivery
	PhaseUnbind   Phase = "unbind"   // subscription teardown
	PhaseRegistry Phase = "registry" // resource table operations
	PhaseDispatch Phase = "dispatch" // op routing and (de)serialization
	PhaseConfig   Phase = "config"   // configuration loading
)

// Kind categorizes the error
type Kind string

const (
	KindSubscription    Kind = "subscription"     // platform refused the signal number
	KindInvalidResource Kind = "invalid_resource" // poll target absent or wrong type
	KindUnknownResource Kind = "unknown_resource" // unbind target absent or wrong type
	KindFeatureDisabled Kind = "feature_disabled" // gated feature not enabled
	KindUnsupported     Kind = "unsupported"      // platform has no signal facility
	KindPollInFlight    Kind = "poll_in_flight"   // second concurrent poll on one resource
	KindInvalidInput    Kind = "invalid_input"    // malformed request payload
	KindNotFound        Kind = "not_found"        // unknown op name
	KindClosed          Kind = "closed"           // registry already shut down
)

// Error is the structured error type used throughout signal-host
type Error struct {
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
	Signo  int
	Handle uint32
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Signo != 0 {
		fmt.Fprintf(&b, " signo=%d", e.Signo)
	}
	if e.Handle != 0 {
		fmt.Fprintf(&b, " rid=%d", e.Handle)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Signo sets the signal number the error relates to
func (b *Builder) Signo(signo int) *Builder {
	b.err.Signo = signo
	return b
}

// Handle sets the resource handle the error relates to
func (b *Builder) Handle(rid uint32) *Builder {
	b.err.Handle = rid
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// Subscription creates a bind-time subscription failure
func Subscription(signo int, detail string) *Error {
	return &Error{
		Phase:  PhaseBind,
		Kind:   KindSubscription,
		Signo:  signo,
		Detail: detail,
	}
}

// InvalidResource reports a poll against a handle that is absent or of the wrong type
func InvalidResource(rid uint32) *Error {
	return &Error{
		Phase:  PhasePoll,
		Kind:   KindInvalidResource,
		Handle: rid,
		Detail: "no signal stream registered under this handle",
	}
}

// UnknownResource reports an unbind against a handle that is absent or of the wrong type
func UnknownResource(rid uint32) *Error {
	return &Error{
		Phase:  PhaseUnbind,
		Kind:   KindUnknownResource,
		Handle: rid,
		Detail: "no signal stream registered under this handle",
	}
}

// FeatureDisabled reports an operation blocked by the feature gate
func FeatureDisabled(phase Phase, feature string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindFeatureDisabled,
		Detail: fmt.Sprintf("feature %q is not enabled", feature),
	}
}

// PollInFlight reports a second concurrent poll on the same handle
func PollInFlight(rid uint32) *Error {
	return &Error{
		Phase:  PhasePoll,
		Kind:   KindPollInFlight,
		Handle: rid,
		Detail: "another poll is already waiting on this handle",
	}
}

// Unsupported reports an operation on a platform without a signal facility
func Unsupported(phase Phase) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: "signal subscriptions are not supported on this platform",
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// NotFound reports an unknown operation name
func NotFound(name string) *Error {
	return &Error{
		Phase:  PhaseDispatch,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("no op registered as %q", name),
	}
}
