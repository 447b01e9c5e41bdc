// Package signalhost exposes OS process signals as pollable, closable
// resources behind a request/response op surface.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	signalhost/          Root package bundling the pieces into a Host
//	├── signal/          Subscription streams and the bind/poll/unbind manager
//	├── resource/        Registry of live resources keyed by integer handles
//	├── ops/             Named-op dispatch with JSON request/response framing
//	├── feature/         Unstable-feature gate run before every operation
//	└── errors/          Structured error types (phase and kind)
//
// # Quick Start
//
// Create a host and drive the lifecycle directly:
//
//	host, err := signalhost.New(nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer host.Close()
//
//	rid, err := host.Manager().Bind(int(syscall.SIGHUP))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	delivered, err := host.Manager().Poll(ctx, rid)
//	// delivered == true:  a SIGHUP arrived
//	// delivered == false: the handle was unbound while waiting
//
//	host.Manager().Unbind(rid)
//
// Or through the op surface:
//
//	resp, err := host.Ops().Invoke(ctx, ops.OpSignalBind, []byte(`{"signo":1}`))
//
// Signal subscriptions are only available on unix; elsewhere every
// operation fails with an unsupported error.
package signalhost
