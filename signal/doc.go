// Package signal exposes OS process signals as pollable, closable
// resources.
//
// A Manager over a resource table implements the three-operation
// lifecycle:
//
//	table := resource.NewTable()
//	gate := feature.NewGate(feature.Signal)
//	mgr := signal.NewManager(table, gate)
//
//	rid, err := mgr.Bind(int(syscall.SIGHUP))
//	...
//	delivered, err := mgr.Poll(ctx, rid) // suspends until delivery or unbind
//	...
//	err = mgr.Unbind(rid)                // wakes a suspended poll
//
// Unbind is the only cancellation path the lifecycle itself provides: it
// guarantees a suspended Poll resolves (with delivered == false) instead
// of staying parked. Callers wanting a timeout race Poll against a
// context deadline and still unbind afterward to release the
// subscription.
//
// Suspension is implemented with channel closure observed by the
// waiting select rather than a stored wake callback: the stream's done
// channel exists before the resource is published and is closed exactly
// once during removal, so a poll that races an unbind always observes
// the closure.
//
// On platforms without a signal-subscription facility all three
// operations fail with an unsupported error before touching the table.
package signal
