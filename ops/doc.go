// Package ops is the request/response dispatch layer over the signal
// lifecycle.
//
// Callers address operations by name with a JSON payload; the registry
// decodes the request, runs the handler, and encodes the structured
// response:
//
//	reg := ops.NewRegistry()
//	ops.RegisterSignalOps(reg, mgr)
//
//	resp, err := reg.Invoke(ctx, ops.OpSignalBind, []byte(`{"signo":1}`))
//	// resp == {"rid":1}
//
// signal_bind and signal_unbind complete synchronously; signal_poll
// suspends on the caller's context until a delivery or an unbind.
package ops
