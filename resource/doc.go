// Package resource provides the registry of live host resources.
//
// Resources are opaque handles naming host-side values, such as signal
// subscriptions. The Table maps integer handles to Go values:
//
//	table := resource.NewTable()
//
//	// Add a value, get a handle
//	handle, err := table.Add(typeID, myValue)
//
//	// Retrieve value by handle
//	value, ok := table.Get(handle)
//
//	// Remove and get value back
//	value, ok := table.Remove(handle)
//
// # Type Safety
//
// Slots are tagged - each resource kind gets a unique type ID:
//
//	const SignalStreamTypeID = 1
//
//	handle, _ := table.Add(SignalStreamTypeID, stream)
//
//	value, ok := table.GetTyped(handle, SignalStreamTypeID) // ok
//	value, ok := table.GetTyped(handle, 99)                 // !ok
//
// # Observers
//
// Register observers to track resource lifecycle events:
//
//	table.Subscribe(obs) // obs.OnResourceEvent fires on add/remove
//
// # Cleanup
//
// Values implementing Dropper run their Drop method when removed. The
// table never removes resources on its own: a resource added and never
// removed is a leak, and closing it is the caller's responsibility.
// Call Close to drop everything during shutdown.
package resource
