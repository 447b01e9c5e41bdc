package resource

// Handle is an opaque reference to a resource in a table.
// Handle 0 is reserved and always invalid.
type Handle uint32

// TypeID tags a table slot with the kind of resource stored in it.
// Lookups through GetTyped fail when the tag does not match, so a
// handle minted for one resource kind can never alias another.
type TypeID uint32

// Event types for resource lifecycle notifications.
type EventType uint8

const (
	EventAdded EventType = iota
	EventRemoved
)

// Event represents a resource lifecycle event.
type Event struct {
	Value  any
	Handle Handle
	TypeID TypeID
	Type   EventType
}

// Observer receives notifications about resource lifecycle events.
type Observer interface {
	OnResourceEvent(Event)
}

// Dropper is optionally implemented by resource values that need cleanup.
// Drop is invoked by the table while the slot is being released, before
// the removal event is published.
type Dropper interface {
	Drop()
}
