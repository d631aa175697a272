package relata

// EventKind discriminates the three binding mutations a host can raise.
type EventKind uint8

const (
	// KindAdd fires when a binding is created on a host. Listeners run
	// before the binding is inserted; an error prevents the insert.
	KindAdd EventKind = iota
	// KindUpdate fires before an existing binding's value is replaced.
	// Listeners observe the previous value; an error prevents the swap.
	KindUpdate
	// KindRemove fires after a binding has been removed from its host.
	KindRemove
)

func (k EventKind) String() string {
	switch k {
	case KindAdd:
		return "add"
	case KindUpdate:
		return "update"
	case KindRemove:
		return "remove"
	}
	return "unknown"
}

// Event is the immutable record of a single binding mutation. It is
// constructed for one synchronous dispatch and not retained.
//
// Scope is the relatable the receiving listener was registered for. For a
// listener added directly on a host that is the host itself; for an
// automatic type it is the object carrying the automatic type's own binding,
// which is not necessarily Source when that binding lives on a relation type
// or on another binding. Automatic policies must resolve their own binding
// through Scope, never through Source.
type Event struct {
	Kind     EventKind
	Relation *Relation
	// Value is the proposed value for KindAdd and KindUpdate, and the
	// removed value for KindRemove.
	Value any
	// Previous is the pre-image value; meaningful only for KindUpdate.
	Previous any
	// Source is the host whose binding changed.
	Source Relatable
	// Scope is the listener-local resolution target, see type comment.
	Scope Relatable
}

// Listener receives change events for one host. Listeners run synchronously
// in registration order; the first error aborts the remaining dispatch and
// propagates to the caller that performed the mutation.
type Listener func(*Event) error
