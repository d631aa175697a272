package relata

import "time"

// Relation is one (type, value) binding attached to exactly one host. A
// Relation is itself a Relatable, so bindings can carry meta-attributes of
// their own.
type Relation struct {
	Core

	rtype   Type
	value   any
	frozen  bool
	created time.Time

	// autoEntry is the listener registered for an automatic type's
	// binding; kept for deregistration on delete.
	autoEntry *ListenerToken
}

func newRelation(t Type, value any) *Relation {
	return &Relation{
		Core:    Core{kind: kindBinding},
		rtype:   t,
		value:   value,
		created: time.Now(),
	}
}

// Type returns the relation type this binding instantiates.
func (r *Relation) Type() Type { return r.rtype }

// Value returns the stored value. Types with a read hook (timers) compute
// their value in Get instead; Value always returns the raw stored value.
func (r *Relation) Value() any { return r.value }

// Created returns the time the binding was materialized on its host.
func (r *Relation) Created() time.Time { return r.created }

// IsFrozen reports whether the binding was frozen by the immutability
// cascade.
func (r *Relation) IsFrozen() bool { return r.frozen }
