package relata

import "fmt"

// NewAutomatic creates and registers an automatic relation type: a
// descriptor that registers itself as a listener on whatever host its own
// binding is created on, and deregisters when that binding is deleted.
// While bound, every event on the host that is not for the automatic
// binding itself is forwarded to process. The policy resolves its own
// binding through the event's Scope, which is the host carrying the
// automatic binding even when that host is itself a relation type or a
// relation.
//
// A nil process yields ErrUnsupportedDerivation on the first forwarded
// event; the built-in counter, collector, constraint, dispatcher and timer
// types are all constructed through this path.
func NewAutomatic[T any](name string, process func(*Event) error, opts ...TypeOption) *RelationType[T] {
	rt := NewType[T](name, opts...)
	ti := rt.info()
	if process == nil {
		process = func(ev *Event) error {
			return fmt.Errorf("%s: %w", name, ErrUnsupportedDerivation)
		}
	}
	ti.process = process
	return rt
}

// bindAutomatic wires a freshly inserted automatic binding into its host:
// protective transform first, then the type's bind hook, then listener
// registration in the list matching the host's kind. Registration comes
// last so an immutability bind observes every pre-existing binding before
// its own listener arms.
func bindAutomatic(t Type, r *Relation, host Relatable) error {
	ti := t.info()
	if !ti.selfUpdating && ti.modifiers&(ModifierWriteOnce|ModifierReadOnly) != 0 {
		if f, ok := r.value.(freezable); ok {
			f.freezeValue()
		}
	}
	if ti.onBind != nil {
		if err := ti.onBind(r, host); err != nil {
			return err
		}
	}
	c := host.RelatableCore()
	r.autoEntry = c.addListener(c.kind, func(ev *Event) error {
		if ev.Relation.Type() == t {
			return nil
		}
		return ti.process(ev)
	}, host)
	return nil
}

// ownRelation resolves an automatic type's own binding through the event
// scope.
func ownRelation(scope Relatable, t Type) (*Relation, bool) {
	return scope.RelatableCore().relations.Get(t)
}
