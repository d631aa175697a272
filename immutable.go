package relata

import "fmt"

// Immutable is the singleton relation type that freezes a host. Binding it
// is legal only with the value true and happens at most once per host
// (write-once). On bind it freezes every existing binding on the host,
// substitutes frozen views for framework container values, invokes the
// host's Freezer capability when present, and finally registers itself as a
// listener so any later mutation attempt fails with ErrImmutableViolation.
//
// Freezing is single-level: meta-attributes of frozen bindings are frozen
// recursively, but values nested inside a frozen container are not
// deep-frozen beyond the container boundary itself. Mutable non-container
// values bound on the host are not frozen at all; callers needing deeper
// protection must arrange it themselves.
var Immutable = newImmutableType()

func newImmutableType() *RelationType[bool] {
	rt := NewAutomatic[bool]("relata.immutable", func(ev *Event) error {
		return fmt.Errorf("host is frozen: %w", ErrImmutableViolation)
	}, WriteOnce())
	ti := rt.info()
	ti.validate = func(v any) error {
		if b, ok := v.(bool); !ok || !b {
			return fmt.Errorf("immutable flag accepts only true: %w", ErrIllegalMutation)
		}
		return nil
	}
	ti.onBind = func(r *Relation, host Relatable) error {
		freezeHost(host)
		return nil
	}
	return rt
}

// freezeHost freezes a host core and all of its bindings, including the
// just-inserted immutable binding itself.
func freezeHost(h Relatable) {
	c := h.RelatableCore()
	if c.frozen {
		return
	}
	c.frozen = true
	for _, r := range c.relations.Values() {
		freezeRelation(r)
	}
	if f, ok := h.(Freezer); ok {
		f.Freeze()
	}
}

// freezeRelation freezes one binding: the binding itself, its container
// value if it is one, and its meta-attributes, recursively.
func freezeRelation(r *Relation) {
	if r.frozen {
		return
	}
	r.frozen = true
	if f, ok := r.value.(freezable); ok {
		f.freezeValue()
	}
	freezeHost(r)
}
