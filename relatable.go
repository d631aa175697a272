package relata

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/comalice/relata/internal/ordered"
)

// Relatable is the host capability: any object that can carry relations.
// Embed Core to implement it. Relation types and relations are themselves
// Relatable, so attributes nest (meta-attributes on descriptors and on
// bindings).
type Relatable interface {
	RelatableCore() *Core
}

// Freezer is the optional explicit-freeze capability. When a host
// implements it, the immutability cascade invokes Freeze after freezing the
// host's bindings.
type Freezer interface {
	Freeze()
}

// hostKind selects which of a host's listener lists receives its events:
// plain hosts dispatch to relation listeners, relation types acting as
// hosts to type listeners, and relations acting as hosts to update
// listeners.
type hostKind uint8

const (
	kindObject hostKind = iota
	kindType
	kindBinding
)

// ListenerToken identifies one listener registration for removal.
type ListenerToken struct {
	entry *listenerEntry
	core  *Core
	list  hostKind
}

type listenerEntry struct {
	fn      Listener
	scope   Relatable
	removed bool
}

// Core is the embeddable host state: the insertion-ordered binding table and
// the three listener lists. The zero value is a ready-to-use plain host.
// Core has no internal locking; concurrent mutation of one host is the
// embedding application's responsibility to serialize.
type Core struct {
	id        string
	kind      hostKind
	relations ordered.Map[Type, *Relation]
	lists     [3][]*listenerEntry
	frozen    bool
}

// RelatableCore returns the core itself, implementing Relatable for every
// type that embeds Core.
func (c *Core) RelatableCore() *Core { return c }

// ID returns a process-unique identity for the host, assigned lazily on
// first use. It is stable for the host's lifetime and used by snapshots and
// diagnostics.
func (c *Core) ID() string {
	if c.id == "" {
		c.id = uuid.NewString()
	}
	return c.id
}

// IsFrozen reports whether the immutability cascade has frozen this host.
func (c *Core) IsFrozen() bool { return c.frozen }

// AddRelationListener registers a listener for changes on a plain host.
func (c *Core) AddRelationListener(l Listener) *ListenerToken {
	return c.addListener(kindObject, l, nil)
}

// AddRelationTypeListener registers a listener for changes to
// meta-attributes carried by a relation type.
func (c *Core) AddRelationTypeListener(l Listener) *ListenerToken {
	return c.addListener(kindType, l, nil)
}

// AddRelationUpdateListener registers a listener for changes to
// meta-attributes carried by a relation.
func (c *Core) AddRelationUpdateListener(l Listener) *ListenerToken {
	return c.addListener(kindBinding, l, nil)
}

// RemoveListener deregisters a previously added listener. Removing a token
// twice is a no-op.
func (c *Core) RemoveListener(tok *ListenerToken) {
	if tok == nil || tok.core != c || tok.entry.removed {
		return
	}
	tok.entry.removed = true
	list := c.lists[tok.list]
	for i, e := range list {
		if e == tok.entry {
			c.lists[tok.list] = append(list[:i], list[i+1:]...)
			return
		}
	}
}

func (c *Core) addListener(list hostKind, l Listener, scope Relatable) *ListenerToken {
	entry := &listenerEntry{fn: l, scope: scope}
	c.lists[list] = append(c.lists[list], entry)
	return &ListenerToken{entry: entry, core: c, list: list}
}

// dispatch invokes the listener list matching this host's kind, in
// registration order. The first listener error aborts the remaining
// dispatch and propagates to the mutating caller. Listeners may re-enter
// the host; the list is snapshotted per dispatch so re-entrant
// registrations take effect on the next event.
func (c *Core) dispatch(ev *Event) error {
	list := c.lists[c.kind]
	if len(list) == 0 {
		return nil
	}
	snapshot := make([]*listenerEntry, len(list))
	copy(snapshot, list)
	for _, e := range snapshot {
		if e.removed {
			continue
		}
		ev.Scope = e.scope
		if ev.Scope == nil {
			ev.Scope = ev.Source
		}
		if err := e.fn(ev); err != nil {
			return err
		}
	}
	return nil
}

// Get returns the value bound for rt on h. Without a binding the fallback
// order is: configured default (computed, never stored), configured initial
// value (computed and stored, firing KindAdd), a container-appropriate
// empty value (stored), and finally the zero value (not stored).
func Get[T any](h Relatable, rt *RelationType[T]) (T, error) {
	var zero T
	c := h.RelatableCore()
	ti := rt.info()
	if r, ok := c.relations.Get(rt); ok {
		if ti.read != nil {
			return asValue[T](rt, ti.read(r))
		}
		return asValue[T](rt, r.value)
	}
	if ti.defaultFn != nil {
		return asValue[T](rt, ti.defaultFn(h))
	}
	var v any
	switch {
	case ti.initialFn != nil:
		v = ti.initialFn(h)
	case ti.empty != nil:
		v = ti.empty()
	default:
		return zero, nil
	}
	if err := setValue(h, rt, v, true); err != nil {
		return zero, fmt.Errorf("materialize %s: %w", rt.Name(), err)
	}
	if ti.read != nil {
		if r, ok := c.relations.Get(rt); ok {
			return asValue[T](rt, ti.read(r))
		}
	}
	return asValue[T](rt, v)
}

// asValue guards the any boundary: value producers configured with a
// mismatched result type surface ErrTypeMismatch instead of panicking.
func asValue[T any](t Type, v any) (T, error) {
	out, ok := v.(T)
	if !ok && v != nil {
		return out, fmt.Errorf("get %s (%T): %w", t.Name(), v, ErrTypeMismatch)
	}
	return out, nil
}

// Set creates or replaces the binding for rt on h, firing KindAdd or
// KindUpdate respectively. Updates use pre-image semantics: listeners run
// before the value is swapped and an error leaves the binding unchanged.
func Set[T any](h Relatable, rt *RelationType[T], value T) error {
	return setValue(h, rt, value, false)
}

// Delete removes the binding for t on h and fires KindRemove after the
// removal. Deleting an absent binding is a no-op.
func Delete(h Relatable, t Type) error {
	c := h.RelatableCore()
	if c.frozen {
		return fmt.Errorf("delete %s: %w", t.Name(), ErrImmutableViolation)
	}
	r, ok := c.relations.Get(t)
	if !ok {
		return nil
	}
	if r.frozen {
		return fmt.Errorf("delete %s: %w", t.Name(), ErrImmutableViolation)
	}
	c.relations.Delete(t)
	if r.autoEntry != nil {
		c.RemoveListener(r.autoEntry)
		r.autoEntry = nil
	}
	ev := &Event{Kind: KindRemove, Relation: r, Value: r.value, Source: h}
	return c.dispatch(ev)
}

// Has reports whether h carries a binding for t. Defaults never create
// bindings, so Has stays false for purely defaulted reads.
func Has(h Relatable, t Type) bool {
	return h.RelatableCore().relations.Has(t)
}

// Relations returns the bindings of h in insertion order.
func Relations(h Relatable) []*Relation {
	return h.RelatableCore().relations.Values()
}

// TypesOf returns the relation types bound on h in insertion order.
func TypesOf(h Relatable) []Type {
	return h.RelatableCore().relations.Keys()
}

// setValue is the single write path. internal marks framework-privileged
// writes: value materialization and automatic types updating their own
// binding, which bypass the write-once and read-only checks.
func setValue(h Relatable, t Type, value any, internal bool) error {
	c := h.RelatableCore()
	ti := t.info()
	if c.frozen {
		return fmt.Errorf("set %s: %w", t.Name(), ErrImmutableViolation)
	}
	if ti.validate != nil {
		if err := ti.validate(value); err != nil {
			return err
		}
	}
	if !assignable(value, ti.valueType) {
		return fmt.Errorf("set %s (%T): %w", t.Name(), value, ErrTypeMismatch)
	}

	if r, ok := c.relations.Get(t); ok {
		if r.frozen {
			return fmt.Errorf("set %s: %w", t.Name(), ErrImmutableViolation)
		}
		if !internal {
			if ti.modifiers&ModifierWriteOnce != 0 {
				return fmt.Errorf("set %s: write-once relation already written: %w", t.Name(), ErrIllegalMutation)
			}
			if ti.modifiers&ModifierReadOnly != 0 {
				return fmt.Errorf("set %s: relation is read-only: %w", t.Name(), ErrIllegalMutation)
			}
		}
		ev := &Event{Kind: KindUpdate, Relation: r, Value: value, Previous: r.value, Source: h}
		if err := c.dispatch(ev); err != nil {
			return err
		}
		if ti.write != nil {
			value = ti.write(r, value)
		}
		r.value = value
		return nil
	}

	r := newRelation(t, value)
	if ti.write != nil {
		r.value = ti.write(r, value)
	}
	ev := &Event{Kind: KindAdd, Relation: r, Value: value, Source: h}
	if err := c.dispatch(ev); err != nil {
		return err
	}
	c.relations.Set(t, r)
	if ti.process != nil {
		return bindAutomatic(t, r, h)
	}
	return nil
}
