package relata

import "time"

// NewTimer creates a relation type whose value is computed on every read as
// the time elapsed since its binding was created. Setting a duration d
// re-arms the timer as if it had been bound d ago; construct with WriteOnce
// to freeze the epoch permanently after the binding exists.
//
// The timer is not event-driven: it is the one built-in type that derives
// its value at read time rather than from its host's change stream.
func NewTimer(name string, opts ...TypeOption) *RelationType[time.Duration] {
	rt := NewType[time.Duration](name, opts...)
	ti := rt.info()
	ti.empty = func() any { return time.Duration(0) }
	ti.read = func(r *Relation) any { return time.Since(r.created) }
	ti.write = func(r *Relation, v any) any {
		r.created = time.Now().Add(-v.(time.Duration))
		return v
	}
	return rt
}
