package relata

import "fmt"

// NewConstraint creates an automatic relation type that vetoes changes to
// the observed relation type on its host. The predicate is evaluated
// against every proposed value during pre-image dispatch; a false result
// surfaces ErrConstraintViolation from the originating Set call and the
// underlying binding is left unchanged.
//
// The constraint's own value is the accept predicate, read-only. Remove
// events are not vetoed. A constraint constructed without observed or
// accept fails every forwarded event with ErrUnsupportedDerivation.
func NewConstraint[T any](name string, observed *RelationType[T], accept Predicate[T], opts ...TypeOption) *RelationType[Predicate[T]] {
	opts = append(opts, ReadOnly(), WithInitial[Predicate[T]](func(Relatable) Predicate[T] {
		return accept
	}))
	rt := NewAutomatic[Predicate[T]](name, nil, opts...)
	ti := rt.info()
	ti.selfUpdating = true
	if observed == nil || accept == nil {
		return rt
	}
	ti.process = func(ev *Event) error {
		if ev.Kind == KindRemove || ev.Relation.Type() != Type(observed) {
			return nil
		}
		v, ok := ev.Value.(T)
		if !ok {
			return nil
		}
		if !accept(v) {
			return fmt.Errorf("constraint %s rejected %s of %s (value %v): %w",
				name, ev.Kind, observed.Name(), ev.Value, ErrConstraintViolation)
		}
		return nil
	}
	return rt
}
