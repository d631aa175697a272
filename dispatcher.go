package relata

import "fmt"

// NewDispatcher creates an automatic relation type that forwards every
// event on its host to a list of registered listener objects through the
// supplied dispatch function. The dispatcher derives no value of its own;
// its binding's value is simply the listener list. Register listeners with
// AddDispatchListener or by appending to the list directly.
//
// Listener errors propagate to the mutating caller and abort the remaining
// dispatch. A nil dispatch fails every forwarded event with
// ErrUnsupportedDerivation.
func NewDispatcher[L any](name string, dispatch DispatchFunc[L], opts ...TypeOption) *RelationType[*List[L]] {
	rt := NewAutomatic[*List[L]](name, nil, opts...)
	ti := rt.info()
	ti.selfUpdating = true
	if dispatch == nil {
		return rt
	}
	ti.process = func(ev *Event) error {
		r, bound := ownRelation(ev.Scope, rt)
		if !bound {
			return nil
		}
		for _, l := range r.value.(*List[L]).Values() {
			if err := dispatch(l, ev); err != nil {
				return fmt.Errorf("dispatcher %s: %w", name, err)
			}
		}
		return nil
	}
	return rt
}

// AddDispatchListener binds the dispatcher type on host if needed and
// appends listener to its list.
func AddDispatchListener[L any](host Relatable, rt *RelationType[*List[L]], listener L) error {
	list, err := Get(host, rt)
	if err != nil {
		return err
	}
	return list.Append(listener)
}
