package relata

import "fmt"

// CollectorMaxSize is the meta-annotation bound on a sequence collector
// type itself to cap its list: once the list exceeds the annotated size the
// oldest entries are trimmed. Unset or non-positive means unbounded.
var CollectorMaxSize = NewType[int]("relata.collector.maxSize")

// NewCollector creates an automatic relation type that accumulates values
// derived from events on its host into an insertion-ordered list. For each
// add or update event, collect maps the changed binding and its new value
// to a candidate; returning false skips the event. Remove events are
// ignored in sequence mode.
//
// Annotate the returned type with CollectorMaxSize to keep only the newest
// entries. A nil collect fails every forwarded event with
// ErrUnsupportedDerivation.
func NewCollector[T any](name string, collect CollectFunc[T], opts ...TypeOption) *RelationType[*List[T]] {
	opts = append(opts, ReadOnly())
	rt := NewAutomatic[*List[T]](name, nil, opts...)
	ti := rt.info()
	ti.selfUpdating = true
	if collect == nil {
		return rt
	}
	ti.process = func(ev *Event) error {
		if ev.Kind == KindRemove {
			return nil
		}
		v, ok := collect(ev.Relation, ev.Value)
		if !ok {
			return nil
		}
		r, bound := ownRelation(ev.Scope, rt)
		if !bound {
			return nil
		}
		list := r.value.(*List[T])
		if err := list.Append(v); err != nil {
			return fmt.Errorf("collector %s: %w", name, err)
		}
		max, err := Get(rt, CollectorMaxSize)
		if err != nil {
			return fmt.Errorf("collector %s: %w", name, err)
		}
		if max > 0 {
			if err := list.TrimOldest(max); err != nil {
				return fmt.Errorf("collector %s: %w", name, err)
			}
		}
		return nil
	}
	return rt
}

// NewDistinctCollector creates an automatic relation type that accumulates
// collected values into an insertion-ordered set. Add and update events
// insert the collected value; a remove event removes the value collected
// from the removed binding.
//
// A nil collect fails every forwarded event with ErrUnsupportedDerivation.
func NewDistinctCollector[T comparable](name string, collect CollectFunc[T], opts ...TypeOption) *RelationType[*OrderedSet[T]] {
	opts = append(opts, ReadOnly())
	rt := NewAutomatic[*OrderedSet[T]](name, nil, opts...)
	ti := rt.info()
	ti.selfUpdating = true
	if collect == nil {
		return rt
	}
	ti.process = func(ev *Event) error {
		v, ok := collect(ev.Relation, ev.Value)
		if !ok {
			return nil
		}
		r, bound := ownRelation(ev.Scope, rt)
		if !bound {
			return nil
		}
		set := r.value.(*OrderedSet[T])
		if ev.Kind == KindRemove {
			if _, err := set.Remove(v); err != nil {
				return fmt.Errorf("collector %s: %w", name, err)
			}
			return nil
		}
		if err := set.Add(v); err != nil {
			return fmt.Errorf("collector %s: %w", name, err)
		}
		return nil
	}
	return rt
}
