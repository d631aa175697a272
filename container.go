package relata

import (
	"encoding/json"
	"fmt"

	"github.com/comalice/relata/internal/ordered"
)

// The framework container types are the values to declare when a relation
// should hold a collection: relation types declared over *List, *OrderedSet
// or *OrderedMap materialize an empty container on first read, and the
// immutability cascade can reject further in-place mutation without
// cloning. Values stored inside a frozen container are not themselves
// frozen; that single-level boundary is deliberate.

// freezable is the internal contract the immutability cascade uses to
// freeze a bound value in place.
type freezable interface {
	freezeValue()
}

// List is an insertion-ordered sequence. The zero value is an empty,
// mutable list. Not safe for concurrent mutation.
type List[T any] struct {
	items  []T
	frozen bool
}

// NewList returns a list seeded with the given values.
func NewList[T any](values ...T) *List[T] {
	return &List[T]{items: append([]T(nil), values...)}
}

func (l *List[T]) freezeValue() { l.frozen = true }

// IsFrozen reports whether the list rejects mutation.
func (l *List[T]) IsFrozen() bool { return l.frozen }

// Len returns the number of elements.
func (l *List[T]) Len() int { return len(l.items) }

// At returns the element at index i.
func (l *List[T]) At(i int) T { return l.items[i] }

// Values returns a copy of the elements in order.
func (l *List[T]) Values() []T {
	return append([]T(nil), l.items...)
}

// Append adds values to the end of the list.
func (l *List[T]) Append(values ...T) error {
	if l.frozen {
		return fmt.Errorf("list append: %w", ErrImmutableViolation)
	}
	l.items = append(l.items, values...)
	return nil
}

// RemoveAt removes the element at index i, preserving order.
func (l *List[T]) RemoveAt(i int) error {
	if l.frozen {
		return fmt.Errorf("list remove: %w", ErrImmutableViolation)
	}
	if i < 0 || i >= len(l.items) {
		return fmt.Errorf("list remove: index %d out of range [0,%d)", i, len(l.items))
	}
	l.items = append(l.items[:i], l.items[i+1:]...)
	return nil
}

// TrimOldest drops elements from the front until at most max remain. A max
// below one clears nothing (unbounded).
func (l *List[T]) TrimOldest(max int) error {
	if l.frozen {
		return fmt.Errorf("list trim: %w", ErrImmutableViolation)
	}
	if max < 1 || len(l.items) <= max {
		return nil
	}
	l.items = append([]T(nil), l.items[len(l.items)-max:]...)
	return nil
}

// MarshalJSON renders the list as a JSON array.
func (l *List[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.Values())
}

// MarshalYAML renders the list as a YAML sequence.
func (l *List[T]) MarshalYAML() (any, error) {
	return l.Values(), nil
}

// OrderedSet is an insertion-ordered set of comparable values. The zero
// value is an empty, mutable set. Not safe for concurrent mutation.
type OrderedSet[T comparable] struct {
	items  ordered.Map[T, struct{}]
	frozen bool
}

// NewOrderedSet returns a set seeded with the given values.
func NewOrderedSet[T comparable](values ...T) *OrderedSet[T] {
	s := &OrderedSet[T]{}
	for _, v := range values {
		s.items.Set(v, struct{}{})
	}
	return s
}

func (s *OrderedSet[T]) freezeValue() { s.frozen = true }

// IsFrozen reports whether the set rejects mutation.
func (s *OrderedSet[T]) IsFrozen() bool { return s.frozen }

// Len returns the number of elements.
func (s *OrderedSet[T]) Len() int { return s.items.Len() }

// Contains reports membership.
func (s *OrderedSet[T]) Contains(v T) bool { return s.items.Has(v) }

// Values returns the elements in insertion order.
func (s *OrderedSet[T]) Values() []T { return s.items.Keys() }

// Add inserts v; inserting an existing value keeps its original position.
func (s *OrderedSet[T]) Add(v T) error {
	if s.frozen {
		return fmt.Errorf("set add: %w", ErrImmutableViolation)
	}
	s.items.Set(v, struct{}{})
	return nil
}

// Remove deletes v and reports whether it was present.
func (s *OrderedSet[T]) Remove(v T) (bool, error) {
	if s.frozen {
		return false, fmt.Errorf("set remove: %w", ErrImmutableViolation)
	}
	return s.items.Delete(v), nil
}

// MarshalJSON renders the set as a JSON array in insertion order.
func (s *OrderedSet[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Values())
}

// MarshalYAML renders the set as a YAML sequence in insertion order.
func (s *OrderedSet[T]) MarshalYAML() (any, error) {
	return s.Values(), nil
}

// OrderedMap is an insertion-ordered map. The zero value is an empty,
// mutable map. Not safe for concurrent mutation.
type OrderedMap[K comparable, V any] struct {
	items  ordered.Map[K, V]
	frozen bool
}

// NewOrderedMap returns an empty map.
func NewOrderedMap[K comparable, V any]() *OrderedMap[K, V] {
	return &OrderedMap[K, V]{}
}

func (m *OrderedMap[K, V]) freezeValue() { m.frozen = true }

// IsFrozen reports whether the map rejects mutation.
func (m *OrderedMap[K, V]) IsFrozen() bool { return m.frozen }

// Len returns the number of entries.
func (m *OrderedMap[K, V]) Len() int { return m.items.Len() }

// Get returns the value stored for key.
func (m *OrderedMap[K, V]) Get(key K) (V, bool) { return m.items.Get(key) }

// Keys returns the keys in insertion order.
func (m *OrderedMap[K, V]) Keys() []K { return m.items.Keys() }

// Put stores value under key.
func (m *OrderedMap[K, V]) Put(key K, value V) error {
	if m.frozen {
		return fmt.Errorf("map put: %w", ErrImmutableViolation)
	}
	m.items.Set(key, value)
	return nil
}

// Remove deletes key and reports whether it was present.
func (m *OrderedMap[K, V]) Remove(key K) (bool, error) {
	if m.frozen {
		return false, fmt.Errorf("map remove: %w", ErrImmutableViolation)
	}
	return m.items.Delete(key), nil
}

// MarshalJSON renders the map as a JSON object. Key order follows Go's
// encoding rules, not insertion order.
func (m *OrderedMap[K, V]) MarshalJSON() ([]byte, error) {
	out := make(map[K]V, m.items.Len())
	m.items.Range(func(k K, v V) bool {
		out[k] = v
		return true
	})
	return json.Marshal(out)
}

// MarshalYAML renders the map as a YAML mapping.
func (m *OrderedMap[K, V]) MarshalYAML() (any, error) {
	out := make(map[K]V, m.items.Len())
	m.items.Range(func(k K, v V) bool {
		out[k] = v
		return true
	})
	return out, nil
}
