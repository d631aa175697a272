package relata

// Function is the narrow contract through which the framework consumes pure
// unary value transformers: default and initial value producers, counter
// increments and similar. Implementations must not retain or mutate their
// argument unless that is their documented purpose.
type Function[T, R any] func(T) R

// Predicate is a pure boolean test. It must be safe to evaluate repeatedly
// with the same input.
type Predicate[T any] func(T) bool

// CollectFunc maps a changed binding and its new value to a collected value.
// Returning false discards the event without collecting anything.
type CollectFunc[T any] func(r *Relation, value any) (T, bool)

// DispatchFunc forwards one event to one registered listener object of a
// dispatcher relation type.
type DispatchFunc[L any] func(listener L, ev *Event) error
