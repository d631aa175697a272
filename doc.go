// Package relata attaches dynamically extensible, strongly typed, named
// attributes ("relations") to arbitrary host objects at run time.
//
// The three primitives are RelationType (a globally unique, typed attribute
// key), Relation (one key/value binding on a host), and Relatable (anything
// that can carry bindings; embed Core to get the capability). Every mutation
// of a binding raises an Event to the host's listeners, synchronously and in
// registration order.
//
// On top of the primitives sit automatic relation types: descriptors that
// register themselves as listeners the moment their own binding is created
// and derive their value from changes to sibling bindings. NewCounter,
// NewCollector, NewConstraint, NewDispatcher and NewTimer are the built-in
// policies; NewAutomatic exposes the raw extension point. Immutable is a
// singleton automatic type that freezes a host and everything bound to it.
//
// The framework is synchronous and re-entrant but not thread-safe: concurrent
// mutation of a single host must be serialized by the embedding application.
package relata
