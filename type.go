package relata

import (
	"fmt"
	"reflect"
)

// Modifier is a bitmask of per-type mutation rules.
type Modifier uint8

const (
	// ModifierWriteOnce permits exactly one external write; the binding may
	// still be created and then updated through the framework-internal path.
	ModifierWriteOnce Modifier = 1 << iota
	// ModifierReadOnly rejects every external replacement of an existing
	// binding's value. Automatic types updating their own binding use the
	// internal path, which bypasses this check.
	ModifierReadOnly
)

// Type is the untyped view of a relation type: a globally unique, immutable,
// named attribute key. Every Type is itself a Relatable, so descriptors can
// carry meta-attributes (annotations). The interface is sealed; instances
// are created through NewType, NewAutomatic, the reactive constructors or
// the TypeBuilder.
type Type interface {
	Relatable

	// Name returns the registry-unique name of the type.
	Name() string
	// ValueType returns the declared value type enforced on every write.
	ValueType() reflect.Type
	// Modifiers returns the mutation rules of the type.
	Modifiers() Modifier

	info() *typeInfo
}

// typeInfo carries the shared, non-generic state and behavior hooks of a
// relation type. RelationType embeds it; all framework code works against it
// through the Type interface.
type typeInfo struct {
	Core

	name      string
	valueType reflect.Type
	modifiers Modifier

	// Value production hooks. defaultFn is computed on every unbound read
	// and never stored; initialFn is computed once and stored; empty
	// materializes a type-appropriate empty value for container types.
	defaultFn func(Relatable) any
	initialFn func(Relatable) any
	empty     func() any

	// validate vets a proposed value before type checking and dispatch.
	validate func(any) error
	// read replaces the stored-value read, e.g. timers computing elapsed
	// time. write transforms a value on its way into the binding.
	read  func(*Relation) any
	write func(*Relation, any) any

	// process marks the type as automatic and holds its derivation policy.
	// onBind runs after the automatic binding is inserted, before listener
	// registration. selfUpdating suppresses the protective freeze of
	// write-once/read-only automatic values that the policy itself mutates.
	process      func(*Event) error
	onBind       func(r *Relation, host Relatable) error
	selfUpdating bool
}

func (ti *typeInfo) Name() string            { return ti.name }
func (ti *typeInfo) ValueType() reflect.Type { return ti.valueType }
func (ti *typeInfo) Modifiers() Modifier     { return ti.modifiers }
func (ti *typeInfo) info() *typeInfo         { return ti }

// RelationType is a typed attribute key. Create one per attribute, typically
// as a package-level variable, and use it with Get, Set and Delete. A
// RelationType is immutable after construction and registered globally by
// name.
type RelationType[T any] struct {
	typeInfo
}

// TypeOption configures a relation type at construction time.
type TypeOption func(*typeInfo)

// WriteOnce marks the type as writable exactly once.
func WriteOnce() TypeOption {
	return func(ti *typeInfo) { ti.modifiers |= ModifierWriteOnce }
}

// ReadOnly rejects external replacement of the value after creation.
func ReadOnly() TypeOption {
	return func(ti *typeInfo) { ti.modifiers |= ModifierReadOnly }
}

// WithDefault configures a default value computed on every read of an
// unbound host. The result is returned to the caller but never stored, so
// repeated reads never create a binding. The function's result type must
// match the type parameter of the RelationType it is applied to.
func WithDefault[T any](fn Function[Relatable, T]) TypeOption {
	return func(ti *typeInfo) {
		ti.defaultFn = func(h Relatable) any { return fn(h) }
	}
}

// WithInitial configures an initial value computed and stored on the first
// read of an unbound host. Storing fires a KindAdd event through the
// internal write path.
func WithInitial[T any](fn Function[Relatable, T]) TypeOption {
	return func(ti *typeInfo) {
		ti.initialFn = func(h Relatable) any { return fn(h) }
	}
}

// WithEmpty overrides the empty value materialized on first read when the
// type has neither a default nor an initial function. Container-typed
// relation types get this behavior automatically.
func WithEmpty[T any](fn func() T) TypeOption {
	return func(ti *typeInfo) {
		ti.empty = func() any { return fn() }
	}
}

var freezableType = reflect.TypeOf((*freezable)(nil)).Elem()

// NewType creates and registers a plain relation type. The name must be
// unique across the process; a duplicate registration panics, matching the
// create-once-at-init lifecycle of relation types. Use the TypeBuilder for
// an error-returning construction path.
func NewType[T any](name string, opts ...TypeOption) *RelationType[T] {
	rt, err := newType[T](name, opts...)
	if err != nil {
		panic(err)
	}
	return rt
}

func newType[T any](name string, opts ...TypeOption) (*RelationType[T], error) {
	if name == "" {
		return nil, fmt.Errorf("relation type name must not be empty")
	}
	rt := &RelationType[T]{typeInfo: typeInfo{
		Core:      Core{kind: kindType},
		name:      name,
		valueType: reflect.TypeOf((*T)(nil)).Elem(),
	}}
	for _, opt := range opts {
		opt(&rt.typeInfo)
	}
	// Framework containers materialize empty on first read.
	if rt.empty == nil && rt.valueType.Kind() == reflect.Pointer &&
		rt.valueType.Implements(freezableType) {
		elem := rt.valueType.Elem()
		rt.typeInfo.empty = func() any { return reflect.New(elem).Interface() }
	}
	if err := registerType(rt); err != nil {
		return nil, err
	}
	return rt, nil
}

// assignable reports whether v satisfies the declared value type.
func assignable(v any, declared reflect.Type) bool {
	if v == nil {
		// Untyped nil is acceptable only for nilable declared types.
		switch declared.Kind() {
		case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map,
			reflect.Chan, reflect.Func:
			return true
		}
		return false
	}
	return reflect.TypeOf(v).AssignableTo(declared)
}
