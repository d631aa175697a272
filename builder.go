package relata

import "fmt"

// TypeBuilder provides a fluent, error-returning construction path for
// relation types, as an alternative to the panicking NewType constructors.
// Configuration errors are deferred and reported by Register.
type TypeBuilder[T any] struct {
	name        string
	opts        []TypeOption
	annotations []func(Type) error
	err         error
}

// BuildType starts a builder for a relation type with the given
// registry-unique name.
func BuildType[T any](name string) *TypeBuilder[T] {
	b := &TypeBuilder[T]{name: name}
	if name == "" {
		b.err = fmt.Errorf("relation type name must not be empty")
	}
	return b
}

// WriteOnce marks the type as writable exactly once.
func (b *TypeBuilder[T]) WriteOnce() *TypeBuilder[T] {
	b.opts = append(b.opts, WriteOnce())
	return b
}

// ReadOnly rejects external replacement of the value after creation.
func (b *TypeBuilder[T]) ReadOnly() *TypeBuilder[T] {
	b.opts = append(b.opts, ReadOnly())
	return b
}

// Default configures the default value function; see WithDefault.
func (b *TypeBuilder[T]) Default(fn Function[Relatable, T]) *TypeBuilder[T] {
	if fn == nil {
		b.fail("default function must not be nil")
		return b
	}
	b.opts = append(b.opts, WithDefault(fn))
	return b
}

// Initial configures the initial value function; see WithInitial.
func (b *TypeBuilder[T]) Initial(fn Function[Relatable, T]) *TypeBuilder[T] {
	if fn == nil {
		b.fail("initial function must not be nil")
		return b
	}
	b.opts = append(b.opts, WithInitial(fn))
	return b
}

// Empty configures the empty value materialized on first unbound read; see
// WithEmpty.
func (b *TypeBuilder[T]) Empty(fn func() T) *TypeBuilder[T] {
	if fn == nil {
		b.fail("empty function must not be nil")
		return b
	}
	b.opts = append(b.opts, WithEmpty(fn))
	return b
}

// Annotate queues a meta-attribute to bind on the type after registration.
func Annotate[T, A any](b *TypeBuilder[T], at *RelationType[A], value A) *TypeBuilder[T] {
	b.annotations = append(b.annotations, func(t Type) error {
		return Set(t, at, value)
	})
	return b
}

// Register validates the configuration, registers the type and applies its
// annotations. The registry rejects duplicate names.
func (b *TypeBuilder[T]) Register() (*RelationType[T], error) {
	if b.err != nil {
		return nil, fmt.Errorf("build type %q: %w", b.name, b.err)
	}
	rt, err := newType[T](b.name, b.opts...)
	if err != nil {
		return nil, fmt.Errorf("build type %q: %w", b.name, err)
	}
	for _, apply := range b.annotations {
		if err := apply(rt); err != nil {
			return nil, fmt.Errorf("annotate type %q: %w", b.name, err)
		}
	}
	return rt, nil
}

func (b *TypeBuilder[T]) fail(msg string) {
	if b.err == nil {
		b.err = fmt.Errorf("%s", msg)
	}
}
