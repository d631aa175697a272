package relata

// Number covers the numeric value types a counter can accumulate. Overflow
// behavior is that of the underlying type.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// NewCounter creates an automatic relation type whose value counts events
// on its host: every event accepted by match increments the counter by
// step's result. The counter materializes at zero on first read or can be
// seeded with Set; afterwards it is read-only to external callers and
// updated only through the framework-internal path.
//
// Both match and step are required; a counter constructed without them
// fails every forwarded event with ErrUnsupportedDerivation.
func NewCounter[N Number](name string, match Predicate[*Event], step Function[*Event, N], opts ...TypeOption) *RelationType[N] {
	opts = append(opts, ReadOnly(), WithInitial[N](func(Relatable) N {
		var zero N
		return zero
	}))
	rt := NewAutomatic[N](name, nil, opts...)
	ti := rt.info()
	ti.selfUpdating = true
	if match == nil || step == nil {
		return rt
	}
	ti.process = func(ev *Event) error {
		if !match(ev) {
			return nil
		}
		r, ok := ownRelation(ev.Scope, rt)
		if !ok {
			return nil
		}
		next := r.value.(N) + step(ev)
		return setValue(ev.Scope, rt, next, true)
	}
	return rt
}

// CountOf is a convenience step function incrementing by one per matched
// event.
func CountOf[N Number](*Event) N { return 1 }
