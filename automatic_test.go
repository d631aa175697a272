package relata_test

import (
	"errors"
	"testing"

	. "github.com/comalice/relata"
)

func TestAutomaticRegistersOnBindAndUnregistersOnDelete(t *testing.T) {
	probe := NewType[int]("auto.probe")
	var seen []EventKind
	watch := NewAutomatic[bool]("auto.watch", func(ev *Event) error {
		seen = append(seen, ev.Kind)
		return nil
	})
	h := &host{}

	// Not bound yet: events are not forwarded.
	if err := Set(h, probe, 1); err != nil {
		t.Fatal(err)
	}
	if len(seen) != 0 {
		t.Fatalf("unbound automatic must not observe events, saw %v", seen)
	}

	if err := Set(h, watch, true); err != nil {
		t.Fatal(err)
	}
	if err := Set(h, probe, 2); err != nil {
		t.Fatal(err)
	}
	if err := Delete(h, probe); err != nil {
		t.Fatal(err)
	}
	if len(seen) != 2 || seen[0] != KindUpdate || seen[1] != KindRemove {
		t.Fatalf("expected [update remove], got %v", seen)
	}

	// Deleting the automatic binding deregisters the listener.
	if err := Delete(h, watch); err != nil {
		t.Fatal(err)
	}
	if err := Set(h, probe, 3); err != nil {
		t.Fatal(err)
	}
	if len(seen) != 2 {
		t.Fatalf("deleted automatic must not observe events, saw %v", seen)
	}
}

func TestAutomaticIgnoresItsOwnBinding(t *testing.T) {
	var count int
	self := NewAutomatic[int]("auto.self", func(ev *Event) error {
		count++
		return nil
	})
	h := &host{}

	if err := Set(h, self, 0); err != nil {
		t.Fatal(err)
	}
	// Internal-path updates of the automatic's own binding are filtered
	// before they reach the policy; here even the add was its own.
	if count != 0 {
		t.Errorf("automatic must not process events for its own binding, got %d", count)
	}
}

func TestAutomaticWithoutPolicyFailsDerivation(t *testing.T) {
	probe := NewType[int]("auto.nopolicy.probe")
	broken := NewAutomatic[bool]("auto.nopolicy", nil)
	h := &host{}

	if err := Set(h, broken, true); err != nil {
		t.Fatal(err)
	}
	if err := Set(h, probe, 1); !errors.Is(err, ErrUnsupportedDerivation) {
		t.Fatalf("expected ErrUnsupportedDerivation, got %v", err)
	}
}

func TestEventScopeResolvesToCarrierNotSource(t *testing.T) {
	note := NewType[string]("auto.scope.note")

	var scopes []Relatable
	var sources []Relatable
	observer := NewAutomatic[bool]("auto.scope.observer", func(ev *Event) error {
		scopes = append(scopes, ev.Scope)
		sources = append(sources, ev.Source)
		return nil
	})

	// Bind the automatic type on a relation type acting as host.
	carrier := NewType[int]("auto.scope.carrier")
	if err := Set(carrier, observer, true); err != nil {
		t.Fatal(err)
	}
	if err := Set(carrier, note, "meta change on a type"); err != nil {
		t.Fatal(err)
	}

	// Bind it on a relation acting as host, too.
	h := &host{}
	if err := Set(h, carrier, 1); err != nil {
		t.Fatal(err)
	}
	binding := Relations(h)[0]
	if err := Set(binding, observer, true); err != nil {
		t.Fatal(err)
	}
	if err := Set(binding, note, "meta change on a binding"); err != nil {
		t.Fatal(err)
	}

	if len(scopes) != 2 {
		t.Fatalf("expected 2 observed events, got %d", len(scopes))
	}
	if scopes[0].RelatableCore() != carrier.RelatableCore() {
		t.Error("scope must resolve to the type carrying the automatic binding")
	}
	if scopes[1].RelatableCore() != binding.RelatableCore() {
		t.Error("scope must resolve to the binding carrying the automatic binding")
	}
	for i := range scopes {
		if scopes[i].RelatableCore() != sources[i].RelatableCore() {
			// Scope and source coincide here because the automatic
			// binding lives on the mutated host itself; the explicit
			// scope still must be populated.
			t.Errorf("event %d: scope and source diverged unexpectedly", i)
		}
	}
}
