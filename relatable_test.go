package relata_test

import (
	"errors"
	"fmt"
	"testing"

	. "github.com/comalice/relata"
)

type host struct {
	Core
}

func TestSetFiresAddThenUpdateWithPreImage(t *testing.T) {
	name := NewType[string]("core.name")
	h := &host{}

	var events []string
	h.AddRelationListener(func(ev *Event) error {
		events = append(events, fmt.Sprintf("%s:%v->%v", ev.Kind, ev.Previous, ev.Value))
		return nil
	})

	if err := Set(h, name, "a"); err != nil {
		t.Fatal(err)
	}
	if err := Set(h, name, "b"); err != nil {
		t.Fatal(err)
	}

	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d: %v", len(events), events)
	}
	if events[0] != "add:<nil>->a" {
		t.Errorf("unexpected add event %q", events[0])
	}
	if events[1] != "update:a->b" {
		t.Errorf("unexpected update event %q", events[1])
	}

	got, err := Get(h, name)
	if err != nil {
		t.Fatal(err)
	}
	if got != "b" {
		t.Errorf("expected value b, got %q", got)
	}
}

func TestDefaultComputedNeverStored(t *testing.T) {
	calls := 0
	size := NewType[int]("core.size", WithDefault(func(Relatable) int {
		calls++
		return 42
	}))
	h := &host{}

	for i := 0; i < 3; i++ {
		got, err := Get(h, size)
		if err != nil {
			t.Fatal(err)
		}
		if got != 42 {
			t.Fatalf("expected default 42, got %d", got)
		}
	}
	if calls != 3 {
		t.Errorf("expected default computed per read, got %d calls", calls)
	}
	if Has(h, size) {
		t.Error("default read must not create a binding")
	}
	if len(Relations(h)) != 0 {
		t.Errorf("expected no bindings, got %d", len(Relations(h)))
	}
}

func TestInitialComputedOnceAndStored(t *testing.T) {
	calls := 0
	seq := NewType[int]("core.seq", WithInitial(func(Relatable) int {
		calls++
		return 7
	}))
	h := &host{}

	var added int
	h.AddRelationListener(func(ev *Event) error {
		if ev.Kind == KindAdd {
			added++
		}
		return nil
	})

	for i := 0; i < 3; i++ {
		got, err := Get(h, seq)
		if err != nil {
			t.Fatal(err)
		}
		if got != 7 {
			t.Fatalf("expected initial 7, got %d", got)
		}
	}
	if calls != 1 {
		t.Errorf("expected initial computed once, got %d calls", calls)
	}
	if added != 1 {
		t.Errorf("expected one add event from materialization, got %d", added)
	}
	if !Has(h, seq) {
		t.Error("initial read must create a binding")
	}
}

func TestWriteOnceSecondSetFails(t *testing.T) {
	id := NewType[string]("core.id", WriteOnce())
	h := &host{}

	if err := Set(h, id, "v1"); err != nil {
		t.Fatal(err)
	}
	err := Set(h, id, "v2")
	if !errors.Is(err, ErrIllegalMutation) {
		t.Fatalf("expected ErrIllegalMutation, got %v", err)
	}

	got, err := Get(h, id)
	if err != nil {
		t.Fatal(err)
	}
	if got != "v1" {
		t.Errorf("expected first value to survive, got %q", got)
	}
}

func TestReadOnlyRejectsExternalUpdate(t *testing.T) {
	state := NewType[string]("core.state", ReadOnly())
	h := &host{}

	// Creation is allowed; replacement is not.
	if err := Set(h, state, "created"); err != nil {
		t.Fatal(err)
	}
	if err := Set(h, state, "replaced"); !errors.Is(err, ErrIllegalMutation) {
		t.Fatalf("expected ErrIllegalMutation, got %v", err)
	}
}

func TestListenerErrorAbortsDispatchPreImage(t *testing.T) {
	level := NewType[int]("core.level")
	h := &host{}

	veto := errors.New("veto")
	var secondCalled bool
	h.AddRelationListener(func(ev *Event) error {
		if ev.Kind == KindUpdate {
			return veto
		}
		return nil
	})
	h.AddRelationListener(func(ev *Event) error {
		if ev.Kind == KindUpdate {
			secondCalled = true
		}
		return nil
	})

	if err := Set(h, level, 1); err != nil {
		t.Fatal(err)
	}
	if err := Set(h, level, 2); !errors.Is(err, veto) {
		t.Fatalf("expected veto to propagate, got %v", err)
	}
	if secondCalled {
		t.Error("listener after the failing one must not run")
	}

	got, err := Get(h, level)
	if err != nil {
		t.Fatal(err)
	}
	if got != 1 {
		t.Errorf("vetoed update must not swap the value, got %d", got)
	}
}

func TestListenerOrderIsRegistrationOrder(t *testing.T) {
	mark := NewType[int]("core.mark")
	h := &host{}

	var order []int
	for i := 0; i < 4; i++ {
		i := i
		h.AddRelationListener(func(*Event) error {
			order = append(order, i)
			return nil
		})
	}

	if err := Set(h, mark, 1); err != nil {
		t.Fatal(err)
	}
	for i, got := range order {
		if got != i {
			t.Fatalf("expected registration order, got %v", order)
		}
	}
}

func TestReentrantListenerMutatesSibling(t *testing.T) {
	src := NewType[int]("core.reentrant.src")
	dst := NewType[int]("core.reentrant.dst")
	h := &host{}

	h.AddRelationListener(func(ev *Event) error {
		if ev.Relation.Type() == Type(src) {
			return Set(h, dst, ev.Value.(int)*2)
		}
		return nil
	})

	if err := Set(h, src, 21); err != nil {
		t.Fatal(err)
	}
	got, err := Get(h, dst)
	if err != nil {
		t.Fatal(err)
	}
	if got != 42 {
		t.Errorf("expected re-entrant set to land, got %d", got)
	}
}

func TestDeleteFiresRemoveAfterRemoval(t *testing.T) {
	tag := NewType[string]("core.tag")
	h := &host{}

	var sawBinding bool
	h.AddRelationListener(func(ev *Event) error {
		if ev.Kind == KindRemove {
			sawBinding = Has(h, tag)
			if ev.Value != "x" {
				t.Errorf("expected removed value in event, got %v", ev.Value)
			}
		}
		return nil
	})

	if err := Set(h, tag, "x"); err != nil {
		t.Fatal(err)
	}
	if err := Delete(h, tag); err != nil {
		t.Fatal(err)
	}
	if sawBinding {
		t.Error("remove listener must observe the binding already gone")
	}
	if err := Delete(h, tag); err != nil {
		t.Errorf("deleting an absent binding must be a no-op, got %v", err)
	}
}

func TestMetaAttributesUseKindSelectedLists(t *testing.T) {
	owner := NewType[string]("core.meta.owner")
	note := NewType[string]("core.meta.note")
	h := &host{}

	var typeEvents, updateEvents, hostEvents int
	owner.RelatableCore().AddRelationTypeListener(func(*Event) error {
		typeEvents++
		return nil
	})
	h.AddRelationListener(func(*Event) error {
		hostEvents++
		return nil
	})

	// Annotation on the type dispatches to the type-listener list only.
	if err := Set(owner, note, "a relation type can carry attributes"); err != nil {
		t.Fatal(err)
	}
	if typeEvents != 1 || hostEvents != 0 {
		t.Fatalf("expected 1 type event and 0 host events, got %d/%d", typeEvents, hostEvents)
	}

	// Annotation on a binding dispatches to the update-listener list.
	if err := Set(h, owner, "alex"); err != nil {
		t.Fatal(err)
	}
	r := Relations(h)[0]
	r.AddRelationUpdateListener(func(*Event) error {
		updateEvents++
		return nil
	})
	if err := Set(r, note, "so can a binding"); err != nil {
		t.Fatal(err)
	}
	if updateEvents != 1 {
		t.Fatalf("expected 1 update event, got %d", updateEvents)
	}
	if typeEvents != 1 || hostEvents != 1 {
		t.Fatalf("listener lists must stay independent, got type=%d host=%d", typeEvents, hostEvents)
	}
}

func TestInsertionOrderPreservedForIteration(t *testing.T) {
	a := NewType[int]("core.order.a")
	b := NewType[int]("core.order.b")
	c := NewType[int]("core.order.c")
	h := &host{}

	for i, rt := range []*RelationType[int]{b, a, c} {
		if err := Set(h, rt, i); err != nil {
			t.Fatal(err)
		}
	}

	names := make([]string, 0, 3)
	for _, rt := range TypesOf(h) {
		names = append(names, rt.Name())
	}
	want := []string{"core.order.b", "core.order.a", "core.order.c"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("expected insertion order %v, got %v", want, names)
		}
	}
}

func TestMismatchedProducerSurfacesTypeMismatch(t *testing.T) {
	// The typed constructors keep value types honest at compile time; a
	// mismatched producer can only arrive through the option's any
	// boundary, e.g. by applying an option built for another type.
	bad := NewType[int]("core.bad.default", WithDefault(func(Relatable) string {
		return "oops"
	}))
	h := &host{}
	if _, err := Get(h, bad); !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("expected ErrTypeMismatch, got %v", err)
	}
}
