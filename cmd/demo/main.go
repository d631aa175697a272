package main

import (
	"errors"
	"fmt"

	"github.com/comalice/relata"
	"github.com/comalice/relata/snapshot"
)

// Attribute types for the demo, declared once like any consumer would.
var (
	title = relata.NewType[string]("demo.title",
		relata.WithDefault(func(relata.Relatable) string { return "untitled" }))
	priority = relata.NewType[int]("demo.priority")

	updates = relata.NewCounter("demo.updates",
		func(ev *relata.Event) bool { return ev.Kind == relata.KindUpdate },
		relata.CountOf[int])

	titles = relata.NewDistinctCollector("demo.titles",
		func(r *relata.Relation, v any) (string, bool) {
			s, ok := v.(string)
			return s, ok
		})

	positivePriority = relata.NewConstraint("demo.positivePriority", priority,
		func(v int) bool { return v > 0 })
)

// document is an ordinary struct made relatable by embedding.
type document struct {
	relata.Core
}

func main() {
	doc := &document{}

	// Arm the automatic types by materializing their bindings.
	if _, err := relata.Get(doc, updates); err != nil {
		panic(err)
	}
	if _, err := relata.Get(doc, titles); err != nil {
		panic(err)
	}
	if _, err := relata.Get(doc, positivePriority); err != nil {
		panic(err)
	}

	fmt.Println("default title:", must(relata.Get(doc, title)))

	check(relata.Set(doc, title, "draft"))
	check(relata.Set(doc, title, "final"))
	check(relata.Set(doc, priority, 3))

	fmt.Println("title:", must(relata.Get(doc, title)))
	fmt.Println("update count:", must(relata.Get(doc, updates)))
	fmt.Println("collected titles:", must(relata.Get(doc, titles)).Values())

	if err := relata.Set(doc, priority, -1); errors.Is(err, relata.ErrConstraintViolation) {
		fmt.Println("rejected:", err)
	}
	fmt.Println("priority still:", must(relata.Get(doc, priority)))

	check(relata.Set(doc, relata.Immutable, true))
	if err := relata.Set(doc, title, "too late"); errors.Is(err, relata.ErrImmutableViolation) {
		fmt.Println("frozen:", err)
	}

	snap := snapshot.Capture(doc)
	fmt.Printf("snapshot of %s: %d relations, frozen=%v\n",
		snap.HostID, len(snap.Relations), snap.Frozen)
}

func check(err error) {
	if err != nil {
		panic(err)
	}
}

func must[T any](v T, err error) T {
	check(err)
	return v
}
