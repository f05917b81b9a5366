//go:build property

package watcher

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestCoalesceProperties validates how bursts collapse into one event
func TestCoalesceProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(9876)
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	toEvents := func(types []int) []ChangeEvent {
		events := make([]ChangeEvent, len(types))
		for i, typ := range types {
			events[i] = ChangeEvent{Type: EventType(typ), Path: "/doc.json", Size: int64(i)}
		}
		return events
	}

	// Property: the coalesced event carries the metadata of the last event
	properties.Property("last event metadata wins", prop.ForAll(
		func(types []int) bool {
			if len(types) == 0 {
				return true
			}
			got := coalesce(toEvents(types))
			return got.Size == int64(len(types)-1) && got.Path == "/doc.json"
		},
		gen.SliceOf(gen.IntRange(0, 3)),
	))

	// Property: only a trailing create is ever rewritten
	properties.Property("non-create endings are preserved", prop.ForAll(
		func(types []int) bool {
			if len(types) == 0 {
				return true
			}
			last := EventType(types[len(types)-1])
			got := coalesce(toEvents(types))
			if last != EventTypeCreated {
				return got.Type == last
			}
			return got.Type == EventTypeCreated || got.Type == EventTypeModified
		},
		gen.SliceOf(gen.IntRange(0, 3)),
	))

	properties.TestingRun(t)
}
