// Package snapshot captures the bindings of a relatable host into a
// serializable record and persists it to disk as JSON or YAML. Snapshots
// are diagnostic captures of current values; automatic derivations and
// listener registrations are not part of the record and a loaded snapshot
// is not rebound to a live host.
package snapshot

import (
	"time"

	"github.com/comalice/relata"
)

// HostSnapshot is the serializable record of one host's bindings at a point
// in time, keyed by relation type name.
type HostSnapshot struct {
	HostID    string         `json:"hostID" yaml:"hostID"`
	Relations map[string]any `json:"relations" yaml:"relations"`
	Frozen    bool           `json:"frozen,omitempty" yaml:"frozen,omitempty"`
	Timestamp time.Time      `json:"timestamp" yaml:"timestamp"`
}

// Capture records the current bindings of h.
func Capture(h relata.Relatable) HostSnapshot {
	core := h.RelatableCore()
	rels := relata.Relations(h)
	out := HostSnapshot{
		HostID:    core.ID(),
		Relations: make(map[string]any, len(rels)),
		Frozen:    core.IsFrozen(),
		Timestamp: time.Now(),
	}
	for _, r := range rels {
		out.Relations[r.Type().Name()] = r.Value()
	}
	return out
}
