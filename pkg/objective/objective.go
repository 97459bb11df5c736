// Package objective tracks countable progress goals.
package objective

import (
	"errors"
	"fmt"

	"github.com/jwebster45206/the-deep/pkg/world"
)

// ErrUnknownObjective is returned when an update names an objective that was never declared.
var ErrUnknownObjective = errors.New("unknown objective")

// Objective is a countable goal. Progress stays within [0, Target] and
// Completed is true exactly when Progress has reached Target.
type Objective struct {
	Key         string `json:"key" yaml:"key"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Target      int    `json:"target" yaml:"target"`
	Progress    int    `json:"progress" yaml:"progress"`
	Completed   bool   `json:"completed" yaml:"completed"`
}

// Tracker holds the objectives of one session in declaration order.
type Tracker struct {
	order []string
	byKey map[string]*Objective
}

// NewTracker creates a tracker with every objective at zero progress.
func NewTracker(defs []world.ObjectiveDef) *Tracker {
	t := &Tracker{byKey: make(map[string]*Objective, len(defs))}
	for _, d := range defs {
		if _, dup := t.byKey[d.Key]; dup {
			continue
		}
		t.order = append(t.order, d.Key)
		t.byKey[d.Key] = &Objective{
			Key:         d.Key,
			Name:        d.Name,
			Description: d.Description,
			Target:      d.Target,
		}
	}
	return t
}

// Update advances an objective by delta. It reports whether this call completed it.
// Completed objectives and non-positive deltas are left alone.
func (t *Tracker) Update(key string, delta int) (bool, error) {
	o, ok := t.byKey[key]
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownObjective, key)
	}
	if o.Completed || delta <= 0 {
		return false, nil
	}
	o.Progress = min(o.Progress+delta, o.Target)
	if o.Progress >= o.Target {
		o.Completed = true
		return true, nil
	}
	return false, nil
}

// Get returns a copy of one objective.
func (t *Tracker) Get(key string) (Objective, bool) {
	o, ok := t.byKey[key]
	if !ok {
		return Objective{}, false
	}
	return *o, true
}

// List returns copies of all objectives in declaration order.
func (t *Tracker) List() []Objective {
	out := make([]Objective, 0, len(t.order))
	for _, k := range t.order {
		out = append(out, *t.byKey[k])
	}
	return out
}

// AllComplete reports whether every objective is complete. An empty tracker is complete.
func (t *Tracker) AllComplete() bool {
	for _, o := range t.byKey {
		if !o.Completed {
			return false
		}
	}
	return true
}

// Progress returns key → progress, for snapshots.
func (t *Tracker) Progress() map[string]int {
	out := make(map[string]int, len(t.byKey))
	for k, o := range t.byKey {
		out[k] = o.Progress
	}
	return out
}

// Restore sets progress from a snapshot, clamping to each target.
// Keys that are not declared are reported and skipped.
func (t *Tracker) Restore(progress map[string]int) error {
	var unknown []string
	for k, v := range progress {
		o, ok := t.byKey[k]
		if !ok {
			unknown = append(unknown, k)
			continue
		}
		o.Progress = max(0, min(v, o.Target))
		o.Completed = o.Progress >= o.Target
	}
	if len(unknown) > 0 {
		return fmt.Errorf("%w: %v", ErrUnknownObjective, unknown)
	}
	return nil
}
