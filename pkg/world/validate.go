package world

import (
	"maps"
	"slices"
	"sort"
)

// Validate checks the referential integrity of the world and returns a
// *ConfigurationError listing every problem, or nil.
func (w *World) Validate() error {
	cerr := &ConfigurationError{}

	locIDs := sortedKeys(w.Locations)
	itemIDs := sortedKeys(w.Items)
	enemyIDs := sortedKeys(w.Enemies)

	if len(w.Locations) == 0 {
		cerr.add("no locations defined")
	}
	if _, ok := w.Locations[w.StartLocation]; !ok {
		cerr.add("start_location %q is not a defined location", w.StartLocation)
	}
	if _, ok := w.Locations[w.FinalLocation]; !ok {
		cerr.add("final_location %q is not a defined location", w.FinalLocation)
	}
	if _, ok := w.Items[w.WinItem]; !ok {
		cerr.add("win_item %q is not a defined item", w.WinItem)
	}

	objectives := make(map[string]bool, len(w.Objectives))
	for i, o := range w.Objectives {
		switch {
		case o.Key == "":
			cerr.add("objective #%d has no key", i+1)
		case objectives[o.Key]:
			cerr.add("objective %s is declared twice", o.Key)
		}
		if o.Target <= 0 {
			cerr.add("objective %s: target must be positive, got %d", o.Key, o.Target)
		}
		objectives[o.Key] = true
	}

	// Each item may be placed in exactly one container.
	placed := make(map[string]string)
	place := func(itemID, where string) {
		if _, ok := w.Items[itemID]; !ok {
			cerr.add("%s: item %q is not defined", where, itemID)
			return
		}
		if prev, dup := placed[itemID]; dup {
			cerr.add("%s: item %q is already placed in %s", where, itemID, prev)
			return
		}
		placed[itemID] = where
	}

	for _, id := range locIDs {
		loc := w.Locations[id]
		if loc == nil {
			cerr.add("location %s is empty", id)
			continue
		}
		if loc.Name == "" {
			cerr.add("location %s has no name", id)
		}
		for _, dir := range loc.Directions() {
			if _, ok := w.Locations[loc.Exits[dir]]; !ok {
				cerr.add("location %s: exit %s leads to undefined location %q", id, dir, loc.Exits[dir])
			}
		}
		for _, itemID := range loc.Items {
			place(itemID, "location "+id)
		}
		for _, enemyID := range loc.Enemies {
			if _, ok := w.Enemies[enemyID]; !ok {
				cerr.add("location %s: enemy %q in spawn pool is not defined", id, enemyID)
			}
		}
	}
	for _, itemID := range w.StartingInventory {
		place(itemID, "starting_inventory")
	}

	for _, id := range itemIDs {
		it := w.Items[id]
		if it == nil {
			cerr.add("item %s is empty", id)
			continue
		}
		if it.Name == "" {
			cerr.add("item %s has no name", id)
		}
		switch it.Kind {
		case ItemPlain, ItemSampleContainer:
		case ItemHealing, ItemWeapon:
			if it.Amount <= 0 {
				cerr.add("item %s: %s amount must be positive, got %d", id, it.Kind, it.Amount)
			}
		default:
			cerr.add("item %s: unknown kind %q", id, it.Kind)
		}
		w.checkObjectiveTags(cerr, "item "+id, it.Objectives, objectives)
	}

	for _, id := range enemyIDs {
		e := w.Enemies[id]
		if e == nil {
			cerr.add("enemy %s is empty", id)
			continue
		}
		if e.MaxHealth <= 0 {
			cerr.add("enemy %s: health must be positive, got %d", id, e.MaxHealth)
		}
		if e.DamageMin <= 0 || e.DamageMin > e.DamageMax {
			cerr.add("enemy %s: damage range [%d,%d] must be positive and ordered", id, e.DamageMin, e.DamageMax)
		}
		if e.ThreatLevel < 0 || e.ThreatLevel > 1 {
			cerr.add("enemy %s: threat_level %.2f must be within [0,1]", id, e.ThreatLevel)
		}
		for _, itemID := range e.Loot {
			if _, ok := w.Items[itemID]; !ok {
				cerr.add("enemy %s: loot item %q is not defined", id, itemID)
			}
		}
		w.checkObjectiveTags(cerr, "enemy "+id, e.Objectives, objectives)
	}

	w.Rules.validate(cerr)

	if len(cerr.Problems) > 0 {
		return cerr
	}
	return nil
}

func (w *World) checkObjectiveTags(cerr *ConfigurationError, owner string, tags []string, known map[string]bool) {
	for _, key := range tags {
		if !known[key] {
			cerr.add("%s: objective %q is not defined", owner, key)
		}
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := slices.Collect(maps.Keys(m))
	sort.Strings(keys)
	return keys
}
