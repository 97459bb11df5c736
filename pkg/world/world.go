package world

import (
	"fmt"
	"slices"
	"strings"
)

// EnemyDef is the template an enemy is spawned from.
type EnemyDef struct {
	ID          string   `yaml:"-" json:"id"`
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description" json:"description"`
	MaxHealth   int      `yaml:"health" json:"health"`
	DamageMin   int      `yaml:"damage_min" json:"damage_min"`
	DamageMax   int      `yaml:"damage_max" json:"damage_max"`
	Loot        []string `yaml:"loot,omitempty" json:"loot,omitempty"`             // Item IDs, one may drop on defeat
	ThreatLevel float64  `yaml:"threat_level" json:"threat_level"`                 // 0.0 to 1.0
	Objectives  []string `yaml:"objectives,omitempty" json:"objectives,omitempty"` // advanced by one on defeat
	Note        string   `yaml:"note,omitempty" json:"note,omitempty"`             // shown on defeat
}

// ObjectiveDef declares a countable goal.
type ObjectiveDef struct {
	Key         string `yaml:"key" json:"key"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	Target      int    `yaml:"target" json:"target"`
}

// MainObjective is the story goal completed by winning.
type MainObjective struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
}

// Endings holds the closing text for each way a session can end.
type Endings struct {
	Victory string `yaml:"victory" json:"victory"`
	Defeat  string `yaml:"defeat" json:"defeat"`
	Quit    string `yaml:"quit" json:"quit"`
}

// World is the registry of everything in a single game session: the location graph,
// item and enemy definitions, objectives and rules. It is built once per session
// and passed to whatever needs lookups.
type World struct {
	Title             string                  `yaml:"title"`
	Intro             string                  `yaml:"intro"`
	Briefing          string                  `yaml:"briefing"`
	Facts             []string                `yaml:"facts,omitempty"`
	StartLocation     string                  `yaml:"start_location"`
	FinalLocation     string                  `yaml:"final_location"`
	WinItem           string                  `yaml:"win_item"`
	WinItemMessage    string                  `yaml:"win_item_message,omitempty"`
	StartingInventory []string                `yaml:"starting_inventory,omitempty"`
	MainObjective     MainObjective           `yaml:"main_objective"`
	Objectives        []ObjectiveDef          `yaml:"objectives"`
	Endings           Endings                 `yaml:"endings"`
	Rules             Rules                   `yaml:"rules"`
	Items             map[string]*Item        `yaml:"items"`
	Enemies           map[string]*EnemyDef    `yaml:"enemies"`
	Locations         map[string]*Location    `yaml:"locations"`
}

// Container is anything that holds items by ID: a location or the player's inventory.
type Container interface {
	ItemIDs() []string
	AddItem(id string) bool
}

func (w *World) Location(id string) (*Location, bool) {
	loc, ok := w.Locations[id]
	return loc, ok
}

func (w *World) Item(id string) (*Item, bool) {
	it, ok := w.Items[id]
	return it, ok
}

func (w *World) Enemy(id string) (*EnemyDef, bool) {
	e, ok := w.Enemies[id]
	return e, ok
}

// ItemName returns the display name of an item, falling back to its ID.
func (w *World) ItemName(id string) string {
	if it, ok := w.Items[id]; ok {
		return it.Name
	}
	return id
}

// Move resolves an exit of from. A direction that is not an exit returns ErrNoSuchExit.
// An exit pointing at an unknown location can only happen if validation was skipped,
// and is reported as a ConfigurationError.
func (w *World) Move(from *Location, direction string) (*Location, error) {
	direction = strings.ToLower(strings.TrimSpace(direction))
	targetID, ok := from.Exits[direction]
	if !ok {
		return nil, fmt.Errorf("can't go %s from %s: %w", direction, from.ID, ErrNoSuchExit)
	}
	target, ok := w.Locations[targetID]
	if !ok {
		return nil, &ConfigurationError{Problems: []string{
			fmt.Sprintf("location %s: exit %s leads to undefined location %s", from.ID, direction, targetID),
		}}
	}
	return target, nil
}

// TakeItem moves the first item at loc whose name contains name (case-insensitive)
// into the destination container.
func (w *World) TakeItem(loc *Location, to Container, name string) (*Item, error) {
	it := w.matchItem(loc.Items, name, false)
	if it == nil {
		return nil, fmt.Errorf("no %q at %s: %w", name, loc.ID, ErrItemNotFound)
	}
	loc.RemoveItem(it.ID)
	to.AddItem(it.ID)
	return it, nil
}

// ExamineItem looks for an item at loc first, then in inv. Within each container an
// exact name match wins over a substring match.
func (w *World) ExamineItem(loc *Location, inv Container, name string) (*Item, error) {
	if loc != nil {
		if it := w.matchItem(loc.Items, name, true); it != nil {
			return it, nil
		}
	}
	if inv != nil {
		if it := w.matchItem(inv.ItemIDs(), name, true); it != nil {
			return it, nil
		}
	}
	return nil, fmt.Errorf("no %q here or in inventory: %w", name, ErrItemNotFound)
}

// MatchInContainer resolves an item name against a single container. An exact
// name match wins; otherwise the first substring match in container order.
func (w *World) MatchInContainer(c Container, name string) (*Item, error) {
	if it := w.matchItem(c.ItemIDs(), name, true); it != nil {
		return it, nil
	}
	return nil, fmt.Errorf("no %q: %w", name, ErrItemNotFound)
}

// ItemLocation reports which location currently holds an item, if any.
func (w *World) ItemLocation(id string) (*Location, bool) {
	for _, key := range w.LocationIDs() {
		if loc := w.Locations[key]; loc.HasItem(id) {
			return loc, true
		}
	}
	return nil, false
}

// LocationIDs returns all location keys sorted.
func (w *World) LocationIDs() []string {
	return sortedKeys(w.Locations)
}

// ObjectiveKeys returns objective keys in declaration order.
func (w *World) ObjectiveKeys() []string {
	keys := make([]string, len(w.Objectives))
	for i, o := range w.Objectives {
		keys[i] = o.Key
	}
	return keys
}

// SpawnPool returns the enemy definitions that may appear at a location.
func (w *World) SpawnPool(locationID string) []*EnemyDef {
	loc, ok := w.Locations[locationID]
	if !ok {
		return nil
	}
	pool := make([]*EnemyDef, 0, len(loc.Enemies))
	for _, id := range loc.Enemies {
		if def, ok := w.Enemies[id]; ok {
			pool = append(pool, def)
		}
	}
	return pool
}

// Clone copies the mutable parts of the world (location items and visited flags).
// Definitions are shared; they are never mutated after load.
func (w *World) Clone() *World {
	c := *w
	c.Locations = make(map[string]*Location, len(w.Locations))
	for id, loc := range w.Locations {
		l := *loc
		l.Items = slices.Clone(loc.Items)
		c.Locations[id] = &l
	}
	return &c
}
