package world

import (
	"slices"
	"sort"
)

// Location represents a place in the game world with exits and the items lying there.
type Location struct {
	ID          string            `yaml:"-" json:"id"`                                 // Also the key in the map.
	Name        string            `yaml:"name" json:"name"`                            // Display name
	Description string            `yaml:"description" json:"description"`              // Shown in full on first visit and on look
	Note        string            `yaml:"note,omitempty" json:"note,omitempty"`        // Educational note shown on first visit
	Exits       map[string]string `yaml:"exits,omitempty" json:"exits,omitempty"`      // Direction → Location Key
	Items       []string          `yaml:"items,omitempty" json:"items,omitempty"`      // Item IDs, in pickup order
	Enemies     []string          `yaml:"enemies,omitempty" json:"enemies,omitempty"`  // Spawn pool (enemy IDs)
	Visited     bool              `yaml:"-" json:"visited,omitempty"`
}

// ItemIDs returns the item IDs in list order.
func (l *Location) ItemIDs() []string {
	return l.Items
}

// HasItem reports whether the item lies here.
func (l *Location) HasItem(id string) bool {
	return slices.Contains(l.Items, id)
}

// AddItem appends an item unless it is already here.
func (l *Location) AddItem(id string) bool {
	if l.HasItem(id) {
		return false
	}
	l.Items = append(l.Items, id)
	return true
}

// RemoveItem removes an item, reporting whether it was present.
func (l *Location) RemoveItem(id string) bool {
	i := slices.Index(l.Items, id)
	if i < 0 {
		return false
	}
	l.Items = slices.Delete(l.Items, i, i+1)
	return true
}

var directionOrder = map[string]int{
	"north": 0, "south": 1, "east": 2, "west": 3, "up": 4, "down": 5,
}

// Directions lists the exits in compass order, with any non-standard directions last.
func (l *Location) Directions() []string {
	dirs := make([]string, 0, len(l.Exits))
	for d := range l.Exits {
		dirs = append(dirs, d)
	}
	sort.Slice(dirs, func(i, j int) bool {
		oi, iok := directionOrder[dirs[i]]
		oj, jok := directionOrder[dirs[j]]
		switch {
		case iok && jok:
			return oi < oj
		case iok != jok:
			return iok
		default:
			return dirs[i] < dirs[j]
		}
	})
	return dirs
}
