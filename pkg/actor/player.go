package actor

import (
	"fmt"
	"slices"

	"github.com/jwebster45206/d20"
	"github.com/jwebster45206/the-deep/pkg/world"
)

// PlayerSpec is the serializable form of a Player.
type PlayerSpec struct {
	Name      string   `json:"name" yaml:"name"`
	Health    int      `json:"health" yaml:"health"`
	MaxHealth int      `json:"max_health" yaml:"max_health"`
	Inventory []string `json:"inventory" yaml:"inventory"`
	Journal   []string `json:"journal" yaml:"journal"`
	Samples   []string `json:"samples" yaml:"samples"`
	Location  string   `json:"location" yaml:"location"`
	Equipped  string   `json:"equipped_weapon,omitempty" yaml:"equipped_weapon,omitempty"`
}

// Player is the diver. Health lives on a d20 actor, which keeps it inside
// [0, MaxHealth]. Equipped, when set, always names an item in Inventory.
type Player struct {
	Name      string
	Inventory []string
	Journal   []string
	Samples   []string
	Location  string
	Equipped  string

	actor *d20.Actor
}

var _ world.Container = (*Player)(nil)

// NewPlayer creates a player at full health at the given location.
// A non-positive maxHealth is raised to 1.
func NewPlayer(name string, maxHealth int, location string, inventory []string) *Player {
	if name == "" {
		name = "Diver"
	}
	a, err := d20.NewActor(name).WithHP(max(maxHealth, 1)).Build()
	if err != nil {
		// unreachable: hp is always positive here
		panic(err)
	}
	p := &Player{
		Name:      name,
		Location:  location,
		Inventory: []string{},
		Journal:   []string{},
		Samples:   []string{},
		actor:     a,
	}
	for _, id := range inventory {
		p.AddItem(id)
	}
	return p
}

// NewPlayerFromSpec rebuilds a player from its serialized form. Current health
// is clamped into [0, MaxHealth]; duplicate inventory entries collapse.
func NewPlayerFromSpec(spec PlayerSpec) (*Player, error) {
	a, err := d20.NewActor(spec.Name).WithHP(spec.MaxHealth).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build player: %w", err)
	}
	if hp := max(0, min(spec.Health, spec.MaxHealth)); hp != spec.MaxHealth {
		if err := a.SetHP(hp); err != nil {
			return nil, fmt.Errorf("failed to set health: %w", err)
		}
	}
	p := &Player{
		Name:     spec.Name,
		Location: spec.Location,
		Journal:  append([]string{}, spec.Journal...),
		Samples:  append([]string{}, spec.Samples...),
		actor:    a,
	}
	p.Inventory = []string{}
	for _, id := range spec.Inventory {
		p.AddItem(id)
	}
	if spec.Equipped != "" && p.HasItem(spec.Equipped) {
		p.Equipped = spec.Equipped
	}
	return p, nil
}

// Spec returns a detached serializable copy of the player.
func (p *Player) Spec() PlayerSpec {
	return PlayerSpec{
		Name:      p.Name,
		Health:    p.Health(),
		MaxHealth: p.MaxHealth(),
		Inventory: slices.Clone(p.Inventory),
		Journal:   slices.Clone(p.Journal),
		Samples:   slices.Clone(p.Samples),
		Location:  p.Location,
		Equipped:  p.Equipped,
	}
}

func (p *Player) Health() int {
	if p.actor == nil {
		return 0
	}
	return p.actor.HP()
}

func (p *Player) MaxHealth() int {
	if p.actor == nil {
		return 0
	}
	return p.actor.MaxHP()
}

// SetHealth sets current health, clamped to [0, MaxHealth].
func (p *Player) SetHealth(n int) {
	if p.actor == nil {
		return
	}
	_ = p.actor.SetHP(max(0, min(n, p.actor.MaxHP())))
}

// TakeDamage reduces health by n, stopping at 0.
func (p *Player) TakeDamage(n int) {
	if n <= 0 || p.actor == nil {
		return
	}
	p.actor.SubHP(n)
}

// Heal restores up to n health and returns the amount actually gained.
func (p *Player) Heal(n int) int {
	if n <= 0 || p.actor == nil {
		return 0
	}
	before := p.actor.HP()
	p.actor.AddHP(n)
	return p.actor.HP() - before
}

func (p *Player) IsDead() bool {
	return p.actor == nil || p.actor.IsKnockedOut()
}

func (p *Player) ItemIDs() []string {
	return p.Inventory
}

func (p *Player) HasItem(id string) bool {
	return slices.Contains(p.Inventory, id)
}

// AddItem appends an item unless it is already held.
func (p *Player) AddItem(id string) bool {
	if p.HasItem(id) {
		return false
	}
	p.Inventory = append(p.Inventory, id)
	return true
}

// RemoveItem drops an item from the inventory, unequipping it if needed.
func (p *Player) RemoveItem(id string) bool {
	i := slices.Index(p.Inventory, id)
	if i < 0 {
		return false
	}
	p.Inventory = slices.Delete(p.Inventory, i, i+1)
	if p.Equipped == id {
		p.Equipped = ""
	}
	return true
}

// Equip sets the equipped weapon. The item must be held.
func (p *Player) Equip(id string) error {
	if !p.HasItem(id) {
		return fmt.Errorf("cannot equip %s: %w", id, world.ErrItemNotFound)
	}
	p.Equipped = id
	return nil
}

func (p *Player) Unequip() {
	p.Equipped = ""
}

func (p *Player) AddJournalEntry(entry string) {
	p.Journal = append(p.Journal, entry)
}

func (p *Player) AddSample(sample string) {
	p.Samples = append(p.Samples, sample)
}
