package world

// ItemKind tags which effect an item has when used.
type ItemKind string

const (
	ItemPlain           ItemKind = "plain"
	ItemHealing         ItemKind = "healing"          // Amount is the heal amount
	ItemWeapon          ItemKind = "weapon"           // Amount is the damage bonus
	ItemSampleContainer ItemKind = "sample_container" // records a sample from the current location
)

// Item is a single, uniquely identified object in the world.
// It is held by exactly one container at a time: a location or the player.
type Item struct {
	ID            string   `yaml:"-" json:"id"`
	Name          string   `yaml:"name" json:"name"`
	Description   string   `yaml:"description" json:"description"`
	Kind          ItemKind `yaml:"kind,omitempty" json:"kind"`
	Usable        bool     `yaml:"usable,omitempty" json:"usable,omitempty"`
	Consumable    bool     `yaml:"consumable,omitempty" json:"consumable,omitempty"`
	Amount        int      `yaml:"amount,omitempty" json:"amount,omitempty"`
	PickupMessage string   `yaml:"pickup_message,omitempty" json:"pickup_message,omitempty"`
	Objectives    []string `yaml:"objectives,omitempty" json:"objectives,omitempty"` // advanced by one when taken
	Sample        bool     `yaml:"sample,omitempty" json:"sample,omitempty"`         // logged in the sample record when taken
}

// normalize fills the capability flags implied by the kind.
func (it *Item) normalize() {
	switch it.Kind {
	case "":
		it.Kind = ItemPlain
	case ItemHealing, ItemSampleContainer:
		it.Usable = true
		it.Consumable = true
	case ItemWeapon:
		it.Usable = true
	}
}

// HealAmount is the health restored by a healing item, zero otherwise.
func (it *Item) HealAmount() int {
	if it.Kind != ItemHealing {
		return 0
	}
	return it.Amount
}

// DamageBonus is the attack bonus of a weapon, zero otherwise.
func (it *Item) DamageBonus() int {
	if it.Kind != ItemWeapon {
		return 0
	}
	return it.Amount
}
