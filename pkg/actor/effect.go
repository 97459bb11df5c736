package actor

import (
	"fmt"

	"github.com/jwebster45206/the-deep/pkg/world"
)

// Effect reports what using an item did.
type Effect struct {
	Message  string
	Applied  bool // false when the item had no effect, e.g. healing at full health
	Consumed bool // the item was removed from the inventory
	Healed   int
	Sample   string
}

// ApplyEffect uses an item from the player's inventory at loc. Consumable items are
// removed only when the effect applied.
func ApplyEffect(it *world.Item, p *Player, loc *world.Location) (Effect, error) {
	if it == nil || !p.HasItem(it.ID) {
		return Effect{}, fmt.Errorf("not carrying that item: %w", world.ErrItemNotFound)
	}
	if !it.Usable {
		return Effect{Message: fmt.Sprintf("You can't use the %s here.", it.Name)}, nil
	}

	var eff Effect
	switch it.Kind {
	case world.ItemHealing:
		if p.Health() >= p.MaxHealth() {
			return Effect{Message: "You are already at full health."}, nil
		}
		eff.Healed = p.Heal(it.HealAmount())
		eff.Message = fmt.Sprintf("You used the %s and recovered %d health points.", it.Name, eff.Healed)

	case world.ItemWeapon:
		if p.Equipped == it.ID {
			p.Unequip()
			eff.Message = fmt.Sprintf("You put away the %s.", it.Name)
		} else {
			if err := p.Equip(it.ID); err != nil {
				return Effect{}, err
			}
			eff.Message = fmt.Sprintf("You equipped the %s, increasing your attack damage by %d.", it.Name, it.DamageBonus())
		}

	case world.ItemSampleContainer:
		where := "Unknown Location"
		if loc != nil {
			where = loc.Name
		}
		eff.Sample = "Sample from " + where
		p.AddSample(eff.Sample)
		eff.Message = fmt.Sprintf("You used the %s to collect a %s.", it.Name, eff.Sample)

	default:
		eff.Message = fmt.Sprintf("You used the %s, but nothing happened.", it.Name)
	}

	eff.Applied = true
	if it.Consumable {
		eff.Consumed = p.RemoveItem(it.ID)
	}
	return eff, nil
}
