package actor

import (
	"errors"
	"slices"
	"testing"

	"github.com/jwebster45206/the-deep/pkg/dice"
	"github.com/jwebster45206/the-deep/pkg/world"
)

func TestNewEnemy(t *testing.T) {
	t.Run("spawns at full health", func(t *testing.T) {
		def := &world.EnemyDef{ID: "mutated_angler", Name: "Mutated Angler", MaxHealth: 50, DamageMin: 5, DamageMax: 15, Loot: []string{"fish_tissue"}}
		e := NewEnemy(def)

		if e.Health != 50 || e.MaxHealth != 50 {
			t.Errorf("expected 50/50, got %d/%d", e.Health, e.MaxHealth)
		}
		e.Loot[0] = "changed"
		if def.Loot[0] != "fish_tissue" {
			t.Error("expected loot table to be copied, not shared")
		}
	})

	t.Run("returns nil for nil definition", func(t *testing.T) {
		if e := NewEnemy(nil); e != nil {
			t.Error("expected nil for nil definition")
		}
	})
}

func TestEnemy_TakeDamage(t *testing.T) {
	t.Run("reduces health by damage amount", func(t *testing.T) {
		e := &Enemy{Health: 20, MaxHealth: 20}
		e.TakeDamage(5)

		if e.Health != 15 {
			t.Errorf("expected health 15, got %d", e.Health)
		}
	})

	t.Run("clamps health at 0", func(t *testing.T) {
		e := &Enemy{Health: 5, MaxHealth: 20}
		e.TakeDamage(10)

		if e.Health != 0 {
			t.Errorf("expected health to be clamped at 0, got %d", e.Health)
		}
		if !e.IsDefeated() {
			t.Error("expected enemy to be defeated")
		}
	})

	t.Run("ignores negative damage", func(t *testing.T) {
		e := &Enemy{Health: 20, MaxHealth: 20}
		e.TakeDamage(-5)

		if e.Health != 20 {
			t.Errorf("expected health to remain 20, got %d", e.Health)
		}
	})
}

func TestEnemy_Condition(t *testing.T) {
	tests := []struct {
		health int
		want   string
	}{
		{100, "healthy"},
		{76, "healthy"},
		{75, "slightly injured"},
		{50, "wounded"},
		{25, "critically injured"},
		{0, "critically injured"},
	}
	for _, tt := range tests {
		e := &Enemy{Name: "Shoal", Health: tt.health, MaxHealth: 100}
		if got := e.Condition(); got != tt.want {
			t.Errorf("health %d: expected %q, got %q", tt.health, tt.want, got)
		}
	}
}

func TestEnemy_Roll(t *testing.T) {
	e := &Enemy{DamageMin: 5, DamageMax: 15}
	if got := e.Roll(dice.NewScripted(10)); got != 15 {
		t.Errorf("expected 15, got %d", got)
	}
	if got := e.Roll(dice.NewScripted(0)); got != 5 {
		t.Errorf("expected 5, got %d", got)
	}
}

func TestPlayer_Health(t *testing.T) {
	p := NewPlayer("Ada", 100, "ship_deck", nil)

	p.TakeDamage(15)
	if p.Health() != 85 {
		t.Errorf("expected 85, got %d", p.Health())
	}
	if got := p.Heal(50); got != 15 {
		t.Errorf("expected heal of 15, got %d", got)
	}
	if p.Health() != 100 {
		t.Errorf("expected health to clamp at 100, got %d", p.Health())
	}
	p.TakeDamage(250)
	if p.Health() != 0 || !p.IsDead() {
		t.Errorf("expected 0 and dead, got %d", p.Health())
	}
}

func TestPlayer_SetHealth(t *testing.T) {
	p := NewPlayer("Ada", 100, "ship_deck", nil)
	p.SetHealth(140)
	if p.Health() != 100 {
		t.Errorf("expected clamp to 100, got %d", p.Health())
	}
	p.SetHealth(-5)
	if p.Health() != 0 || !p.IsDead() {
		t.Errorf("expected clamp to 0, got %d", p.Health())
	}
	if q := NewPlayer("Ada", 0, "ship_deck", nil); q.MaxHealth() != 1 || q.IsDead() {
		t.Errorf("expected non-positive max to become 1, got %d/%d", q.Health(), q.MaxHealth())
	}
}

func TestNewPlayerFromSpec(t *testing.T) {
	t.Run("round trips through spec", func(t *testing.T) {
		p := NewPlayer("Ada", 100, "trench", []string{"dive_knife"})
		p.TakeDamage(42)
		_ = p.Equip("dive_knife")
		p.AddSample("Water sample from Trench")

		got, err := NewPlayerFromSpec(p.Spec())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Health() != 58 || got.MaxHealth() != 100 {
			t.Errorf("expected 58/100, got %d/%d", got.Health(), got.MaxHealth())
		}
		if got.Equipped != "dive_knife" || got.Location != "trench" || len(got.Samples) != 1 {
			t.Errorf("unexpected player: %+v", got)
		}
	})

	t.Run("dead player stays dead", func(t *testing.T) {
		got, err := NewPlayerFromSpec(PlayerSpec{Name: "Ada", Health: 0, MaxHealth: 100})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got.IsDead() {
			t.Errorf("expected dead player, got %d", got.Health())
		}
	})

	t.Run("unheld weapon is unequipped", func(t *testing.T) {
		got, err := NewPlayerFromSpec(PlayerSpec{Name: "Ada", Health: 10, MaxHealth: 100, Equipped: "harpoon_gun"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Equipped != "" {
			t.Errorf("expected no weapon, got %q", got.Equipped)
		}
	})

	t.Run("non-positive max health errors", func(t *testing.T) {
		if _, err := NewPlayerFromSpec(PlayerSpec{Name: "Ada", MaxHealth: 0}); err == nil {
			t.Error("expected error for zero max health")
		}
	})

	t.Run("spec is detached", func(t *testing.T) {
		p := NewPlayer("Ada", 100, "trench", []string{"medkit"})
		spec := p.Spec()
		p.RemoveItem("medkit")
		p.TakeDamage(10)
		if len(spec.Inventory) != 1 || spec.Health != 100 {
			t.Errorf("expected spec untouched, got %v at %d", spec.Inventory, spec.Health)
		}
	})
}

func TestPlayer_Inventory(t *testing.T) {
	p := NewPlayer("", 100, "ship_deck", []string{"medkit", "dive_knife", "medkit"})

	if p.Name != "Diver" {
		t.Errorf("expected default name, got %q", p.Name)
	}
	if !slices.Equal(p.Inventory, []string{"medkit", "dive_knife"}) {
		t.Errorf("expected unique inventory, got %v", p.Inventory)
	}
	if err := p.Equip("harpoon_gun"); !errors.Is(err, world.ErrItemNotFound) {
		t.Errorf("expected ErrItemNotFound, got %v", err)
	}
	if err := p.Equip("dive_knife"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p.RemoveItem("dive_knife")
	if p.Equipped != "" {
		t.Errorf("expected removing the weapon to unequip it, got %q", p.Equipped)
	}
}

func TestApplyEffect(t *testing.T) {
	medkit := &world.Item{ID: "medkit", Name: "Medical Kit", Kind: world.ItemHealing, Usable: true, Consumable: true, Amount: 50}
	knife := &world.Item{ID: "dive_knife", Name: "Diving Knife", Kind: world.ItemWeapon, Usable: true, Amount: 5}
	vial := &world.Item{ID: "sample_vial", Name: "Sample Vial", Kind: world.ItemSampleContainer, Usable: true, Consumable: true}
	rock := &world.Item{ID: "rock", Name: "Rock", Kind: world.ItemPlain}
	reef := &world.Location{ID: "coral_reef", Name: "Dying Coral Reef"}

	t.Run("healing consumes the item", func(t *testing.T) {
		p := NewPlayer("Ada", 100, "coral_reef", []string{"medkit"})
		p.TakeDamage(30)

		eff, err := ApplyEffect(medkit, p, reef)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if eff.Healed != 30 || p.Health() != 100 {
			t.Errorf("expected 30 healed to 100, got %d to %d", eff.Healed, p.Health())
		}
		if !eff.Consumed || p.HasItem("medkit") {
			t.Error("expected medkit to be consumed")
		}
	})

	t.Run("healing at full health is refused", func(t *testing.T) {
		p := NewPlayer("Ada", 100, "coral_reef", []string{"medkit"})

		eff, err := ApplyEffect(medkit, p, reef)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if eff.Applied || eff.Consumed || !p.HasItem("medkit") {
			t.Errorf("expected no effect and medkit kept, got %+v", eff)
		}
	})

	t.Run("weapon toggles", func(t *testing.T) {
		p := NewPlayer("Ada", 100, "coral_reef", []string{"dive_knife"})

		if _, err := ApplyEffect(knife, p, reef); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Equipped != "dive_knife" {
			t.Errorf("expected knife equipped, got %q", p.Equipped)
		}
		if _, err := ApplyEffect(knife, p, reef); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Equipped != "" || !p.HasItem("dive_knife") {
			t.Errorf("expected knife put away and kept, got %q", p.Equipped)
		}
	})

	t.Run("sample vial records the location", func(t *testing.T) {
		p := NewPlayer("Ada", 100, "coral_reef", []string{"sample_vial"})

		eff, err := ApplyEffect(vial, p, reef)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !slices.Equal(p.Samples, []string{"Sample from Dying Coral Reef"}) {
			t.Errorf("unexpected samples: %v", p.Samples)
		}
		if !eff.Consumed {
			t.Error("expected vial to be consumed")
		}
	})

	t.Run("unusable plain item", func(t *testing.T) {
		p := NewPlayer("Ada", 100, "coral_reef", []string{"rock"})

		eff, err := ApplyEffect(rock, p, reef)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if eff.Applied {
			t.Error("expected no effect")
		}
	})

	t.Run("item not carried", func(t *testing.T) {
		p := NewPlayer("Ada", 100, "coral_reef", nil)
		if _, err := ApplyEffect(medkit, p, reef); !errors.Is(err, world.ErrItemNotFound) {
			t.Errorf("expected ErrItemNotFound, got %v", err)
		}
	})
}
