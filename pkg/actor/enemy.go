package actor

import (
	"fmt"

	"github.com/jwebster45206/the-deep/pkg/dice"
	"github.com/jwebster45206/the-deep/pkg/world"
)

// Enemy is a live creature in an encounter. Enemies are spawned fresh from a
// world.EnemyDef and discarded when the encounter ends.
type Enemy struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Health      int      `json:"health" yaml:"health"`
	MaxHealth   int      `json:"max_health" yaml:"max_health"`
	DamageMin   int      `json:"damage_min" yaml:"damage_min"`
	DamageMax   int      `json:"damage_max" yaml:"damage_max"`
	ThreatLevel float64  `json:"threat_level" yaml:"threat_level"`
	Loot        []string `json:"loot,omitempty" yaml:"loot,omitempty"`
	Objectives  []string `json:"objectives,omitempty" yaml:"objectives,omitempty"`
	Note        string   `json:"note,omitempty" yaml:"note,omitempty"`
}

// NewEnemy spawns an enemy at full health from its definition.
func NewEnemy(def *world.EnemyDef) *Enemy {
	if def == nil {
		return nil
	}
	return &Enemy{
		ID:          def.ID,
		Name:        def.Name,
		Description: def.Description,
		Health:      def.MaxHealth,
		MaxHealth:   def.MaxHealth,
		DamageMin:   def.DamageMin,
		DamageMax:   def.DamageMax,
		ThreatLevel: def.ThreatLevel,
		Loot:        append([]string(nil), def.Loot...),
		Objectives:  append([]string(nil), def.Objectives...),
		Note:        def.Note,
	}
}

// TakeDamage reduces the enemy's health by n. Health cannot go below 0.
func (e *Enemy) TakeDamage(n int) {
	if n <= 0 {
		return
	}
	e.Health -= n
	if e.Health < 0 {
		e.Health = 0
	}
}

// IsDefeated returns true if the enemy's health is 0 or less.
func (e *Enemy) IsDefeated() bool {
	return e.Health <= 0
}

// Roll draws one attack from the enemy's damage range.
func (e *Enemy) Roll(src dice.Source) int {
	return dice.Between(src, e.DamageMin, e.DamageMax)
}

// Condition describes remaining health in words.
func (e *Enemy) Condition() string {
	if e.MaxHealth <= 0 {
		return "healthy"
	}
	pct := e.Health * 100 / e.MaxHealth
	switch {
	case pct <= 25:
		return "critically injured"
	case pct <= 50:
		return "wounded"
	case pct <= 75:
		return "slightly injured"
	default:
		return "healthy"
	}
}

// Reaction is the line shown after the enemy is hit.
func (e *Enemy) Reaction() string {
	switch {
	case e.IsDefeated():
		return fmt.Sprintf("The %s has been defeated!", e.Name)
	case e.Health*4 < e.MaxHealth:
		return fmt.Sprintf("The %s is severely injured!", e.Name)
	case e.Health*2 < e.MaxHealth:
		return fmt.Sprintf("The %s appears wounded!", e.Name)
	default:
		return fmt.Sprintf("The %s flinches from the attack!", e.Name)
	}
}

// Describe is the full examine text including condition.
func (e *Enemy) Describe() string {
	return fmt.Sprintf("%s\n\nIt appears %s.", e.Description, e.Condition())
}
