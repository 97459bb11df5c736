// Package combat resolves turn-based encounters between the player and one enemy.
package combat

import (
	"errors"
	"strings"

	"github.com/jwebster45206/the-deep/pkg/actor"
)

// ErrInvalidCombatAction is returned for input that is not a combat action, or for
// any action against an encounter that is already resolved.
var ErrInvalidCombatAction = errors.New("invalid combat action")

// Phase is where an encounter stands.
type Phase string

const (
	PhaseIdle       Phase = "idle" // no enemy engaged
	PhasePlayerTurn Phase = "player_turn"
	PhaseEnemyTurn  Phase = "enemy_turn" // only observable while a retaliation resolves
	PhaseResolved   Phase = "resolved"
)

// Outcome is set when an encounter resolves.
type Outcome string

const (
	OutcomeNone    Outcome = ""
	OutcomeVictory Outcome = "victory"
	OutcomeFlee    Outcome = "flee"
	OutcomeDefeat  Outcome = "defeat"
)

type ActionKind string

const (
	ActionAttack ActionKind = "attack"
	ActionFlee   ActionKind = "flee"
	ActionUse    ActionKind = "use"
)

// Action is one player move in combat. Item names the item for ActionUse.
type Action struct {
	Kind ActionKind `json:"kind"`
	Item string     `json:"item,omitempty"`
}

var actionAliases = map[string]ActionKind{
	"attack": ActionAttack,
	"a":      ActionAttack,
	"fight":  ActionAttack,
	"flee":   ActionFlee,
	"f":      ActionFlee,
	"run":    ActionFlee,
	"use":    ActionUse,
	"u":      ActionUse,
}

// ParseAction turns typed input into an Action.
func ParseAction(input string) (Action, error) {
	fields := strings.Fields(strings.ToLower(input))
	if len(fields) == 0 {
		return Action{}, ErrInvalidCombatAction
	}
	kind, ok := actionAliases[fields[0]]
	if !ok {
		return Action{}, ErrInvalidCombatAction
	}
	a := Action{Kind: kind}
	if kind == ActionUse {
		a.Item = strings.Join(fields[1:], " ")
	}
	return a, nil
}

// Encounter is a single fight. It starts at PhasePlayerTurn, or PhaseIdle when
// there is no enemy.
type Encounter struct {
	Enemy   *actor.Enemy `json:"enemy" yaml:"enemy"`
	Phase   Phase        `json:"phase" yaml:"phase"`
	Outcome Outcome      `json:"outcome,omitempty" yaml:"outcome,omitempty"`
	Rounds  int          `json:"rounds" yaml:"rounds"`
}

// NewEncounter starts a fight against e. Without an enemy the encounter is idle.
func NewEncounter(e *actor.Enemy) *Encounter {
	if e == nil {
		return &Encounter{Phase: PhaseIdle}
	}
	return &Encounter{Enemy: e, Phase: PhasePlayerTurn}
}

// Active reports whether the encounter still accepts actions.
func (enc *Encounter) Active() bool {
	return enc != nil && enc.Phase == PhasePlayerTurn && enc.Enemy != nil && !enc.Enemy.IsDefeated()
}

func (enc *Encounter) resolve(o Outcome) {
	enc.Phase = PhaseResolved
	enc.Outcome = o
}
