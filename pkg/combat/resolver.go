package combat

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/jwebster45206/the-deep/pkg/actor"
	"github.com/jwebster45206/the-deep/pkg/dice"
	"github.com/jwebster45206/the-deep/pkg/event"
	"github.com/jwebster45206/the-deep/pkg/world"
)

// Result describes what one action did.
type Result struct {
	Events       event.Log
	Outcome      Outcome
	DamageDealt  int
	DamageTaken  int
	Healed       int
	Effect       *actor.Effect
	LootRolled   bool
	LootID       string // chosen loot item, empty if nothing dropped
	Retaliations int
}

// Resolver applies combat actions. It holds no per-encounter state.
type Resolver struct {
	World      *world.World
	Rules      world.Rules
	Multiplier float64 // enemy damage multiplier for the difficulty
	Dice       dice.Source
	Logger     *slog.Logger
}

func NewResolver(w *world.World, difficulty string, src dice.Source, logger *slog.Logger) *Resolver {
	return &Resolver{
		World:      w,
		Rules:      w.Rules,
		Multiplier: w.Rules.DamageMultiplier(difficulty),
		Dice:       src,
		Logger:     logger,
	}
}

// Resolve applies one player action. Invalid actions and unknown items return an
// error and change nothing; every other non-winning action draws one retaliation.
func (r *Resolver) Resolve(enc *Encounter, p *actor.Player, loc *world.Location, a Action) (Result, error) {
	var res Result
	if !enc.Active() {
		return res, fmt.Errorf("encounter is over: %w", ErrInvalidCombatAction)
	}

	switch a.Kind {
	case ActionAttack:
		r.attack(enc, p, &res)
		if enc.Enemy.IsDefeated() {
			r.victory(enc, p, &res)
			return res, nil
		}

	case ActionFlee:
		chance := r.FleeChance(enc.Enemy)
		if dice.Chance(r.Dice, chance) {
			enc.resolve(OutcomeFlee)
			res.Outcome = OutcomeFlee
			res.Events.Addf(event.KindSuccess, "You escaped from the %s!", enc.Enemy.Name)
			r.log().Info("fled encounter", "enemy", enc.Enemy.ID, "chance", chance)
			return res, nil
		}
		res.Events.Addf(event.KindWarning, "You failed to escape from the %s!", enc.Enemy.Name)

	case ActionUse:
		if a.Item == "" {
			return res, fmt.Errorf("use what?: %w", world.ErrItemNotFound)
		}
		it, err := r.World.MatchInContainer(p, a.Item)
		if err != nil {
			return res, err
		}
		eff, err := actor.ApplyEffect(it, p, loc)
		if err != nil {
			return res, err
		}
		res.Effect = &eff
		res.Healed = eff.Healed
		kind := event.KindInfo
		if eff.Applied {
			kind = event.KindSuccess
		}
		res.Events.Add(kind, eff.Message)

	default:
		return res, fmt.Errorf("%q: %w", a.Kind, ErrInvalidCombatAction)
	}

	enc.Rounds++
	r.retaliate(enc, p, &res)
	return res, nil
}

// FleeChance is the probability of escaping from e.
func (r *Resolver) FleeChance(e *actor.Enemy) float64 {
	c := r.Rules.FleeChance - e.ThreatLevel*r.Rules.FleeThreatPenalty
	return max(0, min(1, c))
}

// AttackDamage draws the player's damage including the equipped weapon bonus.
func (r *Resolver) AttackDamage(p *actor.Player) int {
	dmg := dice.Between(r.Dice, r.Rules.PlayerDamageMin, r.Rules.PlayerDamageMax)
	if p.Equipped != "" {
		if it, ok := r.World.Item(p.Equipped); ok {
			dmg += it.DamageBonus()
		}
	}
	return dmg
}

// EnemyDamage draws the enemy's damage scaled by difficulty, never below 1.
func (r *Resolver) EnemyDamage(e *actor.Enemy) int {
	mult := r.Multiplier
	if mult <= 0 {
		mult = 1
	}
	dmg := int(math.Round(float64(e.Roll(r.Dice)) * mult))
	return max(dmg, 1)
}

func (r *Resolver) attack(enc *Encounter, p *actor.Player, res *Result) {
	dmg := r.AttackDamage(p)
	enc.Enemy.TakeDamage(dmg)
	res.DamageDealt = dmg
	res.Events.Addf(event.KindCombat, "You attack the %s for %d damage.", enc.Enemy.Name, dmg)
	res.Events.Add(event.KindCombat, enc.Enemy.Reaction())
}

func (r *Resolver) retaliate(enc *Encounter, p *actor.Player, res *Result) {
	enc.Phase = PhaseEnemyTurn
	dmg := r.EnemyDamage(enc.Enemy)
	p.TakeDamage(dmg)
	res.DamageTaken += dmg
	res.Retaliations++
	res.Events.Addf(event.KindCombat, "The %s attacks you for %d damage! Health: %d/%d",
		enc.Enemy.Name, dmg, p.Health(), p.MaxHealth())

	if p.IsDead() {
		enc.resolve(OutcomeDefeat)
		res.Outcome = OutcomeDefeat
		r.log().Info("player defeated", "enemy", enc.Enemy.ID, "rounds", enc.Rounds)
		return
	}
	enc.Phase = PhasePlayerTurn
}

func (r *Resolver) victory(enc *Encounter, p *actor.Player, res *Result) {
	enc.Rounds++
	enc.resolve(OutcomeVictory)
	res.Outcome = OutcomeVictory

	heal := dice.Between(r.Dice, r.Rules.VictoryHealMin, r.Rules.VictoryHealMax)
	res.Healed = p.Heal(heal)
	res.Events.Addf(event.KindSuccess, "You recovered %d health points from the victory! Health: %d/%d",
		res.Healed, p.Health(), p.MaxHealth())

	res.LootRolled = true
	if dice.Chance(r.Dice, r.Rules.LootChance) && len(enc.Enemy.Loot) > 0 {
		res.LootID = dice.Pick(r.Dice, enc.Enemy.Loot)
	}
	r.log().Info("enemy defeated", "enemy", enc.Enemy.ID, "rounds", enc.Rounds, "loot", res.LootID)
}

func (r *Resolver) log() *slog.Logger {
	if r.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return r.Logger
}

// IsPlayerError reports whether err is a recoverable input error from Resolve.
func IsPlayerError(err error) bool {
	return errors.Is(err, ErrInvalidCombatAction) || errors.Is(err, world.ErrItemNotFound)
}
