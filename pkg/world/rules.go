package world

import "strings"

// Rules holds the tunable numbers of combat and exploration.
// Values present in a world file override the defaults field by field.
type Rules struct {
	PlayerDamageMin           int                `yaml:"player_damage_min" json:"player_damage_min"`
	PlayerDamageMax           int                `yaml:"player_damage_max" json:"player_damage_max"`
	FleeChance                float64            `yaml:"flee_chance" json:"flee_chance"`
	FleeThreatPenalty         float64            `yaml:"flee_threat_penalty" json:"flee_threat_penalty"` // subtracted per unit of enemy threat
	LootChance                float64            `yaml:"loot_chance" json:"loot_chance"`
	SpawnChance               float64            `yaml:"spawn_chance" json:"spawn_chance"`
	MinTurnsBetweenEncounters int                `yaml:"min_turns_between_encounters" json:"min_turns_between_encounters"`
	VictoryHealMin            int                `yaml:"victory_heal_min" json:"victory_heal_min"`
	VictoryHealMax            int                `yaml:"victory_heal_max" json:"victory_heal_max"`
	PlayerMaxHealth           int                `yaml:"player_max_health" json:"player_max_health"`
	Difficulty                map[string]float64 `yaml:"difficulty" json:"difficulty"` // enemy damage multipliers
}

const DefaultDifficulty = "normal"

// DefaultRules returns the standard balance.
func DefaultRules() Rules {
	return Rules{
		PlayerDamageMin:           5,
		PlayerDamageMax:           15,
		FleeChance:                0.6,
		FleeThreatPenalty:         0.1,
		LootChance:                0.7,
		SpawnChance:               0.25,
		MinTurnsBetweenEncounters: 3,
		VictoryHealMin:            5,
		VictoryHealMax:            15,
		PlayerMaxHealth:           100,
		Difficulty: map[string]float64{
			"easy":   0.5,
			"normal": 1.0,
			"hard":   1.5,
		},
	}
}

// DamageMultiplier returns the enemy damage multiplier for a difficulty name.
// Unknown names play at normal difficulty.
func (r Rules) DamageMultiplier(difficulty string) float64 {
	if m, ok := r.Difficulty[strings.ToLower(difficulty)]; ok && m > 0 {
		return m
	}
	return 1.0
}

func (r Rules) validate(cerr *ConfigurationError) {
	if r.PlayerDamageMin <= 0 || r.PlayerDamageMin > r.PlayerDamageMax {
		cerr.add("rules: player damage range [%d,%d] must be positive and ordered", r.PlayerDamageMin, r.PlayerDamageMax)
	}
	if r.VictoryHealMin < 0 || r.VictoryHealMin > r.VictoryHealMax {
		cerr.add("rules: victory heal range [%d,%d] must be non-negative and ordered", r.VictoryHealMin, r.VictoryHealMax)
	}
	if r.MinTurnsBetweenEncounters < 0 {
		cerr.add("rules: min_turns_between_encounters must not be negative")
	}
	if r.PlayerMaxHealth <= 0 {
		cerr.add("rules: player_max_health must be positive")
	}
	for _, p := range []struct {
		name  string
		value float64
	}{
		{"flee_chance", r.FleeChance},
		{"flee_threat_penalty", r.FleeThreatPenalty},
		{"loot_chance", r.LootChance},
		{"spawn_chance", r.SpawnChance},
	} {
		if p.value < 0 || p.value > 1 {
			cerr.add("rules: %s %.2f must be within [0,1]", p.name, p.value)
		}
	}
	for _, name := range sortedKeys(r.Difficulty) {
		if r.Difficulty[name] <= 0 {
			cerr.add("rules: difficulty %s multiplier must be positive", name)
		}
	}
}
