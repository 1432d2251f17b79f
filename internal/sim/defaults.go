package sim

// DefaultConfig is the stock tuning: a 10x10 torus, one starting attack and
// five more to unlock, three enemy types.
func DefaultConfig() Config {
	return Config{
		Arena:            ArenaConfig{Min: [2]int{-4, -4}, Max: [2]int{5, 5}},
		MoveTimeLimit:    6.0,
		UltimateTimeRate: 0.5,
		FadeTime:         2.0,
		Interpolation: InterpolationConfig{
			MaxTime:  DefaultInterpolationMaxTime,
			MinSpeed: DefaultInterpolationMinSpeed,
		},
		ExpPerLevel:    5,
		SlotThresholds: []int{0, 30, 70, 350},
		Ultimate:       UltimateConfig{Cooldown: 5, Radius: 1, IncludeOrigin: true},
		RotateAttacks:  true,
		InitialAttacks: []AttackConfig{
			chain(
				[][2]int{{1, 0}},
				[][2]int{{1, 0}, {2, 0}},
				[][2]int{{1, 0}, {2, 0}, {3, 0}},
			),
		},
		PotentialAttacks: []AttackConfig{
			chain(
				[][2]int{{1, 0}, {2, 1}},
				[][2]int{{1, 0}, {2, 1}, {2, -1}},
				[][2]int{{1, 0}, {2, 1}, {2, -1}, {2, 0}},
			),
			chain(
				[][2]int{{1, 0}, {2, 0}, {1, 1}},
				[][2]int{{1, 0}, {2, 0}, {1, 1}, {1, -1}},
				[][2]int{{1, 0}, {2, 0}, {1, 1}, {1, -1}, {3, 1}},
			),
			chain(
				[][2]int{{1, 0}, {2, 0}, {3, 0}, {3, 1}},
				[][2]int{{1, 0}, {2, 0}, {3, 0}, {3, 1}, {3, -1}},
				[][2]int{{1, 0}, {2, 0}, {3, 0}, {3, 1}, {3, -1}, {4, 1}, {4, -1}},
			),
			chain(
				[][2]int{{1, 0}, {2, 1}, {2, 0}, {2, -1}},
				[][2]int{{1, 0}, {2, 1}, {2, 0}, {2, -1}, {3, 1}, {3, -1}},
				[][2]int{{1, 0}, {2, 1}, {2, 0}, {2, -1}, {3, 1}, {3, -1}, {4, 0}},
			),
			chain(
				[][2]int{{1, 1}, {1, -1}, {2, 0}, {3, 0}},
				[][2]int{{1, 1}, {1, -1}, {2, 0}, {3, 0}, {4, 1}, {4, -1}},
				[][2]int{{1, 1}, {1, -1}, {2, 0}, {3, 0}, {4, 1}, {4, -1}, {4, 0}, {5, 0}},
			),
		},
		Spawning: SpawnConfig{
			KillDecay:   0.05,
			MinCooldown: 1,
			Enemies: map[string]EnemyConfig{
				"attacker": {
					Movement:      "direct",
					FirstSpawn:    1,
					Color:         "#ff0000",
					Cooldowns:     map[int]float64{0: 2, 1: 4, 2: 6, 3: 7},
					LargeCooldown: 8,
				},
				"frog": {
					Movement:      "single_double",
					MinScore:      10,
					FirstSpawn:    1,
					Color:         "#00ff00",
					Cooldowns:     map[int]float64{0: 6, 1: 12, 2: 12, 3: 18},
					LargeCooldown: 20,
				},
				"king": {
					Movement:      "neighbour",
					MinScore:      60,
					FirstSpawn:    1,
					Color:         "#ff00ff",
					Cooldowns:     map[int]float64{0: 6, 1: 10, 2: 15, 3: 15},
					LargeCooldown: 18,
				},
			},
		},
		Upgrades: UpgradesConfig{
			MoveTimeBonus:        1.0,
			AttackCooldownFactor: 0.8,
			AttackCooldownFloor:  2,
			Items: map[string]UpgradeConfig{
				"attack_cooldown": {Max: 3},
				"attack_tier":     {Max: 2},
				"new_attack":      {Max: 3},
				"ult_radius":      {Max: 2, MinScore: 30},
				"ult_cooldown":    {Max: 2, MinScore: 100},
				"move_time":       {Max: 2},
			},
		},
	}
}

// chain builds a cooldown-2 attack chain from its tier patterns.
func chain(patterns ...[][2]int) AttackConfig {
	tiers := make([]TierConfig, len(patterns))
	for i, p := range patterns {
		tiers[i] = TierConfig{Cooldown: 2, Pattern: p}
	}
	return AttackConfig{Tiers: tiers}
}
