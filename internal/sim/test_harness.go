package sim

import "fmt"

// TestSim is a headless harness for tests and the batch runner. It builds a
// seeded State, records every event to a SimLog and can place units before
// the first turn.
type TestSim struct {
	State  *State
	SimLog *SimLog

	cfg       Config
	seed      int64
	verbose   bool
	highscore HighscoreStore
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptConfig simOptionKind = iota // seed, config edits, verbose: before the State exists
	simOptPlace                       // unit placement: after the State exists
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// SimSeed sets the RNG seed for deterministic runs.
func SimSeed(seed int64) SimOption {
	return SimOption{simOptConfig, func(ts *TestSim) {
		ts.seed = seed
	}}
}

// SimConfig replaces the whole config.
func SimConfig(cfg Config) SimOption {
	return SimOption{simOptConfig, func(ts *TestSim) {
		ts.cfg = cfg
	}}
}

// SimVerbose keeps per-turn move events in the log.
func SimVerbose(v bool) SimOption {
	return SimOption{simOptConfig, func(ts *TestSim) {
		ts.verbose = v
	}}
}

// SimHighscore persists the highscore to store.
func SimHighscore(store HighscoreStore) SimOption {
	return SimOption{simOptConfig, func(ts *TestSim) {
		ts.highscore = store
	}}
}

// SimArena sets the inclusive arena corners.
func SimArena(lo, hi Position) SimOption {
	return SimOption{simOptConfig, func(ts *TestSim) {
		ts.cfg.Arena = ArenaConfig{Min: [2]int{lo.X, lo.Y}, Max: [2]int{hi.X, hi.Y}}
	}}
}

// SimAttacks replaces the starting attacks. Patterns are never rotated in
// the harness.
func SimAttacks(attacks ...AttackConfig) SimOption {
	return SimOption{simOptConfig, func(ts *TestSim) {
		ts.cfg.InitialAttacks = attacks
	}}
}

// SimNoSpawns disables every spawner.
func SimNoSpawns() SimOption {
	return SimOption{simOptConfig, func(ts *TestSim) {
		enemies := make(map[string]EnemyConfig, len(ts.cfg.Spawning.Enemies))
		for name, e := range ts.cfg.Spawning.Enemies {
			e.Disabled = true
			enemies[name] = e
		}
		ts.cfg.Spawning.Enemies = enemies
	}}
}

// SimNoUpgrades removes every upgrade, so level-ups never open a menu.
func SimNoUpgrades() SimOption {
	return SimOption{simOptConfig, func(ts *TestSim) {
		ts.cfg.Upgrades.Items = map[string]UpgradeConfig{}
	}}
}

// SimExpPerLevel sets the experience needed per level.
func SimExpPerLevel(n int) SimOption {
	return SimOption{simOptConfig, func(ts *TestSim) {
		ts.cfg.ExpPerLevel = n
	}}
}

// SimPlayerAt moves the player before the first turn.
func SimPlayerAt(p Position) SimOption {
	return SimOption{simOptPlace, func(ts *TestSim) {
		s := ts.State
		s.player.Position = p
		s.player.Interpolation = s.newInterpolation(p)
	}}
}

// SimEnemyAt places a live enemy of type t with the given movement.
func SimEnemyAt(t EnemyType, kind MovementKind, p Position) SimOption {
	return SimOption{simOptPlace, func(ts *TestSim) {
		s := ts.State
		e := Enemy{
			Type:          t,
			Position:      p,
			Interpolation: s.newInterpolation(p),
			Movement:      Movement{Kind: kind},
		}
		if pf := s.prefabs[t]; pf != nil {
			e.Color = pf.Color
		}
		s.enemies = append(s.enemies, e)
	}}
}

// NewTestSim constructs a TestSim in two ordered passes:
//  1. Seed, config and logging
//  2. Unit placement on the built State
//
// It panics on an invalid config since every caller is a test or a fixed
// batch setup.
func NewTestSim(opts ...SimOption) *TestSim {
	cfg := DefaultConfig()
	cfg.RotateAttacks = false
	ts := &TestSim{cfg: cfg, seed: 1}
	for _, o := range opts {
		if o.kind == simOptConfig {
			o.fn(ts)
		}
	}
	ts.cfg.RotateAttacks = false
	ts.SimLog = NewSimLog(ts.verbose)

	stateOpts := []Option{WithSeed(ts.seed), WithListener(ts.SimLog)}
	if ts.highscore != nil {
		stateOpts = append(stateOpts, WithHighscore(ts.highscore))
	}
	s, err := New(ts.cfg, stateOpts...)
	if err != nil {
		panic(fmt.Sprintf("test sim: %v", err))
	}
	ts.State = s
	for _, o := range opts {
		if o.kind == simOptPlace {
			o.fn(ts)
		}
	}
	return ts
}

// RunTicks runs n turns in the same direction.
func (ts *TestSim) RunTicks(dir Position, n int) {
	for i := 0; i < n; i++ {
		ts.State.Tick(dir)
	}
}

// RunMoves runs one turn per direction, in order.
func (ts *TestSim) RunMoves(dirs ...Position) {
	for _, d := range dirs {
		ts.State.Tick(d)
	}
}

// RunUntil runs turns in dir up to maxTicks, stopping early if predicate
// returns true. Returns the tick at which the predicate was satisfied, or -1.
func (ts *TestSim) RunUntil(dir Position, predicate func(*State) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		ts.State.Tick(dir)
		if predicate(ts.State) {
			return ts.State.TickCount()
		}
	}
	return -1
}

// RunFrames calls Update n times with a fixed frame time.
func (ts *TestSim) RunFrames(dt float64, n int) {
	for i := 0; i < n; i++ {
		ts.State.Update(dt)
	}
}

// Summary is the SimLog summary of the current state.
func (ts *TestSim) Summary() string {
	return ts.SimLog.Summary(ts.State)
}
