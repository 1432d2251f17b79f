package sim

import (
	"fmt"
	"image/color"
	"math/rand"
	"time"
)

// PlayerColor is the player's fill colour.
var PlayerColor = color.RGBA{R: 0, G: 0, B: 255, A: 255}

// Player is the single controllable unit.
type Player struct {
	Position      Position
	Interpolation Interpolation
	Color         color.RGBA
	Dead          bool
}

// Phase is the coarse state of the turn machine.
type Phase int

const (
	PhaseNormal Phase = iota
	PhaseUpgradeMenu
	PhaseUltimate
	PhaseDead
)

func (p Phase) String() string {
	switch p {
	case PhaseNormal:
		return "normal"
	case PhaseUpgradeMenu:
		return "upgrade_menu"
	case PhaseUltimate:
		return "ultimate"
	case PhaseDead:
		return "dead"
	default:
		return "unknown"
	}
}

// State is the whole game. It is not safe for concurrent use: Tick, Update
// and the other commands must be called from one goroutine.
type State struct {
	cfg       Config
	seed      int64
	rng       *rand.Rand
	events    dispatcher
	highscore *Highscore

	arena Bounds
	tick  int
	score int
	exp   Experience

	moveTimeLimit   float64
	moveTimeLeft    float64
	freezeMoveTimer bool

	attacks   []*Attack
	potential []*Attack
	ultimate  Teleport
	ultActive bool
	ultOrigin Position

	player  Player
	enemies []Enemy
	spawns  []Enemy // merged on the next turn
	damages []Position

	prefabs  [enemyTypeCount]*SpawnPrefab
	upgrades [upgradeTypeCount]*Upgrade
	menu     *UpgradeMenu
	fade     Fade
}

// Option configures a State at construction.
type Option func(*State)

// WithSeed seeds the random source used for rotations, spawn corners and
// upgrade sampling.
func WithSeed(seed int64) Option {
	return func(s *State) {
		s.seed = seed
		s.rng = rand.New(rand.NewSource(seed)) // #nosec G404 -- gameplay randomness
	}
}

// WithRand injects a random source directly. Seed reports 0.
func WithRand(r *rand.Rand) Option {
	return func(s *State) {
		s.seed = 0
		s.rng = r
	}
}

// WithHighscore attaches persistent storage for the highscore.
func WithHighscore(store HighscoreStore) Option {
	return func(s *State) {
		s.highscore = NewHighscore(store)
	}
}

// WithListener subscribes l before the first event is emitted.
func WithListener(l Listener) Option {
	return func(s *State) {
		s.events.subscribe(l)
	}
}

// New validates cfg and builds a fresh game.
func New(cfg Config, opts ...Option) (*State, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &State{cfg: cfg}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		WithSeed(time.Now().UnixNano())(s)
	}
	if s.highscore == nil {
		s.highscore = NewHighscore(nil)
	}
	s.init()
	return s, nil
}

// Subscribe adds a listener for every later event.
func (s *State) Subscribe(l Listener) {
	s.events.subscribe(l)
}

func (s *State) emit(e Event) {
	e.Tick = s.tick
	s.events.dispatch(e)
}

// init rebuilds everything but the random source, listeners and highscore.
func (s *State) init() {
	cfg := s.cfg
	s.arena = cfg.Arena.Bounds()
	s.tick = 0
	s.score = 0
	s.exp = NewExperience(cfg.ExpPerLevel)

	s.moveTimeLimit = cfg.MoveTimeLimit
	s.moveTimeLeft = cfg.MoveTimeLimit
	s.freezeMoveTimer = true

	s.attacks = s.buildAttacks(cfg.InitialAttacks)
	s.potential = s.buildAttacks(cfg.PotentialAttacks)
	s.ultimate = NewTeleport(cfg.Ultimate.Cooldown, cfg.Ultimate.Radius, cfg.Ultimate.IncludeOrigin)
	s.ultActive = false
	s.ultOrigin = Position{}

	start := ClampPos(Position{}, s.arena)
	s.player = Player{Position: start, Interpolation: s.newInterpolation(start), Color: PlayerColor}
	s.enemies = nil
	s.spawns = nil
	s.damages = nil

	s.prefabs = cfg.buildPrefabs()
	s.upgrades = cfg.buildUpgrades()
	s.menu = nil
	s.fade = NewFade(cfg.FadeTime)
}

func (s *State) buildAttacks(list []AttackConfig) []*Attack {
	out := make([]*Attack, 0, len(list))
	for _, c := range list {
		a := c.build()
		if s.cfg.RotateAttacks {
			for r := s.rng.Intn(4); r > 0; r-- {
				a.RotateLeft()
			}
		}
		out = append(out, a)
	}
	return out
}

func (s *State) newInterpolation(p Position) Interpolation {
	return NewInterpolation(p.Vec(), s.cfg.Interpolation.MaxTime, s.cfg.Interpolation.MinSpeed)
}

// --- Commands ---

// Tick runs one turn with the given direction. With a menu open the
// direction's x sign moves the cursor instead.
func (s *State) Tick(dir Position) {
	if s.player.Dead {
		return
	}
	dir = s.normaliseDir(dir)
	if s.menu != nil {
		s.menu.MoveCursor(dir.X)
		return
	}

	s.tick++
	if dir != DirNone {
		s.freezeMoveTimer = false
	}
	s.moveTimeLeft = s.moveTimeLimit

	// 1. Player.
	old := s.player.Position
	pos, jump := WrapPos(old.Add(dir), s.arena)
	final := pos
	if s.ultActive {
		leash := s.ultimate.Boundary().Translate(s.ultOrigin)
		final = ClampWrappedPos(pos, leash, s.arena)
	}
	s.player.Position = final
	s.queuePlayerMove(old, old.Add(dir), final)
	if jump && final == pos {
		s.emit(Event{Kind: EventWrap, Pos: final})
	}
	s.emit(Event{Kind: EventMove, Pos: final})
	if s.ultActive {
		return
	}

	// 2. Enemies.
	s.damages = s.damages[:0]
	for i := range s.enemies {
		e := &s.enemies[i]
		step := e.Movement.Step(final.Sub(e.Position))
		e.Position = ClampPos(e.Position.Add(step), s.arena)
		e.Interpolation.Queue(e.Position.Vec())
	}
	for _, e := range s.enemies {
		if e.Position == final {
			s.killPlayer(DeathCollision)
			return
		}
	}

	// 3. Attacks.
	var struck []Position
	for _, a := range s.attacks {
		if a.Action.Update(1) {
			a.Action.SetOnCooldown()
			struck = append(struck, a.Positions(final)...)
		}
	}
	s.ultimate.Action.Update(1)
	if len(struck) > 0 {
		s.emit(Event{Kind: EventStrike, Pos: final, Value: len(struck)})
	}
	s.attackPositions(PlayerCaster, struck)

	// 4. Spawning.
	s.mergeSpawns()
	s.runSpawners()
}

// queuePlayerMove slides the render position to final. When the cell moved
// by something other than its raw step (a wrap), the slide runs off the edge
// and cuts to the far side.
func (s *State) queuePlayerMove(old, raw, final Position) {
	in := &s.player.Interpolation
	if final != raw && final != old {
		half := final.Sub(old).Sign().Vec().Scale(0.5)
		in.Queue(old.Vec().Sub(half))
		in.QueueJump(final.Vec().Add(half))
	}
	in.Queue(final.Vec())
}

func (s *State) normaliseDir(dir Position) Position {
	switch dir {
	case DirNone, DirLeft, DirRight, DirDown, DirUp:
		return dir
	}
	fixed := Position{Y: sign(dir.Y)}
	if dir.X != 0 {
		fixed = Position{X: sign(dir.X)}
	}
	s.emit(Event{Kind: EventInvariant, Pos: dir, Detail: fmt.Sprintf("direction %s normalised to %s", dir, fixed)})
	return fixed
}

// Update advances continuous time by dt seconds: interpolation, the fade,
// and the per-move time budget.
func (s *State) Update(dt float64) {
	if dt < 0 {
		dt = 0
	}
	s.player.Interpolation.Update(dt)
	for i := range s.enemies {
		s.enemies[i].Interpolation.Update(dt)
	}

	if s.fade.Advance(dt) && s.player.Dead {
		s.Reset()
		return
	}
	if s.player.Dead {
		s.fade.FadeOut()
		return
	}
	if s.menu != nil {
		return
	}
	if !s.freezeMoveTimer {
		rate := 1.0
		if s.ultActive {
			rate = s.cfg.UltimateTimeRate
		}
		s.moveTimeLeft -= dt * rate
	}
	if s.moveTimeLeft <= 0 {
		s.moveTimeLeft = 0
		s.killPlayer(DeathTimeout)
	}
}

// UseUltimate ends an active ultimate, or engages a ready one at the
// player's position.
func (s *State) UseUltimate() {
	if s.player.Dead {
		return
	}
	if s.ultActive {
		s.ultActive = false
		s.emit(Event{Kind: EventUltimateOff, Pos: s.player.Position})
		return
	}
	if s.menu != nil || !s.ultimate.Action.IsReady() {
		return
	}
	s.ultActive = true
	s.ultOrigin = s.player.Position
	s.ultimate.Action.SetOnCooldown()
	s.emit(Event{Kind: EventUltimateOn, Pos: s.ultOrigin, Value: s.ultimate.Radius})
}

// KillPlayer ends the run; the game resets once the fade completes.
func (s *State) KillPlayer() {
	s.killPlayer(DeathManual)
}

func (s *State) killPlayer(cause string) {
	if s.player.Dead {
		return
	}
	s.player.Dead = true
	s.fade.FadeOut()
	s.emit(Event{Kind: EventPlayerDied, Pos: s.player.Position, Value: s.score, Detail: cause})
}

// Reset starts a new game with the same config, random source, listeners
// and highscore.
func (s *State) Reset() {
	s.init()
	s.emit(Event{Kind: EventReset, Value: s.highscore.Value()})
}

// --- Observers ---

func (s *State) Config() Config { return s.cfg }
func (s *State) Seed() int64 { return s.seed }
func (s *State) Arena() Bounds { return s.arena }
func (s *State) TickCount() int { return s.tick }
func (s *State) Score() int { return s.score }
func (s *State) Level() int { return s.exp.Level }
func (s *State) Dead() bool { return s.player.Dead }

func (s *State) Highscore() int { return s.highscore.Value() }

// HighscoreErr is the last failure of the highscore store, if any.
func (s *State) HighscoreErr() error { return s.highscore.Err() }

func (s *State) ExpRatio() float64 { return s.exp.Ratio() }

func (s *State) Phase() Phase {
	switch {
	case s.player.Dead:
		return PhaseDead
	case s.menu != nil:
		return PhaseUpgradeMenu
	case s.ultActive:
		return PhaseUltimate
	default:
		return PhaseNormal
	}
}

func (s *State) Player() Position { return s.player.Position }
func (s *State) PlayerRender() Vec2 { return s.player.Interpolation.Current() }
func (s *State) PlayerColor() color.RGBA { return s.player.Color }
func (s *State) MoveTimeLeft() float64 { return s.moveTimeLeft }
func (s *State) MoveTimeLimit() float64 { return s.moveTimeLimit }
func (s *State) MoveTimerFrozen() bool { return s.freezeMoveTimer }
func (s *State) FadeAlpha() float64 { return s.fade.Current }
func (s *State) UltimateActive() bool { return s.ultActive }
func (s *State) UltimateOrigin() Position { return s.ultOrigin }

// MoveTimeRatio is the unspent share of the move budget.
func (s *State) MoveTimeRatio() float64 {
	return s.moveTimeLeft / s.moveTimeLimit
}

// EnemyView is a read-only snapshot of one enemy.
type EnemyView struct {
	Type     EnemyType
	Color    color.RGBA
	Position Position
	Render   Vec2
}

func (s *State) Enemies() []EnemyView {
	out := make([]EnemyView, len(s.enemies))
	for i, e := range s.enemies {
		out[i] = EnemyView{Type: e.Type, Color: e.Color, Position: e.Position, Render: e.Interpolation.Current()}
	}
	return out
}

// PendingSpawns are the enemies that join on the next turn.
func (s *State) PendingSpawns() []PendingSpawn {
	out := make([]PendingSpawn, len(s.spawns))
	for i, e := range s.spawns {
		out[i] = PendingSpawn{Type: e.Type, Position: e.Position, Color: e.Color}
	}
	return out
}

// DamageMarks are the cells struck during the last full turn.
func (s *State) DamageMarks() []Position {
	return append([]Position(nil), s.damages...)
}

// Menu returns a copy of the open upgrade menu.
func (s *State) Menu() (UpgradeMenu, bool) {
	if s.menu == nil {
		return UpgradeMenu{}, false
	}
	m := *s.menu
	m.Options = append([]UpgradeOption(nil), s.menu.Options...)
	return m, true
}

// UltimateLeash is the box the player is held to while the ultimate is on.
// Parts of it may lie past the arena edges.
func (s *State) UltimateLeash() Bounds {
	return s.ultimate.Boundary().Translate(s.ultOrigin)
}

// UltimateTargets lists the reachable cells of the active ultimate, wrapped
// into the arena. It is empty when the ultimate is off.
func (s *State) UltimateTargets() []Position {
	if !s.ultActive {
		return nil
	}
	seen := make(map[Position]bool)
	var out []Position
	for _, d := range s.ultimate.Deltas() {
		p, _ := WrapPos(s.ultOrigin.Add(d), s.arena)
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}

// UltimateCooldown returns turns remaining and the full cooldown.
func (s *State) UltimateCooldown() (remaining, total int) {
	return s.ultimate.Action.Remaining(), s.ultimate.Action.Total()
}

func (s *State) UltimateRadius() int { return s.ultimate.Radius }

// AttackView is a read-only snapshot of one owned attack.
type AttackView struct {
	Tier      int
	Tiers     int
	Pattern   []Position
	Remaining int
	Total     int
}

func (s *State) Attacks() []AttackView {
	out := make([]AttackView, len(s.attacks))
	for i, a := range s.attacks {
		out[i] = AttackView{
			Tier:      a.Tier(),
			Tiers:     a.Tiers(),
			Pattern:   append([]Position(nil), a.Pattern...),
			Remaining: a.Action.Remaining(),
			Total:     a.Action.Total(),
		}
	}
	return out
}

// AttackSlots is the number of attack slots the current score unlocks.
func (s *State) AttackSlots() int {
	return AttackSlots(s.score, s.cfg.SlotThresholds)
}

func (s *State) MaxAttackSlots() int {
	return len(s.cfg.SlotThresholds)
}

// SlotThreshold is the score that unlocks slot i.
func (s *State) SlotThreshold(i int) int {
	return s.cfg.SlotThresholds[i]
}

// PotentialAttacks counts attacks still left to unlock.
func (s *State) PotentialAttacks() int {
	return len(s.potential)
}

// UpgradeCount reports how often a global upgrade was taken, or the sum over
// every attack for per-attack ones.
func (s *State) UpgradeCount(t UpgradeType) int {
	u := s.upgrades[t]
	if u == nil {
		return 0
	}
	if !t.PerAttack() {
		return u.Info.Current
	}
	n := 0
	for _, slot := range u.Slots {
		n += slot.Current
	}
	return n
}
