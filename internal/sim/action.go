package sim

import "math"

// Action is a turn-based cooldown timer shared by attacks and the ultimate.
// A fresh action is not ready: it must tick down to zero first.
type Action struct {
	Cooldown           int     // base cooldown in turns
	Next               int     // turns until ready; ready at <= 0
	CooldownMultiplier float64 // upgradeable, only ever shrinks
}

func NewAction(cooldown int) Action {
	return Action{Cooldown: cooldown, Next: cooldown, CooldownMultiplier: 1}
}

// Update consumes delta turns and reports readiness. Call it exactly once per
// simulated turn whether or not the action fires.
func (a *Action) Update(delta int) bool {
	a.Next -= delta
	return a.IsReady()
}

// SetOnCooldown re-arms the action.
func (a *Action) SetOnCooldown() {
	a.Next = a.Total()
}

func (a *Action) IsReady() bool {
	return a.Next <= 0
}

// Total is the effective cooldown after the multiplier, never below one turn.
func (a *Action) Total() int {
	t := int(math.Ceil(float64(a.Cooldown) * a.CooldownMultiplier))
	if t < 1 {
		t = 1
	}
	return t
}

// Remaining is the number of turns left, clamped at zero.
func (a *Action) Remaining() int {
	if a.Next < 0 {
		return 0
	}
	return a.Next
}

// --- Attack ---

// AttackTier is one stage of an attack's upgrade chain.
type AttackTier struct {
	Cooldown int
	Pattern  []Position
}

// Attack is a damage pattern relative to the caster, gated by a cooldown.
// An attack owns at most one successor; upgrading replaces the whole attack,
// cooldown included.
type Attack struct {
	Action    Action
	Pattern   []Position
	successor *Attack
	tier      int
}

// NewAttack builds an attack chain from its tiers, lowest first.
func NewAttack(tiers ...AttackTier) *Attack {
	if len(tiers) == 0 {
		return nil
	}
	var next *Attack
	for i := len(tiers) - 1; i >= 0; i-- {
		t := tiers[i]
		next = &Attack{
			Action:    NewAction(t.Cooldown),
			Pattern:   append([]Position(nil), t.Pattern...),
			successor: next,
			tier:      i,
		}
	}
	return next
}

// Positions returns the struck cells for a caster standing at origin.
func (a *Attack) Positions(origin Position) []Position {
	out := make([]Position, len(a.Pattern))
	for i, d := range a.Pattern {
		out[i] = origin.Add(d)
	}
	return out
}

// RotateLeft turns the pattern a quarter turn counter-clockwise, along with
// every tier after it.
func (a *Attack) RotateLeft() {
	for at := a; at != nil; at = at.successor {
		for i, p := range at.Pattern {
			at.Pattern[i] = Position{X: -p.Y, Y: p.X}
		}
	}
}

func (a *Attack) CanUpgrade() bool {
	return a.successor != nil
}

// Upgrade swaps in the successor. It is consumed exactly once; without one
// this is a no-op.
func (a *Attack) Upgrade() bool {
	if a.successor == nil {
		return false
	}
	*a = *a.successor
	return true
}

// Tier is the zero-based position of this attack in its upgrade chain.
func (a *Attack) Tier() int {
	return a.tier
}

// Tiers counts this attack and every successor.
func (a *Attack) Tiers() int {
	n := 0
	for at := a; at != nil; at = at.successor {
		n++
	}
	return n + a.tier
}

// --- Teleport ---

// Teleport is the ultimate: while engaged the player is leashed to a square
// of the given radius around where it was engaged.
type Teleport struct {
	Action        Action
	Radius        int
	IncludeOrigin bool
}

func NewTeleport(cooldown, radius int, includeOrigin bool) Teleport {
	return Teleport{Action: NewAction(cooldown), Radius: radius, IncludeOrigin: includeOrigin}
}

// Boundary is the leash around the zero offset.
func (t *Teleport) Boundary() Bounds {
	return SquareBounds(t.Radius)
}

// Deltas lists every offset inside the boundary, row by row.
func (t *Teleport) Deltas() []Position {
	side := 2*t.Radius + 1
	out := make([]Position, 0, side*side)
	for x := -t.Radius; x <= t.Radius; x++ {
		for y := -t.Radius; y <= t.Radius; y++ {
			if x == 0 && y == 0 && !t.IncludeOrigin {
				continue
			}
			out = append(out, Position{X: x, Y: y})
		}
	}
	return out
}
