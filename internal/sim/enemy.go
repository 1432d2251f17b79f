package sim

import (
	"fmt"
	"image/color"
	"math"
)

// EnemyType is a dense enum; it doubles as an index into per-type tables.
type EnemyType int

const (
	EnemyAttacker EnemyType = iota
	EnemyFrog
	EnemyKing
	enemyTypeCount
)

// EnemyTypes lists every enemy type in index order.
func EnemyTypes() []EnemyType {
	return []EnemyType{EnemyAttacker, EnemyFrog, EnemyKing}
}

func (t EnemyType) String() string {
	switch t {
	case EnemyAttacker:
		return "attacker"
	case EnemyFrog:
		return "frog"
	case EnemyKing:
		return "king"
	default:
		return "unknown"
	}
}

func ParseEnemyType(s string) (EnemyType, error) {
	for _, t := range EnemyTypes() {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown enemy type %q", s)
}

// Enemy is one live hostile unit. Its id is its index in State.Enemies.
type Enemy struct {
	Type          EnemyType
	Color         color.RGBA
	Position      Position
	Interpolation Interpolation
	Movement      Movement
	Dead          bool // removed at the end of the combat pass
}

// SpawnPrefab is the per-type spawn template and countdown.
type SpawnPrefab struct {
	Movement  Movement
	MinScore  int
	NextSpawn int
	Color     color.RGBA
	// Cooldowns maps the live sibling count to a base cooldown in turns.
	Cooldowns map[int]float64
	// LargeCooldown is used once the sibling count runs past the table.
	LargeCooldown float64
	// KilledSiblings only grows; every kill shortens future cooldowns.
	KilledSiblings int
}

// RefreshCooldown schedules the next spawn given the live sibling count.
// Each recorded kill removes decay (a fraction) from the base cooldown; the
// result never drops below minCooldown turns.
func (p *SpawnPrefab) RefreshCooldown(siblings int, decay float64, minCooldown int) {
	base, ok := p.Cooldowns[siblings]
	if !ok {
		base = p.LargeCooldown
	}
	mult := 1 - float64(p.KilledSiblings)*decay
	next := int(math.Ceil(base * mult))
	if next < minCooldown {
		next = minCooldown
	}
	p.NextSpawn = next
}
