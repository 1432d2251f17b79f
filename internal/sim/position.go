package sim

import (
	"fmt"
	"math"
)

// Position is a discrete grid cell. Equality is exact.
type Position struct {
	X int
	Y int
}

// Pos is a convenience constructor for Position.
func Pos(x, y int) Position {
	return Position{X: x, Y: y}
}

// Unit directions accepted by State.Tick.
var (
	DirNone  = Position{}
	DirLeft  = Position{X: -1}
	DirRight = Position{X: 1}
	DirDown  = Position{Y: -1}
	DirUp    = Position{Y: 1}
)

func (p Position) Add(o Position) Position {
	return Position{X: p.X + o.X, Y: p.Y + o.Y}
}

func (p Position) Sub(o Position) Position {
	return Position{X: p.X - o.X, Y: p.Y - o.Y}
}

func (p Position) Scale(k int) Position {
	return Position{X: p.X * k, Y: p.Y * k}
}

// Sign returns the per-axis sign of p.
func (p Position) Sign() Position {
	return Position{X: sign(p.X), Y: sign(p.Y)}
}

// Vec converts the cell to render-space coordinates (one tile = 1.0).
func (p Position) Vec() Vec2 {
	return Vec2{X: float64(p.X), Y: float64(p.Y)}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Vec2 is a continuous render-space position.
type Vec2 struct {
	X float64
	Y float64
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vec2) Scale(k float64) Vec2 {
	return Vec2{X: v.X * k, Y: v.Y * k}
}

func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Bounds is an inclusive axis-aligned integer rectangle.
type Bounds struct {
	Min Position
	Max Position
}

// NewBounds builds bounds from two opposite corners in any order.
func NewBounds(a, b Position) Bounds {
	return Bounds{
		Min: Position{X: min(a.X, b.X), Y: min(a.Y, b.Y)},
		Max: Position{X: max(a.X, b.X), Y: max(a.Y, b.Y)},
	}
}

// SquareBounds is the symmetric box [-radius, radius] on both axes.
func SquareBounds(radius int) Bounds {
	return Bounds{Min: Position{X: -radius, Y: -radius}, Max: Position{X: radius, Y: radius}}
}

func (b Bounds) Contains(p Position) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// Width is the wraparound period along x.
func (b Bounds) Width() int {
	return b.Max.X - b.Min.X + 1
}

// Height is the wraparound period along y.
func (b Bounds) Height() int {
	return b.Max.Y - b.Min.Y + 1
}

// Corners returns the four corner cells: bottom-left, bottom-right, top-right, top-left.
func (b Bounds) Corners() [4]Position {
	return [4]Position{
		{X: b.Min.X, Y: b.Min.Y},
		{X: b.Max.X, Y: b.Min.Y},
		{X: b.Max.X, Y: b.Max.Y},
		{X: b.Min.X, Y: b.Max.Y},
	}
}

func (b Bounds) Translate(d Position) Bounds {
	return Bounds{Min: b.Min.Add(d), Max: b.Max.Add(d)}
}

func (b Bounds) String() string {
	return fmt.Sprintf("%s-%s", b.Min, b.Max)
}

// --- Wraparound and clamping ---

// WrapCoord maps pos into [lo, hi] by whole periods of hi-lo+1 and reports
// whether any wrap happened.
func WrapCoord(pos, lo, hi int) (int, bool) {
	if pos >= lo && pos <= hi {
		return pos, false
	}
	period := hi - lo + 1
	off := (pos - lo) % period
	if off < 0 {
		off += period
	}
	return lo + off, true
}

// WrapPos wraps both axes; the jump flag is set if either axis wrapped.
func WrapPos(p Position, b Bounds) (Position, bool) {
	x, jx := WrapCoord(p.X, b.Min.X, b.Max.X)
	y, jy := WrapCoord(p.Y, b.Min.Y, b.Max.Y)
	return Position{X: x, Y: y}, jx || jy
}

// ClampPos hard-clamps p into b with no wraparound.
func ClampPos(p Position, b Bounds) Position {
	return Position{
		X: clampInt(p.X, b.Min.X, b.Max.X),
		Y: clampInt(p.Y, b.Min.Y, b.Max.Y),
	}
}

// ClampWrappedPos keeps p (a cell inside arena) inside leash, where leash may
// extend past the arena edges and so straddle the wrap seam. The result is
// always inside arena.
func ClampWrappedPos(p Position, leash, arena Bounds) Position {
	x := clampWrappedCoord(p.X, leash.Min.X, leash.Max.X, arena.Min.X, arena.Max.X)
	y := clampWrappedCoord(p.Y, leash.Min.Y, leash.Max.Y, arena.Min.Y, arena.Max.Y)
	return Position{X: x, Y: y}
}

func clampWrappedCoord(pos, lo, hi, arenaLo, arenaHi int) int {
	period := arenaHi - arenaLo + 1
	if hi-lo+1 >= period {
		return pos
	}
	// Representative of pos in [lo, lo+period).
	rep := lo + mod(pos-lo, period)
	if rep <= hi {
		return pos
	}
	// rep sits in the gap (hi, lo+period). Snap to the nearer leash edge;
	// the low edge is reached by wrapping forward one period.
	toHi := rep - hi
	toLo := lo + period - rep
	target := hi
	if toLo < toHi {
		target = lo
	}
	wrapped, _ := WrapCoord(target, arenaLo, arenaHi)
	return wrapped
}

func mod(a, m int) int {
	r := a % m
	if r < 0 {
		r += m
	}
	return r
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
