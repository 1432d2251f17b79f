package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Delay-The-Inevitable/internal/sim"
)

var (
	tileDark   = color.RGBA{R: 22, G: 22, B: 34, A: 255}
	tileLight  = color.RGBA{R: 28, G: 28, B: 42, A: 255}
	seamTint   = color.RGBA{R: 60, G: 40, B: 90, A: 255}
	markColor  = color.RGBA{R: 255, G: 240, B: 200, A: 255}
	leashColor = color.RGBA{R: 80, G: 200, B: 230, A: 200}
	deadColor  = color.RGBA{R: 90, G: 90, B: 100, A: 255}
)

// tileOrigin maps a render-space position to the top-left pixel of its tile
// inside the arena buffer. Y grows upwards in the arena.
func (g *Game) tileOrigin(v sim.Vec2) (float32, float32) {
	a := g.state.Arena()
	x := (v.X - float64(a.Min.X)) * tileSize
	y := (float64(a.Max.Y) - v.Y) * tileSize
	return float32(x), float32(y)
}

// cellCenter is the window-space centre of cell p.
func (g *Game) cellCenter(p sim.Position) (float32, float32) {
	x, y := g.tileOrigin(p.Vec())
	return float32(g.offX) + x + tileSize/2, float32(g.offY) + y + tileSize/2
}

func (g *Game) drawArena(buf *ebiten.Image) {
	s := g.state
	a := s.Arena()

	// Checkerboard; the outer ring is tinted where wrapping crosses over.
	for y := a.Min.Y; y <= a.Max.Y; y++ {
		for x := a.Min.X; x <= a.Max.X; x++ {
			c := tileDark
			if (x+y)%2 == 0 {
				c = tileLight
			}
			if x == a.Min.X || x == a.Max.X || y == a.Min.Y || y == a.Max.Y {
				c = blend(c, seamTint, 0.35)
			}
			tx, ty := g.tileOrigin(sim.Pos(x, y).Vec())
			vector.FillRect(buf, tx, ty, tileSize, tileSize, c, false)
		}
	}

	if s.UltimateActive() {
		g.drawUltimate(buf)
	}
	g.drawSpawnWarnings(buf)
	g.drawDamageMarks(buf)

	for _, e := range s.Enemies() {
		g.drawUnit(buf, e.Render, e.Color, 0.72)
	}
	pc := s.PlayerColor()
	if s.Dead() {
		pc = deadColor
	}
	g.drawUnit(buf, s.PlayerRender(), pc, 0.8)
}

// drawUnit draws a square filling scale of a tile, centred on v.
func (g *Game) drawUnit(buf *ebiten.Image, v sim.Vec2, c color.RGBA, scale float32) {
	tx, ty := g.tileOrigin(v)
	side := tileSize * scale
	inset := (tileSize - side) / 2
	vector.FillRect(buf, tx+inset, ty+inset, side, side, c, false)
	vector.StrokeRect(buf, tx+inset, ty+inset, side, side, 1.5, blend(c, color.RGBA{A: 255}, 0.4), false)
}

func (g *Game) drawDamageMarks(buf *ebiten.Image) {
	const pad = 12
	for _, p := range g.state.DamageMarks() {
		if !g.state.Arena().Contains(p) {
			continue
		}
		tx, ty := g.tileOrigin(p.Vec())
		vector.StrokeLine(buf, tx+pad, ty+pad, tx+tileSize-pad, ty+tileSize-pad, 2.5, markColor, false)
		vector.StrokeLine(buf, tx+tileSize-pad, ty+pad, tx+pad, ty+tileSize-pad, 2.5, markColor, false)
	}
}

// drawSpawnWarnings pulses the corner where an enemy appears next turn.
func (g *Game) drawSpawnWarnings(buf *ebiten.Image) {
	pulse := float32(g.frame%40) / 40
	for _, sp := range g.state.PendingSpawns() {
		tx, ty := g.tileOrigin(sp.Position.Vec())
		c := color.NRGBA{R: sp.Color.R, G: sp.Color.G, B: sp.Color.B, A: uint8(60 + 120*pulse)}
		vector.FillRect(buf, tx+4, ty+4, tileSize-8, tileSize-8, c, false)
		vector.StrokeRect(buf, tx+2, ty+2, tileSize-4, tileSize-4, 2, sp.Color, false)
	}
}

func (g *Game) drawUltimate(buf *ebiten.Image) {
	for _, p := range g.state.UltimateTargets() {
		cx, cy := g.tileOrigin(p.Vec())
		vector.FillCircle(buf, cx+tileSize/2, cy+tileSize/2, 5, leashColor, false)
	}
	// The leash may hang past an edge; the buffer clips it.
	leash := g.state.UltimateLeash()
	x0, y0 := g.tileOrigin(sim.Vec2{X: float64(leash.Min.X), Y: float64(leash.Max.Y)})
	vector.StrokeRect(buf, x0, y0, float32(leash.Width()*tileSize), float32(leash.Height()*tileSize), 2, leashColor, false)
}

// blend mixes b into a by t.
func blend(a, b color.RGBA, t float32) color.RGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(float32(x)*(1-t) + float32(y)*t)
	}
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}
