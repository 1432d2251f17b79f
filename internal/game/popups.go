package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Delay-The-Inevitable/internal/sim"
)

// popupLifetime is how many frames a popup stays visible (~1 second).
const popupLifetime = 60

// popupRise is how far a popup drifts up over its lifetime, in pixels.
const popupRise = 28

// Popup is floating text anchored to an arena cell.
type Popup struct {
	At    sim.Position
	Text  string
	Color color.RGBA
	age   int
	yOff  float32 // stacking offset for popups on the same cell
}

// Popups collects short-lived callouts from game events.
type Popups struct {
	active []*Popup
	player func() sim.Position
}

// NewPopups anchors player-level callouts (level up, best score) to the
// position reported by player.
func NewPopups(player func() sim.Position) *Popups {
	return &Popups{player: player}
}

func (p *Popups) add(at sim.Position, text string, c color.RGBA) {
	var yOff float32
	for _, b := range p.active {
		if b.At == at {
			yOff -= 14
		}
	}
	p.active = append(p.active, &Popup{At: at, Text: text, Color: c, yOff: yOff})
}

// OnEvent implements sim.Listener.
func (p *Popups) OnEvent(e sim.Event) {
	switch e.Kind {
	case sim.EventEnemyKilled:
		p.add(e.Pos, "+1", color.RGBA{R: 255, G: 230, B: 120, A: 255})
	case sim.EventLevelUp:
		p.add(p.player(), "LEVEL UP", logColLevel)
	case sim.EventHighscore:
		// once per life is enough
		for _, b := range p.active {
			if b.Text == "NEW BEST" {
				return
			}
		}
		p.add(p.player(), "NEW BEST", logColUpgrade)
	case sim.EventReset:
		p.active = p.active[:0]
	}
}

// Update ages popups by one frame and drops expired ones.
func (p *Popups) Update() {
	kept := p.active[:0]
	for _, b := range p.active {
		b.age++
		if b.age < popupLifetime {
			kept = append(kept, b)
		}
	}
	p.active = kept
}

// Active returns the live popups.
func (p *Popups) Active() []*Popup {
	return p.active
}

// Draw renders every popup. cellCenter maps an arena cell to screen space.
func (p *Popups) Draw(screen *ebiten.Image, hud *hudText, cellCenter func(sim.Position) (float32, float32)) {
	for _, b := range p.active {
		progress := float32(b.age) / popupLifetime
		alpha := float32(1)
		if progress > 0.6 {
			alpha = 1 - (progress-0.6)/0.4
		}
		cx, cy := cellCenter(b.At)
		y := cy - float32(tileSize)/2 - progress*popupRise + b.yOff
		w := hud.width(b.Text)
		bg := color.NRGBA{R: 10, G: 10, B: 16, A: uint8(170 * alpha)}
		vector.FillRect(screen, cx-w/2-3, y-2, w+6, 16, bg, false)
		hud.draw(screen, b.Text, cx-w/2, y, b.Color, alpha)
	}
}
