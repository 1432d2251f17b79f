package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Delay-The-Inevitable/internal/sim"
)

const (
	panelPad    = 8
	panelLineH  = 16
	slotHeight  = 72
	previewCell = 7 // pattern preview cell size in pixels
	barHeight   = 8
)

var (
	panelBg     = color.RGBA{R: 16, G: 16, B: 26, A: 235}
	panelBorder = color.RGBA{R: 60, G: 60, B: 100, A: 255}
	textColor   = color.RGBA{R: 220, G: 220, B: 235, A: 255}
	dimText     = color.RGBA{R: 120, G: 120, B: 140, A: 255}
	expColor    = color.RGBA{R: 90, G: 200, B: 110, A: 255}
	timerColor  = color.RGBA{R: 240, G: 190, B: 70, A: 255}
	frozenColor = color.RGBA{R: 110, G: 110, B: 130, A: 255}
	readyColor  = color.RGBA{R: 120, G: 220, B: 255, A: 255}
)

// drawBar draws a horizontal fill bar with ratio clamped to [0, 1].
func drawBar(dst *ebiten.Image, x, y, w, h float32, ratio float64, c color.RGBA) {
	r := float32(min(max(ratio, 0), 1))
	vector.FillRect(dst, x, y, w, h, color.RGBA{R: 34, G: 34, B: 50, A: 255}, false)
	vector.FillRect(dst, x, y, w*r, h, c, false)
	vector.StrokeRect(dst, x, y, w, h, 1, panelBorder, false)
}

// drawHUD renders score, level and the two bars above the arena.
func (g *Game) drawHUD(screen *ebiten.Image) {
	s := g.state
	x := float32(g.offX)
	y := float32(borderWidth)
	w := float32(g.arenaW)

	left := fmt.Sprintf("SCORE %d   BEST %d", s.Score(), s.Highscore())
	g.hud.draw(screen, left, x, y, textColor, 1)
	right := fmt.Sprintf("LVL %d   T=%d", s.Level(), s.TickCount())
	g.hud.draw(screen, right, x+w-g.hud.width(right), y, textColor, 1)

	drawBar(screen, x, y+18, w, barHeight, s.ExpRatio(), expColor)

	tc := timerColor
	switch {
	case s.MoveTimerFrozen():
		tc = frozenColor
	case s.UltimateActive():
		tc = leashColor
	}
	drawBar(screen, x, y+32, w, barHeight, s.MoveTimeRatio(), tc)
}

// drawAttackPanel lists every attack slot with a pattern preview and
// cooldown bar, followed by the ultimate.
func (g *Game) drawAttackPanel(screen *ebiten.Image, px, py int) {
	s := g.state
	x, y := float32(px), float32(py)
	w := float32(sidePanelWidth - borderWidth)
	slots := s.MaxAttackSlots()
	h := float32((slots+1)*slotHeight + panelPad*2 + panelLineH)

	vector.FillRect(screen, x, y, w, h, panelBg, false)
	vector.StrokeRect(screen, x, y, w, h, 1, panelBorder, false)
	g.hud.draw(screen, "ATTACKS", x+panelPad, y+panelPad, dimText, 1)

	attacks := s.Attacks()
	rowY := y + panelPad + panelLineH
	for i := 0; i < slots; i++ {
		switch {
		case i < len(attacks):
			g.drawAttackSlot(screen, x+panelPad, rowY, w-2*panelPad, i, attacks[i])
		case i < s.AttackSlots():
			g.hud.draw(screen, fmt.Sprintf("#%d  free slot", i+1), x+panelPad, rowY+4, dimText, 1)
		default:
			g.hud.draw(screen, fmt.Sprintf("#%d  locked until %d", i+1, s.SlotThreshold(i)), x+panelPad, rowY+4, dimText, 1)
		}
		rowY += slotHeight
	}

	rem, total := s.UltimateCooldown()
	label := fmt.Sprintf("TELEPORT  r=%d", s.UltimateRadius())
	if s.UltimateActive() {
		label += "  ACTIVE"
	}
	g.hud.draw(screen, label, x+panelPad, rowY+4, leashColor, 1)
	drawBar(screen, x+panelPad, rowY+24, w-2*panelPad, barHeight, readiness(rem, total), leashColor)
}

func readiness(remaining, total int) float64 {
	if total <= 0 {
		return 1
	}
	return 1 - float64(remaining)/float64(total)
}

func (g *Game) drawAttackSlot(screen *ebiten.Image, x, y, w float32, i int, a sim.AttackView) {
	g.hud.draw(screen, fmt.Sprintf("#%d  tier %d/%d  cd %d", i+1, a.Tier+1, a.Tiers, a.Total), x, y+4, textColor, 1)
	c := timerColor
	if a.Remaining <= 1 {
		c = readyColor
	}
	drawBar(screen, x, y+22, w-60, barHeight, readiness(a.Remaining, a.Total), c)

	// Pattern preview, player cell in the middle.
	const span = 4
	cx := x + w - 30
	cy := y + 40
	vector.FillRect(screen, cx-previewCell/2, cy-previewCell/2, previewCell, previewCell, sim.PlayerColor, false)
	for _, p := range a.Pattern {
		if iabs(p.X) > span || iabs(p.Y) > span {
			continue
		}
		px := cx + float32(p.X)*previewCell - previewCell/2
		py := cy - float32(p.Y)*previewCell - previewCell/2
		vector.FillRect(screen, px, py, previewCell-1, previewCell-1, markColor, false)
	}
}

func iabs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// drawUpgradeMenu renders the level-up cards over the arena.
func (g *Game) drawUpgradeMenu(screen *ebiten.Image, m sim.UpgradeMenu) {
	ox, oy := float32(g.offX), float32(g.offY)
	aw, ah := float32(g.arenaW), float32(g.arenaH)
	vector.FillRect(screen, ox, oy, aw, ah, color.NRGBA{R: 0, G: 0, B: 0, A: 150}, false)

	title := fmt.Sprintf("LEVEL UP  (%d left)", m.LevelUpsLeft)
	g.hud.draw(screen, title, ox+aw/2-g.hud.width(title)/2, oy+ah/3-28, textColor, 1)

	n := float32(len(m.Options))
	gap := float32(10)
	cardW := (aw - gap*(n+1)) / n
	cardH := float32(64)
	cy := oy + ah/3
	for i, o := range m.Options {
		cx := ox + gap + float32(i)*(cardW+gap)
		bg, border := panelBg, panelBorder
		if i == m.Choice {
			bg = color.RGBA{R: 40, G: 40, B: 70, A: 245}
			border = timerColor
		}
		vector.FillRect(screen, cx, cy, cardW, cardH, bg, false)
		vector.StrokeRect(screen, cx, cy, cardW, cardH, 2, border, false)
		g.drawWrapped(screen, o.Label(), cx+6, cy+8, cardW-12)
	}
	hint := "left/right to choose, enter to take"
	g.hud.draw(screen, hint, ox+aw/2-g.hud.width(hint)/2, cy+cardH+12, dimText, 1)
}

// drawWrapped breaks s on spaces to fit width.
func (g *Game) drawWrapped(screen *ebiten.Image, s string, x, y, width float32) {
	line := ""
	flush := func() {
		g.hud.draw(screen, line, x, y, textColor, 1)
		y += panelLineH
		line = ""
	}
	word := ""
	for _, r := range s + " " {
		if r != ' ' {
			word += string(r)
			continue
		}
		cand := word
		if line != "" {
			cand = line + " " + word
		}
		if line != "" && g.hud.width(cand) > width {
			flush()
			cand = word
		}
		line = cand
		word = ""
	}
	if line != "" {
		flush()
	}
}
