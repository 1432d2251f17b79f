// Package tui runs the game in a terminal with tcell, one cell pair per
// tile.
package tui

import (
	"fmt"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Delay-The-Inevitable/internal/sim"
)

const (
	frameTime = time.Second / 30
	originX   = 2
	originY   = 3
	cellW     = 2
)

// App owns the screen and drives a State through a Driver, which is the
// State itself or a replay recorder wrapping it.
type App struct {
	screen tcell.Screen
	state  *sim.State
	driver sim.Driver
	status string
}

// New wraps an initialised screen. A nil driver sends commands straight
// to state.
func New(screen tcell.Screen, state *sim.State, driver sim.Driver) *App {
	if driver == nil {
		driver = state
	}
	return &App{screen: screen, state: state, driver: driver}
}

// Run polls input and redraws at a fixed rate until the player quits.
func (a *App) Run() {
	ticker := time.NewTicker(frameTime)
	defer ticker.Stop()

	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	go a.screen.ChannelEvents(events, quit)

	last := time.Now()
	a.Draw()
	for {
		select {
		case ev := <-events:
			if !a.HandleEvent(ev) {
				close(quit)
				return
			}
		case now := <-ticker.C:
			a.driver.Update(now.Sub(last).Seconds())
			last = now
			a.Draw()
		}
	}
}

// HandleEvent applies one terminal event and reports whether to keep
// running.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.handleKey(ev)
	case *tcell.EventResize:
		a.screen.Sync()
	case nil:
		return false
	}
	return true
}

func (a *App) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		a.driver.Tick(sim.DirUp)
	case tcell.KeyDown:
		a.driver.Tick(sim.DirDown)
	case tcell.KeyLeft:
		a.driver.Tick(sim.DirLeft)
	case tcell.KeyRight:
		a.driver.Tick(sim.DirRight)
	case tcell.KeyEnter:
		a.driver.SelectUpgrade()
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'k':
			a.driver.Tick(sim.DirUp)
		case 's', 'j':
			a.driver.Tick(sim.DirDown)
		case 'a', 'h':
			a.driver.Tick(sim.DirLeft)
		case 'd', 'l':
			a.driver.Tick(sim.DirRight)
		case '.':
			a.driver.Tick(sim.DirNone)
		case ' ':
			a.driver.UseUltimate()
		case 'r':
			a.driver.KillPlayer()
		case 'q':
			return false
		}
	}
	return true
}

// SetStatus shows a line under the HUD, e.g. a store error.
func (a *App) SetStatus(s string) {
	a.status = s
}

// CellAt maps an arena position to its left screen column and row. Y grows
// upwards in the arena and downwards on screen.
func (a *App) CellAt(p sim.Position) (x, y int) {
	arena := a.state.Arena()
	return originX + (p.X-arena.Min.X)*cellW, originY + (arena.Max.Y - p.Y)
}

func rgb(c interface{ RGBA() (r, g, b, a uint32) }) tcell.Color {
	r, g, b, _ := c.RGBA()
	return tcell.NewRGBColor(int32(r>>8), int32(g>>8), int32(b>>8))
}

func roundCell(v sim.Vec2) sim.Position {
	return sim.Pos(int(math.Round(v.X)), int(math.Round(v.Y)))
}

func (a *App) put(p sim.Position, text string, style tcell.Style) {
	if !a.state.Arena().Contains(p) {
		return
	}
	x, y := a.CellAt(p)
	a.puts(x, y, text, style)
}

func (a *App) puts(x, y int, text string, style tcell.Style) {
	for i, r := range []rune(text) {
		a.screen.SetContent(x+i, y, r, nil, style)
	}
}

// Draw renders the whole frame.
func (a *App) Draw() {
	s := a.state
	a.screen.Clear()
	base := tcell.StyleDefault
	if s.Dead() {
		base = base.Dim(true)
	}

	a.puts(0, 0, fmt.Sprintf("Score %d  Best %d  Level %d  T=%d",
		s.Score(), s.Highscore(), s.Level(), s.TickCount()), base.Bold(true))
	a.puts(0, 1, "exp  "+bar(s.ExpRatio(), 20), base.Foreground(tcell.ColorGreen))
	timer := base.Foreground(tcell.ColorYellow)
	if s.MoveTimerFrozen() {
		timer = base.Foreground(tcell.ColorGray)
	}
	a.puts(30, 1, "time "+bar(s.MoveTimeRatio(), 20), timer)

	arena := s.Arena()
	for y := arena.Min.Y; y <= arena.Max.Y; y++ {
		for x := arena.Min.X; x <= arena.Max.X; x++ {
			a.put(sim.Pos(x, y), "· ", base.Foreground(tcell.ColorDarkGray))
		}
	}
	for _, p := range s.UltimateTargets() {
		a.put(p, "::", base.Foreground(tcell.ColorAqua))
	}
	for _, sp := range s.PendingSpawns() {
		a.put(sp.Position, "!!", base.Foreground(rgb(sp.Color)))
	}
	for _, p := range s.DamageMarks() {
		a.put(p, "><", base.Foreground(tcell.ColorWhite))
	}
	for _, e := range s.Enemies() {
		a.put(roundCell(e.Render), enemyGlyph(e.Type), base.Foreground(rgb(e.Color)))
	}
	a.put(roundCell(s.PlayerRender()), "@@", base.Foreground(rgb(s.PlayerColor())).Bold(true))

	row := originY + arena.Height() + 1
	row = a.drawAttacks(row, base)
	if m, open := s.Menu(); open {
		row = a.drawMenu(row+1, m, base)
	}
	if s.Dead() {
		a.puts(0, row+1, "GAME OVER", base.Foreground(tcell.ColorRed).Bold(true))
	}
	if a.status != "" {
		a.puts(0, row+2, a.status, base.Foreground(tcell.ColorGray))
	}
	a.screen.Show()
}

func (a *App) drawAttacks(row int, base tcell.Style) int {
	s := a.state
	attacks := s.Attacks()
	for i := 0; i < s.MaxAttackSlots(); i++ {
		var line string
		switch {
		case i < len(attacks):
			at := attacks[i]
			ready := 1 - float64(at.Remaining)/float64(max(at.Total, 1))
			line = fmt.Sprintf("#%d tier %d/%d %s", i+1, at.Tier+1, at.Tiers, bar(ready, 10))
		case i < s.AttackSlots():
			line = fmt.Sprintf("#%d free", i+1)
		default:
			line = fmt.Sprintf("#%d locked until %d", i+1, s.SlotThreshold(i))
		}
		a.puts(0, row+i, line, base)
	}
	rem, total := s.UltimateCooldown()
	ult := fmt.Sprintf("ult %s", bar(1-float64(rem)/float64(max(total, 1)), 10))
	if s.UltimateActive() {
		ult = "ult ACTIVE"
	}
	a.puts(0, row+s.MaxAttackSlots(), ult, base.Foreground(tcell.ColorAqua))
	return row + s.MaxAttackSlots() + 1
}

func (a *App) drawMenu(row int, m sim.UpgradeMenu, base tcell.Style) int {
	a.puts(0, row, fmt.Sprintf("LEVEL UP (%d left)  left/right, enter", m.LevelUpsLeft), base.Bold(true))
	for i, o := range m.Options {
		style := base
		prefix := "  "
		if i == m.Choice {
			style = style.Reverse(true)
			prefix = "> "
		}
		a.puts(0, row+1+i, prefix+o.Label(), style)
	}
	return row + 1 + len(m.Options)
}

func enemyGlyph(t sim.EnemyType) string {
	switch t {
	case sim.EnemyFrog:
		return "Fr"
	case sim.EnemyKing:
		return "Kg"
	default:
		return "Ax"
	}
}

func bar(ratio float64, width int) string {
	n := int(math.Round(min(max(ratio, 0), 1) * float64(width)))
	out := make([]rune, width)
	for i := range out {
		if i < n {
			out[i] = '█'
		} else {
			out[i] = '░'
		}
	}
	return string(out)
}
