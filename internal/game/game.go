package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/Garsondee/Delay-The-Inevitable/internal/sim"
)

// borderWidth is the pixel gap between the window edge and the arena.
const borderWidth = 24

// hudHeight is the strip above the arena holding score and timer bars.
const hudHeight = 56

// tileSize is the side of one arena cell in pixels.
const tileSize = 48

// sidePanelWidth holds the attack panel between the arena and the log.
const sidePanelWidth = 280

// statusFrames is how long a status line stays up (~3 seconds).
const statusFrames = 180

// Game is the ebiten host. It reads observers from state and sends every
// command through driver, which is the State itself or a replay recorder.
type Game struct {
	state  *sim.State
	driver sim.Driver

	width, height int
	offX, offY    int // arena top-left in window pixels
	arenaW        int
	arenaH        int

	events  *EventLog
	popups  *Popups
	tracker *sim.RunTracker
	hud     *hudText
	keys    keyEdges

	// Offscreen buffer for the arena so wrap animations clip at the edges.
	arenaBuf *ebiten.Image

	status    string
	statusAge int
	frame     int

	// OnRunEnd receives the report of every finished life, e.g. to store it.
	OnRunEnd func(sim.RunReport)
}

// New builds a host for state. A nil driver sends commands straight to the
// State.
func New(state *sim.State, driver sim.Driver) *Game {
	if driver == nil {
		driver = state
	}
	arena := state.Arena()
	g := &Game{
		state:   state,
		driver:  driver,
		arenaW:  arena.Width() * tileSize,
		arenaH:  arena.Height() * tileSize,
		offX:    borderWidth,
		offY:    borderWidth + hudHeight,
		events:  NewEventLog(),
		tracker: sim.NewRunTracker(state.Seed()),
		hud:     newHUDText(),
		keys:    newKeyEdges(),
	}
	g.width = g.offX + g.arenaW + borderWidth + sidePanelWidth + logPanelWidth
	g.height = max(g.offY+g.arenaH+borderWidth, 640)
	g.popups = NewPopups(state.Player)
	g.arenaBuf = ebiten.NewImage(g.arenaW, g.arenaH)

	// tracker first: the run-end hook reads its report
	state.Subscribe(g.tracker)
	state.Subscribe(g.events)
	state.Subscribe(g.popups)
	state.Subscribe(sim.ListenerFunc(g.onEvent))
	return g
}

func (g *Game) onEvent(e sim.Event) {
	if e.Kind == sim.EventPlayerDied && g.OnRunEnd != nil {
		g.OnRunEnd(g.tracker.Report())
	}
}

// SetStatus shows msg under the arena for a few seconds.
func (g *Game) SetStatus(msg string) {
	g.status = msg
	g.statusAge = 0
}

// Events exposes the event log, e.g. for tests.
func (g *Game) Events() *EventLog {
	return g.events
}

func (g *Game) Update() error {
	g.frame++
	for _, cmd := range g.keys.poll(ebiten.IsKeyPressed) {
		if cmd == cmdQuit {
			return ebiten.Termination
		}
		g.apply(cmd)
	}
	g.driver.Update(1 / float64(ebiten.TPS()))
	g.popups.Update()
	if g.status != "" {
		g.statusAge++
		if g.statusAge > statusFrames {
			g.status = ""
		}
	}
	return nil
}

func (g *Game) apply(cmd command) {
	switch cmd {
	case cmdUp:
		g.driver.Tick(sim.DirUp)
	case cmdDown:
		g.driver.Tick(sim.DirDown)
	case cmdLeft:
		g.driver.Tick(sim.DirLeft)
	case cmdRight:
		g.driver.Tick(sim.DirRight)
	case cmdWait:
		g.driver.Tick(sim.DirNone)
	case cmdUltimate:
		g.driver.UseUltimate()
	case cmdSelect:
		g.driver.SelectUpgrade()
	case cmdRestart:
		g.driver.KillPlayer()
	case cmdCopy:
		g.copySummary()
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 10, G: 10, B: 16, A: 255})

	g.drawHUD(screen)

	g.arenaBuf.Clear()
	g.drawArena(g.arenaBuf)
	var blit ebiten.DrawImageOptions
	blit.GeoM.Translate(float64(g.offX), float64(g.offY))
	screen.DrawImage(g.arenaBuf, &blit)

	ox, oy := float32(g.offX), float32(g.offY)
	aw, ah := float32(g.arenaW), float32(g.arenaH)
	vector.StrokeRect(screen, ox-1, oy-1, aw+2, ah+2, 2.0, color.RGBA{R: 70, G: 70, B: 110, A: 255}, false)

	g.popups.Draw(screen, g.hud, g.cellCenter)

	panelX := g.offX + g.arenaW + borderWidth
	g.drawAttackPanel(screen, panelX, g.offY)
	if m, open := g.state.Menu(); open {
		g.drawUpgradeMenu(screen, m)
	}

	// Fade covers the arena only; the HUD stays readable.
	if a := min(max(g.state.FadeAlpha(), 0), 1); a > 0 {
		vector.FillRect(screen, ox, oy, aw, ah, color.NRGBA{A: uint8(a * 255)}, false)
	}
	if g.state.Dead() {
		msg := "GAME OVER"
		w := g.hud.width(msg)
		g.hud.draw(screen, msg, ox+aw/2-w/2, oy+ah/2-6, color.RGBA{R: 240, G: 80, B: 70, A: 255}, 1)
	}
	if g.status != "" {
		g.hud.draw(screen, g.status, ox, oy+ah+6, color.RGBA{R: 170, G: 170, B: 190, A: 255}, 1)
	}

	g.events.Draw(screen, g.width-logPanelWidth, g.height)
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

// WindowSize is the native window size for SetWindowSize.
func (g *Game) WindowSize() (int, int) {
	return g.width, g.height
}

// hudText draws with the 7x13 bitmap face.
type hudText struct {
	face text.Face
}

func newHUDText() *hudText {
	return &hudText{face: text.NewGoXFace(basicfont.Face7x13)}
}

func (h *hudText) width(s string) float32 {
	w, _ := text.Measure(s, h.face, 0)
	return float32(w)
}

func (h *hudText) draw(dst *ebiten.Image, s string, x, y float32, c color.Color, alpha float32) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(c)
	op.ColorScale.ScaleAlpha(alpha)
	text.Draw(dst, s, h.face, op)
}
