package tui

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Delay-The-Inevitable/internal/sim"
)

func newTestApp(t *testing.T) (*App, *sim.State, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	screen.SetSize(80, 30)
	t.Cleanup(screen.Fini)

	cfg := sim.DefaultConfig()
	cfg.RotateAttacks = false
	s, err := sim.New(cfg, sim.WithSeed(1))
	if err != nil {
		t.Fatal(err)
	}
	return New(screen, s, nil), s, screen
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func runeAt(screen tcell.Screen, x, y int) rune {
	r, _, _, _ := screen.GetContent(x, y)
	return r
}

// --- Input ---

func TestHandleEvent_VimKeysMove(t *testing.T) {
	app, s, _ := newTestApp(t)
	app.HandleEvent(key('l'))
	app.HandleEvent(key('k'))
	if s.Player() != sim.Pos(1, 1) {
		t.Fatalf("expected (1,1), got %s", s.Player())
	}
	if s.TickCount() != 2 {
		t.Fatalf("expected 2 turns, got %d", s.TickCount())
	}
}

func TestHandleEvent_ArrowsAndWait(t *testing.T) {
	app, s, _ := newTestApp(t)
	app.HandleEvent(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone))
	app.HandleEvent(key('.'))
	if s.Player() != sim.Pos(-1, 0) || s.TickCount() != 2 {
		t.Fatalf("expected (-1,0) after 2 turns, got %s after %d", s.Player(), s.TickCount())
	}
}

func TestHandleEvent_Quit(t *testing.T) {
	app, _, _ := newTestApp(t)
	if app.HandleEvent(key('q')) {
		t.Fatal("q should stop the loop")
	}
	if app.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Fatal("escape should stop the loop")
	}
}

func TestHandleEvent_RestartKillsPlayer(t *testing.T) {
	app, s, _ := newTestApp(t)
	app.HandleEvent(key('r'))
	if !s.Dead() {
		t.Fatal("r should end the run")
	}
}

// --- Drawing ---

func TestDraw_PlayerAtInterpolatedCell(t *testing.T) {
	app, s, screen := newTestApp(t)
	app.HandleEvent(key('d'))
	s.Update(0.5)
	app.Draw()

	x, y := app.CellAt(sim.Pos(1, 0))
	if r := runeAt(screen, x, y); r != '@' {
		t.Fatalf("expected player glyph at %d,%d, got %q", x, y, r)
	}
	ox, oy := app.CellAt(sim.Pos(0, 0))
	if r := runeAt(screen, ox, oy); r == '@' {
		t.Fatal("player glyph left behind at the origin")
	}
}

func TestCellAt_TopLeftIsMaxY(t *testing.T) {
	app, s, _ := newTestApp(t)
	arena := s.Arena()
	x, y := app.CellAt(sim.Pos(arena.Min.X, arena.Max.Y))
	if x != originX || y != originY {
		t.Fatalf("expected top-left at %d,%d, got %d,%d", originX, originY, x, y)
	}
}

func TestBar(t *testing.T) {
	if got := bar(0.5, 4); got != "██░░" {
		t.Fatalf("unexpected bar %q", got)
	}
	if got := bar(7, 2); got != "██" {
		t.Fatalf("ratio should clamp, got %q", got)
	}
}
