package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Delay-The-Inevitable/internal/sim"
)

const (
	logPanelWidth = 300
	logMaxEntries = 60
	logLineHeight = 14
)

// LogEntry is a single line in the event log.
type LogEntry struct {
	Tick    int
	Label   string // e.g. "KILL", "LVL"
	Color   color.RGBA
	Message string
}

var (
	logColKill    = color.RGBA{R: 230, G: 80, B: 70, A: 255}
	logColSpawn   = color.RGBA{R: 200, G: 140, B: 60, A: 255}
	logColLevel   = color.RGBA{R: 240, G: 210, B: 70, A: 255}
	logColUpgrade = color.RGBA{R: 120, G: 220, B: 120, A: 255}
	logColUlt     = color.RGBA{R: 80, G: 200, B: 230, A: 255}
	logColState   = color.RGBA{R: 170, G: 170, B: 190, A: 255}
)

// EventLog is a ring buffer of game events rendered in a side panel. It
// listens to the State directly.
type EventLog struct {
	entries []LogEntry
	head    int
	count   int
}

func NewEventLog() *EventLog {
	return &EventLog{entries: make([]LogEntry, logMaxEntries)}
}

// Add appends an entry, overwriting the oldest once full.
func (el *EventLog) Add(tick int, label string, c color.RGBA, msg string) {
	el.entries[el.head] = LogEntry{Tick: tick, Label: label, Color: c, Message: msg}
	el.head = (el.head + 1) % logMaxEntries
	if el.count < logMaxEntries {
		el.count++
	}
}

// Recent returns entries oldest first.
func (el *EventLog) Recent() []LogEntry {
	result := make([]LogEntry, el.count)
	for i := 0; i < el.count; i++ {
		idx := (el.head - el.count + i + logMaxEntries) % logMaxEntries
		result[i] = el.entries[idx]
	}
	return result
}

// OnEvent implements sim.Listener. Per-turn noise (moves, strikes, queued
// spawns) is left out.
func (el *EventLog) OnEvent(e sim.Event) {
	switch e.Kind {
	case sim.EventEnemyKilled:
		el.Add(e.Tick, "KILL", logColKill, fmt.Sprintf("%s at %s, score %d", e.Enemy, e.Pos, e.Value))
	case sim.EventEnemySpawned:
		el.Add(e.Tick, "SPWN", logColSpawn, fmt.Sprintf("%s enters at %s", e.Enemy, e.Pos))
	case sim.EventLevelUp:
		el.Add(e.Tick, "LVL", logColLevel, fmt.Sprintf("reached level %d", e.Value))
	case sim.EventUpgradeSelected:
		msg := e.Detail
		if t, err := sim.ParseUpgradeType(e.Detail); err == nil {
			msg = t.Title()
			if t.PerAttack() {
				msg += fmt.Sprintf(" #%d", e.Value+1)
			}
		}
		el.Add(e.Tick, "UPG", logColUpgrade, msg)
	case sim.EventUpgradeSkipped:
		el.Add(e.Tick, "UPG", logColUpgrade, "nothing left to upgrade")
	case sim.EventUltimateOn:
		el.Add(e.Tick, "ULT", logColUlt, fmt.Sprintf("teleport armed at %s", e.Pos))
	case sim.EventUltimateOff:
		el.Add(e.Tick, "ULT", logColUlt, fmt.Sprintf("landed at %s", e.Pos))
	case sim.EventWrap:
		el.Add(e.Tick, "WRAP", logColState, fmt.Sprintf("wrapped to %s", e.Pos))
	case sim.EventHighscore:
		el.Add(e.Tick, "BEST", logColLevel, fmt.Sprintf("new best %d", e.Value))
	case sim.EventPlayerDied:
		el.Add(e.Tick, "DEAD", logColKill, fmt.Sprintf("%s, score %d", e.Detail, e.Value))
	case sim.EventReset:
		el.Add(e.Tick, "NEW", logColState, "new game")
	case sim.EventInvariant:
		el.Add(e.Tick, "WARN", logColState, e.Detail)
	}
}

// Draw renders the log panel with its left edge at panelX.
func (el *EventLog) Draw(screen *ebiten.Image, panelX int, panelH int) {
	vector.FillRect(screen, float32(panelX), 0, float32(logPanelWidth), float32(panelH), color.RGBA{R: 12, G: 12, B: 18, A: 248}, false)
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(panelH), 1.0, color.RGBA{R: 60, G: 60, B: 90, A: 255}, false)

	vector.FillRect(screen, float32(panelX), 0, float32(logPanelWidth), 16, color.RGBA{R: 24, G: 24, B: 40, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "EVENTS", panelX+8, 0)
	vector.StrokeLine(screen, float32(panelX), 16, float32(panelX+logPanelWidth), 16, 1.0, color.RGBA{R: 60, G: 60, B: 100, A: 200}, false)

	entries := el.Recent()
	maxVisible := (panelH - 24) / logLineHeight
	if len(entries) > maxVisible {
		entries = entries[len(entries)-maxVisible:]
	}

	const recent = 3
	y := 20
	for i, e := range entries {
		if i >= len(entries)-recent {
			vector.FillRect(screen, float32(panelX+2), float32(y), float32(logPanelWidth-4), float32(logLineHeight), color.RGBA{R: 30, G: 30, B: 48, A: 160}, false)
		}
		vector.FillRect(screen, float32(panelX+5), float32(y+4), 3, 6, e.Color, false)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%4d %-4s %s", e.Tick, e.Label, e.Message), panelX+12, y-1)
		y += logLineHeight
	}
}
