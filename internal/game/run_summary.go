package game

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/Garsondee/Delay-The-Inevitable/internal/sim"
)

// summaryEvents caps the event lines included in a summary.
const summaryEvents = 12

// RunSummary is the plain-text report copied with C: the seed, the live
// state, the per-life report and the latest log lines.
func RunSummary(s *sim.State, r sim.RunReport, recent []LogEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "--- Delay the Inevitable run summary ---\n")
	fmt.Fprintf(&b, "seed=%d tick=%d phase=%s\n", s.Seed(), s.TickCount(), s.Phase())
	fmt.Fprintf(&b, "score=%d best=%d level=%d player=%s enemies=%d\n",
		s.Score(), s.Highscore(), s.Level(), s.Player(), len(s.Enemies()))
	for i, a := range s.Attacks() {
		fmt.Fprintf(&b, "attack #%d: tier %d/%d cooldown %d/%d cells=%d\n",
			i+1, a.Tier+1, a.Tiers, a.Remaining, a.Total, len(a.Pattern))
	}
	b.WriteByte('\n')
	b.WriteString(r.Format())

	if len(recent) > summaryEvents {
		recent = recent[len(recent)-summaryEvents:]
	}
	if len(recent) > 0 {
		b.WriteString("\nrecent:\n")
		for _, e := range recent {
			fmt.Fprintf(&b, "  %4d %-4s %s\n", e.Tick, e.Label, e.Message)
		}
	}
	return b.String()
}

func (g *Game) copySummary() {
	text := RunSummary(g.state, g.tracker.Report(), g.events.Recent())
	if err := clipboard.WriteAll(text); err != nil {
		g.SetStatus(fmt.Sprintf("clipboard: %v", err))
		return
	}
	g.SetStatus("run summary copied")
}
