package sim

import (
	"fmt"
	"strings"
)

// RunOutcome is how a run ended.
type RunOutcome int

const (
	OutcomeSurvived RunOutcome = iota
	OutcomeCollision
	OutcomeTimeout
	OutcomeManual
)

func (o RunOutcome) String() string {
	switch o {
	case OutcomeSurvived:
		return "survived"
	case OutcomeCollision:
		return "collision"
	case OutcomeTimeout:
		return "timeout"
	case OutcomeManual:
		return "manual"
	default:
		return "unknown"
	}
}

// RunOutcomes lists every outcome in index order.
func RunOutcomes() []RunOutcome {
	return []RunOutcome{OutcomeSurvived, OutcomeCollision, OutcomeTimeout, OutcomeManual}
}

func outcomeForCause(cause string) RunOutcome {
	switch cause {
	case DeathCollision:
		return OutcomeCollision
	case DeathTimeout:
		return OutcomeTimeout
	case DeathManual:
		return OutcomeManual
	default:
		return OutcomeSurvived
	}
}

// RunReport sums up one life, from a fresh game to the first death.
type RunReport struct {
	Seed        int64
	Ticks       int
	Score       int
	Level       int
	Kills       [enemyTypeCount]int
	Spawned     [enemyTypeCount]int
	PeakEnemies int
	Upgrades    [upgradeTypeCount]int
	Skipped     int // level-ups consumed with nothing to offer
	Ultimates   int
	Wraps       int
	Outcome     RunOutcome
	DeathTick   int // -1 while alive
}

// KillsOf returns the kill count for one enemy type.
func (r RunReport) KillsOf(t EnemyType) int {
	return r.Kills[t]
}

// UpgradesOf returns how often an upgrade was picked.
func (r RunReport) UpgradesOf(t UpgradeType) int {
	return r.Upgrades[t]
}

// Format renders the report as key=value lines.
func (r RunReport) Format() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "outcome=%s ticks=%d death_tick=%d score=%d level=%d\n",
		r.Outcome, r.Ticks, r.DeathTick, r.Score, r.Level)
	sb.WriteString("kills:")
	for _, t := range EnemyTypes() {
		fmt.Fprintf(&sb, " %s=%d", t, r.Kills[t])
	}
	sb.WriteString("\nspawned:")
	for _, t := range EnemyTypes() {
		fmt.Fprintf(&sb, " %s=%d", t, r.Spawned[t])
	}
	fmt.Fprintf(&sb, " peak_live=%d\n", r.PeakEnemies)
	sb.WriteString("upgrades:")
	for _, t := range UpgradeTypes() {
		fmt.Fprintf(&sb, " %s=%d", t, r.Upgrades[t])
	}
	fmt.Fprintf(&sb, " skipped=%d\n", r.Skipped)
	fmt.Fprintf(&sb, "ultimates=%d wraps=%d\n", r.Ultimates, r.Wraps)
	return sb.String()
}

// RunTracker is a Listener that builds a RunReport. It stops recording at
// the first death; Reset starts a new report.
type RunTracker struct {
	report RunReport
	live   int
	done   bool
}

func NewRunTracker(seed int64) *RunTracker {
	return &RunTracker{report: RunReport{Seed: seed, DeathTick: -1}}
}

// OnEvent implements Listener.
func (rt *RunTracker) OnEvent(e Event) {
	if e.Kind == EventReset {
		seed := rt.report.Seed
		*rt = RunTracker{report: RunReport{Seed: seed, DeathTick: -1}}
		return
	}
	if rt.done {
		return
	}
	r := &rt.report
	r.Ticks = max(r.Ticks, e.Tick)
	switch e.Kind {
	case EventEnemyKilled:
		r.Kills[e.Enemy]++
		r.Score = e.Value
		rt.live--
	case EventEnemySpawned:
		r.Spawned[e.Enemy]++
		rt.live++
		r.PeakEnemies = max(r.PeakEnemies, rt.live)
	case EventLevelUp:
		r.Level = e.Value
	case EventUpgradeSelected:
		if t, err := ParseUpgradeType(e.Detail); err == nil {
			r.Upgrades[t]++
		}
	case EventUpgradeSkipped:
		r.Skipped += e.Value
	case EventUltimateOn:
		r.Ultimates++
	case EventWrap:
		r.Wraps++
	case EventPlayerDied:
		r.Outcome = outcomeForCause(e.Detail)
		r.DeathTick = e.Tick
		r.Score = e.Value
		rt.done = true
	}
}

// Report returns the report so far.
func (rt *RunTracker) Report() RunReport {
	return rt.report
}

// Done reports whether the tracked run has ended.
func (rt *RunTracker) Done() bool {
	return rt.done
}
