package main

import (
	"testing"

	"github.com/Garsondee/Delay-The-Inevitable/internal/replay"
	"github.com/Garsondee/Delay-The-Inevitable/internal/sim"
)

func TestAggregate_CountsOutcomesAndBest(t *testing.T) {
	all := []runStats{
		{seed: 1, report: sim.RunReport{Outcome: sim.OutcomeCollision, Score: 4, Level: 1, DeathTick: 10, PeakEnemies: 3}},
		{seed: 2, report: sim.RunReport{Outcome: sim.OutcomeSurvived, Score: 9, Level: 2, DeathTick: -1, PeakEnemies: 5}},
		{seed: 3, report: sim.RunReport{Outcome: sim.OutcomeCollision, Score: 2, DeathTick: 30, PeakEnemies: 1}},
	}
	all[0].report.Kills[sim.EnemyFrog] = 3

	agg := aggregate(all)
	if agg.outcomes[sim.OutcomeCollision] != 2 || agg.outcomes[sim.OutcomeSurvived] != 1 {
		t.Fatalf("unexpected outcome counts: %v", agg.outcomes)
	}
	if agg.bestScore != 9 || agg.bestSeed != 2 {
		t.Fatalf("expected best score 9 on seed 2, got %d on seed %d", agg.bestScore, agg.bestSeed)
	}
	if agg.scoreSum != 15 || agg.peakSum != 9 {
		t.Fatalf("expected sums score=15 peak=9, got score=%d peak=%d", agg.scoreSum, agg.peakSum)
	}
	if agg.kills[sim.EnemyFrog] != 3 {
		t.Fatalf("expected 3 frog kills, got %d", agg.kills[sim.EnemyFrog])
	}
	if len(agg.deathTicks) != 2 {
		t.Fatalf("survivors must not add a death tick, got %v", agg.deathTicks)
	}
}

func TestMedianTickString(t *testing.T) {
	if got := medianTickString(nil); got != "n/a" {
		t.Fatalf("expected n/a, got %s", got)
	}
	if got := medianTickString([]int{9, 1, 5}); got != "5" {
		t.Fatalf("expected 5, got %s", got)
	}
	if got := medianTickString([]int{4, 1}); got != "2.5" {
		t.Fatalf("expected 2.5, got %s", got)
	}
}

func TestTopUpgrade(t *testing.T) {
	if got := topUpgrade(map[sim.UpgradeType]int{}); got != "none" {
		t.Fatalf("expected none, got %s", got)
	}
	counts := map[sim.UpgradeType]int{sim.UpgradeAttackCooldown: 2}
	if got := topUpgrade(counts); got != sim.UpgradeAttackCooldown.String()+"(2)" {
		t.Fatalf("unexpected top upgrade %s", got)
	}
}

func TestRunAutopilot_ReplayMatchesReport(t *testing.T) {
	cfg := sim.DefaultConfig()
	rs, err := runAutopilot(1, 11, 150, 0.1, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if rs.turns == 0 || len(rs.recording.Inputs) == 0 {
		t.Fatal("expected the run to record inputs")
	}

	tracker := sim.NewRunTracker(rs.seed)
	if _, err := replay.Play(rs.recording, cfg, sim.WithListener(tracker)); err != nil {
		t.Fatal(err)
	}
	got := tracker.Report()
	if got.Score != rs.report.Score || got.Ticks != rs.report.Ticks || got.Outcome != rs.report.Outcome {
		t.Fatalf("replay diverged:\nrun:\n%s\nreplay:\n%s", rs.report.Format(), got.Format())
	}
}

func TestRunAutopilot_RejectsBadConfig(t *testing.T) {
	cfg := sim.DefaultConfig()
	cfg.ExpPerLevel = 0
	if _, err := runAutopilot(1, 1, 10, 0, cfg); err == nil {
		t.Fatal("expected an error for an invalid config")
	}
}
