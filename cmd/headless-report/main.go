package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Garsondee/Delay-The-Inevitable/internal/replay"
	"github.com/Garsondee/Delay-The-Inevitable/internal/sim"
)

type runStats struct {
	runIndex  int
	seed      int64
	turns     int
	report    sim.RunReport
	recording *replay.Recording
}

type aggregateStats struct {
	runs        int
	outcomes    map[sim.RunOutcome]int
	scoreSum    int
	levelSum    int
	bestScore   int
	bestSeed    int64
	kills       map[sim.EnemyType]int
	peakSum     int
	upgrades    map[sim.UpgradeType]int
	deathTicks  []int
	ultimateSum int
}

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var think float64
	var configPath string
	var replayOut string
	var replayIn string

	flag.IntVar(&runs, "runs", 5, "number of headless runs")
	flag.IntVar(&ticks, "ticks", 600, "autopilot decisions per run")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.Float64Var(&think, "think", 0.1, "seconds of move timer spent before each decision")
	flag.StringVar(&configPath, "config", "", "YAML tuning file (defaults when empty)")
	flag.StringVar(&replayOut, "replay-out", "", "directory to write one replay per run")
	flag.StringVar(&replayIn, "replay", "", "play back a replay file and report it")
	flag.Parse()

	cfg := sim.DefaultConfig()
	if configPath != "" {
		loaded, err := sim.LoadConfig(configPath)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			return
		}
		cfg = loaded
	}

	if replayIn != "" {
		playReplay(replayIn, cfg)
		return
	}

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		return
	}
	if think < 0 {
		fmt.Println("error: -think must be >= 0")
		return
	}

	if replayOut != "" {
		if err := os.MkdirAll(replayOut, 0o750); err != nil {
			fmt.Printf("error: %v\n", err)
			return
		}
	}

	fmt.Printf("=== Headless Run Report ===\n")
	fmt.Printf("runs=%d ticks=%d seed_base=%d seed_step=%d think=%.2f\n\n", runs, ticks, seedBase, seedStep, think)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		stats, err := runAutopilot(i+1, seed, ticks, think, cfg)
		if err != nil {
			fmt.Printf("error: run %d: %v\n", i+1, err)
			return
		}
		all = append(all, stats)
		printRun(stats)
		if replayOut != "" {
			path := filepath.Join(replayOut, fmt.Sprintf("run-%03d-seed-%d.replay", stats.runIndex, stats.seed))
			if err := replay.Save(path, stats.recording); err != nil {
				fmt.Printf("error: %v\n", err)
				return
			}
			fmt.Printf("replay: %s (%d inputs)\n\n", path, len(stats.recording.Inputs))
		}
	}

	printAggregate(aggregate(all))
}

// runAutopilot plays one life through a recorder so the run can be saved and
// replayed exactly.
func runAutopilot(runIndex int, seed int64, ticks int, think float64, cfg sim.Config) (runStats, error) {
	tracker := sim.NewRunTracker(seed)
	s, err := sim.New(cfg, sim.WithSeed(seed), sim.WithListener(tracker))
	if err != nil {
		return runStats{}, err
	}
	rec := replay.NewRecorder(s)
	var pilot sim.Autopilot
	turns := 0
	for ; turns < ticks && !s.Dead(); turns++ {
		if think > 0 {
			rec.Update(think)
			if s.Dead() {
				break
			}
		}
		pilot.Drive(s, rec)
	}
	return runStats{
		runIndex:  runIndex,
		seed:      seed,
		turns:     turns,
		report:    tracker.Report(),
		recording: rec.Recording(),
	}, nil
}

func playReplay(path string, cfg sim.Config) {
	rec, err := replay.Load(path)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}
	tracker := sim.NewRunTracker(rec.Seed)
	if _, err := replay.Play(rec, cfg, sim.WithListener(tracker)); err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}
	fmt.Printf("=== Replay Report ===\n")
	fmt.Printf("file=%s seed=%d inputs=%d turns=%d\n\n", path, rec.Seed, len(rec.Inputs), rec.Ticks())
	fmt.Print(tracker.Report().Format())
}

func printRun(rs runStats) {
	r := rs.report
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("result: outcome=%s turns=%d ticks=%d death_tick=%d\n", r.Outcome, rs.turns, r.Ticks, r.DeathTick)
	fmt.Printf("progress: score=%d level=%d ultimates=%d wraps=%d\n", r.Score, r.Level, r.Ultimates, r.Wraps)
	fmt.Printf("kills: %s\n", enemyCounts(r.Kills[:]))
	fmt.Printf("spawned: %s peak_live=%d\n", enemyCounts(r.Spawned[:]), r.PeakEnemies)
	fmt.Printf("upgrades: %s skipped=%d\n", upgradeCounts(r), r.Skipped)
	fmt.Println()
}

func aggregate(all []runStats) aggregateStats {
	agg := aggregateStats{
		runs:     len(all),
		outcomes: map[sim.RunOutcome]int{},
		kills:    map[sim.EnemyType]int{},
		upgrades: map[sim.UpgradeType]int{},
		bestSeed: -1,
	}
	for _, rs := range all {
		r := rs.report
		agg.outcomes[r.Outcome]++
		agg.scoreSum += r.Score
		agg.levelSum += r.Level
		agg.peakSum += r.PeakEnemies
		agg.ultimateSum += r.Ultimates
		if agg.bestSeed < 0 || r.Score > agg.bestScore {
			agg.bestScore, agg.bestSeed = r.Score, rs.seed
		}
		for _, t := range sim.EnemyTypes() {
			agg.kills[t] += r.KillsOf(t)
		}
		for _, t := range sim.UpgradeTypes() {
			agg.upgrades[t] += r.UpgradesOf(t)
		}
		if r.DeathTick >= 0 {
			agg.deathTicks = append(agg.deathTicks, r.DeathTick)
		}
	}
	return agg
}

func printAggregate(agg aggregateStats) {
	fmt.Printf("=== Aggregate ===\n")
	fmt.Printf("runs=%d\n", agg.runs)
	outcomes := make([]string, 0, len(sim.RunOutcomes()))
	for _, o := range sim.RunOutcomes() {
		outcomes = append(outcomes, fmt.Sprintf("%s=%d", o, agg.outcomes[o]))
	}
	fmt.Printf("outcomes: %s\n", strings.Join(outcomes, " "))
	fmt.Printf("avg_per_run: score=%.1f level=%.1f peak_live=%.1f ultimates=%.1f\n",
		avg(agg.scoreSum, agg.runs), avg(agg.levelSum, agg.runs), avg(agg.peakSum, agg.runs), avg(agg.ultimateSum, agg.runs))
	fmt.Printf("best: score=%d seed=%d\n", agg.bestScore, agg.bestSeed)
	fmt.Printf("death_tick: avg=%s median=%s\n", avgTickString(agg.deathTicks), medianTickString(agg.deathTicks))

	kills := make([]string, 0, len(agg.kills))
	for _, t := range sim.EnemyTypes() {
		kills = append(kills, fmt.Sprintf("%s=%.1f", t, avg(agg.kills[t], agg.runs)))
	}
	fmt.Printf("avg_kills: %s\n", strings.Join(kills, " "))
	fmt.Printf("top_upgrade: %s\n", topUpgrade(agg.upgrades))
}

func enemyCounts(counts []int) string {
	parts := make([]string, 0, len(counts))
	for _, t := range sim.EnemyTypes() {
		parts = append(parts, fmt.Sprintf("%s=%d", t, counts[t]))
	}
	return strings.Join(parts, " ")
}

func upgradeCounts(r sim.RunReport) string {
	parts := make([]string, 0, len(sim.UpgradeTypes()))
	for _, t := range sim.UpgradeTypes() {
		if n := r.UpgradesOf(t); n > 0 {
			parts = append(parts, fmt.Sprintf("%s=%d", t, n))
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, " ")
}

func avg(sum int, n int) float64 {
	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}

func medianTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sorted := append([]int(nil), vals...)
	sort.Ints(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return fmt.Sprintf("%d", sorted[mid])
	}
	return fmt.Sprintf("%.1f", float64(sorted[mid-1]+sorted[mid])/2)
}

func topUpgrade(counts map[sim.UpgradeType]int) string {
	best := ""
	bestN := 0
	for _, t := range sim.UpgradeTypes() {
		if n := counts[t]; n > bestN {
			best, bestN = t.String(), n
		}
	}
	if bestN == 0 {
		return "none"
	}
	return fmt.Sprintf("%s(%d)", best, bestN)
}
