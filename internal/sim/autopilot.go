package sim

import "math"

// autopilotDirs is the candidate order; earlier entries win ties.
var autopilotDirs = [...]Position{DirRight, DirUp, DirLeft, DirDown, DirNone}

// Autopilot is a greedy player for batch runs and soak tests. Each turn it
// steps to the safest cell, preferring cells where ready attacks land on
// enemies, takes the first upgrade on offer, and teleports out when every
// cell is lethal.
type Autopilot struct{}

// Step issues the commands for one decision and returns the direction
// ticked. It does nothing once the player is dead.
func (ap Autopilot) Step(s *State) Position {
	return ap.Drive(s, s)
}

// Drive is Step with the commands sent through c, which must forward to s.
func (Autopilot) Drive(s *State, c Controller) Position {
	if s.player.Dead {
		return DirNone
	}
	if s.menu != nil {
		c.SelectUpgrade()
		return DirNone
	}
	if s.ultActive {
		dir := ultimateEscape(s)
		c.Tick(dir)
		c.UseUltimate()
		return dir
	}

	best, bestScore := DirNone, math.Inf(-1)
	for _, d := range autopilotDirs {
		if sc := candidateScore(s, d); sc > bestScore {
			best, bestScore = d, sc
		}
	}
	if math.IsInf(bestScore, -1) && s.ultimate.Action.IsReady() {
		c.UseUltimate()
		dir := ultimateEscape(s)
		c.Tick(dir)
		c.UseUltimate()
		return dir
	}
	c.Tick(best)
	return best
}

// candidateScore rates moving in d: -Inf when an enemy would land on the
// player, otherwise predicted kills dominate distance to the nearest enemy.
func candidateScore(s *State, d Position) float64 {
	target, _ := WrapPos(s.player.Position.Add(d), s.arena)
	predicted := make(map[Position]bool, len(s.enemies))
	nearest := math.MaxInt
	for _, e := range s.enemies {
		m := e.Movement
		next := ClampPos(e.Position.Add(m.Step(target.Sub(e.Position))), s.arena)
		if next == target {
			return math.Inf(-1)
		}
		predicted[next] = true
		nearest = min(nearest, chebyshev(next, target))
	}

	kills := 0
	for _, a := range s.attacks {
		if a.Action.Next-1 > 0 {
			continue
		}
		for _, p := range a.Positions(target) {
			if predicted[p] {
				kills++
				delete(predicted, p)
			}
		}
	}
	if nearest == math.MaxInt {
		nearest = s.arena.Width() + s.arena.Height()
	}
	return float64(kills)*100 + float64(nearest)
}

// ultimateEscape picks the leash cell furthest from every enemy.
func ultimateEscape(s *State) Position {
	best, bestDist := DirNone, -1
	for _, d := range autopilotDirs {
		raw, _ := WrapPos(s.player.Position.Add(d), s.arena)
		target := ClampWrappedPos(raw, s.UltimateLeash(), s.arena)
		dist := math.MaxInt
		for _, e := range s.enemies {
			dist = min(dist, chebyshev(e.Position, target))
		}
		if dist > bestDist {
			best, bestDist = d, dist
		}
	}
	return best
}

func chebyshev(a, b Position) int {
	return max(abs(a.X-b.X), abs(a.Y-b.Y))
}
