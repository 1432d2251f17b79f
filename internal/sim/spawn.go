package sim

import "image/color"

// PendingSpawn is an enemy waiting to enter the arena on the next turn.
type PendingSpawn struct {
	Type     EnemyType
	Position Position
	Color    color.RGBA
}

// mergeSpawns moves last turn's buffered spawns into the live list.
func (s *State) mergeSpawns() {
	for _, e := range s.spawns {
		s.enemies = append(s.enemies, e)
		s.emit(Event{Kind: EventEnemySpawned, Enemy: e.Type, Pos: e.Position})
	}
	clear(s.spawns)
	s.spawns = s.spawns[:0]
}

// siblingCounts tallies live enemies per type.
func (s *State) siblingCounts() [enemyTypeCount]int {
	var counts [enemyTypeCount]int
	for _, e := range s.enemies {
		counts[e.Type]++
	}
	return counts
}

// runSpawners counts down every unlocked prefab and buffers what fires. The
// sibling count used for the refreshed cooldown is the live count before
// this spawn joins it.
func (s *State) runSpawners() {
	siblings := s.siblingCounts()
	corners := s.arena.Corners()
	for _, t := range EnemyTypes() {
		p := s.prefabs[t]
		if p == nil || s.score < p.MinScore {
			continue
		}
		p.NextSpawn--
		if p.NextSpawn > 0 {
			continue
		}
		p.RefreshCooldown(siblings[t], s.cfg.Spawning.KillDecay, s.cfg.Spawning.MinCooldown)
		siblings[t]++

		at := corners[s.rng.Intn(len(corners))]
		s.spawns = append(s.spawns, Enemy{
			Type:          t,
			Color:         p.Color,
			Position:      at,
			Interpolation: s.newInterpolation(at),
			Movement:      p.Movement,
		})
		s.emit(Event{Kind: EventEnemySpawnQueued, Enemy: t, Pos: at, Value: p.NextSpawn})
	}
}
