package sim

import "fmt"

// CasterKind says who an attack belongs to.
type CasterKind int

const (
	CasterPlayer CasterKind = iota
	CasterEnemy
)

// Caster attributes a set of struck cells. Enemy is an index into the live
// enemy list and is only meaningful for CasterEnemy.
type Caster struct {
	Kind  CasterKind
	Enemy int
}

// PlayerCaster is the player as the source of an attack.
var PlayerCaster = Caster{Kind: CasterPlayer}

// attackPositions records the struck cells as damage marks and resolves them.
// Enemy attacks only leave marks.
func (s *State) attackPositions(c Caster, positions []Position) {
	s.damages = append(s.damages, positions...)
	switch c.Kind {
	case CasterPlayer:
		s.resolvePlayerStrike(positions)
	case CasterEnemy:
	default:
		panic(fmt.Sprintf("invariant: unknown caster kind %d", c.Kind))
	}
}

func (s *State) resolvePlayerStrike(positions []Position) {
	if len(positions) == 0 {
		return
	}
	hit := make(map[Position]struct{}, len(positions))
	for _, p := range positions {
		hit[p] = struct{}{}
	}
	for i := range s.enemies {
		if _, ok := hit[s.enemies[i].Position]; ok {
			s.enemies[i].Dead = true
		}
	}

	levelUps := 0
	alive := s.enemies[:0]
	for _, e := range s.enemies {
		if !e.Dead {
			alive = append(alive, e)
			continue
		}
		s.score++
		if s.highscore.Record(s.score) {
			s.emit(Event{Kind: EventHighscore, Value: s.score})
		}
		ups := s.exp.Add(1)
		for i := 0; i < ups; i++ {
			s.emit(Event{Kind: EventLevelUp, Value: s.exp.Level - ups + i + 1})
		}
		levelUps += ups
		if p := s.prefabs[e.Type]; p != nil {
			p.KilledSiblings++
		}
		s.emit(Event{Kind: EventEnemyKilled, Enemy: e.Type, Pos: e.Position, Value: s.score})
	}
	clear(s.enemies[len(alive):])
	s.enemies = alive
	s.upgrade(levelUps)
}
