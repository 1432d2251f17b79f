package sim

import (
	"fmt"
	"strings"
)

// SimLogEntry is one recorded event.
type SimLogEntry struct {
	Tick     int
	Subject  string // "player", an enemy type, or "--" for global events
	Category string // move, combat, spawn, exp, upgrade, ultimate, state, score
	Key      string // specific event name within the category
	Value    string // human-readable detail
	NumVal   float64
}

// String formats the entry as a fixed-width log line.
//
//	[T=042] frog     combat    kill             (3,-2)
func (e SimLogEntry) String() string {
	return fmt.Sprintf("[T=%03d] %-8s %-9s %-16s %s",
		e.Tick, e.Subject, e.Category, e.Key, e.Value)
}

// SimLog collects structured events. It is unbounded and machine-readable;
// subscribe it to a State to record a run.
type SimLog struct {
	entries []SimLogEntry
	verbose bool
}

// NewSimLog creates a SimLog. Unless verbose is set, per-turn player moves
// are dropped to keep long runs small.
func NewSimLog(verbose bool) *SimLog {
	return &SimLog{verbose: verbose}
}

// OnEvent implements Listener.
func (sl *SimLog) OnEvent(e Event) {
	if e.Kind == EventMove && !sl.verbose {
		return
	}
	sl.entries = append(sl.entries, SimLogEntry{
		Tick:     e.Tick,
		Subject:  eventSubject(e),
		Category: e.Kind.Category(),
		Key:      e.Kind.Key(),
		Value:    eventValue(e),
		NumVal:   float64(e.Value),
	})
}

func eventSubject(e Event) string {
	switch e.Kind {
	case EventEnemyKilled, EventEnemySpawnQueued, EventEnemySpawned:
		return e.Enemy.String()
	case EventMove, EventWrap, EventStrike, EventPlayerDied, EventUltimateOn, EventUltimateOff:
		return "player"
	default:
		return "--"
	}
}

func eventValue(e Event) string {
	switch e.Kind {
	case EventMove, EventWrap, EventEnemyKilled, EventEnemySpawnQueued, EventEnemySpawned,
		EventUltimateOn, EventUltimateOff:
		return e.Pos.String()
	case EventStrike:
		return fmt.Sprintf("%s cells=%d", e.Pos, e.Value)
	case EventLevelUp:
		return fmt.Sprintf("level=%d", e.Value)
	case EventHighscore:
		return fmt.Sprintf("score=%d", e.Value)
	}
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("%d", e.Value)
}

// Entries returns all recorded entries.
func (sl *SimLog) Entries() []SimLogEntry {
	return sl.entries
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (sl *SimLog) Filter(category, key string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterTickRange returns entries within [fromTick, toTick] inclusive.
func (sl *SimLog) FilterTickRange(fromTick, toTick int) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Tick >= fromTick && e.Tick <= toTick {
			out = append(out, e)
		}
	}
	return out
}

// Count returns how many entries match the given category and key.
func (sl *SimLog) Count(category, key string) int {
	return len(sl.Filter(category, key))
}

// CountSubject is Count narrowed to one subject label.
func (sl *SimLog) CountSubject(subject, category, key string) int {
	n := 0
	for _, e := range sl.Filter(category, key) {
		if e.Subject == subject {
			n++
		}
	}
	return n
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (sl *SimLog) LastOf(category, key string) (SimLogEntry, bool) {
	entries := sl.Filter(category, key)
	if len(entries) == 0 {
		return SimLogEntry{}, false
	}
	return entries[len(entries)-1], true
}

// FirstTick is the tick of the first matching entry, or -1.
func (sl *SimLog) FirstTick(category, key string) int {
	for _, e := range sl.entries {
		if e.Category == category && e.Key == key {
			return e.Tick
		}
	}
	return -1
}

// HasEntry returns true if at least one entry matches category, key, and value substring.
func (sl *SimLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return true
	}
	return false
}

// Format returns the full log as a single string for t.Log output.
func (sl *SimLog) Format() string {
	var sb strings.Builder
	for _, e := range sl.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// FormatRange returns a log string filtered to a tick range.
func (sl *SimLog) FormatRange(fromTick, toTick int) string {
	var sb strings.Builder
	for _, e := range sl.FilterTickRange(fromTick, toTick) {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Summary returns a short human-readable summary of the run so far.
func (sl *SimLog) Summary(s *State) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Summary at T=%03d ---\n", s.TickCount())
	fmt.Fprintf(&sb, "score=%d highscore=%d level=%d exp=%.0f%% phase=%s\n",
		s.Score(), s.Highscore(), s.Level(), s.ExpRatio()*100, s.Phase())
	fmt.Fprintf(&sb, "player=%s enemies=%d pending_spawns=%d\n",
		s.Player(), len(s.Enemies()), len(s.PendingSpawns()))
	fmt.Fprintf(&sb, "kills: ")
	for _, t := range EnemyTypes() {
		fmt.Fprintf(&sb, "%s=%d  ", t, sl.CountSubject(t.String(), "combat", "kill"))
	}
	sb.WriteByte('\n')
	attacks := s.Attacks()
	for i, a := range attacks {
		fmt.Fprintf(&sb, "attack[%d]: tier=%d cells=%d cooldown=%d/%d\n",
			i, a.Tier, len(a.Pattern), a.Remaining, a.Total)
	}
	return sb.String()
}
