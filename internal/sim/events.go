package sim

// EventKind names something observable that happened inside the simulation.
type EventKind int

const (
	EventMove EventKind = iota
	EventWrap
	EventStrike
	EventEnemyKilled
	EventEnemySpawnQueued
	EventEnemySpawned
	EventLevelUp
	EventUpgradeOffered
	EventUpgradeSkipped
	EventUpgradeSelected
	EventUltimateOn
	EventUltimateOff
	EventPlayerDied
	EventHighscore
	EventReset
	EventInvariant
)

// Category and key pairs used by SimLog entries, one per kind.
var eventNames = [...]struct{ category, key string }{
	EventMove:             {"move", "player"},
	EventWrap:             {"move", "wrap"},
	EventStrike:           {"combat", "strike"},
	EventEnemyKilled:      {"combat", "kill"},
	EventEnemySpawnQueued: {"spawn", "queued"},
	EventEnemySpawned:     {"spawn", "merged"},
	EventLevelUp:          {"exp", "level_up"},
	EventUpgradeOffered:   {"upgrade", "offered"},
	EventUpgradeSkipped:   {"upgrade", "skipped"},
	EventUpgradeSelected:  {"upgrade", "selected"},
	EventUltimateOn:       {"ultimate", "on"},
	EventUltimateOff:      {"ultimate", "off"},
	EventPlayerDied:       {"state", "death"},
	EventHighscore:        {"score", "highscore"},
	EventReset:            {"state", "reset"},
	EventInvariant:        {"invariant", "breach"},
}

// Category is the coarse grouping of the kind (move, combat, spawn, ...).
func (k EventKind) Category() string {
	if int(k) < len(eventNames) {
		return eventNames[k].category
	}
	return "unknown"
}

// Key is the specific event name within its category.
func (k EventKind) Key() string {
	if int(k) < len(eventNames) {
		return eventNames[k].key
	}
	return "unknown"
}

func (k EventKind) String() string {
	return k.Category() + "/" + k.Key()
}

// Death causes carried in Event.Detail for EventPlayerDied.
const (
	DeathCollision = "collision"
	DeathTimeout   = "timeout"
	DeathManual    = "manual"
)

// Event is delivered synchronously to every Listener as it happens.
type Event struct {
	Tick   int
	Kind   EventKind
	Pos    Position
	Enemy  EnemyType
	Value  int
	Detail string
}

// Listener receives simulation events. Implementations must not call back
// into the State that emitted the event.
type Listener interface {
	OnEvent(e Event)
}

// ListenerFunc adapts a plain function to Listener.
type ListenerFunc func(e Event)

func (f ListenerFunc) OnEvent(e Event) { f(e) }

// dispatcher fans events out to subscribers in subscription order.
type dispatcher struct {
	listeners []Listener
}

func (d *dispatcher) subscribe(l Listener) {
	d.listeners = append(d.listeners, l)
}

func (d *dispatcher) dispatch(e Event) {
	for _, l := range d.listeners {
		l.OnEvent(e)
	}
}
