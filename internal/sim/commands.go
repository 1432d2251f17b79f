package sim

// Controller is the turn-level command surface of a State. Replay
// recorders implement it to capture what the autopilot does.
type Controller interface {
	Tick(dir Position)
	UseUltimate()
	SelectUpgrade()
}

// Driver is everything a host sends: turn commands, restarts and frame
// time. *State implements it directly; a replay recorder wraps one.
type Driver interface {
	Controller
	KillPlayer()
	Update(dt float64)
}

var _ Driver = (*State)(nil)
