package sim

import "math"

// Default interpolation tuning.
const (
	DefaultInterpolationMaxTime  = 0.2 // seconds to drain everything queued
	DefaultInterpolationMinSpeed = 5.0 // tiles per second
)

// segment is a run of waypoints that are slid between. A new segment starts
// at every jump.
type segment struct {
	targets []Vec2
	// distance is the summed length between consecutive targets, so
	// excluding the hop from the current position to targets[0].
	distance float64
}

// Interpolation turns discrete waypoints into a smoothly moving position.
// The more is queued, the faster it moves, so a backlog drains in bounded time.
type Interpolation struct {
	current  Vec2
	segments []segment
	maxTime  float64
	minSpeed float64
}

// NewInterpolation starts at pos with nothing queued.
func NewInterpolation(pos Vec2, maxTime, minSpeed float64) Interpolation {
	if maxTime <= 0 {
		maxTime = DefaultInterpolationMaxTime
	}
	if minSpeed <= 0 {
		minSpeed = DefaultInterpolationMinSpeed
	}
	return Interpolation{current: pos, maxTime: maxTime, minSpeed: minSpeed}
}

// Current is the render position for this frame.
func (in *Interpolation) Current() Vec2 {
	return in.current
}

// Idle reports whether every queued waypoint has been reached.
func (in *Interpolation) Idle() bool {
	for _, s := range in.segments {
		if len(s.targets) > 0 {
			return false
		}
	}
	return true
}

// Queue appends a waypoint to the active (last) segment.
func (in *Interpolation) Queue(pos Vec2) {
	if len(in.segments) == 0 {
		in.segments = append(in.segments, segment{})
	}
	s := &in.segments[len(in.segments)-1]
	if n := len(s.targets); n > 0 {
		s.distance += pos.Sub(s.targets[n-1]).Len()
	}
	s.targets = append(s.targets, pos)
}

// QueueJump starts a new segment at pos. Reaching it is an instant cut.
func (in *Interpolation) QueueJump(pos Vec2) {
	in.segments = append(in.segments, segment{targets: []Vec2{pos}})
}

// Update advances the render position by dt seconds.
func (in *Interpolation) Update(dt float64) {
	if len(in.segments) == 0 {
		return
	}
	if len(in.segments[0].targets) == 0 {
		if len(in.segments) == 1 {
			return
		}
		// Segment exhausted: cut straight to the next one.
		in.segments = in.segments[1:]
		in.current = in.segments[0].targets[0]
		in.popFront()
		return
	}

	s := &in.segments[0]
	next := s.targets[0]
	delta := next.Sub(in.current)
	dist := delta.Len()
	step := math.Max(in.minSpeed, (dist+s.distance)/in.maxTime) * dt
	if dist <= step {
		in.current = next
		in.popFront()
		return
	}
	in.current = in.current.Add(delta.Scale(step / dist))
}

// popFront drops the head waypoint of the first segment.
func (in *Interpolation) popFront() {
	s := &in.segments[0]
	head := s.targets[0]
	s.targets = s.targets[1:]
	if len(s.targets) > 0 {
		s.distance -= s.targets[0].Sub(head).Len()
		if s.distance < 0 {
			s.distance = 0
		}
	} else {
		s.distance = 0
	}
}
