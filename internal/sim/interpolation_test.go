package sim

import (
	"math"
	"testing"
)

const frame = 1.0 / 60

func newTestInterpolation(x, y float64) Interpolation {
	return NewInterpolation(Vec2{X: x, Y: y}, DefaultInterpolationMaxTime, DefaultInterpolationMinSpeed)
}

// --- Basics ---

func TestInterpolation_IdleHoldsStart(t *testing.T) {
	in := newTestInterpolation(2, 3)
	in.Update(1)
	if in.Current() != (Vec2{X: 2, Y: 3}) {
		t.Fatalf("idle interpolation moved to %v", in.Current())
	}
	if !in.Idle() {
		t.Fatal("expected idle with nothing queued")
	}
}

func TestInterpolation_MinSpeedStep(t *testing.T) {
	in := newTestInterpolation(0, 0)
	in.Queue(Vec2{X: 1})
	in.Update(0.1)
	// max(5, 1/0.2) * 0.1 = 0.5
	if math.Abs(in.Current().X-0.5) > 1e-9 {
		t.Fatalf("expected x=0.5 after one step, got %.4f", in.Current().X)
	}
	in.Update(0.1)
	if in.Current() != (Vec2{X: 1}) {
		t.Fatalf("expected exact arrival at (1,0), got %v", in.Current())
	}
	if !in.Idle() {
		t.Fatal("expected idle after arrival")
	}
}

func TestInterpolation_NoOvershoot(t *testing.T) {
	in := newTestInterpolation(0, 0)
	in.Queue(Vec2{X: 0.01})
	in.Update(1)
	if in.Current() != (Vec2{X: 0.01}) {
		t.Fatalf("expected snap to target, got %v", in.Current())
	}
}

// --- Convergence ---

func TestInterpolation_BacklogDrainsInBoundedTime(t *testing.T) {
	in := newTestInterpolation(0, 0)
	for x := 1; x <= 10; x++ {
		in.Queue(Vec2{X: float64(x)})
	}
	for i := 0; i < 60; i++ {
		in.Update(frame)
	}
	if in.Current() != (Vec2{X: 10}) {
		t.Fatalf("expected backlog drained to (10,0) within 1s, got %v", in.Current())
	}
}

func TestInterpolation_BacklogMovesFasterThanSingleStep(t *testing.T) {
	single := newTestInterpolation(0, 0)
	single.Queue(Vec2{X: 1})
	many := newTestInterpolation(0, 0)
	for x := 1; x <= 8; x++ {
		many.Queue(Vec2{X: float64(x)})
	}
	single.Update(frame)
	many.Update(frame)
	if many.Current().X <= single.Current().X {
		t.Fatalf("backlog should move faster: many=%.3f single=%.3f", many.Current().X, single.Current().X)
	}
}

// --- Jumps ---

func TestInterpolation_JumpIsDiscontinuous(t *testing.T) {
	in := newTestInterpolation(5, 0)
	in.Queue(Vec2{X: 5.5})
	in.QueueJump(Vec2{X: -4.5})
	in.Queue(Vec2{X: -4})

	maxDelta := 0.0
	prev := in.Current()
	for i := 0; i < 60; i++ {
		in.Update(frame)
		d := in.Current().Sub(prev).Len()
		maxDelta = math.Max(maxDelta, d)
		prev = in.Current()
	}
	if maxDelta < 9 {
		t.Fatalf("expected a single-frame cut of ~10 tiles, largest frame delta was %.3f", maxDelta)
	}
	if in.Current() != (Vec2{X: -4}) {
		t.Fatalf("expected to settle at (-4,0), got %v", in.Current())
	}
}

func TestInterpolation_JumpWaitsForSegmentToFinish(t *testing.T) {
	in := newTestInterpolation(0, 0)
	in.Queue(Vec2{X: 1})
	in.QueueJump(Vec2{X: 8})
	in.Update(frame)
	if in.Current().X >= 1 {
		t.Fatalf("first frame should still be sliding toward (1,0), got %v", in.Current())
	}
}
