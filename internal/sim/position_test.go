package sim

import "testing"

var testArena = NewBounds(Pos(-4, -4), Pos(5, 5))

// --- Bounds ---

func TestBounds_NewBoundsOrdersCorners(t *testing.T) {
	b := NewBounds(Pos(5, -4), Pos(-4, 5))
	if b.Min != Pos(-4, -4) || b.Max != Pos(5, 5) {
		t.Fatalf("expected (-4,-4)-(5,5), got %s", b)
	}
	if b.Width() != 10 || b.Height() != 10 {
		t.Fatalf("expected 10x10, got %dx%d", b.Width(), b.Height())
	}
}

func TestBounds_Corners(t *testing.T) {
	got := testArena.Corners()
	want := [4]Position{Pos(-4, -4), Pos(5, -4), Pos(5, 5), Pos(-4, 5)}
	if got != want {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

// --- Wraparound ---

func TestWrapCoord_InsideIsUnchanged(t *testing.T) {
	for x := -4; x <= 5; x++ {
		got, jump := WrapCoord(x, -4, 5)
		if got != x || jump {
			t.Fatalf("WrapCoord(%d) = %d,%v; want %d,false", x, got, jump, x)
		}
	}
}

func TestWrapCoord_OneStepPastEachEdge(t *testing.T) {
	if got, jump := WrapCoord(6, -4, 5); got != -4 || !jump {
		t.Fatalf("WrapCoord(6) = %d,%v; want -4,true", got, jump)
	}
	if got, jump := WrapCoord(-5, -4, 5); got != 5 || !jump {
		t.Fatalf("WrapCoord(-5) = %d,%v; want 5,true", got, jump)
	}
}

func TestWrapCoord_SeveralPeriods(t *testing.T) {
	if got, _ := WrapCoord(25, -4, 5); got != 5 {
		t.Fatalf("WrapCoord(25) = %d, want 5", got)
	}
	if got, _ := WrapCoord(-26, -4, 5); got != 4 {
		t.Fatalf("WrapCoord(-26) = %d, want 4", got)
	}
}

func TestWrapPos_InBoundsAndIdempotent(t *testing.T) {
	for x := -30; x <= 30; x++ {
		for y := -30; y <= 30; y += 7 {
			p, _ := WrapPos(Pos(x, y), testArena)
			if !testArena.Contains(p) {
				t.Fatalf("WrapPos(%d,%d) = %s outside arena", x, y, p)
			}
			again, jump := WrapPos(p, testArena)
			if again != p || jump {
				t.Fatalf("re-wrapping %s gave %s jump=%v", p, again, jump)
			}
		}
	}
}

func TestWrapPos_JumpIsEitherAxis(t *testing.T) {
	if _, jump := WrapPos(Pos(0, 6), testArena); !jump {
		t.Fatal("y overflow should report a jump")
	}
	if _, jump := WrapPos(Pos(-5, 0), testArena); !jump {
		t.Fatal("x underflow should report a jump")
	}
}

// --- Clamping ---

func TestClampPos_InBoundsAndIdentity(t *testing.T) {
	for x := -12; x <= 12; x++ {
		for y := -12; y <= 12; y++ {
			p := Pos(x, y)
			c := ClampPos(p, testArena)
			if !testArena.Contains(c) {
				t.Fatalf("ClampPos(%s) = %s outside arena", p, c)
			}
			if testArena.Contains(p) && c != p {
				t.Fatalf("ClampPos(%s) moved an in-bounds cell to %s", p, c)
			}
		}
	}
}

func TestClampWrappedPos_InsideLeash(t *testing.T) {
	leash := SquareBounds(1).Translate(Pos(1, 1))
	p := ClampWrappedPos(Pos(2, 0), leash, testArena)
	if p != Pos(2, 0) {
		t.Fatalf("expected unchanged (2,0), got %s", p)
	}
}

func TestClampWrappedPos_OutsideLeashNoSeam(t *testing.T) {
	leash := SquareBounds(1).Translate(Pos(1, 0))
	p := ClampWrappedPos(Pos(3, 0), leash, testArena)
	if p != Pos(2, 0) {
		t.Fatalf("expected clamp to (2,0), got %s", p)
	}
	p = ClampWrappedPos(Pos(-1, 0), leash, testArena)
	if p != Pos(0, 0) {
		t.Fatalf("expected clamp to (0,0), got %s", p)
	}
}

// The leash around x=5 spans [4,6], and 6 is the arena cell -4 across the seam.
func TestClampWrappedPos_LeashStraddlesSeam(t *testing.T) {
	leash := SquareBounds(1).Translate(Pos(5, 0))

	if p := ClampWrappedPos(Pos(-4, 0), leash, testArena); p != Pos(-4, 0) {
		t.Fatalf("cell across the seam is inside the leash, got %s", p)
	}
	if p := ClampWrappedPos(Pos(-3, 0), leash, testArena); p != Pos(-4, 0) {
		t.Fatalf("stepping past the seam edge should clamp to -4, got %s", p)
	}
	if p := ClampWrappedPos(Pos(3, 0), leash, testArena); p != Pos(4, 0) {
		t.Fatalf("stepping past the low edge should clamp to 4, got %s", p)
	}
	// Equidistant from both edges: the max edge wins.
	if p := ClampWrappedPos(Pos(0, 0), leash, testArena); p != Pos(-4, 0) {
		t.Fatalf("tie should go to the max edge (-4 after wrap), got %s", p)
	}
}

func TestClampWrappedPos_LeashStraddlesLowSeam(t *testing.T) {
	leash := SquareBounds(1).Translate(Pos(-4, -4))
	if p := ClampWrappedPos(Pos(5, 5), leash, testArena); p != Pos(5, 5) {
		t.Fatalf("(5,5) is diagonal across both seams and inside the leash, got %s", p)
	}
	if p := ClampWrappedPos(Pos(4, -4), leash, testArena); p != Pos(5, -4) {
		t.Fatalf("expected clamp to (5,-4), got %s", p)
	}
}

func TestClampWrappedPos_AlwaysInArena(t *testing.T) {
	for ox := -4; ox <= 5; ox++ {
		leash := SquareBounds(2).Translate(Pos(ox, 0))
		for x := -4; x <= 5; x++ {
			p := ClampWrappedPos(Pos(x, 0), leash, testArena)
			if !testArena.Contains(p) {
				t.Fatalf("origin x=%d cell x=%d: %s outside arena", ox, x, p)
			}
		}
	}
}

func TestClampWrappedPos_WideLeashIsNoOp(t *testing.T) {
	leash := SquareBounds(6)
	for x := -4; x <= 5; x++ {
		if p := ClampWrappedPos(Pos(x, x), leash, testArena); p != Pos(x, x) {
			t.Fatalf("leash wider than arena should not clamp, got %s", p)
		}
	}
}
