package sim

import (
	"slices"
	"testing"
)

// --- Action ---

func TestAction_FreshIsNotReady(t *testing.T) {
	a := NewAction(3)
	if a.IsReady() {
		t.Fatal("fresh action should not be ready")
	}
	if a.Update(1) || a.Update(1) {
		t.Fatal("action with cooldown 3 ready too early")
	}
	if !a.Update(1) {
		t.Fatal("action should be ready after 3 updates")
	}
}

func TestAction_SetOnCooldownRearms(t *testing.T) {
	a := NewAction(2)
	a.Update(5)
	a.SetOnCooldown()
	if a.IsReady() || a.Next != 2 {
		t.Fatalf("expected re-armed to 2, got next=%d", a.Next)
	}
}

func TestAction_MultiplierCeil(t *testing.T) {
	a := NewAction(5)
	a.CooldownMultiplier = 0.8 * 0.8 // 3.2 -> 4
	if a.Total() != 4 {
		t.Fatalf("expected total 4, got %d", a.Total())
	}
	a.SetOnCooldown()
	if a.Next != 4 {
		t.Fatalf("expected next 4, got %d", a.Next)
	}
}

func TestAction_TotalNeverBelowOne(t *testing.T) {
	a := NewAction(1)
	a.CooldownMultiplier = 0.01
	if a.Total() != 1 {
		t.Fatalf("expected floor of 1, got %d", a.Total())
	}
	a.CooldownMultiplier = 0
	a.SetOnCooldown()
	if a.Next < 1 {
		t.Fatalf("re-arm must be positive, got %d", a.Next)
	}
}

func TestAction_RemainingClampsAtZero(t *testing.T) {
	a := NewAction(1)
	a.Update(4)
	if a.Remaining() != 0 {
		t.Fatalf("expected 0 remaining, got %d", a.Remaining())
	}
}

// --- Attack ---

func threeTierAttack() *Attack {
	return NewAttack(
		AttackTier{Cooldown: 2, Pattern: []Position{Pos(1, 0)}},
		AttackTier{Cooldown: 3, Pattern: []Position{Pos(1, 0), Pos(2, 0)}},
		AttackTier{Cooldown: 4, Pattern: []Position{Pos(1, 0), Pos(2, 0), Pos(3, 0)}},
	)
}

func TestAttack_Positions(t *testing.T) {
	a := threeTierAttack()
	got := a.Positions(Pos(2, -1))
	if !slices.Equal(got, []Position{Pos(3, -1)}) {
		t.Fatalf("expected [(3,-1)], got %v", got)
	}
}

func TestAttack_UpgradeReplacesPatternAndCooldown(t *testing.T) {
	a := threeTierAttack()
	a.Action.CooldownMultiplier = 0.5
	if !a.Upgrade() {
		t.Fatal("expected upgrade to succeed")
	}
	if len(a.Pattern) != 2 || a.Action.Cooldown != 3 || a.Action.Next != 3 {
		t.Fatalf("expected tier 2 pattern and cooldown, got pattern=%v action=%+v", a.Pattern, a.Action)
	}
	if a.Action.CooldownMultiplier != 1 {
		t.Fatalf("upgrade replaces the whole action, got multiplier %.2f", a.Action.CooldownMultiplier)
	}
	if a.Tier() != 1 {
		t.Fatalf("expected tier 1, got %d", a.Tier())
	}
}

func TestAttack_UpgradeWithoutSuccessorIsNoOp(t *testing.T) {
	a := threeTierAttack()
	a.Upgrade()
	a.Upgrade()
	before := *a
	if a.CanUpgrade() {
		t.Fatal("last tier should not be upgradeable")
	}
	if a.Upgrade() {
		t.Fatal("upgrade past the last tier should report false")
	}
	if !slices.Equal(a.Pattern, before.Pattern) || a.Action != before.Action {
		t.Fatal("no-op upgrade changed the attack")
	}
}

func TestAttack_TiersCountsWholeChain(t *testing.T) {
	a := threeTierAttack()
	if a.Tiers() != 3 {
		t.Fatalf("expected 3 tiers, got %d", a.Tiers())
	}
	a.Upgrade()
	if a.Tiers() != 3 {
		t.Fatalf("tier count should not change on upgrade, got %d", a.Tiers())
	}
}

func TestAttack_RotateLeftTurnsEveryTier(t *testing.T) {
	a := threeTierAttack()
	a.RotateLeft()
	if a.Pattern[0] != Pos(0, 1) {
		t.Fatalf("expected (0,1) after a quarter turn, got %s", a.Pattern[0])
	}
	a.Upgrade()
	a.Upgrade()
	want := []Position{Pos(0, 1), Pos(0, 2), Pos(0, 3)}
	if !slices.Equal(a.Pattern, want) {
		t.Fatalf("successor tiers should be rotated too, got %v", a.Pattern)
	}
}

func TestAttack_FourTurnsIsIdentity(t *testing.T) {
	a := NewAttack(AttackTier{Cooldown: 2, Pattern: []Position{Pos(2, 1), Pos(-1, 3)}})
	for i := 0; i < 4; i++ {
		a.RotateLeft()
	}
	if !slices.Equal(a.Pattern, []Position{Pos(2, 1), Pos(-1, 3)}) {
		t.Fatalf("four quarter turns should restore the pattern, got %v", a.Pattern)
	}
}

// --- Teleport ---

func TestTeleport_DeltasIncludeOrigin(t *testing.T) {
	tp := NewTeleport(5, 1, true)
	d := tp.Deltas()
	if len(d) != 9 || !slices.Contains(d, Pos(0, 0)) {
		t.Fatalf("expected 9 deltas with origin, got %v", d)
	}
}

func TestTeleport_DeltasExcludeOrigin(t *testing.T) {
	tp := NewTeleport(5, 2, false)
	d := tp.Deltas()
	if len(d) != 24 || slices.Contains(d, Pos(0, 0)) {
		t.Fatalf("expected 24 deltas without origin, got %d", len(d))
	}
}

func TestTeleport_Boundary(t *testing.T) {
	tp := NewTeleport(5, 2, true)
	if b := tp.Boundary(); b.Min != Pos(-2, -2) || b.Max != Pos(2, 2) {
		t.Fatalf("expected (-2,-2)-(2,2), got %s", b)
	}
}
