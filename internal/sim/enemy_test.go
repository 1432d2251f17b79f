package sim

import "testing"

func attackerPrefab() *SpawnPrefab {
	return &SpawnPrefab{
		Movement:      Movement{Kind: MoveDirect},
		NextSpawn:     1,
		Cooldowns:     map[int]float64{0: 2, 1: 4, 2: 6, 3: 7},
		LargeCooldown: 8,
	}
}

// --- RefreshCooldown ---

func TestRefreshCooldown_TableLookup(t *testing.T) {
	p := attackerPrefab()
	p.RefreshCooldown(2, 0.05, 1)
	if p.NextSpawn != 6 {
		t.Fatalf("expected 6 for two siblings, got %d", p.NextSpawn)
	}
}

func TestRefreshCooldown_LargeGroupFallback(t *testing.T) {
	p := attackerPrefab()
	p.RefreshCooldown(9, 0.05, 1)
	if p.NextSpawn != 8 {
		t.Fatalf("expected large-group cooldown 8, got %d", p.NextSpawn)
	}
}

func TestRefreshCooldown_KillDecay(t *testing.T) {
	p := attackerPrefab()
	p.KilledSiblings = 4
	p.RefreshCooldown(3, 0.05, 1)
	// ceil(7 * 0.8) = ceil(5.6) = 6
	if p.NextSpawn != 6 {
		t.Fatalf("expected 6 after four kills, got %d", p.NextSpawn)
	}
}

func TestRefreshCooldown_FloorAfterLongSession(t *testing.T) {
	p := attackerPrefab()
	p.KilledSiblings = 40 // multiplier is -1
	p.RefreshCooldown(0, 0.05, 1)
	if p.NextSpawn != 1 {
		t.Fatalf("expected floor of 1, got %d", p.NextSpawn)
	}
}

func TestParseEnemyType(t *testing.T) {
	for _, et := range EnemyTypes() {
		got, err := ParseEnemyType(et.String())
		if err != nil || got != et {
			t.Fatalf("round trip of %s failed", et)
		}
	}
	if _, err := ParseEnemyType("dragon"); err == nil {
		t.Fatal("expected error for unknown type")
	}
}
