package store

import (
	"path/filepath"
	"testing"

	"github.com/Garsondee/Delay-The-Inevitable/internal/sim"
)

func openTest(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// --- Settings ---

func TestSettings_MissingKey(t *testing.T) {
	db := openTest(t)
	v, ok, err := db.GetSetting("nope")
	if err != nil || ok || v != "" {
		t.Fatalf("expected a clean miss, got %q ok=%v err=%v", v, ok, err)
	}
}

func TestSettings_Overwrite(t *testing.T) {
	db := openTest(t)
	if err := db.SetSetting("volume", "3"); err != nil {
		t.Fatal(err)
	}
	if err := db.SetSetting("volume", "7"); err != nil {
		t.Fatal(err)
	}
	v, ok, err := db.GetSetting("volume")
	if err != nil || !ok || v != "7" {
		t.Fatalf("expected 7, got %q ok=%v err=%v", v, ok, err)
	}
}

// --- Highscore ---

func TestHighscore_DefaultsToZero(t *testing.T) {
	db := openTest(t)
	n, err := db.LoadHighscore()
	if err != nil || n != 0 {
		t.Fatalf("expected 0, got %d err=%v", n, err)
	}
}

func TestHighscore_PersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.db")
	db, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := db.SaveHighscore(42); err != nil {
		t.Fatal(err)
	}
	db.Close()

	db, err = Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	if n, err := db.LoadHighscore(); err != nil || n != 42 {
		t.Fatalf("expected 42 after reopen, got %d err=%v", n, err)
	}
}

func TestHighscore_CorruptValue(t *testing.T) {
	db := openTest(t)
	if err := db.SetSetting(highscoreKey, "lots"); err != nil {
		t.Fatal(err)
	}
	if _, err := db.LoadHighscore(); err == nil {
		t.Fatal("expected an error for a non-numeric highscore")
	}
}

func TestHighscore_DrivesSimCell(t *testing.T) {
	db := openTest(t)
	h := sim.NewHighscore(db)
	h.Record(9)
	h.Record(4)
	if n, _ := db.LoadHighscore(); n != 9 {
		t.Fatalf("expected 9 stored, got %d", n)
	}
}

// --- Runs ---

func TestRuns_TopOrdersByScore(t *testing.T) {
	db := openTest(t)
	for i, score := range []int{5, 12, 5, 30} {
		r := sim.RunReport{Seed: int64(i), Score: score, Outcome: sim.OutcomeCollision}
		if _, err := db.RecordRun(r); err != nil {
			t.Fatal(err)
		}
	}
	top, err := db.TopRuns(3)
	if err != nil {
		t.Fatal(err)
	}
	if len(top) != 3 || top[0].Score != 30 || top[1].Score != 12 || top[2].Seed != 0 {
		t.Fatalf("unexpected order: %+v", top)
	}
	if top[0].Outcome != "collision" {
		t.Fatalf("outcome not stored, got %q", top[0].Outcome)
	}
}
