package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/Garsondee/Delay-The-Inevitable/internal/sim"
)

const testRate = beep.SampleRate(44100)

func drain(t *testing.T, s beep.Streamer) (n int, peak float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	for i := 0; i < 10000; i++ {
		k, ok := s.Stream(buf)
		for j := 0; j < k; j++ {
			peak = math.Max(peak, math.Abs(buf[j][0]))
		}
		n += k
		if !ok {
			return n, peak
		}
	}
	t.Fatal("streamer never drained")
	return 0, 0
}

// --- Oscillator ---

func TestOscillator_StopsAfterDuration(t *testing.T) {
	osc := NewOscillator(440, 10*time.Millisecond, WaveSine, testRate)
	n, peak := drain(t, osc)
	if n != testRate.N(10*time.Millisecond) {
		t.Fatalf("expected %d samples, got %d", testRate.N(10*time.Millisecond), n)
	}
	if peak > 1 || peak == 0 {
		t.Fatalf("sine peak out of range: %f", peak)
	}
}

func TestOscillator_SquareIsBinary(t *testing.T) {
	osc := NewOscillator(220, 5*time.Millisecond, WaveSquare, testRate)
	buf := make([][2]float64, 64)
	n, _ := osc.Stream(buf)
	for i := 0; i < n; i++ {
		if v := buf[i][0]; v != 1 && v != -1 {
			t.Fatalf("square sample %d = %f", i, v)
		}
	}
}

// --- Envelope ---

func TestEnvelope_StartsSilent(t *testing.T) {
	env := NewEnvelope(NewOscillator(0, 20*time.Millisecond, WaveSquare, testRate),
		20*time.Millisecond, 5*time.Millisecond, 5*time.Millisecond, testRate)
	buf := make([][2]float64, 4)
	env.Stream(buf)
	if buf[0][0] != 0 {
		t.Fatalf("first sample should be silent under the attack ramp, got %f", buf[0][0])
	}
	if buf[3][0] <= 0 || buf[3][0] >= 1 {
		t.Fatalf("attack should ramp up, got %f", buf[3][0])
	}
}

// --- Cues ---

func TestBuildCue_EveryCueDrains(t *testing.T) {
	for c := Cue(0); c < cueCount; c++ {
		s := BuildCue(c, testRate, 0.5)
		if s == nil {
			t.Fatalf("cue %s has no streamer", c)
		}
		if n, _ := drain(t, s); n == 0 {
			t.Fatalf("cue %s produced no samples", c)
		}
	}
}

func TestBuildCue_ZeroVolumeIsSilent(t *testing.T) {
	_, peak := drain(t, BuildCue(CueKill, testRate, 0))
	if peak != 0 {
		t.Fatalf("expected silence, peak %f", peak)
	}
}

// --- SoundManager ---

func TestSoundManager_UninitialisedCountsOncePerTurn(t *testing.T) {
	sm := NewSoundManager()
	sm.OnEvent(sim.Event{Tick: 4, Kind: sim.EventEnemyKilled})
	sm.OnEvent(sim.Event{Tick: 4, Kind: sim.EventEnemyKilled})
	sm.OnEvent(sim.Event{Tick: 5, Kind: sim.EventEnemyKilled})
	sm.OnEvent(sim.Event{Tick: 5, Kind: sim.EventMove})
	if n := sm.Played(CueKill); n != 2 {
		t.Fatalf("expected 2 kill cues, got %d", n)
	}
	sm.Cleanup()
}

func TestSoundManager_ResetForgetsTurns(t *testing.T) {
	sm := NewSoundManager()
	sm.OnEvent(sim.Event{Tick: 1, Kind: sim.EventEnemySpawnQueued})
	sm.OnEvent(sim.Event{Kind: sim.EventReset})
	sm.OnEvent(sim.Event{Tick: 1, Kind: sim.EventEnemySpawnQueued})
	if n := sm.Played(CueSpawnWarning); n != 2 {
		t.Fatalf("a new game's first turn should play again, got %d cues", n)
	}
}

func TestSoundManager_ListensToState(t *testing.T) {
	sm := NewSoundManager()
	s, err := sim.New(sim.DefaultConfig(), sim.WithSeed(5), sim.WithListener(sm))
	if err != nil {
		t.Fatal(err)
	}
	s.Tick(sim.DirNone)
	if sm.Played(CueSpawnWarning) != 1 {
		t.Fatal("expected a spawn warning on the first turn")
	}
	s.KillPlayer()
	if sm.Played(CueDeath) != 1 {
		t.Fatal("expected a death cue")
	}
}
