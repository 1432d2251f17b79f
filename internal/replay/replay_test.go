package replay

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/Garsondee/Delay-The-Inevitable/internal/sim"
)

const frame = 1.0 / 60

func recordAutopilot(t *testing.T, seed int64, turns int) (*Recorder, *sim.State) {
	t.Helper()
	s, err := sim.New(sim.DefaultConfig(), sim.WithSeed(seed))
	if err != nil {
		t.Fatal(err)
	}
	rec := NewRecorder(s)
	var pilot sim.Autopilot
	for i := 0; i < turns && !s.Dead(); i++ {
		pilot.Drive(s, rec)
		for f := 0; f < 6; f++ {
			rec.Update(frame)
		}
	}
	return rec, s
}

// --- Recorder ---

func TestRecorder_CollapsesEqualFrames(t *testing.T) {
	s, err := sim.New(sim.DefaultConfig(), sim.WithSeed(1))
	if err != nil {
		t.Fatal(err)
	}
	rec := NewRecorder(s)
	rec.Update(frame)
	rec.Update(frame)
	rec.Update(frame)
	rec.Tick(sim.DirLeft)
	rec.Update(0.5)

	got := rec.Recording().Inputs
	if len(got) != 3 {
		t.Fatalf("expected wait, move, wait; got %+v", got)
	}
	if got[0].Kind != InputWait || got[0].Frames != 3 {
		t.Fatalf("expected 3 collapsed frames, got %+v", got[0])
	}
	if got[1].Kind != InputMove || got[1].Dir != sim.DirLeft {
		t.Fatalf("expected a left move, got %+v", got[1])
	}
	if s.Player() != sim.Pos(-1, 0) {
		t.Fatalf("recorder must forward commands, player at %s", s.Player())
	}
}

func TestRecorder_RecordingIsACopy(t *testing.T) {
	s, _ := sim.New(sim.DefaultConfig(), sim.WithSeed(1))
	rec := NewRecorder(s)
	rec.Tick(sim.DirUp)
	snap := rec.Recording()
	rec.Tick(sim.DirUp)
	if len(snap.Inputs) != 1 || rec.Len() != 2 {
		t.Fatalf("snapshot changed with later input: %d/%d", len(snap.Inputs), rec.Len())
	}
}

// --- Playback ---

func TestPlay_ReproducesRun(t *testing.T) {
	rec, live := recordAutopilot(t, 77, 300)

	b, err := Encode(rec.Recording())
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := Decode(b)
	if err != nil {
		t.Fatal(err)
	}
	played, err := Play(decoded, sim.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	if played.Score() != live.Score() || played.TickCount() != live.TickCount() {
		t.Fatalf("replay diverged: score %d vs %d, tick %d vs %d",
			played.Score(), live.Score(), played.TickCount(), live.TickCount())
	}
	if played.Player() != live.Player() || played.Dead() != live.Dead() {
		t.Fatalf("replay diverged: player %s vs %s", played.Player(), live.Player())
	}
	if len(played.Enemies()) != len(live.Enemies()) {
		t.Fatalf("replay diverged: %d vs %d enemies", len(played.Enemies()), len(live.Enemies()))
	}
}

func TestPlay_NoInputs(t *testing.T) {
	_, err := Play(&Recording{Version: Version, Seed: 1}, sim.DefaultConfig())
	if !errors.Is(err, ErrNoReplayInputs) {
		t.Fatalf("expected ErrNoReplayInputs, got %v", err)
	}
}

// --- Files ---

func TestSaveLoad(t *testing.T) {
	rec, _ := recordAutopilot(t, 3, 20)
	path := filepath.Join(t.TempDir(), "run.replay")
	if err := Save(path, rec.Recording()); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Seed != 3 || len(got.Inputs) != rec.Len() || got.Ticks() != rec.Recording().Ticks() {
		t.Fatalf("loaded recording differs: seed=%d inputs=%d", got.Seed, len(got.Inputs))
	}
}

func TestDecode_RejectsOtherVersion(t *testing.T) {
	b, err := Encode(&Recording{Version: Version + 1, Seed: 1, Inputs: []Input{{Kind: InputKill}}})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Decode(b); !errors.Is(err, ErrVersion) {
		t.Fatalf("expected ErrVersion, got %v", err)
	}
}
