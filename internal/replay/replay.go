// Package replay records the command stream of a seeded session and plays
// it back against a fresh State.
package replay

import (
	"errors"
	"fmt"
	"os"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/Garsondee/Delay-The-Inevitable/internal/sim"
)

// Version is bumped whenever Input changes meaning.
const Version = 1

var (
	ErrNoReplayInputs = errors.New("replay has no inputs")
	ErrVersion        = errors.New("unsupported replay version")
)

// InputKind is one recorded command.
type InputKind uint8

const (
	InputMove InputKind = iota
	InputUltimate
	InputSelect
	InputWait
	InputKill
)

func (k InputKind) String() string {
	switch k {
	case InputMove:
		return "move"
	case InputUltimate:
		return "ultimate"
	case InputSelect:
		return "select"
	case InputWait:
		return "wait"
	case InputKill:
		return "kill"
	default:
		return "unknown"
	}
}

// Input is a single command. Wait stands for Frames consecutive Update
// calls of DT seconds each.
type Input struct {
	Kind   InputKind    `msgpack:"k"`
	Dir    sim.Position `msgpack:"d,omitempty"`
	DT     float64      `msgpack:"t,omitempty"`
	Frames int          `msgpack:"n,omitempty"`
}

// Recording is a seed plus everything the player did.
type Recording struct {
	Version int     `msgpack:"v"`
	Seed    int64   `msgpack:"seed"`
	Inputs  []Input `msgpack:"inputs"`
}

// Ticks counts the Move inputs.
func (r *Recording) Ticks() int {
	n := 0
	for _, in := range r.Inputs {
		if in.Kind == InputMove {
			n++
		}
	}
	return n
}

// Encode serialises the recording as msgpack.
func Encode(r *Recording) ([]byte, error) {
	b, err := msgpack.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encode replay: %w", err)
	}
	return b, nil
}

// Decode parses a msgpack recording and checks its version.
func Decode(b []byte) (*Recording, error) {
	var r Recording
	if err := msgpack.Unmarshal(b, &r); err != nil {
		return nil, fmt.Errorf("decode replay: %w", err)
	}
	if r.Version != Version {
		return nil, fmt.Errorf("%w: %d", ErrVersion, r.Version)
	}
	return &r, nil
}

// Save writes the recording to path.
func Save(path string, r *Recording) error {
	b, err := Encode(r)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil { // #nosec G306
		return fmt.Errorf("save replay: %w", err)
	}
	return nil
}

// Load reads a recording from path.
func Load(path string) (*Recording, error) {
	b, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		return nil, fmt.Errorf("load replay: %w", err)
	}
	return Decode(b)
}

// Apply issues one input to s.
func Apply(s *sim.State, in Input) {
	switch in.Kind {
	case InputMove:
		s.Tick(in.Dir)
	case InputUltimate:
		s.UseUltimate()
	case InputSelect:
		s.SelectUpgrade()
	case InputWait:
		for i := 0; i < max(in.Frames, 1); i++ {
			s.Update(in.DT)
		}
	case InputKill:
		s.KillPlayer()
	default:
		panic(fmt.Sprintf("invariant: unknown replay input %d", in.Kind))
	}
}

// Play builds a State from cfg and the recorded seed and replays every
// input. Extra options (listeners) are applied after the seed.
func Play(r *Recording, cfg sim.Config, opts ...sim.Option) (*sim.State, error) {
	if len(r.Inputs) == 0 {
		return nil, ErrNoReplayInputs
	}
	s, err := sim.New(cfg, append([]sim.Option{sim.WithSeed(r.Seed)}, opts...)...)
	if err != nil {
		return nil, err
	}
	for _, in := range r.Inputs {
		Apply(s, in)
	}
	return s, nil
}
