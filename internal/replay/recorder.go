package replay

import "github.com/Garsondee/Delay-The-Inevitable/internal/sim"

// Recorder forwards commands to a State and records them. Hosts call the
// Recorder instead of the State; observers are read from State directly.
type Recorder struct {
	State *sim.State
	rec   Recording
}

var _ sim.Driver = (*Recorder)(nil)

// NewRecorder starts recording s, which must be fresh from sim.New.
func NewRecorder(s *sim.State) *Recorder {
	return &Recorder{State: s, rec: Recording{Version: Version, Seed: s.Seed()}}
}

func (r *Recorder) push(in Input) {
	Apply(r.State, in)
	r.rec.Inputs = append(r.rec.Inputs, in)
}

func (r *Recorder) Tick(dir sim.Position) { r.push(Input{Kind: InputMove, Dir: dir}) }
func (r *Recorder) UseUltimate()          { r.push(Input{Kind: InputUltimate}) }
func (r *Recorder) SelectUpgrade()        { r.push(Input{Kind: InputSelect}) }
func (r *Recorder) KillPlayer()           { r.push(Input{Kind: InputKill}) }

// Update advances the State by dt. Runs of equal frame times collapse
// into one Wait input.
func (r *Recorder) Update(dt float64) {
	r.State.Update(dt)
	if n := len(r.rec.Inputs); n > 0 {
		last := &r.rec.Inputs[n-1]
		if last.Kind == InputWait && last.DT == dt {
			last.Frames++
			return
		}
	}
	r.rec.Inputs = append(r.rec.Inputs, Input{Kind: InputWait, DT: dt, Frames: 1})
}

// Recording returns a copy of everything recorded so far.
func (r *Recorder) Recording() *Recording {
	out := r.rec
	out.Inputs = append([]Input(nil), r.rec.Inputs...)
	return &out
}

// Len is the number of recorded inputs.
func (r *Recorder) Len() int {
	return len(r.rec.Inputs)
}
