package sim

// Fade drives the death and respawn transition. Current is clamped to
// [Min, Max] and moves at Speed units per second.
type Fade struct {
	Min     float64
	Max     float64
	Current float64
	Speed   float64
}

// NewFade starts fully faded and fades in over seconds.
func NewFade(seconds float64) Fade {
	return Fade{Min: 0, Max: 1, Current: 1, Speed: -1 / seconds}
}

// Advance moves Current by Speed*dt and reports whether it sits at Max.
func (f *Fade) Advance(dt float64) bool {
	f.Current = min(max(f.Current+f.Speed*dt, f.Min), f.Max)
	return f.Current >= f.Max
}

// FadeOut turns the fade toward Max.
func (f *Fade) FadeOut() {
	if f.Speed < 0 {
		f.Speed = -f.Speed
	}
}
