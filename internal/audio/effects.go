package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType selects an oscillator shape.
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	noise    *rand.Rand
}

// NewOscillator streams duration worth of a raw wave at freq Hz.
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		noise:    rand.New(rand.NewSource(int64(freq*1000) + 1)), // #nosec G404 -- audio noise
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1
			} else {
				val = -1
			}
		case WaveSaw:
			val = 2 * (o.phase - 0.5)
		case WaveNoise:
			val = o.noise.Float64()*2 - 1
		}
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// sweep is a sine whose frequency slides linearly from one value to another.
type sweep struct {
	from, to float64
	phase    float64
	duration int
	position int
	rate     beep.SampleRate
}

// NewSweep slides a sine from one frequency to another over duration.
func NewSweep(from, to float64, duration time.Duration, rate beep.SampleRate) beep.Streamer {
	return &sweep{from: from, to: to, duration: rate.N(duration), rate: rate}
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.position >= s.duration {
			return i, i > 0
		}
		t := float64(s.position) / float64(s.duration)
		freq := s.from + (s.to-s.from)*t
		val := math.Sin(2 * math.Pi * s.phase)
		samples[i][0] = val
		samples[i][1] = val
		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.position++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// envelope applies a linear attack and release to a stream.
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope shapes s with an attack ramp and a release ramp.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: max(total-att-rel, 0),
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}
		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = max(float64(e.totalSamples-e.position)/float64(e.releaseSamples), 0)
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s linearly; zero or less is silent since Log2(0) is -Inf.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

func tone(freq float64, d time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewEnvelope(NewOscillator(freq, d, wave, rate), d, 4*time.Millisecond, d/2, rate)
}

// Cue is a short sound tied to a game event.
type Cue int

const (
	CueKill Cue = iota
	CueLevelUp
	CueDeath
	CueWrap
	CueSpawnWarning
	CueUltimate
	cueCount
)

func (c Cue) String() string {
	switch c {
	case CueKill:
		return "kill"
	case CueLevelUp:
		return "level_up"
	case CueDeath:
		return "death"
	case CueWrap:
		return "wrap"
	case CueSpawnWarning:
		return "spawn_warning"
	case CueUltimate:
		return "ultimate"
	default:
		return "unknown"
	}
}

// BuildCue returns a fresh streamer for c at the given volume.
func BuildCue(c Cue, rate beep.SampleRate, vol float64) beep.Streamer {
	var s beep.Streamer
	switch c {
	case CueKill:
		s = tone(660, 60*time.Millisecond, WaveSquare, rate)
	case CueLevelUp:
		// C5 E5 G5
		s = beep.Seq(
			tone(523.25, 70*time.Millisecond, WaveSine, rate),
			tone(659.25, 70*time.Millisecond, WaveSine, rate),
			tone(783.99, 120*time.Millisecond, WaveSine, rate),
		)
	case CueDeath:
		d := 400 * time.Millisecond
		s = beep.Mix(
			NewEnvelope(NewOscillator(0, d, WaveNoise, rate), d, 2*time.Millisecond, 350*time.Millisecond, rate),
			newVolume(tone(90, d, WaveSaw, rate), 0.5),
		)
	case CueWrap:
		d := 90 * time.Millisecond
		s = NewEnvelope(NewSweep(300, 900, d, rate), d, 5*time.Millisecond, 40*time.Millisecond, rate)
	case CueSpawnWarning:
		s = tone(150, 90*time.Millisecond, WaveSine, rate)
	case CueUltimate:
		d := 250 * time.Millisecond
		s = beep.Mix(
			newVolume(tone(880, d, WaveSine, rate), 0.7),
			newVolume(tone(1320, d, WaveSine, rate), 0.3),
		)
	default:
		return nil
	}
	return newVolume(s, vol)
}
