// Package audio plays short synthesised cues in response to simulation
// events.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/Garsondee/Delay-The-Inevitable/internal/sim"
)

const sampleRate = beep.SampleRate(44100)

// SoundManager is a sim.Listener. Until Initialize succeeds every call is
// a no-op, so a machine without audio still plays silently.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	volume      float64
	lastTick    [cueCount]int
	played      [cueCount]int
}

func NewSoundManager() *SoundManager {
	sm := &SoundManager{mixer: &beep.Mixer{}, volume: 0.4}
	for i := range sm.lastTick {
		sm.lastTick[i] = -1
	}
	return sm
}

// Initialize opens the speaker. Callers log the error and carry on.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup silences everything still playing.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

// SetVolume sets the linear master volume in [0, 1].
func (sm *SoundManager) SetVolume(v float64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.volume = min(max(v, 0), 1)
}

// Played reports how many times c was triggered, whether or not a speaker
// was open.
func (sm *SoundManager) Played(c Cue) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.played[c]
}

// OnEvent implements sim.Listener.
func (sm *SoundManager) OnEvent(e sim.Event) {
	switch e.Kind {
	case sim.EventEnemyKilled:
		sm.trigger(CueKill, e.Tick)
	case sim.EventLevelUp:
		sm.trigger(CueLevelUp, e.Tick)
	case sim.EventPlayerDied:
		sm.trigger(CueDeath, e.Tick)
	case sim.EventWrap:
		sm.trigger(CueWrap, e.Tick)
	case sim.EventEnemySpawnQueued:
		sm.trigger(CueSpawnWarning, e.Tick)
	case sim.EventUltimateOn:
		sm.trigger(CueUltimate, e.Tick)
	case sim.EventReset:
		sm.clearTurns()
	}
}

// clearTurns forgets the last turn of every cue; tick numbers restart at
// zero on a new game.
func (sm *SoundManager) clearTurns() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	for i := range sm.lastTick {
		sm.lastTick[i] = -1
	}
}

// trigger plays c at most once per turn; a multi-kill strike is one blip.
func (sm *SoundManager) trigger(c Cue, tick int) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.lastTick[c] == tick {
		return
	}
	sm.lastTick[c] = tick
	sm.played[c]++
	if !sm.initialized {
		return
	}
	s := BuildCue(c, sampleRate, sm.volume)
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}
