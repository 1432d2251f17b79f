package game

import "github.com/hajimehoshi/ebiten/v2"

// command is one edge-triggered player action.
type command int

const (
	cmdUp command = iota
	cmdDown
	cmdLeft
	cmdRight
	cmdWait
	cmdUltimate
	cmdSelect
	cmdRestart
	cmdCopy
	cmdQuit
)

type binding struct {
	keys []ebiten.Key
	cmd  command
}

// bindings are polled in order, so simultaneous presses resolve top down.
var bindings = []binding{
	{[]ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyW}, cmdUp},
	{[]ebiten.Key{ebiten.KeyArrowDown, ebiten.KeyS}, cmdDown},
	{[]ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA}, cmdLeft},
	{[]ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD}, cmdRight},
	{[]ebiten.Key{ebiten.KeyPeriod}, cmdWait},
	{[]ebiten.Key{ebiten.KeySpace}, cmdUltimate},
	{[]ebiten.Key{ebiten.KeyEnter, ebiten.KeyNumpadEnter}, cmdSelect},
	{[]ebiten.Key{ebiten.KeyR}, cmdRestart},
	{[]ebiten.Key{ebiten.KeyC}, cmdCopy},
	{[]ebiten.Key{ebiten.KeyEscape}, cmdQuit},
}

// keyEdges turns held keys into one command per press.
type keyEdges struct {
	prev map[ebiten.Key]bool
}

func newKeyEdges() keyEdges {
	return keyEdges{prev: make(map[ebiten.Key]bool)}
}

// poll reads every bound key through pressed and returns the commands whose
// key went down since the last poll. Each command fires at most once.
func (k *keyEdges) poll(pressed func(ebiten.Key) bool) []command {
	var out []command
	for _, b := range bindings {
		fired := false
		for _, key := range b.keys {
			down := pressed(key)
			if down && !k.prev[key] && !fired {
				out = append(out, b.cmd)
				fired = true
			}
			k.prev[key] = down
		}
	}
	return out
}
