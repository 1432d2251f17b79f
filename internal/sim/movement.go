package sim

import "fmt"

// MovementKind selects an enemy's stepping rule.
type MovementKind int

const (
	MoveDirect       MovementKind = iota // one orthogonal step along the dominant axis
	MoveNeighbour                        // one step on both axes at once
	MoveSingleDouble                     // alternates one and two direct steps
)

func (k MovementKind) String() string {
	switch k {
	case MoveDirect:
		return "direct"
	case MoveNeighbour:
		return "neighbour"
	case MoveSingleDouble:
		return "single_double"
	default:
		return "unknown"
	}
}

// ParseMovementKind accepts the names produced by String.
func ParseMovementKind(s string) (MovementKind, error) {
	switch s {
	case "direct":
		return MoveDirect, nil
	case "neighbour", "neighbor":
		return MoveNeighbour, nil
	case "single_double":
		return MoveSingleDouble, nil
	}
	return 0, fmt.Errorf("unknown movement kind %q", s)
}

// Movement is per-enemy AI state. It is a value: copying a prefab's movement
// gives the copy its own single/double toggle.
type Movement struct {
	Kind       MovementKind
	nextDouble bool
}

// Step returns one move toward delta (target minus self). The caller clamps
// the result into the arena; enemies never wrap.
func (m *Movement) Step(delta Position) Position {
	switch m.Kind {
	case MoveDirect:
		return directStep(delta)
	case MoveNeighbour:
		return delta.Sign()
	case MoveSingleDouble:
		step := directStep(delta)
		if m.nextDouble {
			step = step.Scale(2)
		}
		m.nextDouble = !m.nextDouble
		return step
	default:
		panic(fmt.Sprintf("invariant: unknown movement kind %d", m.Kind))
	}
}

// directStep moves along the axis with the larger distance, x on ties.
func directStep(delta Position) Position {
	if abs(delta.X) >= abs(delta.Y) {
		return Position{X: sign(delta.X)}
	}
	return Position{Y: sign(delta.Y)}
}
