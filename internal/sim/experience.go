package sim

// Experience tracks level progress. The threshold is the same for every level.
type Experience struct {
	Level          int
	Exp            int
	ExpToNextLevel int
}

func NewExperience(perLevel int) Experience {
	if perLevel < 1 {
		perLevel = 1
	}
	return Experience{ExpToNextLevel: perLevel}
}

// Add grants n experience and returns how many levels were gained.
func (e *Experience) Add(n int) int {
	e.Exp += n
	ups := 0
	for e.Exp >= e.ExpToNextLevel {
		e.Exp -= e.ExpToNextLevel
		e.Level++
		ups++
	}
	return ups
}

// Ratio is the progress toward the next level in [0, 1).
func (e *Experience) Ratio() float64 {
	return float64(e.Exp) / float64(e.ExpToNextLevel)
}

// AttackSlots counts the thresholds (ascending) that score has reached.
func AttackSlots(score int, thresholds []int) int {
	n := 0
	for _, t := range thresholds {
		if score < t {
			break
		}
		n++
	}
	return n
}
