package savings

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Goal represents a savings goal. Like debts, goals are values: the
// allocation engine returns updated copies and never mutates its input.
type Goal struct {
	ID            uuid.UUID
	Name          string
	Color         string
	TargetAmount  float64
	CurrentAmount float64   // may exceed TargetAmount after auto-distribution
	Deadline      time.Time // display only, not used by allocation math
	CreatedAt     time.Time
}

// Remaining is the amount still needed to reach the target, floored at
// zero for goals already at or past it.
func (g Goal) Remaining() float64 {
	return math.Max(0, g.TargetAmount-g.CurrentAmount)
}

// Progress is the completion fraction in [0, 1] for display.
func (g Goal) Progress() float64 {
	if g.TargetAmount <= 0 {
		return 0
	}

	return math.Min(1, g.CurrentAmount/g.TargetAmount)
}
