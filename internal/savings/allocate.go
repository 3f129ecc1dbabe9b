package savings

import (
	"errors"
	"fmt"
	"math"

	"github.com/davidmns/centavo/internal/budget"
)

// ErrNoEligibleGoals is returned by DistributeAuto when every goal has
// already reached its target, so there is nothing to allocate to.
var ErrNoEligibleGoals = errors.New("no goals with remaining need")

// ValidationError reports an allocation input that violates a domain rule.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// DistributeAuto splits amount across the goals proportionally to each
// goal's remaining need and returns the updated copies. A goal at or past
// its target receives exactly 0. The allocations sum to amount (within
// floating-point rounding) whenever the total need covers it; when amount
// exceeds the total need the overshoot lands on the goals proportionally,
// intentionally unclamped past 100%.
func DistributeAuto(goals []Goal, amount float64) ([]Goal, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return nil, &ValidationError{Field: "amount", Reason: "must be a positive number"}
	}

	var totalNeeded float64
	for _, g := range goals {
		totalNeeded += g.Remaining()
	}

	if totalNeeded <= 0 {
		return nil, ErrNoEligibleGoals
	}

	out := make([]Goal, len(goals))
	copy(out, goals)

	for i := range out {
		need := out[i].Remaining()
		if need <= 0 {
			continue
		}

		out[i].CurrentAmount += amount * need / totalNeeded
	}

	return out, nil
}

// AllocateFunds applies a manual allocation to a single goal. Unlike
// DistributeAuto, the manual flow refuses to push a goal past its target,
// and it also checks the externally supplied available balance.
func AllocateFunds(g Goal, amount, availableBalance float64) (Goal, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return Goal{}, &ValidationError{Field: "amount", Reason: "must be a positive number"}
	}

	if amount > availableBalance {
		return Goal{}, &ValidationError{
			Field:  "amount",
			Reason: fmt.Sprintf("exceeds available balance of %.2f", availableBalance),
		}
	}

	if amount > g.Remaining() {
		return Goal{}, &ValidationError{
			Field:  "amount",
			Reason: fmt.Sprintf("exceeds the goal's remaining need of %.2f", g.Remaining()),
		}
	}

	g.CurrentAmount += amount

	return g, nil
}

// Plan summarizes how much of a month's income is free to put aside.
type Plan struct {
	TotalIncome         float64
	TotalExpenses       float64
	AvailableForSavings float64
	// RecommendedSavings currently equals AvailableForSavings. The 1:1
	// policy is a placeholder; callers wanting a partial-save rule (say,
	// 20% of available) apply it on top of this value.
	RecommendedSavings float64
	SavingsPercentage  float64
}

// RecommendedPlan derives the savings recommendation from the monthly
// budget, any additional income entries and the month's expenses.
func RecommendedPlan(monthlyBudget float64, incomes []budget.Income, expenses []budget.Expense) Plan {
	p := Plan{TotalIncome: monthlyBudget}

	for _, in := range incomes {
		p.TotalIncome += in.Amount
	}

	for _, e := range expenses {
		p.TotalExpenses += e.Amount
	}

	p.AvailableForSavings = math.Max(0, p.TotalIncome-p.TotalExpenses)
	p.RecommendedSavings = p.AvailableForSavings

	if p.TotalIncome > 0 {
		p.SavingsPercentage = p.RecommendedSavings / p.TotalIncome * 100
	}

	return p
}
