package debt

import (
	"math"
	"sort"

	"github.com/google/uuid"
)

// maxProjectionMonths caps the amortization simulation (100 years) so it
// terminates even when the payment barely beats the monthly interest.
const maxProjectionMonths = 1200

// NeverSentinel is the wire value for projections that never reach zero.
// Internally the Never flag carries that state; the sentinel only exists at
// serialization boundaries.
const NeverSentinel = -1

// PayoffProjection is the minimum-payment outlook for one debt: either it
// amortizes after Months with TotalInterest paid over its lifetime, or
// Never is set and both numbers are meaningless.
type PayoffProjection struct {
	DebtID        uuid.UUID
	Months        int
	TotalInterest float64
	Never         bool
}

// SentinelMonths returns Months, or NeverSentinel for a debt that never
// amortizes at its current minimum payment.
func (p PayoffProjection) SentinelMonths() int {
	if p.Never {
		return NeverSentinel
	}

	return p.Months
}

// SentinelInterest returns TotalInterest, or NeverSentinel when the debt
// never amortizes.
func (p PayoffProjection) SentinelInterest() float64 {
	if p.Never {
		return NeverSentinel
	}

	return p.TotalInterest
}

// Project computes the payoff projection for a debt assuming only the
// minimum payment is made every month, starting from the current balance.
//
// A zero balance pays off immediately. An interest-free debt divides out
// directly. Otherwise the balance is simulated month by month; when the
// minimum payment does not cover even the first month's interest the
// principal never decreases and the projection is marked Never. The
// already-paid case (0 months) and the Never case are distinct outcomes.
func Project(d Debt) PayoffProjection {
	p := PayoffProjection{DebtID: d.ID}

	if d.RemainingAmount <= 0 {
		return p
	}

	rate := d.MonthlyRate()
	if rate == 0 {
		p.Months = int(math.Ceil(d.RemainingAmount / d.MinimumPayment))
		return p
	}

	if d.MinimumPayment <= d.RemainingAmount*rate {
		p.Never = true
		return p
	}

	balance := d.RemainingAmount

	for balance > 0 {
		if p.Months >= maxProjectionMonths {
			return PayoffProjection{DebtID: d.ID, Never: true}
		}

		interest := balance * rate
		p.TotalInterest += interest
		balance -= d.MinimumPayment - interest
		p.Months++
	}

	return p
}

// Risk classifies the debt-to-income ratio.
type Risk string

const (
	RiskLow      Risk = "low"      // ratio <= 20%
	RiskModerate Risk = "moderate" // ratio <= 36%
	RiskHigh     Risk = "high"
)

// ClassifyRisk maps a DTI percentage to its risk band. The thresholds are
// fixed domain constants.
func ClassifyRisk(ratio float64) Risk {
	switch {
	case ratio <= 20:
		return RiskLow
	case ratio <= 36:
		return RiskModerate
	default:
		return RiskHigh
	}
}

// Statistics is the derived debt report. It is never persisted.
type Statistics struct {
	TotalDebt            float64
	TotalMinimumPayments float64
	// TotalMonthlyInterest is the current month's interest accrual across
	// all debts, a snapshot independent of the lifetime projections.
	TotalMonthlyInterest float64
	DebtToIncomeRatio    float64
	Risk                 Risk
	Projections          []PayoffProjection
}

// ComputeStatistics aggregates totals and per-debt payoff projections under
// the minimum-payment assumption. Projections keep the input order. A zero
// or negative monthly income yields a ratio of 0 rather than dividing by
// zero.
func ComputeStatistics(debts []Debt, monthlyIncome float64) Statistics {
	s := Statistics{
		Projections: make([]PayoffProjection, 0, len(debts)),
	}

	for _, d := range debts {
		s.TotalDebt += d.RemainingAmount
		s.TotalMinimumPayments += d.MinimumPayment
		s.TotalMonthlyInterest += d.MonthlyInterest()
		s.Projections = append(s.Projections, Project(d))
	}

	if monthlyIncome > 0 {
		s.DebtToIncomeRatio = s.TotalMinimumPayments / monthlyIncome * 100
	}

	s.Risk = ClassifyRisk(s.DebtToIncomeRatio)

	return s
}

// RankByPayoff orders the open debts (positive balance) by how soon they
// pay off under minimum payments: shortest projection first, never-
// amortizing debts always last, ties broken by the higher interest rate.
func RankByPayoff(debts []Debt) []Debt {
	type ranked struct {
		d Debt
		p PayoffProjection
	}

	open := make([]ranked, 0, len(debts))

	for _, d := range debts {
		if d.RemainingAmount <= 0 {
			continue
		}

		open = append(open, ranked{d: d, p: Project(d)})
	}

	sort.SliceStable(open, func(i, j int) bool {
		a, b := open[i], open[j]

		if a.p.Never != b.p.Never {
			return !a.p.Never
		}

		if !a.p.Never && a.p.Months != b.p.Months {
			return a.p.Months < b.p.Months
		}

		return rateOf(a.d) > rateOf(b.d)
	})

	out := make([]Debt, len(open))
	for i, r := range open {
		out[i] = r.d
	}

	return out
}

// PriorityDebt returns the debt the user should tackle first, per
// RankByPayoff. ok is false when every debt is already paid off.
func PriorityDebt(debts []Debt) (Debt, bool) {
	ranked := RankByPayoff(debts)
	if len(ranked) == 0 {
		return Debt{}, false
	}

	return ranked[0], true
}

func rateOf(d Debt) float64 {
	if d.InterestRate == nil {
		return 0
	}

	return *d.InterestRate
}
