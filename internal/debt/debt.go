package debt

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Type categorizes a debt for display and reporting.
type Type string

const (
	TypeCreditCard  Type = "credit_card"
	TypeLoan        Type = "loan"
	TypeMortgage    Type = "mortgage"
	TypeStudentLoan Type = "student_loan"
	TypePersonal    Type = "personal"
	TypeOther       Type = "other"
)

// Debt represents a single outstanding debt. Engine functions treat it as a
// value: they never mutate a Debt in place, they return an updated copy.
type Debt struct {
	ID              uuid.UUID
	Name            string
	Creditor        string
	TotalAmount     float64
	RemainingAmount float64  // clamped to 0, never above TotalAmount
	InterestRate    *float64 // annual percentage rate; nil means interest-free
	MinimumPayment  float64
	DueDate         time.Time
	Type            Type
	Color           string
	CreatedAt       time.Time
}

// MonthlyRate returns the monthly interest rate, 0 for interest-free debts.
func (d Debt) MonthlyRate() float64 {
	if d.InterestRate == nil {
		return 0
	}

	return *d.InterestRate / 100 / 12
}

// MonthlyInterest is the interest that accrues on the current balance over
// one month.
func (d Debt) MonthlyInterest() float64 {
	return d.RemainingAmount * d.MonthlyRate()
}

// Urgency buckets a debt by how close its due date is.
type Urgency int

const (
	UrgencyDueSoon      Urgency = 1 // due within 7 days
	UrgencyDueThisMonth Urgency = 2 // due within 30 days
	UrgencyUpcoming     Urgency = 3
)

func (u Urgency) String() string {
	switch u {
	case UrgencyDueSoon:
		return "Due Soon"
	case UrgencyDueThisMonth:
		return "Due This Month"
	case UrgencyUpcoming:
		return "Upcoming"
	}

	return "Unknown"
}

// UrgencyAt buckets the debt relative to now. An overdue date falls into
// the most urgent bucket.
func (d Debt) UrgencyAt(now time.Time) Urgency {
	until := d.DueDate.Sub(now)

	switch {
	case until < 7*24*time.Hour:
		return UrgencyDueSoon
	case until < 30*24*time.Hour:
		return UrgencyDueThisMonth
	default:
		return UrgencyUpcoming
	}
}

// SortByUrgency returns the debts in display order: urgency bucket first,
// due date ascending within a bucket. The input slice is left untouched and
// now is injected so the ordering is deterministic under test.
func SortByUrgency(debts []Debt, now time.Time) []Debt {
	out := make([]Debt, len(debts))
	copy(out, debts)

	sort.SliceStable(out, func(i, j int) bool {
		ui, uj := out[i].UrgencyAt(now), out[j].UrgencyAt(now)
		if ui != uj {
			return ui < uj
		}

		return out[i].DueDate.Before(out[j].DueDate)
	})

	return out
}
