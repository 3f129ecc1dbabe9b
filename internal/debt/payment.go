package debt

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// PaymentType classifies how a payment relates to the debt's balance.
// "payoff" is a caller hint; the processor does not require the amount to
// equal the full balance when it is set.
type PaymentType string

const (
	PaymentMinimum PaymentType = "minimum"
	PaymentExtra   PaymentType = "extra"
	PaymentPayoff  PaymentType = "payoff"
)

// Payment records a single payment applied to a debt.
type Payment struct {
	ID          uuid.UUID
	DebtID      uuid.UUID
	Amount      float64
	Type        PaymentType
	Description string
	// InterestPortion and PrincipalPortion split the payment against the
	// pre-payment month's interest. The split is informational only: the
	// full Amount always comes off the balance.
	InterestPortion  float64
	PrincipalPortion float64
	Date             time.Time
}

// PaymentParams is the raw payment input collected from the caller.
// An empty Type lets the processor classify the payment itself.
type PaymentParams struct {
	Amount      float64
	Type        PaymentType
	Description string
}

// ValidationError reports an input that violates a domain rule. It names
// the offending field so callers can render a targeted message.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ApplyPayment validates the payment against the debt and returns the debt
// with the payment applied plus the record to persist. The input debt is
// not mutated; now becomes the payment timestamp.
//
// The amount must be a positive finite number no greater than the remaining
// balance; violations are rejected, never clamped. The remaining balance is
// floored at zero, which is a domain rule rather than error suppression.
func ApplyPayment(d Debt, params PaymentParams, now time.Time) (Debt, Payment, error) {
	if math.IsNaN(params.Amount) || math.IsInf(params.Amount, 0) || params.Amount <= 0 {
		return Debt{}, Payment{}, &ValidationError{
			Field:  "amount",
			Reason: "must be a positive number",
		}
	}

	if params.Amount > d.RemainingAmount {
		return Debt{}, Payment{}, &ValidationError{
			Field:  "amount",
			Reason: fmt.Sprintf("exceeds remaining balance of %.2f", d.RemainingAmount),
		}
	}

	interest := math.Min(d.MonthlyInterest(), params.Amount)

	record := Payment{
		ID:               uuid.New(),
		DebtID:           d.ID,
		Amount:           params.Amount,
		Type:             classifyPayment(d, params),
		Description:      params.Description,
		InterestPortion:  interest,
		PrincipalPortion: params.Amount - interest,
		Date:             now,
	}

	d.RemainingAmount = math.Max(0, d.RemainingAmount-params.Amount)

	return d, record, nil
}

func classifyPayment(d Debt, params PaymentParams) PaymentType {
	if params.Type != "" {
		return params.Type
	}

	switch {
	case params.Amount >= d.RemainingAmount:
		return PaymentPayoff
	case params.Amount <= d.MinimumPayment:
		return PaymentMinimum
	default:
		return PaymentExtra
	}
}
