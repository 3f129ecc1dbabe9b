package debt_test

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davidmns/centavo/internal/debt"
)

func TestApplyPayment(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	d := debt.Debt{
		ID:              uuid.New(),
		Name:            "Visa",
		TotalAmount:     2000,
		RemainingAmount: 1000,
		InterestRate:    rate(24),
		MinimumPayment:  50,
	}

	updated, record, err := debt.ApplyPayment(d, debt.PaymentParams{
		Amount:      200,
		Description: "march payment",
	}, now)
	require.NoError(t, err)

	assert.InDelta(t, 800, updated.RemainingAmount, 1e-9)
	// Input debt is a value, untouched.
	assert.InDelta(t, 1000, d.RemainingAmount, 1e-9)

	assert.NotEmpty(t, record.ID)
	assert.Equal(t, d.ID, record.DebtID)
	assert.Equal(t, now, record.Date)
	assert.Equal(t, debt.PaymentExtra, record.Type)
	assert.Equal(t, "march payment", record.Description)

	// Split against the pre-payment month's interest: 1000 * 0.02 = 20.
	// The full 200 still came off the balance; the split is reporting only.
	assert.InDelta(t, 20, record.InterestPortion, 1e-9)
	assert.InDelta(t, 180, record.PrincipalPortion, 1e-9)
}

func TestApplyPayment_Classification(t *testing.T) {
	d := debt.Debt{
		ID:              uuid.New(),
		RemainingAmount: 1000,
		MinimumPayment:  50,
	}

	tests := []struct {
		name   string
		params debt.PaymentParams
		want   debt.PaymentType
	}{
		{name: "Minimum", params: debt.PaymentParams{Amount: 50}, want: debt.PaymentMinimum},
		{name: "BelowMinimum", params: debt.PaymentParams{Amount: 20}, want: debt.PaymentMinimum},
		{name: "Extra", params: debt.PaymentParams{Amount: 300}, want: debt.PaymentExtra},
		{name: "FullBalance", params: debt.PaymentParams{Amount: 1000}, want: debt.PaymentPayoff},
		{
			// Caller hints are trusted as-is, even when the amount does
			// not equal the full balance.
			name:   "CallerHintKept",
			params: debt.PaymentParams{Amount: 300, Type: debt.PaymentPayoff},
			want:   debt.PaymentPayoff,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, record, err := debt.ApplyPayment(d, tt.params, time.Now())
			require.NoError(t, err)
			assert.Equal(t, tt.want, record.Type)
		})
	}
}

func TestApplyPayment_ExactPayoffReachesZero(t *testing.T) {
	d := debt.Debt{ID: uuid.New(), RemainingAmount: 123.45, MinimumPayment: 10}

	updated, record, err := debt.ApplyPayment(d, debt.PaymentParams{Amount: 123.45}, time.Now())
	require.NoError(t, err)

	assert.Zero(t, updated.RemainingAmount)
	assert.GreaterOrEqual(t, updated.RemainingAmount, 0.0)
	assert.Equal(t, debt.PaymentPayoff, record.Type)
}

func TestApplyPayment_Validation(t *testing.T) {
	d := debt.Debt{ID: uuid.New(), RemainingAmount: 100, MinimumPayment: 10}

	tests := []struct {
		name   string
		amount float64
	}{
		{name: "Zero", amount: 0},
		{name: "Negative", amount: -5},
		{name: "NaN", amount: math.NaN()},
		{name: "Inf", amount: math.Inf(1)},
		{name: "ExceedsBalance", amount: 100.01},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := debt.ApplyPayment(d, debt.PaymentParams{Amount: tt.amount}, time.Now())
			require.Error(t, err)

			var verr *debt.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, "amount", verr.Field)
		})
	}
}

func TestApplyPayment_InterestFreeSplit(t *testing.T) {
	d := debt.Debt{ID: uuid.New(), RemainingAmount: 500, MinimumPayment: 25}

	_, record, err := debt.ApplyPayment(d, debt.PaymentParams{Amount: 100}, time.Now())
	require.NoError(t, err)

	assert.Zero(t, record.InterestPortion)
	assert.InDelta(t, 100, record.PrincipalPortion, 1e-9)
}
