package savings_test

import (
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davidmns/centavo/internal/budget"
	"github.com/davidmns/centavo/internal/savings"
)

func TestDistributeAuto(t *testing.T) {
	goals := []savings.Goal{
		{ID: uuid.New(), Name: "Vacation", TargetAmount: 1000, CurrentAmount: 500},
		{ID: uuid.New(), Name: "Emergency", TargetAmount: 2000, CurrentAmount: 0},
	}

	got, err := savings.DistributeAuto(goals, 600)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Needs are 500 and 2000 out of 2500: 600*500/2500 = 120, 600*2000/2500 = 480.
	assert.InDelta(t, 620, got[0].CurrentAmount, 1e-9)
	assert.InDelta(t, 480, got[1].CurrentAmount, 1e-9)

	// Inputs untouched.
	assert.InDelta(t, 500, goals[0].CurrentAmount, 1e-9)
	assert.InDelta(t, 0, goals[1].CurrentAmount, 1e-9)
}

func TestDistributeAuto_Conservation(t *testing.T) {
	goals := []savings.Goal{
		{TargetAmount: 333.33, CurrentAmount: 12.47},
		{TargetAmount: 1000, CurrentAmount: 999.99},
		{TargetAmount: 5000, CurrentAmount: 1234.56},
		{TargetAmount: 100, CurrentAmount: 100}, // full, must get exactly 0
	}

	const amount = 777.77

	got, err := savings.DistributeAuto(goals, amount)
	require.NoError(t, err)

	var allocated float64
	for i := range got {
		diff := got[i].CurrentAmount - goals[i].CurrentAmount
		assert.GreaterOrEqual(t, diff, 0.0)
		allocated += diff
	}

	assert.InDelta(t, amount, allocated, 1e-6)
	// The full goal received nothing.
	assert.Equal(t, goals[3].CurrentAmount, got[3].CurrentAmount)
}

func TestDistributeAuto_NoGoalExceedsTarget(t *testing.T) {
	goals := []savings.Goal{
		{TargetAmount: 1000, CurrentAmount: 500},
		{TargetAmount: 2000, CurrentAmount: 0},
	}

	// amount <= totalNeeded, so the proportional shares cannot overshoot.
	got, err := savings.DistributeAuto(goals, 2500)
	require.NoError(t, err)

	for i := range got {
		assert.LessOrEqual(t, got[i].CurrentAmount, got[i].TargetAmount+1e-9)
	}
}

func TestDistributeAuto_NoEligibleGoals(t *testing.T) {
	goals := []savings.Goal{
		{TargetAmount: 1000, CurrentAmount: 1000},
		{TargetAmount: 500, CurrentAmount: 700},
	}

	_, err := savings.DistributeAuto(goals, 100)
	assert.ErrorIs(t, err, savings.ErrNoEligibleGoals)

	_, err = savings.DistributeAuto(nil, 100)
	assert.ErrorIs(t, err, savings.ErrNoEligibleGoals)
}

func TestDistributeAuto_InvalidAmount(t *testing.T) {
	goals := []savings.Goal{{TargetAmount: 1000}}

	for _, amount := range []float64{0, -50, math.NaN(), math.Inf(1)} {
		_, err := savings.DistributeAuto(goals, amount)

		var verr *savings.ValidationError
		require.ErrorAs(t, err, &verr, "amount %v", amount)
		assert.Equal(t, "amount", verr.Field)
	}
}

func TestAllocateFunds(t *testing.T) {
	goal := savings.Goal{ID: uuid.New(), TargetAmount: 1000, CurrentAmount: 300}

	type testCase struct {
		name      string
		amount    float64
		available float64
		want      float64
		wantErr   bool
	}

	tests := []testCase{
		{name: "Success", amount: 200, available: 500, want: 500},
		{name: "ExactlyToTarget", amount: 700, available: 1000, want: 1000},
		{name: "ZeroAmount", amount: 0, available: 500, wantErr: true},
		{name: "NegativeAmount", amount: -10, available: 500, wantErr: true},
		{name: "ExceedsAvailable", amount: 400, available: 300, wantErr: true},
		{name: "ExceedsRemainingNeed", amount: 800, available: 2000, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := savings.AllocateFunds(goal, tt.amount, tt.available)

			if tt.wantErr {
				var verr *savings.ValidationError
				require.ErrorAs(t, err, &verr)

				return
			}

			require.NoError(t, err)
			assert.InDelta(t, tt.want, got.CurrentAmount, 1e-9)
			// Input untouched.
			assert.InDelta(t, 300, goal.CurrentAmount, 1e-9)
		})
	}
}

func TestRecommendedPlan(t *testing.T) {
	incomes := []budget.Income{
		{Source: "freelance", Amount: 400},
		{Source: "dividends", Amount: 100},
	}
	expenses := []budget.Expense{
		{Description: "rent", Amount: 1200},
		{Description: "groceries", Amount: 300},
	}

	p := savings.RecommendedPlan(2500, incomes, expenses)

	assert.InDelta(t, 3000, p.TotalIncome, 1e-9)
	assert.InDelta(t, 1500, p.TotalExpenses, 1e-9)
	assert.InDelta(t, 1500, p.AvailableForSavings, 1e-9)
	assert.InDelta(t, 1500, p.RecommendedSavings, 1e-9)
	assert.InDelta(t, 50, p.SavingsPercentage, 1e-9)
}

func TestRecommendedPlan_ExpensesExceedIncome(t *testing.T) {
	expenses := []budget.Expense{{Amount: 5000}}

	p := savings.RecommendedPlan(2000, nil, expenses)

	assert.Zero(t, p.AvailableForSavings)
	assert.Zero(t, p.RecommendedSavings)
	assert.Zero(t, p.SavingsPercentage)
}

func TestRecommendedPlan_ZeroIncomeGuard(t *testing.T) {
	p := savings.RecommendedPlan(0, nil, nil)

	assert.Zero(t, p.TotalIncome)
	assert.Zero(t, p.SavingsPercentage)
}

func TestGoalProgress(t *testing.T) {
	assert.InDelta(t, 0.5, savings.Goal{TargetAmount: 1000, CurrentAmount: 500}.Progress(), 1e-9)
	assert.InDelta(t, 1, savings.Goal{TargetAmount: 1000, CurrentAmount: 1500}.Progress(), 1e-9)
	assert.Zero(t, savings.Goal{}.Progress())
}
