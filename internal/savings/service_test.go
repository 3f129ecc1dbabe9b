package savings_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/davidmns/centavo/internal/budget"
	"github.com/davidmns/centavo/internal/savings"
)

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    savings.CreateParams
		setupMock func(m *savings.MockRepository)
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "Success",
			params: savings.CreateParams{
				Name:         "Vacation",
				TargetAmount: 3000,
				Deadline:     time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
			},
			setupMock: func(m *savings.MockRepository) {
				m.EXPECT().
					CreateGoal(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, g *savings.Goal) error {
						g.ID = uuid.New()
						g.CreatedAt = time.Now()
						return nil
					})
			},
		},
		{
			name:    "ZeroTarget",
			params:  savings.CreateParams{Name: "Broken"},
			wantErr: true,
		},
		{
			name:   "RepoError",
			params: savings.CreateParams{Name: "Vacation", TargetAmount: 100},
			setupMock: func(m *savings.MockRepository) {
				m.EXPECT().
					CreateGoal(gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := savings.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := savings.NewService(repo, nil)
			got, err := svc.Create(context.Background(), tt.params)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.NotEmpty(t, got.ID)
		})
	}
}

func TestService_Distribute(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	goals := []savings.Goal{
		{ID: uuid.New(), TargetAmount: 1000, CurrentAmount: 500},
		{ID: uuid.New(), TargetAmount: 2000, CurrentAmount: 0},
	}

	repo := savings.NewMockRepository(ctrl)
	repo.EXPECT().ListGoals(gomock.Any()).Return(goals, nil)
	repo.EXPECT().
		UpdateAmounts(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, updated []savings.Goal) error {
			require.Len(t, updated, 2)
			assert.InDelta(t, 620, updated[0].CurrentAmount, 1e-9)
			assert.InDelta(t, 480, updated[1].CurrentAmount, 1e-9)
			return nil
		})

	svc := savings.NewService(repo, nil)

	got, err := svc.Distribute(context.Background(), 600)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestService_Distribute_NoEligibleGoals(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := savings.NewMockRepository(ctrl)
	repo.EXPECT().ListGoals(gomock.Any()).Return([]savings.Goal{
		{TargetAmount: 100, CurrentAmount: 100},
	}, nil)

	svc := savings.NewService(repo, nil)

	_, err := svc.Distribute(context.Background(), 50)
	assert.ErrorIs(t, err, savings.ErrNoEligibleGoals)
}

func TestService_Allocate(t *testing.T) {
	goalID := uuid.New()
	goal := savings.Goal{ID: goalID, TargetAmount: 1000, CurrentAmount: 300}

	type testCase struct {
		name      string
		amount    float64
		available float64
		setupMock func(m *savings.MockRepository)
		wantErr   bool
	}

	tests := []testCase{
		{
			name:      "Success",
			amount:    200,
			available: 500,
			setupMock: func(m *savings.MockRepository) {
				m.EXPECT().GetGoal(gomock.Any(), goalID).Return(goal, nil)
				m.EXPECT().
					UpdateGoal(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, g savings.Goal) error {
						assert.InDelta(t, 500, g.CurrentAmount, 1e-9)
						return nil
					})
			},
		},
		{
			name:      "OverAvailable",
			amount:    600,
			available: 500,
			setupMock: func(m *savings.MockRepository) {
				m.EXPECT().GetGoal(gomock.Any(), goalID).Return(goal, nil)
			},
			wantErr: true,
		},
		{
			name:      "NotFound",
			amount:    100,
			available: 500,
			setupMock: func(m *savings.MockRepository) {
				m.EXPECT().GetGoal(gomock.Any(), goalID).Return(savings.Goal{}, savings.ErrNotFound)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := savings.NewMockRepository(ctrl)
			tt.setupMock(repo)

			svc := savings.NewService(repo, nil)
			got, err := svc.Allocate(context.Background(), goalID, tt.amount, tt.available)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.InDelta(t, 500, got.CurrentAmount, 1e-9)
		})
	}
}

func TestService_MonthlyPlan(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	now := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	budgetRepo := budget.NewMockRepository(ctrl)
	budgetRepo.EXPECT().GetMonthlyBudget(gomock.Any()).Return(2500.0, nil)
	budgetRepo.EXPECT().
		ListIncomes(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter budget.ListFilter) ([]budget.Income, error) {
			require.NotNil(t, filter.StartDate)
			assert.Equal(t, time.March, filter.StartDate.Month())
			return []budget.Income{{Amount: 500}}, nil
		})
	budgetRepo.EXPECT().
		ListExpenses(gomock.Any(), gomock.Any()).
		Return([]budget.Expense{{Amount: 1800}}, nil)

	svc := savings.NewService(savings.NewMockRepository(ctrl), budget.NewService(budgetRepo))

	plan, err := svc.MonthlyPlan(context.Background(), now)
	require.NoError(t, err)

	assert.InDelta(t, 3000, plan.TotalIncome, 1e-9)
	assert.InDelta(t, 1200, plan.AvailableForSavings, 1e-9)
	assert.InDelta(t, 40, plan.SavingsPercentage, 1e-9)
}
