package debt_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/davidmns/centavo/internal/debt"
)

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    debt.CreateParams
		setupMock func(m *debt.MockRepository)
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "Success",
			params: debt.CreateParams{
				Name:            "Visa",
				Creditor:        "Bank",
				TotalAmount:     2000,
				RemainingAmount: 1500,
				InterestRate:    rate(19.9),
				MinimumPayment:  50,
				DueDate:         time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
				Type:            debt.TypeCreditCard,
			},
			setupMock: func(m *debt.MockRepository) {
				m.EXPECT().
					CreateDebt(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, d *debt.Debt) error {
						d.ID = uuid.New()
						d.CreatedAt = time.Now()
						return nil
					})
			},
		},
		{
			name: "RemainingAboveTotal",
			params: debt.CreateParams{
				TotalAmount:     100,
				RemainingAmount: 200,
				MinimumPayment:  10,
			},
			wantErr: true,
		},
		{
			name: "ZeroMinimumPayment",
			params: debt.CreateParams{
				TotalAmount:     100,
				RemainingAmount: 100,
			},
			wantErr: true,
		},
		{
			name: "RateOutOfRange",
			params: debt.CreateParams{
				TotalAmount:     100,
				RemainingAmount: 100,
				MinimumPayment:  10,
				InterestRate:    rate(150),
			},
			wantErr: true,
		},
		{
			name: "RepoError",
			params: debt.CreateParams{
				TotalAmount:     100,
				RemainingAmount: 100,
				MinimumPayment:  10,
			},
			setupMock: func(m *debt.MockRepository) {
				m.EXPECT().
					CreateDebt(gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := debt.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := debt.NewService(repo, nil)
			got, err := svc.Create(context.Background(), tt.params)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.NotEmpty(t, got.ID)
			assert.Equal(t, tt.params.Name, got.Name)
		})
	}
}

func TestService_Create_DefaultsType(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := debt.NewMockRepository(ctrl)
	repo.EXPECT().CreateDebt(gomock.Any(), gomock.Any()).Return(nil)

	svc := debt.NewService(repo, nil)

	got, err := svc.Create(context.Background(), debt.CreateParams{
		TotalAmount:     100,
		RemainingAmount: 100,
		MinimumPayment:  10,
	})
	require.NoError(t, err)
	assert.Equal(t, debt.TypeOther, got.Type)
}

func TestService_Pay(t *testing.T) {
	debtID := uuid.New()

	existing := debt.Debt{
		ID:              debtID,
		Name:            "Car loan",
		TotalAmount:     10000,
		RemainingAmount: 4000,
		InterestRate:    rate(6),
		MinimumPayment:  250,
	}

	type testCase struct {
		name      string
		params    debt.PaymentParams
		setupMock func(m *debt.MockRepository)
		wantErr   bool
	}

	tests := []testCase{
		{
			name:   "Success",
			params: debt.PaymentParams{Amount: 500},
			setupMock: func(m *debt.MockRepository) {
				m.EXPECT().GetDebt(gomock.Any(), debtID).Return(existing, nil)
				m.EXPECT().
					RecordPayment(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, updated debt.Debt, p debt.Payment) error {
						assert.InDelta(t, 3500, updated.RemainingAmount, 1e-9)
						assert.Equal(t, debtID, p.DebtID)
						return nil
					})
			},
		},
		{
			name:   "AmountExceedsBalance",
			params: debt.PaymentParams{Amount: 5000},
			setupMock: func(m *debt.MockRepository) {
				m.EXPECT().GetDebt(gomock.Any(), debtID).Return(existing, nil)
			},
			wantErr: true,
		},
		{
			name:   "DebtNotFound",
			params: debt.PaymentParams{Amount: 100},
			setupMock: func(m *debt.MockRepository) {
				m.EXPECT().GetDebt(gomock.Any(), debtID).Return(debt.Debt{}, debt.ErrNotFound)
			},
			wantErr: true,
		},
		{
			name:   "RepoError",
			params: debt.PaymentParams{Amount: 100},
			setupMock: func(m *debt.MockRepository) {
				m.EXPECT().GetDebt(gomock.Any(), debtID).Return(existing, nil)
				m.EXPECT().
					RecordPayment(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := debt.NewMockRepository(ctrl)
			tt.setupMock(repo)

			svc := debt.NewService(repo, nil)
			updated, record, err := svc.Pay(context.Background(), debtID, tt.params, time.Now())

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.InDelta(t, 3500, updated.RemainingAmount, 1e-9)
			assert.NotEmpty(t, record.ID)
		})
	}
}

func TestService_Pay_InvalidatesCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	debtID := uuid.New()

	repo := debt.NewMockRepository(ctrl)
	repo.EXPECT().GetDebt(gomock.Any(), debtID).Return(debt.Debt{
		ID:              debtID,
		RemainingAmount: 1000,
		MinimumPayment:  50,
	}, nil)
	repo.EXPECT().RecordPayment(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	cache := debt.NewMockStatsCache(ctrl)
	cache.EXPECT().Invalidate(gomock.Any(), debt.StatsCachePrefix).Return(nil)

	svc := debt.NewService(repo, cache)

	_, _, err := svc.Pay(context.Background(), debtID, debt.PaymentParams{Amount: 100}, time.Now())
	require.NoError(t, err)
}

func TestService_List_OrdersByUrgency(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	repo := debt.NewMockRepository(ctrl)
	repo.EXPECT().ListDebts(gomock.Any()).Return([]debt.Debt{
		{Name: "later", DueDate: now.AddDate(0, 2, 0)},
		{Name: "soon", DueDate: now.AddDate(0, 0, 3)},
	}, nil)

	svc := debt.NewService(repo, nil)

	got, err := svc.List(context.Background(), now)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "soon", got[0].Name)
}

func TestService_Statistics_CacheMissThenSet(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := debt.NewMockRepository(ctrl)
	repo.EXPECT().ListDebts(gomock.Any()).Return([]debt.Debt{
		{RemainingAmount: 800, MinimumPayment: 200},
	}, nil)

	cache := debt.NewMockStatsCache(ctrl)
	cache.EXPECT().Get(gomock.Any(), debt.StatsCachePrefix+"1000.00").Return(nil, false)
	cache.EXPECT().Set(gomock.Any(), debt.StatsCachePrefix+"1000.00", gomock.Any())

	svc := debt.NewService(repo, cache)

	stats, err := svc.Statistics(context.Background(), 1000)
	require.NoError(t, err)
	assert.InDelta(t, 800, stats.TotalDebt, 1e-9)
	assert.InDelta(t, 20, stats.DebtToIncomeRatio, 1e-9)
}

func TestService_Statistics_CacheHitSkipsRepo(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cached := debt.ComputeStatistics([]debt.Debt{
		{RemainingAmount: 500, MinimumPayment: 100},
	}, 2000)

	raw, err := json.Marshal(cached)
	require.NoError(t, err)

	repo := debt.NewMockRepository(ctrl) // no ListDebts expectation

	cache := debt.NewMockStatsCache(ctrl)
	cache.EXPECT().Get(gomock.Any(), debt.StatsCachePrefix+"2000.00").Return(raw, true)

	svc := debt.NewService(repo, cache)

	stats, err := svc.Statistics(context.Background(), 2000)
	require.NoError(t, err)
	assert.Equal(t, cached, stats)
}

func TestService_Payments_UnknownDebt(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()

	repo := debt.NewMockRepository(ctrl)
	repo.EXPECT().GetDebt(gomock.Any(), id).Return(debt.Debt{}, debt.ErrNotFound)

	svc := debt.NewService(repo, nil)

	_, err := svc.Payments(context.Background(), id)
	assert.ErrorIs(t, err, debt.ErrNotFound)
}
