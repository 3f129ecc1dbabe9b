package debt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a debt does not exist or was deleted.
var ErrNotFound = errors.New("debt not found")

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=debt
type Repository interface {
	CreateDebt(ctx context.Context, d *Debt) error
	GetDebt(ctx context.Context, id uuid.UUID) (Debt, error)
	ListDebts(ctx context.Context) ([]Debt, error)
	UpdateDebt(ctx context.Context, d Debt) error
	DeleteDebt(ctx context.Context, id uuid.UUID) error

	// RecordPayment persists the payment and the updated balance in a
	// single transaction.
	RecordPayment(ctx context.Context, updated Debt, p Payment) error
	ListPayments(ctx context.Context, debtID uuid.UUID) ([]Payment, error)
}

// StatsCache holds serialized Statistics between debt writes. A nil
// StatsCache disables caching entirely.
type StatsCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
	Invalidate(ctx context.Context, prefix string) error
}

// StatsCachePrefix keys every cached Statistics entry, one per income value.
const StatsCachePrefix = "centavo:debt-stats:"

type Service struct {
	repo  Repository
	cache StatsCache
}

func NewService(repo Repository, cache StatsCache) *Service {
	return &Service{repo: repo, cache: cache}
}

type CreateParams struct {
	Name            string
	Creditor        string
	TotalAmount     float64
	RemainingAmount float64
	InterestRate    *float64
	MinimumPayment  float64
	DueDate         time.Time
	Type            Type
	Color           string
}

func (p CreateParams) validate() error {
	if p.TotalAmount < 0 {
		return &ValidationError{Field: "total_amount", Reason: "must not be negative"}
	}

	if p.RemainingAmount < 0 || p.RemainingAmount > p.TotalAmount {
		return &ValidationError{Field: "remaining_amount", Reason: "must be between 0 and the total amount"}
	}

	if p.MinimumPayment <= 0 {
		return &ValidationError{Field: "minimum_payment", Reason: "must be positive"}
	}

	if p.InterestRate != nil && (*p.InterestRate < 0 || *p.InterestRate > 100) {
		return &ValidationError{Field: "interest_rate", Reason: "must be between 0 and 100"}
	}

	return nil
}

func (s *Service) Create(ctx context.Context, params CreateParams) (Debt, error) {
	if err := params.validate(); err != nil {
		return Debt{}, err
	}

	d := Debt{
		Name:            params.Name,
		Creditor:        params.Creditor,
		TotalAmount:     params.TotalAmount,
		RemainingAmount: params.RemainingAmount,
		InterestRate:    params.InterestRate,
		MinimumPayment:  params.MinimumPayment,
		DueDate:         params.DueDate,
		Type:            params.Type,
		Color:           params.Color,
	}
	if d.Type == "" {
		d.Type = TypeOther
	}

	if err := s.repo.CreateDebt(ctx, &d); err != nil {
		return Debt{}, err
	}

	s.invalidateStats(ctx)

	return d, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (Debt, error) {
	return s.repo.GetDebt(ctx, id)
}

// List returns all debts in display order: urgency bucket first, then due
// date.
func (s *Service) List(ctx context.Context, now time.Time) ([]Debt, error) {
	debts, err := s.repo.ListDebts(ctx)
	if err != nil {
		return nil, err
	}

	return SortByUrgency(debts, now), nil
}

func (s *Service) Update(ctx context.Context, d Debt) error {
	if err := s.repo.UpdateDebt(ctx, d); err != nil {
		return err
	}

	s.invalidateStats(ctx)

	return nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteDebt(ctx, id); err != nil {
		return err
	}

	s.invalidateStats(ctx)

	return nil
}

// Pay applies a payment to the debt through the engine and persists the
// record together with the new balance.
func (s *Service) Pay(ctx context.Context, debtID uuid.UUID, params PaymentParams, now time.Time) (Debt, Payment, error) {
	d, err := s.repo.GetDebt(ctx, debtID)
	if err != nil {
		return Debt{}, Payment{}, err
	}

	updated, record, err := ApplyPayment(d, params, now)
	if err != nil {
		return Debt{}, Payment{}, err
	}

	if err := s.repo.RecordPayment(ctx, updated, record); err != nil {
		return Debt{}, Payment{}, fmt.Errorf("recording payment: %w", err)
	}

	s.invalidateStats(ctx)

	return updated, record, nil
}

func (s *Service) Payments(ctx context.Context, debtID uuid.UUID) ([]Payment, error) {
	if _, err := s.repo.GetDebt(ctx, debtID); err != nil {
		return nil, err
	}

	return s.repo.ListPayments(ctx, debtID)
}

// Statistics computes the aggregate debt report for the given monthly
// income, serving from the cache when a fresh entry exists.
func (s *Service) Statistics(ctx context.Context, monthlyIncome float64) (Statistics, error) {
	key := fmt.Sprintf("%s%.2f", StatsCachePrefix, monthlyIncome)

	if s.cache != nil {
		if raw, ok := s.cache.Get(ctx, key); ok {
			var cached Statistics
			if err := json.Unmarshal(raw, &cached); err == nil {
				return cached, nil
			}
		}
	}

	debts, err := s.repo.ListDebts(ctx)
	if err != nil {
		return Statistics{}, err
	}

	stats := ComputeStatistics(debts, monthlyIncome)

	if s.cache != nil {
		if raw, err := json.Marshal(stats); err == nil {
			s.cache.Set(ctx, key, raw)
		}
	}

	return stats, nil
}

// Priority surfaces the debt to focus on. ok is false when nothing is
// outstanding.
func (s *Service) Priority(ctx context.Context) (Debt, bool, error) {
	debts, err := s.repo.ListDebts(ctx)
	if err != nil {
		return Debt{}, false, err
	}

	d, ok := PriorityDebt(debts)

	return d, ok, nil
}

func (s *Service) invalidateStats(ctx context.Context) {
	if s.cache == nil {
		return
	}

	// Stale statistics are an acceptable fallback; a cache failure must
	// not fail the write.
	_ = s.cache.Invalidate(ctx, StatsCachePrefix)
}
