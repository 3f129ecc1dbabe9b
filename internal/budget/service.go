package budget

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when an income or expense entry does not exist.
var ErrNotFound = errors.New("entry not found")

// ValidationError reports a rejected entry field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ListFilter narrows income/expense listings to a date range.
type ListFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
}

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=budget
type Repository interface {
	CreateIncome(ctx context.Context, in *Income) error
	ListIncomes(ctx context.Context, filter ListFilter) ([]Income, error)
	DeleteIncome(ctx context.Context, id uuid.UUID) error

	CreateExpense(ctx context.Context, e *Expense) error
	CreateExpenses(ctx context.Context, es []*Expense) error
	ListExpenses(ctx context.Context, filter ListFilter) ([]Expense, error)
	DeleteExpense(ctx context.Context, id uuid.UUID) error

	// GetMonthlyBudget reads the single-household monthly budget setting.
	GetMonthlyBudget(ctx context.Context) (float64, error)
	SetMonthlyBudget(ctx context.Context, amount float64) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type IncomeParams struct {
	Source string
	Amount float64
	Date   time.Time
}

type ExpenseParams struct {
	Description string
	Category    string
	Amount      float64
	Date        time.Time
}

func (s *Service) AddIncome(ctx context.Context, params IncomeParams) (Income, error) {
	if params.Amount <= 0 {
		return Income{}, &ValidationError{Field: "amount", Reason: fmt.Sprintf("must be positive, got %.2f", params.Amount)}
	}

	in := Income{
		Source: params.Source,
		Amount: params.Amount,
		Date:   params.Date,
	}
	if err := s.repo.CreateIncome(ctx, &in); err != nil {
		return Income{}, err
	}

	return in, nil
}

func (s *Service) Incomes(ctx context.Context, filter ListFilter) ([]Income, error) {
	return s.repo.ListIncomes(ctx, filter)
}

func (s *Service) DeleteIncome(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteIncome(ctx, id)
}

func (s *Service) AddExpense(ctx context.Context, params ExpenseParams) (Expense, error) {
	if params.Amount <= 0 {
		return Expense{}, &ValidationError{Field: "amount", Reason: fmt.Sprintf("must be positive, got %.2f", params.Amount)}
	}

	e := Expense{
		Description: params.Description,
		Category:    params.Category,
		Amount:      params.Amount,
		Date:        params.Date,
	}
	if err := s.repo.CreateExpense(ctx, &e); err != nil {
		return Expense{}, err
	}

	return e, nil
}

// AddExpenses stores a batch of expenses, typically a CSV import.
func (s *Service) AddExpenses(ctx context.Context, params []ExpenseParams) ([]Expense, error) {
	if len(params) == 0 {
		return nil, nil
	}

	expenses := make([]*Expense, 0, len(params))

	for _, p := range params {
		if p.Amount <= 0 {
			return nil, &ValidationError{Field: "amount", Reason: fmt.Sprintf("expense %q must be positive, got %.2f", p.Description, p.Amount)}
		}

		expenses = append(expenses, &Expense{
			Description: p.Description,
			Category:    p.Category,
			Amount:      p.Amount,
			Date:        p.Date,
		})
	}

	if err := s.repo.CreateExpenses(ctx, expenses); err != nil {
		return nil, fmt.Errorf("creating expenses: %w", err)
	}

	out := make([]Expense, len(expenses))
	for i, e := range expenses {
		out[i] = *e
	}

	return out, nil
}

func (s *Service) Expenses(ctx context.Context, filter ListFilter) ([]Expense, error) {
	return s.repo.ListExpenses(ctx, filter)
}

func (s *Service) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteExpense(ctx, id)
}

func (s *Service) MonthlyBudget(ctx context.Context) (float64, error) {
	return s.repo.GetMonthlyBudget(ctx)
}

func (s *Service) SetMonthlyBudget(ctx context.Context, amount float64) error {
	if amount < 0 {
		return &ValidationError{Field: "amount", Reason: fmt.Sprintf("must not be negative, got %.2f", amount)}
	}

	return s.repo.SetMonthlyBudget(ctx, amount)
}

// MonthRange returns the ListFilter covering the calendar month of t.
func MonthRange(t time.Time) ListFilter {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)

	return ListFilter{StartDate: &start, EndDate: &end}
}
