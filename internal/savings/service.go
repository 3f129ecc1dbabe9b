package savings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/davidmns/centavo/internal/budget"
)

// ErrNotFound is returned when a savings goal does not exist.
var ErrNotFound = errors.New("goal not found")

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=savings
type Repository interface {
	CreateGoal(ctx context.Context, g *Goal) error
	GetGoal(ctx context.Context, id uuid.UUID) (Goal, error)
	ListGoals(ctx context.Context) ([]Goal, error)
	UpdateGoal(ctx context.Context, g Goal) error
	DeleteGoal(ctx context.Context, id uuid.UUID) error

	// UpdateAmounts persists a batch of new current amounts in a single
	// transaction, so a distribution is applied all-or-nothing.
	UpdateAmounts(ctx context.Context, goals []Goal) error
}

type Service struct {
	repo    Repository
	budgets *budget.Service
}

func NewService(repo Repository, budgets *budget.Service) *Service {
	return &Service{repo: repo, budgets: budgets}
}

type CreateParams struct {
	Name         string
	Color        string
	TargetAmount float64
	Deadline     time.Time
}

func (s *Service) Create(ctx context.Context, params CreateParams) (Goal, error) {
	if params.TargetAmount <= 0 {
		return Goal{}, &ValidationError{Field: "target_amount", Reason: "must be positive"}
	}

	g := Goal{
		Name:         params.Name,
		Color:        params.Color,
		TargetAmount: params.TargetAmount,
		Deadline:     params.Deadline,
	}
	if err := s.repo.CreateGoal(ctx, &g); err != nil {
		return Goal{}, err
	}

	return g, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (Goal, error) {
	return s.repo.GetGoal(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Goal, error) {
	return s.repo.ListGoals(ctx)
}

func (s *Service) Update(ctx context.Context, g Goal) error {
	return s.repo.UpdateGoal(ctx, g)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteGoal(ctx, id)
}

// Distribute spreads amount across all open goals proportionally to their
// remaining need and persists the batch atomically.
func (s *Service) Distribute(ctx context.Context, amount float64) ([]Goal, error) {
	goals, err := s.repo.ListGoals(ctx)
	if err != nil {
		return nil, err
	}

	updated, err := DistributeAuto(goals, amount)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateAmounts(ctx, updated); err != nil {
		return nil, fmt.Errorf("persisting distribution: %w", err)
	}

	return updated, nil
}

// Allocate applies a manual allocation to one goal, capped by both the
// caller's available balance and the goal's remaining need.
func (s *Service) Allocate(ctx context.Context, goalID uuid.UUID, amount, availableBalance float64) (Goal, error) {
	g, err := s.repo.GetGoal(ctx, goalID)
	if err != nil {
		return Goal{}, err
	}

	updated, err := AllocateFunds(g, amount, availableBalance)
	if err != nil {
		return Goal{}, err
	}

	if err := s.repo.UpdateGoal(ctx, updated); err != nil {
		return Goal{}, fmt.Errorf("persisting allocation: %w", err)
	}

	return updated, nil
}

// MonthlyPlan builds the savings recommendation for the calendar month of
// now from the monthly budget and that month's incomes and expenses.
func (s *Service) MonthlyPlan(ctx context.Context, now time.Time) (Plan, error) {
	monthlyBudget, err := s.budgets.MonthlyBudget(ctx)
	if err != nil {
		return Plan{}, fmt.Errorf("reading monthly budget: %w", err)
	}

	filter := budget.MonthRange(now)

	incomes, err := s.budgets.Incomes(ctx, filter)
	if err != nil {
		return Plan{}, fmt.Errorf("listing incomes: %w", err)
	}

	expenses, err := s.budgets.Expenses(ctx, filter)
	if err != nil {
		return Plan{}, fmt.Errorf("listing expenses: %w", err)
	}

	return RecommendedPlan(monthlyBudget, incomes, expenses), nil
}
