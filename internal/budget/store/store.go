package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/davidmns/centavo/internal/budget"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateIncome(ctx context.Context, in *budget.Income) error {
	query := `
		INSERT INTO incomes (source, amount, date, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query, in.Source, in.Amount, in.Date).
		Scan(&in.ID, &in.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating income: %w", err)
	}

	return nil
}

func (s *Store) ListIncomes(ctx context.Context, filter budget.ListFilter) ([]budget.Income, error) {
	query := `SELECT id, source, amount, date, created_at FROM incomes`

	where, args := dateRangeClause(filter)
	query += where + ` ORDER BY date DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing incomes: %w", err)
	}
	defer rows.Close()

	var incomes []budget.Income

	for rows.Next() {
		var in budget.Income
		if err := rows.Scan(&in.ID, &in.Source, &in.Amount, &in.Date, &in.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning income: %w", err)
		}

		incomes = append(incomes, in)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating incomes: %w", err)
	}

	return incomes, nil
}

func (s *Store) DeleteIncome(ctx context.Context, id uuid.UUID) error {
	return s.deleteByID(ctx, "incomes", id)
}

func (s *Store) CreateExpense(ctx context.Context, e *budget.Expense) error {
	query := `
		INSERT INTO expenses (description, category, amount, date, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query, e.Description, e.Category, e.Amount, e.Date).
		Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating expense: %w", err)
	}

	return nil
}

// CreateExpenses inserts an import batch in a single transaction.
func (s *Store) CreateExpenses(ctx context.Context, es []*budget.Expense) error {
	if len(es) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning expenses tx: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO expenses (description, category, amount, date, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`

	for _, e := range es {
		if err := tx.QueryRowContext(ctx, query, e.Description, e.Category, e.Amount, e.Date).
			Scan(&e.ID, &e.CreatedAt); err != nil {
			return fmt.Errorf("inserting expense: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing expenses: %w", err)
	}

	return nil
}

func (s *Store) ListExpenses(ctx context.Context, filter budget.ListFilter) ([]budget.Expense, error) {
	query := `SELECT id, description, category, amount, date, created_at FROM expenses`

	where, args := dateRangeClause(filter)
	query += where + ` ORDER BY date DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}
	defer rows.Close()

	var expenses []budget.Expense

	for rows.Next() {
		var e budget.Expense
		if err := rows.Scan(&e.ID, &e.Description, &e.Category, &e.Amount, &e.Date, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning expense: %w", err)
		}

		expenses = append(expenses, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating expenses: %w", err)
	}

	return expenses, nil
}

func (s *Store) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	return s.deleteByID(ctx, "expenses", id)
}

// GetMonthlyBudget reads the single settings row; a missing row means the
// budget was never configured and reads as 0.
func (s *Store) GetMonthlyBudget(ctx context.Context) (float64, error) {
	var amount float64

	err := s.db.QueryRowContext(ctx,
		`SELECT monthly_budget FROM settings WHERE id = 1`,
	).Scan(&amount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}

		return 0, fmt.Errorf("reading monthly budget: %w", err)
	}

	return amount, nil
}

func (s *Store) SetMonthlyBudget(ctx context.Context, amount float64) error {
	query := `
		INSERT INTO settings (id, monthly_budget)
		VALUES (1, $1)
		ON CONFLICT (id) DO UPDATE SET monthly_budget = EXCLUDED.monthly_budget
	`

	if _, err := s.db.ExecContext(ctx, query, amount); err != nil {
		return fmt.Errorf("setting monthly budget: %w", err)
	}

	return nil
}

func (s *Store) deleteByID(ctx context.Context, table string, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting from %s: %w", table, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting from %s: %w", table, err)
	}

	if affected == 0 {
		return budget.ErrNotFound
	}

	return nil
}

func dateRangeClause(filter budget.ListFilter) (string, []any) {
	var (
		where string
		args  []any
	)

	argIdx := 1

	if filter.StartDate != nil {
		where += ` WHERE date >= $` + strconv.Itoa(argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil {
		if where == "" {
			where = ` WHERE`
		} else {
			where += ` AND`
		}

		where += ` date <= $` + strconv.Itoa(argIdx)
		args = append(args, *filter.EndDate)
	}

	return where, args
}
