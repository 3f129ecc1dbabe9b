package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/davidmns/centavo/internal/savings"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const selectGoalColumns = `id, name, color, target_amount, current_amount, deadline, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanGoal(s scanner) (savings.Goal, error) {
	var g savings.Goal

	if err := s.Scan(
		&g.ID, &g.Name, &g.Color, &g.TargetAmount, &g.CurrentAmount,
		&g.Deadline, &g.CreatedAt,
	); err != nil {
		return savings.Goal{}, err
	}

	return g, nil
}

func (s *Store) CreateGoal(ctx context.Context, g *savings.Goal) error {
	query := `
		INSERT INTO savings_goals (name, color, target_amount, current_amount, deadline, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		g.Name,
		g.Color,
		g.TargetAmount,
		g.CurrentAmount,
		g.Deadline,
	).Scan(&g.ID, &g.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating goal: %w", err)
	}

	return nil
}

func (s *Store) GetGoal(ctx context.Context, id uuid.UUID) (savings.Goal, error) {
	query := `SELECT ` + selectGoalColumns + ` FROM savings_goals WHERE id = $1`

	g, err := scanGoal(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return savings.Goal{}, savings.ErrNotFound
		}

		return savings.Goal{}, fmt.Errorf("getting goal: %w", err)
	}

	return g, nil
}

func (s *Store) ListGoals(ctx context.Context) ([]savings.Goal, error) {
	query := `SELECT ` + selectGoalColumns + ` FROM savings_goals ORDER BY created_at`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing goals: %w", err)
	}
	defer rows.Close()

	var goals []savings.Goal

	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning goal: %w", err)
		}

		goals = append(goals, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating goals: %w", err)
	}

	return goals, nil
}

func (s *Store) UpdateGoal(ctx context.Context, g savings.Goal) error {
	query := `
		UPDATE savings_goals
		SET name = $2, color = $3, target_amount = $4, current_amount = $5, deadline = $6
		WHERE id = $1
	`

	res, err := s.db.ExecContext(ctx, query,
		g.ID, g.Name, g.Color, g.TargetAmount, g.CurrentAmount, g.Deadline,
	)
	if err != nil {
		return fmt.Errorf("updating goal: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating goal: %w", err)
	}

	if affected == 0 {
		return savings.ErrNotFound
	}

	return nil
}

func (s *Store) DeleteGoal(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM savings_goals WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting goal: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting goal: %w", err)
	}

	if affected == 0 {
		return savings.ErrNotFound
	}

	return nil
}

// UpdateAmounts writes the new current amounts for a distribution in one
// transaction.
func (s *Store) UpdateAmounts(ctx context.Context, goals []savings.Goal) error {
	if len(goals) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning amounts tx: %w", err)
	}
	defer tx.Rollback()

	for _, g := range goals {
		if _, err := tx.ExecContext(ctx,
			`UPDATE savings_goals SET current_amount = $2 WHERE id = $1`,
			g.ID, g.CurrentAmount,
		); err != nil {
			return fmt.Errorf("updating goal %s: %w", g.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing amounts: %w", err)
	}

	return nil
}
