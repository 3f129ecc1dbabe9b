package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/davidmns/centavo/internal/debt"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanDebt reads a debt row. Expected column order: id, name, creditor,
// total_amount, remaining_amount, interest_rate, minimum_payment, due_date,
// type, color, created_at
func scanDebt(s scanner) (debt.Debt, error) {
	var d debt.Debt

	var typeStr string

	var interestRate sql.NullFloat64

	if err := s.Scan(
		&d.ID, &d.Name, &d.Creditor,
		&d.TotalAmount, &d.RemainingAmount, &interestRate, &d.MinimumPayment,
		&d.DueDate, &typeStr, &d.Color, &d.CreatedAt,
	); err != nil {
		return debt.Debt{}, err
	}

	d.Type = debt.Type(typeStr)

	if interestRate.Valid {
		d.InterestRate = &interestRate.Float64
	}

	return d, nil
}

const selectDebtColumns = `
	id, name, creditor, total_amount, remaining_amount, interest_rate,
	minimum_payment, due_date, type, color, created_at
`

func (s *Store) CreateDebt(ctx context.Context, d *debt.Debt) error {
	query := `
		INSERT INTO debts (name, creditor, total_amount, remaining_amount, interest_rate, minimum_payment, due_date, type, color, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		RETURNING id, created_at
	`

	var interestRate sql.NullFloat64
	if d.InterestRate != nil {
		interestRate = sql.NullFloat64{Float64: *d.InterestRate, Valid: true}
	}

	err := s.db.QueryRowContext(ctx, query,
		d.Name,
		d.Creditor,
		d.TotalAmount,
		d.RemainingAmount,
		interestRate,
		d.MinimumPayment,
		d.DueDate,
		d.Type,
		d.Color,
	).Scan(&d.ID, &d.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating debt: %w", err)
	}

	return nil
}

func (s *Store) GetDebt(ctx context.Context, id uuid.UUID) (debt.Debt, error) {
	query := `SELECT ` + selectDebtColumns + ` FROM debts WHERE id = $1`

	d, err := scanDebt(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return debt.Debt{}, debt.ErrNotFound
		}

		return debt.Debt{}, fmt.Errorf("getting debt: %w", err)
	}

	return d, nil
}

func (s *Store) ListDebts(ctx context.Context) ([]debt.Debt, error) {
	query := `SELECT ` + selectDebtColumns + ` FROM debts ORDER BY created_at`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing debts: %w", err)
	}
	defer rows.Close()

	var debts []debt.Debt

	for rows.Next() {
		d, err := scanDebt(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning debt: %w", err)
		}

		debts = append(debts, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating debts: %w", err)
	}

	return debts, nil
}

func (s *Store) UpdateDebt(ctx context.Context, d debt.Debt) error {
	query := `
		UPDATE debts
		SET name = $2, creditor = $3, total_amount = $4, remaining_amount = $5,
		    interest_rate = $6, minimum_payment = $7, due_date = $8, type = $9, color = $10
		WHERE id = $1
	`

	var interestRate sql.NullFloat64
	if d.InterestRate != nil {
		interestRate = sql.NullFloat64{Float64: *d.InterestRate, Valid: true}
	}

	res, err := s.db.ExecContext(ctx, query,
		d.ID,
		d.Name,
		d.Creditor,
		d.TotalAmount,
		d.RemainingAmount,
		interestRate,
		d.MinimumPayment,
		d.DueDate,
		d.Type,
		d.Color,
	)
	if err != nil {
		return fmt.Errorf("updating debt: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating debt: %w", err)
	}

	if affected == 0 {
		return debt.ErrNotFound
	}

	return nil
}

func (s *Store) DeleteDebt(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM debts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting debt: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting debt: %w", err)
	}

	if affected == 0 {
		return debt.ErrNotFound
	}

	return nil
}

// RecordPayment stores the payment and the debt's new balance atomically.
func (s *Store) RecordPayment(ctx context.Context, updated debt.Debt, p debt.Payment) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning payment tx: %w", err)
	}
	defer tx.Rollback()

	insertQuery := `
		INSERT INTO debt_payments (id, debt_id, amount, type, description, interest_portion, principal_portion, date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	if _, err := tx.ExecContext(ctx, insertQuery,
		p.ID,
		p.DebtID,
		p.Amount,
		p.Type,
		p.Description,
		p.InterestPortion,
		p.PrincipalPortion,
		p.Date,
	); err != nil {
		return fmt.Errorf("inserting payment: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE debts SET remaining_amount = $2 WHERE id = $1`,
		updated.ID, updated.RemainingAmount,
	)
	if err != nil {
		return fmt.Errorf("updating balance: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating balance: %w", err)
	}

	if affected == 0 {
		return debt.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing payment: %w", err)
	}

	return nil
}

func (s *Store) ListPayments(ctx context.Context, debtID uuid.UUID) ([]debt.Payment, error) {
	query := `
		SELECT id, debt_id, amount, type, description, interest_portion, principal_portion, date
		FROM debt_payments
		WHERE debt_id = $1
		ORDER BY date DESC
	`

	rows, err := s.db.QueryContext(ctx, query, debtID)
	if err != nil {
		return nil, fmt.Errorf("listing payments: %w", err)
	}
	defer rows.Close()

	var payments []debt.Payment

	for rows.Next() {
		var p debt.Payment

		var typeStr string

		if err := rows.Scan(
			&p.ID, &p.DebtID, &p.Amount, &typeStr, &p.Description,
			&p.InterestPortion, &p.PrincipalPortion, &p.Date,
		); err != nil {
			return nil, fmt.Errorf("scanning payment: %w", err)
		}

		p.Type = debt.PaymentType(typeStr)
		payments = append(payments, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating payments: %w", err)
	}

	return payments, nil
}
