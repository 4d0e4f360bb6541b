package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/finwise-app/backend/core"
	"github.com/finwise-app/backend/models"
)

const budgetColumns = `b.id, b.user_id, b.category_id, b.amount_cents, b.month, b.year,
	c.id, c.name, c.type, c.icon, c.color, c.is_default, c.user_id`

func scanBudget(row interface{ Scan(...any) error }) (*models.Budget, error) {
	var b models.Budget
	var c models.Category
	err := row.Scan(
		&b.ID, &b.UserID, &b.CategoryID, &b.Amount.Cents, &b.Month, &b.Year,
		&c.ID, &c.Name, &c.Type, &c.Icon, &c.Color, &c.IsDefault, &c.UserID,
	)
	if err != nil {
		return nil, err
	}
	b.Category = &c
	return &b, nil
}

// ListBudgets returns the user's budgets for one month with their
// category embedded.
func (s *Storage) ListBudgets(ctx context.Context, userID int64, month, year int) ([]models.Budget, error) {
	rows, err := s.DB.QueryContext(ctx, s.rebind(`SELECT `+budgetColumns+`
		FROM budgets b
		JOIN categories c ON c.id = b.category_id
		WHERE b.user_id = ? AND b.month = ? AND b.year = ?
		ORDER BY c.name ASC`),
		userID, month, year,
	)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	defer rows.Close()

	budgets := []models.Budget{}
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		budgets = append(budgets, *b)
	}
	return budgets, rows.Err()
}

// GetBudget returns one of the user's budgets with its category embedded.
func (s *Storage) GetBudget(ctx context.Context, id, userID int64) (*models.Budget, error) {
	row := s.DB.QueryRowContext(ctx, s.rebind(`SELECT `+budgetColumns+`
		FROM budgets b
		JOIN categories c ON c.id = b.category_id
		WHERE b.id = ? AND b.user_id = ?`),
		id, userID,
	)
	b, err := scanBudget(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get budget: %w", err)
	}
	return b, nil
}

// UpsertBudget writes the budget ceiling for (user, category, month,
// year) as a single atomic insert-or-update; the unique constraint is the
// sole arbiter under concurrent submission, so two racing upserts can
// never produce two rows. Only the amount is overwritten on conflict —
// month, year and category are fixed by the key. The created flag
// distinguishes a fresh row from an overwrite and only influences the
// caller's response code.
func (s *Storage) UpsertBudget(ctx context.Context, userID, categoryID int64, amount core.Money, month, year int) (*models.Budget, bool, error) {
	var existing int64
	err := s.DB.QueryRowContext(ctx,
		s.rebind(`SELECT id FROM budgets WHERE user_id = ? AND category_id = ? AND month = ? AND year = ?`),
		userID, categoryID, month, year,
	).Scan(&existing)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, false, fmt.Errorf("look up budget: %w", err)
	}
	created := errors.Is(err, sql.ErrNoRows)

	var id int64
	err = s.DB.QueryRowContext(ctx,
		s.rebind(`INSERT INTO budgets (user_id, category_id, amount_cents, month, year)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT (user_id, category_id, month, year)
			DO UPDATE SET amount_cents = excluded.amount_cents
			RETURNING id`),
		userID, categoryID, amount.Cents, month, year,
	).Scan(&id)
	if err != nil {
		return nil, false, fmt.Errorf("upsert budget: %w", err)
	}

	b, err := s.GetBudget(ctx, id, userID)
	if err != nil {
		return nil, false, err
	}
	return b, created, nil
}

// DeleteBudget removes a budget the user owns, ErrNotFound otherwise.
// Budgets are leaf entities, nothing cascades.
func (s *Storage) DeleteBudget(ctx context.Context, id, userID int64) error {
	res, err := s.DB.ExecContext(ctx,
		s.rebind(`DELETE FROM budgets WHERE id = ? AND user_id = ?`),
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
