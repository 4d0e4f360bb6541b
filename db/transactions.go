package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/finwise-app/backend/core"
	"github.com/finwise-app/backend/models"
)

// TransactionFilter narrows ListTransactions. Date bounds are inclusive
// calendar days; zero values leave the corresponding bound open.
type TransactionFilter struct {
	From       core.Date
	To         core.Date
	CategoryID int64
	Type       string
}

const transactionColumns = `t.id, t.user_id, t.category_id, t.type, t.amount_cents, t.description, t.date,
	c.id, c.name, c.type, c.icon, c.color, c.is_default, c.user_id`

func scanTransaction(row interface{ Scan(...any) error }) (*models.Transaction, error) {
	var t models.Transaction
	var c models.Category
	err := row.Scan(
		&t.ID, &t.UserID, &t.CategoryID, &t.Type, &t.Amount.Cents, &t.Description, &t.Date,
		&c.ID, &c.Name, &c.Type, &c.Icon, &c.Color, &c.IsDefault, &c.UserID,
	)
	if err != nil {
		return nil, err
	}
	t.Category = &c
	return &t, nil
}

// ListTransactions returns the user's transactions with their category
// embedded, newest first. Date ties break on id descending so the order
// is deterministic.
func (s *Storage) ListTransactions(ctx context.Context, userID int64, f TransactionFilter) ([]models.Transaction, error) {
	query := `SELECT ` + transactionColumns + `
		FROM transactions t
		JOIN categories c ON c.id = t.category_id
		WHERE t.user_id = ?`
	args := []any{userID}

	if !f.From.IsZero() {
		query += ` AND t.date >= ?`
		args = append(args, f.From)
	}
	if !f.To.IsZero() {
		query += ` AND t.date <= ?`
		args = append(args, f.To)
	}
	if f.CategoryID != 0 {
		query += ` AND t.category_id = ?`
		args = append(args, f.CategoryID)
	}
	if f.Type != "" {
		query += ` AND t.type = ?`
		args = append(args, f.Type)
	}
	query += ` ORDER BY t.date DESC, t.id DESC`

	return s.queryTransactions(ctx, query, args...)
}

// RecentTransactions returns the user's most recent transactions across
// all categories and types.
func (s *Storage) RecentTransactions(ctx context.Context, userID int64, limit int) ([]models.Transaction, error) {
	query := `SELECT ` + transactionColumns + `
		FROM transactions t
		JOIN categories c ON c.id = t.category_id
		WHERE t.user_id = ?
		ORDER BY t.date DESC, t.id DESC
		LIMIT ?`
	return s.queryTransactions(ctx, query, userID, limit)
}

func (s *Storage) queryTransactions(ctx context.Context, query string, args ...any) ([]models.Transaction, error) {
	rows, err := s.DB.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		transactions = append(transactions, *t)
	}
	return transactions, rows.Err()
}

// GetTransaction returns one of the user's transactions with its category
// embedded, ErrNotFound when absent or owned by someone else.
func (s *Storage) GetTransaction(ctx context.Context, id, userID int64) (*models.Transaction, error) {
	row := s.DB.QueryRowContext(ctx, s.rebind(`SELECT `+transactionColumns+`
		FROM transactions t
		JOIN categories c ON c.id = t.category_id
		WHERE t.id = ? AND t.user_id = ?`),
		id, userID,
	)
	t, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return t, nil
}

// CreateTransaction inserts a transaction and fills in its id.
func (s *Storage) CreateTransaction(ctx context.Context, t *models.Transaction) error {
	err := s.DB.QueryRowContext(ctx,
		s.rebind(`INSERT INTO transactions (user_id, category_id, type, amount_cents, description, date)
			VALUES (?, ?, ?, ?, ?, ?) RETURNING id`),
		t.UserID, t.CategoryID, t.Type, t.Amount.Cents, t.Description, t.Date,
	).Scan(&t.ID)
	if err != nil {
		return fmt.Errorf("create transaction: %w", err)
	}
	return nil
}

// UpdateTransaction replaces the mutable fields of a transaction the user
// owns, ErrNotFound otherwise.
func (s *Storage) UpdateTransaction(ctx context.Context, t *models.Transaction) error {
	res, err := s.DB.ExecContext(ctx,
		s.rebind(`UPDATE transactions SET category_id = ?, type = ?, amount_cents = ?, description = ?, date = ?
			WHERE id = ? AND user_id = ?`),
		t.CategoryID, t.Type, t.Amount.Cents, t.Description, t.Date, t.ID, t.UserID,
	)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteTransaction removes a transaction the user owns, ErrNotFound
// otherwise.
func (s *Storage) DeleteTransaction(ctx context.Context, id, userID int64) error {
	res, err := s.DB.ExecContext(ctx,
		s.rebind(`DELETE FROM transactions WHERE id = ? AND user_id = ?`),
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// SumExpensesByCategory sums the user's EXPENSE transactions per category
// over the inclusive date window. Categories with no spend are absent.
func (s *Storage) SumExpensesByCategory(ctx context.Context, userID int64, from, to core.Date) (map[int64]core.Money, error) {
	rows, err := s.DB.QueryContext(ctx,
		s.rebind(`SELECT category_id, SUM(amount_cents)
			FROM transactions
			WHERE user_id = ? AND type = ? AND date >= ? AND date <= ?
			GROUP BY category_id`),
		userID, core.TypeExpense, from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("sum expenses by category: %w", err)
	}
	defer rows.Close()

	sums := make(map[int64]core.Money)
	for rows.Next() {
		var categoryID, cents int64
		if err := rows.Scan(&categoryID, &cents); err != nil {
			return nil, fmt.Errorf("scan expense sum: %w", err)
		}
		sums[categoryID] = core.Money{Cents: cents}
	}
	return sums, rows.Err()
}
