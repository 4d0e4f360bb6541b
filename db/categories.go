package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/finwise-app/backend/models"
)

const categoryColumns = `id, name, type, icon, color, is_default, user_id`

func scanCategory(row interface{ Scan(...any) error }) (*models.Category, error) {
	var c models.Category
	err := row.Scan(&c.ID, &c.Name, &c.Type, &c.Icon, &c.Color, &c.IsDefault, &c.UserID)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListCategories returns the categories visible to the user: the shared
// defaults plus the user's own, defaults first, names ascending within
// each group. typ optionally narrows to INCOME or EXPENSE.
func (s *Storage) ListCategories(ctx context.Context, userID int64, typ string) ([]models.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE (is_default OR user_id = ?)`
	args := []any{userID}
	if typ != "" {
		query += ` AND type = ?`
		args = append(args, typ)
	}
	query += ` ORDER BY is_default DESC, name ASC`

	rows, err := s.DB.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, *c)
	}
	return categories, rows.Err()
}

// GetCategory returns a category if it is visible to the user (a shared
// default or owned by them), ErrNotFound otherwise.
func (s *Storage) GetCategory(ctx context.Context, id, userID int64) (*models.Category, error) {
	row := s.DB.QueryRowContext(ctx,
		s.rebind(`SELECT `+categoryColumns+` FROM categories WHERE id = ? AND (is_default OR user_id = ?)`),
		id, userID,
	)
	c, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

// getOwnedCategory returns a non-default category owned by the user.
// Defaults are read-only, so mutation paths go through this lookup.
func (s *Storage) getOwnedCategory(ctx context.Context, id, userID int64) (*models.Category, error) {
	row := s.DB.QueryRowContext(ctx,
		s.rebind(`SELECT `+categoryColumns+` FROM categories WHERE id = ? AND user_id = ? AND NOT is_default`),
		id, userID,
	)
	c, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get owned category: %w", err)
	}
	return c, nil
}

// CreateCategory inserts a user-owned category. User categories are never
// defaults.
func (s *Storage) CreateCategory(ctx context.Context, userID int64, name, typ, icon, color string) (*models.Category, error) {
	c := &models.Category{Name: name, Type: typ, Icon: icon, Color: color, UserID: &userID}
	err := s.DB.QueryRowContext(ctx,
		s.rebind(`INSERT INTO categories (name, type, icon, color, is_default, user_id) VALUES (?, ?, ?, ?, FALSE, ?) RETURNING id`),
		name, typ, icon, color, userID,
	).Scan(&c.ID)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return c, nil
}

// UpdateCategory applies a partial update to a category the user owns.
// Type is immutable. ErrNotFound when the category is absent, not owned,
// or a shared default.
func (s *Storage) UpdateCategory(ctx context.Context, id, userID int64, name, icon, color *string) (*models.Category, error) {
	c, err := s.getOwnedCategory(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if name != nil {
		c.Name = *name
	}
	if icon != nil {
		c.Icon = *icon
	}
	if color != nil {
		c.Color = *color
	}
	_, err = s.DB.ExecContext(ctx,
		s.rebind(`UPDATE categories SET name = ?, icon = ?, color = ? WHERE id = ?`),
		c.Name, c.Icon, c.Color, c.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return c, nil
}

// DeleteCategory removes a category the user owns. Deleting a category
// still referenced by transactions returns ErrCategoryInUse.
func (s *Storage) DeleteCategory(ctx context.Context, id, userID int64) error {
	if _, err := s.getOwnedCategory(ctx, id, userID); err != nil {
		return err
	}

	var inUse int64
	err := s.DB.QueryRowContext(ctx,
		s.rebind(`SELECT COUNT(*) FROM transactions WHERE category_id = ?`),
		id,
	).Scan(&inUse)
	if err != nil {
		return fmt.Errorf("count category transactions: %w", err)
	}
	if inUse > 0 {
		return ErrCategoryInUse
	}

	if _, err := s.DB.ExecContext(ctx, s.rebind(`DELETE FROM categories WHERE id = ?`), id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
