package db

import (
	"context"
	"fmt"

	"github.com/finwise-app/backend/core"
)

type defaultCategory struct {
	Name  string
	Type  string
	Icon  string
	Color string
}

var defaultCategories = []defaultCategory{
	{"Salary", core.TypeIncome, "💰", "#10B981"},
	{"Freelance", core.TypeIncome, "💼", "#3B82F6"},
	{"Investment", core.TypeIncome, "📈", "#8B5CF6"},
	{"Gift", core.TypeIncome, "🎁", "#EC4899"},
	{"Other Income", core.TypeIncome, "💵", "#6B7280"},

	{"Food & Dining", core.TypeExpense, "🍔", "#EF4444"},
	{"Transportation", core.TypeExpense, "🚗", "#F59E0B"},
	{"Shopping", core.TypeExpense, "🛍️", "#EC4899"},
	{"Entertainment", core.TypeExpense, "🎮", "#8B5CF6"},
	{"Bills & Utilities", core.TypeExpense, "📄", "#6B7280"},
	{"Healthcare", core.TypeExpense, "🏥", "#14B8A6"},
	{"Education", core.TypeExpense, "📚", "#3B82F6"},
	{"Housing", core.TypeExpense, "🏠", "#84CC16"},
	{"Other Expense", core.TypeExpense, "💸", "#6B7280"},
}

// Seed inserts the shared default categories. Idempotent: a default that
// already exists by name is left untouched, so it is safe on every start.
func (s *Storage) Seed(ctx context.Context) error {
	for _, dc := range defaultCategories {
		var n int64
		err := s.DB.QueryRowContext(ctx,
			s.rebind(`SELECT COUNT(*) FROM categories WHERE name = ? AND is_default`),
			dc.Name,
		).Scan(&n)
		if err != nil {
			return fmt.Errorf("check default category %q: %w", dc.Name, err)
		}
		if n > 0 {
			continue
		}
		_, err = s.DB.ExecContext(ctx,
			s.rebind(`INSERT INTO categories (name, type, icon, color, is_default, user_id) VALUES (?, ?, ?, ?, TRUE, NULL)`),
			dc.Name, dc.Type, dc.Icon, dc.Color,
		)
		if err != nil {
			return fmt.Errorf("seed default category %q: %w", dc.Name, err)
		}
	}
	return nil
}
