package models

import "github.com/finwise-app/backend/core"

// Budget is a user's spending ceiling for one category in one calendar
// month. At most one row exists per (user, category, month, year); the
// database enforces this with a unique constraint.
type Budget struct {
	ID         int64      `json:"id"`
	UserID     int64      `json:"userId"`
	CategoryID int64      `json:"categoryId"`
	Amount     core.Money `json:"amount"`
	Month      int        `json:"month"`
	Year       int        `json:"year"`
	Category   *Category  `json:"category,omitempty"`
}

// BudgetWithStatus is a budget annotated with its computed spend for the
// period. It is derived per request and never persisted.
type BudgetWithStatus struct {
	Budget
	core.BudgetStatus
}
