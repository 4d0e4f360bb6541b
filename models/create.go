package models

import "github.com/finwise-app/backend/core"

// Request bodies. Amounts and dates use the core types and are validated
// in the handlers so that the API can report per-field messages; the rest
// relies on gin's binding tags.

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type CreateCategoryRequest struct {
	Name  string `json:"name" binding:"required"`
	Type  string `json:"type" binding:"required,oneof=INCOME EXPENSE"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// UpdateCategoryRequest carries a partial update; nil fields are left
// untouched. Type is immutable and therefore absent.
type UpdateCategoryRequest struct {
	Name  *string `json:"name"`
	Icon  *string `json:"icon"`
	Color *string `json:"color"`
}

type CreateTransactionRequest struct {
	Amount      core.Money `json:"amount"`
	Type        string     `json:"type" binding:"required,oneof=INCOME EXPENSE"`
	Description string     `json:"description"`
	Date        core.Date  `json:"date"`
	CategoryID  int64      `json:"categoryId" binding:"required"`
}

type UpsertBudgetRequest struct {
	CategoryID int64      `json:"categoryId" binding:"required"`
	Amount     core.Money `json:"amount"`
	Month      int        `json:"month" binding:"required,min=1,max=12"`
	Year       int        `json:"year" binding:"required,gte=2000"`
}
