package models

import "github.com/finwise-app/backend/core"

// Transaction is a single dated monetary movement. Its type always equals
// the type of the category it references.
type Transaction struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"userId"`
	CategoryID  int64      `json:"categoryId"`
	Type        string     `json:"type"`
	Amount      core.Money `json:"amount"`
	Description string     `json:"description,omitempty"`
	Date        core.Date  `json:"date"`
	Category    *Category  `json:"category,omitempty"`
}
