package models

// FieldError is one entry of a validation failure: which field was wrong
// and why. Validation rejects a request before it touches storage.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationResponse struct {
	Errors []FieldError `json:"errors"`
}

type ErrorResponse struct {
	Error string `json:"error" example:"Budget not found"`
}

type MessageResponse struct {
	Message string `json:"message" example:"Budget deleted successfully"`
}

type AuthResponse struct {
	Message string `json:"message" example:"Login successful"`
	Token   string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	User    User   `json:"user"`
}

type CategoriesResponse struct {
	Categories []Category `json:"categories"`
}

type CategoryResponse struct {
	Message  string   `json:"message"`
	Category Category `json:"category"`
}

type TransactionsResponse struct {
	Transactions []Transaction `json:"transactions"`
}

type TransactionResponse struct {
	Message     string      `json:"message,omitempty"`
	Transaction Transaction `json:"transaction"`
}

type BudgetsResponse struct {
	Budgets []BudgetWithStatus `json:"budgets"`
}

type BudgetResponse struct {
	Message string `json:"message"`
	Budget  Budget `json:"budget"`
}
