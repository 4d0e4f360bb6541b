// Package models defines the persisted entities and the request/response
// shapes exchanged over the API.
package models

// User owns categories, transactions and budgets. The password hash never
// leaves the process.
type User struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"`
}
