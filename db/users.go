package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/finwise-app/backend/models"
)

// CreateUser inserts a new user. The password must already be hashed.
// Registering an email twice returns ErrEmailTaken.
func (s *Storage) CreateUser(ctx context.Context, email, name, passwordHash string) (*models.User, error) {
	existing, err := s.GetUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	u := &models.User{Email: email, Name: name, PasswordHash: passwordHash}
	err = s.DB.QueryRowContext(ctx,
		s.rebind(`INSERT INTO users (email, name, password_hash) VALUES (?, ?, ?) RETURNING id`),
		email, name, passwordHash,
	).Scan(&u.ID)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// GetUserByEmail looks a user up by email, ErrNotFound when absent.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.DB.QueryRowContext(ctx,
		s.rebind(`SELECT id, email, name, password_hash FROM users WHERE email = ?`),
		email,
	).Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &u, nil
}

// GetUser looks a user up by id, ErrNotFound when absent.
func (s *Storage) GetUser(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	err := s.DB.QueryRowContext(ctx,
		s.rebind(`SELECT id, email, name, password_hash FROM users WHERE id = ?`),
		id,
	).Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}
