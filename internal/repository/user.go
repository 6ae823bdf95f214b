// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"time"

	"codeberg.org/oliverandrich/go-storefront/internal/models"
)

const userColumns = `id, username, email, first_name, last_name, password_hash, is_verified_email, created_at, updated_at`

// CreateUser inserts a user and sets its ID and timestamps.
func (r *Repository) CreateUser(ctx context.Context, user *models.User) error {
	now := time.Now().UTC()
	res, err := r.q.ExecContext(ctx,
		`INSERT INTO users (username, email, first_name, last_name, password_hash, is_verified_email, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		user.Username, user.Email, user.FirstName, user.LastName, user.PasswordHash, user.IsVerifiedEmail, now, now)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	user.ID = id
	user.CreatedAt = now
	user.UpdatedAt = now
	return nil
}

// GetUserByID retrieves a user by ID.
func (r *Repository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	err := r.q.GetContext(ctx, &user, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	if err != nil {
		return nil, wrapError(err)
	}
	return &user, nil
}

// GetUserByUsername retrieves a user by username.
func (r *Repository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.q.GetContext(ctx, &user, `SELECT `+userColumns+` FROM users WHERE username = ?`, username)
	if err != nil {
		return nil, wrapError(err)
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email address.
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.q.GetContext(ctx, &user, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	if err != nil {
		return nil, wrapError(err)
	}
	return &user, nil
}

// UsernameExists checks if a user with the given username exists.
func (r *Repository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.q.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM users WHERE username = ?)`, username)
	return exists, err
}

// EmailExists checks if a user with the given email exists.
func (r *Repository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.q.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM users WHERE email = ?)`, email)
	return exists, err
}

// UpdateUserProfile updates the editable profile fields.
func (r *Repository) UpdateUserProfile(ctx context.Context, id int64, firstName, lastName string) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE users SET first_name = ?, last_name = ?, updated_at = ? WHERE id = ?`,
		firstName, lastName, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// MarkEmailVerified flags the user's email as verified. It reports whether
// the flag changed, so a second call for the same user returns false.
func (r *Repository) MarkEmailVerified(ctx context.Context, id int64) (bool, error) {
	res, err := r.q.ExecContext(ctx,
		`UPDATE users SET is_verified_email = 1, updated_at = ? WHERE id = ? AND is_verified_email = 0`,
		time.Now().UTC(), id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
