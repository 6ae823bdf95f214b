// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"time"

	"codeberg.org/oliverandrich/go-storefront/internal/models"
)

// SaveEmailVerificationToken stores the user's token created at createdAt,
// replacing any previous one.
func (r *Repository) SaveEmailVerificationToken(ctx context.Context, userID int64, tokenHash string, createdAt, expiresAt time.Time) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO email_verification_tokens (user_id, token_hash, expires_at, created_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
		   token_hash = excluded.token_hash,
		   expires_at = excluded.expires_at,
		   created_at = excluded.created_at`,
		userID, tokenHash, expiresAt.UTC(), createdAt.UTC())
	return err
}

// GetEmailVerificationToken retrieves the token matching both user and hash.
func (r *Repository) GetEmailVerificationToken(ctx context.Context, userID int64, tokenHash string) (*models.EmailVerificationToken, error) {
	var token models.EmailVerificationToken
	err := r.q.GetContext(ctx, &token,
		`SELECT id, user_id, token_hash, expires_at, created_at FROM email_verification_tokens WHERE user_id = ? AND token_hash = ?`,
		userID, tokenHash)
	if err != nil {
		return nil, wrapError(err)
	}
	return &token, nil
}

// GetUserEmailVerificationToken retrieves the user's current token.
func (r *Repository) GetUserEmailVerificationToken(ctx context.Context, userID int64) (*models.EmailVerificationToken, error) {
	var token models.EmailVerificationToken
	err := r.q.GetContext(ctx, &token,
		`SELECT id, user_id, token_hash, expires_at, created_at FROM email_verification_tokens WHERE user_id = ?`,
		userID)
	if err != nil {
		return nil, wrapError(err)
	}
	return &token, nil
}

// RotateEmailVerificationToken replaces the code hash and expiry of a token,
// but only while it still carries oldHash. Returns ErrNotFound when another
// request rotated or consumed the token first.
func (r *Repository) RotateEmailVerificationToken(ctx context.Context, tokenID int64, oldHash, newHash string, expiresAt time.Time) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE email_verification_tokens SET token_hash = ?, expires_at = ? WHERE id = ? AND token_hash = ?`,
		newHash, expiresAt.UTC(), tokenID, oldHash)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// ConsumeEmailVerificationToken deletes a token if it still carries
// tokenHash. Returns ErrNotFound when it was already consumed or rotated.
func (r *Repository) ConsumeEmailVerificationToken(ctx context.Context, tokenID int64, tokenHash string) error {
	res, err := r.q.ExecContext(ctx,
		`DELETE FROM email_verification_tokens WHERE id = ? AND token_hash = ?`, tokenID, tokenHash)
	if err != nil {
		return err
	}
	return requireAffected(res)
}
