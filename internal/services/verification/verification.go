// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package verification issues and confirms email verification codes.
//
// A user holds at most one code. Only its SHA-256 hash is stored. A code
// that is presented after its expiry is never accepted: it is replaced by a
// fresh one valid for RenewalTTL and mailed again.
package verification

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"codeberg.org/oliverandrich/go-storefront/internal/models"
	"codeberg.org/oliverandrich/go-storefront/internal/repository"
	"github.com/google/uuid"
)

// RenewalTTL is the lifetime of a code reissued for an expired one.
const RenewalTTL = 24 * time.Hour

// Result is the outcome of a confirmation attempt.
type Result int

const (
	// Invalid means no token matches the address and code.
	Invalid Result = iota
	// Verified means the address is now confirmed.
	Verified
	// Expired means the code ran out and a new one was sent.
	Expired
)

func (r Result) String() string {
	switch r {
	case Verified:
		return "verified"
	case Expired:
		return "expired"
	default:
		return "invalid"
	}
}

// Notifier delivers a verification code to an address.
type Notifier interface {
	SendVerification(ctx context.Context, toEmail, code string, expired bool) error
}

// Service manages the verification token lifecycle.
type Service struct {
	repo     *repository.Repository
	notifier Notifier
	ttl      time.Duration
	now      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a verification service. ttl is the lifetime of codes
// issued at registration.
func NewService(repo *repository.Repository, notifier Notifier, ttl time.Duration, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		notifier: notifier,
		ttl:      ttl,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewCode returns a random code and the hash stored for it.
func NewCode() (code, hash string) {
	code = uuid.NewString()
	return code, HashToken(code)
}

// HashToken computes the SHA256 hash of a token.
func HashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

// Issue stores a new code for the user, replacing any previous one, and
// mails it. The token is kept even when delivery fails.
func (s *Service) Issue(ctx context.Context, user *models.User) error {
	code, hash := NewCode()
	now := s.now()
	expiresAt := now.Add(s.ttl)

	if err := s.repo.SaveEmailVerificationToken(ctx, user.ID, hash, now, expiresAt); err != nil {
		return fmt.Errorf("saving verification token: %w", err)
	}
	slog.InfoContext(ctx, "verification_issued", "user_id", user.ID, "expires_at", expiresAt)

	if err := s.notifier.SendVerification(ctx, user.Email, code, false); err != nil {
		return fmt.Errorf("sending verification email: %w", err)
	}
	return nil
}

// Confirm checks a code presented for an address.
//
// Unknown addresses or codes return Invalid and change nothing. An expired
// code is rotated and re-sent and returns Expired; a failed re-send is
// logged only. A valid code marks the address verified, is consumed and
// returns Verified.
func (s *Service) Confirm(ctx context.Context, email, code string) (Result, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return Invalid, nil
	}
	if err != nil {
		return Invalid, fmt.Errorf("looking up user: %w", err)
	}

	token, err := s.repo.GetEmailVerificationToken(ctx, user.ID, HashToken(code))
	if errors.Is(err, repository.ErrNotFound) {
		return Invalid, nil
	}
	if err != nil {
		return Invalid, fmt.Errorf("looking up token: %w", err)
	}

	now := s.now()
	if token.IsExpired(now) {
		return s.renew(ctx, user, token, now)
	}

	err = s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		if err := tx.ConsumeEmailVerificationToken(ctx, token.ID, token.TokenHash); err != nil {
			return err
		}
		_, err := tx.MarkEmailVerified(ctx, user.ID)
		return err
	})
	if errors.Is(err, repository.ErrNotFound) {
		return Invalid, nil
	}
	if err != nil {
		return Invalid, fmt.Errorf("confirming email: %w", err)
	}

	slog.InfoContext(ctx, "email_verified", "user_id", user.ID)
	return Verified, nil
}

func (s *Service) renew(ctx context.Context, user *models.User, token *models.EmailVerificationToken, now time.Time) (Result, error) {
	code, hash := NewCode()
	expiresAt := now.Add(RenewalTTL)

	err := s.repo.RotateEmailVerificationToken(ctx, token.ID, token.TokenHash, hash, expiresAt)
	if errors.Is(err, repository.ErrNotFound) {
		// another request rotated or consumed it first
		return Invalid, nil
	}
	if err != nil {
		return Invalid, fmt.Errorf("rotating token: %w", err)
	}
	slog.InfoContext(ctx, "verification_renewed", "user_id", user.ID, "expires_at", expiresAt)

	if err := s.notifier.SendVerification(ctx, user.Email, code, true); err != nil {
		slog.ErrorContext(ctx, "verification_resend_failed", "user_id", user.ID, "error", err)
	}
	return Expired, nil
}
