// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package auth registers and authenticates storefront accounts.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"codeberg.org/oliverandrich/go-storefront/internal/models"
	"codeberg.org/oliverandrich/go-storefront/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

// dummyHash is used for constant-time login to prevent timing attacks
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("dummy-password-for-timing"), bcrypt.DefaultCost)

type Service struct {
	repo   *repository.Repository
	policy *PasswordPolicy
}

func NewService(repo *repository.Repository) *Service {
	return &Service{
		repo:   repo,
		policy: DefaultPasswordPolicy(),
	}
}

// Policy returns the password policy for use in handlers.
func (s *Service) Policy() *PasswordPolicy {
	return s.policy
}

// RegisterParams holds the parameters for user registration
type RegisterParams struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	Password  string
}

// Register creates a new, unverified user account.
func (s *Service) Register(ctx context.Context, params RegisterParams) (*models.User, error) {
	params.Username = strings.TrimSpace(params.Username)
	params.Email = strings.TrimSpace(params.Email)

	if err := s.policy.Check(params.Password, params.Username, params.Email); err != nil {
		return nil, err
	}

	taken, err := s.repo.UsernameExists(ctx, params.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	taken, err = s.repo.EmailExists(ctx, params.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if taken {
		return nil, ErrEmailTaken
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     params.Username,
		Email:        params.Email,
		FirstName:    strings.TrimSpace(params.FirstName),
		LastName:     strings.TrimSpace(params.LastName),
		PasswordHash: string(passwordHash),
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	slog.InfoContext(ctx, "register_success", "user_id", user.ID, "username", user.Username)

	return user, nil
}

// Login authenticates a user by username and password.
func (s *Service) Login(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.repo.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Constant-time: always perform bcrypt comparison to prevent timing attacks
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			slog.WarnContext(ctx, "login_failed", "username", username, "reason", "user_not_found")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		slog.WarnContext(ctx, "login_failed", "username", username, "reason", "invalid_password")
		return nil, ErrInvalidCredentials
	}

	slog.InfoContext(ctx, "login_success", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// UpdateProfile changes the user's first and last name.
func (s *Service) UpdateProfile(ctx context.Context, userID int64, firstName, lastName string) (*models.User, error) {
	err := s.repo.UpdateUserProfile(ctx, userID, strings.TrimSpace(firstName), strings.TrimSpace(lastName))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload user: %w", err)
	}
	slog.InfoContext(ctx, "profile_updated", "user_id", userID)
	return user, nil
}
