// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package session stores the logged-in user and one-shot flash messages in
// signed cookies.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"codeberg.org/oliverandrich/go-storefront/internal/config"
	"github.com/gorilla/securecookie"
)

const (
	keyLength       = 32
	flashCookieName = "_flash"
	flashMaxAge     = 300
)

// Data is the payload of a session cookie.
type Data struct {
	UserID    int64     `json:"uid"`
	Username  string    `json:"usr"`
	ExpiresAt time.Time `json:"exp"`
}

// Manager encodes and decodes session and flash cookies.
type Manager struct {
	codec  *securecookie.SecureCookie
	name   string
	maxAge int
	secure bool
}

// NewManager creates a session manager. An empty hash key is replaced by a
// random one, which invalidates all sessions on restart.
func NewManager(cfg *config.SessionConfig, secure bool) (*Manager, error) {
	hashKey, err := decodeKey(cfg.HashKey, "hash")
	if err != nil {
		return nil, err
	}
	if hashKey == nil {
		slog.Warn("session_hash_key_generated", "hint", "set session.hash_key to keep sessions across restarts")
		hashKey = securecookie.GenerateRandomKey(keyLength)
		if hashKey == nil {
			return nil, errors.New("generating session hash key failed")
		}
	}

	blockKey, err := decodeKey(cfg.BlockKey, "block")
	if err != nil {
		return nil, err
	}

	codec := securecookie.New(hashKey, blockKey)
	codec.MaxAge(cfg.MaxAge)
	codec.SetSerializer(securecookie.JSONEncoder{})

	return &Manager{
		codec:  codec,
		name:   cfg.CookieName,
		maxAge: cfg.MaxAge,
		secure: secure,
	}, nil
}

func decodeKey(value, kind string) ([]byte, error) {
	if value == "" {
		return nil, nil
	}
	key, err := hex.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("invalid session %s key: %w", kind, err)
	}
	if len(key) != keyLength {
		return nil, fmt.Errorf("invalid session %s key: must be %d bytes, got %d", kind, keyLength, len(key))
	}
	return key, nil
}

// GenerateKey returns a random hex encoded key suitable for the config.
func GenerateKey() (string, error) {
	b := make([]byte, keyLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// Create returns a session cookie for the user.
func (m *Manager) Create(userID int64, username string) (*http.Cookie, error) {
	data := Data{
		UserID:    userID,
		Username:  username,
		ExpiresAt: time.Now().Add(time.Duration(m.maxAge) * time.Second).UTC(),
	}
	value, err := m.codec.Encode(m.name, data)
	if err != nil {
		return nil, fmt.Errorf("encoding session: %w", err)
	}
	return m.cookie(m.name, value, m.maxAge), nil
}

// Parse returns the session carried by the request. A missing, tampered or
// expired cookie yields nil without an error.
func (m *Manager) Parse(r *http.Request) (*Data, error) {
	c, err := r.Cookie(m.name)
	if err != nil {
		return nil, nil //nolint:nilerr // no cookie means anonymous
	}

	var data Data
	if err := m.codec.Decode(m.name, c.Value, &data); err != nil {
		return nil, nil //nolint:nilerr // invalid cookie means anonymous
	}
	if !data.ExpiresAt.IsZero() && time.Now().After(data.ExpiresAt) {
		return nil, nil
	}
	return &data, nil
}

// Clear returns a cookie that removes the session.
func (m *Manager) Clear() *http.Cookie {
	return m.cookie(m.name, "", -1)
}

// Flash returns a cookie carrying a message for the next page.
func (m *Manager) Flash(message string) (*http.Cookie, error) {
	value, err := m.codec.Encode(flashCookieName, message)
	if err != nil {
		return nil, fmt.Errorf("encoding flash: %w", err)
	}
	return m.cookie(flashCookieName, value, flashMaxAge), nil
}

// PopFlash reads the pending flash message and expires its cookie.
func (m *Manager) PopFlash(w http.ResponseWriter, r *http.Request) string {
	c, err := r.Cookie(flashCookieName)
	if err != nil {
		return ""
	}
	http.SetCookie(w, m.cookie(flashCookieName, "", -1))

	var message string
	if err := m.codec.Decode(flashCookieName, c.Value, &message); err != nil {
		return ""
	}
	return message
}

func (m *Manager) cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
