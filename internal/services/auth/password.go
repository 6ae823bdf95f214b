// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package auth

import (
	"bufio"
	"context"
	_ "embed"
	"strings"
	"unicode"

	"codeberg.org/oliverandrich/go-storefront/internal/i18n"
)

//go:embed common_passwords.txt
var commonPasswordList string

var commonPasswords = loadCommonPasswords(commonPasswordList)

func loadCommonPasswords(list string) map[string]struct{} {
	set := make(map[string]struct{})
	scanner := bufio.NewScanner(strings.NewReader(list))
	for scanner.Scan() {
		if pw := strings.ToLower(strings.TrimSpace(scanner.Text())); pw != "" {
			set[pw] = struct{}{}
		}
	}
	return set
}

// Password rule codes. Each code doubles as the message ID of its
// translation.
const (
	RuleMinLength   = "password_min_length"
	RuleNumeric     = "password_entirely_numeric"
	RuleCommon      = "password_too_common"
	RuleSimilar     = "password_too_similar"
	RuleMismatch    = "password_mismatch"
	similarityLimit = 0.7
	minAttrLength   = 3
)

// PasswordPolicy decides which passwords are acceptable.
type PasswordPolicy struct {
	MinLength            int
	CheckCommonPasswords bool
	CheckUserSimilarity  bool
}

// DefaultPasswordPolicy returns the storefront's password rules.
func DefaultPasswordPolicy() *PasswordPolicy {
	return &PasswordPolicy{
		MinLength:            8,
		CheckCommonPasswords: true,
		CheckUserSimilarity:  true,
	}
}

// PasswordError lists the rules a password broke.
type PasswordError struct {
	Rules     []string
	MinLength int
}

func (e *PasswordError) Error() string {
	if len(e.Rules) == 0 {
		return "password validation failed"
	}
	return "password rejected: " + strings.Join(e.Rules, ", ")
}

// Messages returns the localized reasons.
func (e *PasswordError) Messages(ctx context.Context) []string {
	messages := make([]string, 0, len(e.Rules))
	for _, rule := range e.Rules {
		messages = append(messages, i18n.TData(ctx, rule, map[string]any{"Min": e.MinLength}))
	}
	return messages
}

// Check returns a *PasswordError when the password breaks a rule. The
// user attributes (username, email, names) must not resemble it.
func (p *PasswordPolicy) Check(password string, userAttributes ...string) error {
	var rules []string

	if len([]rune(password)) < p.MinLength {
		rules = append(rules, RuleMinLength)
	}
	if isEntirelyNumeric(password) {
		rules = append(rules, RuleNumeric)
	}
	if p.CheckCommonPasswords && isCommonPassword(password) {
		rules = append(rules, RuleCommon)
	}
	if p.CheckUserSimilarity && isSimilarToUserAttributes(password, userAttributes) {
		rules = append(rules, RuleSimilar)
	}

	if len(rules) == 0 {
		return nil
	}
	return &PasswordError{Rules: rules, MinLength: p.MinLength}
}

// HelpTexts describes the rules for display next to the password field.
func (p *PasswordPolicy) HelpTexts(ctx context.Context) []string {
	texts := []string{
		i18n.TData(ctx, "password_help_min_length", map[string]any{"Min": p.MinLength}),
		i18n.T(ctx, "password_help_numeric"),
	}
	if p.CheckCommonPasswords {
		texts = append(texts, i18n.T(ctx, "password_help_common"))
	}
	if p.CheckUserSimilarity {
		texts = append(texts, i18n.T(ctx, "password_help_similar"))
	}
	return texts
}

func isEntirelyNumeric(password string) bool {
	if password == "" {
		return false
	}
	for _, r := range password {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func isCommonPassword(password string) bool {
	_, ok := commonPasswords[strings.ToLower(password)]
	return ok
}

func isSimilarToUserAttributes(password string, attributes []string) bool {
	pw := strings.ToLower(password)
	if pw == "" {
		return false
	}

	for _, attr := range attributes {
		if attr == "" {
			continue
		}
		a := strings.ToLower(attr)
		// Compare against the local part of email addresses as well.
		if local, _, ok := strings.Cut(a, "@"); ok && local != "" {
			if similar(pw, local) {
				return true
			}
		}
		if similar(pw, a) {
			return true
		}
	}
	return false
}

func similar(password, attr string) bool {
	if len(attr) >= minAttrLength && strings.Contains(password, attr) {
		return true
	}
	if strings.Contains(attr, password) {
		return true
	}
	return similarity(password, attr) > similarityLimit
}

// similarity is the longest common subsequence relative to the longer string.
func similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
			} else {
				curr[j] = max(prev[j], curr[j-1])
			}
		}
		prev, curr = curr, prev
	}

	return float64(prev[len(b)]) / float64(max(len(a), len(b)))
}
