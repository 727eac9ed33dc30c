// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/danielhkuo/campus-elections/models"
)

var (
	ErrInvalidToken = errors.New("invalid token format")
	ErrBadSignature = errors.New("invalid token signature")
	ErrForbidden    = errors.New("forbidden")
)

var validRoles = []string{models.RoleAdmin, models.RoleOfficer, models.RoleStaff, models.RoleStudent}

// Claims identify the caller of a store operation. They are passed
// explicitly rather than read from a session.
type Claims struct {
	Subject string `json:"subject"`
	Role    string `json:"role"`
}

// Require returns ErrForbidden unless the caller holds one of roles.
func (c Claims) Require(roles ...string) error {
	if c.Subject == "" || !slices.Contains(roles, c.Role) {
		return fmt.Errorf("%w: role %q may not perform this action", ErrForbidden, c.Role)
	}
	return nil
}

// Is reports whether the caller holds any of roles.
func (c Claims) Is(roles ...string) bool {
	return c.Subject != "" && slices.Contains(roles, c.Role)
}

// GenerateToken creates an HMAC-signed bearer token for subject and role.
// This is deterministic and verifiable
func GenerateToken(subject, role, salt string) (string, error) {
	if subject == "" || strings.Contains(subject, ":") {
		return "", fmt.Errorf("%w: subject must be non-empty and contain no ':'", ErrInvalidToken)
	}
	if !slices.Contains(validRoles, role) {
		return "", fmt.Errorf("%w: unknown role %q", ErrInvalidToken, role)
	}
	payload := role + ":" + subject
	return encode([]byte(payload)) + "." + sign(payload, salt), nil
}

// ParseToken validates a token produced by GenerateToken and returns its claims.
func ParseToken(token, salt string) (Claims, error) {
	body, sig, ok := strings.Cut(token, ".")
	if !ok || body == "" || sig == "" {
		return Claims{}, ErrInvalidToken
	}
	raw, err := base64.RawURLEncoding.DecodeString(body)
	if err != nil {
		return Claims{}, ErrInvalidToken
	}
	payload := string(raw)
	if !hmac.Equal([]byte(sig), []byte(sign(payload, salt))) {
		return Claims{}, ErrBadSignature
	}
	role, subject, ok := strings.Cut(payload, ":")
	if !ok || subject == "" || !slices.Contains(validRoles, role) {
		return Claims{}, ErrInvalidToken
	}
	return Claims{Subject: subject, Role: role}, nil
}

func sign(payload, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(payload))
	return encode(h.Sum(nil))
}

// URL-safe base64 without padding
func encode(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}
