// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"errors"
	"strings"
	"testing"

	"github.com/danielhkuo/campus-elections/models"
)

func TestGenerateToken(t *testing.T) {
	tests := []struct {
		name    string
		subject string
		role    string
		wantErr bool
	}{
		{"admin", "admin-1", models.RoleAdmin, false},
		{"student", "3f2a", models.RoleStudent, false},
		{"empty subject", "", models.RoleAdmin, true},
		{"subject with separator", "a:b", models.RoleAdmin, true},
		{"unknown role", "someone", "janitor", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := GenerateToken(tt.subject, tt.role, "salt")
			if (err != nil) != tt.wantErr {
				t.Fatalf("GenerateToken() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidToken) {
					t.Errorf("expected ErrInvalidToken, got %v", err)
				}
				return
			}

			// Should be deterministic
			token2, _ := GenerateToken(tt.subject, tt.role, "salt")
			if token != token2 {
				t.Error("GenerateToken() is not deterministic")
			}

			// Should be URL-safe
			if strings.ContainsAny(token, "+/=") {
				t.Errorf("GenerateToken() contains non-URL-safe characters: %s", token)
			}
		})
	}
}

func TestParseToken(t *testing.T) {
	salt := "secret-salt"
	token, err := GenerateToken("officer-7", models.RoleOfficer, salt)
	if err != nil {
		t.Fatal(err)
	}

	claims, err := ParseToken(token, salt)
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}
	if claims.Subject != "officer-7" || claims.Role != models.RoleOfficer {
		t.Errorf("unexpected claims: %+v", claims)
	}

	tests := []struct {
		name    string
		token   string
		salt    string
		wantErr error
	}{
		{"wrong salt", token, "other-salt", ErrBadSignature},
		{"no separator", "abcdef", salt, ErrInvalidToken},
		{"empty", "", salt, ErrInvalidToken},
		{"bad base64", "!!!." + strings.Split(token, ".")[1], salt, ErrInvalidToken},
		{"tampered signature", token + "x", salt, ErrBadSignature},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseToken(tt.token, tt.salt)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ParseToken() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestClaimsRequire(t *testing.T) {
	officer := Claims{Subject: "o1", Role: models.RoleOfficer}

	if err := officer.Require(models.RoleAdmin, models.RoleOfficer); err != nil {
		t.Errorf("officer should be allowed: %v", err)
	}
	if err := officer.Require(models.RoleAdmin); !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}

	// Anonymous claims never pass, even with a matching role
	anon := Claims{Role: models.RoleAdmin}
	if err := anon.Require(models.RoleAdmin); !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden for missing subject, got %v", err)
	}
	if anon.Is(models.RoleAdmin) {
		t.Error("anonymous claims should not match any role")
	}
}
