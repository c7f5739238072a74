package auth_test

import (
	"errors"
	"testing"
	"time"

	"github.com/prashikshan/backend/internal/pkg/auth"
)

func newTestService(accessExp time.Duration) *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  accessExp,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "test",
	})
}

func TestGenerateAndValidateTokenPair(t *testing.T) {
	svc := newTestService(15 * time.Minute)

	access, refresh, err := svc.GenerateTokenPair(123456789, "Student")
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}
	if access == "" || refresh == "" {
		t.Fatal("expected non-empty tokens")
	}
	if access == refresh {
		t.Error("access and refresh tokens should differ")
	}

	claims, err := svc.ValidateAndExtractClaims(access)
	if err != nil {
		t.Fatalf("ValidateAndExtractClaims: %v", err)
	}
	if claims.UserID != 123456789 {
		t.Errorf("expected userID 123456789, got %d", claims.UserID)
	}
	if claims.Role != "Student" {
		t.Errorf("expected role Student, got %q", claims.Role)
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	svc := newTestService(15 * time.Minute)
	access, _, err := svc.GenerateTokenPair(1, "Admin")
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}

	other := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "different-secret",
		AccessTokenExp:  15 * time.Minute,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "test",
	})
	if _, err := other.ValidateToken(access); err == nil {
		t.Error("expected validation to fail with a different secret")
	}
}

func TestValidateToken_Expired(t *testing.T) {
	svc := newTestService(-time.Minute)
	access, _, err := svc.GenerateTokenPair(1, "Student")
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}

	_, err = svc.ValidateToken(access)
	if !errors.Is(err, auth.ErrExpiredToken) {
		t.Errorf("expected ErrExpiredToken, got %v", err)
	}
}

func TestValidateAndExtractClaims_Empty(t *testing.T) {
	svc := newTestService(15 * time.Minute)
	if _, err := svc.ValidateAndExtractClaims(""); !errors.Is(err, auth.ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestValidateAndExtractClaims_Garbage(t *testing.T) {
	svc := newTestService(15 * time.Minute)
	if _, err := svc.ValidateAndExtractClaims("not.a.token"); err == nil {
		t.Error("expected error for malformed token")
	}
}

func TestExtractBearerToken(t *testing.T) {
	token, err := auth.ExtractBearerToken("Bearer abc123")
	if err != nil {
		t.Fatalf("ExtractBearerToken: %v", err)
	}
	if token != "abc123" {
		t.Errorf("expected abc123, got %q", token)
	}

	if _, err := auth.ExtractBearerToken(""); !errors.Is(err, auth.ErrInvalidFormat) {
		t.Errorf("expected ErrInvalidFormat for empty header, got %v", err)
	}
	if _, err := auth.ExtractBearerToken("Basic abc123"); !errors.Is(err, auth.ErrInvalidFormat) {
		t.Errorf("expected ErrInvalidFormat for non-bearer scheme, got %v", err)
	}
}
