package auth_test

import (
	"testing"

	"github.com/prashikshan/backend/internal/pkg/auth"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := auth.HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "s3cret-pass" {
		t.Fatal("hash must not equal the plaintext")
	}

	if !auth.CheckPassword(hash, "s3cret-pass") {
		t.Error("expected correct password to verify")
	}
	if auth.CheckPassword(hash, "wrong-pass") {
		t.Error("expected wrong password to fail")
	}
}

func TestHashPassword_DistinctSalts(t *testing.T) {
	first, err := auth.HashPassword("same-input")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	second, err := auth.HashPassword("same-input")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if first == second {
		t.Error("two hashes of the same password should differ")
	}
}
