package auth_test

import (
	"testing"

	"github.com/JaimeStill/live-gallery/internal/auth"
	"github.com/JaimeStill/live-gallery/internal/config"
)

func testTokens(t *testing.T, secret, ttl string) *auth.Tokens {
	t.Helper()

	cfg := &config.AuthConfig{Secret: secret, TokenTTL: ttl}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Failed to finalize auth config: %v", err)
	}

	return auth.NewTokens(cfg)
}

func TestGenerateAndParse(t *testing.T) {
	tokens := testTokens(t, "test-secret", "1h")

	signed, err := tokens.Generate("user-123", "alice")
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}

	claims, err := tokens.Parse(signed)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	if claims.UserID != "user-123" {
		t.Errorf("Expected user id %q, got %q", "user-123", claims.UserID)
	}
	if claims.Username != "alice" {
		t.Errorf("Expected username %q, got %q", "alice", claims.Username)
	}
	if claims.Subject != "user-123" {
		t.Errorf("Expected subject %q, got %q", "user-123", claims.Subject)
	}
}

func TestParse_WrongSecret(t *testing.T) {
	issued := testTokens(t, "secret-a", "1h")
	verifying := testTokens(t, "secret-b", "1h")

	signed, err := issued.Generate("user-123", "alice")
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}

	if _, err := verifying.Parse(signed); err == nil {
		t.Error("Expected error for token signed with a different secret")
	}
}

func TestParse_Expired(t *testing.T) {
	tokens := testTokens(t, "test-secret", "-1h")

	signed, err := tokens.Generate("user-123", "alice")
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}

	if _, err := tokens.Parse(signed); err == nil {
		t.Error("Expected error for expired token")
	}
}

func TestParse_Garbage(t *testing.T) {
	tokens := testTokens(t, "test-secret", "1h")

	if _, err := tokens.Parse("not.a.token"); err == nil {
		t.Error("Expected error for malformed token")
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := auth.HashPassword("hunter22")
	if err != nil {
		t.Fatalf("HashPassword() failed: %v", err)
	}

	if hash == "hunter22" {
		t.Error("Hash should not equal the plaintext password")
	}
	if !auth.VerifyPassword(hash, "hunter22") {
		t.Error("Expected correct password to verify")
	}
	if auth.VerifyPassword(hash, "hunter23") {
		t.Error("Expected wrong password to fail verification")
	}
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	first, err := auth.HashPassword("hunter22")
	if err != nil {
		t.Fatalf("HashPassword() failed: %v", err)
	}

	second, err := auth.HashPassword("hunter22")
	if err != nil {
		t.Fatalf("HashPassword() failed: %v", err)
	}

	if first == second {
		t.Error("Expected distinct hashes for the same password")
	}
}
