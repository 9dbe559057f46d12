package jwt

import (
	"testing"

	"github.com/google/uuid"
)

const testSecret = "test-secret"

func TestTokenRoundTrip(t *testing.T) {
	userID := uuid.New()

	access, refresh, err := GenerateTokenPair(userID, testSecret)
	if err != nil {
		t.Fatalf("GenerateTokenPair failed: %v", err)
	}
	if access == "" || refresh == "" || access == refresh {
		t.Fatal("expected two distinct non-empty tokens")
	}

	claims, err := ValidateAndGetClaims(access, testSecret)
	if err != nil {
		t.Fatalf("ValidateAndGetClaims failed: %v", err)
	}
	if use, _ := claims["use"].(string); use != "access" {
		t.Errorf("use claim = %q, want %q", use, "access")
	}

	got, err := UserIDFromClaims(claims)
	if err != nil {
		t.Fatalf("UserIDFromClaims failed: %v", err)
	}
	if got != userID {
		t.Errorf("user id = %s, want %s", got, userID)
	}
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	access, _, err := GenerateTokenPair(uuid.New(), testSecret)
	if err != nil {
		t.Fatalf("GenerateTokenPair failed: %v", err)
	}
	if _, err := ValidateAndGetClaims(access, "another-secret"); err == nil {
		t.Fatal("token validated with the wrong secret")
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	if _, err := ValidateAndGetClaims("not.a.token", testSecret); err == nil {
		t.Fatal("garbage string validated")
	}
}

func TestPasswordResetTokenCarriesEmail(t *testing.T) {
	token, err := GeneratePasswordResetToken("owner@example.com", testSecret)
	if err != nil {
		t.Fatalf("GeneratePasswordResetToken failed: %v", err)
	}
	claims, err := ValidateAndGetClaims(token, testSecret)
	if err != nil {
		t.Fatalf("ValidateAndGetClaims failed: %v", err)
	}
	if email, _ := claims["email"].(string); email != "owner@example.com" {
		t.Errorf("email claim = %q", email)
	}
	if use, _ := claims["use"].(string); use != "password_reset" {
		t.Errorf("use claim = %q, want %q", use, "password_reset")
	}
}
