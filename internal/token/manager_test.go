package token_test

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/token"
)

const testKey = "token-test-secret-at-least-32-ch!"

func TestIssueAndVerify_Roundtrip(t *testing.T) {
	m := token.NewManager([]byte(testKey))

	signed, err := m.Issue("user-1", "test@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := m.Verify(signed)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("userID = %q, want %q", claims.UserID, "user-1")
	}
	if claims.Email != "test@example.com" {
		t.Errorf("email = %q, want %q", claims.Email, "test@example.com")
	}
}

func TestVerify_Malformed_Rejected(t *testing.T) {
	m := token.NewManager([]byte(testKey))

	if _, err := m.Verify("not.a.jwt"); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("err = %v, want ErrTokenInvalid", err)
	}
}

func TestVerify_WrongKey_Rejected(t *testing.T) {
	other := token.NewManager([]byte("a-completely-different-32-char-k!"))
	signed, err := other.Issue("user-1", "test@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	m := token.NewManager([]byte(testKey))
	if _, err := m.Verify(signed); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("err = %v, want ErrTokenInvalid", err)
	}
}

func TestVerify_Expired_Rejected(t *testing.T) {
	// Sign an already-expired token with the same key the manager uses.
	now := time.Now()
	claims := jwt.MapClaims{
		"userId": "user-1",
		"email":  "test@example.com",
		"iat":    now.Add(-8 * 24 * time.Hour).Unix(),
		"exp":    now.Add(-24 * time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testKey))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	m := token.NewManager([]byte(testKey))
	if _, err := m.Verify(signed); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("err = %v, want ErrTokenInvalid", err)
	}
}

func TestVerify_MissingUserID_Rejected(t *testing.T) {
	now := time.Now()
	claims := jwt.MapClaims{
		"email": "test@example.com",
		"iat":   now.Unix(),
		"exp":   now.Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testKey))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	m := token.NewManager([]byte(testKey))
	if _, err := m.Verify(signed); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("err = %v, want ErrTokenInvalid", err)
	}
}
