package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/taskdeck/taskdeck/internal/domain"
)

const defaultTTL = 7 * 24 * time.Hour

// Claims is the identity carried by an issued token.
type Claims struct {
	UserID string
	Email  string
}

// Manager signs and verifies HS256 identity tokens with a process-wide key.
type Manager struct {
	key []byte
	ttl time.Duration
}

func NewManager(key []byte) *Manager {
	return &Manager{key: key, ttl: defaultTTL}
}

// Issue signs a token carrying the user's identity, valid for seven days.
func (m *Manager) Issue(userID, email string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"userId": userID,
		"email":  email,
		"iat":    now.Unix(),
		"exp":    now.Add(m.ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(m.key)
	if err != nil {
		return "", fmt.Errorf("sign jwt: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a raw token string. A bad signature, a
// malformed payload and an expired token all collapse into
// domain.ErrTokenInvalid; callers cannot tell them apart.
func (m *Manager) Verify(raw string) (*Claims, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return m.key, nil
	})
	if err != nil || !token.Valid {
		return nil, domain.ErrTokenInvalid
	}

	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrTokenInvalid
	}

	userID, _ := mc["userId"].(string)
	email, _ := mc["email"].(string)
	if userID == "" {
		return nil, domain.ErrTokenInvalid
	}
	return &Claims{UserID: userID, Email: email}, nil
}
