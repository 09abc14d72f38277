package domain

import (
	"errors"
	"regexp"
	"time"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrTokenInvalid       = errors.New("token is invalid or expired")
)

const (
	NameMinLen = 2
	NameMaxLen = 16
)

// emailPattern mirrors the validator the first release shipped with. The
// trailing "?" makes the whole address part optional, so an empty string
// passes; empty emails are still rejected upstream by the required-fields
// check on registration.
var emailPattern = regexp.MustCompile(`^([\w\-.]+@([\w\-]+\.)+[\w\-]{2,4})?$`)

func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
