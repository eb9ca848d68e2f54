package users

import (
	"errors"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	MinUsernameLength = 3
	MaxUsernameLength = 50
	MinPasswordLength = 8
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("username or email already taken")

	ErrInvalidUsername = errors.New("username must be between 3 and 50 characters, without spaces")
	ErrInvalidEmail    = errors.New("invalid email address")
	ErrInvalidPassword = errors.New("password must be at least 8 characters long")
)

type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	RegimenID    *int      `json:"regimenId"`
	CurrentWeek  int       `json:"currentWeek"`
	Maintenance  bool      `json:"maintenance"`
	CreatedAt    time.Time `json:"createdAt"`
}

type NewUser struct {
	Username     string
	Email        string
	PasswordHash string
}

func ValidateUsername(username string) error {
	l := utf8.RuneCountInString(username)
	if l < MinUsernameLength || l > MaxUsernameLength || strings.ContainsAny(username, " \t\n") {
		return ErrInvalidUsername
	}
	return nil
}

// NormalizeEmail validates the address and returns it in the stored form.
func NormalizeEmail(email string) (string, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(email))
	if err != nil || addr.Name != "" {
		return "", ErrInvalidEmail
	}
	return strings.ToLower(addr.Address), nil
}

func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return ErrInvalidPassword
	}
	return nil
}
