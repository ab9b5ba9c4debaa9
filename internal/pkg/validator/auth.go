package validator

import (
	"regexp"
	"strings"

	"github.com/mkondratev/housing-assistant/internal/entity"
)

const minPasswordLength = 8

// Deliberately liberal: one "@", at least one dot in the domain part.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidateRegister checks the registration payload. Failures here must be
// reported before anything touches storage.
func ValidateRegister(req *entity.RegisterRequest) error {
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	if !emailPattern.MatchString(req.Email) {
		return entity.ErrInvalidEmail
	}
	if len(req.Password) < minPasswordLength {
		return entity.ErrPasswordTooShort
	}

	return nil
}

// ValidateLogin checks the login payload.
func ValidateLogin(req *entity.LoginRequest) error {
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	if req.Email == "" || req.Password == "" {
		return entity.ErrMissingField
	}

	return nil
}
