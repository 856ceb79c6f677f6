package hash

import (
	"regexp"
	"unicode"
	"unicode/utf8"

	"github.com/Skotchmaster/health_account/internal/apperr"
)

var usernameRe = regexp.MustCompile(`^[a-z0-9_-]{3,50}$`)

func ValidateUsername(username string) error {
	if !usernameRe.MatchString(username) {
		return apperr.Validation("Username must be 3-50 characters of a-z, 0-9, '_' or '-'")
	}
	return nil
}

// MaxPasswordBytes is the longest input bcrypt accepts.
const MaxPasswordBytes = 72

func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < 6 {
		return apperr.Validation("Password must be at least 6 characters")
	}
	if len(password) > MaxPasswordBytes {
		return apperr.Validation("Password must be at most %d bytes", MaxPasswordBytes)
	}
	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case !unicode.IsLetter(r) && r != '_':
			special = true
		}
	}
	switch {
	case !upper:
		return apperr.Validation("Password must contain at least one uppercase letter")
	case !lower:
		return apperr.Validation("Password must contain at least one lowercase letter")
	case !digit:
		return apperr.Validation("Password must contain at least one number")
	case !special:
		return apperr.Validation("Password must contain at least one special character")
	}
	return nil
}
