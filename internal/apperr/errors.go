// Package apperr holds the user-facing error taxonomy of the account service
// and its mapping onto HTTP status codes. Repositories and units of work
// translate backend faults into these kinds; anything else is reported as an
// internal error without detail.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type InvalidTokenError struct{}

func (InvalidTokenError) Error() string { return "Token is invalid or expired" }

type InvalidTokenTypeError struct {
	Expected string
	Found    string
}

func (e *InvalidTokenTypeError) Error() string {
	return fmt.Sprintf("Invalid token type. Found %s, expected %s", e.Found, e.Expected)
}

type InvalidAuthCodeError struct{}

func (InvalidAuthCodeError) Error() string { return "Invalid authentication code" }

type InvalidAuthSchemeError struct{}

func (InvalidAuthSchemeError) Error() string { return "Invalid authentication scheme" }

type InvalidLoginError struct{}

func (InvalidLoginError) Error() string { return "Username or password incorrect" }

type UnauthorizedError struct{}

func (UnauthorizedError) Error() string { return "Unauthorized" }

type ForbiddenError struct{}

func (ForbiddenError) Error() string { return "Forbidden" }

// AlreadyExistsError is a unique-constraint violation on Entity.
type AlreadyExistsError struct {
	Entity string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s already exists", e.Entity)
}

// NoResultError is a lookup miss on Entity.
type NoResultError struct {
	Entity string
}

func (e *NoResultError) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}

type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

var (
	ErrInvalidToken      error = InvalidTokenError{}
	ErrInvalidAuthCode   error = InvalidAuthCodeError{}
	ErrInvalidAuthScheme error = InvalidAuthSchemeError{}
	ErrInvalidLogin      error = InvalidLoginError{}
	ErrUnauthorized      error = UnauthorizedError{}
	ErrForbidden         error = ForbiddenError{}
)

func AlreadyExists(entity string) error { return &AlreadyExistsError{Entity: entity} }

func NoResult(entity string) error { return &NoResultError{Entity: entity} }

func Validation(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

func InvalidTokenType(expected, found string) error {
	return &InvalidTokenTypeError{Expected: expected, Found: found}
}

// Status maps err to its HTTP status and public message. Uncategorised
// errors become 500 with a generic message.
func Status(err error) (int, string) {
	var (
		exists    *AlreadyExistsError
		noResult  *NoResultError
		tokenType *InvalidTokenTypeError
		invalid   *ValidationError
	)

	switch {
	case errors.As(err, &exists):
		return http.StatusConflict, exists.Error()
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden, ErrForbidden.Error()
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized, ErrUnauthorized.Error()
	case errors.As(err, &tokenType):
		return http.StatusBadRequest, tokenType.Error()
	case errors.As(err, &noResult):
		return http.StatusBadRequest, noResult.Error()
	case errors.As(err, &invalid):
		return http.StatusBadRequest, invalid.Error()
	case errors.Is(err, ErrInvalidToken):
		return http.StatusBadRequest, ErrInvalidToken.Error()
	case errors.Is(err, ErrInvalidAuthCode):
		return http.StatusBadRequest, ErrInvalidAuthCode.Error()
	case errors.Is(err, ErrInvalidAuthScheme):
		return http.StatusBadRequest, ErrInvalidAuthScheme.Error()
	case errors.Is(err, ErrInvalidLogin):
		return http.StatusBadRequest, ErrInvalidLogin.Error()
	default:
		return http.StatusInternalServerError, "Internal Server Error"
	}
}
