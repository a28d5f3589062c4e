package apperrors

import (
	"net/http"
)

// Factories and predefined variables for domain and infrastructure errors.

// --- Infrastructure ---

// ErrDatabaseUnavailable means the database could not be reached at all.
// Distinct from a query failing against a reachable database.
func ErrDatabaseUnavailable(err error) *AppError {
	return Wrap(err, CodeDBUnavailable, "infrastructure", "Database is unavailable", http.StatusServiceUnavailable)
}

// ErrDatabaseQuery means the database is reachable but the statement failed.
func ErrDatabaseQuery(err error, op string) *AppError {
	return Wrap(err, CodeDBQueryError, "infrastructure", "Database query failed", http.StatusInternalServerError).
		WithDetails(map[string]string{"op": op})
}

// ErrConfiguration reports a missing or invalid startup setting.
func ErrConfiguration(message string, details interface{}) *AppError {
	return New(CodeConfigurationError, "infrastructure", message, http.StatusInternalServerError).WithDetails(details)
}

// --- Accounts ---

func ErrAccountNotFound(details interface{}) *AppError {
	return New(CodeAccountNotFound, "account", "Account not found", http.StatusNotFound).WithDetails(details)
}

func ErrAccountAlreadyExists(email string) *AppError {
	return New(CodeAccountAlreadyExists, "account", "Account already exists for email: "+email, http.StatusConflict).
		WithDetails(map[string]string{"email": email})
}

// ErrInvalidCredentials covers both "no such account" and "wrong password".
// Same status for both, so login cannot be used to enumerate accounts.
var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

// --- Email verification tokens ---

var ErrTokenNotFound = New(
	CodeTokenNotFound,
	"verification",
	"Verification token not found",
	http.StatusNotFound,
)

var ErrTokenExpired = New(
	CodeTokenExpired,
	"verification",
	"Verification token has expired",
	http.StatusBadRequest,
)

var ErrTokenAlreadyUsed = New(
	CodeTokenAlreadyUsed,
	"verification",
	"Verification token has already been used",
	http.StatusBadRequest,
)

func ErrEmailVerification(message string) *AppError {
	return New(CodeEmailVerificationError, "verification", message, http.StatusBadRequest)
}

// --- Listings ---

func ErrUnapprovedBehavior(domain, message string) *AppError {
	return New(CodeUnapprovedBehavior, domain, message, http.StatusForbidden)
}

func ErrNotFound(domain, message string) *AppError {
	return New(CodeNotFound, domain, message, http.StatusNotFound)
}

func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}
