package repositories

import (
	"errors"
	"net"

	"marketsafe_backend/pkg/apperrors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// uniqueViolation is the Postgres SQLSTATE for unique constraint failures.
const uniqueViolation = "23505"

// isUniqueViolation reports whether the error is a unique-constraint failure.
// Needed because the read-before-write uniqueness check in the manager is not
// atomic; a concurrent duplicate insert surfaces here instead.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolation
	}
	return false
}

// isUnavailable reports whether the database could not be reached at all, as
// opposed to rejecting a statement.
func isUnavailable(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var connectErr *pgconn.ConnectError
	return errors.As(err, &connectErr)
}

// translateDBError maps a raw gorm/driver error onto the infrastructure error
// taxonomy: unreachable database (503) versus failed statement (500).
func translateDBError(err error, op string) error {
	if err == nil {
		return nil
	}
	if isUnavailable(err) {
		return apperrors.ErrDatabaseUnavailable(err)
	}
	return apperrors.ErrDatabaseQuery(err, op)
}
