package helper

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// pg unique_violation
const uniqueViolationCode = "23505"

// IsUniqueViolation reports whether err is a postgres unique-constraint
// failure, used to translate duplicate email/name inserts into conflicts.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolationCode
	}
	return false
}
