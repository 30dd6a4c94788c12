package db

import (
	"errors"

	"github.com/lib/pq"
)

// PgUniqueViolation is the Postgres SQLSTATE for unique constraint failures.
const PgUniqueViolation = "23505"

func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == PgUniqueViolation
}
