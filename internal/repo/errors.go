package repo

import (
	"errors"

	"github.com/lib/pq"
)

var (
	// ErrNotFound is returned when the addressed row does not exist
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when an insert collides with a unique field
	ErrAlreadyExists = errors.New("already exists")
)

// uniqueViolation is the SQLSTATE Postgres raises for UNIQUE constraint failures.
const uniqueViolation = pq.ErrorCode("23505")

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
