package store

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

var (
	// ErrNotFound is returned when a record cannot be resolved by id or key.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicatePair is returned when a friendship already exists for the
	// stored (requester, recipient) pair.
	ErrDuplicatePair = errors.New("friendship already exists for this pair")

	// ErrDuplicateEmail is returned when a user registration collides with an
	// existing email.
	ErrDuplicateEmail = errors.New("email already registered")
)

const mysqlDuplicateEntry = 1062

func isDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry
}
