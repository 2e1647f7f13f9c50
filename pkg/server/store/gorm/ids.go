package gorm

import (
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
)

const uniqueViolation = "23505"

// validID reports whether id can be compared against a uuid column. Other
// values cannot match any row and would make postgres reject the query.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
