package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrDuplicateEntry = errors.New("duplicate entry for (user, movie) key")
	ErrEntryNotFound  = errors.New("entry not found")
)

const pgUniqueViolation = "23505"

// isDuplicateKey reports whether err is a unique-constraint violation from
// Postgres or GORM's own translation of one.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
