package pgstore

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// isDuplicateKey detects unique constraint violations (SQLSTATE 23505),
// used to map username collisions onto identity.ErrUserExists.
func isDuplicateKey(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
