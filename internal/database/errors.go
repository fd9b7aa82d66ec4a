package database

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// duplicate_object, duplicate_table
var duplicateCodes = map[string]bool{
	"42710": true,
	"42P07": true,
}

func alreadyExists(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return duplicateCodes[pgErr.Code]
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return duplicateCodes[string(pqErr.Code)]
	}
	return false
}
