package services

import (
	"database/sql"

	intconfig "toursbackend/internal/config"
	intdb "toursbackend/internal/db"
	"toursbackend/internal/domain"
)

func resolveDB(db *sql.DB) *sql.DB {
	if db != nil {
		return db
	}
	return intconfig.DB
}

// dbtx keeps a nil *sql.DB from becoming a non-nil interface.
func dbtx(db *sql.DB) intdb.DBTX {
	if db == nil {
		return nil
	}
	return db
}

// persistence passes domain errors through and wraps everything else.
func persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	if domain.IsValidation(err) || domain.IsAuthorization(err) || domain.IsNotFound(err) ||
		domain.IsConflict(err) || domain.IsPersistence(err) {
		return err
	}
	return domain.PersistenceError{Op: op, Err: err}
}
