package database

import (
	"errors"
	"strings"

	"github.com/DayriseA/OCP12-CRM-EpicEvents/internal"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	pgErrUniqueViolation     = "23505"
	pgErrForeignKeyViolation = "23503"
)

// TranslateError turns storage failures into AppErrors. fkHint is shown to the
// user when a foreign key constraint rejected the write. AppErrors pass through.
func TranslateError(err error, fkHint string) error {
	if err == nil {
		return nil
	}
	if _, ok := internal.IsAppError(err); ok {
		return err
	}

	switch {
	case isForeignKeyViolation(err):
		msg := "Referenced record does not exist"
		if fkHint != "" {
			msg = fkHint
		}
		return internal.NewStorageError(msg, internal.ErrCodeForeignKey, err)
	case isUniqueViolation(err):
		return internal.NewConflictError("A record with the same unique value already exists", internal.ErrCodeDuplicateKey).WithCause(err)
	default:
		return internal.NewStorageError("Database operation failed", internal.ErrCodeStorage, err)
	}
}

func isForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	if pgErr, ok := maybePgError(err); ok {
		return pgErr.Code == pgErrForeignKeyViolation
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	if pgErr, ok := maybePgError(err); ok {
		return pgErr.Code == pgErrUniqueViolation
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func maybePgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}
