package persistence

import (
	"errors"
	"strings"

	"github.com/easybill/backend/internal/domain/shared"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// isUniqueViolation reports whether err is a unique-constraint violation from
// PostgreSQL (SQLSTATE 23505) or SQLite, raw or translated by GORM.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.UniqueViolation
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// isForeignKeyViolation reports whether err is a foreign-key violation (SQLSTATE 23503)
func isForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.ForeignKeyViolation
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

// translateWriteError maps store constraint errors onto domain errors.
// dup is returned for unique violations so callers can attach the offending field.
func translateWriteError(err error, dup *shared.DomainError) error {
	switch {
	case err == nil:
		return nil
	case isUniqueViolation(err):
		return dup
	case isForeignKeyViolation(err):
		return shared.ErrInvalidReference
	default:
		return err
	}
}

// notFound maps gorm.ErrRecordNotFound to shared.ErrNotFound
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.ErrNotFound
	}
	return err
}

// likePattern builds a case-insensitive substring pattern for LIKE ... ESCAPE '!'.
// The search text is matched literally.
func likePattern(search string) string {
	r := strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")
	return "%" + r.Replace(strings.ToLower(search)) + "%"
}
