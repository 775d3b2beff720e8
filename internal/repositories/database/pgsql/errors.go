package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/b2b_inventory_app/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres error codes the repositories translate.
const (
	pgUniqueViolation      = "23505"
	pgForeignKeyViolation  = "23503"
	pgCheckViolation       = "23514"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"

	// Raised when an id is not a valid UUID. Nothing can match it.
	pgInvalidTextRepresentation = "22P02"
	pgNumericValueOutOfRange    = "22003"
)

// mapError wraps err with msg and the matching apperrors sentinel.
func mapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", msg, apperrors.ErrNotFound)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w: %w", msg, apperrors.ErrInternal, err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%s: %w: %s", msg, apperrors.ErrDuplicate, pgErr.ConstraintName)
		case pgForeignKeyViolation, pgCheckViolation:
			return fmt.Errorf("%s: %w: %s", msg, apperrors.ErrValidation, pgErr.ConstraintName)
		case pgInvalidTextRepresentation:
			return fmt.Errorf("%s: %w", msg, apperrors.ErrNotFound)
		case pgNumericValueOutOfRange:
			return fmt.Errorf("%s: %w: value out of range", msg, apperrors.ErrValidation)
		case pgSerializationFailure, pgDeadlockDetected:
			return fmt.Errorf("%s: %w: %s", msg, apperrors.ErrConflict, pgErr.Message)
		}
	}
	return fmt.Errorf("%s: %w", msg, err)
}
