package service

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotAuthenticated = errors.New("set a display name before saving favorites or reviews")
	ErrInvalidInput     = errors.New("invalid input")

	ErrInvalidDestination    = fmt.Errorf("%w: destination id is missing", ErrInvalidInput)
	ErrReviewValidation      = fmt.Errorf("%w: review validation failed", ErrInvalidInput)
	ErrDestinationValidation = fmt.Errorf("%w: destination validation failed", ErrInvalidInput)

	ErrDestinationNotFound = errors.New("destination not found")
	ErrReviewNotFound      = errors.New("review not found")
	ErrReviewForbidden     = errors.New("not allowed to manage this review")

	// ErrBackendFailure wraps every unexpected gateway error.
	ErrBackendFailure = errors.New("backend failure")

	ErrImageUploadDisabled = errors.New("image upload is not configured")
)

func backendFailure(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrBackendFailure, op, err)
}

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
