// Package apperr defines the closed set of failure kinds used across coursework
// and their mapping to HTTP status codes.
package apperr

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"strings"

	"github.com/avissapr/coursework/internal/validation"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// foreignKeyViolation is the PostgreSQL SQLSTATE for a broken foreign key.
const foreignKeyViolation = "23503"

// Kind classifies a failure. The set is closed: every error handled at a request
// boundary resolves to exactly one of these.
type Kind int

const (
	// IOFailure covers anything not otherwise classified (I/O, permissions, database).
	IOFailure Kind = iota
	// NotFound means the requested file or record does not exist.
	NotFound
	// ValidationFailure means a record was rejected before any write happened.
	ValidationFailure
)

// String returns the kind name used in logs.
func (k Kind) String() string {
	switch k {
	case NotFound:
		return "not_found"
	case ValidationFailure:
		return "validation_failure"
	default:
		return "io_failure"
	}
}

// HTTPStatus maps a kind to the response status code.
func (k Kind) HTTPStatus() int {
	switch k {
	case NotFound:
		return http.StatusNotFound
	case ValidationFailure:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// Error is the application error type.
type Error struct {
	Kind       Kind              // Failure class
	Op         string            // Operation that failed, e.g. "employees.find"
	Err        error             // Underlying cause (nil for validation failures)
	Violations validation.Errors // Set only for ValidationFailure
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Kind == ValidationFailure:
		return fmt.Sprintf("%s: validation failed: %s", e.Op, e.Violations.Error())
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewNotFound wraps err as a NotFound failure of op.
func NewNotFound(op string, err error) *Error {
	return &Error{Kind: NotFound, Op: op, Err: err}
}

// NewIOFailure wraps err as an IOFailure of op.
func NewIOFailure(op string, err error) *Error {
	return &Error{Kind: IOFailure, Op: op, Err: err}
}

// NewValidation reports that op rejected a record with the given violations.
func NewValidation(op string, violations validation.Errors) *Error {
	return &Error{Kind: ValidationFailure, Op: op, Violations: violations}
}

// Classify wraps err with the kind its cause implies: missing rows and missing
// files become NotFound, foreign key violations become a ValidationFailure,
// everything else IOFailure. A nil err stays nil and an err that is already an
// *Error is returned unchanged.
func Classify(op string, err error) error {
	return ClassifyField(op, "record", err)
}

// ClassifyField is Classify for deletes: a foreign key violation means other
// rows still point at the record, reported as "referenced" on field.
func ClassifyField(op, field string, err error) error {
	return classify(op, err, func(*pgconn.PgError) validation.Violation {
		return validation.Violation{Field: field, Reason: validation.ReasonReferenced}
	})
}

// ClassifyReference is Classify for inserts and updates: a foreign key
// violation means a referenced record does not exist, reported as "exists" on
// the referencing column.
func ClassifyReference(op string, err error) error {
	return classify(op, err, func(pgErr *pgconn.PgError) validation.Violation {
		return validation.Violation{Field: foreignKeyColumn(pgErr), Reason: validation.ReasonExists}
	})
}

func classify(op string, err error, violation func(*pgconn.PgError) validation.Violation) error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return err
	}
	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, fs.ErrNotExist) {
		return NewNotFound(op, err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
		return &Error{
			Kind:       ValidationFailure,
			Op:         op,
			Err:        err,
			Violations: validation.Errors{violation(pgErr)},
		}
	}
	return NewIOFailure(op, err)
}

// foreignKeyColumn recovers the column from a default constraint name
// (<table>_<column>_fkey), falling back to "record".
func foreignKeyColumn(pgErr *pgconn.PgError) string {
	name := pgErr.ConstraintName
	if pgErr.TableName == "" || !strings.HasPrefix(name, pgErr.TableName+"_") || !strings.HasSuffix(name, "_fkey") {
		return "record"
	}
	column := strings.TrimSuffix(strings.TrimPrefix(name, pgErr.TableName+"_"), "_fkey")
	if column == "" {
		return "record"
	}
	return column
}

// KindOf reports the kind of err. Errors that are not *Error are IOFailure.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return IOFailure
}

// ViolationsOf returns the violations carried by err, or nil.
func ViolationsOf(err error) validation.Errors {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Violations
	}
	return nil
}
