// Package dberr translates GORM and driver failures into the errs kinds the
// application layer understands.
package dberr

import (
	"errors"

	"production/internal/pkg/errs"

	"gorm.io/gorm"
)

// Wrap classifies err raised by operation. A unique violation becomes a
// precondition failure when the DB was opened with TranslateError; every
// other failure is a persistence error. Nil stays nil.
func Wrap(operation string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return errs.NewPreconditionFailedErrorWithCause(operation, "a record with the same key exists", err)
	default:
		return errs.NewPersistenceError(operation, err)
	}
}

// NotFound maps gorm.ErrRecordNotFound to errs.ErrObjectNotFound and wraps
// everything else like Wrap.
func NotFound(operation, param string, id any, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundError(param, id)
	}
	return Wrap(operation, err)
}
