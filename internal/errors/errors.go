// Package errors re-exports github.com/cockroachdb/errors and defines the
// sentinels the calculators and HTTP layer agree on.
//
//	if spec.SpeedMPS <= 0 {
//	    return errors.Wrapf(errors.ErrInvalidInput, "belt speed %.2f m/s", spec.SpeedMPS)
//	}
//
//	if errors.Is(err, errors.ErrInvalidInput) {
//	    // 400
//	}
package errors

import (
	"net/http"

	crdb "github.com/cockroachdb/errors"
)

var (
	New       = crdb.New
	Newf      = crdb.Newf
	Wrap      = crdb.Wrap
	Wrapf     = crdb.Wrapf
	WithStack = crdb.WithStack
	WithHint  = crdb.WithHint
	WithHintf = crdb.WithHintf
	Mark      = crdb.Mark
)

var (
	Is          = crdb.Is
	IsAny       = crdb.IsAny
	As          = crdb.As
	Unwrap      = crdb.Unwrap
	FlattenHint = crdb.FlattenHints
)

// Sentinels. Wrap them to add context; errors.Is still matches.
var (
	// ErrInvalidInput is a precondition violation: the inputs are not
	// physically meaningful and no calculation was attempted.
	ErrInvalidInput = New("invalid input")

	ErrNotFound     = New("not found")
	ErrUnauthorized = New("unauthorized")
	ErrConflict     = New("resource conflict")
)

// HTTPStatus maps an error onto the status code the API answers with.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case Is(err, ErrNotFound):
		return http.StatusNotFound
	case Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
