package service

import (
	"errors"

	"github.com/TadasTam/LiftSearch-Backend/internal/authz"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrUnprocessable = errors.New("unprocessable")

	// ErrForbidden is the policy evaluator's denial, re-exported so handlers
	// only import service errors.
	ErrForbidden = authz.ErrForbidden
)

// taggedError carries a caller-facing message while staying matchable with
// errors.Is against one of the sentinels above.
type taggedError struct {
	tag error
	msg string
}

func (e *taggedError) Error() string { return e.msg }
func (e *taggedError) Unwrap() error { return e.tag }

func notFoundError(msg string) error     { return &taggedError{tag: ErrNotFound, msg: msg} }
func ruleError(msg string) error         { return &taggedError{tag: ErrUnprocessable, msg: msg} }
func unauthorizedError(msg string) error { return &taggedError{tag: ErrUnauthorized, msg: msg} }
