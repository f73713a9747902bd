package gptservice

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrMissingAPIKey means the provider credential is absent from the
// environment. It is checked before any network call so a misconfigured
// deployment fails loudly instead of burning a request.
var ErrMissingAPIKey = errors.New("OPENAI_API_KEY is not configured")

// ErrEmptyCompletion means the provider answered but carried no usable text
// in any part of its envelope.
var ErrEmptyCompletion = errors.New("model returned an empty response")

// DecodeError wraps a JSON parse failure on the model output, after the
// extractor already did its best-effort recovery.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode model output as JSON: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ValidationError reports the first domain-constraint violation found in a
// generated plan. Reason names the violated field or rule.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// InconsistentOwnerError is raised when workouts inside one program carry
// different user ids.
type InconsistentOwnerError struct {
	Want int64
	Got  int64
}

func (e *InconsistentOwnerError) Error() string {
	return fmt.Sprintf("all workouts in a program must belong to the same user (expected %d, found %d)", e.Want, e.Got)
}

// ForbiddenOwnerError means a confirmed plan names a different owner than
// the authenticated caller. Confirm never writes under someone else's id.
type ForbiddenOwnerError struct {
	Caller    int64
	PlanOwner int64
}

func (e *ForbiddenOwnerError) Error() string {
	return fmt.Sprintf("plan belongs to user %d, not to the authenticated user %d", e.PlanOwner, e.Caller)
}

// CatalogReferenceError means the plan names an exercise id that does not
// exist in the exercise catalog. Treated as a client-class failure, not a
// storage fault.
type CatalogReferenceError struct {
	ExerciseID int64
}

func (e *CatalogReferenceError) Error() string {
	return fmt.Sprintf("exercise %d does not exist in the catalog", e.ExerciseID)
}

// PersistenceError wraps an unexpected storage failure during confirm.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("persistence failed: %s", e.Op)
	}
	return fmt.Sprintf("persistence failed: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// HTTPStatus maps a pipeline failure to the status class the handlers
// surface. Confirming someone else's plan is forbidden; validation-class
// failures (including catalog misses and owner mismatches) are the caller's
// problem; upstream failures are retryable gateway errors; everything else
// is a server fault.
func HTTPStatus(err error) int {
	var (
		vErr *ValidationError
		oErr *InconsistentOwnerError
		cErr *CatalogReferenceError
		fErr *ForbiddenOwnerError
		dErr *DecodeError
	)
	switch {
	case errors.As(err, &fErr):
		return http.StatusForbidden
	case errors.As(err, &vErr), errors.As(err, &oErr), errors.As(err, &cErr):
		return http.StatusBadRequest
	case errors.As(err, &dErr), errors.Is(err, ErrEmptyCompletion):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
