package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates a missing, expired or rejected customer session.
var ErrUnauthorized = errors.New("unauthorized")

// ErrUpstream indicates the ERP backend or the FX provider failed (5xx or transport error).
var ErrUpstream = errors.New("upstream failure")

// ErrNonJSON indicates that an upstream answered with something other than JSON where JSON was expected.
// Usually a sign the backend URL is misconfigured.
var ErrNonJSON = errors.New("backend returned non-JSON")
