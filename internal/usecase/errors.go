package usecase

import "errors"

// Sentinel errors for the match use cases. The HTTP layer maps these to
// response codes; the cricbuzz client wraps upstream failures in them so
// callers never see transport detail.
var (
	ErrInvalidInput          = errors.New("invalid match request")
	ErrNotFound              = errors.New("match not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("cricket data source unavailable")
)
