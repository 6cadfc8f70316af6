package domain

import "errors"

var (
	ErrMotionNotFound      = errors.New("motion not found")
	ErrInvalidMotionID     = errors.New("invalid motion id")
	ErrNotPreferenceMotion = errors.New("motion is not a preference motion")
	ErrResultNotFound      = errors.New("tally result not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrInternal            = errors.New("internal server error")
)
