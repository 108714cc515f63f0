package reminder

import "errors"

var (
	ErrRegistrationDoesNotExist = errors.New("reminder registration does not exist")
	ErrFireAtNotInFuture        = errors.New("wake time must be in the future")
	ErrSchedulingFailed         = errors.New("could not arm the wake")
)
