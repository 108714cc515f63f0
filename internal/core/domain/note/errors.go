package note

import "errors"

var (
	ErrNoteDoesNotExist    = errors.New("note does not exist")
	ErrContentEmpty        = errors.New("note content must not be empty")
	ErrReminderNotInFuture = errors.New("reminder time must be in the future")
)
