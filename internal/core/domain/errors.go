package domain

import "errors"

var (
	// Not-found family. Original and translated file absence are reported
	// separately so callers can tell which side of the project is missing.
	ErrUserNotFound           = errors.New("user not found")
	ErrProjectNotFound        = errors.New("project not found")
	ErrFeedbackNotFound       = errors.New("feedback not found")
	ErrOriginalFileNotFound   = errors.New("original file not found")
	ErrTranslatedFileNotFound = errors.New("translated file not found")

	// ErrInvalidArgument flags malformed input: blank names, bad emails,
	// empty language sets, empty file references.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidTransition flags a lifecycle operation attempted from the
	// wrong state. The entity is left untouched.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrUnauthorized flags a caller lacking the required role or ownership.
	ErrUnauthorized = errors.New("access forbidden")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailInUse         = errors.New("email already in use")

	// ErrStorage wraps opaque failures from the persistence or file ports.
	ErrStorage = errors.New("storage error")
)
