package editor

import "errors"

var (
	// ErrValidation covers every locally-caught input problem: blank names,
	// missing lesson fields, duplicate tags. Nothing reaches the backend.
	ErrValidation = errors.New("validation failed")

	// ErrFileTooLarge rejects video uploads above MaxVideoBytes.
	ErrFileTooLarge = errors.New("file exceeds the upload size limit")

	// ErrConfirmationRequired is returned by destructive operations invoked
	// without the explicit confirmation bit.
	ErrConfirmationRequired = errors.New("confirmation required")

	// ErrSessionClosed guards late calls against a torn-down session.
	ErrSessionClosed = errors.New("editing session closed")

	ErrSessionNotFound = errors.New("editing session not found")
	ErrSectionNotFound = errors.New("section not found")
	ErrLessonNotFound  = errors.New("lesson not found")
	ErrNoDraft         = errors.New("no lesson draft in progress")
)
