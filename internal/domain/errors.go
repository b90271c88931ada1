package domain

import "errors"

var (
	// ErrEmptyCharset is returned when no character class is enabled.
	ErrEmptyCharset = errors.New("select at least one character class")
	// ErrInvalidLength is returned for a length outside [MinPasswordLength, MaxPasswordLength].
	ErrInvalidLength = errors.New("password length out of range")
	// ErrIndexOutOfRange is returned when a history index does not address an entry.
	ErrIndexOutOfRange = errors.New("history index out of range")
	// ErrEntryNotFound is returned when a history entry ID is no longer in the log.
	ErrEntryNotFound = errors.New("history entry not found")
	// ErrClipboardUnavailable is returned when no clipboard tool can be used.
	ErrClipboardUnavailable = errors.New("clipboard unavailable")
	// ErrUnknownBackend is returned for an unsupported history backend name.
	ErrUnknownBackend = errors.New("unknown history backend")
	// ErrUnknownClass is returned for an unrecognised character class name.
	ErrUnknownClass = errors.New("unknown character class")
)
