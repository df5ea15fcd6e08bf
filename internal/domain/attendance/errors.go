package attendance

import "errors"

// Attendance domain errors
var (
	ErrRecordNotFound    = errors.New("attendance record not found")
	ErrAlreadyLocked     = errors.New("attendance record is locked by a completed checkout")
	ErrInvalidTransition = errors.New("attendance status does not permit this transition")
	ErrUnknownStatus     = errors.New("unknown attendance status")
)
