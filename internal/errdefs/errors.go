package errdefs

import "errors"

var (
	ErrValidation            = errors.New("validation error")
	ErrNoUser                = errors.New("username is required")
	ErrUnknownCourse         = errors.New("unknown course")
	ErrCourseAlreadySelected = errors.New("course already selected")
	ErrCourseNotSelected     = errors.New("course not selected")
	ErrInvalidKey            = errors.New("invalid assignment key")
	ErrAssignmentNotFound    = errors.New("assignment not found")

	ErrFetchFailed      = errors.New("course page fetch failed")
	ErrUnexpectedStatus = errors.New("unexpected status from course page")

	// Invariant violations. These indicate a synchronizer or reconciler bug.
	ErrDuplicateKey       = errors.New("duplicate assignment key")
	ErrAmbiguousKey       = errors.New("assignment key matches more than one record")
	ErrInvariantViolation = errors.New("assignment state invariant violated")
)
