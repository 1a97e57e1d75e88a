package domain

import "errors"

var (
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrUserNotFound          = errors.New("user not found")
	ErrUserExists            = errors.New("user already exists")
	ErrInvalidJoinCode       = errors.New("invalid join code")
	ErrForbidden             = errors.New("access forbidden")
	ErrWorkItemNotFound      = errors.New("work item not found")
	ErrStatusNotFound        = errors.New("worker is not assigned to this work item")
	ErrTeamLeaderNotAssigned = errors.New("team leader must be one of the assigned workers")
	ErrAttendanceClosed      = errors.New("attendance can only be marked on the day of the shift after declaring interest")
	ErrReminderRecentlySent  = errors.New("reminders for this work item were sent recently")
)

// AuthError carries a human-readable reason for a failed login or
// registration while still matching its sentinel through errors.Is.
type AuthError struct {
	Reason string
	Err    error
}

func (e *AuthError) Error() string {
	return e.Reason
}

func (e *AuthError) Unwrap() error {
	return e.Err
}
