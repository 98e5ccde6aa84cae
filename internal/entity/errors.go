package entity

import "errors"

var (
	// Fan-out errors
	ErrInvalidRequest = errors.New("missing required fields: reportId, reportNumber, schoolId")
	ErrNoRecipients   = errors.New("no TPPK users found for this school")

	// Notification errors
	ErrNotificationNotFound = errors.New("notification not found")

	// User errors
	ErrUserNotFound  = errors.New("user not found")
	ErrTokenNotFound = errors.New("FCM token not found for user")

	// General errors
	ErrInvalidInput  = errors.New("invalid input")
	ErrDatabaseError = errors.New("database error")
)
