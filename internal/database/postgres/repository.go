package repository

import (
	"context"

	"github.com/sippke/notification-service/internal/entity"
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)

	// GetResponsibleStaff returns the active users holding the given role in
	// a school. An empty slice is a valid result, not an error.
	GetResponsibleStaff(ctx context.Context, schoolID, role string) ([]*entity.User, error)

	UpdateFCMToken(ctx context.Context, userID, token string) error
	GetFCMToken(ctx context.Context, userID string) (string, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error

	// Query operations
	GetByUserID(ctx context.Context, userID string, isRead *bool, limit, offset int) ([]*entity.Notification, error)
	CountByUserID(ctx context.Context, userID string, isRead *bool) (int, error)
	CountUnread(ctx context.Context, userID string) (int, error)

	// Read-state operations. MarkRead returns the owning user id so the
	// caller can invalidate derived counters.
	MarkRead(ctx context.Context, notificationID string) (string, error)
	MarkAllRead(ctx context.Context, userID string) error
}
