package service

import (
	"context"

	"github.com/sippke/notification-service/internal/entity"
	"github.com/sippke/notification-service/pkg/fcm"
	"github.com/sippke/notification-service/pkg/mailer"
)

type NotificationService interface {
	// Fan-out
	NotifyNewReport(ctx context.Context, req *entity.NewReportRequest) (*entity.FanOutReport, error)

	// Token management
	UpdateFCMToken(ctx context.Context, req *entity.UpdateTokenRequest) error

	// Inbox operations
	GetInbox(ctx context.Context, userID string, page, limit int, isRead *bool) (*entity.InboxPage, error)
	MarkRead(ctx context.Context, notificationID string) error
	MarkAllRead(ctx context.Context, userID string) error
	CountUnread(ctx context.Context, userID string) (int, error)

	// Diagnostics
	SendTestPush(ctx context.Context, req *entity.TestPushRequest) (fcm.Outcome, error)
}

type EmailService interface {
	SendVerificationEmail(ctx context.Context, email string) (*mailer.SendInfo, error)
}

// PushSender abstracts the push provider so delivery can be faked in tests.
// Implementations must capture every failure in the Outcome instead of
// returning it.
type PushSender interface {
	Send(ctx context.Context, token, title, body string, data map[string]string) fcm.Outcome
}

// UnreadCache is the optional counter cache in front of the notifications
// table. A nil cache means every count hits Postgres.
type UnreadCache interface {
	Get(ctx context.Context, userID string) (int, bool)
	Set(ctx context.Context, userID string, count int) error
	Invalidate(ctx context.Context, userID string) error
}
