package service

import (
	"context"
	"fmt"
	"math"
	"time"

	repository "github.com/sippke/notification-service/internal/database/postgres"
	"github.com/sippke/notification-service/internal/entity"
	"github.com/sippke/notification-service/pkg/fcm"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	newReportTitle = "📋 Laporan Baru"
	noTokenError   = "No FCM token available"
)

type notificationService struct {
	userRepo         repository.UserRepository
	notificationRepo repository.NotificationRepository
	push             PushSender
	cache            UnreadCache
}

func NewNotificationService(
	userRepo repository.UserRepository,
	notificationRepo repository.NotificationRepository,
	push PushSender,
	cache UnreadCache,
) NotificationService {
	return &notificationService{
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		push:             push,
		cache:            cache,
	}
}

// NotifyNewReport fans one incident report out to every responsible staff
// member of the school. Each recipient gets a durable inbox record before
// any push attempt; a failed push never rolls the record back, and one
// recipient's failure never aborts the loop.
func (s *notificationService) NotifyNewReport(ctx context.Context, req *entity.NewReportRequest) (*entity.FanOutReport, error) {
	if req.ReportID == "" || req.ReportNumber == "" || req.SchoolID == "" {
		return nil, entity.ErrInvalidRequest
	}

	recipients, err := s.userRepo.GetResponsibleStaff(ctx, req.SchoolID, entity.RoleTPPK)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve recipients: %w", err)
	}
	if len(recipients) == 0 {
		return nil, entity.ErrNoRecipients
	}

	reporterName := req.ReporterName
	if reporterName == "" {
		reporterName = "Siswa"
	}

	title := newReportTitle
	body := fmt.Sprintf("Laporan %s dari %s - %s", req.ReportNumber, reporterName, req.IncidentCategory)
	payload := entity.Payload{
		"type":              "new_report",
		"report_id":         req.ReportID,
		"report_number":     req.ReportNumber,
		"incident_category": req.IncidentCategory,
		"reporter_name":     req.ReporterName,
	}

	report := &entity.FanOutReport{
		TotalRecipients: len(recipients),
		Results:         make([]entity.DeliveryResult, 0, len(recipients)),
	}

	for _, recipient := range recipients {
		report.Results = append(report.Results, s.dispatchToRecipient(ctx, recipient, title, body, payload))
	}

	logrus.Infof("Notifications sent to %d TPPK users for report %s", len(recipients), req.ReportNumber)
	return report, nil
}

// dispatchToRecipient runs the persist-then-push sequence for one recipient
// and converts every failure into result data.
func (s *notificationService) dispatchToRecipient(ctx context.Context, recipient *entity.User, title, body string, payload entity.Payload) entity.DeliveryResult {
	result := entity.DeliveryResult{
		UserID:   recipient.ID,
		UserName: recipient.FullName,
	}

	now := time.Now()
	notification := &entity.Notification{
		ID:        uuid.New().String(),
		UserID:    recipient.ID,
		Title:     title,
		Body:      body,
		Data:      payload,
		IsRead:    false,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		// No delivery without a persisted record.
		logrus.Errorf("Failed to save notification for user %s: %v", recipient.ID, err)
		errMsg := err.Error()
		result.FCMError = &errMsg
		return result
	}

	s.invalidateUnreadCount(ctx, recipient.ID)

	if recipient.FCMToken == "" {
		logrus.Warnf("No FCM token available for user %s", recipient.ID)
		errMsg := noTokenError
		result.FCMError = &errMsg
		return result
	}

	outcome := s.push.Send(ctx, recipient.FCMToken, title, body, payload.StringMap())
	result.FCMSent = outcome.Success
	if outcome.Error != "" {
		errMsg := outcome.Error
		result.FCMError = &errMsg
	}

	return result
}

func (s *notificationService) UpdateFCMToken(ctx context.Context, req *entity.UpdateTokenRequest) error {
	if req.UserID == "" || req.FCMToken == "" {
		return entity.ErrInvalidInput
	}

	return s.userRepo.UpdateFCMToken(ctx, req.UserID, req.FCMToken)
}

func (s *notificationService) GetInbox(ctx context.Context, userID string, page, limit int, isRead *bool) (*entity.InboxPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}

	offset := (page - 1) * limit

	notifications, err := s.notificationRepo.GetByUserID(ctx, userID, isRead, limit, offset)
	if err != nil {
		return nil, err
	}

	total, err := s.notificationRepo.CountByUserID(ctx, userID, isRead)
	if err != nil {
		return nil, err
	}

	if notifications == nil {
		notifications = []*entity.Notification{}
	}

	return &entity.InboxPage{
		Notifications: notifications,
		Page:          page,
		Limit:         limit,
		Total:         total,
		TotalPages:    int(math.Ceil(float64(total) / float64(limit))),
	}, nil
}

func (s *notificationService) MarkRead(ctx context.Context, notificationID string) error {
	userID, err := s.notificationRepo.MarkRead(ctx, notificationID)
	if err != nil {
		return err
	}

	s.invalidateUnreadCount(ctx, userID)
	return nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID string) error {
	if err := s.notificationRepo.MarkAllRead(ctx, userID); err != nil {
		return err
	}

	s.invalidateUnreadCount(ctx, userID)
	return nil
}

func (s *notificationService) CountUnread(ctx context.Context, userID string) (int, error) {
	if s.cache != nil {
		if count, ok := s.cache.Get(ctx, userID); ok {
			return count, nil
		}
	}

	count, err := s.notificationRepo.CountUnread(ctx, userID)
	if err != nil {
		return 0, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, userID, count); err != nil {
			logrus.Warnf("Failed to cache unread count for user %s: %v", userID, err)
		}
	}

	return count, nil
}

func (s *notificationService) SendTestPush(ctx context.Context, req *entity.TestPushRequest) (fcm.Outcome, error) {
	if req.UserID == "" {
		return fcm.Outcome{}, entity.ErrInvalidInput
	}

	token, err := s.userRepo.GetFCMToken(ctx, req.UserID)
	if err != nil {
		return fcm.Outcome{}, err
	}
	if token == "" {
		return fcm.Outcome{}, entity.ErrTokenNotFound
	}

	title := req.Title
	if title == "" {
		title = "Test Notification"
	}
	body := req.Body
	if body == "" {
		body = "This is a test notification"
	}

	return s.push.Send(ctx, token, title, body, map[string]string{"type": "test"}), nil
}

func (s *notificationService) invalidateUnreadCount(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, userID); err != nil {
		logrus.Warnf("Failed to invalidate unread count for user %s: %v", userID, err)
	}
}
