package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sippke/notification-service/config"
	"github.com/sippke/notification-service/internal/entity"
	"github.com/sippke/notification-service/pkg/fcm"
	"github.com/sippke/notification-service/pkg/mailer"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubNotificationService struct {
	report      *entity.FanOutReport
	notifyErr   error
	inbox       *entity.InboxPage
	unreadCount int
	outcome     fcm.Outcome
	testErr     error
}

func (s *stubNotificationService) NotifyNewReport(ctx context.Context, req *entity.NewReportRequest) (*entity.FanOutReport, error) {
	if s.notifyErr != nil {
		return nil, s.notifyErr
	}
	return s.report, nil
}

func (s *stubNotificationService) UpdateFCMToken(ctx context.Context, req *entity.UpdateTokenRequest) error {
	if req.UserID == "" || req.FCMToken == "" {
		return entity.ErrInvalidInput
	}
	return nil
}

func (s *stubNotificationService) GetInbox(ctx context.Context, userID string, page, limit int, isRead *bool) (*entity.InboxPage, error) {
	return s.inbox, nil
}

func (s *stubNotificationService) MarkRead(ctx context.Context, notificationID string) error {
	return nil
}

func (s *stubNotificationService) MarkAllRead(ctx context.Context, userID string) error {
	return nil
}

func (s *stubNotificationService) CountUnread(ctx context.Context, userID string) (int, error) {
	return s.unreadCount, nil
}

func (s *stubNotificationService) SendTestPush(ctx context.Context, req *entity.TestPushRequest) (fcm.Outcome, error) {
	if s.testErr != nil {
		return fcm.Outcome{}, s.testErr
	}
	return s.outcome, nil
}

type stubEmailService struct {
	info *mailer.SendInfo
	err  error
}

func (s *stubEmailService) SendVerificationEmail(ctx context.Context, email string) (*mailer.SendInfo, error) {
	if email == "" {
		return nil, entity.ErrInvalidInput
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.info, nil
}

func setupRouter(svc *stubNotificationService, emailSvc *stubEmailService) *gin.Engine {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.Server.Env = "test"
	cfg.App.DefaultPageSize = 20
	cfg.App.MaxPageSize = 100

	notificationHandler := NewNotificationHandler(svc, cfg.App.DefaultPageSize, cfg.App.MaxPageSize)
	emailHandler := NewEmailHandler(emailSvc)

	return InitRoutes(cfg, notificationHandler, emailHandler)
}

func performJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestNotifyNewReportEndpoint(t *testing.T) {
	sent := true
	tests := []struct {
		name       string
		svc        *stubNotificationService
		wantStatus int
		wantErrMsg string
	}{
		{
			name: "fan-out succeeds",
			svc: &stubNotificationService{report: &entity.FanOutReport{
				TotalRecipients: 2,
				Results: []entity.DeliveryResult{
					{UserID: "u1", UserName: "Ibu Sari", FCMSent: sent},
					{UserID: "u2", UserName: "Pak Agus"},
				},
			}},
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing fields",
			svc:        &stubNotificationService{notifyErr: entity.ErrInvalidRequest},
			wantStatus: http.StatusBadRequest,
			wantErrMsg: "Missing required fields: reportId, reportNumber, schoolId",
		},
		{
			name:       "no recipients",
			svc:        &stubNotificationService{notifyErr: entity.ErrNoRecipients},
			wantStatus: http.StatusNotFound,
			wantErrMsg: "No TPPK users found for this school",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupRouter(tt.svc, &stubEmailService{})

			w := performJSON(t, router, http.MethodPost, "/api/notifications/new-report", gin.H{
				"reportId":     "r1",
				"reportNumber": "RPT-001",
				"schoolId":     "school-9",
			})

			assert.Equal(t, tt.wantStatus, w.Code)
			body := decodeBody(t, w)

			if tt.wantErrMsg != "" {
				assert.Equal(t, false, body["success"])
				assert.Equal(t, tt.wantErrMsg, body["error"])
				return
			}

			assert.Equal(t, true, body["success"])
			assert.Equal(t, "Notifications sent to 2 TPPK users", body["message"])
			results, ok := body["results"].([]interface{})
			require.True(t, ok)
			assert.Len(t, results, 2)
		})
	}
}

func TestUpdateFCMTokenEndpoint(t *testing.T) {
	router := setupRouter(&stubNotificationService{}, &stubEmailService{})

	w := performJSON(t, router, http.MethodPost, "/api/notifications/update-fcm-token", gin.H{
		"userId":   "u1",
		"fcmToken": "token-1",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "FCM token updated successfully", body["message"])

	w = performJSON(t, router, http.MethodPost, "/api/notifications/update-fcm-token", gin.H{
		"userId": "u1",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	body = decodeBody(t, w)
	assert.Equal(t, "Missing userId or fcmToken", body["error"])
}

func TestGetInboxEndpoint(t *testing.T) {
	svc := &stubNotificationService{inbox: &entity.InboxPage{
		Notifications: []*entity.Notification{
			{ID: "n1", UserID: "u1", Title: "📋 Laporan Baru", Data: entity.Payload{"type": "new_report"}},
		},
		Page:       1,
		Limit:      20,
		Total:      1,
		TotalPages: 1,
	}}
	router := setupRouter(svc, &stubEmailService{})

	w := performJSON(t, router, http.MethodGet, "/api/notifications/u1?page=1&limit=20", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])

	pagination, ok := body["pagination"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(1), pagination["page"])
	assert.Equal(t, float64(20), pagination["limit"])
	assert.Equal(t, float64(1), pagination["total"])
	assert.Equal(t, float64(1), pagination["totalPages"])
}

func TestMarkReadEndpoints(t *testing.T) {
	router := setupRouter(&stubNotificationService{}, &stubEmailService{})

	w := performJSON(t, router, http.MethodPatch, "/api/notifications/n1/read", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Notification marked as read", decodeBody(t, w)["message"])

	w = performJSON(t, router, http.MethodPatch, "/api/notifications/u1/mark-all-read", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "All notifications marked as read", decodeBody(t, w)["message"])
}

func TestUnreadCountEndpoint(t *testing.T) {
	router := setupRouter(&stubNotificationService{unreadCount: 4}, &stubEmailService{})

	w := performJSON(t, router, http.MethodGet, "/api/notifications/u1/unread-count", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(4), decodeBody(t, w)["unreadCount"])
}

func TestTestPushEndpoint(t *testing.T) {
	tests := []struct {
		name       string
		svc        *stubNotificationService
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "sent",
			svc:        &stubNotificationService{outcome: fcm.Outcome{Success: true, MessageID: "m1"}},
			wantStatus: http.StatusOK,
			wantMsg:    "Test notification sent",
		},
		{
			name:       "provider rejected",
			svc:        &stubNotificationService{outcome: fcm.Outcome{Success: false, Error: "invalid token"}},
			wantStatus: http.StatusOK,
			wantMsg:    "Failed to send notification",
		},
		{
			name:       "missing userId",
			svc:        &stubNotificationService{testErr: entity.ErrInvalidInput},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "no token",
			svc:        &stubNotificationService{testErr: entity.ErrTokenNotFound},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupRouter(tt.svc, &stubEmailService{})

			w := performJSON(t, router, http.MethodPost, "/api/notifications/test", gin.H{"userId": "u1"})
			assert.Equal(t, tt.wantStatus, w.Code)

			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, decodeBody(t, w)["message"])
			}
		})
	}
}

func TestSendVerificationEmailEndpoint(t *testing.T) {
	router := setupRouter(&stubNotificationService{}, &stubEmailService{info: &mailer.SendInfo{To: "a@b.id"}})

	w := performJSON(t, router, http.MethodPost, "/api/send-verification-email", gin.H{"email": "a@b.id"})
	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Verification email sent successfully", body["message"])
	assert.NotNil(t, body["info"])

	w = performJSON(t, router, http.MethodPost, "/api/send-verification-email", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Missing 'email' in request body", decodeBody(t, w)["error"])
}

func TestHealthEndpoint(t *testing.T) {
	router := setupRouter(&stubNotificationService{}, &stubEmailService{})

	w := performJSON(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Notification service is running", body["message"])
	assert.Equal(t, "test", body["environment"])
	assert.Equal(t, false, body["vercel"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestNoRouteReturnsNotFound(t *testing.T) {
	router := setupRouter(&stubNotificationService{}, &stubEmailService{})

	w := performJSON(t, router, http.MethodGet, "/api/unknown", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Endpoint not found", body["error"])
	assert.Equal(t, "/api/unknown", body["path"])
	assert.Equal(t, http.MethodGet, body["method"])
}
