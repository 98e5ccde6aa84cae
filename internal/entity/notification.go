package entity

import (
	"time"
)

type Notification struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Title     string    `json:"title" db:"title"`
	Body      string    `json:"body" db:"body"`
	Data      Payload   `json:"data" db:"data"`
	IsRead    bool      `json:"is_read" db:"is_read"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// NewReportRequest is the inbound event that triggers the staff fan-out.
type NewReportRequest struct {
	ReportID         string `json:"reportId"`
	ReportNumber     string `json:"reportNumber"`
	SchoolID         string `json:"schoolId"`
	ReporterName     string `json:"reporterName"`
	IncidentCategory string `json:"incidentCategory"`
}

type UpdateTokenRequest struct {
	UserID   string `json:"userId"`
	FCMToken string `json:"fcmToken"`
}

type TestPushRequest struct {
	UserID string `json:"userId"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

// DeliveryResult holds the per-recipient outcome of one fan-out. It is
// transient: built during the loop, returned to the caller, never stored.
type DeliveryResult struct {
	UserID   string  `json:"userId"`
	UserName string  `json:"userName"`
	FCMSent  bool    `json:"fcmSent"`
	FCMError *string `json:"fcmError"`
}

// FanOutReport aggregates all delivery attempts of a single event.
type FanOutReport struct {
	TotalRecipients int
	Results         []DeliveryResult
}

type InboxPage struct {
	Notifications []*Notification `json:"notifications"`
	Page          int             `json:"page"`
	Limit         int             `json:"limit"`
	Total         int             `json:"total"`
	TotalPages    int             `json:"totalPages"`
}
