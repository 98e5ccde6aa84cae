package entity

import "time"

type User struct {
	ID        string    `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	FullName  string    `json:"full_name" db:"full_name"`
	FCMToken  string    `json:"fcm_token" db:"fcm_token"`
	SchoolID  string    `json:"school_id" db:"school_id"`
	Role      string    `json:"role" db:"role"`
	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// RoleTPPK is the staff role responsible for handling incident reports
// (Tim Pencegahan dan Penanganan Kekerasan).
const RoleTPPK = "tppk"
