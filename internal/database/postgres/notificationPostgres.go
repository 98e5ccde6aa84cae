package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sippke/notification-service/internal/entity"
)

type notificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	data, err := notification.Data.Encode()
	if err != nil {
		return err
	}

	query := `
		INSERT INTO notifications (id, user_id, title, body, data, is_read, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err = r.db.ExecContext(ctx, query,
		notification.ID,
		notification.UserID,
		notification.Title,
		notification.Body,
		data,
		notification.IsRead,
		notification.CreatedAt,
		notification.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}

	return nil
}

func (r *notificationRepository) GetByUserID(ctx context.Context, userID string, isRead *bool, limit, offset int) ([]*entity.Notification, error) {
	query := `
		SELECT id, user_id, title, body, data, is_read, created_at, updated_at
		FROM notifications
		WHERE user_id = $1
	`
	args := []interface{}{userID}

	if isRead != nil {
		query += fmt.Sprintf(" AND is_read = $%d", len(args)+1)
		args = append(args, *isRead)
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*entity.Notification
	for rows.Next() {
		var n entity.Notification
		var rawData string
		err := rows.Scan(
			&n.ID,
			&n.UserID,
			&n.Title,
			&n.Body,
			&rawData,
			&n.IsRead,
			&n.CreatedAt,
			&n.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}

		n.Data, err = entity.DecodePayload(rawData)
		if err != nil {
			return nil, err
		}

		notifications = append(notifications, &n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notifications: %w", err)
	}

	return notifications, nil
}

func (r *notificationRepository) CountByUserID(ctx context.Context, userID string, isRead *bool) (int, error) {
	query := `SELECT COUNT(*) FROM notifications WHERE user_id = $1`
	args := []interface{}{userID}

	if isRead != nil {
		query += " AND is_read = $2"
		args = append(args, *isRead)
	}

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	return count, nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID string) (int, error) {
	query := `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = false`

	var count int
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	return count, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, notificationID string) (string, error) {
	query := `UPDATE notifications SET is_read = true, updated_at = $1 WHERE id = $2 RETURNING user_id`

	var userID string
	err := r.db.QueryRowContext(ctx, query, time.Now(), notificationID).Scan(&userID)
	if err == sql.ErrNoRows {
		return "", entity.ErrNotificationNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to mark notification as read: %w", err)
	}

	return userID, nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID string) error {
	// Marking an already-read inbox is a no-op, not an error.
	query := `UPDATE notifications SET is_read = true, updated_at = $1 WHERE user_id = $2 AND is_read = false`

	if _, err := r.db.ExecContext(ctx, query, time.Now(), userID); err != nil {
		return fmt.Errorf("failed to mark all notifications as read: %w", err)
	}

	return nil
}
