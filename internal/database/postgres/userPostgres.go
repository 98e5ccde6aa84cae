package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sippke/notification-service/internal/entity"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	query := `
		SELECT id, email, full_name, COALESCE(fcm_token, ''), school_id, role, is_active, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var user entity.User
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID,
		&user.Email,
		&user.FullName,
		&user.FCMToken,
		&user.SchoolID,
		&user.Role,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, entity.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

func (r *userRepository) GetResponsibleStaff(ctx context.Context, schoolID, role string) ([]*entity.User, error) {
	query := `
		SELECT id, email, full_name, COALESCE(fcm_token, ''), school_id, role, is_active, created_at, updated_at
		FROM users
		WHERE school_id = $1 AND role = $2 AND is_active = true
	`

	rows, err := r.db.QueryContext(ctx, query, schoolID, role)
	if err != nil {
		return nil, fmt.Errorf("failed to query responsible staff: %w", err)
	}
	defer rows.Close()

	var users []*entity.User
	for rows.Next() {
		var user entity.User
		err := rows.Scan(
			&user.ID,
			&user.Email,
			&user.FullName,
			&user.FCMToken,
			&user.SchoolID,
			&user.Role,
			&user.IsActive,
			&user.CreatedAt,
			&user.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, &user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return users, nil
}

func (r *userRepository) UpdateFCMToken(ctx context.Context, userID, token string) error {
	query := `UPDATE users SET fcm_token = $1, updated_at = $2 WHERE id = $3`

	result, err := r.db.ExecContext(ctx, query, token, time.Now(), userID)
	if err != nil {
		return fmt.Errorf("failed to update fcm token: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entity.ErrUserNotFound
	}

	return nil
}

func (r *userRepository) GetFCMToken(ctx context.Context, userID string) (string, error) {
	query := `SELECT COALESCE(fcm_token, '') FROM users WHERE id = $1`

	var token string
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&token)
	if err == sql.ErrNoRows {
		return "", entity.ErrUserNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get fcm token: %w", err)
	}

	return token, nil
}
