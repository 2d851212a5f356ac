package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/anwarbahou/saifautoBeta-sub000/internal/db"
)

type NotificationRepository struct {
	DB *sql.DB
}

func NewNotificationRepository(database *sql.DB) *NotificationRepository {
	return &NotificationRepository{DB: database}
}

func (r *NotificationRepository) Create(kind, message string) error {
	_, err := r.DB.Exec(
		`INSERT INTO notifications (kind, message, read, created_at) VALUES ($1, $2, FALSE, NOW())`,
		kind, message,
	)
	if err != nil {
		return fmt.Errorf("error creating notification: %w", err)
	}
	return nil
}

func (r *NotificationRepository) List(unreadOnly bool) ([]db.Notification, error) {
	query := `SELECT id, kind, message, read, created_at FROM notifications`
	if unreadOnly {
		query += ` WHERE read = FALSE`
	}
	query += ` ORDER BY created_at DESC LIMIT 200`

	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("error querying notifications: %w", err)
	}
	defer rows.Close()

	var notifs []db.Notification
	for rows.Next() {
		var n db.Notification
		if err := rows.Scan(&n.ID, &n.Kind, &n.Message, &n.Read, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning notification: %w", err)
		}
		notifs = append(notifs, n)
	}
	return notifs, rows.Err()
}

func (r *NotificationRepository) MarkRead(id int) error {
	result, err := r.DB.Exec(`UPDATE notifications SET read = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error marking notification read: %w", err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("notification %d not found", id)
	}
	return nil
}

func (r *NotificationRepository) CountUnread() (int, error) {
	var n int
	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM notifications WHERE read = FALSE`).Scan(&n); err != nil {
		return 0, fmt.Errorf("error counting unread notifications: %w", err)
	}
	return n, nil
}

// DeleteReadOlderThan purges read notifications created before the cutoff.
func (r *NotificationRepository) DeleteReadOlderThan(before time.Time) (int64, error) {
	result, err := r.DB.Exec(`DELETE FROM notifications WHERE read = TRUE AND created_at < $1`, before)
	if err != nil {
		return 0, fmt.Errorf("error purging notifications: %w", err)
	}
	return result.RowsAffected()
}
