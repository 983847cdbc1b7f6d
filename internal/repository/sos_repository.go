package repository

import (
	"database/sql"
	"fmt"

	"github.com/safewalk/safewalk-backend-go/internal/models"
)

// SOSRepository handles database operations for SOS alerts
type SOSRepository struct {
	db *sql.DB
}

// NewSOSRepository creates a new SOS repository
func NewSOSRepository(db *sql.DB) *SOSRepository {
	return &SOSRepository{db: db}
}

// Create logs a new SOS alert and returns it with the assigned ID
func (r *SOSRepository) Create(alert *models.SOSAlert) error {
	result, err := r.db.Exec(`
		INSERT INTO sos_alerts (user_id, lat, lng, message, timestamp)
		VALUES (?, ?, ?, ?, ?)`,
		alert.UserID, alert.Lat, alert.Lng, alert.Message, alert.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to insert sos alert: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get sos alert ID: %w", err)
	}
	alert.ID = id
	return nil
}

// ListByUser retrieves a user's alerts, newest first
func (r *SOSRepository) ListByUser(userID int64, limit int) ([]models.SOSAlert, error) {
	query := `SELECT id, user_id, lat, lng, message, timestamp
		FROM sos_alerts WHERE user_id = ?
		ORDER BY timestamp DESC LIMIT ?`

	rows, err := r.db.Query(query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query sos alerts: %w", err)
	}
	defer rows.Close()

	var alerts []models.SOSAlert
	for rows.Next() {
		var a models.SOSAlert
		var message sql.NullString
		if err := rows.Scan(&a.ID, &a.UserID, &a.Lat, &a.Lng, &message, &a.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan sos alert: %w", err)
		}
		a.Message = message.String
		alerts = append(alerts, a)
	}

	return alerts, rows.Err()
}
