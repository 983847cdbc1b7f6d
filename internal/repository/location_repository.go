package repository

import (
	"database/sql"
	"fmt"

	"github.com/safewalk/safewalk-backend-go/internal/models"
)

// LocationRepository handles database operations for saved locations
// and their trusted contacts
type LocationRepository struct {
	db *sql.DB
}

// NewLocationRepository creates a new location repository
func NewLocationRepository(db *sql.DB) *LocationRepository {
	return &LocationRepository{db: db}
}

// Create saves a new location and returns it with the assigned ID
func (r *LocationRepository) Create(loc *models.Location) error {
	result, err := r.db.Exec(`
		INSERT INTO locations (user_id, label, lat, lng)
		VALUES (?, ?, ?, ?)`,
		loc.UserID, loc.Label, loc.Lat, loc.Lng,
	)
	if err != nil {
		return fmt.Errorf("failed to insert location: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get location ID: %w", err)
	}
	loc.ID = id
	return nil
}

// ListByUser retrieves all locations saved by a user
func (r *LocationRepository) ListByUser(userID int64) ([]models.Location, error) {
	rows, err := r.db.Query(
		"SELECT id, user_id, label, lat, lng FROM locations WHERE user_id = ?",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query locations: %w", err)
	}
	defer rows.Close()

	var locations []models.Location
	for rows.Next() {
		var l models.Location
		if err := rows.Scan(&l.ID, &l.UserID, &l.Label, &l.Lat, &l.Lng); err != nil {
			return nil, fmt.Errorf("failed to scan location: %w", err)
		}
		locations = append(locations, l)
	}

	return locations, rows.Err()
}

// GetByID retrieves a location by ID, nil if not found
func (r *LocationRepository) GetByID(id int64) (*models.Location, error) {
	var l models.Location
	err := r.db.QueryRow(
		"SELECT id, user_id, label, lat, lng FROM locations WHERE id = ?",
		id,
	).Scan(&l.ID, &l.UserID, &l.Label, &l.Lat, &l.Lng)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query location: %w", err)
	}
	return &l, nil
}

// Delete removes a location and its trusted contacts
func (r *LocationRepository) Delete(id int64) error {
	if _, err := r.db.Exec("DELETE FROM trusted_contacts WHERE location_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete contacts: %w", err)
	}
	if _, err := r.db.Exec("DELETE FROM locations WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete location: %w", err)
	}
	return nil
}

// AddContact adds a trusted contact to a location
func (r *LocationRepository) AddContact(contact *models.TrustedContact) error {
	result, err := r.db.Exec(`
		INSERT INTO trusted_contacts (location_id, name, phone, email)
		VALUES (?, ?, ?, ?)`,
		contact.LocationID, contact.Name, contact.Phone, contact.Email,
	)
	if err != nil {
		return fmt.Errorf("failed to insert contact: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get contact ID: %w", err)
	}
	contact.ID = id
	return nil
}

// ListContacts retrieves the trusted contacts for a location
func (r *LocationRepository) ListContacts(locationID int64) ([]models.TrustedContact, error) {
	rows, err := r.db.Query(
		"SELECT id, location_id, name, phone, email FROM trusted_contacts WHERE location_id = ?",
		locationID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query contacts: %w", err)
	}
	defer rows.Close()

	var contacts []models.TrustedContact
	for rows.Next() {
		var c models.TrustedContact
		var phone, email sql.NullString
		if err := rows.Scan(&c.ID, &c.LocationID, &c.Name, &phone, &email); err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		c.Phone = phone.String
		c.Email = email.String
		contacts = append(contacts, c)
	}

	return contacts, rows.Err()
}
