package repository

import (
	"database/sql"
	"fmt"

	"github.com/safewalk/safewalk-backend-go/internal/models"
)

// UserRepository handles database operations for user accounts
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user and returns it with the assigned ID
func (r *UserRepository) Create(user *models.User) error {
	result, err := r.db.Exec(`
		INSERT INTO users (name, email, phone, password_hash)
		VALUES (?, ?, ?, ?)`,
		user.Name, user.Email, user.Phone, user.PasswordHash,
	)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get user ID: %w", err)
	}
	user.ID = id
	return nil
}

// GetByEmail retrieves a user by email, nil if not found
func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	query := `SELECT id, name, email, phone, password_hash, created_at
		FROM users WHERE email = ?`

	var u models.User
	var phone sql.NullString
	err := r.db.QueryRow(query, email).Scan(
		&u.ID, &u.Name, &u.Email, &phone, &u.PasswordHash, &u.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user by email: %w", err)
	}

	u.Phone = phone.String
	return &u, nil
}

// GetByID retrieves a user by ID, nil if not found
func (r *UserRepository) GetByID(id int64) (*models.User, error) {
	query := `SELECT id, name, email, phone, password_hash, created_at
		FROM users WHERE id = ?`

	var u models.User
	var phone sql.NullString
	err := r.db.QueryRow(query, id).Scan(
		&u.ID, &u.Name, &u.Email, &phone, &u.PasswordHash, &u.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user by id: %w", err)
	}

	u.Phone = phone.String
	return &u, nil
}
