package models

// Location is a user's saved place (Home, Hostel, College, ...)
type Location struct {
	ID     int64   `json:"id" db:"id"`
	UserID int64   `json:"user_id" db:"user_id"`
	Label  string  `json:"label" db:"label"`
	Lat    float64 `json:"lat" db:"lat"`
	Lng    float64 `json:"lng" db:"lng"`
}

// TrustedContact is notified when an alert concerns its location
type TrustedContact struct {
	ID         int64  `json:"id" db:"id"`
	LocationID int64  `json:"location_id" db:"location_id"`
	Name       string `json:"name" db:"name"`
	Phone      string `json:"phone,omitempty" db:"phone"`
	Email      string `json:"email,omitempty" db:"email"`
}

// LocationRequest is the payload for saving a place
type LocationRequest struct {
	Label string   `json:"label" binding:"required"`
	Lat   *float64 `json:"lat" binding:"required"`
	Lng   *float64 `json:"lng" binding:"required"`
}

// ContactRequest is the payload for adding a trusted contact
type ContactRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}
