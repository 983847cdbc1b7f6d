package models

// SOSAlert represents a logged help request with the sender's location.
// UserID is nil for anonymous alerts.
type SOSAlert struct {
	ID        int64   `json:"id" db:"id"`
	UserID    *int64  `json:"user_id,omitempty" db:"user_id"`
	Lat       float64 `json:"lat" db:"lat"`
	Lng       float64 `json:"lng" db:"lng"`
	Message   string  `json:"message,omitempty" db:"message"`
	Timestamp int64   `json:"timestamp" db:"timestamp"` // Unix timestamp in seconds
}

// SOSRequest is the payload for raising an alert. Lat/lng use pointers so
// a missing field can be told apart from a genuine zero coordinate.
type SOSRequest struct {
	Lat       *float64 `json:"lat" binding:"required"`
	Lng       *float64 `json:"lng" binding:"required"`
	Message   string   `json:"message"`
	Timestamp int64    `json:"timestamp"`
}
