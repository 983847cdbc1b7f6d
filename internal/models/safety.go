package models

// PointScoreRequest asks for the safety score at one coordinate
type PointScoreRequest struct {
	Lat *float64 `json:"lat" binding:"required"`
	Lng *float64 `json:"lng" binding:"required"`
}

// RouteScoreRequest asks for the aggregate score of a route geometry,
// given as ordered [lat, lng] pairs from the routing provider
type RouteScoreRequest struct {
	Coords [][2]float64 `json:"coords"`
}

// TrackRequest reports one live-tracking position for a session
type TrackRequest struct {
	SessionID string   `json:"session_id" binding:"required"`
	Lat       *float64 `json:"lat" binding:"required"`
	Lng       *float64 `json:"lng" binding:"required"`
	Timestamp int64    `json:"timestamp"` // Unix seconds, server time when omitted
}
