package service

import (
	"time"

	"github.com/safewalk/safewalk-backend-go/internal/scoring"
)

// TrackResult is one live-tracking step: the score at the reported
// position plus the alert decision for the session
type TrackResult struct {
	*scoring.PointScore
	Alert     bool    `json:"alert"`
	Threshold float64 `json:"threshold"`
}

// SafetyService fronts the scoring engine for the HTTP layer
type SafetyService struct {
	scorer *scoring.Scorer
	alerts *scoring.AlertPolicy
}

// NewSafetyService creates a new safety service
func NewSafetyService(scorer *scoring.Scorer, alerts *scoring.AlertPolicy) *SafetyService {
	return &SafetyService{scorer: scorer, alerts: alerts}
}

// ScorePoint returns the safety score at one coordinate
func (s *SafetyService) ScorePoint(lat, lng float64) (*scoring.PointScore, error) {
	return s.scorer.ScorePoint(lat, lng)
}

// ScoreRoute returns the aggregate score of a route geometry
func (s *SafetyService) ScoreRoute(coords [][2]float64) (*scoring.RouteScore, error) {
	return s.scorer.ScoreRoute(coords)
}

// Track scores one live position and runs the alert policy for the session.
// A zero timestamp means "now".
func (s *SafetyService) Track(sessionID string, lat, lng float64, timestamp int64) (*TrackResult, error) {
	point, err := s.scorer.ScorePoint(lat, lng)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if timestamp > 0 {
		now = time.Unix(timestamp, 0)
	}

	return &TrackResult{
		PointScore: point,
		Alert:      s.alerts.ShouldAlert(sessionID, point.Score, now),
		Threshold:  s.alerts.Threshold(),
	}, nil
}

// EndSession clears a tracking session's alert state
func (s *SafetyService) EndSession(sessionID string) {
	s.alerts.EndSession(sessionID)
}
