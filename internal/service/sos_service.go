package service

import (
	"log"
	"time"

	"github.com/safewalk/safewalk-backend-go/internal/models"
	"github.com/safewalk/safewalk-backend-go/internal/repository"
	"github.com/safewalk/safewalk-backend-go/internal/spatial"
)

// SOSService records help requests. Delivery to notification channels is
// handled by an external collaborator reading the alert log; this service
// only validates and persists.
type SOSService struct {
	repo *repository.SOSRepository
}

// NewSOSService creates a new SOS service
func NewSOSService(repo *repository.SOSRepository) *SOSService {
	return &SOSService{repo: repo}
}

// Raise validates and logs an SOS alert. userID is nil for anonymous alerts.
func (s *SOSService) Raise(req models.SOSRequest, userID *int64) (*models.SOSAlert, error) {
	if !spatial.ValidCoordinate(*req.Lat, *req.Lng) {
		return nil, ErrInvalidLocation
	}

	timestamp := req.Timestamp
	if timestamp == 0 {
		timestamp = time.Now().Unix()
	}

	alert := &models.SOSAlert{
		UserID:    userID,
		Lat:       *req.Lat,
		Lng:       *req.Lng,
		Message:   req.Message,
		Timestamp: timestamp,
	}
	if err := s.repo.Create(alert); err != nil {
		return nil, err
	}

	log.Printf("[SOS] Alert %d logged at (%.5f, %.5f)", alert.ID, alert.Lat, alert.Lng)
	return alert, nil
}

// ListByUser returns a user's recent alerts
func (s *SOSService) ListByUser(userID int64) ([]models.SOSAlert, error) {
	return s.repo.ListByUser(userID, 100)
}
