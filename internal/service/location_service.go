package service

import (
	"errors"

	"github.com/safewalk/safewalk-backend-go/internal/models"
	"github.com/safewalk/safewalk-backend-go/internal/repository"
	"github.com/safewalk/safewalk-backend-go/internal/spatial"
)

// Location failure modes surfaced to the handler layer
var (
	ErrInvalidLocation  = errors.New("location is outside valid coordinate range")
	ErrLocationNotFound = errors.New("location not found")
	ErrNotLocationOwner = errors.New("location belongs to another user")
)

// LocationService handles saved places and their trusted contacts
type LocationService struct {
	repo *repository.LocationRepository
}

// NewLocationService creates a new location service
func NewLocationService(repo *repository.LocationRepository) *LocationService {
	return &LocationService{repo: repo}
}

// Save stores a new place for the user
func (s *LocationService) Save(userID int64, req models.LocationRequest) (*models.Location, error) {
	if !spatial.ValidCoordinate(*req.Lat, *req.Lng) {
		return nil, ErrInvalidLocation
	}

	loc := &models.Location{
		UserID: userID,
		Label:  req.Label,
		Lat:    *req.Lat,
		Lng:    *req.Lng,
	}
	if err := s.repo.Create(loc); err != nil {
		return nil, err
	}
	return loc, nil
}

// List returns all of a user's saved places
func (s *LocationService) List(userID int64) ([]models.Location, error) {
	return s.repo.ListByUser(userID)
}

// Delete removes a user's place after an ownership check
func (s *LocationService) Delete(userID, locationID int64) error {
	loc, err := s.owned(userID, locationID)
	if err != nil {
		return err
	}
	return s.repo.Delete(loc.ID)
}

// AddContact attaches a trusted contact to a user's place
func (s *LocationService) AddContact(userID, locationID int64, req models.ContactRequest) (*models.TrustedContact, error) {
	if _, err := s.owned(userID, locationID); err != nil {
		return nil, err
	}

	contact := &models.TrustedContact{
		LocationID: locationID,
		Name:       req.Name,
		Phone:      req.Phone,
		Email:      req.Email,
	}
	if err := s.repo.AddContact(contact); err != nil {
		return nil, err
	}
	return contact, nil
}

// ListContacts returns the trusted contacts of a user's place
func (s *LocationService) ListContacts(userID, locationID int64) ([]models.TrustedContact, error) {
	if _, err := s.owned(userID, locationID); err != nil {
		return nil, err
	}
	return s.repo.ListContacts(locationID)
}

func (s *LocationService) owned(userID, locationID int64) (*models.Location, error) {
	loc, err := s.repo.GetByID(locationID)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, ErrLocationNotFound
	}
	if loc.UserID != userID {
		return nil, ErrNotLocationOwner
	}
	return loc, nil
}
