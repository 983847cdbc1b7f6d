package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/safewalk/safewalk-backend-go/internal/middleware"
	"github.com/safewalk/safewalk-backend-go/internal/models"
	"github.com/safewalk/safewalk-backend-go/internal/service"
	"github.com/safewalk/safewalk-backend-go/pkg/response"
)

// LocationHandler handles HTTP requests for saved locations
type LocationHandler struct {
	locationService *service.LocationService
}

// NewLocationHandler creates a new location handler
func NewLocationHandler(locationService *service.LocationService) *LocationHandler {
	return &LocationHandler{locationService: locationService}
}

// Save handles POST /api/v1/locations
func (h *LocationHandler) Save(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	var req models.LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "label, lat & lng required")
		return
	}

	loc, err := h.locationService.Save(userID, req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidLocation) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, "Failed to save location")
		return
	}

	response.Success(c, loc)
}

// List handles GET /api/v1/locations
func (h *LocationHandler) List(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	locations, err := h.locationService.List(userID)
	if err != nil {
		response.InternalError(c, "Failed to list locations")
		return
	}

	response.Success(c, gin.H{
		"data":  locations,
		"count": len(locations),
	})
}

// Delete handles DELETE /api/v1/locations/:id
func (h *LocationHandler) Delete(c *gin.Context) {
	userID, locationID, ok := h.ownedLocation(c)
	if !ok {
		return
	}

	if err := h.locationService.Delete(userID, locationID); err != nil {
		failLocation(c, err)
		return
	}

	response.Success(c, nil)
}

// AddContact handles POST /api/v1/locations/:id/contacts
func (h *LocationHandler) AddContact(c *gin.Context) {
	userID, locationID, ok := h.ownedLocation(c)
	if !ok {
		return
	}

	var req models.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "name required")
		return
	}

	contact, err := h.locationService.AddContact(userID, locationID, req)
	if err != nil {
		failLocation(c, err)
		return
	}

	response.Success(c, contact)
}

// ListContacts handles GET /api/v1/locations/:id/contacts
func (h *LocationHandler) ListContacts(c *gin.Context) {
	userID, locationID, ok := h.ownedLocation(c)
	if !ok {
		return
	}

	contacts, err := h.locationService.ListContacts(userID, locationID)
	if err != nil {
		failLocation(c, err)
		return
	}

	response.Success(c, gin.H{
		"data":  contacts,
		"count": len(contacts),
	})
}

func (h *LocationHandler) ownedLocation(c *gin.Context) (userID, locationID int64, ok bool) {
	userID, authed := middleware.UserID(c)
	if !authed {
		response.Unauthorized(c, "Authentication required")
		return 0, 0, false
	}

	locationID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid location ID")
		return 0, 0, false
	}

	return userID, locationID, true
}

func failLocation(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrLocationNotFound):
		response.NotFound(c, "Location not found")
	case errors.Is(err, service.ErrNotLocationOwner):
		response.Error(c, 403, "Location belongs to another user")
	default:
		response.InternalError(c, "Location operation failed")
	}
}
