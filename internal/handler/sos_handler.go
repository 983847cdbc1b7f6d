package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/safewalk/safewalk-backend-go/internal/middleware"
	"github.com/safewalk/safewalk-backend-go/internal/models"
	"github.com/safewalk/safewalk-backend-go/internal/service"
	"github.com/safewalk/safewalk-backend-go/pkg/response"
)

// SOSHandler handles HTTP requests for SOS alerts
type SOSHandler struct {
	sosService *service.SOSService
}

// NewSOSHandler creates a new SOS handler
func NewSOSHandler(sosService *service.SOSService) *SOSHandler {
	return &SOSHandler{sosService: sosService}
}

// Raise handles POST /api/v1/sos. Works with or without authentication
// so an alert is never blocked on a login.
func (h *SOSHandler) Raise(c *gin.Context) {
	var req models.SOSRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "lat & lng required")
		return
	}

	var userID *int64
	if id, ok := middleware.UserID(c); ok {
		userID = &id
	}

	alert, err := h.sosService.Raise(req, userID)
	if err != nil {
		if errors.Is(err, service.ErrInvalidLocation) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, "Failed to log SOS alert")
		return
	}

	response.Success(c, alert)
}

// List handles GET /api/v1/sos
func (h *SOSHandler) List(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	alerts, err := h.sosService.ListByUser(userID)
	if err != nil {
		response.InternalError(c, "Failed to list SOS alerts")
		return
	}

	response.Success(c, gin.H{
		"data":  alerts,
		"count": len(alerts),
	})
}
