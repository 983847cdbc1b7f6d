package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/safewalk/safewalk-backend-go/internal/models"
	"github.com/safewalk/safewalk-backend-go/internal/scoring"
	"github.com/safewalk/safewalk-backend-go/internal/service"
	"github.com/safewalk/safewalk-backend-go/pkg/response"
)

// SafetyHandler handles HTTP requests for safety scoring
type SafetyHandler struct {
	safetyService *service.SafetyService
}

// NewSafetyHandler creates a new safety handler
func NewSafetyHandler(safetyService *service.SafetyService) *SafetyHandler {
	return &SafetyHandler{safetyService: safetyService}
}

// ScorePoint handles POST /api/v1/safety/score
func (h *SafetyHandler) ScorePoint(c *gin.Context) {
	var req models.PointScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "lat & lng required")
		return
	}

	result, err := h.safetyService.ScorePoint(*req.Lat, *req.Lng)
	if err != nil {
		failScoring(c, err)
		return
	}

	response.Success(c, result)
}

// ScoreRoute handles POST /api/v1/safety/route
func (h *SafetyHandler) ScoreRoute(c *gin.Context) {
	var req models.RouteScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "coords required")
		return
	}

	result, err := h.safetyService.ScoreRoute(req.Coords)
	if err != nil {
		failScoring(c, err)
		return
	}

	response.Success(c, result)
}

// Track handles POST /api/v1/safety/track
func (h *SafetyHandler) Track(c *gin.Context) {
	var req models.TrackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "session_id, lat & lng required")
		return
	}

	result, err := h.safetyService.Track(req.SessionID, *req.Lat, *req.Lng, req.Timestamp)
	if err != nil {
		failScoring(c, err)
		return
	}

	response.Success(c, result)
}

// EndSession handles DELETE /api/v1/safety/track/:session_id
func (h *SafetyHandler) EndSession(c *gin.Context) {
	h.safetyService.EndSession(c.Param("session_id"))
	response.Success(c, nil)
}

// failScoring maps engine error kinds onto HTTP statuses. Per-request
// failures carry their kind so clients can distinguish them without
// parsing messages.
func failScoring(c *gin.Context, err error) {
	var scoringErr *scoring.Error
	if !errors.As(err, &scoringErr) {
		response.InternalError(c, err.Error())
		return
	}

	status := http.StatusBadRequest
	switch scoringErr.Kind {
	case scoring.KindNoValidSamples:
		status = http.StatusUnprocessableEntity
	case scoring.KindModelUnavailable:
		status = http.StatusInternalServerError
	}

	response.Fail(c, status, scoringErr.Kind.String(), scoringErr.Reason)
}
