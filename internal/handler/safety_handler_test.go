package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safewalk/safewalk-backend-go/internal/scoring"
	"github.com/safewalk/safewalk-backend-go/internal/service"
	"github.com/safewalk/safewalk-backend-go/internal/spatial"
	"github.com/safewalk/safewalk-backend-go/pkg/response"
)

const testStep = 0.0015

// newSafetyRouter builds a router over a small in-memory engine whose score
// at a populated cell equals that cell's "risk" feature.
func newSafetyRouter(t *testing.T, points map[[2]float64]float64) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cells := make(map[string]scoring.FeatureVector, len(points))
	for coord, risk := range points {
		cell := spatial.Quantize(coord[0], coord[1], testStep)
		cells[cell.Key()] = scoring.FeatureVector{"risk": risk}
	}
	store := scoring.NewFeatureStore(scoring.StoreConfig{
		GridStep:     testStep,
		SearchRings:  3,
		DefaultValue: 0,
	}, []string{"risk"}, cells)

	model, err := scoring.NewModel([]string{"risk"}, []float64{1}, 0, 0)
	require.NoError(t, err)

	scorer := scoring.NewScorer(store, model, scoring.ScorerConfig{SampleStride: 1, MaxSamples: 100})
	alerts := scoring.NewAlertPolicy(3.0, 300*time.Second)
	safety := service.NewSafetyService(scorer, alerts)

	h := NewSafetyHandler(safety)
	r := gin.New()
	r.POST("/score", h.ScorePoint)
	r.POST("/route", h.ScoreRoute)
	r.POST("/track", h.Track)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, path, body string) (*httptest.ResponseRecorder, response.Response) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestScorePointEndpoint(t *testing.T) {
	r := newSafetyRouter(t, map[[2]float64]float64{
		{12.9716, 77.5946}: 4.5,
	})

	w, resp := doJSON(t, r, "/score", `{"lat": 12.9716, "lng": 77.5946}`)
	require.Equal(t, http.StatusOK, w.Code)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, 4.5, data["score"])
	assert.Equal(t, "exact", data["match"])
}

func TestScorePointEndpointErrors(t *testing.T) {
	r := newSafetyRouter(t, nil)

	tests := []struct {
		name   string
		body   string
		status int
		kind   string
	}{
		{name: "missing fields", body: `{}`, status: http.StatusBadRequest},
		{name: "latitude out of range", body: `{"lat": 91, "lng": 0}`,
			status: http.StatusBadRequest, kind: "invalid_coordinate"},
		{name: "longitude out of range", body: `{"lat": 0, "lng": 181}`,
			status: http.StatusBadRequest, kind: "invalid_coordinate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, resp := doJSON(t, r, "/score", tt.body)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.kind, resp.Kind)
		})
	}
}

func TestScoreRouteEndpoint(t *testing.T) {
	points := map[[2]float64]float64{}
	coords := make([]string, 0, 4)
	for i, risk := range []float64{8, 8, 2, 8} {
		lat := 12.9716 + float64(i)*2*testStep
		points[[2]float64{lat, 77.5946}] = risk
		coords = append(coords, fmt.Sprintf("[%.6f, 77.5946]", lat))
	}
	r := newSafetyRouter(t, points)

	body := fmt.Sprintf(`{"coords": [%s]}`, strings.Join(coords, ","))
	w, resp := doJSON(t, r, "/route", body)
	require.Equal(t, http.StatusOK, w.Code)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.InDelta(t, 6.5, data["score"].(float64), 1e-9)
	assert.Equal(t, float64(4), data["sample_count"])
}

func TestScoreRouteEndpointErrors(t *testing.T) {
	r := newSafetyRouter(t, nil)

	w, resp := doJSON(t, r, "/route", `{"coords": []}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "empty_route", resp.Kind)

	w, resp = doJSON(t, r, "/route", `{"coords": [[91, 0], [0, 181]]}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "no_valid_samples", resp.Kind)
}

func TestTrackEndpointAlerts(t *testing.T) {
	r := newSafetyRouter(t, map[[2]float64]float64{
		{12.9716, 77.5946}: 1.0, // well below the alert threshold
	})

	body := `{"session_id": "device-1", "lat": 12.9716, "lng": 77.5946, "timestamp": 1754000000}`
	w, resp := doJSON(t, r, "/track", body)
	require.Equal(t, http.StatusOK, w.Code)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, true, data["alert"])
	assert.Equal(t, 1.0, data["score"])

	// Same session a minute later is inside the cooldown
	body = `{"session_id": "device-1", "lat": 12.9716, "lng": 77.5946, "timestamp": 1754000060}`
	_, resp = doJSON(t, r, "/track", body)
	data = resp.Data.(map[string]interface{})
	assert.Equal(t, false, data["alert"])

	// A different device is unaffected
	body = `{"session_id": "device-2", "lat": 12.9716, "lng": 77.5946, "timestamp": 1754000060}`
	_, resp = doJSON(t, r, "/track", body)
	data = resp.Data.(map[string]interface{})
	assert.Equal(t, true, data["alert"])
}
