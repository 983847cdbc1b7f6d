package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// identityScorer builds a scorer whose score at a populated cell equals the
// cell's "risk" feature value, which keeps expectations readable.
func identityScorer(t *testing.T, cfg ScorerConfig, points map[[2]float64]float64) *Scorer {
	t.Helper()

	model, err := NewModel([]string{"risk"}, []float64{1}, 0, 0)
	require.NoError(t, err)

	return NewScorer(buildStore(t, points), model, cfg)
}

func TestScorePoint(t *testing.T) {
	scorer := identityScorer(t, ScorerConfig{SampleStride: 1, MaxSamples: 100},
		map[[2]float64]float64{
			{12.9716, 77.5946}: 4.5,
		})

	point, err := scorer.ScorePoint(12.9716, 77.5946)
	require.NoError(t, err)
	assert.Equal(t, 4.5, point.Score)
	assert.Equal(t, MatchExact, point.Match)
	assert.NotEmpty(t, point.Cell)
}

func TestScorePointInvalidCoordinate(t *testing.T) {
	scorer := identityScorer(t, ScorerConfig{SampleStride: 1, MaxSamples: 100}, nil)

	for _, coord := range [][2]float64{{91, 0}, {0, 181}, {-91, 0}, {0, -181}} {
		_, err := scorer.ScorePoint(coord[0], coord[1])
		assert.ErrorIs(t, err, ErrInvalidCoordinate, "coordinate %v", coord)
	}
}

func TestScorePointAlwaysInRange(t *testing.T) {
	// Weights that push the raw output far outside [0,10]
	model, err := NewModel([]string{"risk"}, []float64{100}, -50, 0)
	require.NoError(t, err)

	store := buildStore(t, map[[2]float64]float64{
		{12.9716, 77.5946}: 9,  // raw 850
		{12.9816, 77.5946}: -2, // raw -250
	})
	scorer := NewScorer(store, model, ScorerConfig{SampleStride: 1, MaxSamples: 100})

	high, err := scorer.ScorePoint(12.9716, 77.5946)
	require.NoError(t, err)
	assert.Equal(t, 10.0, high.Score)

	low, err := scorer.ScorePoint(12.9816, 77.5946)
	require.NoError(t, err)
	assert.Equal(t, 0.0, low.Score)

	// Unpopulated cell takes the default-fill path and must still clamp
	missing, err := scorer.ScorePoint(48.8566, 2.3522)
	require.NoError(t, err)
	assert.Equal(t, MatchDefault, missing.Match)
	assert.GreaterOrEqual(t, missing.Score, ScoreMin)
	assert.LessOrEqual(t, missing.Score, ScoreMax)
}

func TestScorePointDeterminism(t *testing.T) {
	scorer := identityScorer(t, ScorerConfig{SampleStride: 1, MaxSamples: 100},
		map[[2]float64]float64{
			{12.9716, 77.5946}: 4.5,
		})

	first, err := scorer.ScorePoint(12.97158, 77.59462)
	require.NoError(t, err)
	second, err := scorer.ScorePoint(12.97158, 77.59462)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

// routeCells lays out consecutive cells along latitude with the given risk
// values and returns the matching route coordinates, one point per cell.
func routeCells(risks []float64) (map[[2]float64]float64, [][2]float64) {
	points := make(map[[2]float64]float64, len(risks))
	coords := make([][2]float64, 0, len(risks))
	for i, risk := range risks {
		lat := 12.9716 + float64(i)*2*testStep
		points[[2]float64{lat, 77.5946}] = risk
		coords = append(coords, [2]float64{lat, 77.5946})
	}
	return points, coords
}

func TestScoreRouteMeanAggregation(t *testing.T) {
	points, coords := routeCells([]float64{8, 8, 2, 8})
	scorer := identityScorer(t, ScorerConfig{SampleStride: 1, MaxSamples: 100}, points)

	result, err := scorer.ScoreRoute(coords)
	require.NoError(t, err)

	assert.InDelta(t, 6.5, result.Score, 1e-9)
	assert.Equal(t, 4, result.SampleCount)
	assert.Equal(t, 4, result.PointCount)
	assert.Zero(t, result.InvalidSamples)
	assert.Len(t, result.Samples, 4)
	assert.Greater(t, result.LengthMeters, 0.0)
}

func TestScoreRouteStrideSampling(t *testing.T) {
	points, coords := routeCells([]float64{8, 0, 0, 8, 0, 0, 8, 0, 0, 8})
	scorer := identityScorer(t, ScorerConfig{SampleStride: 3, MaxSamples: 100}, points)

	result, err := scorer.ScoreRoute(coords)
	require.NoError(t, err)

	// Indices 0, 3, 6, 9 are sampled, all value 8
	assert.Equal(t, 4, result.SampleCount)
	assert.Equal(t, 3, result.Stride)
	assert.InDelta(t, 8.0, result.Score, 1e-9)
}

func TestScoreRouteStrideFloor(t *testing.T) {
	points, coords := routeCells([]float64{8, 2})
	scorer := identityScorer(t, ScorerConfig{SampleStride: 5, MaxSamples: 100}, points)

	// Shorter than the stride: every available point is scored
	result, err := scorer.ScoreRoute(coords)
	require.NoError(t, err)

	assert.Equal(t, 2, result.SampleCount)
	assert.Equal(t, 1, result.Stride)
	assert.InDelta(t, 5.0, result.Score, 1e-9)
}

func TestScoreRouteSampleCap(t *testing.T) {
	risks := make([]float64, 60)
	for i := range risks {
		risks[i] = 5
	}
	points, coords := routeCells(risks)
	scorer := identityScorer(t, ScorerConfig{SampleStride: 1, MaxSamples: 10}, points)

	result, err := scorer.ScoreRoute(coords)
	require.NoError(t, err)

	assert.LessOrEqual(t, result.SampleCount, 10)
	assert.Equal(t, 6, result.Stride)
	assert.InDelta(t, 5.0, result.Score, 1e-9)
}

func TestScoreRouteEmpty(t *testing.T) {
	scorer := identityScorer(t, ScorerConfig{SampleStride: 1, MaxSamples: 100}, nil)

	_, err := scorer.ScoreRoute(nil)
	assert.ErrorIs(t, err, ErrEmptyRoute)

	_, err = scorer.ScoreRoute([][2]float64{})
	assert.ErrorIs(t, err, ErrEmptyRoute)
}

func TestScoreRouteSkipsInvalidSamples(t *testing.T) {
	points, coords := routeCells([]float64{8, 8, 2, 8})
	// Malformed upstream geometry in the middle of the route
	coords = append(coords[:2], append([][2]float64{{999, 0}}, coords[2:]...)...)

	scorer := identityScorer(t, ScorerConfig{SampleStride: 1, MaxSamples: 100}, points)
	result, err := scorer.ScoreRoute(coords)
	require.NoError(t, err)

	assert.Equal(t, 4, result.SampleCount)
	assert.Equal(t, 1, result.InvalidSamples)
	assert.InDelta(t, 6.5, result.Score, 1e-9)
}

func TestScoreRouteNoValidSamples(t *testing.T) {
	scorer := identityScorer(t, ScorerConfig{SampleStride: 1, MaxSamples: 100}, nil)

	_, err := scorer.ScoreRoute([][2]float64{{91, 0}, {95, 200}, {0, 181}})
	assert.ErrorIs(t, err, ErrNoValidSamples)
}

func TestScoreRouteDeterminism(t *testing.T) {
	points, coords := routeCells([]float64{8, 3, 2, 8, 5, 7})
	scorer := identityScorer(t, ScorerConfig{SampleStride: 2, MaxSamples: 100}, points)

	first, err := scorer.ScoreRoute(coords)
	require.NoError(t, err)
	second, err := scorer.ScoreRoute(coords)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
