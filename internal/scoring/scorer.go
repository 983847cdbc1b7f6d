package scoring

import (
	"fmt"

	"github.com/safewalk/safewalk-backend-go/internal/spatial"
)

// PointScore is the result of scoring a single coordinate. Alongside the
// clamped score it records which cell answered the lookup, so callers can
// tell an exact reading from a best-effort estimate.
type PointScore struct {
	Score          float64   `json:"score"`
	Cell           string    `json:"cell"`
	Match          MatchKind `json:"match"`
	DistanceMeters float64   `json:"distance_meters,omitempty"`
}

// RouteScore aggregates sampled point scores over a route geometry
type RouteScore struct {
	Score float64 `json:"score"`

	// Sampling provenance
	PointCount       int `json:"point_count"`
	SampleCount      int `json:"sample_count"`
	InvalidSamples   int `json:"invalid_samples"`
	DefaultedSamples int `json:"defaulted_samples"`
	Stride           int `json:"stride"`

	LengthMeters float64      `json:"length_meters"`
	Samples      []PointScore `json:"samples"`
}

// ScorerConfig controls route sampling
type ScorerConfig struct {
	// SampleStride scores every Nth route point, minimum 1
	SampleStride int
	// MaxSamples bounds work on arbitrarily long geometries; the
	// effective stride is widened if needed to stay under it
	MaxSamples int
}

// Scorer answers point and route safety queries against an immutable
// feature store and model. Stateless per call, safe for concurrent use.
type Scorer struct {
	store  *FeatureStore
	model  *Model
	stride int
	maxN   int
}

// NewScorer wires a scorer. Out-of-range config values are normalized
// rather than rejected since they are tuning constants, not user input.
func NewScorer(store *FeatureStore, model *Model, cfg ScorerConfig) *Scorer {
	stride := cfg.SampleStride
	if stride < 1 {
		stride = 1
	}
	maxN := cfg.MaxSamples
	if maxN < 1 {
		maxN = 1
	}
	return &Scorer{store: store, model: model, stride: stride, maxN: maxN}
}

// ScorePoint scores one coordinate. The returned score is always within
// [ScoreMin, ScoreMax], whether the cell was populated or defaulted.
func (s *Scorer) ScorePoint(lat, lng float64) (*PointScore, error) {
	if !spatial.ValidCoordinate(lat, lng) {
		return nil, invalidCoordinate(lat, lng)
	}

	lookup := s.store.Find(lat, lng)
	score := Clamp(s.model.Predict(lookup.Features))

	return &PointScore{
		Score:          score,
		Cell:           lookup.Cell.Key(),
		Match:          lookup.Match,
		DistanceMeters: lookup.DistanceMeters,
	}, nil
}

// ScoreRoute scores an ordered route geometry by sampling every Nth point
// and averaging the clamped per-sample scores. Malformed points are skipped
// and counted; the call fails only when nothing at all could be scored.
//
// The mean is over sampled points, not distance, which is an accepted
// approximation: routing geometries are roughly uniform in point spacing.
func (s *Scorer) ScoreRoute(coords [][2]float64) (*RouteScore, error) {
	if len(coords) == 0 {
		return nil, &Error{Kind: KindEmptyRoute, Reason: "route has no coordinates"}
	}

	stride := s.effectiveStride(len(coords))

	result := &RouteScore{
		PointCount: len(coords),
		Stride:     stride,
		Samples:    make([]PointScore, 0, len(coords)/stride+1),
	}

	var sum float64
	for i := 0; i < len(coords); i += stride {
		lat, lng := coords[i][0], coords[i][1]

		point, err := s.ScorePoint(lat, lng)
		if err != nil {
			// Malformed upstream geometry: exclude, keep going
			result.InvalidSamples++
			continue
		}
		if point.Match == MatchDefault {
			result.DefaultedSamples++
		}

		result.Samples = append(result.Samples, *point)
		sum += point.Score
	}

	result.SampleCount = len(result.Samples)
	if result.SampleCount == 0 {
		return nil, &Error{
			Kind:   KindNoValidSamples,
			Reason: fmt.Sprintf("all %d sampled points were invalid", result.InvalidSamples),
		}
	}

	result.Score = sum / float64(result.SampleCount)
	result.LengthMeters = spatial.PathLength(coords)
	return result, nil
}

// effectiveStride applies the stride floor and the sample cap. A route
// shorter than the stride is scored point by point so there is always at
// least one sample; a route long enough to exceed MaxSamples gets a
// proportionally wider stride instead of truncation, keeping coverage of
// the whole path.
func (s *Scorer) effectiveStride(n int) int {
	if n <= s.stride {
		return 1
	}
	stride := s.stride
	if capStride := (n + s.maxN - 1) / s.maxN; capStride > stride {
		stride = capStride
	}
	return stride
}
