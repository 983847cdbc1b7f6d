package scoring

import "fmt"

// ErrorKind classifies engine failures so handlers can map them to
// HTTP statuses without string matching.
type ErrorKind int

const (
	// KindInvalidCoordinate means lat/lng was outside the valid WGS84 range
	KindInvalidCoordinate ErrorKind = iota
	// KindEmptyRoute means no coordinates were supplied for route scoring
	KindEmptyRoute
	// KindNoValidSamples means every sampled route point was invalid
	KindNoValidSamples
	// KindModelUnavailable means the weight artifact failed to load at startup
	KindModelUnavailable
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidCoordinate:
		return "invalid_coordinate"
	case KindEmptyRoute:
		return "empty_route"
	case KindNoValidSamples:
		return "no_valid_samples"
	case KindModelUnavailable:
		return "model_unavailable"
	default:
		return "unknown"
	}
}

// Error is the engine's error type. Per-request kinds are returned to the
// caller as structured failures, never converted to a default score.
type Error struct {
	Kind   ErrorKind
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
}

// Is lets errors.Is match on kind sentinels
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Reason == "" || t.Reason == e.Reason)
}

// Kind sentinels for errors.Is checks
var (
	ErrInvalidCoordinate = &Error{Kind: KindInvalidCoordinate}
	ErrEmptyRoute        = &Error{Kind: KindEmptyRoute}
	ErrNoValidSamples    = &Error{Kind: KindNoValidSamples}
	ErrModelUnavailable  = &Error{Kind: KindModelUnavailable}
)

func invalidCoordinate(lat, lng float64) *Error {
	return &Error{
		Kind:   KindInvalidCoordinate,
		Reason: fmt.Sprintf("coordinate (%.6f, %.6f) is outside valid range", lat, lng),
	}
}
