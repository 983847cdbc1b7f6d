package scoring

// FeatureVector maps feature names to values for one grid cell.
// Values are keyed by name, not position; the model resolves them
// against its own schema order at predict time so a reordered feature
// table can never silently shift weights.
type FeatureVector map[string]float64

// MatchKind records how a feature lookup was satisfied
type MatchKind string

const (
	// MatchExact means the quantized cell existed in the feature table
	MatchExact MatchKind = "exact"
	// MatchNearest means a populated neighbor cell was substituted
	MatchNearest MatchKind = "nearest"
	// MatchDefault means no populated cell was found within the search radius
	MatchDefault MatchKind = "default"
)
