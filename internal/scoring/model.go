package scoring

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"os"
)

// Score bounds surfaced to callers. The raw linear output is clamped
// into this range before it leaves the engine.
const (
	ScoreMin = 0.0
	ScoreMax = 10.0
)

// Model holds the pretrained linear safety model. It is loaded once at
// startup and never mutated, so concurrent Predict calls are safe.
type Model struct {
	schema      []string
	weights     map[string]float64
	intercept   float64
	version     string
	defaultFill float64
}

// modelArtifact is the persisted form of the fitted model: the feature
// schema in the order the weights were fit, one weight per schema entry,
// and the intercept.
type modelArtifact struct {
	Version   string    `json:"version"`
	Schema    []string  `json:"schema"`
	Weights   []float64 `json:"weights"`
	Intercept float64   `json:"intercept"`
}

// LoadModel reads the weight artifact produced by offline training.
// A missing or corrupt artifact yields ModelUnavailable; callers must
// treat that as fatal at startup rather than serving unscored requests.
func LoadModel(path string, defaultFill float64) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{
			Kind:   KindModelUnavailable,
			Reason: fmt.Sprintf("failed to read model artifact %s: %v", path, err),
		}
	}

	var artifact modelArtifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, &Error{
			Kind:   KindModelUnavailable,
			Reason: fmt.Sprintf("failed to parse model artifact %s: %v", path, err),
		}
	}

	model, err := NewModel(artifact.Schema, artifact.Weights, artifact.Intercept, defaultFill)
	if err != nil {
		return nil, err
	}
	model.version = artifact.Version

	log.Printf("[Model] Loaded safety model %q (%d features)", model.version, len(model.schema))
	return model, nil
}

// NewModel builds a model from an explicit schema and weight slice.
// Weights are aligned to schema positionally here, once; after this
// point all access is by feature name.
func NewModel(schema []string, weights []float64, intercept, defaultFill float64) (*Model, error) {
	if len(schema) == 0 {
		return nil, &Error{Kind: KindModelUnavailable, Reason: "model schema is empty"}
	}
	if len(schema) != len(weights) {
		return nil, &Error{
			Kind:   KindModelUnavailable,
			Reason: fmt.Sprintf("schema has %d features but %d weights", len(schema), len(weights)),
		}
	}

	byName := make(map[string]float64, len(schema))
	for i, name := range schema {
		if _, dup := byName[name]; dup {
			return nil, &Error{
				Kind:   KindModelUnavailable,
				Reason: fmt.Sprintf("duplicate feature %q in model schema", name),
			}
		}
		byName[name] = weights[i]
	}

	return &Model{
		schema:      append([]string(nil), schema...),
		weights:     byName,
		intercept:   intercept,
		defaultFill: defaultFill,
	}, nil
}

// Version returns the artifact version string, empty for ad-hoc models
func (m *Model) Version() string {
	return m.version
}

// Schema returns the feature names the model expects, in fit order
func (m *Model) Schema() []string {
	return m.schema
}

// Predict computes the raw linear score for a feature vector:
// intercept + sum over the schema of weight*value. Features outside the
// schema are ignored; schema features missing from the vector fall back
// to the default fill. A loaded model always produces a number.
func (m *Model) Predict(fv FeatureVector) float64 {
	score := m.intercept
	for _, name := range m.schema {
		value, ok := fv[name]
		if !ok {
			value = m.defaultFill
		}
		score += m.weights[name] * value
	}
	return score
}

// Clamp constrains a raw score into [ScoreMin, ScoreMax]
func Clamp(score float64) float64 {
	return math.Max(ScoreMin, math.Min(ScoreMax, score))
}
