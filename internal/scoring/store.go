package scoring

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/safewalk/safewalk-backend-go/internal/spatial"
)

// FeatureStore is an in-memory spatial index of precomputed cell features.
// It is built once at startup from the offline feature table and is
// read-only afterwards, so concurrent lookups need no locking.
type FeatureStore struct {
	step         float64
	searchRings  int
	defaultValue float64

	featureNames []string
	cells        map[string]FeatureVector
}

// StoreConfig controls quantization and miss handling
type StoreConfig struct {
	// GridStep is the cell size in degrees. Must match the resolution
	// the feature table was generated with.
	GridStep float64
	// SearchRings bounds the nearest-neighbor search for missing cells
	SearchRings int
	// DefaultValue fills features when no populated cell is found
	DefaultValue float64
}

// Lookup describes how a feature vector was resolved for a coordinate
type Lookup struct {
	Features FeatureVector
	Cell     spatial.Cell
	Match    MatchKind
	// DistanceMeters is the distance to the substituted cell center
	// when Match is MatchNearest, 0 otherwise
	DistanceMeters float64
}

// NewFeatureStore builds a store from already-quantized cell vectors.
// The cells map is keyed by spatial.Cell.Key() at cfg.GridStep.
func NewFeatureStore(cfg StoreConfig, featureNames []string, cells map[string]FeatureVector) *FeatureStore {
	return &FeatureStore{
		step:         cfg.GridStep,
		searchRings:  cfg.SearchRings,
		defaultValue: cfg.DefaultValue,
		featureNames: featureNames,
		cells:        cells,
	}
}

// LoadFeatureTable reads the offline grid feature table (CSV with cell_lat,
// cell_lng and one column per feature) into a FeatureStore. The table is the
// output of the offline batch job; rows whose cell coordinates do not lie on
// the configured grid are re-quantized rather than rejected.
func LoadFeatureTable(path string, cfg StoreConfig) (*FeatureStore, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open feature table: %w", err)
	}
	defer f.Close()

	store, err := readFeatureTable(f, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to read feature table %s: %w", path, err)
	}

	log.Printf("[FeatureStore] Loaded %d grid cells (%d features, step=%g)",
		len(store.cells), len(store.featureNames), cfg.GridStep)
	return store, nil
}

func readFeatureTable(r io.Reader, cfg StoreConfig) (*FeatureStore, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	latCol, lngCol := -1, -1
	var featureNames []string
	featureCols := make([]int, 0, len(header))
	for i, name := range header {
		switch name {
		case "cell_lat":
			latCol = i
		case "cell_lng", "cell_lon":
			lngCol = i
		default:
			featureNames = append(featureNames, name)
			featureCols = append(featureCols, i)
		}
	}
	if latCol < 0 || lngCol < 0 {
		return nil, fmt.Errorf("feature table missing cell_lat/cell_lng columns, got %v", header)
	}

	cells := make(map[string]FeatureVector)
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", line, err)
		}
		line++

		lat, err := strconv.ParseFloat(record[latCol], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: bad cell_lat %q: %w", line, record[latCol], err)
		}
		lng, err := strconv.ParseFloat(record[lngCol], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: bad cell_lng %q: %w", line, record[lngCol], err)
		}

		fv := make(FeatureVector, len(featureNames))
		for j, col := range featureCols {
			value, err := strconv.ParseFloat(record[col], 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: bad value for %s: %w", line, featureNames[j], err)
			}
			fv[featureNames[j]] = value
		}

		cell := spatial.Quantize(lat, lng, cfg.GridStep)
		cells[cell.Key()] = fv
	}

	return NewFeatureStore(cfg, featureNames, cells), nil
}

// FeatureNames returns the table's feature schema in column order
func (s *FeatureStore) FeatureNames() []string {
	return s.featureNames
}

// Len returns the number of populated cells
func (s *FeatureStore) Len() int {
	return len(s.cells)
}

// Get returns the feature vector for an exact cell, if populated.
func (s *FeatureStore) Get(cell spatial.Cell) (FeatureVector, bool) {
	fv, ok := s.cells[cell.Key()]
	return fv, ok
}

// Find resolves the feature vector for a coordinate. An exact cell hit is
// returned as-is; on a miss the store searches expanding rings of neighbor
// cells for the nearest populated one, and finally degrades to the default
// vector. Find never fails for an in-range coordinate.
func (s *FeatureStore) Find(lat, lng float64) Lookup {
	cell := spatial.Quantize(lat, lng, s.step)

	if fv, ok := s.cells[cell.Key()]; ok {
		return Lookup{Features: fv, Cell: cell, Match: MatchExact}
	}

	for ring := 1; ring <= s.searchRings; ring++ {
		var (
			best     FeatureVector
			bestCell spatial.Cell
			bestDist float64
			found    bool
		)
		for _, n := range cell.Neighbors(s.step, ring) {
			fv, ok := s.cells[n.Key()]
			if !ok {
				continue
			}
			d := spatial.HaversineDistance(lat, lng, n.Lat, n.Lng)
			if !found || d < bestDist {
				best, bestCell, bestDist, found = fv, n, d, true
			}
		}
		if found {
			return Lookup{
				Features:       best,
				Cell:           bestCell,
				Match:          MatchNearest,
				DistanceMeters: bestDist,
			}
		}
	}

	return Lookup{Features: s.defaultVector(), Cell: cell, Match: MatchDefault}
}

func (s *FeatureStore) defaultVector() FeatureVector {
	fv := make(FeatureVector, len(s.featureNames))
	for _, name := range s.featureNames {
		fv[name] = s.defaultValue
	}
	return fv
}
