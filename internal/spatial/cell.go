package spatial

import (
	"fmt"
	"math"
)

// Coordinate bounds for valid WGS84 positions
const (
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0
)

// ValidCoordinate reports whether (lat, lng) is a well-formed WGS84 position.
// NaN and infinities are rejected along with out-of-range values.
func ValidCoordinate(lat, lng float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lng) || math.IsInf(lat, 0) || math.IsInf(lng, 0) {
		return false
	}
	return lat >= MinLatitude && lat <= MaxLatitude &&
		lng >= MinLongitude && lng <= MaxLongitude
}

// Cell identifies one grid bucket at a fixed resolution.
// Lat/Lng are the snapped cell-center coordinates in degrees.
type Cell struct {
	Lat float64
	Lng float64
}

// Key returns the canonical string form of the cell, used as the
// feature table index. Six decimal places are enough to distinguish
// any grid step down to ~0.1m while staying stable across platforms.
func (c Cell) Key() string {
	return fmt.Sprintf("%.6f:%.6f", c.Lat, c.Lng)
}

// Quantize snaps a coordinate onto the grid with the given step in degrees.
// The same rounding must be used when the feature table is generated offline;
// two coordinates inside the same bucket always produce an identical cell.
func Quantize(lat, lng, step float64) Cell {
	return Cell{
		Lat: snap(lat, step),
		Lng: snap(lng, step),
	}
}

func snap(v, step float64) float64 {
	s := math.Round(v/step) * step
	if s == 0 {
		// Normalize negative zero so both sides of the axis share a key
		return 0
	}
	return s
}

// Neighbors returns the ring of cells at Chebyshev distance `ring` around c
// (8 cells for ring 1, 16 for ring 2, ...). Ring 0 returns just c.
// Used by the feature store to search for the nearest populated cell.
func (c Cell) Neighbors(step float64, ring int) []Cell {
	if ring <= 0 {
		return []Cell{c}
	}

	cells := make([]Cell, 0, 8*ring)
	for dy := -ring; dy <= ring; dy++ {
		for dx := -ring; dx <= ring; dx++ {
			// Only the outer ring, inner cells were visited on earlier rings
			if dy > -ring && dy < ring && dx > -ring && dx < ring {
				continue
			}

			lat := c.Lat + float64(dy)*step
			lng := c.Lng + float64(dx)*step

			// Clamp at the poles, wrap across the antimeridian
			if lat > MaxLatitude {
				lat = MaxLatitude
			}
			if lat < MinLatitude {
				lat = MinLatitude
			}
			if lng > MaxLongitude {
				lng -= 360
			}
			if lng < MinLongitude {
				lng += 360
			}

			// Re-snap so the key matches the store's quantization exactly
			cells = append(cells, Quantize(lat, lng, step))
		}
	}

	return cells
}
