package spatial

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidCoordinate(t *testing.T) {
	tests := []struct {
		name  string
		lat   float64
		lng   float64
		valid bool
	}{
		{name: "city center", lat: 12.9716, lng: 77.5946, valid: true},
		{name: "boundary values", lat: 90, lng: -180, valid: true},
		{name: "latitude too high", lat: 91, lng: 0, valid: false},
		{name: "longitude too high", lat: 0, lng: 181, valid: false},
		{name: "latitude too low", lat: -90.5, lng: 0, valid: false},
		{name: "NaN latitude", lat: math.NaN(), lng: 0, valid: false},
		{name: "infinite longitude", lat: 0, lng: math.Inf(1), valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidCoordinate(tt.lat, tt.lng))
		})
	}
}

func TestQuantizeIdempotence(t *testing.T) {
	const step = 0.0015

	// Two coordinates inside the same bucket must produce the same cell
	a := Quantize(12.97161, 77.59462, step)
	b := Quantize(12.97158, 77.59458, step)
	assert.Equal(t, a, b)
	assert.Equal(t, a.Key(), b.Key())

	// Quantizing a snapped cell center is a fixed point
	again := Quantize(a.Lat, a.Lng, step)
	assert.Equal(t, a.Key(), again.Key())

	// Both sides of the zero axis share the zero bucket's key
	neg := Quantize(-0.0001, -0.0001, step)
	pos := Quantize(0.0001, 0.0001, step)
	assert.Equal(t, pos.Key(), neg.Key())
}

func TestQuantizeSeparatesCells(t *testing.T) {
	const step = 0.0015

	a := Quantize(12.9716, 77.5946, step)
	b := Quantize(12.9716+2*step, 77.5946, step)
	assert.NotEqual(t, a.Key(), b.Key())
}

func TestNeighbors(t *testing.T) {
	const step = 0.0015
	c := Quantize(12.9716, 77.5946, step)

	assert.Equal(t, []Cell{c}, c.Neighbors(step, 0))
	assert.Len(t, c.Neighbors(step, 1), 8)
	assert.Len(t, c.Neighbors(step, 2), 16)

	// The center cell is never part of its own ring
	for _, n := range c.Neighbors(step, 1) {
		assert.NotEqual(t, c.Key(), n.Key())
	}
}

func TestHaversineDistance(t *testing.T) {
	// Two points in central Bangalore, roughly 550m apart
	d := HaversineDistance(12.9716, 77.5946, 12.9763, 77.5929)
	assert.InDelta(t, 550, d, 50)

	assert.Zero(t, HaversineDistance(12.9716, 77.5946, 12.9716, 77.5946))
}

func TestPathLength(t *testing.T) {
	assert.Zero(t, PathLength(nil))
	assert.Zero(t, PathLength([][2]float64{{12.9716, 77.5946}}))

	path := [][2]float64{
		{12.9716, 77.5946},
		{12.9726, 77.5946},
		{12.9736, 77.5946},
	}
	// Two hops of ~0.001 degree latitude each, ~111m per hop
	assert.InDelta(t, 222, PathLength(path), 10)
}
