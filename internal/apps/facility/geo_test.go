package facility

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHaversineKmZeroDistance(t *testing.T) {
	assert.Equal(t, 0.0, HaversineKm(40.7128, -74.0060, 40.7128, -74.0060))
}

func TestHaversineKmKnownDistance(t *testing.T) {
	// New York to Los Angeles, roughly 3936 km.
	d := HaversineKm(40.7128, -74.0060, 34.0522, -118.2437)
	assert.InDelta(t, 3936, d, 50)
}

func TestBoundingBoxEnclosesRadius(t *testing.T) {
	lat, lng := 37.5665, 126.9780
	minLat, maxLat, minLng, maxLng := boundingBox(lat, lng, 10)

	assert.Less(t, minLat, lat)
	assert.Greater(t, maxLat, lat)
	assert.Less(t, minLng, lng)
	assert.Greater(t, maxLng, lng)

	// A point just inside the radius must fall inside the box.
	assert.GreaterOrEqual(t, lat+9.0/111.0, minLat)
	assert.LessOrEqual(t, lat+9.0/111.0, maxLat)
}

func TestBoundingBoxNearPoles(t *testing.T) {
	_, _, minLng, maxLng := boundingBox(90, 0, 10)
	assert.LessOrEqual(t, maxLng-minLng, 360.0)
}

func TestRankByDistance(t *testing.T) {
	center := Facility{Name: "center", Latitude: 37.5665, Longitude: 126.9780}
	near := Facility{Name: "near", Latitude: 37.58, Longitude: 126.98}
	far := Facility{Name: "far", Latitude: 37.70, Longitude: 127.10}
	outside := Facility{Name: "outside", Latitude: 38.5, Longitude: 128.0}

	ranked := rankByDistance([]Facility{far, outside, near, center}, 37.5665, 126.9780, 25)

	require.Len(t, ranked, 3)
	assert.Equal(t, "center", ranked[0].Name)
	assert.Equal(t, "near", ranked[1].Name)
	assert.Equal(t, "far", ranked[2].Name)
	for _, r := range ranked {
		assert.LessOrEqual(t, r.DistanceKm, 25.0)
	}
}

func TestRankByDistanceEmpty(t *testing.T) {
	ranked := rankByDistance(nil, 0, 0, 10)
	assert.NotNil(t, ranked)
	assert.Empty(t, ranked)
}
