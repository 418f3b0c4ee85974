package facility

import (
	"math"
	"sort"
)

const earthRadiusKm = 6371.0

// HaversineKm is the great-circle distance between two points in km.
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := radians(lat2 - lat1)
	dLng := radians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// boundingBox returns the lat/lng window that encloses a radius around a
// point; the exact circle is enforced afterwards by distance ranking.
func boundingBox(lat, lng, radiusKm float64) (minLat, maxLat, minLng, maxLng float64) {
	latDelta := radiusKm / 111.0
	lngDelta := radiusKm / (111.0 * math.Cos(radians(lat)))
	if math.IsNaN(lngDelta) || lngDelta > 180 || lngDelta < 0 {
		lngDelta = 180
	}
	return lat - latDelta, lat + latDelta, lng - lngDelta, lng + lngDelta
}

// rankByDistance filters rows to the radius and sorts nearest first.
func rankByDistance(rows []Facility, lat, lng, radiusKm float64) []FacilityWithDistance {
	result := make([]FacilityWithDistance, 0, len(rows))
	for _, f := range rows {
		d := HaversineKm(lat, lng, f.Latitude, f.Longitude)
		if d <= radiusKm {
			result = append(result, FacilityWithDistance{Facility: f, DistanceKm: round2(d)})
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].DistanceKm < result[j].DistanceKm
	})
	return result
}

type FacilityWithDistance struct {
	Facility
	DistanceKm float64 `json:"distance_km"`
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
