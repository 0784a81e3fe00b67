package spatial

import (
	"math"

	"github.com/golang/geo/s2"
)

// Constants
const (
	EarthRadiusMeters = 6371000.0 // Earth's mean radius in meters

	// Approximate meters per degree of latitude, used for bounding boxes.
	metersPerDegreeLat = 111000.0
)

// HaversineDistance calculates the great-circle distance between two points
// in meters using the Haversine formula
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

// BoundingBox is a rectangular lat/lon region used as a cheap prefilter
// before exact distance checks. The box is a superset of the true radius;
// candidates must still be filtered by HaversineDistance.
type BoundingBox struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

// BoundingBoxAround computes the box covering radiusMeters around a center
// point, correcting the longitude span for latitude.
func BoundingBoxAround(lat, lon, radiusMeters float64) BoundingBox {
	latDelta := radiusMeters / metersPerDegreeLat

	metersPerDegreeLon := metersPerDegreeLat * math.Cos(lat*math.Pi/180)
	lonDelta := radiusMeters / metersPerDegreeLon

	return BoundingBox{
		MinLat: lat - latDelta,
		MaxLat: lat + latDelta,
		MinLon: lon - lonDelta,
		MaxLon: lon + lonDelta,
	}
}

// Contains reports whether the point lies inside the box.
func (b BoundingBox) Contains(lat, lon float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lon >= b.MinLon && lon <= b.MaxLon
}

// Bearing calculates the initial bearing (forward azimuth) from point 1 to point 2
// Returns bearing in degrees (0-360), where 0 is North, 90 is East, etc.
func Bearing(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	lonDiff := (lon2 - lon1) * math.Pi / 180

	y := math.Sin(lonDiff) * math.Cos(lat2Rad)
	x := math.Cos(lat1Rad)*math.Sin(lat2Rad) - math.Sin(lat1Rad)*math.Cos(lat2Rad)*math.Cos(lonDiff)
	bearing := math.Atan2(y, x)

	bearingDeg := bearing * 180 / math.Pi
	return math.Mod(bearingDeg+360, 360)
}

// OffsetMeters shifts a coordinate by the given north/east meter offsets,
// using the same flat-earth approximation as BoundingBoxAround.
func OffsetMeters(lat, lon, northMeters, eastMeters float64) (float64, float64) {
	newLat := lat + northMeters/metersPerDegreeLat
	newLon := lon + eastMeters/(metersPerDegreeLat*math.Abs(math.Cos(lat*math.Pi/180)))
	return newLat, newLon
}
