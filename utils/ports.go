package utils

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"

	"shipproc/models"
)

const metersPerNauticalMile = 1852.0

// PortDistanceNm returns the great-circle distance between two
// coordinates in nautical miles.
func PortDistanceNm(lat1, lng1, lat2, lng2 float64) float64 {
	a := orb.Point{lng1, lat1}
	b := orb.Point{lng2, lat2}
	return geo.DistanceHaversine(a, b) / metersPerNauticalMile
}

// NearestPortDistanceNm returns the distance from the vendor's closest
// listed port to the delivery coordinates, in nautical miles. Returns
// nil when the vendor lists no ports. Informational only; never an
// input to scoring.
func NearestPortDistanceNm(vendor *models.Vendor, deliveryLat, deliveryLng float64) *float64 {
	if vendor == nil || len(vendor.PortCapabilities) == 0 {
		return nil
	}
	var best *float64
	for _, pc := range vendor.PortCapabilities {
		d := PortDistanceNm(pc.Latitude, pc.Longitude, deliveryLat, deliveryLng)
		if best == nil || d < *best {
			v := d
			best = &v
		}
	}
	return best
}

// ValidateCoordinate rejects out-of-range latitudes and longitudes.
func ValidateCoordinate(lat, lng float64) error {
	if lat < -90 || lat > 90 {
		return fmt.Errorf("latitude %.6f is out of valid range [-90, 90]", lat)
	}
	if lng < -180 || lng > 180 {
		return fmt.Errorf("longitude %.6f is out of valid range [-180, 180]", lng)
	}
	return nil
}
