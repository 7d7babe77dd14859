package util

import "math"

const earthRadiusKm = 6371.0

// CalculateDistance returns the haversine distance between two points in kilometers
func CalculateDistance(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := degToRad(lat2 - lat1)
	dLng := degToRad(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(degToRad(lat1))*math.Cos(degToRad(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// CalculateDistanceMeters returns the haversine distance between two points in meters
func CalculateDistanceMeters(lat1, lng1, lat2, lng2 float64) float64 {
	return CalculateDistance(lat1, lng1, lat2, lng2) * 1000
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}
