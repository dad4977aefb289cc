package generate

import (
	"math"
	"math/rand"
)

// EarthRadiusKM is the mean Earth radius used for coordinate jitter.
const EarthRadiusKM = 6371.0

// Coordinates returns a point at a uniformly random bearing and a distance
// drawn uniformly from [0, radiusKM] around the base point, using the
// spherical law of cosines. Results are not wrapped into ±90°/±180°, which is
// fine for regional test data.
func Coordinates(rng *rand.Rand, baseLat, baseLon, radiusKM float64) (float64, float64) {
	bearing := rng.Float64() * 2 * math.Pi
	angular := rng.Float64() * radiusKM / EarthRadiusKM

	lat1 := baseLat * math.Pi / 180
	lon1 := baseLon * math.Pi / 180

	lat2 := math.Asin(math.Sin(lat1)*math.Cos(angular) +
		math.Cos(lat1)*math.Sin(angular)*math.Cos(bearing))
	lon2 := lon1 + math.Atan2(
		math.Sin(bearing)*math.Sin(angular)*math.Cos(lat1),
		math.Cos(angular)-math.Sin(lat1)*math.Sin(lat2),
	)

	return lat2 * 180 / math.Pi, lon2 * 180 / math.Pi
}

// HaversineKM returns the great-circle distance between two points.
func HaversineKM(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	return 2 * EarthRadiusKM * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// round rounds v to the given number of decimal places.
func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
