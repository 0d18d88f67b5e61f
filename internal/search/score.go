package search

import (
	"math"
	"time"
)

// Relevance weights. Rating dominates; recency and proximity break ties.
const (
	ratingWeight   = 0.5
	recencyWeight  = 0.3
	distanceWeight = 0.2

	maxRating       = 5.0
	recencyHalfLife = 14 * 24 * time.Hour
	distanceScaleKm = 5.0
	earthRadiusKm   = 6371.0
)

// Origin is the searcher's location. A zero Origin disables the distance term.
type Origin struct {
	Latitude  float64
	Longitude float64
}

func (o Origin) isZero() bool {
	return o.Latitude == 0 && o.Longitude == 0
}

// Score combines rating, recency, and proximity into a single relevance value
// in [0, 1]. Each term is normalized before weighting; with a zero Origin the
// distance weight is redistributed to the rating term.
func Score(rating float64, publishedAt time.Time, now time.Time, businessLat, businessLng float64, origin Origin) float64 {
	ratingTerm := math.Max(0, math.Min(rating, maxRating)) / maxRating

	age := now.Sub(publishedAt)
	if age < 0 {
		age = 0
	}
	recencyTerm := math.Exp2(-float64(age) / float64(recencyHalfLife))

	if origin.isZero() {
		return (ratingWeight+distanceWeight)*ratingTerm + recencyWeight*recencyTerm
	}

	km := haversineKm(origin.Latitude, origin.Longitude, businessLat, businessLng)
	distanceTerm := 1.0 / (1.0 + km/distanceScaleKm)

	return ratingWeight*ratingTerm + recencyWeight*recencyTerm + distanceWeight*distanceTerm
}

func haversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	rad := func(deg float64) float64 { return deg * math.Pi / 180 }

	dLat := rad(lat2 - lat1)
	dLng := rad(lng2 - lng1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rad(lat1))*math.Cos(rad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
