package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScore_HigherRatingWins(t *testing.T) {
	now := time.Now()

	high := Score(5, now, now, 0, 0, Origin{})
	low := Score(2, now, now, 0, 0, Origin{})

	assert.Greater(t, high, low)
}

func TestScore_RecencyDecays(t *testing.T) {
	now := time.Now()

	fresh := Score(4, now, now, 0, 0, Origin{})
	stale := Score(4, now.Add(-60*24*time.Hour), now, 0, 0, Origin{})

	assert.Greater(t, fresh, stale)
}

func TestScore_FutureTimestampClampedToNow(t *testing.T) {
	now := time.Now()

	future := Score(4, now.Add(time.Hour), now, 0, 0, Origin{})
	current := Score(4, now, now, 0, 0, Origin{})

	assert.InDelta(t, current, future, 1e-9)
}

func TestScore_CloserBusinessWins(t *testing.T) {
	now := time.Now()
	origin := Origin{Latitude: 52.52, Longitude: 13.405} // Berlin

	near := Score(4, now, now, 52.53, 13.41, origin)
	far := Score(4, now, now, 48.137, 11.575, origin) // Munich

	assert.Greater(t, near, far)
}

func TestScore_ZeroOriginRedistributesDistanceWeight(t *testing.T) {
	now := time.Now()

	// With no origin a perfect fresh result still reaches the full score.
	got := Score(5, now, now, 52.52, 13.405, Origin{})

	assert.InDelta(t, 1.0, got, 1e-9)
}

func TestScore_BoundedToUnitInterval(t *testing.T) {
	now := time.Now()

	got := Score(99, now.Add(2*time.Hour), now, 0, 0, Origin{Latitude: 1, Longitude: 1})
	assert.LessOrEqual(t, got, 1.0)
	assert.GreaterOrEqual(t, got, 0.0)

	got = Score(-3, now.Add(-1000*24*time.Hour), now, 80, 170, Origin{Latitude: -80, Longitude: -170})
	assert.LessOrEqual(t, got, 1.0)
	assert.GreaterOrEqual(t, got, 0.0)
}

func TestHaversineKm_KnownDistance(t *testing.T) {
	// Berlin to Munich is roughly 504 km great-circle.
	km := haversineKm(52.52, 13.405, 48.137, 11.575)

	assert.InDelta(t, 504, km, 5)
}
