package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"run-tracker/models"
)

func TestDistanceMeters_KnownValues(t *testing.T) {
	// One degree along the equator is a/360 of the equatorial circumference.
	assert.InDelta(t, 111319.491, DistanceMeters(0, 0, 0, 1), 0.01)
	// 0.01° of latitude around 45°N.
	assert.InDelta(t, 1111.3, DistanceMeters(45.0, 45.0, 45.01, 45.0), 0.5)
	assert.InDelta(t, 1.1113, DistanceKm(45.0, 45.0, 45.01, 45.0), 0.0005)
}

func TestDistanceMeters_SamePointIsZero(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		lat := rapid.Float64Range(-90, 90).Draw(t, "lat")
		lon := rapid.Float64Range(-180, 180).Draw(t, "lon")
		if d := DistanceMeters(lat, lon, lat, lon); d != 0 {
			t.Fatalf("distance to self = %v", d)
		}
	})
}

func TestDistanceMeters_Symmetric(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		lat1 := rapid.Float64Range(-89, 89).Draw(t, "lat1")
		lon1 := rapid.Float64Range(-180, 180).Draw(t, "lon1")
		lat2 := rapid.Float64Range(-89, 89).Draw(t, "lat2")
		lon2 := rapid.Float64Range(-180, 180).Draw(t, "lon2")

		ab := DistanceMeters(lat1, lon1, lat2, lon2)
		ba := DistanceMeters(lat2, lon2, lat1, lon1)
		if ab < 0 {
			t.Fatalf("negative distance %v", ab)
		}
		if diff := ab - ba; diff > 1e-3 || diff < -1e-3 {
			t.Fatalf("d(a,b)=%v d(b,a)=%v", ab, ba)
		}
	})
}

func TestRouteDistance_ReversedRouteMatches(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(2, 12).Draw(t, "n")
		route := make([]models.Position, n)
		for i := range route {
			route[i] = models.Position{
				Latitude:  rapid.Float64Range(55.0, 56.0).Draw(t, "lat"),
				Longitude: rapid.Float64Range(37.0, 38.0).Draw(t, "lon"),
			}
		}
		reversed := make([]models.Position, n)
		for i := range route {
			reversed[n-1-i] = route[i]
		}

		// Per-leg symmetry holds to well under a millimetre; only the
		// final 3-decimal rounding can differ.
		if diff := RouteDistance(route) - RouteDistance(reversed); diff > 0.0015 || diff < -0.0015 {
			t.Fatalf("forward %v reversed %v", RouteDistance(route), RouteDistance(reversed))
		}
	})
}

func TestRouteDistance_ShortSequencesAreZero(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 1).Draw(t, "n")
		route := make([]models.Position, n)
		for i := range route {
			route[i] = models.Position{
				Latitude:  rapid.Float64Range(-90, 90).Draw(t, "lat"),
				Longitude: rapid.Float64Range(-180, 180).Draw(t, "lon"),
			}
		}
		if d := RouteDistance(route); d != 0 {
			t.Fatalf("route of %d positions = %v", n, d)
		}
	})
}
