package services

import (
	"context"
	"math"
	"sort"
	"time"

	"run-tracker/models"
	"run-tracker/store"
)

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// SortByCaptureTime orders positions by capture timestamp. Untimed samples
// go last; ties keep insertion (id) order.
func SortByCaptureTime(positions []models.Position) {
	sort.SliceStable(positions, func(i, j int) bool {
		a, b := positions[i].DateTime, positions[j].DateTime
		switch {
		case a == nil && b == nil:
			return positions[i].ID < positions[j].ID
		case a == nil:
			return false
		case b == nil:
			return true
		case a.Equal(*b):
			return positions[i].ID < positions[j].ID
		default:
			return a.Before(*b)
		}
	})
}

func pathKm(positions []models.Position) float64 {
	total := 0.0
	for i := 0; i+1 < len(positions); i++ {
		a, b := positions[i], positions[i+1]
		total += DistanceKm(a.Latitude, a.Longitude, b.Latitude, b.Longitude)
	}
	return total
}

// RouteDistance sums the legs between consecutive positions, in km rounded
// to 3 decimals. The slice must already be in capture order.
func RouteDistance(positions []models.Position) float64 {
	if len(positions) < 2 {
		return 0
	}
	return round(pathKm(positions), 3)
}

// ElapsedSeconds is the whole number of seconds between the earliest and
// latest timestamps.
func ElapsedSeconds(positions []models.Position) int {
	var first, last *time.Time
	n := 0
	for i := range positions {
		ts := positions[i].DateTime
		if ts == nil {
			continue
		}
		n++
		if first == nil || ts.Before(*first) {
			first = ts
		}
		if last == nil || ts.After(*last) {
			last = ts
		}
	}
	if n < 2 {
		return 0
	}
	return secondsBetween(*first, *last)
}

func secondsBetween(from, to time.Time) int {
	d := to.Sub(from)
	if d <= 0 {
		return 0
	}
	return int(d / time.Second)
}

// LastTimed returns the latest timestamped sample of positions already in
// capture order, or nil.
func LastTimed(positions []models.Position) *models.Position {
	for i := len(positions) - 1; i >= 0; i-- {
		if positions[i].DateTime != nil {
			return &positions[i]
		}
	}
	return nil
}

// InstantSpeed is meters per second from prev to the new point, rounded to
// 2 decimals. It is 0 without a timed previous sample or when time did not
// move forward.
func InstantSpeed(prev *models.Position, at *time.Time, lat, lon float64) float64 {
	if prev == nil || prev.DateTime == nil || at == nil {
		return 0
	}
	dt := at.Sub(*prev.DateTime).Seconds()
	if dt <= 0 {
		return 0
	}
	meters := DistanceMeters(prev.Latitude, prev.Longitude, lat, lon)
	return round(meters/dt, 2)
}

// CumulativeDistance is the stored route plus the leg to the new point, in
// km rounded to 2 decimals. stored must be in capture order.
func CumulativeDistance(stored []models.Position, lat, lon float64) float64 {
	if len(stored) == 0 {
		return 0
	}
	last := stored[len(stored)-1]
	total := pathKm(stored) + DistanceKm(last.Latitude, last.Longitude, lat, lon)
	return round(total, 2)
}

// AverageSpeed is the mean of the stored speed values.
func AverageSpeed(positions []models.Position) float64 {
	if len(positions) == 0 {
		return 0
	}
	sum := 0.0
	for _, p := range positions {
		sum += p.Speed
	}
	return sum / float64(len(positions))
}

// MetricsService evaluates the metrics against a run's stored positions.
type MetricsService struct {
	Store *store.Store
}

func NewMetricsService(st *store.Store) *MetricsService {
	return &MetricsService{Store: st}
}

// OrderedPositions loads every position of the run in capture order.
func (s *MetricsService) OrderedPositions(ctx context.Context, runID uint) ([]models.Position, error) {
	positions, err := s.Store.RunPositions(ctx, runID)
	if err != nil {
		return nil, err
	}
	SortByCaptureTime(positions)
	return positions, nil
}
