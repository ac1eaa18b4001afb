package services

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"run-tracker/logger"
	"run-tracker/models"
	"run-tracker/store"

	"github.com/google/uuid"
)

// CollectRadiusMeters is the inclusive pick-up radius around an artifact.
const CollectRadiusMeters = 100.0

// bandDegrees is the latitude band height of the item index. One band is
// wider than CollectRadiusMeters everywhere on the ellipsoid, so a match can
// only sit in the sample's band or a neighbour.
const bandDegrees = 0.01

// itemIndex buckets item points by latitude band.
type itemIndex struct {
	mu      sync.RWMutex
	bands   map[int][]models.ItemPoint
	builtAt time.Time
}

func bandOf(lat float64) int {
	return int(math.Floor(lat / bandDegrees))
}

func (ix *itemIndex) replace(points []models.ItemPoint) {
	bands := make(map[int][]models.ItemPoint)
	for _, p := range points {
		b := bandOf(p.Latitude)
		bands[b] = append(bands[b], p)
	}
	ix.mu.Lock()
	ix.bands = bands
	ix.builtAt = time.Now()
	ix.mu.Unlock()
}

func (ix *itemIndex) near(lat float64) []models.ItemPoint {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	b := bandOf(lat)
	var out []models.ItemPoint
	for d := -1; d <= 1; d++ {
		out = append(out, ix.bands[b+d]...)
	}
	return out
}

// ArtifactService finds collectible items near a reported point and adds
// them to the athlete's collection.
//
// Without an index every call scans the whole catalogue (id and coordinates
// only). That is fine for a small catalogue; EnableIndex swaps the scan for
// a latitude-band lookup with the same radius.
type ArtifactService struct {
	Store *store.Store
	index *itemIndex
}

func NewArtifactService(st *store.Store) *ArtifactService {
	return &ArtifactService{Store: st}
}

// WithStore returns a copy bound to st that shares the index.
func (s *ArtifactService) WithStore(st *store.Store) *ArtifactService {
	return &ArtifactService{Store: st, index: s.index}
}

// EnableIndex builds the latitude-band index from the current catalogue.
func (s *ArtifactService) EnableIndex(ctx context.Context) error {
	if s.index == nil {
		s.index = &itemIndex{}
	}
	return s.RebuildIndex(ctx)
}

// RebuildIndex reloads item points into the index. No-op without an index.
func (s *ArtifactService) RebuildIndex(ctx context.Context) error {
	if s.index == nil {
		return nil
	}
	points, err := s.Store.ItemPoints(ctx)
	if err != nil {
		return fmt.Errorf("failed to load item points: %w", err)
	}
	s.index.replace(points)
	return nil
}

func (s *ArtifactService) candidates(ctx context.Context, lat float64) ([]models.ItemPoint, error) {
	if s.index != nil {
		return s.index.near(lat), nil
	}
	return s.Store.ItemPoints(ctx)
}

// Collect adds every item within CollectRadiusMeters (inclusive) of the
// point to the athlete's collection and returns their ids. Re-collecting an
// item is a no-op.
func (s *ArtifactService) Collect(ctx context.Context, athleteID uint, lat, lon float64) ([]uint, error) {
	points, err := s.candidates(ctx, lat)
	if err != nil {
		return nil, err
	}
	var hits []uint
	for _, p := range points {
		if DistanceMeters(lat, lon, p.Latitude, p.Longitude) <= CollectRadiusMeters {
			hits = append(hits, p.ID)
		}
	}
	if err := s.Store.AddCollectedItems(ctx, athleteID, hits); err != nil {
		return nil, fmt.Errorf("failed to collect items for athlete %d: %w", athleteID, err)
	}
	return hits, nil
}

// ItemInput is a new catalogue entry.
type ItemInput struct {
	Name      string
	UID       string
	Latitude  float64
	Longitude float64
	Picture   string
	Value     *int
}

// CreateItem validates and stores a catalogue entry, generating a UID when
// none is given.
func (s *ArtifactService) CreateItem(ctx context.Context, in ItemInput) (*models.CollectibleItem, error) {
	var verr *ValidationError
	if in.Name == "" {
		verr = NewValidationError("name", "name is required")
	}
	if verr = checkCoordinates(verr, in.Latitude, in.Longitude); verr != nil {
		return nil, verr
	}
	if in.UID == "" {
		in.UID = uuid.NewString()
	}
	item := &models.CollectibleItem{
		Name:      in.Name,
		UID:       in.UID,
		Latitude:  in.Latitude,
		Longitude: in.Longitude,
		Picture:   in.Picture,
		Value:     in.Value,
	}
	if err := s.Store.CreateItem(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create collectible item: %w", err)
	}
	if err := s.RebuildIndex(ctx); err != nil {
		logger.Warn.Printf("⚠️ [ARTIFACT] index rebuild after create failed: %v", err)
	}
	return item, nil
}

func (s *ArtifactService) GetItem(ctx context.Context, id uint) (*models.CollectibleItem, error) {
	return s.Store.GetItem(ctx, id)
}

func (s *ArtifactService) ListItems(ctx context.Context) ([]models.CollectibleItem, error) {
	return s.Store.ListItems(ctx)
}
