package services

import (
	"context"
	"fmt"
	"time"

	"run-tracker/logger"
	"run-tracker/models"
	"run-tracker/store"
)

// PositionInput is one telemetry sample as received from a client.
type PositionInput struct {
	RunID     uint
	Latitude  float64
	Longitude float64
	DateTime  *time.Time
}

// PositionService ingests GPS samples for active runs.
type PositionService struct {
	Store     *store.Store
	Artifacts *ArtifactService
}

func NewPositionService(st *store.Store, artifacts *ArtifactService) *PositionService {
	return &PositionService{Store: st, Artifacts: artifacts}
}

// Ingest validates the sample, derives its speed and cumulative distance from
// the run's stored history, stores it and collects nearby artifacts for the
// run's athlete. Timestamps are stored in UTC.
func (s *PositionService) Ingest(ctx context.Context, in PositionInput) (*models.Position, error) {
	if err := ValidateCoordinates(in.Latitude, in.Longitude); err != nil {
		return nil, err
	}
	if in.RunID == 0 {
		return nil, NewValidationError("run", "run is required")
	}
	if in.DateTime != nil {
		utc := in.DateTime.UTC()
		in.DateTime = &utc
	}

	var pos *models.Position
	var collected []uint
	err := s.Store.Transaction(ctx, func(tx *store.Store) error {
		run, err := tx.LockRun(ctx, in.RunID)
		if IsNotFound(err) {
			verr := NewValidationError("run", fmt.Sprintf("run %d does not exist", in.RunID))
			verr.Cause = err
			return verr
		}
		if err != nil {
			return err
		}
		if run.Status != models.RunStatusInProgress {
			verr := NewValidationError("run", fmt.Sprintf("run %d is %s, positions are accepted only while in_progress", run.ID, run.Status))
			verr.Cause = ErrInvalidTransition
			return verr
		}

		history, err := NewMetricsService(tx).OrderedPositions(ctx, run.ID)
		if err != nil {
			return err
		}
		speed := InstantSpeed(LastTimed(history), in.DateTime, in.Latitude, in.Longitude)
		distance := CumulativeDistance(history, in.Latitude, in.Longitude)

		pos = &models.Position{
			RunID:     run.ID,
			Latitude:  in.Latitude,
			Longitude: in.Longitude,
			DateTime:  in.DateTime,
			Speed:     speed,
			Distance:  distance,
		}
		if err := tx.CreatePosition(ctx, pos); err != nil {
			return fmt.Errorf("failed to store position: %w", err)
		}

		collected, err = s.Artifacts.WithStore(tx).Collect(ctx, run.AthleteID, in.Latitude, in.Longitude)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Debug.Printf("📍 [POSITION] run=%d (%.6f, %.6f) speed=%.2f distance=%.2f",
		pos.RunID, pos.Latitude, pos.Longitude, pos.Speed, pos.Distance)
	if len(collected) > 0 {
		logger.Info.Printf("💎 [ARTIFACT] run %d collected items %v", pos.RunID, collected)
	}
	return pos, nil
}

// List returns a run's positions in capture order.
func (s *PositionService) List(ctx context.Context, runID uint) ([]models.Position, error) {
	if _, err := s.Store.GetRun(ctx, runID); err != nil {
		return nil, err
	}
	return NewMetricsService(s.Store).OrderedPositions(ctx, runID)
}
