package services

import (
	"context"
	"fmt"

	"run-tracker/logger"
	"run-tracker/models"
	"run-tracker/store"
)

// RunService owns the run lifecycle: init → in_progress → finished.
type RunService struct {
	Store *store.Store
}

func NewRunService(st *store.Store) *RunService {
	return &RunService{Store: st}
}

// Create opens a new run in status init for an existing athlete.
func (s *RunService) Create(ctx context.Context, athleteID uint, comment *string) (*models.Run, error) {
	if athleteID == 0 {
		return nil, NewValidationError("athlete", "athlete is required")
	}
	if _, err := s.Store.GetAthlete(ctx, athleteID); err != nil {
		if IsNotFound(err) {
			return nil, NewValidationError("athlete", fmt.Sprintf("athlete %d does not exist", athleteID))
		}
		return nil, err
	}
	run := &models.Run{
		AthleteID: athleteID,
		Comment:   comment,
		Status:    models.RunStatusInit,
	}
	if err := s.Store.CreateRun(ctx, run); err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}
	return run, nil
}

// Start moves an init run to in_progress.
func (s *RunService) Start(ctx context.Context, runID uint) (*models.Run, error) {
	run, err := s.Store.GetRun(ctx, runID)
	if err != nil {
		return nil, err
	}
	if run.Status != models.RunStatusInit {
		return nil, fmt.Errorf("run %d is %s: %w", runID, run.Status, ErrInvalidTransition)
	}
	ok, err := s.Store.TransitionRun(ctx, runID, models.RunStatusInit, models.RunStatusInProgress)
	if err != nil {
		return nil, fmt.Errorf("failed to start run %d: %w", runID, err)
	}
	if !ok {
		return nil, fmt.Errorf("run %d was started concurrently: %w", runID, ErrInvalidTransition)
	}
	run.Status = models.RunStatusInProgress
	logger.Info.Printf("🏃 [RUN] run %d started (athlete=%d)", run.ID, run.AthleteID)
	return run, nil
}

// Finish moves an in_progress run to finished, stores its final metrics and
// evaluates the challenge rules, all in one transaction. A concurrent second
// Finish on the same run loses the compare-and-swap and gets
// ErrInvalidTransition.
func (s *RunService) Finish(ctx context.Context, runID uint) (*models.Run, error) {
	var finished *models.Run
	var granted []string

	err := s.Store.Transaction(ctx, func(tx *store.Store) error {
		run, err := tx.LockRun(ctx, runID)
		if err != nil {
			return err
		}
		if run.Status != models.RunStatusInProgress {
			return fmt.Errorf("run %d is %s: %w", runID, run.Status, ErrInvalidTransition)
		}
		ok, err := tx.TransitionRun(ctx, runID, models.RunStatusInProgress, models.RunStatusFinished)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("run %d was finished concurrently: %w", runID, ErrInvalidTransition)
		}
		run.Status = models.RunStatusFinished

		positions, err := NewMetricsService(tx).OrderedPositions(ctx, runID)
		if err != nil {
			return err
		}
		run.Distance = RouteDistance(positions)
		run.RunTimeSeconds = ElapsedSeconds(positions)
		run.Speed = round(AverageSpeed(positions), 2)
		if err := tx.UpdateRunMetrics(ctx, runID, run.Distance, run.RunTimeSeconds, run.Speed); err != nil {
			return err
		}

		granted, err = NewChallengeService(tx).Evaluate(ctx, run.AthleteID, run)
		if err != nil {
			return err
		}
		finished = run
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info.Printf("🏁 [RUN] run %d finished: distance=%.3fkm time=%ds speed=%.2fm/s",
		finished.ID, finished.Distance, finished.RunTimeSeconds, finished.Speed)
	for _, name := range granted {
		logger.Info.Printf("🎖️ [CHALLENGE] %q → athlete %d", name, finished.AthleteID)
	}
	return finished, nil
}

func (s *RunService) Get(ctx context.Context, runID uint) (*models.Run, error) {
	return s.Store.GetRun(ctx, runID)
}

func (s *RunService) List(ctx context.Context, f store.RunFilter) ([]models.Run, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, NewValidationError("status", fmt.Sprintf("unknown status %q", f.Status))
	}
	return s.Store.ListRuns(ctx, f)
}

func (s *RunService) Delete(ctx context.Context, runID uint) error {
	return s.Store.DeleteRun(ctx, runID)
}
