package store

import (
	"context"
	"fmt"

	"run-tracker/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (s *Store) CreateRun(ctx context.Context, run *models.Run) error {
	if run.Status == "" {
		run.Status = models.RunStatusInit
	}
	return s.with(ctx).Create(run).Error
}

func (s *Store) GetRun(ctx context.Context, id uint) (*models.Run, error) {
	var run models.Run
	if err := s.with(ctx).First(&run, id).Error; err != nil {
		return nil, notFound(err, "run", id)
	}
	return &run, nil
}

// LockRun reads a run and, on databases that support it, holds a row lock
// until the surrounding transaction ends.
func (s *Store) LockRun(ctx context.Context, id uint) (*models.Run, error) {
	var run models.Run
	err := s.with(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).First(&run, id).Error
	if err != nil {
		return nil, notFound(err, "run", id)
	}
	return &run, nil
}

// RunFilter narrows ListRuns. Zero values mean "any".
type RunFilter struct {
	Status    models.RunStatus
	AthleteID uint
	Order     string // "created_at" or "-created_at"
	Limit     int
	Offset    int
}

func (s *Store) ListRuns(ctx context.Context, f RunFilter) ([]models.Run, error) {
	q := s.with(ctx).Model(&models.Run{}).Preload("Athlete")
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.AthleteID != 0 {
		q = q.Where("athlete_id = ?", f.AthleteID)
	}
	switch f.Order {
	case "created_at":
		q = q.Order("created_at ASC").Order("id ASC")
	default:
		q = q.Order("created_at DESC").Order("id DESC")
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}
	var runs []models.Run
	if err := q.Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}

// DeleteRun removes a run together with its positions.
func (s *Store) DeleteRun(ctx context.Context, id uint) error {
	return s.with(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("run_id = ?", id).Delete(&models.Position{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Run{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("run %d: %w", id, ErrNotFound)
		}
		return nil
	})
}

// TransitionRun moves a run from one status to another with a single
// conditional UPDATE. It reports false when the run was not in `from`,
// which is how concurrent transitions lose the race.
func (s *Store) TransitionRun(ctx context.Context, id uint, from, to models.RunStatus) (bool, error) {
	res := s.with(ctx).Model(&models.Run{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (s *Store) UpdateRunMetrics(ctx context.Context, id uint, distanceKm float64, runTimeSeconds int, speed float64) error {
	return s.with(ctx).Model(&models.Run{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"distance":         distanceKm,
			"run_time_seconds": runTimeSeconds,
			"speed":            speed,
		}).Error
}

// CountFinishedRuns returns how many finished runs the athlete has.
func (s *Store) CountFinishedRuns(ctx context.Context, athleteID uint) (int64, error) {
	var n int64
	err := s.with(ctx).Model(&models.Run{}).
		Where("athlete_id = ? AND status = ?", athleteID, models.RunStatusFinished).
		Count(&n).Error
	return n, err
}

// SumFinishedDistance totals distance (km) over the athlete's finished runs.
func (s *Store) SumFinishedDistance(ctx context.Context, athleteID uint) (float64, error) {
	var total float64
	err := s.with(ctx).Model(&models.Run{}).
		Select("COALESCE(SUM(distance), 0)").
		Where("athlete_id = ? AND status = ?", athleteID, models.RunStatusFinished).
		Scan(&total).Error
	return total, err
}
