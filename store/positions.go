package store

import (
	"context"

	"run-tracker/models"
)

func (s *Store) CreatePosition(ctx context.Context, p *models.Position) error {
	return s.with(ctx).Create(p).Error
}

// RunPositions materializes every position of a run. The order is only a
// hint; callers that depend on capture order sort the result themselves.
func (s *Store) RunPositions(ctx context.Context, runID uint) ([]models.Position, error) {
	var positions []models.Position
	err := s.with(ctx).
		Where("run_id = ?", runID).
		Order("date_time ASC").Order("id ASC").
		Find(&positions).Error
	return positions, err
}
