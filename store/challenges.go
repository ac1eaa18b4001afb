package store

import (
	"context"

	"run-tracker/models"

	"gorm.io/gorm/clause"
)

// GrantChallenge inserts the (athlete, name) achievement unless it already
// exists. It reports whether a new row was written; a duplicate is not an
// error.
func (s *Store) GrantChallenge(ctx context.Context, ch *models.Challenge) (bool, error) {
	res := s.with(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "athlete_id"}, {Name: "full_name"}},
		DoNothing: true,
	}).Create(ch)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (s *Store) ListChallenges(ctx context.Context, athleteID uint) ([]models.Challenge, error) {
	q := s.with(ctx).Order("id ASC")
	if athleteID != 0 {
		q = q.Where("athlete_id = ?", athleteID)
	}
	var out []models.Challenge
	err := q.Find(&out).Error
	return out, err
}
