package store

import (
	"context"
	"fmt"

	"run-tracker/models"

	"gorm.io/gorm/clause"
)

func (s *Store) CreateAthlete(ctx context.Context, a *models.Athlete) error {
	return s.with(ctx).Create(a).Error
}

func (s *Store) GetAthlete(ctx context.Context, id uint) (*models.Athlete, error) {
	var a models.Athlete
	if err := s.with(ctx).First(&a, id).Error; err != nil {
		return nil, notFound(err, "athlete", id)
	}
	return &a, nil
}

// AthleteFilter narrows ListAthletes. Superusers are never listed.
type AthleteFilter struct {
	Type   string // "coach", "athlete" or "" for both
	Search string
	Order  string // "date_joined" or "-date_joined"
	Limit  int
	Offset int
}

func (s *Store) ListAthletes(ctx context.Context, f AthleteFilter) ([]models.Athlete, error) {
	q := s.with(ctx).Model(&models.Athlete{}).Where("is_superuser = ?", false)
	switch f.Type {
	case "coach":
		q = q.Where("is_coach = ?", true)
	case "athlete":
		q = q.Where("is_coach = ?", false)
	}
	if f.Search != "" {
		q = q.Where("search_key LIKE ?", "%"+models.FoldSearch(f.Search)+"%")
	}
	switch f.Order {
	case "date_joined":
		q = q.Order("date_joined ASC").Order("id ASC")
	case "-date_joined":
		q = q.Order("date_joined DESC").Order("id DESC")
	default:
		q = q.Order("id ASC")
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}
	var out []models.Athlete
	err := q.Find(&out).Error
	return out, err
}

// UpsertAthletes writes identity-service snapshots keyed on external_id.
func (s *Store) UpsertAthletes(ctx context.Context, athletes []models.Athlete) error {
	if len(athletes) == 0 {
		return nil
	}
	for i := range athletes {
		if athletes[i].ExternalID == nil {
			return fmt.Errorf("athlete %q has no external id", athletes[i].Username)
		}
	}
	return s.with(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "external_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"username", "first_name", "last_name", "is_coach", "is_superuser", "search_key",
		}),
	}).Create(&athletes).Error
}

func (s *Store) GetAthleteInfo(ctx context.Context, athleteID uint) (*models.AthleteInfo, error) {
	var info models.AthleteInfo
	err := s.with(ctx).
		Where(models.AthleteInfo{AthleteID: athleteID}).
		FirstOrCreate(&info).Error
	if err != nil {
		return nil, err
	}
	return &info, nil
}

func (s *Store) SaveAthleteInfo(ctx context.Context, info *models.AthleteInfo) error {
	return s.with(ctx).Save(info).Error
}

// Subscribe links an athlete to a coach. It reports false if the pair
// already existed.
func (s *Store) Subscribe(ctx context.Context, athleteID, coachID uint) (bool, error) {
	sub := models.Subscription{AthleteID: athleteID, CoachID: coachID}
	res := s.with(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "athlete_id"}, {Name: "coach_id"}},
		DoNothing: true,
	}).Create(&sub)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
