package store

import (
	"context"

	"run-tracker/models"

	"gorm.io/gorm/clause"
)

// ItemPoints reads only id and coordinates of every collectible item.
func (s *Store) ItemPoints(ctx context.Context) ([]models.ItemPoint, error) {
	var points []models.ItemPoint
	err := s.with(ctx).Model(&models.CollectibleItem{}).
		Select("id", "latitude", "longitude").
		Find(&points).Error
	return points, err
}

// AddCollectedItems adds items to the athlete's collection. Items already
// collected are skipped.
func (s *Store) AddCollectedItems(ctx context.Context, athleteID uint, itemIDs []uint) error {
	if len(itemIDs) == 0 {
		return nil
	}
	rows := make([]models.AthleteItem, len(itemIDs))
	for i, id := range itemIDs {
		rows[i] = models.AthleteItem{AthleteID: athleteID, CollectibleItemID: id}
	}
	return s.with(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
}

func (s *Store) CollectedItems(ctx context.Context, athleteID uint) ([]models.CollectibleItem, error) {
	var items []models.CollectibleItem
	err := s.with(ctx).
		Joins("JOIN athlete_items ON athlete_items.collectible_item_id = collectible_items.id").
		Where("athlete_items.athlete_id = ?", athleteID).
		Order("collectible_items.id ASC").
		Find(&items).Error
	return items, err
}

func (s *Store) CreateItem(ctx context.Context, item *models.CollectibleItem) error {
	return s.with(ctx).Create(item).Error
}

func (s *Store) GetItem(ctx context.Context, id uint) (*models.CollectibleItem, error) {
	var item models.CollectibleItem
	if err := s.with(ctx).First(&item, id).Error; err != nil {
		return nil, notFound(err, "collectible item", id)
	}
	return &item, nil
}

func (s *Store) ListItems(ctx context.Context) ([]models.CollectibleItem, error) {
	var items []models.CollectibleItem
	err := s.with(ctx).Order("id ASC").Find(&items).Error
	return items, err
}
