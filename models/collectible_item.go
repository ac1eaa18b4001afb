package models

// CollectibleItem is a static geolocated artifact. The run core only reads it.
type CollectibleItem struct {
	ID        uint    `json:"id" gorm:"primaryKey"`
	Name      string  `json:"name" gorm:"size:255;not null"`
	UID       string  `json:"uid" gorm:"size:100;uniqueIndex;not null"`
	Latitude  float64 `json:"latitude" gorm:"not null;index:idx_item_coords,priority:1"`
	Longitude float64 `json:"longitude" gorm:"not null;index:idx_item_coords,priority:2"`
	Picture   string  `json:"picture" gorm:"type:text"`
	Value     *int    `json:"value"`
}

// ItemPoint is the minimal projection the proximity checker reads.
type ItemPoint struct {
	ID        uint
	Latitude  float64
	Longitude float64
}
