package models

import "time"

// Position is one GPS sample of a run. Rows are immutable once written.
type Position struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	RunID     uint       `json:"run" gorm:"not null;index:idx_position_run_time,priority:1"`
	Latitude  float64    `json:"latitude" gorm:"not null"`
	Longitude float64    `json:"longitude" gorm:"not null"`
	DateTime  *time.Time `json:"date_time" gorm:"index:idx_position_run_time,priority:2"`
	Speed     float64    `json:"speed" gorm:"default:0"`    // m/s from the previous timed sample
	Distance  float64    `json:"distance" gorm:"default:0"` // cumulative km up to this sample
	CreatedAt time.Time  `json:"-" gorm:"autoCreateTime"`
}
