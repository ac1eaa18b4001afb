package models

import (
	"time"
)

// RunStatus is the lifecycle state of a run. It only ever moves forward:
// init → in_progress → finished.
type RunStatus string

const (
	RunStatusInit       RunStatus = "init"
	RunStatusInProgress RunStatus = "in_progress"
	RunStatusFinished   RunStatus = "finished"
)

// Valid reports whether s is one of the known statuses.
func (s RunStatus) Valid() bool {
	switch s {
	case RunStatusInit, RunStatusInProgress, RunStatusFinished:
		return true
	}
	return false
}

// Run is a tracked exercise session owned by one athlete.
type Run struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	AthleteID      uint      `json:"athlete" gorm:"index;not null"`
	Athlete        *Athlete  `json:"athlete_data,omitempty" gorm:"foreignKey:AthleteID"`
	Comment        *string   `json:"comment"`
	Status         RunStatus `json:"status" gorm:"type:varchar(16);index;not null;default:'init'"`
	Distance       float64   `json:"distance" gorm:"default:0"`         // km
	RunTimeSeconds int       `json:"run_time_seconds" gorm:"default:0"` // seconds
	Speed          float64   `json:"speed" gorm:"default:0"`            // m/s, mean of position speeds
	CreatedAt      time.Time `json:"created_at" gorm:"autoCreateTime"`

	Positions []Position `json:"-" gorm:"foreignKey:RunID;constraint:OnDelete:CASCADE"`
}
