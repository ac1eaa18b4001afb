package models

import "time"

// Achievement labels. The set is closed; every label is produced by exactly
// one rule of the challenge evaluator.
const (
	ChallengeTenRuns      = "Сделай 10 Забегов!"
	ChallengeFiftyKm      = "Пробеги 50 километров!"
	ChallengeTwoKmTenMins = "2 километра за 10 минут!"
)

// Challenge is an achievement granted at most once per athlete and label.
type Challenge struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	AthleteID uint      `json:"athlete" gorm:"not null;uniqueIndex:idx_challenge_athlete_name,priority:1"`
	FullName  string    `json:"full_name" gorm:"not null;uniqueIndex:idx_challenge_athlete_name,priority:2"`
	Code      string    `json:"code" gorm:"type:varchar(128)"` // slug of FullName
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}
