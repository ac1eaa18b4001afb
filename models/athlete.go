package models

import (
	"strings"
	"time"

	"github.com/gosimple/unidecode"
	"golang.org/x/text/unicode/norm"
	"gorm.io/gorm"
)

// Athlete is a local snapshot of a user owned by the identity service.
// Populated by the athlete sync worker or created directly in development.
type Athlete struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	ExternalID  *string   `json:"external_id,omitempty" gorm:"uniqueIndex"`
	Username    string    `json:"username" gorm:"index;not null"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	IsCoach     bool      `json:"is_coach" gorm:"default:false;index"`
	IsSuperuser bool      `json:"-" gorm:"default:false"`
	DateJoined  time.Time `json:"date_joined" gorm:"autoCreateTime"`
	SearchKey   string    `json:"-" gorm:"index"`

	Items []CollectibleItem `json:"items,omitempty" gorm:"many2many:athlete_items"`
}

// BeforeSave keeps SearchKey in sync with the name fields.
func (a *Athlete) BeforeSave(tx *gorm.DB) error {
	a.SearchKey = FoldSearch(a.Username + " " + a.FirstName + " " + a.LastName)
	return nil
}

// FoldSearch lowercases and transliterates s so that "Пётр" matches "petr".
func FoldSearch(s string) string {
	return strings.ToLower(strings.TrimSpace(unidecode.Unidecode(norm.NFC.String(s))))
}

// AthleteItem is the collected-items relation. The composite primary key
// gives it set semantics.
type AthleteItem struct {
	AthleteID         uint      `gorm:"primaryKey;autoIncrement:false"`
	CollectibleItemID uint      `gorm:"primaryKey;autoIncrement:false"`
	CollectedAt       time.Time `gorm:"autoCreateTime"`
}

// AthleteInfo holds self-reported goals and weight (kg).
type AthleteInfo struct {
	AthleteID uint      `json:"user_id" gorm:"primaryKey;autoIncrement:false"`
	Goals     string    `json:"goals" gorm:"type:text"`
	Weight    *int      `json:"weight"`
	UpdatedAt time.Time `json:"-" gorm:"autoUpdateTime"`
}

// Subscription links an athlete to a coach.
type Subscription struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	AthleteID uint      `json:"athlete" gorm:"not null;uniqueIndex:idx_subscription_pair,priority:1"`
	CoachID   uint      `json:"coach" gorm:"not null;uniqueIndex:idx_subscription_pair,priority:2"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// All lists every model for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&Athlete{},
		&AthleteInfo{},
		&Subscription{},
		&CollectibleItem{},
		&AthleteItem{},
		&Run{},
		&Position{},
		&Challenge{},
	}
}
