// handlers/timestamps.go
package handlers

import (
	"fmt"
	"strings"
	"time"

	"run-tracker/models"
)

// TimestampLayout is the wire format of every timestamp the API emits.
const TimestampLayout = "2006-01-02T15:04:05.000000"

// Accepted input layouts. Fractional seconds of any precision are parsed
// even though the layouts do not spell them out.
var inputLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
}

// parseTimestamp reads an ISO-8601 timestamp. Values without a zone offset
// are taken as UTC.
func parseTimestamp(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range inputLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, fmt.Errorf("unrecognised timestamp %q", raw)
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

func formatOptional(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTimestamp(*t)
	return &s
}

type positionView struct {
	ID        uint    `json:"id"`
	RunID     uint    `json:"run"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	DateTime  *string `json:"date_time"`
	Speed     float64 `json:"speed"`
	Distance  float64 `json:"distance"`
}

func newPositionView(p models.Position) positionView {
	return positionView{
		ID:        p.ID,
		RunID:     p.RunID,
		Latitude:  p.Latitude,
		Longitude: p.Longitude,
		DateTime:  formatOptional(p.DateTime),
		Speed:     p.Speed,
		Distance:  p.Distance,
	}
}

type athleteRef struct {
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type runView struct {
	ID             uint             `json:"id"`
	AthleteID      uint             `json:"athlete"`
	AthleteData    *athleteRef      `json:"athlete_data,omitempty"`
	Comment        *string          `json:"comment"`
	Status         models.RunStatus `json:"status"`
	Distance       float64          `json:"distance"`
	RunTimeSeconds int              `json:"run_time_seconds"`
	Speed          float64          `json:"speed"`
	CreatedAt      string           `json:"created_at"`
}

func newRunView(r models.Run) runView {
	v := runView{
		ID:             r.ID,
		AthleteID:      r.AthleteID,
		Comment:        r.Comment,
		Status:         r.Status,
		Distance:       r.Distance,
		RunTimeSeconds: r.RunTimeSeconds,
		Speed:          r.Speed,
		CreatedAt:      formatTimestamp(r.CreatedAt),
	}
	if r.Athlete != nil {
		v.AthleteData = &athleteRef{
			Username:  r.Athlete.Username,
			FirstName: r.Athlete.FirstName,
			LastName:  r.Athlete.LastName,
		}
	}
	return v
}
