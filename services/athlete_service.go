package services

import (
	"context"
	"fmt"

	"run-tracker/models"
	"run-tracker/store"
)

// Weight bounds for athlete info, exclusive, in kg.
const (
	minWeight = 0
	maxWeight = 900
)

type AthleteService struct {
	Store *store.Store
}

func NewAthleteService(st *store.Store) *AthleteService {
	return &AthleteService{Store: st}
}

// AthleteDetail is an athlete with the projections the profile view needs.
type AthleteDetail struct {
	models.Athlete
	RunsFinished int64                    `json:"runs_finished"`
	Items        []models.CollectibleItem `json:"items"`
}

func (s *AthleteService) Create(ctx context.Context, a *models.Athlete) error {
	if a.Username == "" {
		return NewValidationError("username", "username is required")
	}
	return s.Store.CreateAthlete(ctx, a)
}

func (s *AthleteService) List(ctx context.Context, f store.AthleteFilter) ([]models.Athlete, error) {
	return s.Store.ListAthletes(ctx, f)
}

func (s *AthleteService) Detail(ctx context.Context, id uint) (*AthleteDetail, error) {
	a, err := s.Store.GetAthlete(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.IsSuperuser {
		return nil, fmt.Errorf("athlete %d: %w", id, ErrNotFound)
	}
	finished, err := s.Store.CountFinishedRuns(ctx, id)
	if err != nil {
		return nil, err
	}
	items, err := s.Store.CollectedItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.CollectibleItem{}
	}
	return &AthleteDetail{Athlete: *a, RunsFinished: finished, Items: items}, nil
}

func (s *AthleteService) Info(ctx context.Context, athleteID uint) (*models.AthleteInfo, error) {
	if _, err := s.Store.GetAthlete(ctx, athleteID); err != nil {
		return nil, err
	}
	return s.Store.GetAthleteInfo(ctx, athleteID)
}

// UpdateInfo replaces goals and weight. Weight must lie strictly between 0
// and 900.
func (s *AthleteService) UpdateInfo(ctx context.Context, athleteID uint, goals *string, weight *int) (*models.AthleteInfo, error) {
	if weight != nil && (*weight <= minWeight || *weight >= maxWeight) {
		return nil, NewValidationError("weight", fmt.Sprintf("weight must be between %d and %d", minWeight+1, maxWeight-1))
	}
	info, err := s.Info(ctx, athleteID)
	if err != nil {
		return nil, err
	}
	if goals != nil {
		info.Goals = *goals
	}
	if weight != nil {
		info.Weight = weight
	}
	if err := s.Store.SaveAthleteInfo(ctx, info); err != nil {
		return nil, fmt.Errorf("failed to save athlete info: %w", err)
	}
	return info, nil
}

// SubscribeToCoach links an athlete to a coach. The target must be a coach,
// the subscriber must not be one, and each pair is stored once.
func (s *AthleteService) SubscribeToCoach(ctx context.Context, coachID, athleteID uint) error {
	coach, err := s.Store.GetAthlete(ctx, coachID)
	if err != nil {
		return err
	}
	if !coach.IsCoach {
		return NewValidationError("coach", fmt.Sprintf("user %d is not a coach", coachID))
	}
	if athleteID == 0 {
		return NewValidationError("athlete", "athlete is required")
	}
	athlete, err := s.Store.GetAthlete(ctx, athleteID)
	if err != nil {
		if IsNotFound(err) {
			return NewValidationError("athlete", fmt.Sprintf("athlete %d does not exist", athleteID))
		}
		return err
	}
	if athlete.IsCoach {
		return NewValidationError("athlete", "coaches cannot subscribe to coaches")
	}
	created, err := s.Store.Subscribe(ctx, athleteID, coachID)
	if err != nil {
		return fmt.Errorf("failed to subscribe: %w", err)
	}
	if !created {
		return NewValidationError("athlete", "already subscribed to this coach")
	}
	return nil
}
