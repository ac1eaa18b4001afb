package services

import (
	"context"
	"fmt"

	"run-tracker/models"
	"run-tracker/store"

	"github.com/gosimple/slug"
)

// ChallengeRule decides whether an athlete has earned Name after run
// finished.
type ChallengeRule struct {
	Name  string
	Check func(ctx context.Context, st *store.Store, athleteID uint, run *models.Run) (bool, error)
}

// ChallengeRules is the closed rule set evaluated on every run completion.
var ChallengeRules = []ChallengeRule{
	{
		// Exactly ten: evaluation skipped at the boundary misses it for good.
		Name: models.ChallengeTenRuns,
		Check: func(ctx context.Context, st *store.Store, athleteID uint, _ *models.Run) (bool, error) {
			n, err := st.CountFinishedRuns(ctx, athleteID)
			return n == 10, err
		},
	},
	{
		Name: models.ChallengeFiftyKm,
		Check: func(ctx context.Context, st *store.Store, athleteID uint, _ *models.Run) (bool, error) {
			total, err := st.SumFinishedDistance(ctx, athleteID)
			return total >= 50, err
		},
	},
	{
		Name: models.ChallengeTwoKmTenMins,
		Check: func(_ context.Context, _ *store.Store, _ uint, run *models.Run) (bool, error) {
			if run == nil {
				return false, nil
			}
			return run.Distance >= 2 && float64(run.RunTimeSeconds)/60 <= 10, nil
		},
	},
}

type ChallengeService struct {
	Store *store.Store
}

func NewChallengeService(st *store.Store) *ChallengeService {
	return &ChallengeService{Store: st}
}

// Evaluate checks every rule for the athlete and grants what was earned.
// Already-held challenges are left untouched. It returns the names granted
// by this call.
func (s *ChallengeService) Evaluate(ctx context.Context, athleteID uint, run *models.Run) ([]string, error) {
	var granted []string
	for _, rule := range ChallengeRules {
		ok, err := rule.Check(ctx, s.Store, athleteID, run)
		if err != nil {
			return granted, fmt.Errorf("challenge rule %q: %w", rule.Name, err)
		}
		if !ok {
			continue
		}
		created, err := s.Grant(ctx, athleteID, rule.Name)
		if err != nil {
			return granted, err
		}
		if created {
			granted = append(granted, rule.Name)
		}
	}
	return granted, nil
}

// Grant is get-or-create on (athlete, name).
func (s *ChallengeService) Grant(ctx context.Context, athleteID uint, name string) (bool, error) {
	ch := &models.Challenge{
		AthleteID: athleteID,
		FullName:  name,
		Code:      slug.Make(name),
	}
	created, err := s.Store.GrantChallenge(ctx, ch)
	if err != nil {
		return false, fmt.Errorf("failed to grant %q to athlete %d: %w", name, athleteID, err)
	}
	return created, nil
}

func (s *ChallengeService) List(ctx context.Context, athleteID uint) ([]models.Challenge, error) {
	return s.Store.ListChallenges(ctx, athleteID)
}
