package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"run-tracker/models"
)

func challengeNames(t *testing.T, svc *ChallengeService, athleteID uint) []string {
	t.Helper()
	list, err := svc.List(context.Background(), athleteID)
	require.NoError(t, err)
	names := make([]string, len(list))
	for i, ch := range list {
		names[i] = ch.FullName
	}
	return names
}

func TestChallenge_TenRunsIsExact(t *testing.T) {
	for _, tt := range []struct {
		finished int
		want     bool
	}{
		{9, false},
		{10, true},
		{11, false},
	} {
		st := newTestStore(t)
		svc := NewChallengeService(st)
		athlete := seedAthlete(t, st, "runner", false)
		for i := 0; i < tt.finished; i++ {
			seedRun(t, st, athlete.ID, models.RunStatusFinished, 0.5)
		}

		_, err := svc.Evaluate(context.Background(), athlete.ID, nil)
		require.NoError(t, err)
		if tt.want {
			assert.Contains(t, challengeNames(t, svc, athlete.ID), models.ChallengeTenRuns, "finished=%d", tt.finished)
		} else {
			assert.NotContains(t, challengeNames(t, svc, athlete.ID), models.ChallengeTenRuns, "finished=%d", tt.finished)
		}
	}
}

func TestChallenge_UnfinishedRunsDoNotCount(t *testing.T) {
	st := newTestStore(t)
	svc := NewChallengeService(st)
	athlete := seedAthlete(t, st, "runner", false)
	for i := 0; i < 9; i++ {
		seedRun(t, st, athlete.ID, models.RunStatusFinished, 0)
	}
	seedRun(t, st, athlete.ID, models.RunStatusInProgress, 40)
	seedRun(t, st, athlete.ID, models.RunStatusInit, 40)

	granted, err := svc.Evaluate(context.Background(), athlete.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, granted)
}

func TestChallenge_FiftyKilometres(t *testing.T) {
	for _, tt := range []struct {
		name      string
		distances []float64
		want      bool
	}{
		{"exactly 50", []float64{25, 25}, true},
		{"over 50", []float64{30, 30}, true},
		{"just under", []float64{25, 24.999}, false},
	} {
		t.Run(tt.name, func(t *testing.T) {
			st := newTestStore(t)
			svc := NewChallengeService(st)
			athlete := seedAthlete(t, st, "runner", false)
			for _, d := range tt.distances {
				seedRun(t, st, athlete.ID, models.RunStatusFinished, d)
			}

			_, err := svc.Evaluate(context.Background(), athlete.ID, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, contains(challengeNames(t, svc, athlete.ID), models.ChallengeFiftyKm))
		})
	}
}

func TestChallenge_TwoKmInTenMinutes(t *testing.T) {
	for _, tt := range []struct {
		name     string
		distance float64
		seconds  int
		want     bool
	}{
		{"boundary", 2.0, 600, true},
		{"one second over", 2.0, 601, false},
		{"too short", 1.999, 300, false},
		{"long and fast", 5.0, 540, true},
	} {
		t.Run(tt.name, func(t *testing.T) {
			st := newTestStore(t)
			svc := NewChallengeService(st)
			athlete := seedAthlete(t, st, "runner", false)
			run := &models.Run{AthleteID: athlete.ID, Distance: tt.distance, RunTimeSeconds: tt.seconds}

			_, err := svc.Evaluate(context.Background(), athlete.ID, run)
			require.NoError(t, err)
			assert.Equal(t, tt.want, contains(challengeNames(t, svc, athlete.ID), models.ChallengeTwoKmTenMins))
		})
	}
}

func TestChallenge_EvaluateIsIdempotent(t *testing.T) {
	st := newTestStore(t)
	svc := NewChallengeService(st)
	athlete := seedAthlete(t, st, "runner", false)
	for i := 0; i < 10; i++ {
		seedRun(t, st, athlete.ID, models.RunStatusFinished, 6)
	}
	run := &models.Run{AthleteID: athlete.ID, Distance: 6, RunTimeSeconds: 540}

	granted, err := svc.Evaluate(context.Background(), athlete.ID, run)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{models.ChallengeTenRuns, models.ChallengeFiftyKm, models.ChallengeTwoKmTenMins}, granted)

	granted, err = svc.Evaluate(context.Background(), athlete.ID, run)
	require.NoError(t, err)
	assert.Empty(t, granted)

	list, err := svc.List(context.Background(), athlete.ID)
	require.NoError(t, err)
	assert.Len(t, list, 3)
	for _, ch := range list {
		assert.NotEmpty(t, ch.Code)
		assert.False(t, strings.ContainsAny(ch.Code, " !"), "code %q", ch.Code)
	}
}

func TestChallenge_PerAthlete(t *testing.T) {
	st := newTestStore(t)
	svc := NewChallengeService(st)
	alice := seedAthlete(t, st, "alice", false)
	bob := seedAthlete(t, st, "bob", false)

	_, err := svc.Evaluate(context.Background(), alice.ID, &models.Run{AthleteID: alice.ID, Distance: 2, RunTimeSeconds: 500})
	require.NoError(t, err)

	assert.Len(t, challengeNames(t, svc, alice.ID), 1)
	assert.Empty(t, challengeNames(t, svc, bob.ID))
}

func TestRunService_TenthFinishGrantsChallenge(t *testing.T) {
	st := newTestStore(t)
	athlete := seedAthlete(t, st, "runner", false)
	for i := 0; i < 9; i++ {
		seedRun(t, st, athlete.ID, models.RunStatusFinished, 1)
	}
	run := seedRun(t, st, athlete.ID, models.RunStatusInProgress, 0)

	_, err := NewRunService(st).Finish(context.Background(), run.ID)
	require.NoError(t, err)
	assert.Contains(t, challengeNames(t, NewChallengeService(st), athlete.ID), models.ChallengeTenRuns)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
