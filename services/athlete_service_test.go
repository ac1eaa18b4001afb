package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"run-tracker/models"
	"run-tracker/store"
)

func intPtr(v int) *int { return &v }

func TestAthleteService_UpdateInfoWeightBounds(t *testing.T) {
	st := newTestStore(t)
	svc := NewAthleteService(st)
	athlete := seedAthlete(t, st, "runner", false)
	ctx := context.Background()

	for _, w := range []int{0, -5, 900, 1200} {
		_, err := svc.UpdateInfo(ctx, athlete.ID, nil, intPtr(w))
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, "weight=%d", w)
		assert.Contains(t, verr.Fields, "weight")
	}

	goals := "марафон до осени"
	info, err := svc.UpdateInfo(ctx, athlete.ID, &goals, intPtr(72))
	require.NoError(t, err)
	assert.Equal(t, goals, info.Goals)
	require.NotNil(t, info.Weight)
	assert.Equal(t, 72, *info.Weight)

	info, err = svc.UpdateInfo(ctx, athlete.ID, nil, intPtr(899))
	require.NoError(t, err)
	assert.Equal(t, goals, info.Goals)

	stored, err := svc.Info(ctx, athlete.ID)
	require.NoError(t, err)
	assert.Equal(t, 899, *stored.Weight)

	_, err = svc.Info(ctx, 4242)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAthleteService_SubscribeToCoach(t *testing.T) {
	st := newTestStore(t)
	svc := NewAthleteService(st)
	coach := seedAthlete(t, st, "coach", true)
	otherCoach := seedAthlete(t, st, "coach2", true)
	athlete := seedAthlete(t, st, "runner", false)
	ctx := context.Background()

	require.NoError(t, svc.SubscribeToCoach(ctx, coach.ID, athlete.ID))

	var verr *ValidationError
	assert.ErrorAs(t, svc.SubscribeToCoach(ctx, coach.ID, athlete.ID), &verr, "duplicate")
	assert.ErrorAs(t, svc.SubscribeToCoach(ctx, athlete.ID, athlete.ID), &verr, "target is not a coach")
	assert.ErrorAs(t, svc.SubscribeToCoach(ctx, coach.ID, otherCoach.ID), &verr, "coach subscribing")
	assert.ErrorAs(t, svc.SubscribeToCoach(ctx, coach.ID, 0), &verr, "missing athlete")
	assert.ErrorAs(t, svc.SubscribeToCoach(ctx, coach.ID, 9999), &verr, "unknown athlete")
	assert.ErrorIs(t, svc.SubscribeToCoach(ctx, 9999, athlete.ID), ErrNotFound)
}

func TestAthleteService_ListAndDetail(t *testing.T) {
	st := newTestStore(t)
	svc := NewAthleteService(st)
	ctx := context.Background()

	require.NoError(t, svc.Create(ctx, &models.Athlete{Username: "petr", FirstName: "Пётр", LastName: "Иванов"}))
	require.NoError(t, svc.Create(ctx, &models.Athlete{Username: "anna", FirstName: "Анна", IsCoach: true}))
	admin := &models.Athlete{Username: "root", IsSuperuser: true}
	require.NoError(t, svc.Create(ctx, admin))

	var verr *ValidationError
	assert.ErrorAs(t, svc.Create(ctx, &models.Athlete{}), &verr)

	all, err := svc.List(ctx, store.AthleteFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	coaches, err := svc.List(ctx, store.AthleteFilter{Type: "coach"})
	require.NoError(t, err)
	require.Len(t, coaches, 1)
	assert.Equal(t, "anna", coaches[0].Username)

	found, err := svc.List(ctx, store.AthleteFilter{Search: "petr"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "petr", found[0].Username)

	found, err = svc.List(ctx, store.AthleteFilter{Search: "ИВАНОВ"})
	require.NoError(t, err)
	assert.Len(t, found, 1)

	_, err = svc.Detail(ctx, admin.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	petr := found[0]
	seedRun(t, st, petr.ID, models.RunStatusFinished, 3)
	seedRun(t, st, petr.ID, models.RunStatusInProgress, 0)
	item, err := NewArtifactService(st).CreateItem(ctx, ItemInput{Name: "Значок", Latitude: 1, Longitude: 1})
	require.NoError(t, err)
	require.NoError(t, st.AddCollectedItems(ctx, petr.ID, []uint{item.ID}))

	detail, err := svc.Detail(ctx, petr.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, detail.RunsFinished)
	require.Len(t, detail.Items, 1)
	assert.Equal(t, item.ID, detail.Items[0].ID)
}
