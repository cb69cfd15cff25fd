package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vivaleve/internal/app"
	"vivaleve/internal/domain"
)

func TestAchievementBoard(t *testing.T) {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	weights := []domain.WeightEntry{
		{ID: "a", Weight: 86, Date: day},
		{ID: "b", Weight: 83, Date: day.AddDate(0, 0, 7)},
		{ID: "c", Weight: 81, Date: day.AddDate(0, 0, 14)},
	}
	held := []domain.Achievement{
		{ID: "x", Type: domain.TypeTransformation, Title: "Transformação", Points: 200},
	}
	svc := app.NewAchievementService(
		&mockWeightRepo{listFn: func(context.Context, int64) ([]domain.WeightEntry, error) { return weights, nil }},
		&mockAchievementRepo{listFn: func(context.Context, int64) ([]domain.Achievement, error) { return held, nil }},
	)

	b, err := svc.Board(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, b.Unlocked, 1)
	assert.Equal(t, "Perder 5kg", b.Unlocked[0].Requirement)
	assert.Equal(t, 200, b.TotalPoints)
	assert.InDelta(t, 20, b.MasterProgress, 1e-9)

	// Every transformation-typed definition is hidden once one is held.
	var locked []string
	for _, l := range b.Locked {
		assert.NotEqual(t, domain.TypeTransformation, l.Type)
		locked = append(locked, l.ID)
	}
	assert.Equal(t, []string{"discipline", "consistency", "explorer"}, locked)
	assert.InDelta(t, 75, b.Locked[0].Progress, 1e-9)

	assert.Equal(t, app.BoardStats{WeightsCount: 3, AchievementsCount: 1, KgLost: 5}, b.Stats)
}

func TestAchievementBoard_MasterProgressClamped(t *testing.T) {
	held := []domain.Achievement{
		{Type: domain.TypeDiscipline, Points: 600},
		{Type: domain.TypeTransformation, Points: 600},
	}
	svc := app.NewAchievementService(
		&mockWeightRepo{},
		&mockAchievementRepo{listFn: func(context.Context, int64) ([]domain.Achievement, error) { return held, nil }},
	)
	b, err := svc.Board(context.Background(), 1)
	require.NoError(t, err)
	assert.InDelta(t, 100, b.MasterProgress, 1e-9)
	assert.Zero(t, b.Stats.KgLost)
}

func TestAchievementBoard_RepoError(t *testing.T) {
	svc := app.NewAchievementService(
		&mockWeightRepo{listFn: func(context.Context, int64) ([]domain.WeightEntry, error) { return nil, errors.New("boom") }},
		&mockAchievementRepo{},
	)
	_, err := svc.Board(context.Background(), 1)
	assert.Error(t, err)
}
