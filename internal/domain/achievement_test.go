package domain_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vivaleve/internal/domain"
)

var day0 = time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)

func seqID() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("a%d", n)
	}
}

// entries builds a history with the given weights spaced gapDays apart.
func entries(gapDays int, weights ...float64) []domain.WeightEntry {
	out := make([]domain.WeightEntry, len(weights))
	for i, w := range weights {
		out[i] = domain.WeightEntry{
			ID:     fmt.Sprintf("w%d", i),
			Weight: w,
			Date:   day0.AddDate(0, 0, i*gapDays),
		}
	}
	return out
}

func types(items []domain.Achievement) []domain.AchievementType {
	out := make([]domain.AchievementType, len(items))
	for i, a := range items {
		out[i] = a.Type
	}
	return out
}

func TestCheckAchievements_Transformation(t *testing.T) {
	now := day0.AddDate(0, 1, 0)

	got := domain.CheckAchievements(entries(7, 80, 74), nil, now, seqID())
	require.Len(t, got, 1)
	assert.Equal(t, domain.TypeTransformation, got[0].Type)
	assert.Equal(t, "Transformação", got[0].Title)
	assert.Equal(t, 200, got[0].Points)
	assert.Equal(t, now, got[0].UnlockedAt)
	assert.Equal(t, "a1", got[0].ID)

	assert.Empty(t, domain.CheckAchievements(entries(7, 80, 76), nil, now, seqID()))
}

func TestCheckAchievements_TransformationUsesStoredOrder(t *testing.T) {
	// Dates descending but stored first->last loses 5kg.
	ws := []domain.WeightEntry{
		{ID: "1", Weight: 80, Date: day0.AddDate(0, 0, 14)},
		{ID: "2", Weight: 75, Date: day0},
	}
	got := domain.CheckAchievements(ws, nil, day0, seqID())
	assert.Equal(t, []domain.AchievementType{domain.TypeTransformation}, types(got))
}

func TestCheckAchievements_Idempotent(t *testing.T) {
	ws := entries(7, 80, 74)
	unlocked := []domain.Achievement{{ID: "x", Type: domain.TypeTransformation}}

	for i := 0; i < 2; i++ {
		assert.Empty(t, domain.CheckAchievements(ws, unlocked, day0, seqID()))
	}
}

func TestCheckAchievements_Discipline(t *testing.T) {
	tests := []struct {
		name    string
		weights []domain.WeightEntry
		want    []domain.AchievementType
	}{
		{"three entries", entries(7, 80, 79.5, 79), nil},
		{"weekly", entries(7, 80, 79.5, 79, 78.5), []domain.AchievementType{domain.TypeDiscipline}},
		{"exactly ten days", entries(10, 80, 80, 80, 80), []domain.AchievementType{domain.TypeDiscipline}},
		{"eleven days", entries(11, 80, 80, 80, 80), nil},
		{
			"discipline before transformation",
			entries(7, 80, 78, 76, 74),
			[]domain.AchievementType{domain.TypeDiscipline, domain.TypeTransformation},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := domain.CheckAchievements(tc.weights, nil, day0, seqID())
			if tc.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tc.want, types(got))
		})
	}
}

func TestCheckAchievements_DisciplineChecksEarliestFour(t *testing.T) {
	// The earliest four are a week apart; a later gap does not matter.
	ws := entries(7, 80, 80, 80, 80)
	ws = append(ws, domain.WeightEntry{ID: "late", Weight: 80, Date: day0.AddDate(0, 3, 0)})
	got := domain.CheckAchievements(ws, nil, day0, seqID())
	assert.Equal(t, []domain.AchievementType{domain.TypeDiscipline}, types(got))

	// Out-of-order storage is sorted by date for the check.
	shuffled := []domain.WeightEntry{ws[3], ws[0], ws[2], ws[1]}
	got = domain.CheckAchievements(shuffled, nil, day0, seqID())
	assert.Equal(t, []domain.AchievementType{domain.TypeDiscipline}, types(got))
}

func TestCheckAchievements_DoesNotMutateInput(t *testing.T) {
	ws := []domain.WeightEntry{
		{ID: "b", Weight: 80, Date: day0.AddDate(0, 0, 21)},
		{ID: "a", Weight: 80, Date: day0},
		{ID: "d", Weight: 80, Date: day0.AddDate(0, 0, 7)},
		{ID: "c", Weight: 80, Date: day0.AddDate(0, 0, 14)},
	}
	domain.CheckAchievements(ws, nil, day0, seqID())
	assert.Equal(t, []string{"b", "a", "d", "c"}, []string{ws[0].ID, ws[1].ID, ws[2].ID, ws[3].ID})
}

func TestCheckAchievements_EmptyHistory(t *testing.T) {
	assert.Empty(t, domain.CheckAchievements(nil, nil, day0, seqID()))
}

func TestMergeAchievements(t *testing.T) {
	existing := []domain.Achievement{{ID: "1", Type: domain.TypeDiscipline}}
	fresh := []domain.Achievement{
		{ID: "2", Type: domain.TypeDiscipline},
		{ID: "3", Type: domain.TypeTransformation},
	}
	got := domain.MergeAchievements(existing, fresh)
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "3", got[1].ID)
}

func definition(t *testing.T, id string) domain.AchievementDefinition {
	t.Helper()
	for _, d := range domain.AchievementDefinitions {
		if d.ID == id {
			return d
		}
	}
	t.Fatalf("no definition %q", id)
	return domain.AchievementDefinition{}
}

func TestProgress(t *testing.T) {
	tests := []struct {
		name    string
		def     string
		weights []domain.WeightEntry
		want    float64
	}{
		{"discipline half", "discipline", entries(7, 80, 80), 50},
		{"discipline clamped", "discipline", entries(7, 80, 80, 80, 80, 80, 80), 100},
		{"consistency", "consistency", entries(7, 80, 80), 25},
		{"transformation no data", "transformation", entries(7, 80), 0},
		{"transformation partial", "transformation", entries(7, 80, 78), 40},
		{"transformation gain floors at zero", "transformation", entries(7, 80, 82), 0},
		{"dedication", "dedication", entries(7, 80, 75), 50},
		{"champion clamped", "champion", entries(7, 100, 80), 100},
		{"unknown type", "explorer", entries(7, 80, 70), 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := domain.Progress(definition(t, tc.def), tc.weights)
			assert.InDelta(t, tc.want, got, 1e-9)
		})
	}
}

func TestProgress_Monotonic(t *testing.T) {
	def := definition(t, "transformation")
	prev := -1.0
	for loss := 0.0; loss <= 8; loss += 0.5 {
		got := domain.Progress(def, entries(7, 80, 80-loss))
		assert.GreaterOrEqual(t, got, prev)
		assert.LessOrEqual(t, got, 100.0)
		prev = got
	}

	def = definition(t, "discipline")
	prev = -1.0
	var ws []domain.WeightEntry
	for i := 0; i < 8; i++ {
		ws = entries(7, append(weightsOf(ws), 80)...)
		got := domain.Progress(def, ws)
		assert.GreaterOrEqual(t, got, prev)
		assert.LessOrEqual(t, got, 100.0)
		prev = got
	}
}

func weightsOf(ws []domain.WeightEntry) []float64 {
	out := make([]float64, len(ws))
	for i, w := range ws {
		out[i] = w.Weight
	}
	return out
}

func TestProgressAndUnlockAgree(t *testing.T) {
	transformation := definition(t, "transformation")
	discipline := definition(t, "discipline")

	ws := entries(7, 80, 75)
	require.InDelta(t, 100, domain.Progress(transformation, ws), 1e-9)
	assert.Contains(t, types(domain.CheckAchievements(ws, nil, day0, seqID())), domain.TypeTransformation)

	ws = entries(7, 80, 80, 80, 80)
	require.InDelta(t, 100, domain.Progress(discipline, ws), 1e-9)
	assert.Contains(t, types(domain.CheckAchievements(ws, nil, day0, seqID())), domain.TypeDiscipline)
}

func TestDefinitionForType(t *testing.T) {
	d, ok := domain.DefinitionForType(domain.TypeTransformation)
	require.True(t, ok)
	assert.Equal(t, "transformation", d.ID)

	_, ok = domain.DefinitionForType("nope")
	assert.False(t, ok)
}
