package domain

import (
	"context"
	"math"
	"sort"
	"time"
)

// AchievementType groups achievements; a user holds at most one per type.
type AchievementType string

const (
	TypeDiscipline     AchievementType = "discipline"
	TypeTransformation AchievementType = "transformation"
	TypeConsistency    AchievementType = "consistency"
	TypeEngagement     AchievementType = "engagement"
)

// Unlock rule parameters.
const (
	DisciplineEntries    = 4
	DisciplineMaxGap     = 10 * 24 * time.Hour
	TransformationLossKg = 5.0
)

// Achievement is an unlocked achievement owned by a user.
type Achievement struct {
	ID          string          `json:"id"`
	UserID      int64           `json:"userId"`
	Type        AchievementType `json:"type"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Points      int             `json:"points"`
	UnlockedAt  time.Time       `json:"unlockedAt"`
}

// AchievementRepository is the port for achievement persistence.
// AddAchievements silently skips types the user already holds.
type AchievementRepository interface {
	ListAchievements(ctx context.Context, userID int64) ([]Achievement, error)
	AddAchievements(ctx context.Context, userID int64, items []Achievement) error
}

// AchievementDefinition describes an achievement that can be earned.
// Threshold is an entry count for discipline/consistency and kg lost for
// transformation.
type AchievementDefinition struct {
	ID          string          `json:"id"`
	Type        AchievementType `json:"type"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Requirement string          `json:"requirement"`
	Points      int             `json:"points"`
	Threshold   float64         `json:"threshold"`
}

// AchievementDefinitions lists every achievement in display order. Several
// definitions share a type; the first one of each type is the one unlocked.
var AchievementDefinitions = []AchievementDefinition{
	{
		ID: "discipline", Type: TypeDiscipline,
		Title:       "Disciplina",
		Description: "Registrou peso por 4 semanas consecutivas",
		Requirement: "4 semanas consecutivas de registro",
		Points:      100,
		Threshold:   DisciplineEntries,
	},
	{
		ID: "transformation", Type: TypeTransformation,
		Title:       "Transformação",
		Description: "Perdeu 5kg ou mais",
		Requirement: "Perder 5kg",
		Points:      200,
		Threshold:   TransformationLossKg,
	},
	{
		ID: "consistency", Type: TypeConsistency,
		Title:       "Consistência",
		Description: "Registrou peso por 8 semanas consecutivas",
		Requirement: "8 semanas consecutivas de registro",
		Points:      150,
		Threshold:   8,
	},
	{
		ID: "dedication", Type: TypeTransformation,
		Title:       "Dedicação",
		Description: "Perdeu 10kg ou mais",
		Requirement: "Perder 10kg",
		Points:      300,
		Threshold:   10,
	},
	{
		ID: "explorer", Type: TypeEngagement,
		Title:       "Explorador",
		Description: "Visualizou 20 receitas diferentes",
		Requirement: "Ver 20 receitas",
		Points:      50,
		Threshold:   20,
	},
	{
		ID: "champion", Type: TypeTransformation,
		Title:       "Campeão",
		Description: "Perdeu 15kg ou mais",
		Requirement: "Perder 15kg",
		Points:      500,
		Threshold:   15,
	},
}

// DefinitionForType returns the first definition of the given type.
func DefinitionForType(t AchievementType) (AchievementDefinition, bool) {
	for _, d := range AchievementDefinitions {
		if d.Type == t {
			return d, true
		}
	}
	return AchievementDefinition{}, false
}

// CheckAchievements returns the achievements that the weight history unlocks
// and that are not already present in unlocked. It never mutates its inputs.
// Rules run in a fixed order: discipline, then transformation.
func CheckAchievements(weights []WeightEntry, unlocked []Achievement, now time.Time, newID func() string) []Achievement {
	var out []Achievement

	if len(weights) >= DisciplineEntries && !hasType(unlocked, TypeDiscipline) && consecutiveCheckIns(weights) {
		out = append(out, newAchievement(TypeDiscipline, now, newID))
	}

	if len(weights) >= 2 && !hasType(unlocked, TypeTransformation) {
		loss := weights[0].Weight - weights[len(weights)-1].Weight
		if loss >= TransformationLossKg {
			out = append(out, newAchievement(TypeTransformation, now, newID))
		}
	}

	return out
}

// consecutiveCheckIns reports whether the earliest DisciplineEntries entries,
// by date, are each no more than DisciplineMaxGap apart.
func consecutiveCheckIns(weights []WeightEntry) bool {
	if len(weights) < DisciplineEntries {
		return false
	}
	sorted := make([]WeightEntry, len(weights))
	copy(sorted, weights)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	for i := 1; i < DisciplineEntries; i++ {
		gap := sorted[i].Date.Sub(sorted[i-1].Date)
		if gap < 0 {
			gap = -gap
		}
		if gap > DisciplineMaxGap {
			return false
		}
	}
	return true
}

func hasType(items []Achievement, t AchievementType) bool {
	for _, a := range items {
		if a.Type == t {
			return true
		}
	}
	return false
}

func newAchievement(t AchievementType, now time.Time, newID func() string) Achievement {
	def, _ := DefinitionForType(t)
	return Achievement{
		ID:          newID(),
		Type:        t,
		Title:       def.Title,
		Description: def.Description,
		Points:      def.Points,
		UnlockedAt:  now,
	}
}

// MergeAchievements appends fresh to existing, dropping any whose type is
// already present.
func MergeAchievements(existing, fresh []Achievement) []Achievement {
	out := make([]Achievement, 0, len(existing)+len(fresh))
	out = append(out, existing...)
	for _, a := range fresh {
		if !hasType(out, a.Type) {
			out = append(out, a)
		}
	}
	return out
}

// Progress estimates completion of a locked achievement as a percentage in
// [0, 100]. Loss uses first and last entries in stored order, the same as
// CheckAchievements.
func Progress(def AchievementDefinition, weights []WeightEntry) float64 {
	if def.Threshold <= 0 {
		return 0
	}
	switch def.Type {
	case TypeDiscipline, TypeConsistency:
		return math.Min(float64(len(weights))/def.Threshold*100, 100)
	case TypeTransformation:
		if len(weights) < 2 {
			return 0
		}
		return math.Min(TotalLoss(weights)/def.Threshold*100, 100)
	default:
		return 0
	}
}
