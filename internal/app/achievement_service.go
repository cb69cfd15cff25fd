package app

import (
	"context"
	"fmt"
	"math"

	"vivaleve/internal/domain"
)

// MasterPoints is the point total at which master progress reaches 100%.
const MasterPoints = 1000

// AchievementService builds the achievements board.
type AchievementService struct {
	weights      domain.WeightRepository
	achievements domain.AchievementRepository
}

// NewAchievementService creates an AchievementService.
func NewAchievementService(weights domain.WeightRepository, achievements domain.AchievementRepository) *AchievementService {
	return &AchievementService{weights: weights, achievements: achievements}
}

// UnlockedAchievement pairs a held achievement with its definition.
type UnlockedAchievement struct {
	domain.Achievement
	Requirement string `json:"requirement"`
}

// LockedAchievement is a definition not yet earned, with its progress.
type LockedAchievement struct {
	domain.AchievementDefinition
	Progress float64 `json:"progress"`
}

// BoardStats are the counters shown under the board.
type BoardStats struct {
	WeightsCount      int     `json:"weightsCount"`
	AchievementsCount int     `json:"achievementsCount"`
	KgLost            float64 `json:"kgLost"`
}

// AchievementBoard is everything the achievements page shows.
type AchievementBoard struct {
	Unlocked       []UnlockedAchievement `json:"unlocked"`
	Locked         []LockedAchievement   `json:"locked"`
	TotalPoints    int                   `json:"totalPoints"`
	MasterProgress float64               `json:"masterProgress"`
	Stats          BoardStats            `json:"stats"`
}

// Board returns the user's achievements board. A definition is locked when
// no held achievement shares its type.
func (s *AchievementService) Board(ctx context.Context, userID int64) (*AchievementBoard, error) {
	weights, err := s.weights.ListWeightEntries(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list weights: %w", err)
	}
	held, err := s.achievements.ListAchievements(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list achievements: %w", err)
	}

	b := &AchievementBoard{
		Unlocked: make([]UnlockedAchievement, 0, len(held)),
		Locked:   []LockedAchievement{},
		Stats: BoardStats{
			WeightsCount:      len(weights),
			AchievementsCount: len(held),
			KgLost:            domain.TotalLoss(weights),
		},
	}

	heldTypes := make(map[domain.AchievementType]bool, len(held))
	for _, a := range held {
		heldTypes[a.Type] = true
		b.TotalPoints += a.Points
		u := UnlockedAchievement{Achievement: a}
		if def, ok := domain.DefinitionForType(a.Type); ok {
			u.Requirement = def.Requirement
		}
		b.Unlocked = append(b.Unlocked, u)
	}

	for _, def := range domain.AchievementDefinitions {
		if heldTypes[def.Type] {
			continue
		}
		b.Locked = append(b.Locked, LockedAchievement{
			AchievementDefinition: def,
			Progress:              domain.Progress(def, weights),
		})
	}

	b.MasterProgress = math.Min(float64(b.TotalPoints)/MasterPoints*100, 100)
	return b, nil
}
