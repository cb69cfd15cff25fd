package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"vivaleve/internal/domain"
)

// ErrEntryNotFound indicates that the weight entry does not exist for the user.
var ErrEntryNotFound = errors.New("weight entry not found")

// WeightService encapsulates weight-tracking use cases.
type WeightService struct {
	repo         domain.WeightRepository
	achievements domain.AchievementRepository
	now          func() time.Time
	newID        func() string
}

// NewWeightService creates a WeightService backed by the given repositories.
func NewWeightService(repo domain.WeightRepository, achievements domain.AchievementRepository) *WeightService {
	return &WeightService{
		repo:         repo,
		achievements: achievements,
		now:          time.Now,
		newID:        uuid.NewString,
	}
}

// WithClock overrides the time source. Intended for tests.
func (s *WeightService) WithClock(now func() time.Time) *WeightService {
	s.now = now
	return s
}

// RecordResult is the outcome of recording a weight.
type RecordResult struct {
	Entry           domain.WeightEntry   `json:"entry"`
	NewAchievements []domain.Achievement `json:"newAchievements"`
}

// RecordWeight validates and stores a new weight measurement, then unlocks
// any achievements the updated history earns.
func (s *WeightService) RecordWeight(ctx context.Context, userID int64, value float64, unit, notes string) (*RecordResult, error) {
	kg, err := domain.NormalizeToKg(value, unit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	now := s.now()
	entry := domain.WeightEntry{
		ID:     s.newID(),
		UserID: userID,
		Weight: kg,
		Date:   now,
		Notes:  notes,
	}
	if err := s.repo.AddWeightEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("add weight: %w", err)
	}

	fresh, err := s.checkAchievements(ctx, userID, now)
	if err != nil {
		return nil, err
	}
	return &RecordResult{Entry: entry, NewAchievements: fresh}, nil
}

func (s *WeightService) checkAchievements(ctx context.Context, userID int64, now time.Time) ([]domain.Achievement, error) {
	weights, err := s.repo.ListWeightEntries(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list weights: %w", err)
	}
	unlocked, err := s.achievements.ListAchievements(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list achievements: %w", err)
	}

	fresh := domain.CheckAchievements(weights, unlocked, now, s.newID)
	if len(fresh) == 0 {
		return []domain.Achievement{}, nil
	}
	for i := range fresh {
		fresh[i].UserID = userID
	}
	if err := s.achievements.AddAchievements(ctx, userID, fresh); err != nil {
		return nil, fmt.Errorf("add achievements: %w", err)
	}
	return fresh, nil
}

// UpdateWeight changes the weight and notes of an entry. The date is kept.
func (s *WeightService) UpdateWeight(ctx context.Context, userID int64, id string, value float64, unit, notes string) error {
	kg, err := domain.NormalizeToKg(value, unit)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	ok, err := s.repo.UpdateWeightEntry(ctx, userID, id, kg, notes)
	if err != nil {
		return err
	}
	if !ok {
		return ErrEntryNotFound
	}
	return nil
}

// DeleteWeight removes an entry by id.
func (s *WeightService) DeleteWeight(ctx context.Context, userID int64, id string) error {
	ok, err := s.repo.DeleteWeightEntry(ctx, userID, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrEntryNotFound
	}
	return nil
}

// List returns the user's weight history, newest first.
func (s *WeightService) List(ctx context.Context, userID int64) ([]domain.WeightEntry, error) {
	entries, err := s.repo.ListWeightEntries(ctx, userID)
	if err != nil {
		return nil, err
	}
	return domain.SortedByDateDesc(entries), nil
}

// WeightSummary describes the latest check-ins. Change and Motivation are
// set only when at least two entries exist. TotalChange is last minus first,
// so a loss is negative; the older web client showed first minus last.
type WeightSummary struct {
	Count       int                 `json:"count"`
	Latest      *domain.WeightEntry `json:"latest"`
	Previous    *domain.WeightEntry `json:"previous"`
	Change      *float64            `json:"change"`
	Motivation  *domain.Motivation  `json:"motivation"`
	TotalChange float64             `json:"totalChange"`
}

// Summary compares the two most recent entries.
func (s *WeightService) Summary(ctx context.Context, userID int64) (*WeightSummary, error) {
	entries, err := s.repo.ListWeightEntries(ctx, userID)
	if err != nil {
		return nil, err
	}
	sum := &WeightSummary{Count: len(entries)}
	if len(entries) == 0 {
		return sum, nil
	}

	sorted := domain.SortedByDateDesc(entries)
	sum.Latest = &sorted[0]
	if len(sorted) < 2 {
		return sum, nil
	}
	sum.Previous = &sorted[1]
	change := sorted[0].Weight - sorted[1].Weight
	m := domain.MotivationalMessage(change)
	sum.Change = &change
	sum.Motivation = &m
	sum.TotalChange = entries[len(entries)-1].Weight - entries[0].Weight
	return sum, nil
}
