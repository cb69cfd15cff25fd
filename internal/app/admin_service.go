package app

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"vivaleve/internal/domain"
)

// Plan status labels shown in user management.
const (
	PlanStatusExpired = "expired"
	PlanStatusWarning = "warning"
	PlanStatusOK      = "ok"
)

// planWarningDays is the remaining-days threshold for PlanStatusWarning.
const planWarningDays = 3

// AdminService backs the user-management screens.
type AdminService struct {
	users        domain.UserRepository
	weights      domain.WeightRepository
	achievements domain.AchievementRepository
	now          func() time.Time
}

// NewAdminService creates an AdminService.
func NewAdminService(users domain.UserRepository, weights domain.WeightRepository, achievements domain.AchievementRepository) *AdminService {
	return &AdminService{users: users, weights: weights, achievements: achievements, now: time.Now}
}

// WithClock overrides the time source. Intended for tests.
func (s *AdminService) WithClock(now func() time.Time) *AdminService {
	s.now = now
	return s
}

// UserStats is one row of the user-management table.
type UserStats struct {
	domain.User
	WeightsCount      int     `json:"weightsCount"`
	AchievementsCount int     `json:"achievementsCount"`
	WeightLoss        float64 `json:"weightLoss"`
	DaysActive        int     `json:"daysActive"`
	PlanDaysLeft      int     `json:"planDaysLeft"`
	PlanStatus        string  `json:"planStatus"`
}

// UserTotals are the counters above the user table.
type UserTotals struct {
	Users            int `json:"users"`
	PremiumUsers     int `json:"premiumUsers"`
	UsersWithWeights int `json:"usersWithWeights"`
}

// UserList is the filtered user table plus totals over every user.
type UserList struct {
	Users  []UserStats `json:"users"`
	Totals UserTotals  `json:"totals"`
}

// UserDetail is a single user with their full history.
type UserDetail struct {
	UserStats
	Weights      []domain.WeightEntry `json:"weights"`
	Achievements []domain.Achievement `json:"achievements"`
}

// PlanStatus labels the remaining plan days.
func PlanStatus(daysLeft int) string {
	switch {
	case daysLeft <= 0:
		return PlanStatusExpired
	case daysLeft <= planWarningDays:
		return PlanStatusWarning
	default:
		return PlanStatusOK
	}
}

// ListUsers returns users whose name or email contains query, ignoring case.
func (s *AdminService) ListUsers(ctx context.Context, query string) (*UserList, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	now := s.now()
	needle := strings.ToLower(strings.TrimSpace(query))
	out := &UserList{Users: []UserStats{}}
	for _, u := range users {
		weights, err := s.weights.ListWeightEntries(ctx, u.ID)
		if err != nil {
			return nil, fmt.Errorf("list weights for user %d: %w", u.ID, err)
		}

		out.Totals.Users++
		if u.Plan == domain.PlanPremium {
			out.Totals.PremiumUsers++
		}
		if len(weights) > 0 {
			out.Totals.UsersWithWeights++
		}

		if needle != "" &&
			!strings.Contains(strings.ToLower(u.Name), needle) &&
			!strings.Contains(strings.ToLower(u.Email), needle) {
			continue
		}
		achievements, err := s.achievements.ListAchievements(ctx, u.ID)
		if err != nil {
			return nil, fmt.Errorf("list achievements for user %d: %w", u.ID, err)
		}
		out.Users = append(out.Users, s.stats(u, weights, achievements, now))
	}
	return out, nil
}

// User returns one user's stats and history.
func (s *AdminService) User(ctx context.Context, id int64) (*UserDetail, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	weights, err := s.weights.ListWeightEntries(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list weights: %w", err)
	}
	achievements, err := s.achievements.ListAchievements(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list achievements: %w", err)
	}
	return &UserDetail{
		UserStats:    s.stats(*u, weights, achievements, s.now()),
		Weights:      domain.SortedByDateDesc(weights),
		Achievements: achievements,
	}, nil
}

func (s *AdminService) stats(u domain.User, weights []domain.WeightEntry, achievements []domain.Achievement, now time.Time) UserStats {
	st := UserStats{
		User:              u,
		WeightsCount:      len(weights),
		AchievementsCount: len(achievements),
		DaysActive:        int(math.Floor(now.Sub(u.CreatedAt).Hours() / 24)),
		PlanDaysLeft:      u.PlanDaysLeft(now),
	}
	if len(weights) >= 2 {
		st.WeightLoss = weights[0].Weight - weights[len(weights)-1].Weight
	}
	st.PlanStatus = PlanStatus(st.PlanDaysLeft)
	return st
}
