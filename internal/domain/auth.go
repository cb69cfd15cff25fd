// Package domain contains the core business entities, rules and ports.
package domain

import (
	"context"
	"errors"
	"math"
	"time"
)

// ErrDuplicateEmail is returned by UserRepository.Create when the email is
// already registered.
var ErrDuplicateEmail = errors.New("user already exists")

// Plan is the subscription tier of a user.
type Plan string

const (
	PlanFree    Plan = "free"
	PlanPremium Plan = "premium"
)

// User represents an account in the system.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Plan         Plan      `json:"plan"`
	PlanExpiry   time.Time `json:"planExpiry"`
	IsAdmin      bool      `json:"isAdmin"`
	CreatedAt    time.Time `json:"createdAt"`
}

// PlanDaysLeft returns the whole days remaining on the user's plan, rounded up.
// Zero or negative means the plan has expired.
func (u *User) PlanDaysLeft(now time.Time) int {
	return int(math.Ceil(u.PlanExpiry.Sub(now).Hours() / 24))
}

// HasPremiumAccess reports whether the user is on an unexpired premium plan.
func (u *User) HasPremiumAccess(now time.Time) bool {
	return u.Plan == PlanPremium && now.Before(u.PlanExpiry)
}

// Session represents an active user session.
type Session struct {
	Token     string
	UserID    int64
	UserAgent string
	IP        string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// UserRepository defines the port for user persistence operations.
// Lookups return (nil, nil) when the user does not exist.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	Create(ctx context.Context, u User) (*User, error)
	UpdatePlan(ctx context.Context, id int64, plan Plan, expiry time.Time) error
	List(ctx context.Context) ([]User, error)
	Count(ctx context.Context) (int, error)
}

// SessionRepository defines the port for session persistence operations.
type SessionRepository interface {
	Create(ctx context.Context, userID int64, token, userAgent, ip string, expiresAt time.Time) error
	GetByToken(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context) error
}
