// Package memory implements an in-memory repository for development and testing.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"vivaleve/internal/domain"
)

// ErrDuplicateEmail is returned by Create when the email is already registered.
var ErrDuplicateEmail = domain.ErrDuplicateEmail

// DB implements an in-memory database storage.
type DB struct {
	mu           sync.Mutex
	weights      []domain.WeightEntry
	achievements []domain.Achievement
	webhookLogs  []domain.WebhookLog
	users        []*domain.User
	sessions     map[string]*domain.Session

	userIDCounter int64
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{
		sessions: make(map[string]*domain.Session),
	}
}

// Ensure interfaces are met.
var _ domain.WeightRepository = (*DB)(nil)
var _ domain.AchievementRepository = (*DB)(nil)
var _ domain.WebhookLogRepository = (*DB)(nil)
var _ domain.UserRepository = (*DB)(nil)
var _ domain.SessionRepository = (*SessionRepo)(nil)

// --- WeightRepository ---

// AddWeightEntry appends a weight entry.
func (db *DB) AddWeightEntry(ctx context.Context, e domain.WeightEntry) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	e.Date = e.Date.UTC()
	db.weights = append(db.weights, e)
	return nil
}

// UpdateWeightEntry changes weight and notes of the user's entry.
func (db *DB) UpdateWeightEntry(ctx context.Context, userID int64, id string, weight float64, notes string) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.weights {
		w := &db.weights[i]
		if w.UserID == userID && w.ID == id {
			w.Weight = weight
			w.Notes = notes
			return true, nil
		}
	}
	return false, nil
}

// DeleteWeightEntry removes the user's entry with the given id.
func (db *DB) DeleteWeightEntry(ctx context.Context, userID int64, id string) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i, w := range db.weights {
		if w.UserID == userID && w.ID == id {
			db.weights = append(db.weights[:i], db.weights[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// ListWeightEntries lists the user's entries in insertion order.
func (db *DB) ListWeightEntries(ctx context.Context, userID int64) ([]domain.WeightEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := []domain.WeightEntry{}
	for _, w := range db.weights {
		if w.UserID == userID {
			result = append(result, w)
		}
	}
	return result, nil
}

// --- AchievementRepository ---

// ListAchievements lists the user's achievements in unlock order.
func (db *DB) ListAchievements(ctx context.Context, userID int64) ([]domain.Achievement, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := []domain.Achievement{}
	for _, a := range db.achievements {
		if a.UserID == userID {
			result = append(result, a)
		}
	}
	return result, nil
}

// AddAchievements stores items, skipping types the user already holds.
func (db *DB) AddAchievements(ctx context.Context, userID int64, items []domain.Achievement) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	var held []domain.Achievement
	for _, a := range db.achievements {
		if a.UserID == userID {
			held = append(held, a)
		}
	}
	fresh := make([]domain.Achievement, len(items))
	for i, a := range items {
		a.UserID = userID
		a.UnlockedAt = a.UnlockedAt.UTC()
		fresh[i] = a
	}
	merged := domain.MergeAchievements(held, fresh)
	db.achievements = append(db.achievements, merged[len(held):]...)
	return nil
}

// --- WebhookLogRepository ---

// AddWebhookLog stores a webhook log.
func (db *DB) AddWebhookLog(ctx context.Context, l domain.WebhookLog) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	l.CreatedAt = l.CreatedAt.UTC()
	db.webhookLogs = append(db.webhookLogs, l)
	return nil
}

// ListRecentWebhookLogs lists up to limit logs, newest first.
func (db *DB) ListRecentWebhookLogs(ctx context.Context, limit int) ([]domain.WebhookLog, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := make([]domain.WebhookLog, len(db.webhookLogs))
	copy(result, db.webhookLogs)

	// Reverse insertion order breaks ties between equal timestamps.
	for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
		result[i], result[j] = result[j], result[i]
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// --- UserRepository ---

// GetByEmail retrieves a user by email.
func (db *DB) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	// Return nil if not found
	return nil, nil
}

// GetByID retrieves a user by ID.
func (db *DB) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.ID == id {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

// Create creates a new user, assigning its ID.
func (db *DB) Create(ctx context.Context, u domain.User) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, existing := range db.users {
		if existing.Email == u.Email {
			return nil, ErrDuplicateEmail
		}
	}

	db.userIDCounter++
	u.ID = db.userIDCounter
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	u.CreatedAt = u.CreatedAt.UTC()
	u.PlanExpiry = u.PlanExpiry.UTC()
	stored := u
	db.users = append(db.users, &stored)
	return &u, nil
}

// UpdatePlan sets the user's plan and expiry.
func (db *DB) UpdatePlan(ctx context.Context, id int64, plan domain.Plan, expiry time.Time) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.ID == id {
			u.Plan = plan
			u.PlanExpiry = expiry.UTC()
			return nil
		}
	}
	return errors.New("user not found")
}

// List returns every user ordered by ID.
func (db *DB) List(ctx context.Context) ([]domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := make([]domain.User, len(db.users))
	for i, u := range db.users {
		result[i] = *u
	}
	return result, nil
}

// Count returns the total number of users.
func (db *DB) Count(ctx context.Context) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.users), nil
}

// --- SessionRepository ---

// SessionRepo implements session persistence.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo creates a new session repository.
func (db *DB) NewSessionRepo() *SessionRepo {
	return &SessionRepo{db: db}
}

// Create creates a new session.
func (r *SessionRepo) Create(ctx context.Context, userID int64, token, userAgent, ip string, expiresAt time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.sessions[token] = &domain.Session{
		Token:     token,
		UserID:    userID,
		UserAgent: userAgent,
		IP:        ip,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}
	return nil
}

// GetByToken retrieves a session by token. Expiry is left to the caller.
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if s, ok := r.db.sessions[token]; ok {
		c := *s
		return &c, nil
	}
	return nil, nil
}

// Delete deletes a session.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.sessions, token)
	return nil
}

// DeleteExpired deletes all expired sessions.
func (r *SessionRepo) DeleteExpired(ctx context.Context) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	now := time.Now()
	for k, v := range r.db.sessions {
		if now.After(v.ExpiresAt) {
			delete(r.db.sessions, k)
		}
	}
	return nil
}
