package app_test

import (
	"context"
	"time"

	"vivaleve/internal/domain"
)

type mockUserRepo struct {
	getByEmailFn func(ctx context.Context, email string) (*domain.User, error)
	getByIDFn    func(ctx context.Context, id int64) (*domain.User, error)
	createFn     func(ctx context.Context, u domain.User) (*domain.User, error)
	updatePlanFn func(ctx context.Context, id int64, plan domain.Plan, expiry time.Time) error
	listFn       func(ctx context.Context) ([]domain.User, error)
	countFn      func(ctx context.Context) (int, error)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepo) Create(ctx context.Context, u domain.User) (*domain.User, error) {
	if m.createFn != nil {
		return m.createFn(ctx, u)
	}
	u.ID = 1
	return &u, nil
}

func (m *mockUserRepo) UpdatePlan(ctx context.Context, id int64, plan domain.Plan, expiry time.Time) error {
	if m.updatePlanFn != nil {
		return m.updatePlanFn(ctx, id, plan, expiry)
	}
	return nil
}

func (m *mockUserRepo) List(ctx context.Context) ([]domain.User, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockUserRepo) Count(ctx context.Context) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx)
	}
	return 0, nil
}

type mockSessionRepo struct {
	createFn        func(ctx context.Context, userID int64, token, userAgent, ip string, expiresAt time.Time) error
	getByTokenFn    func(ctx context.Context, token string) (*domain.Session, error)
	deleteFn        func(ctx context.Context, token string) error
	deleteExpiredFn func(ctx context.Context) error
}

func (m *mockSessionRepo) Create(ctx context.Context, userID int64, token, userAgent, ip string, expiresAt time.Time) error {
	if m.createFn != nil {
		return m.createFn(ctx, userID, token, userAgent, ip, expiresAt)
	}
	return nil
}

func (m *mockSessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	if m.getByTokenFn != nil {
		return m.getByTokenFn(ctx, token)
	}
	return nil, nil
}

func (m *mockSessionRepo) Delete(ctx context.Context, token string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, token)
	}
	return nil
}

func (m *mockSessionRepo) DeleteExpired(ctx context.Context) error {
	if m.deleteExpiredFn != nil {
		return m.deleteExpiredFn(ctx)
	}
	return nil
}

type mockWeightRepo struct {
	addFn    func(ctx context.Context, e domain.WeightEntry) error
	updateFn func(ctx context.Context, userID int64, id string, weight float64, notes string) (bool, error)
	deleteFn func(ctx context.Context, userID int64, id string) (bool, error)
	listFn   func(ctx context.Context, userID int64) ([]domain.WeightEntry, error)
}

func (m *mockWeightRepo) AddWeightEntry(ctx context.Context, e domain.WeightEntry) error {
	if m.addFn != nil {
		return m.addFn(ctx, e)
	}
	return nil
}

func (m *mockWeightRepo) UpdateWeightEntry(ctx context.Context, userID int64, id string, weight float64, notes string) (bool, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, userID, id, weight, notes)
	}
	return false, nil
}

func (m *mockWeightRepo) DeleteWeightEntry(ctx context.Context, userID int64, id string) (bool, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID, id)
	}
	return false, nil
}

func (m *mockWeightRepo) ListWeightEntries(ctx context.Context, userID int64) ([]domain.WeightEntry, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID)
	}
	return nil, nil
}

type mockAchievementRepo struct {
	listFn func(ctx context.Context, userID int64) ([]domain.Achievement, error)
	addFn  func(ctx context.Context, userID int64, items []domain.Achievement) error
}

func (m *mockAchievementRepo) ListAchievements(ctx context.Context, userID int64) ([]domain.Achievement, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockAchievementRepo) AddAchievements(ctx context.Context, userID int64, items []domain.Achievement) error {
	if m.addFn != nil {
		return m.addFn(ctx, userID, items)
	}
	return nil
}

type mockWebhookLogRepo struct {
	addFn  func(ctx context.Context, l domain.WebhookLog) error
	listFn func(ctx context.Context, limit int) ([]domain.WebhookLog, error)
}

func (m *mockWebhookLogRepo) AddWebhookLog(ctx context.Context, l domain.WebhookLog) error {
	if m.addFn != nil {
		return m.addFn(ctx, l)
	}
	return nil
}

func (m *mockWebhookLogRepo) ListRecentWebhookLogs(ctx context.Context, limit int) ([]domain.WebhookLog, error) {
	if m.listFn != nil {
		return m.listFn(ctx, limit)
	}
	return nil, nil
}
