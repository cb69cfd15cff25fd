package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"vivaleve/internal/domain"
)

var (
	// ErrInvalidWebhookToken indicates that the webhook token did not match.
	ErrInvalidWebhookToken = errors.New("invalid webhook token")
	// ErrUnknownEvent indicates an event name the service does not handle.
	ErrUnknownEvent = errors.New("unknown webhook event")
)

// DefaultWebhookLogLimit is how many logs the admin screen lists by default.
const DefaultWebhookLogLimit = 50

// WebhookService applies Kiwify payment events to user plans.
type WebhookService struct {
	users domain.UserRepository
	logs  domain.WebhookLogRepository
	token string
	log   *zap.Logger
	now   func() time.Time
}

// NewWebhookService creates a WebhookService that accepts documents carrying
// token.
func NewWebhookService(users domain.UserRepository, logs domain.WebhookLogRepository, token string, log *zap.Logger) *WebhookService {
	return &WebhookService{users: users, logs: logs, token: token, log: log, now: time.Now}
}

// WithClock overrides the time source. Intended for tests.
func (s *WebhookService) WithClock(now func() time.Time) *WebhookService {
	s.now = now
	return s
}

// Handle validates ev and updates the named user's plan. Every document that
// passes the token check is logged; AppliedPlan is empty when nothing changed.
func (s *WebhookService) Handle(ctx context.Context, ev domain.WebhookEvent) (*domain.WebhookLog, error) {
	if s.token == "" || !ConstantTimeCompare(ev.Token, s.token) {
		return nil, ErrInvalidWebhookToken
	}

	now := s.now()
	entry := domain.WebhookLog{
		ID:        uuid.NewString(),
		Email:     normalizeEmail(ev.Email),
		Evento:    ev.Evento,
		Produto:   ev.Produto,
		CreatedAt: now,
	}

	applyErr := s.apply(ctx, &entry, now)
	if err := s.logs.AddWebhookLog(ctx, entry); err != nil {
		return nil, fmt.Errorf("add webhook log: %w", err)
	}
	if applyErr != nil {
		s.log.Info("webhook not applied",
			zap.String("email", entry.Email),
			zap.String("evento", entry.Evento),
			zap.Error(applyErr))
		return &entry, applyErr
	}

	s.log.Info("webhook applied",
		zap.String("email", entry.Email),
		zap.String("evento", entry.Evento),
		zap.String("plan", string(entry.AppliedPlan)))
	return &entry, nil
}

func (s *WebhookService) apply(ctx context.Context, entry *domain.WebhookLog, now time.Time) error {
	user, err := s.users.GetByEmail(ctx, entry.Email)
	if err != nil {
		return fmt.Errorf("lookup user: %w", err)
	}
	if user == nil {
		return ErrUserNotFound
	}

	plan, expiry, ok := domain.PlanChange(entry.Evento, user, now)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownEvent, entry.Evento)
	}
	if err := s.users.UpdatePlan(ctx, user.ID, plan, expiry); err != nil {
		return fmt.Errorf("update plan: %w", err)
	}
	entry.AppliedPlan = plan
	return nil
}

// Logs returns the most recent webhook logs, newest first.
func (s *WebhookService) Logs(ctx context.Context, limit int) ([]domain.WebhookLog, error) {
	if limit <= 0 {
		limit = DefaultWebhookLogLimit
	}
	return s.logs.ListRecentWebhookLogs(ctx, limit)
}

// WebhookTester posts simulated Kiwify documents to a webhook endpoint.
type WebhookTester struct {
	client *http.Client
	target string
	token  string
}

// NewWebhookTester creates a tester posting to target with the given token.
// A nil client selects one with a 10 second timeout.
func NewWebhookTester(client *http.Client, target, token string) *WebhookTester {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &WebhookTester{client: client, target: target, token: token}
}

// SimulationResult reports what the endpoint answered. Error is set instead
// of Status when the request failed.
type SimulationResult struct {
	Status int    `json:"status,omitempty"`
	Body   string `json:"body,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Simulate sends one event document for email.
func (t *WebhookTester) Simulate(ctx context.Context, email, evento, produto string) (*SimulationResult, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrValidation)
	}
	if evento == "" {
		return nil, fmt.Errorf("%w: evento is required", ErrValidation)
	}
	if produto == "" {
		produto = "Viva Leve 30+"
	}

	body, err := json.Marshal(domain.WebhookEvent{
		Email:   email,
		Evento:  evento,
		Produto: produto,
		Token:   t.token,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.target, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return &SimulationResult{Error: err.Error()}, nil
	}
	defer resp.Body.Close() //nolint:errcheck

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return &SimulationResult{Status: resp.StatusCode, Error: err.Error()}, nil
	}
	return &SimulationResult{Status: resp.StatusCode, Body: string(raw)}, nil
}
