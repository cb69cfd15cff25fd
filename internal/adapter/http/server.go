package adapthttp

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"vivaleve/internal/app"
	"vivaleve/internal/domain"
)

// Services groups the application services the adapter drives.
type Services struct {
	Auth         *app.AuthService
	Weight       *app.WeightService
	Achievements *app.AchievementService
	Catalog      *app.CatalogService
	Admin        *app.AdminService
	Webhooks     *app.WebhookService
	Tester       *app.WebhookTester
}

// Config holds adapter settings.
type Config struct {
	WebDir           string
	SessionTTL       time.Duration
	TrustForwardAuth bool
	OIDC             OIDCConfig
}

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	svc Services
	cfg Config
	log *zap.Logger
	now func() time.Time

	// testUser bypasses authentication when set.
	testUser *domain.User
}

// New creates a Server wired to the given application services.
func New(svc Services, cfg Config, log *zap.Logger) *Server {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = app.DefaultSessionTTL
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{svc: svc, cfg: cfg, log: log, now: time.Now}
}

// WithoutAuth disables authentication and serves every request as u.
// Intended for tests.
func (s *Server) WithoutAuth(u *domain.User) *Server {
	s.testUser = u
	return s
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})
	api.HandleFunc("/config", s.handleConfig)

	api.HandleFunc("/auth/register", s.handleRegister)
	api.HandleFunc("/auth/login", s.handleLogin)
	api.HandleFunc("/auth/logout", s.handleLogout)
	api.HandleFunc("/auth/sso/login", s.handleSSOLogin)
	api.HandleFunc("/auth/sso/callback", s.handleSSOCallback)

	api.HandleFunc("/webhooks/kiwify", s.handleKiwifyWebhook)

	api.HandleFunc("/bmi/ranges", s.handleBMIRanges)
	api.HandleFunc("/bmi", s.handleBMI)

	api.Handle("/me", s.authed(s.handleMe))
	api.Handle("/weights", s.authed(s.handleWeights))
	api.Handle("/weights/summary", s.authed(s.handleWeightSummary))
	api.Handle("/weights/{id}", s.authed(s.handleWeightEntry))
	api.Handle("/achievements", s.authed(s.handleAchievements))
	api.Handle("/recipes", s.authed(s.handleRecipes))
	api.Handle("/recipes/{id}", s.authed(s.handleRecipe))
	api.Handle("/exercises", s.authed(s.handleExercises))

	api.Handle("/admin/users", s.adminOnly(s.handleAdminUsers))
	api.Handle("/admin/users/{id}", s.adminOnly(s.handleAdminUser))
	api.Handle("/admin/recipes", s.adminOnly(s.handleAdminRecipes))
	api.Handle("/admin/webhooks/logs", s.adminOnly(s.handleWebhookLogs))
	api.Handle("/admin/webhooks/simulate", s.adminOnly(s.handleWebhookSimulate))

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", api))
	root.Handle("/", spaFromDisk(s.cfg.WebDir))

	return s.loggingMiddleware(withNoCache(root))
}

func (s *Server) authed(h http.HandlerFunc) http.Handler {
	return s.authMiddleware(h)
}

func (s *Server) adminOnly(h http.HandlerFunc) http.Handler {
	return s.authMiddleware(requireAdmin(h))
}
