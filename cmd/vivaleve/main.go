package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/sync/errgroup"

	adapthttp "vivaleve/internal/adapter/http"
	"vivaleve/internal/adapter/memory"
	"vivaleve/internal/adapter/postgres"
	"vivaleve/internal/app"
	"vivaleve/internal/catalog"
	"vivaleve/internal/config"
	"vivaleve/internal/domain"
	"vivaleve/internal/logging"
)

const (
	sessionJanitorInterval = 10 * time.Minute
	shutdownTimeout        = 15 * time.Second
)

var (
	cfg    *config.Config
	logger *zap.Logger

	adminName     string
	adminEmail    string
	adminPassword string
)

var rootCmd = &cobra.Command{
	Use:   "vivaleve",
	Short: "Viva Leve 30+ weight-loss companion service",
	Long: `vivaleve serves the Viva Leve 30+ web app and its JSON API:
weight tracking, achievements, recipes, exercise videos and the Kiwify
payment webhook.

Run without arguments to start the HTTP server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadDotEnv(); err != nil {
			return fmt.Errorf("load .env: %w", err)
		}
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		logger, err = logging.New(cfg.LogLevel, cfg.LogFormat)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create the first administrator account",
	Long:  "Creates a premium administrator. Fails if any user already exists.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCreateAdmin(cmd.Context())
	},
}

func init() {
	createAdminCmd.Flags().StringVar(&adminName, "name", "Admin", "display name")
	createAdminCmd.Flags().StringVar(&adminEmail, "email", "", "login email")
	createAdminCmd.Flags().StringVar(&adminPassword, "password", "", "login password")
	_ = createAdminCmd.MarkFlagRequired("email")
	_ = createAdminCmd.MarkFlagRequired("password")

	rootCmd.AddCommand(serveCmd, createAdminCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// store bundles the repositories of one backend.
type store struct {
	users        domain.UserRepository
	sessions     domain.SessionRepository
	weights      domain.WeightRepository
	achievements domain.AchievementRepository
	webhookLogs  domain.WebhookLogRepository
	close        func() error
}

func openStore() (*store, error) {
	if cfg.DatabaseURL == "" {
		logger.Warn("DATABASE_URL not set, using in-memory store; data is lost on restart")
		db := memory.New()
		return &store{
			users:        db,
			sessions:     db.NewSessionRepo(),
			weights:      db,
			achievements: db,
			webhookLogs:  db,
			close:        func() error { return nil },
		}, nil
	}

	db, err := postgres.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("db open: %w", err)
	}
	return &store{
		users:        db,
		sessions:     postgres.NewSessionRepo(db),
		weights:      db,
		achievements: db,
		webhookLogs:  db,
		close:        db.Close,
	}, nil
}

func oidcConfig(ctx context.Context) (adapthttp.OIDCConfig, error) {
	if !cfg.OIDC.Enabled() {
		return adapthttp.OIDCConfig{}, nil
	}
	provider, err := oidc.NewProvider(ctx, cfg.OIDC.Issuer)
	if err != nil {
		return adapthttp.OIDCConfig{}, fmt.Errorf("oidc provider %s: %w", cfg.OIDC.Issuer, err)
	}
	return adapthttp.OIDCConfig{
		Enabled:  true,
		Provider: provider,
		OAuth2Config: oauth2.Config{
			ClientID:     cfg.OIDC.ClientID,
			ClientSecret: cfg.OIDC.ClientSecret,
			RedirectURL:  cfg.OIDC.RedirectURL,
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
		},
	}, nil
}

func runServe(ctx context.Context) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.close() }()

	cat, err := catalog.Load()
	if err != nil {
		return fmt.Errorf("catalog: %w", err)
	}

	oidcCfg, err := oidcConfig(ctx)
	if err != nil {
		return err
	}

	if cfg.KiwifyToken == "" {
		logger.Warn("KIWIFY_TOKEN not set, webhook requests will be rejected")
	}

	authSvc := app.NewAuthService(st.users, st.sessions, cfg.SessionTTL)
	if cfg.Admin.Enabled() {
		created, err := authSvc.EnsureAdmin(ctx, cfg.Admin.Name, cfg.Admin.Email, cfg.Admin.Password)
		if err != nil {
			return fmt.Errorf("bootstrap admin: %w", err)
		}
		if created {
			logger.Info("admin created", zap.String("email", cfg.Admin.Email))
		}
	}

	svc := adapthttp.Services{
		Auth:         authSvc,
		Weight:       app.NewWeightService(st.weights, st.achievements),
		Achievements: app.NewAchievementService(st.weights, st.achievements),
		Catalog:      app.NewCatalogService(cat),
		Admin:        app.NewAdminService(st.users, st.weights, st.achievements),
		Webhooks:     app.NewWebhookService(st.users, st.webhookLogs, cfg.KiwifyToken, logger.Named("webhook")),
		Tester:       app.NewWebhookTester(nil, cfg.WebhookTargetURL, cfg.KiwifyToken),
	}

	h := adapthttp.New(svc, adapthttp.Config{
		WebDir:           cfg.WebDir,
		SessionTTL:       cfg.SessionTTL,
		TrustForwardAuth: cfg.TrustForwardAuth,
		OIDC:             oidcCfg,
	}, logger.Named("http")).Handler()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", zap.String("addr", cfg.Addr), zap.Bool("sso", oidcCfg.Enabled))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		return authSvc.RunSessionJanitor(gctx, sessionJanitorInterval, logger.Named("janitor"))
	})

	return g.Wait()
}

func runCreateAdmin(ctx context.Context) error {
	if cfg.DatabaseURL == "" {
		return errors.New("create-admin needs DATABASE_URL; for the in-memory store set ADMIN_EMAIL and ADMIN_PASSWORD")
	}
	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.close() }()

	authSvc := app.NewAuthService(st.users, st.sessions, cfg.SessionTTL)
	u, err := authSvc.CreateInitialUser(ctx, adminName, adminEmail, adminPassword)
	if err != nil {
		return err
	}
	logger.Info("admin created", zap.Int64("id", u.ID), zap.String("email", u.Email))
	return nil
}
