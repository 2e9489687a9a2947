package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AlibekovAA/account-hub/internal/common/clock"
	"github.com/AlibekovAA/account-hub/internal/common/config"
	"github.com/AlibekovAA/account-hub/internal/common/constants"
	"github.com/AlibekovAA/account-hub/internal/common/crypto"
	"github.com/AlibekovAA/account-hub/internal/common/db"
	commonhttp "github.com/AlibekovAA/account-hub/internal/common/http"
	"github.com/AlibekovAA/account-hub/internal/common/logger"
	"github.com/AlibekovAA/account-hub/internal/common/mail"
	"github.com/AlibekovAA/account-hub/internal/common/server"
	posthttp "github.com/AlibekovAA/account-hub/internal/post/http"
	postrepo "github.com/AlibekovAA/account-hub/internal/post/repository"
	postservice "github.com/AlibekovAA/account-hub/internal/post/service"
	userhttp "github.com/AlibekovAA/account-hub/internal/user/http"
	userrepo "github.com/AlibekovAA/account-hub/internal/user/repository"
	userservice "github.com/AlibekovAA/account-hub/internal/user/service"
)

const ServiceName = "account-hub"

// Stores bundles the persistence the services run on.
type Stores struct {
	Users     userrepo.Repository
	Posts     postrepo.Repository
	TxManager db.TxManager
	Health    commonhttp.Pinger
}

type App struct {
	Log         *logger.Logger
	Config      config.AppConfig
	Pool        *pgxpool.Pool
	Mailer      *mail.AsyncSender
	UserService *userservice.UserService
	PostService *postservice.PostService
	RateLimiter *commonhttp.RouteRateLimiter

	health commonhttp.Pinger
}

// NewApp loads configuration, connects to Postgres and wires every service.
func NewApp(ctx context.Context) (*App, error) {
	log, err := logger.New(os.Getenv("LOG_DIR"), ServiceName, os.Getenv("LOG_LEVEL"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	cfg, err := config.LoadAppConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	pool, err := db.NewPool(ctx, log, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	if cfg.MigrateOnStart {
		if err := db.Migrate(ctx, pool, log); err != nil {
			pool.Close()
			return nil, err
		}
	}

	db.StartPoolMetrics(ctx, pool, constants.DBPoolMetricsInterval)

	sender, err := NewMailSender(cfg.Mail, log)
	if err != nil {
		pool.Close()
		return nil, err
	}

	app := Wire(log, cfg, Stores{
		Users:     userrepo.NewPgRepository(pool),
		Posts:     postrepo.NewPgRepository(pool),
		TxManager: db.NewPgTxManager(pool, log),
		Health:    pool,
	}, sender)
	app.Pool = pool

	return app, nil
}

// NewMailSender delivers over SMTP when a host is configured and only logs
// messages otherwise.
func NewMailSender(cfg config.MailConfig, log *logger.Logger) (mail.Sender, error) {
	if !cfg.Enabled() {
		log.Warnf("SMTP_HOST not set, certification mails will only be logged")
		return mail.NewLogSender(log), nil
	}
	return mail.NewSMTPSender(cfg, log)
}

// Wire builds the services on top of stores. Mail delivery runs in the
// background through an AsyncSender around sender.
func Wire(log *logger.Logger, cfg config.AppConfig, stores Stores, sender mail.Sender) *App {
	mailer := mail.NewAsyncSender(sender, log, cfg.Mail.SendTimeout)
	realClock := clock.NewRealClock()

	userService := userservice.NewUserService(userservice.UserServiceDeps{
		Repo:          stores.Users,
		TxManager:     stores.TxManager,
		Certification: userservice.NewCertificationService(mailer, cfg.PublicBaseURL, log),
		IDGenerator:   crypto.NewUUIDGenerator(),
		Clock:         realClock,
		Log:           log,
	})

	postService := postservice.NewPostService(postservice.PostServiceDeps{
		Repo:      stores.Posts,
		Users:     stores.Users,
		TxManager: stores.TxManager,
		Clock:     realClock,
		Log:       log,
	})

	return &App{
		Log:         log,
		Config:      cfg,
		Mailer:      mailer,
		UserService: userService,
		PostService: postService,
		RateLimiter: commonhttp.NewRouteRateLimiter(),
		health:      stores.Health,
	}
}

func (a *App) Routes() http.Handler {
	users := userhttp.NewHandler(a.UserService, userhttp.HandlerConfig{
		VerifyRedirectURL: a.Config.VerifyRedirectURL,
		RequestTimeout:    a.Config.RequestTimeout,
	}, a.Log)
	posts := posthttp.NewHandler(a.PostService, a.Config.RequestTimeout, a.Log)

	mux := http.NewServeMux()
	mux.Handle("/api/users", users)
	mux.Handle("/api/users/", users)
	mux.Handle("/api/posts", posts)
	mux.Handle("/api/posts/", posts)
	mux.HandleFunc("GET /health", commonhttp.HealthHandler(a.Log))
	if a.health != nil {
		mux.HandleFunc("GET /ready", commonhttp.ReadinessHandler(a.Log, a.health))
	}
	mux.Handle("GET /metrics", promhttp.Handler())

	return commonhttp.BuildBaseHandler(a.Log, mux, a.RateLimiter)
}

// ShutdownHooks drain pending mails before the pool and log are closed.
func (a *App) ShutdownHooks() []server.ShutdownHook {
	return []server.ShutdownHook{
		func(ctx context.Context) error {
			a.Log.Infof("%s: draining pending mails", ServiceName)
			return a.Mailer.Close(ctx)
		},
		func(ctx context.Context) error {
			a.RateLimiter.Stop()
			return nil
		},
		func(ctx context.Context) error {
			if a.Pool != nil {
				a.Pool.Close()
			}
			return nil
		},
		func(ctx context.Context) error {
			return a.Log.Close()
		},
	}
}
