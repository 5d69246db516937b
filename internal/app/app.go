package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/riskibarqy/draft-engine/external/auditlog"
	"github.com/riskibarqy/draft-engine/internal/config"
	domaudit "github.com/riskibarqy/draft-engine/internal/domain/audit"
	"github.com/riskibarqy/draft-engine/internal/domain/captain"
	"github.com/riskibarqy/draft-engine/internal/domain/draft"
	"github.com/riskibarqy/draft-engine/internal/domain/pick"
	"github.com/riskibarqy/draft-engine/internal/domain/player"
	"github.com/riskibarqy/draft-engine/internal/domain/queue"
	"github.com/riskibarqy/draft-engine/internal/infrastructure/account"
	"github.com/riskibarqy/draft-engine/internal/infrastructure/audit"
	"github.com/riskibarqy/draft-engine/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/draft-engine/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/draft-engine/internal/interfaces/httpapi"
	idgen "github.com/riskibarqy/draft-engine/internal/platform/id"
	"github.com/riskibarqy/draft-engine/internal/platform/logging"
	"github.com/riskibarqy/draft-engine/internal/platform/resilience"
	"github.com/riskibarqy/draft-engine/internal/usecase"
)

type repositories struct {
	drafts   draft.Repository
	captains captain.Repository
	players  player.Repository
	picks    pick.Repository
	queues   queue.Repository
	auditors []domaudit.Recorder
}

// App bundles the HTTP server with the resources it owns.
type App struct {
	Server *http.Server

	db         *sqlx.DB
	dispatcher *audit.Dispatcher
	logger     *logging.Logger
}

// New wires repositories, services and the HTTP router. An empty DB_URL runs
// the engine on seeded in-memory repositories, which is how local draft rooms
// are hosted.
func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	app := &App{logger: logger}

	repos, err := app.buildRepositories(cfg)
	if err != nil {
		return nil, err
	}

	if cfg.AuditWebhookEnabled {
		publisher, err := auditlog.NewWebhookPublisher(auditlog.WebhookPublisherConfig{
			URL:     cfg.AuditWebhookURL,
			Token:   cfg.AuditWebhookToken,
			Timeout: cfg.AuditWebhookTimeout,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.AuditWebhookCircuitEnabled,
				FailureThreshold: cfg.AuditWebhookCircuitFailures,
				OpenTimeout:      cfg.AuditWebhookCircuitOpen,
				HalfOpenMaxReq:   cfg.AuditWebhookCircuitHalfOpen,
			},
		}, logger)
		if err != nil {
			app.close()
			return nil, fmt.Errorf("build audit webhook publisher: %w", err)
		}
		repos.auditors = append(repos.auditors, publisher)
	}

	generator := idgen.NewUUIDGenerator()

	dispatcher, err := audit.NewDispatcher(repos.auditors, cfg.AuditWorkerCount, generator, logger)
	if err != nil {
		app.close()
		return nil, fmt.Errorf("build audit dispatcher: %w", err)
	}
	app.dispatcher = dispatcher

	authorizer := usecase.NewAuthorizer(repos.captains)

	pickSvc := usecase.NewPickService(
		repos.drafts, repos.captains, repos.players, repos.picks, repos.queues,
		authorizer, dispatcher, generator, logger,
	)
	autoPickSvc := usecase.NewAutoPickService(
		pickSvc, repos.drafts, repos.captains, repos.players, repos.queues,
		authorizer, dispatcher, logger,
	)
	queueSvc := usecase.NewQueueService(
		repos.drafts, repos.captains, repos.players, repos.queues,
		authorizer, dispatcher, generator, logger,
	)
	adminSvc := usecase.NewDraftAdminService(
		repos.drafts, repos.captains, repos.players, repos.picks, repos.queues,
		authorizer, dispatcher, logger,
	)
	querySvc := usecase.NewDraftQueryService(repos.drafts, repos.captains, repos.players, repos.picks)

	accountClient := account.NewClient(
		&http.Client{Timeout: cfg.AccountTimeout},
		account.ClientConfig{
			BaseURL:        cfg.AccountBaseURL,
			IntrospectPath: cfg.AccountIntrospectPath,
			CacheTTL:       cfg.AccountCacheTTL,
			CacheMaxSize:   cfg.AccountCacheMaxSize,
			Timeout:        cfg.AccountTimeout,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.AccountCircuitEnabled,
				FailureThreshold: cfg.AccountCircuitFailureCount,
				OpenTimeout:      cfg.AccountCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.AccountCircuitHalfOpenMaxReq,
			},
		},
		logger,
	)

	var limiter *resilience.RateLimiter
	if cfg.RateLimitEnabled {
		limiter = resilience.NewRateLimiter(cfg.RateLimitMax, cfg.RateLimitWindow)
	}

	handler := httpapi.NewHandler(pickSvc, autoPickSvc, queueSvc, adminSvc, querySvc, logger)
	router := httpapi.NewRouter(handler, accountClient, logger, limiter, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if server.Addr == "" {
		app.close()
		return nil, fmt.Errorf("http server addr cannot be empty")
	}
	app.Server = server

	return app, nil
}

func (a *App) buildRepositories(cfg config.Config) (repositories, error) {
	if cfg.DBURL == "" {
		a.logger.Info("repositories initialized", "backend", "memory")

		seedDrafts := memory.SeedDrafts()
		for _, d := range seedDrafts {
			if err := d.ValidateBasic(); err != nil {
				return repositories{}, fmt.Errorf("seed draft %s: %w", d.ID, err)
			}
		}

		captains := memory.NewCaptainRepository(memory.SeedCaptains())
		return repositories{
			drafts:   memory.NewDraftRepository(seedDrafts),
			captains: captains,
			players:  memory.NewPlayerRepository(memory.SeedPlayers()),
			picks:    memory.NewPickRepository(),
			queues:   memory.NewQueueRepository(captains),
			auditors: []domaudit.Recorder{memory.NewAuditRecorder(cfg.AuditMemoryBufferSize)},
		}, nil
	}

	dbURL := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Connect("postgres", dbURL,
		otelsql.WithDBName(dbNameFromURL(dbURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return repositories{}, fmt.Errorf("connect postgres: %w", err)
	}
	a.db = db

	a.logger.Info("repositories initialized", "backend", "postgres", "db_name", dbNameFromURL(dbURL))

	return repositories{
		drafts:   postgres.NewDraftRepository(db),
		captains: postgres.NewCaptainRepository(db),
		players:  postgres.NewPlayerRepository(db),
		picks:    postgres.NewPickRepository(db),
		queues:   postgres.NewQueueRepository(db),
		auditors: []domaudit.Recorder{postgres.NewAuditRepository(db)},
	}, nil
}

// Shutdown stops the HTTP server, then releases the audit pool and database.
func (a *App) Shutdown(ctx context.Context) error {
	var shutdownErr error
	if a.Server != nil {
		shutdownErr = a.Server.Shutdown(ctx)
	}
	a.close()

	return shutdownErr
}

func (a *App) close() {
	if a.dispatcher != nil {
		a.dispatcher.Close()
		a.dispatcher = nil
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("close database", "error", err)
		}
		a.db = nil
	}
}
