package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/baechuer/helpdesk/internal/application/auth"
	"github.com/baechuer/helpdesk/internal/application/comment"
	"github.com/baechuer/helpdesk/internal/application/events"
	"github.com/baechuer/helpdesk/internal/application/notify"
	"github.com/baechuer/helpdesk/internal/application/ticket"
	"github.com/baechuer/helpdesk/internal/application/user"
	"github.com/baechuer/helpdesk/internal/config"
	"github.com/baechuer/helpdesk/internal/infrastructure/caching/redis"
	"github.com/baechuer/helpdesk/internal/infrastructure/db/postgres"
	"github.com/baechuer/helpdesk/internal/infrastructure/email"
	"github.com/baechuer/helpdesk/internal/infrastructure/memory"
	"github.com/baechuer/helpdesk/internal/infrastructure/messaging/rabbitmq"
	"github.com/baechuer/helpdesk/internal/infrastructure/security"
	"github.com/baechuer/helpdesk/internal/logger"
	"github.com/baechuer/helpdesk/internal/transport/http/handlers"
	"github.com/baechuer/helpdesk/internal/transport/http/router"
)

/*
========================
 Public entry (prod)
========================
*/

func NewServer() (*http.Server, func(), error) {
	return newServer(defaultDeps())
}

// NewServerWithDeps allows injecting dependencies for testing
func NewServerWithDeps(deps Deps) (*http.Server, func(), error) {
	return newServer(deps)
}

/*
========================
 Dependency injection
========================
*/

type Deps struct {
	LoadConfig func() (*config.Config, error)

	NewDB func(dsn string, debug bool) (*sql.DB, error)

	Migrate func(ctx context.Context, db *sql.DB) (int, error)

	// NewRedis is optional; nil or a failing client falls back to in-process stores.
	NewRedis func(url string) (*redis.Client, error)

	NewPublisher func(url, exchange string) (PublisherCloser, error)

	NewSender func(cfg *config.Config) (notify.Sender, error)
}

type PublisherCloser interface {
	events.Publisher
	Close() error
}

type sysClock struct{}

func (sysClock) Now() time.Time { return time.Now().UTC() }

/*
========================
 Core bootstrap logic
========================
*/

func newServer(deps Deps) (*http.Server, func(), error) {
	// 0) config
	cfg, err := deps.LoadConfig()
	if err != nil {
		return nil, nil, err
	}

	// 1) db
	db, err := deps.NewDB(cfg.DatabaseURL, cfg.DBDebug)
	if err != nil {
		return nil, nil, err
	}

	cleanupFns := []func(){
		func() { _ = db.Close() },
	}
	fail := func(err error) (*http.Server, func(), error) {
		runCleanup(cleanupFns)
		return nil, nil, err
	}

	if cfg.DBAutoMigrate && deps.Migrate != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		n, err := deps.Migrate(ctx, db)
		cancel()
		if err != nil {
			return fail(err)
		}
		logger.Logger.Info().Int("applied", n).Msg("migrations applied")
	}

	userRepo := postgres.NewUserRepo(db)
	ticketRepo := postgres.NewTicketRepo(db)
	commentRepo := postgres.NewCommentRepo(db)

	// 2) redis (best-effort)
	var redisCli *redis.Client
	if deps.NewRedis != nil && cfg.RedisURL != "" {
		c, err := deps.NewRedis(cfg.RedisURL)
		if err != nil {
			logger.Logger.Warn().Err(err).Msg("redis unavailable; cache disabled")
		} else {
			logger.Logger.Info().Msg("redis connected")
			redisCli = c
			cleanupFns = append(cleanupFns, func() { _ = c.Close() })
		}
	}

	var denylist auth.TokenDenylist
	var listCache ticket.Cache
	if redisCli != nil {
		denylist = redis.NewTokenDenylist(redisCli)
		listCache = redisCli
	} else {
		denylist = memory.NewTokenDenylist()
	}

	// 3) publisher
	var pub events.Publisher = events.NoopPublisher{}
	if cfg.RabbitURL != "" && deps.NewPublisher != nil {
		p, err := deps.NewPublisher(cfg.RabbitURL, cfg.RabbitExchange)
		if err != nil {
			if !cfg.IsDev() {
				return fail(err)
			}
			logger.Logger.Warn().Err(err).Msg("rabbitmq unavailable; using noop publisher")
		} else {
			pub = p
			cleanupFns = append(cleanupFns, func() { _ = p.Close() })
		}
	}

	// 4) mail
	sender, err := deps.NewSender(cfg)
	if err != nil {
		return fail(err)
	}
	notifier, err := notify.NewNotifier(sender, logger.Logger, cfg.AppName, cfg.MailTimeout)
	if err != nil {
		return fail(err)
	}

	// 5) security
	logger.Logger.Info().Str("issuer", cfg.JWTIssuer).Msg("initializing jwt signer")
	hasher := security.NewBcryptHasher(cfg.BcryptCost)
	signer := security.NewJWTSigner(cfg.JWTSecret, cfg.JWTIssuer)
	clock := sysClock{}

	// 6) services
	authSvc := auth.NewService(userRepo, hasher, signer, denylist, clock, cfg.SessionTTL)
	userSvc := user.NewService(userRepo, hasher, pub, clock)
	ticketSvc := ticket.New(ticketRepo, userRepo, notifier, pub, listCache, clock, cfg.TicketListCacheTTL)
	commentSvc := comment.New(commentRepo, ticketRepo, userRepo, notifier, pub, clock)

	// 7) router
	mux, err := router.New(router.Deps{
		Health:    handlers.NewHealthHandler(db),
		Users:     handlers.NewUsersHandler(userSvc),
		Auth:      handlers.NewAuthHandler(authSvc, !cfg.IsDev()),
		Tickets:   handlers.NewTicketsHandler(ticketSvc),
		Comments:  handlers.NewCommentsHandler(commentSvc),
		Mail:      handlers.NewMailHandler(notifier),
		Dashboard: handlers.NewDashboardHandler(ticketSvc),
		Authn:     authSvc,
	}, router.Options{
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		InternalSecret:     cfg.InternalSecret,
		RLEnabled:          cfg.RLEnabled,
		RLLimit:            cfg.RLLimit,
		RLWindow:           cfg.RLWindow,
		LoginRLLimit:       cfg.LoginRLLimit,
	})
	if err != nil {
		return fail(err)
	}

	// 8) server
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	cleanup := func() {
		runCleanup(cleanupFns)
	}

	return srv, cleanup, nil
}

/*
========================
 Default deps (prod)
========================
*/

func defaultDeps() Deps {
	return Deps{
		LoadConfig: config.Load,
		NewDB:      config.NewDB,
		Migrate:    postgres.Migrate,
		NewRedis:   redis.New,
		NewPublisher: func(url, exchange string) (PublisherCloser, error) {
			return rabbitmq.NewPublisher(url, exchange)
		},
		NewSender: NewSender,
	}
}

// NewSender builds the outbound mail transport selected by MAIL_PROVIDER.
func NewSender(cfg *config.Config) (notify.Sender, error) {
	switch cfg.MailProvider {
	case config.MailProviderSMTP:
		return email.NewSMTPSender(email.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.MailFrom,
			FromName: cfg.MailFromName,
			Timeout:  cfg.MailTimeout,
			Insecure: cfg.SMTPInsecure,
		}, logger.Logger), nil
	case config.MailProviderSendGrid:
		return email.NewSendGridSender(cfg.SendGridAPIKey, cfg.MailFrom, cfg.MailFromName, logger.Logger), nil
	case config.MailProviderFake:
		return email.NewFakeSender(logger.Logger, cfg.MailFakeFail), nil
	default:
		return nil, errors.New("bootstrap: unknown mail provider " + cfg.MailProvider)
	}
}

/*
========================
 helpers
========================
*/

func runCleanup(fns []func()) {
	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
}
