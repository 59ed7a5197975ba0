package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campuskit/notify/pkg/config"
	"github.com/campuskit/notify/pkg/logger"
	"github.com/campuskit/notify/pkg/mailer"
	"github.com/campuskit/notify/pkg/pg"
	"github.com/campuskit/notify/pkg/prefs"
	"github.com/campuskit/notify/pkg/processor"
	"github.com/campuskit/notify/pkg/push"
	"github.com/campuskit/notify/pkg/queue"
	"github.com/campuskit/notify/pkg/settings"
)

// appConfig collects everything the daemon needs from the environment
type appConfig struct {
	DB pg.Config

	// ActiveTypes is the comma-separated template catalog for deployments
	// without an external catalog service
	ActiveTypes []string `env:"NOTIFY_ACTIVE_TYPES" envSeparator:","`

	// EmailDevDir switches the email transport to the file-based dev
	// sender when no Postmark tokens are configured
	EmailDevDir string `env:"NOTIFY_EMAIL_DEV_DIR" envDefault:"./outbox"`

	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail          string `env:"SENDER_EMAIL" envDefault:"no-reply@notify.local"`
	SupportEmail         string `env:"SUPPORT_EMAIL" envDefault:"support@notify.local"`

	Concurrency int    `env:"NOTIFY_CONCURRENCY" envDefault:"4"`
	LogFormat   string `env:"NOTIFY_LOG_FORMAT" envDefault:"text"`
}

func loadConfig() (appConfig, error) {
	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		return appConfig{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg appConfig) *slog.Logger {
	log := logger.New(
		logger.WithFormat(logger.Format(cfg.LogFormat)),
		logger.WithOutput(os.Stderr),
		logger.WithService("notifyd"),
	)
	logger.SetAsDefault(log)
	return log
}

// app wires the storages, adapters and processor over one shared pool
type app struct {
	cfg    appConfig
	logger *slog.Logger
	pool   *pgxpool.Pool
	store  *queue.PostgresStorage
	prefs  *prefs.Service
	proc   *processor.Processor
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	log := newLogger(cfg)

	pool, err := pg.Connect(ctx, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	store, err := queue.NewPostgresStorage(pool)
	if err != nil {
		pool.Close()
		return nil, err
	}

	prefStore, err := prefs.NewPostgresStorage(pool)
	if err != nil {
		pool.Close()
		return nil, err
	}

	catalog := prefs.NewStaticCatalog(templatesFromTypes(cfg.ActiveTypes)...)
	prefService, err := prefs.NewService(prefStore, catalog,
		prefs.WithLogger(log.With(logger.Component("prefs"))))
	if err != nil {
		pool.Close()
		return nil, err
	}

	emailAdapter, err := buildEmailAdapter(cfg, pool)
	if err != nil {
		pool.Close()
		return nil, err
	}

	tokenStore, err := push.NewPostgresTokenStore(pool)
	if err != nil {
		pool.Close()
		return nil, err
	}
	pushAdapter, err := push.NewAdapter(push.NewDevSender(log.With(logger.Component("push"))), tokenStore)
	if err != nil {
		pool.Close()
		return nil, err
	}

	provider, err := settings.NewEnvProvider()
	if err != nil {
		pool.Close()
		return nil, err
	}

	proc, err := processor.New(store, prefService,
		processor.WithEmailAdapter(emailAdapter),
		processor.WithPushAdapter(pushAdapter),
		processor.WithTokenCleaner(pushAdapter),
		processor.WithSettingsProvider(provider),
		processor.WithConcurrency(cfg.Concurrency),
		processor.WithLogger(log.With(logger.Component("processor"))),
	)
	if err != nil {
		pool.Close()
		return nil, err
	}

	return &app{
		cfg:    cfg,
		logger: log,
		pool:   pool,
		store:  store,
		prefs:  prefService,
		proc:   proc,
	}, nil
}

func (a *app) Close() {
	a.pool.Close()
}

func buildEmailAdapter(cfg appConfig, pool *pgxpool.Pool) (*mailer.Adapter, error) {
	var sender mailer.EmailSender
	if cfg.PostmarkServerToken != "" && cfg.PostmarkAccountToken != "" {
		var err error
		sender, err = mailer.NewPostmarkClient(mailer.Config{
			PostmarkServerToken:  cfg.PostmarkServerToken,
			PostmarkAccountToken: cfg.PostmarkAccountToken,
			SenderEmail:          cfg.SenderEmail,
			SupportEmail:         cfg.SupportEmail,
		})
		if err != nil {
			return nil, err
		}
	} else {
		sender = mailer.NewDevSender(cfg.EmailDevDir)
	}

	return mailer.NewAdapter(sender, newContactDirectory(pool))
}

func templatesFromTypes(types []string) []prefs.Template {
	templates := make([]prefs.Template, 0, len(types))
	for _, t := range types {
		if t == "" {
			continue
		}
		templates = append(templates, prefs.Template{Type: t, DisplayName: t})
	}
	return templates
}
