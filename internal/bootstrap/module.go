package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"courtside/internal/bootstrap/config"
	"courtside/internal/bootstrap/database"
	"courtside/internal/bootstrap/logging"
	cacheinfra "courtside/internal/infrastructure/cache"
	sqliterepo "courtside/internal/infrastructure/persistence/sqlite/repository"
	sqliteuow "courtside/internal/infrastructure/persistence/sqlite/uow"
	"courtside/internal/infrastructure/provider/llm"
	"courtside/internal/infrastructure/provider/offline"
	"courtside/internal/infrastructure/provider/places"
	"courtside/internal/ports"
	ingestuc "courtside/internal/usecase/ingest"
	"courtside/internal/usecase/moderation"
)

var Module = fx.Options(
	fx.Provide(provideConfig),
	fx.Provide(provideDatabase),
	fx.Provide(provideApp),
	fx.Provide(
		fx.Annotate(
			sqliterepo.NewCatalogRepository,
			fx.As(new(ports.CatalogRepository)),
		),
	),
	fx.Provide(
		fx.Annotate(
			sqliteuow.NewUnitOfWork,
			fx.As(new(ports.UnitOfWork)),
		),
	),
	fx.Provide(
		fx.Annotate(
			cacheinfra.NewSQLiteCache,
			fx.As(new(ports.Cache)),
		),
	),
	fx.Provide(provideProviders),
	fx.Provide(ingestuc.NewService),
	fx.Provide(moderation.NewService),
)

type configParams struct {
	fx.In

	Ctx        context.Context
	ConfigFile string `name:"configFile"`
}

func provideConfig(p configParams) (config.Config, error) {
	ctx := logging.WithAttrs(p.Ctx, slog.String("component", "bootstrap.fx"))
	return config.Load(ctx, p.ConfigFile)
}

func provideDatabase(lc fx.Lifecycle, ctx context.Context, cfg config.Config) (*gorm.DB, error) {
	logCtx := logging.WithAttrs(ctx, slog.String("component", "bootstrap.fx"))

	db, err := database.Open(logCtx, cfg.Database)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	})

	return db, nil
}

func provideApp(cfg config.Config, db *gorm.DB) *App {
	return &App{
		Config: cfg,
		DB:     db,
	}
}

// provideProviders selects live vs offline integrations once, at
// construction. Missing credentials are logged loudly here, a single time,
// so operators notice silent degradation to fallback data.
func provideProviders(ctx context.Context, cfg config.Config) (ingestuc.Providers, error) {
	logCtx := logging.WithAttrs(ctx, slog.String("component", "bootstrap.providers"))

	fallbackLocations, err := offline.NewLocationProvider()
	if err != nil {
		return ingestuc.Providers{}, err
	}
	fallbackEvents, err := offline.NewEventTextProvider()
	if err != nil {
		return ingestuc.Providers{}, err
	}

	providers := ingestuc.Providers{
		FallbackLocations: fallbackLocations,
		FallbackEvents:    fallbackEvents,
	}

	timeout := time.Duration(cfg.Providers.TimeoutSeconds) * time.Second

	if key := cfg.Providers.Places.APIKey; key != "" {
		providers.LiveLocations = places.NewClient(cfg.Providers.Places.BaseURL, key, timeout)
	} else {
		logging.Warn(logCtx, "places api key not configured, facility search uses offline fallback data")
	}

	if key := cfg.Providers.OpenAI.APIKey; key != "" {
		providers.LiveEvents = llm.NewClient(key, cfg.Providers.OpenAI.Model)
	} else {
		logging.Warn(logCtx, "openai api key not configured, event search uses offline fallback data")
	}

	return providers, nil
}
