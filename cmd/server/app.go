package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/KirkDiggler/grimoire-api/internal/catalog"
	"github.com/KirkDiggler/grimoire-api/internal/clients/external"
	"github.com/KirkDiggler/grimoire-api/internal/config"
	"github.com/KirkDiggler/grimoire-api/internal/engine"
	"github.com/KirkDiggler/grimoire-api/internal/errors"
	v1 "github.com/KirkDiggler/grimoire-api/internal/handlers/api/v1"
	"github.com/KirkDiggler/grimoire-api/internal/orchestrators/character"
	"github.com/KirkDiggler/grimoire-api/internal/orchestrators/library"
	"github.com/KirkDiggler/grimoire-api/internal/pkg/idgen"
	"github.com/KirkDiggler/grimoire-api/internal/pkg/usertoken"
	"github.com/KirkDiggler/grimoire-api/internal/postgres"
	"github.com/KirkDiggler/grimoire-api/internal/redis"
	characterrepo "github.com/KirkDiggler/grimoire-api/internal/repositories/character"
	sharerepo "github.com/KirkDiggler/grimoire-api/internal/repositories/share"
)

const pingTimeout = 5 * time.Second

// application is the wired server: HTTP routes plus the storage handles
// that must be closed on shutdown.
type application struct {
	routes  *v1.Handler
	ping    func(ctx context.Context) error
	closers []func() error
}

func (a *application) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			slog.Warn("failed to close resource", "error", err)
		}
	}
}

// loadCatalog reads the rules catalog, with the configured supplementary
// spell source.
func loadCatalog(ctx context.Context, cfg *config.CatalogConfig) (*catalog.Store, error) {
	catalogCfg := &catalog.Config{}

	if cfg.ClassesFile != "" {
		data, err := os.ReadFile(cfg.ClassesFile)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read classes file %s", cfg.ClassesFile)
		}
		catalogCfg.ClassesJSON = data
	}
	if cfg.SpellsFile != "" {
		data, err := os.ReadFile(cfg.SpellsFile)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read spells file %s", cfg.SpellsFile)
		}
		catalogCfg.SpellsJSON = data
	}

	switch cfg.SpellSource {
	case config.SpellSourceFile:
		catalogCfg.Supplementary = catalog.NewFileSource(cfg.SpellSourceFile)
	case config.SpellSourceDND5eAPI:
		source, err := external.New(&external.Config{
			BaseURL:     cfg.SpellAPIBaseURL,
			HTTPTimeout: cfg.SpellAPITimeout,
			CacheTTL:    cfg.SpellAPICacheTTL,
		})
		if err != nil {
			return nil, errors.Wrap(err, "failed to create spell API client")
		}
		catalogCfg.Supplementary = source
	}

	store, err := catalog.Load(ctx, catalogCfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load rules catalog")
	}

	slog.InfoContext(ctx, "rules catalog loaded",
		"classes", len(store.Classes()),
		"spells", len(store.AllSpells()),
		"spells_origin", store.SpellsOrigin())
	for _, problem := range store.Problems() {
		slog.WarnContext(ctx, "rules catalog problem", "problem", problem)
	}
	return store, nil
}

// buildApplication wires storage, orchestrators and handlers.
func buildApplication(ctx context.Context, cfg *config.Config) (*application, error) {
	rules, err := loadCatalog(ctx, &cfg.Catalog)
	if err != nil {
		return nil, err
	}

	app := &application{}
	characterRepo, shareRepo, err := app.openStorage(ctx, &cfg.Storage)
	if err != nil {
		app.Close()
		return nil, err
	}

	rulesEngine, err := engine.New(&engine.Config{Catalog: rules})
	if err != nil {
		app.Close()
		return nil, err
	}

	characterService, err := character.New(&character.Config{
		CharacterRepo: characterRepo,
		ShareRepo:     shareRepo,
		Engine:        rulesEngine,
		Catalog:       rules,
		IDGenerator:   idgen.NewUUID(""),
		ShareTTL:      cfg.Share.TokenTTL,
	})
	if err != nil {
		app.Close()
		return nil, errors.Wrap(err, "failed to create character orchestrator")
	}

	libraryService, err := library.New(&library.Config{Catalog: rules, Engine: rulesEngine})
	if err != nil {
		app.Close()
		return nil, errors.Wrap(err, "failed to create library orchestrator")
	}

	verifier, err := usertoken.NewVerifier(tokenConfig(&cfg.Auth))
	if err != nil {
		app.Close()
		return nil, errors.Wrap(err, "failed to create token verifier")
	}

	app.routes, err = v1.NewHandler(&v1.HandlerConfig{
		CharacterService: characterService,
		LibraryService:   libraryService,
		Verifier:         verifier,
	})
	if err != nil {
		app.Close()
		return nil, errors.Wrap(err, "failed to create handler")
	}

	return app, nil
}

func tokenConfig(cfg *config.AuthConfig) usertoken.Config {
	return usertoken.Config{
		Secret:   cfg.Secret,
		Issuer:   cfg.Issuer,
		Audience: cfg.Audience,
		Leeway:   cfg.Leeway,
	}
}

// openStorage connects the character store and the privileged share store.
// When no privileged credential is configured the share store reuses the
// caller credential.
func (a *application) openStorage(
	ctx context.Context,
	cfg *config.StorageConfig,
) (characterrepo.Repository, sharerepo.Repository, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return a.openPostgres(ctx, cfg)
	default:
		return a.openRedis(ctx, cfg)
	}
}

func (a *application) openRedis(
	ctx context.Context,
	cfg *config.StorageConfig,
) (characterrepo.Repository, sharerepo.Repository, error) {
	client, err := redis.NewClient(cfg.RedisEndpoint, &redis.Options{
		Username: cfg.RedisUsername,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
		UseTLS:   cfg.RedisTLS,
	})
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to create redis client")
	}
	a.closers = append(a.closers, client.Close)

	privileged := client
	if cfg.RedisPrivilegedUsername != "" {
		privileged, err = redis.NewClient(cfg.RedisEndpoint, &redis.Options{
			Username: cfg.RedisPrivilegedUsername,
			Password: cfg.RedisPrivilegedPassword,
			DB:       cfg.RedisDB,
			UseTLS:   cfg.RedisTLS,
		})
		if err != nil {
			return nil, nil, errors.Wrap(err, "failed to create privileged redis client")
		}
		a.closers = append(a.closers, privileged.Close)
	}

	a.ping = func(ctx context.Context) error {
		return redis.Ping(ctx, client, pingTimeout)
	}
	if err := a.ping(ctx); err != nil {
		return nil, nil, errors.Wrap(err, "redis is unreachable")
	}

	characterRepo, err := characterrepo.NewRedis(&characterrepo.RedisConfig{Client: client})
	if err != nil {
		return nil, nil, err
	}
	shareRepo, err := sharerepo.NewRedis(&sharerepo.RedisConfig{Client: privileged})
	if err != nil {
		return nil, nil, err
	}

	slog.InfoContext(ctx, "using redis storage",
		"endpoint", cfg.RedisEndpoint,
		"privileged_user", cfg.RedisPrivilegedUsername != "")
	return characterRepo, shareRepo, nil
}

func (a *application) openPostgres(
	ctx context.Context,
	cfg *config.StorageConfig,
) (characterrepo.Repository, sharerepo.Repository, error) {
	db, err := postgres.Open(cfg.PostgresDSN, &postgres.Options{Logger: slog.Default()})
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to open postgres")
	}
	a.closers = append(a.closers, func() error { return postgres.Close(db) })

	privileged := db
	if cfg.PostgresPrivilegedDSN != "" {
		privileged, err = postgres.Open(cfg.PostgresPrivilegedDSN, &postgres.Options{Logger: slog.Default()})
		if err != nil {
			return nil, nil, errors.Wrap(err, "failed to open privileged postgres")
		}
		a.closers = append(a.closers, func() error { return postgres.Close(privileged) })
	}

	a.ping = func(ctx context.Context) error {
		return postgres.Ping(ctx, db, pingTimeout)
	}
	if err := a.ping(ctx); err != nil {
		return nil, nil, errors.Wrap(err, "postgres is unreachable")
	}

	if cfg.AutoMigrate {
		if err := characterrepo.Migrate(privileged.WithContext(ctx)); err != nil {
			return nil, nil, err
		}
	}

	characterRepo, err := characterrepo.NewPostgres(&characterrepo.PostgresConfig{DB: db})
	if err != nil {
		return nil, nil, err
	}
	shareRepo, err := sharerepo.NewPostgres(&sharerepo.PostgresConfig{DB: privileged})
	if err != nil {
		return nil, nil, err
	}

	slog.InfoContext(ctx, "using postgres storage",
		"privileged_dsn", cfg.PostgresPrivilegedDSN != "")
	return characterRepo, shareRepo, nil
}
