package app

import (
	"context"
	"fmt"
	"log/slog"

	httpapp "xr_archive/internal/app/http"
	"xr_archive/internal/clients/gemini"
	"xr_archive/internal/config"
	"xr_archive/internal/lib/logger/sl"
	"xr_archive/internal/mesh"
	"xr_archive/internal/repository"
	ai "xr_archive/internal/services/ai_service"
	archive "xr_archive/internal/services/archive_service"
	editor "xr_archive/internal/services/editor_service"
	image "xr_archive/internal/services/image_service"
	filestorage "xr_archive/internal/storage/filestorage"
	"xr_archive/internal/storage/postgresql"
	redisstorage "xr_archive/internal/storage/redis"
	httprouters "xr_archive/internal/transport/http"
)

// backend источник и приёмник изменений архива: mesh.Client или repository.RecordStore
type backend interface {
	archive.Backend
	Teardown() error
}

type App struct {
	log        *slog.Logger
	HTTPServer *httpapp.Server
	Archive    *archive.ArchiveService

	backend backend
	closers []func() error
}

func New(ctx context.Context, log *slog.Logger, cfg *config.Config) (*App, error) {
	const op = "app.New"

	a := &App{log: log}

	archiveService, err := a.setupArchive(ctx, cfg)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	a.Archive = archiveService

	var generator ai.Generator
	if cfg.AI.APIKey != "" {
		client, err := gemini.New(ctx, cfg.AI.APIKey, cfg.AI.Model, cfg.AI.Timeout)
		if err != nil {
			a.close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		generator = client
	} else {
		log.Warn("GEMINI_API_KEY is not set, AI features are disabled")
	}
	aiService := ai.NewAIService(log, generator, cfg.AI.CacheTTL)

	editorService := editor.NewEditorService(log, archiveService, aiService, nil)

	fileStorage, err := filestorage.NewLocalFileStorage(cfg.FileStorage.BaseDir, cfg.FileStorage.BaseURL)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	imageService := image.NewImageService(log, fileStorage, cfg.FileStorage.MaxSize)

	routers := httprouters.NewRouter(log, archiveService, editorService, aiService, imageService)

	a.HTTPServer = httpapp.New(log, cfg.HTTP.Host, cfg.HTTP.Port, fileStorage.BaseDir(), cfg.HTTP.Timeout, routers)
	a.HTTPServer.BuildRouters()

	return a, nil
}

// setupArchive собирает архив в выбранном варианте и запускает доставку изменений
func (a *App) setupArchive(ctx context.Context, cfg *config.Config) (*archive.ArchiveService, error) {
	log := a.log.With(
		slog.String("variant", cfg.Variant),
	)

	switch cfg.Variant {
	case config.VariantMesh:
		redisClient := a.redisClient(ctx, cfg)

		ns := redisstorage.NewNamespace(a.log, redisClient, cfg.Mesh.Namespace)
		client := mesh.New(a.log, ns, mesh.WithSeedDelay(cfg.Mesh.SeedDelay))
		svc := archive.NewArchiveService(a.log, client)

		if err := client.Connect(ctx, svc); err != nil {
			return nil, err
		}
		a.backend = client

		log.Info("archive is replicated", slog.String("namespace", cfg.Mesh.Namespace))

		return svc, nil

	case config.VariantLocal:
		slot, err := a.slot(ctx, cfg)
		if err != nil {
			return nil, err
		}

		store := repository.NewRecordStore(a.log, slot)
		svc := archive.NewArchiveService(a.log, store)

		if err := store.Load(ctx, svc); err != nil {
			return nil, err
		}
		a.backend = store

		log.Info("archive is local", slog.String("slot", cfg.Local.Slot))

		return svc, nil
	}

	return nil, fmt.Errorf("unknown archive variant %q", cfg.Variant)
}

func (a *App) slot(ctx context.Context, cfg *config.Config) (repository.Slot, error) {
	switch cfg.Local.Slot {
	case config.SlotFile:
		return filestorage.NewSlot(cfg.Local.Path), nil

	case config.SlotRedis:
		return redisstorage.NewSlot(a.redisClient(ctx, cfg), cfg.Local.Key), nil

	case config.SlotPostgres:
		pg, err := postgresql.New(ctx, cfg.Local.DSN)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() error {
			pg.Stop()
			return nil
		})

		if err := pg.Migrate(ctx); err != nil {
			return nil, err
		}

		return pg.Slot(cfg.Local.Key), nil
	}

	return nil, fmt.Errorf("unknown slot %q", cfg.Local.Slot)
}

func (a *App) redisClient(ctx context.Context, cfg *config.Config) *redisstorage.Client {
	client := redisstorage.NewClient(cfg.Redis.RedisAddr, cfg.Redis.RedisPassword, cfg.Redis.RedisDB)
	a.closers = append(a.closers, client.Close)

	if err := client.HealthCheck(ctx); err != nil {
		a.log.Warn("redis is not reachable yet", slog.String("addr", cfg.Redis.RedisAddr), sl.Err(err))
	}

	return client
}

// Stop останавливает HTTP-сервер, отписывается от изменений и закрывает хранилища
func (a *App) Stop() {
	const op = "app.Stop"

	log := a.log.With(
		slog.String("op", op),
	)

	if a.HTTPServer != nil {
		if err := a.HTTPServer.Stop(); err != nil {
			log.Error("failed to stop http server", sl.Err(err))
		}
	}

	a.close()
}

func (a *App) close() {
	if a.backend != nil {
		if err := a.backend.Teardown(); err != nil {
			a.log.Error("failed to teardown archive backend", sl.Err(err))
		}
		a.backend = nil
	}

	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.log.Error("failed to close resource", sl.Err(err))
		}
	}
	a.closers = nil
}
