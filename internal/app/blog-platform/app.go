package blogplatform

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/blog-platform/internal/cache"
	"github.com/magabrotheeeer/blog-platform/internal/config"
	"github.com/magabrotheeeer/blog-platform/internal/lib/jwt"
	"github.com/magabrotheeeer/blog-platform/internal/migrations"
	authservice "github.com/magabrotheeeer/blog-platform/internal/services/auth"
	commentservice "github.com/magabrotheeeer/blog-platform/internal/services/comment"
	likeservice "github.com/magabrotheeeer/blog-platform/internal/services/like"
	postservice "github.com/magabrotheeeer/blog-platform/internal/services/post"
	tagservice "github.com/magabrotheeeer/blog-platform/internal/services/tag"
	userservice "github.com/magabrotheeeer/blog-platform/internal/services/user"
	"github.com/magabrotheeeer/blog-platform/internal/storage"
)

// App агрегирует все зависимости основного приложения.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *storage.Storage
	cache  *cache.Cache
}

// New создает новое приложение: подключает базу, применяет миграции,
// поднимает кеш и собирает все сервисы с маршрутами.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := storage.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to init storage: %w", err)
	}

	if err := migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	if err := storage.CheckDatabaseReady(db); err != nil {
		return nil, fmt.Errorf("database is not ready: %w", err)
	}

	redisCache, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to init cache: %w", err)
	}

	jwtMaker := jwt.NewJWTMaker(
		cfg.AccessSecretKey,
		cfg.RefreshSecretKey,
		cfg.AccessTokenTTL,
		cfg.RefreshTokenTTL,
	)

	authService := authservice.NewAuthService(db, jwtMaker)
	userService := userservice.NewUserService(db)
	postService := postservice.NewPostService(db, redisCache, logger)
	commentService := commentservice.NewCommentService(db)
	likeService := likeservice.NewLikeService(db)
	tagService := tagservice.NewTagService(db)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, jwtMaker,
		authService, userService, postService, commentService, likeService, tagService)

	server := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: server,
		logger: logger,
		db:     db,
		cache:  redisCache,
	}, nil
}

// Run запускает HTTP-сервер и блокируется до отмены контекста,
// после чего корректно останавливает сервер и закрывает соединения.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting http server", slog.String("address", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		a.logger.Info("shutting down http server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown http server: %w", err)
	}

	if err := a.cache.Db.Close(); err != nil {
		a.logger.Error("failed to close redis client", slog.Any("err", err))
	}
	if err := a.db.DB.Close(); err != nil {
		a.logger.Error("failed to close database", slog.Any("err", err))
	}

	return nil
}
