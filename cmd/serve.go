package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"freelancehub/config"
	"freelancehub/database"
	"freelancehub/events"
	"freelancehub/handlers"
	"freelancehub/middleware"
	"freelancehub/services"
	"freelancehub/storage"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()

		db, err := database.Open(cfg)
		if err != nil {
			return err
		}
		if err := database.SeedDefaultAdmin(db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			return err
		}

		store, closeStore, err := newStore(cfg)
		if err != nil {
			return err
		}
		defer closeStore()

		publisher, closePublisher, err := newPublisher(cfg)
		if err != nil {
			return err
		}
		defer closePublisher()

		limiter, closeLimiter := newLimiter(cfg)
		defer closeLimiter()

		router := handlers.NewRouter(handlers.RouterConfig{
			Services:       services.New(db, store, publisher),
			Authenticator:  middleware.NewAuthenticator(cfg.JWTSecret, cfg.JWTExpiration, db),
			Store:          store,
			AuthLimiter:    limiter,
			UploadMaxBytes: cfg.UploadMaxBytes,
			CORSOrigins:    cfg.CORSOrigins,
		})

		server := &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			slog.Info("server starting", slog.String("addr", server.Addr))
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return err
		}

		slog.Info("server shut down gracefully")
		return nil
	},
}

func newStore(cfg *config.Config) (storage.Store, func(), error) {
	switch cfg.StorageBackend {
	case "hdfs":
		store, err := storage.NewHDFSStore(cfg.HDFSNamenode, cfg.HDFSUser, cfg.HDFSDir)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { store.Close() }, nil
	case "local", "":
		store, err := storage.NewLocalStore(cfg.UploadDir)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil
	default:
		return nil, nil, errors.New("unsupported storage backend " + cfg.StorageBackend)
	}
}

func newPublisher(cfg *config.Config) (events.Publisher, func(), error) {
	if cfg.NATSURL == "" {
		return events.NewLogPublisher(slog.Default()), func() {}, nil
	}

	publisher, err := events.NewNATSPublisher(cfg.NATSURL)
	if err != nil {
		return nil, nil, err
	}
	slog.Info("publishing events to nats", slog.String("url", cfg.NATSURL))
	return publisher, func() { publisher.Close() }, nil
}

// newLimiter prefers Redis so replicas share one window, and falls back to
// a process-local limiter when Redis is not configured or not reachable.
func newLimiter(cfg *config.Config) (middleware.Limiter, func()) {
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := client.Ping(ctx).Err()
		cancel()
		if err == nil {
			return middleware.NewRedisLimiter(client, cfg.AuthRateLimit, time.Minute), func() { client.Close() }
		}

		slog.Warn("redis unavailable, using in-memory rate limiter", slog.String("error", err.Error()))
		client.Close()
	}
	return middleware.NewMemoryLimiter(cfg.AuthRateLimit, time.Minute), func() {}
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
