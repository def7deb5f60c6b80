package app

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/assetd/internal/bundle"
	"github.com/MrSnakeDoc/assetd/internal/config"
	"github.com/MrSnakeDoc/assetd/internal/httpserver"
	"github.com/MrSnakeDoc/assetd/internal/httpserver/deps"
	"github.com/MrSnakeDoc/assetd/internal/logger"
	"github.com/MrSnakeDoc/assetd/internal/redis"
	"github.com/MrSnakeDoc/assetd/internal/resource"
	redisstore "github.com/MrSnakeDoc/assetd/internal/store/redis"
	"github.com/MrSnakeDoc/assetd/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
}

func New() (*App, error) {
	cfg := config.Load()
	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)
	start := time.Now()

	conn, err := cfg.Connector()
	if err != nil {
		return nil, fmt.Errorf("invalid listener configuration: %w", err)
	}

	var fsys fs.FS
	if cfg.ResourceDir != "" {
		loggerClient.Info("serving resources from directory",
			logger.String("dir", cfg.ResourceDir))
		fsys = os.DirFS(cfg.ResourceDir)
	} else {
		loggerClient.Info("serving embedded resource bundle")
		fsys = bundle.FS()
	}
	namespace := resource.NewFSNamespace(fsys, start)

	if err := namespace.Check(context.Background()); err != nil {
		return nil, err
	}
	for _, m := range cfg.Mounts {
		loggerClient.Info("mount configured",
			logger.String("prefix", m.Prefix),
			logger.String("root", m.Root),
			logger.String("welcome", m.Welcome))
	}

	// Hit counting is optional; a configured but unreachable Redis is fatal.
	var redisClient *goredis.Client
	var hits deps.HitStore
	if cfg.RedisAddr != "" {
		redisClient, err = redis.Connect(context.Background(), redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			DB:             cfg.RedisDB,
			PoolSize:       cfg.RedisPoolSize,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
		}, loggerClient)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		hits = redisstore.NewStore(redisClient)
	} else {
		loggerClient.Info("redis not configured, hit counting disabled")
	}

	d := deps.Deps{
		Logger:           loggerClient,
		StartTime:        start,
		Version:          version.Version,
		Commit:           version.Commit,
		BuildDate:        version.BuildDate,
		GoVersion:        version.GoVersion,
		TimeNow:          time.Now,
		Connector:        conn,
		Namespace:        namespace,
		Mounts:           cfg.Mounts,
		AllowedHosts:     cfg.AllowedHosts,
		AllowedCIDRS:     cfg.AllowedCIDRS,
		TrustProxy:       cfg.TrustProxy,
		RateBurst:        cfg.RateBurst,
		RateRefillPerMin: cfg.RateRefillPerMin,
		Hits:             hits,
	}

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      httpserver.New(cfg, loggerClient, d),
		redisClient: redisClient,
	}, nil
}

func (a *App) Run() error {
	defer func() { _ = a.logger.Sync() }()

	a.logger.Infof("🚀 Starting assetd v%s", version.Version)
	a.logger.Infof("assetd %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	a.logger.Info("✅ assetd stopped cleanly")
	return nil
}
