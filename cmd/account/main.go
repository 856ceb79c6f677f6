package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/Skotchmaster/health_account/internal/cache"
	"github.com/Skotchmaster/health_account/internal/config"
	"github.com/Skotchmaster/health_account/internal/db"
	"github.com/Skotchmaster/health_account/internal/hash"
	"github.com/Skotchmaster/health_account/internal/httpserver"
	"github.com/Skotchmaster/health_account/internal/logging"
	authmw "github.com/Skotchmaster/health_account/internal/middleware/auth"
	"github.com/Skotchmaster/health_account/internal/mykafka"
	"github.com/Skotchmaster/health_account/internal/repo"
	"github.com/Skotchmaster/health_account/internal/service"
	"github.com/Skotchmaster/health_account/internal/tokens"
	"github.com/Skotchmaster/health_account/internal/uow"
)

func main() {
	cfg := config.MustValid(config.Load())

	logger := logging.New(cfg.ServiceName, cfg.LogLevel)
	slog.SetDefault(logger)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	gdb, err := db.Open(initCtx, cfg.DatabaseURL)
	if err != nil {
		cancel()
		log.Fatalf("db init error: %v", err)
	}
	if err := db.Migrate(initCtx, gdb); err != nil {
		cancel()
		log.Fatalf("db migrate error: %v", err)
	}
	rdb, err := cache.Open(initCtx, cache.Options{
		Addr:     cfg.RedisAddr,
		Username: cfg.RedisUsername,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	cancel()
	if err != nil {
		log.Fatalf("redis init error: %v", err)
	}

	prod, err := mykafka.NewProducer(cfg.KafkaBrokers)
	if err != nil {
		log.Fatal(err)
	}

	codec, err := tokens.NewCodec(tokens.Options{
		Secret:     cfg.SecretKey,
		Algorithm:  cfg.JWTAlgorithm,
		AccessTTL:  cfg.AccessTTL,
		RefreshTTL: cfg.RefreshTTL,
	})
	if err != nil {
		log.Fatalf("token codec: %v", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = httpserver.ErrorHandler
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), logging.RequestLogger(logger))

	deps := buildDeps(gdb, rdb, prod, cfg.KafkaSessionTopic, codec, hash.NewBcrypt())
	deps.Ready = ready(gdb, rdb)
	httpserver.Register(e, deps)

	srv := &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	go func() {
		logger.Info("http_server_started", "addr", cfg.ServerAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting_down")

	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server_shutdown_error", "error", err)
	}
	if err := prod.Close(); err != nil {
		logger.Error("kafka_close_error", "error", err)
	}
	if err := rdb.Close(); err != nil {
		logger.Error("redis_close_error", "error", err)
	}
	if err := db.Close(gdb); err != nil {
		logger.Error("db_close_error", "error", err)
	}

	logger.Info("shutdown_complete")
}

// buildDeps wires services and handlers. The blacklist shares the codec's
// clock so revocation TTLs line up with token exp.
func buildDeps(gdb *gorm.DB, rdb *redis.Client, pub repo.EventPublisher, topic string, codec *tokens.Codec, hasher hash.Hasher) *httpserver.Deps {
	dbUOW := uow.NewGormUOW(gdb)
	users := service.NewUserService(dbUOW, hasher)
	roles := service.NewRoleService(dbUOW)
	blacklist := service.NewBlacklistService(uow.NewRedisUOW(rdb, codec.Now))
	authSvc := &service.AuthService{
		Users:     users,
		Roles:     roles,
		Blacklist: blacklist,
		Sessions:  service.NewSessionService(uow.NewKafkaUOW(pub, topic)),
		Codec:     codec,
		Hasher:    hasher,
	}
	return &httpserver.Deps{
		Auth:     &httpserver.AuthHTTP{Svc: authSvc, Blacklist: blacklist},
		Accounts: &httpserver.AccountsHTTP{Users: users},
		Doctors:  &httpserver.DoctorsHTTP{Users: users},
		Tokens:   authmw.New(authSvc),
	}
}

func ready(gdb *gorm.DB, rdb *redis.Client) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()

		sqlDB, err := gdb.DB()
		if err != nil {
			return err
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			return err
		}
		return rdb.Ping(ctx).Err()
	}
}
