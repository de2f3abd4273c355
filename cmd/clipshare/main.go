package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/clipshare/clipshare/internal/auth/jwt"
	authService "github.com/clipshare/clipshare/internal/auth/service"
	clipService "github.com/clipshare/clipshare/internal/clip/service"
	"github.com/clipshare/clipshare/internal/config"
	lg "github.com/clipshare/clipshare/internal/infra/log"
	"github.com/clipshare/clipshare/internal/infra/server"
	"github.com/clipshare/clipshare/internal/migrate"
	pgRepo "github.com/clipshare/clipshare/internal/repo/postgres"
	redisRepo "github.com/clipshare/clipshare/internal/repo/redis"
	httpTransport "github.com/clipshare/clipshare/internal/transport/http"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	zapLog := lg.Must(cfg.LogLevel)
	defer zapLog.Sync()

	if cfg.JWTSecret == config.DefaultJWTSecret {
		zapLog.Warn("JWT_SECRET is not set, using the insecure default; do not run this in production")
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{TranslateError: true})
	if err != nil {
		zapLog.Fatal("failed to connect to database", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		zapLog.Fatal("db handle", zap.Error(err))
	}
	defer sqlDB.Close()
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := migrate.Up(sqlDB); err != nil {
		zapLog.Fatal("run migrations", zap.Error(err))
	}

	var clipCache clipService.ShortLinkCache
	if cfg.RedisAddress != "" {
		redisCli := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddress,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisCli.Close()
		clipCache = redisRepo.NewRedisClipCache(redisCli, time.Minute)
		zapLog.Info("short link cache enabled", zap.String("addr", cfg.RedisAddress))
	}

	validate := validator.New()

	userRepo := pgRepo.NewPostgresUserRepo(db)
	sessionRepo := pgRepo.NewPostgresSessionRepo(db)
	clipRepo := pgRepo.NewPostgresClipRepo(db)
	jwtUtil := jwt.NewJWTUtil(cfg.JWTSecret)

	authSvc := authService.NewAuthService(
		userRepo, sessionRepo, jwtUtil,
		cfg.AccessTokenTTL, cfg.RefreshTokenTTL,
		validate, zapLog,
	)
	clipSvc := clipService.NewClipService(clipRepo, clipCache, validate, zapLog)

	router := httpTransport.NewRouter(authSvc, clipSvc, sqlDB.PingContext, zapLog)

	rootCtx, cancel := context.WithCancel(context.Background())
	g, ctx := errgroup.WithContext(rootCtx)

	g.Go(func() error {
		return server.StartHTTPServer(ctx, fmt.Sprintf(":%d", cfg.ServerPort), router, zapLog)
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
		zapLog.Info("shutdown signal received")
	case <-ctx.Done():
	}
	cancel()

	if err := g.Wait(); err != nil {
		zapLog.Error("server terminated", zap.Error(err))
	}
}
