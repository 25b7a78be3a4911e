package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"homebuddy-auth/internal/authz"
	"homebuddy-auth/internal/config"
	"homebuddy-auth/internal/events"
	"homebuddy-auth/internal/observability/logging"
	"homebuddy-auth/internal/observability/metrics"
	impl "homebuddy-auth/internal/service/impl"
	"homebuddy-auth/internal/store"
	httpx "homebuddy-auth/internal/transport/http"
	"homebuddy-auth/pkg/db"

	"golang.org/x/sync/errgroup"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx))
}

func run(ctx context.Context) int {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		return 1
	}

	logger := logging.NewLogger(logging.Config{
		ServiceName: "auth",
		Environment: cfg.Environment,
		Level:       cfg.LogLevel,
	})
	slog.SetDefault(logger)
	metrics.MustRegister("auth")

	logger.Info("starting service")

	gdb, err := db.OpenGorm(db.Config{
		DSN:             cfg.DatabaseURL,
		LogSQL:          cfg.DBLogSQL,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	})
	if err != nil {
		logger.Error("open database", "error", err)
		return 1
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		logger.Error("database handle", "error", err)
		return 1
	}
	defer sqlDB.Close()

	st := store.New(gdb)
	if cfg.AutoMigrate {
		if err := st.Migrate(ctx); err != nil {
			logger.Error("automigrate", "error", err)
			return 1
		}
	}

	pub := events.NewLogPublisher(logger)
	pw := impl.NewPasswordServiceBcrypt(cfg.BcryptCost)
	ts, err := impl.NewTokenServiceHS256(impl.TokenConfig{SigningKey: []byte(cfg.JWTSecret)}, logger)
	if err != nil {
		logger.Error("token service", "error", err)
		return 1
	}
	hs := impl.NewHouseholdServiceImpl(st, impl.HouseholdConfig{
		MaxInviteCodeAttempts: cfg.MaxInviteCodeAttempts,
		DefaultMaxMembers:     cfg.DefaultMaxMembers,
	}, pub, logger)
	as := impl.NewAuthServiceImpl(st, pw, ts, hs, pub, logger)

	handler := httpx.NewRouter(httpx.Deps{
		Auth:               as,
		Households:         hs,
		Bearer:             authz.NewBearerValidator(ts, logger),
		Logger:             logger,
		CORSOrigins:        cfg.CORSOrigins,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		TrustProxy:         cfg.TrustProxy,
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("auth service listening", "addr", srv.Addr)
		return srv.ListenAndServe()
	})
	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("stopping http server")

		shutCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server stopped with error", "error", err)
		return 1
	}
	logger.Info("http server stopped")
	return 0
}
