package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/PrayatshuMisra/hacka-nexus/internal/api"
	"github.com/PrayatshuMisra/hacka-nexus/internal/auth"
	"github.com/PrayatshuMisra/hacka-nexus/internal/config"
	"github.com/PrayatshuMisra/hacka-nexus/internal/db"
	"github.com/PrayatshuMisra/hacka-nexus/internal/diagnostics"
	"github.com/PrayatshuMisra/hacka-nexus/internal/dispatch"
	"github.com/PrayatshuMisra/hacka-nexus/internal/metrics"
	"github.com/PrayatshuMisra/hacka-nexus/internal/repository"
	"github.com/PrayatshuMisra/hacka-nexus/internal/runanywhere"
	"github.com/PrayatshuMisra/hacka-nexus/internal/service"
	"github.com/PrayatshuMisra/hacka-nexus/pkg/logger"
	"github.com/hellofresh/health-go/v5"
	"github.com/hellofresh/health-go/v5/checks/pgx5"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/urfave/cli"
	"go.uber.org/zap"
)

const version = "v0.1.0"

func main() {
	app := cli.NewApp()

	app.Name = "clubhub"
	app.Usage = "club membership and task dispatch backend"
	app.Version = version

	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:   "config, c",
			Usage:  "load configuration from `FILE`",
			EnvVar: "CLUBHUB_CONFIG",
		},
	}

	app.Commands = []cli.Command{
		{
			Name:   "serve",
			Usage:  "start the HTTP server",
			Action: serve,
		},
		{
			Name:   "check",
			Usage:  "test the database connection and seed a test event when none exist",
			Action: check,
		},
	}
	app.Action = serve

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setup(c *cli.Context) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(c.GlobalString("config"))
	if err != nil {
		return nil, nil, err
	}

	l, err := logger.NewLogger(cfg.Log.Level)
	if err != nil {
		return nil, nil, errors.Wrap(err, "create logger")
	}

	return cfg, l, nil
}

func serve(c *cli.Context) error {
	cfg, l, err := setup(c)
	if err != nil {
		return err
	}
	defer l.Sync()

	l.Info("starting application", zap.String("version", version))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.Database.DSN, cfg.Database.PingTimeout)
	if err != nil {
		l.Error("failed to connect to database", zap.Error(err))
		return err
	}
	defer pool.Close()

	l.Info("database connection established")

	transactor := db.NewPgxTransactor(pool)

	memberRepo := repository.NewPgxMemberRepository(pool)
	applicationRepo := repository.NewPgxApplicationRepository(pool)
	clubRepo := repository.NewPgxClubRepository(pool)

	memberships := service.NewMembershipService(transactor).
		WithMemberRepo(memberRepo).
		WithApplicationRepo(applicationRepo).
		WithClubRepo(clubRepo)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	dispatcher := dispatch.NewDispatcher(cfg.RunAnywhere.APIKey,
		dispatch.Provider{Name: "runanywhere", New: runanywhere.NewProvider(cfg.RunAnywhere.BaseURL, cfg.RunAnywhere.Timeout)},
		dispatch.Provider{Name: "local-mock", New: runanywhere.MockProvider},
	).WithRecorder(m)

	if cfg.RunAnywhere.APIKey == "" {
		l.Warn("RUNANYWHERE_API_KEY is not set, task requests will fail")
	}

	healthChecker, err := api.NewHealthChecker(version, health.Config{
		Name:      "postgres",
		Timeout:   cfg.Database.PingTimeout,
		SkipOnErr: false,
		Check:     pgx5.New(pgx5.Config{DSN: cfg.Database.DSN}),
	})
	if err != nil {
		return err
	}

	handler := api.NewHandler(l).
		WithTaskDispatcher(dispatcher).
		WithMembershipService(memberships).
		WithHealthChecker(healthChecker).
		WithMetrics(m).
		WithTaskRateLimit(cfg.Server.TaskRateLimit, cfg.Server.TaskRateBurst)

	if cfg.Auth.TokenSecret != "" {
		signer, err := auth.NewSigner(cfg.Auth.TokenSecret)
		if err != nil {
			return err
		}
		handler.WithSigner(signer)
	}

	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	handler.RegisterRoutes(e)

	errCh := make(chan error, 1)
	go func() {
		l.Info("server starting", zap.String("addr", cfg.Server.Addr))
		if err := e.Start(cfg.Server.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err = <-errCh:
		if err != nil {
			l.Error("server failed", zap.Error(err))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	l.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	return e.Shutdown(shutdownCtx)
}

func check(c *cli.Context) error {
	cfg, l, err := setup(c)
	if err != nil {
		return err
	}
	defer l.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := db.NewPool(ctx, cfg.Database.DSN, cfg.Database.PingTimeout)
	if err != nil {
		l.Error("failed to connect to database", zap.Error(err))
		return err
	}
	defer pool.Close()

	checker := diagnostics.NewChecker(pool,
		repository.NewPgxClubRepository(pool),
		repository.NewPgxEventRepository(pool),
		l,
	)

	report, err := checker.Run(ctx)
	if err != nil {
		l.Error("connectivity check failed", zap.Error(err))
		return err
	}

	for _, ev := range report.Upcoming {
		fields := []zap.Field{
			zap.Int64("event_id", ev.ID),
			zap.String("title", ev.Title),
			zap.Time("start_date", ev.StartDate),
		}
		if ev.Club != nil {
			fields = append(fields, zap.String("club", ev.Club.Name))
		}
		l.Info("upcoming event", fields...)
	}

	l.Info("connectivity check passed",
		zap.Int64("events", report.EventCount),
		zap.Int("upcoming", len(report.Upcoming)))

	return nil
}
