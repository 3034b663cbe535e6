package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/qrave1/RoomSync/internal/application/config"
	"github.com/qrave1/RoomSync/internal/application/constant"
	"github.com/qrave1/RoomSync/internal/application/metric"
	"github.com/qrave1/RoomSync/internal/infra/adapters/memory"
	"github.com/qrave1/RoomSync/internal/infra/adapters/postgres"
	"github.com/qrave1/RoomSync/internal/infra/adapters/postgres/repository"
	"github.com/qrave1/RoomSync/internal/infra/ports/http/handlers"
	"github.com/qrave1/RoomSync/internal/infra/ports/http/server"
	"github.com/qrave1/RoomSync/internal/usecase"
)

func runApp() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.New()
	if err != nil {
		slog.Error("parse config", slog.Any(constant.Error, err))
		os.Exit(1)
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}

	slog.SetDefault(
		slog.New(
			slog.NewJSONHandler(
				os.Stdout,
				&slog.HandlerOptions{Level: level},
			),
		),
	)

	slog.Info(
		"Running app",
		slog.Bool("debug", cfg.Debug),
		slog.String("control_policy", cfg.ControlPolicy),
		slog.String("store", cfg.Store.Driver),
	)

	var (
		membershipRepo repository.MembershipRepository = repository.Noop{}
		chatRepo       repository.ChatRepository       = repository.Noop{}
	)

	if cfg.Store.Driver != config.StoreDriverNone {
		dbConn, err := openStore(ctx, cfg)
		if err != nil {
			slog.Error("connect to store", slog.Any(constant.Error, err))
			os.Exit(1)
		}
		defer dbConn.Close()

		membershipRepo = repository.NewMembershipRepo(dbConn)
		chatRepo = repository.NewChatRepo(dbConn)
	}

	connRepo := memory.NewConnectionRepository()
	roomRepo := memory.NewRoomRepository()

	persister := usecase.NewPersister(cfg.Store.WriteTimeout)
	loop := usecase.NewEventLoop(cfg.EventBuffer)

	signalingUsecase := usecase.NewSignalingUsecase(
		cfg,
		connRepo,
		roomRepo,
		membershipRepo,
		chatRepo,
		persister,
		time.Now,
	)
	dispatcher := usecase.NewDispatcher(loop, signalingUsecase)

	iceHandler := handlers.NewIceHandler(cfg)
	wsHandler := handlers.NewWebSocketHandler(cfg, connRepo, dispatcher)

	echoSrv := server.New(cfg, iceHandler, wsHandler)

	metricsSrv := metric.NewServer(connRepo, roomRepo)

	loopCtx, loopCancel := context.WithCancel(context.Background())
	go loop.Run(loopCtx)

	echoSrvCh := make(chan error, 1)
	metricsSrvCh := make(chan error, 1)

	// Запускаем HTTP сервер
	go func() {
		echoSrvCh <- echoSrv.Start(":" + cfg.Port)
	}()

	// Запускаем сервер метрик
	go func() {
		metricsSrvCh <- metricsSrv.Start(":" + cfg.MetricPort)
	}()

	slog.Info("Servers started", slog.String("port", cfg.Port), slog.String("metric_port", cfg.MetricPort))

	// Ожидаем сигнал завершения или ошибку сервера
	select {
	case <-ctx.Done():
		slog.Info("Shutting down servers due to context cancel")
	case err := <-echoSrvCh:
		slog.Error(
			"HTTP server failed",
			slog.Any(constant.Error, err),
		)
		os.Exit(1)
	case err := <-metricsSrvCh:
		slog.Error(
			"Metrics server failed",
			slog.Any(constant.Error, err),
		)
		os.Exit(1)
	}

	// Graceful shutdown
	timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer timeoutCancel()

	if err := echoSrv.Shutdown(timeoutCtx); err != nil {
		slog.Error("Failed to gracefully shutdown HTTP server", slog.Any(constant.Error, err))
	}

	if err := metricsSrv.Shutdown(timeoutCtx); err != nil {
		slog.Error("Failed to gracefully shutdown metric server", slog.Any(constant.Error, err))
	}

	loopCancel()
	<-loop.Done()

	if err := persister.Wait(timeoutCtx); err != nil {
		slog.Error("Pending store writes were not flushed", slog.Any(constant.Error, err))
	}
}

func openStore(ctx context.Context, cfg *config.Config) (*sqlx.DB, error) {
	driver, dsn := cfg.DriverName()

	db, err := postgres.NewDB(ctx, driver, dsn)
	if err != nil {
		return nil, err
	}

	if cfg.Store.AutoMigrate {
		if err = postgres.Migrate(ctx, db.DB, driver, "up"); err != nil {
			db.Close()
			return nil, err
		}
	}

	return db, nil
}
