package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/hotelops/guestdesk/internal/api/http"
	"github.com/hotelops/guestdesk/internal/api/http/handlers"
	"github.com/hotelops/guestdesk/internal/auth"
	"github.com/hotelops/guestdesk/internal/classify"
	"github.com/hotelops/guestdesk/internal/config"
	"github.com/hotelops/guestdesk/internal/events"
	"github.com/hotelops/guestdesk/internal/observability"
	"github.com/hotelops/guestdesk/internal/persistence"
	"github.com/hotelops/guestdesk/internal/realtime"
	"github.com/hotelops/guestdesk/internal/repository"
	"github.com/hotelops/guestdesk/internal/service"
	"github.com/hotelops/guestdesk/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()

	pool := pg.PoolHandle()
	ticketRepo := repository.NewTicketRepository(pool)
	messageRepo := repository.NewTicketMessageRepository(pool)
	roomRepo := repository.NewRoomRepository(pool)
	staffRepo := repository.NewStaffRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	hub := realtime.NewHub(logger, metrics)
	bridge := realtime.NewBridge(redis.Client, cfg.Redis.Channel, hub, logger)
	bridge.Start(ctx)
	defer bridge.Stop()

	classifier := classify.NewHTTPClassifier(cfg.Classifier, logger)

	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo:  ticketRepo,
		MessageRepo: messageRepo,
		RoomRepo:    roomRepo,
		Dispatcher:  dispatcher,
		Logger:      logger,
	})
	chatService := service.NewChatService(classifier, ticketService, logger)
	roomService := service.NewRoomService(roomRepo)
	authService := service.NewAuthService(cfg.Auth, staffRepo)
	notificationService := service.NewNotificationService(dispatcher, bridge, logger)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), staffRepo)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Tickets:        handlers.NewTicketsHandler(ticketService, chatService, roomService),
		Chat:           handlers.NewChatHandler(chatService),
		Rooms:          handlers.NewRoomsHandler(roomService),
		Realtime:       handlers.NewRealtimeHandler(hub, logger),
		Staff:          handlers.NewStaffHandler(authService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
