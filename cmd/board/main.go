package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/hotelops/guestdesk/internal/board"
	"github.com/hotelops/guestdesk/internal/config"
	"github.com/hotelops/guestdesk/internal/observability"
)

// The board runtime merges two producers into one view: push events from
// the managers websocket channel and a periodic full snapshot pull. Either
// source alone keeps the board usable; together they keep it fresh.
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

	reconciler := board.NewReconciler()
	onAlert := func(alerts []board.Alert) {
		for _, alert := range alerts {
			logger.Info("new service request",
				zap.String("ticket_id", alert.TicketID),
				zap.String("subject", alert.Message),
				zap.Bool("multi_service", reconciler.MultiService(alert.TicketID)))
		}
	}

	client := board.NewClient(cfg.Board.APIBaseURL, cfg.Board.StaffToken)
	poller := board.NewPoller(reconciler, client.FetchSnapshot, onAlert, cfg.Board.PollInterval(), logger)
	poller.Start(ctx)
	defer poller.Stop()

	wsURL := cfg.Board.WebsocketURL
	if cfg.Board.StaffToken != "" {
		wsURL += "?token=" + cfg.Board.StaffToken
	}
	listener := board.NewListener(reconciler, wsURL, onAlert, logger)
	listener.Start(ctx)
	defer listener.Stop()

	go reportStats(ctx, reconciler, logger)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}

func reportStats(ctx context.Context, reconciler *board.Reconciler, logger *zap.Logger) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			stats := reconciler.Stats()
			logger.Info("board state",
				zap.Int("raised", stats.Raised),
				zap.Int("in_progress", stats.InProgress),
				zap.Int("completed", stats.Completed),
				zap.Int("total", stats.Total))
		}
	}
}
