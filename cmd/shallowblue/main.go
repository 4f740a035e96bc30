package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/tmccall/shallowblue/internal/config"
	"github.com/tmccall/shallowblue/internal/web"
)

func main() {
	// Parse command line flags
	var showHelp bool
	flag.BoolVar(&showHelp, "help", false, "Show help information")
	flag.BoolVar(&showHelp, "h", false, "Show help information")
	flag.Parse()

	if showHelp {
		showHelpMessage()
		return
	}

	// Setup logging
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	if level, err := zerolog.ParseLevel(cfg.Development.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	// Create game registry and websocket hub
	games := web.NewRegistry()
	hub := web.NewHub()
	go hub.Run()

	// Create service
	service := web.NewService(games, hub, cfg)

	// Setup routes
	router := web.NewRouter(service, hub)

	// Create server
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

func showHelpMessage() {
	fmt.Println(`Shallowblue Game Service

DESCRIPTION:
    HTTP service around the shallowblue chess engine. Hosts in-memory game
    sessions with full move validation, undo, checkmate and stalemate
    detection, an optional automated opponent, live WebSocket updates and
    PNG board snapshots.

USAGE:
    shallowblue [OPTIONS]

OPTIONS:
    -h, --help    Show this help message

CONFIGURATION:
    The service is configured via config.yaml in the current directory.

    Example config.yaml:
        server:
          host: localhost
          port: 8080

        engine:
          auto_opponent: true   # default for new games

        render:
          square_size: 64       # board snapshot square size in pixels

        development:
          debug: true
          log_level: debug

API ENDPOINTS:
    GET  /api/health                        - Service health check
    POST /api/games                         - Create a new game
    GET  /api/games/{id}                    - Fetch full game state
    POST /api/games/{id}/moves              - Submit a move
    POST /api/games/{id}/undo               - Undo the last move
    PUT  /api/games/{id}/auto-opponent      - Toggle the automated opponent
    GET  /api/games/{id}/board.png          - Render the board as PNG
    GET  /ws?gameId={id}                    - WebSocket game updates

BEHAVIOR:
    - Rejects illegal moves without changing game state
    - Automated opponent answers with a two-ply material search
    - Graceful shutdown on SIGINT/SIGTERM

EXAMPLES:
    # Start with default configuration
    shallowblue

    # Create a game via API
    curl -X POST http://localhost:8080/api/games \
      -H "Content-Type: application/json" \
      -d '{"auto_opponent": true}'`)
}
