// Command numrace starts the numeric-puzzle race server.
//
// It supports two modes:
//  1. "server" (default) – runs the HTTP server exposing the REST API,
//     WebSocket rooms, and an /mcp HTTP endpoint
//  2. "stdio-mcp" – runs an MCP stdio server over the same game service
//
// Flags control host/port, oracle binaries, pool database, debug logging,
// version output, and optional ngrok tunneling for easy external access
// during development.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"

	"github.com/vkoval/numrace/api"
	"github.com/vkoval/numrace/game/config"
	"github.com/vkoval/numrace/game/pool"
	"github.com/vkoval/numrace/game/service"
	"github.com/vkoval/numrace/game/session"
	"github.com/vkoval/numrace/oracle"
	transportmcp "github.com/vkoval/numrace/transport/mcp"
	"github.com/vkoval/numrace/transport/websocket"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "numrace server"
)

// Configuration flags override environment values for the common knobs.
var (
	port        = flag.Int("port", 0, "HTTP server port (overrides PORT)")
	host        = flag.String("host", "", "HTTP server host (overrides HOST)")
	checkerPath = flag.String("checker", "", "Path to the checker binary (overrides CHECKER_PATH)")
	solverPath  = flag.String("solver", "", "Path to the solver binary (overrides SOLVER_PATH)")
	poolPath    = flag.String("pool", "", "Path to the number pool database (overrides POOL_PATH)")
	debug       = flag.Bool("debug", false, "Enable debug logging")
	version     = flag.Bool("version", false, "Show version information")
	ngrokFlag   = flag.Bool("ngrok", false, "Enable ngrok tunnel")
)

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS] [MODE]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "%s v%s\n\n", AppName, Version)
		fmt.Fprintf(os.Stderr, "Available modes:\n")
		fmt.Fprintf(os.Stderr, "  server, http     Run HTTP server with API, WebSocket, and MCP endpoint (default)\n")
		fmt.Fprintf(os.Stderr, "  stdio-mcp        Run MCP stdio server\n")
		fmt.Fprintf(os.Stderr, "  mcp              Alias for stdio-mcp\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
	}
}

// main parses flags, initializes services, and starts the selected mode.
func main() {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	flag.Parse()

	if *version {
		fmt.Printf("%s v%s\n", AppName, Version)
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	applyFlagOverrides(cfg)

	logger := setupLogger(cfg)

	// Determine mode from command
	args := flag.Args()
	mode := "server" // default
	if len(args) > 0 {
		mode = args[0]
	}

	logger.Info().Str("mode", mode).Str("version", Version).Msg("starting numrace")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gameService, hub, cleanup, err := initializeServices(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize services")
	}
	defer cleanup()

	switch mode {
	case "stdio-mcp", "mcp-stdio", "mcp":
		runStdioMCP(gameService, logger)

	case "server", "http":
		runHTTPServer(ctx, cancel, cfg, gameService, hub, logger)

	default:
		logger.Fatal().Str("mode", mode).Msg("unknown mode, use 'server' (default) or 'stdio-mcp'")
	}
}

// applyFlagOverrides lets command-line flags win over environment values.
func applyFlagOverrides(cfg *config.Config) {
	if *port != 0 {
		cfg.Port = *port
	}
	if *host != "" {
		cfg.Host = *host
	}
	if *checkerPath != "" {
		cfg.CheckerPath = *checkerPath
	}
	if *solverPath != "" {
		cfg.SolverPath = *solverPath
	}
	if *poolPath != "" {
		cfg.PoolPath = *poolPath
	}
	if *ngrokFlag {
		cfg.NgrokEnabled = true
	}
	if *debug {
		cfg.LogLevel = "debug"
	}
}

// setupLogger configures the process-wide zerolog logger.
func setupLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.TimeFieldFormat = time.RFC3339

	return zerolog.New(os.Stdout).Level(level).With().
		Timestamp().
		Str("service", "numrace").
		Logger()
}

// initializeServices wires the pool, store, oracle, and game service, and
// starts the background reaper. The returned cleanup closes the pool.
func initializeServices(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (service.GameService, *websocket.Hub, func(), error) {
	numbers, err := pool.OpenSQLite(cfg.PoolPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to open number pool: %w", err)
	}

	store := session.NewStore()

	execOracle := oracle.NewExecOracle(cfg.CheckerPath, cfg.SolverPath, logger.With().Str("component", "oracle").Logger())
	execOracle.Timeout = cfg.OracleTimeout

	hub := websocket.NewHub(logger.With().Str("component", "hub").Logger())
	go hub.Run()

	gameService := service.NewGameService(store, numbers, execOracle, execOracle, hub,
		logger.With().Str("component", "service").Logger())

	reaper := session.NewReaper(store, cfg.GameTTL, cfg.SweepInterval,
		logger.With().Str("component", "reaper").Logger())
	go reaper.Run(ctx)

	cleanup := func() {
		if err := numbers.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close number pool")
		}
	}
	return gameService, hub, cleanup, nil
}

// runHTTPServer starts the HTTP server with REST API, WebSocket hub, and an
// /mcp endpoint. If ngrok is enabled, it also provisions a public tunnel.
func runHTTPServer(ctx context.Context, cancel context.CancelFunc, cfg *config.Config, gameService service.GameService, hub *websocket.Hub, logger zerolog.Logger) {
	apiServer := api.NewServer(gameService, hub, logger.With().Str("component", "api").Logger())

	addr := cfg.Addr()

	// MCP endpoint over the same service
	mcpServer := transportmcp.NewServer(gameService)

	mainRouter := http.NewServeMux()
	mainRouter.Handle("/", apiServer)
	mainRouter.HandleFunc("/mcp", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := mcpServer.GetMCPServer().HandleMessage(r.Context(), body)

		w.Header().Set("Content-Type", "application/json")
		responseData, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Write(responseData)
	})

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      mainRouter,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Handle shutdown signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()

		logger.Info().Str("addr", addr).Msg("HTTP server listening")
		logger.Info().Msgf("REST API: http://%s/api", addr)
		logger.Info().Msgf("WebSocket: ws://%s/ws?game=<game_id>", addr)
		logger.Info().Msgf("MCP endpoint: http://%s/mcp", addr)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	if cfg.NgrokEnabled {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runNgrokTunnel(ctx, cfg, mainRouter, logger)
		}()
	}

	// Wait for shutdown signal
	sig := <-stop
	logger.Info().Str("signal", sig.String()).Msg("shutting down")
	cancel()

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn().Err(err).Msg("HTTP server shutdown error")
	}

	wg.Wait()
	logger.Info().Msg("server stopped")
}

// runNgrokTunnel provisions a public tunnel and serves the router through it.
func runNgrokTunnel(ctx context.Context, cfg *config.Config, handler http.Handler, logger zerolog.Logger) {
	if cfg.NgrokAuthToken == "" {
		logger.Warn().Msg("ngrok enabled but no auth token provided (set NGROK_AUTHTOKEN)")
		return
	}

	logger.Info().Msg("starting ngrok tunnel")

	var tunnel ngrokConfig.Tunnel
	if cfg.NgrokDomain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(cfg.NgrokDomain))
		logger.Info().Str("domain", cfg.NgrokDomain).Msg("using custom ngrok domain")
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	tun, err := ngrok.Listen(ctx,
		tunnel,
		ngrok.WithAuthtoken(cfg.NgrokAuthToken),
	)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to start ngrok tunnel")
		return
	}
	defer func() {
		if err := tun.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close ngrok tunnel")
		}
	}()

	logger.Info().Str("url", tun.URL()).Msg("ngrok tunnel established")

	if err := http.Serve(tun, handler); err != nil && err != http.ErrServerClosed {
		logger.Warn().Err(err).Msg("ngrok server error")
	}
	logger.Info().Msg("ngrok tunnel closed")
}

// runStdioMCP runs an MCP stdio server over the game service.
func runStdioMCP(gameService service.GameService, logger zerolog.Logger) {
	mcpServer := transportmcp.NewServer(gameService)

	logger.Info().Msg("starting MCP stdio server")
	if err := mcpserver.ServeStdio(mcpServer.GetMCPServer()); err != nil {
		logger.Fatal().Err(err).Msg("MCP stdio server failed")
	}
}
