// Command game2048 serves a 2048 game whose board is rendered on the server.
//
// It supports two modes:
//  1. "server" (default) - runs the HTTP server: the /game page fragment, the
//     REST API, WebSocket live updates and an /mcp HTTP endpoint
//  2. "stdio-mcp" - runs an MCP stdio server and spins up an internal HTTP API
//     if none is available
//
// Settings come from configs/game2048.yaml (or --config), then environment
// variables (a .env file is loaded first), then flags. ngrok tunneling is
// available for easy external access during development.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/urfave/cli/v3"
	"github.com/wricardo/mcp-training/game2048/api"
	"github.com/wricardo/mcp-training/game2048/game/config"
	"github.com/wricardo/mcp-training/game2048/game/service"
	"github.com/wricardo/mcp-training/game2048/game/session"
	"github.com/wricardo/mcp-training/game2048/transport/mcp"
	"github.com/wricardo/mcp-training/game2048/transport/websocket"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "2048 Game Server"
)

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Warn("error loading .env file", "err", err)
		}
	} else {
		log.Info("loaded environment variables from .env file")
	}

	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		log.Fatal("exiting", "err", err)
	}
}

// newCommand builds the CLI. Flags are shared by every mode.
func newCommand() *cli.Command {
	return &cli.Command{
		Name:    "game2048",
		Usage:   AppName,
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML configuration file (default " + config.DefaultPath + " when present)",
				Sources: cli.EnvVars("GAME2048_CONFIG"),
			},
			&cli.StringFlag{
				Name:    "host",
				Usage:   "HTTP server host",
				Sources: cli.EnvVars("HOST"),
			},
			&cli.IntFlag{
				Name:    "port",
				Usage:   "HTTP server port",
				Sources: cli.EnvVars("PORT"),
			},
			&cli.StringFlag{
				Name:    "static-dir",
				Usage:   "Directory holding index.html, 2048.css and 2048.js",
				Sources: cli.EnvVars("STATIC_DIR"),
			},
			&cli.Uint64Flag{
				Name:    "seed",
				Usage:   "Tile placement seed (0 = nondeterministic)",
				Sources: cli.EnvVars("GAME2048_SEED"),
			},
			&cli.BoolFlag{
				Name:    "debug",
				Usage:   "Enable debug logging",
				Sources: cli.EnvVars("DEBUG"),
			},
			&cli.BoolFlag{
				Name:    "ngrok",
				Usage:   "Enable ngrok tunnel",
				Sources: cli.EnvVars("NGROK_ENABLED"),
			},
			&cli.StringFlag{
				Name:    "ngrok-auth",
				Usage:   "Ngrok auth token",
				Sources: cli.EnvVars("NGROK_AUTHTOKEN", "NGROK_AUTH_TOKEN"),
			},
			&cli.StringFlag{
				Name:    "ngrok-domain",
				Usage:   "Custom ngrok domain (optional)",
				Sources: cli.EnvVars("NGROK_DOMAIN"),
			},
		},
		DefaultCommand: "server",
		Commands: []*cli.Command{
			{
				Name:    "server",
				Aliases: []string{"http"},
				Usage:   "Run HTTP server with game page, API, WebSocket, and MCP endpoint",
				Action:  runHTTPServer,
			},
			{
				Name:    "stdio-mcp",
				Aliases: []string{"mcp-stdio", "mcp"},
				Usage:   "Run MCP stdio server with internal HTTP server",
				Action:  runStdioMCP,
			},
		},
	}
}

// loadSettings reads the configuration file and applies flag overrides.
func loadSettings(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, err
	}

	if cmd.IsSet("host") {
		cfg.Server.Host = cmd.String("host")
	}
	if cmd.IsSet("port") {
		cfg.Server.Port = cmd.Int("port")
	}
	if cmd.IsSet("static-dir") {
		cfg.Server.StaticDir = cmd.String("static-dir")
	}
	if cmd.IsSet("seed") {
		cfg.Game.Seed = cmd.Uint64("seed")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setupLogging configures the process-wide logger. Logs go to stderr so
// stdio MCP traffic on stdout stays clean.
func setupLogging(debug bool) {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}
	log.SetDefault(log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		ReportCaller:    debug,
		Level:           level,
		Prefix:          "game2048",
	}))
}

// initializeServices wires the session manager and the game service, and
// deals the default game so /game has something to show.
func initializeServices(cfg *config.Config) (service.GameService, *session.Manager, error) {
	sessionManager := session.NewManager(session.SeededRandFactory(cfg.Game.Seed))
	gameService := service.NewGameService(sessionManager)

	if _, err := gameService.EnsureSession(context.Background(), service.DefaultSessionID); err != nil {
		return nil, nil, fmt.Errorf("failed to create default session: %w", err)
	}

	if cfg.Game.Seed != 0 {
		log.Info("deterministic tile placement", "seed", cfg.Game.Seed)
	}
	return gameService, sessionManager, nil
}

// newHandler combines the API server and the /mcp endpoint.
func newHandler(apiServer http.Handler, mcpClient *mcp.Client) http.Handler {
	mainRouter := http.NewServeMux()
	mainRouter.Handle("/", apiServer)
	mainRouter.HandleFunc("/mcp", mcpHandler(mcpClient))
	return mainRouter
}

// mcpHandler serves JSON-RPC MCP messages over plain HTTP POST.
func mcpHandler(mcpClient *mcp.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
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

		response := mcpClient.GetMCPServer().HandleMessage(r.Context(), body)

		responseData, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(responseData)
	}
}

// localBaseURL is the URL the in-process MCP proxy uses to reach the API.
func localBaseURL(cfg config.ServerConfig) string {
	host := cfg.Host
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "127.0.0.1"
	}
	return "http://" + net.JoinHostPort(host, strconv.Itoa(cfg.Port))
}

// runHTTPServer starts the HTTP server with the game page, REST API, WebSocket
// hub, and an /mcp proxy endpoint. If ngrok is enabled, it also provisions a
// public tunnel.
func runHTTPServer(ctx context.Context, cmd *cli.Command) error {
	setupLogging(cmd.Bool("debug"))

	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	gameService, sessionManager, err := initializeServices(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := websocket.NewHub()
	go hub.Run(ctx)

	go sessionCleanupRoutine(ctx, sessionManager, cfg.Sessions)

	apiServer := api.NewServer(gameService, hub, cfg.Server.StaticDir)
	mainRouter := newHandler(apiServer, mcp.NewClient(localBaseURL(cfg.Server)))

	addr := cfg.Server.Addr()
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      mainRouter,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	var wg sync.WaitGroup
	serverErr := make(chan error, 1)

	wg.Add(1)
	go func() {
		defer wg.Done()

		log.Info("HTTP server listening", "addr", addr, "version", Version)
		log.Info("endpoints",
			"game", fmt.Sprintf("http://%s/", addr),
			"api", fmt.Sprintf("http://%s/api", addr),
			"ws", fmt.Sprintf("ws://%s/ws?session=<session_id>", addr),
			"mcp", fmt.Sprintf("http://%s/mcp", addr))

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	if cmd.Bool("ngrok") {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runNgrokTunnel(ctx, cmd.String("ngrok-auth"), cmd.String("ngrok-domain"), mainRouter)
		}()
	}

	// Wait for shutdown signal or a listener failure
	select {
	case <-ctx.Done():
		log.Info("shutting down")
	case err = <-serverErr:
		log.Error("HTTP server failed", "err", err)
		stop()
	}

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if shutdownErr := httpServer.Shutdown(shutdownCtx); shutdownErr != nil {
		log.Error("HTTP server shutdown error", "err", shutdownErr)
	}

	wg.Wait()
	log.Info("server stopped")
	return err
}

// runNgrokTunnel serves handler through an ngrok endpoint until ctx is done.
func runNgrokTunnel(ctx context.Context, authToken, domain string, handler http.Handler) {
	if authToken == "" {
		log.Warn("ngrok enabled but no auth token provided (use --ngrok-auth, NGROK_AUTHTOKEN, or NGROK_AUTH_TOKEN)")
		return
	}

	log.Info("starting ngrok tunnel")

	var tunnel ngrokConfig.Tunnel
	if domain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(domain))
		log.Info("using custom ngrok domain", "domain", domain)
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	tun, err := ngrok.Listen(ctx, tunnel, ngrok.WithAuthtoken(authToken))
	if err != nil {
		log.Error("failed to start ngrok tunnel", "err", err)
		return
	}

	go func() {
		<-ctx.Done()
		if err := tun.Close(); err != nil {
			log.Warn("failed to close ngrok tunnel", "err", err)
		}
	}()

	ngrokURL := tun.URL()
	log.Info("ngrok tunnel established", "url", ngrokURL, "game", ngrokURL+"/", "mcp", ngrokURL+"/mcp")

	if err := http.Serve(tun, handler); err != nil && !errors.Is(err, http.ErrServerClosed) && ctx.Err() == nil {
		log.Error("ngrok server error", "err", err)
	}
	log.Info("ngrok tunnel closed")
}

// sessionCleanupRoutine periodically removes sessions that have not been
// accessed within the configured TTL. The default session is never removed.
func sessionCleanupRoutine(ctx context.Context, manager *session.Manager, cfg config.SessionConfig) {
	ticker := time.NewTicker(cfg.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := manager.CleanupExpiredSessions(cfg.TTL, service.DefaultSessionID); removed > 0 {
				log.Info("cleaned up expired sessions", "removed", removed, "remaining", manager.Count())
			}
		}
	}
}

// runStdioMCP runs an MCP stdio server. It reuses an API already listening on
// the configured address; otherwise it starts an internal HTTP API bound to a
// random loopback port and targets that.
func runStdioMCP(ctx context.Context, cmd *cli.Command) error {
	setupLogging(cmd.Bool("debug"))

	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	baseURL := localBaseURL(cfg.Server)
	log.Debug("checking for external API server", "url", baseURL)

	testClient := &http.Client{Timeout: 2 * time.Second}
	resp, err := testClient.Get(baseURL + "/healthz")
	if err == nil && resp.StatusCode == http.StatusOK {
		resp.Body.Close()
		log.Info("MCP stdio server ready (using external HTTP server)", "url", baseURL)
	} else {
		if resp != nil {
			resp.Body.Close()
		}

		gameService, sessionManager, err := initializeServices(cfg)
		if err != nil {
			return err
		}

		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			return fmt.Errorf("failed to get available port: %w", err)
		}

		hub := websocket.NewHub()
		go hub.Run(ctx)
		go sessionCleanupRoutine(ctx, sessionManager, cfg.Sessions)

		httpServer := &http.Server{
			Handler: api.NewServer(gameService, hub, cfg.Server.StaticDir),
		}
		defer httpServer.Close()

		go func() {
			if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("internal HTTP server error", "err", err)
			}
		}()

		baseURL = "http://" + listener.Addr().String()
		log.Info("MCP stdio server ready (using internal HTTP server)", "url", baseURL)
	}

	return server.ServeStdio(mcp.NewClient(baseURL).GetMCPServer())
}
