// Command freecell serves FreeCell games.
//
// It supports three modes:
//  1. "serve" (default) – runs the HTTP server exposing REST API, WebSocket, and an /mcp HTTP endpoint
//  2. "mcp" – runs an MCP stdio server and spins up an internal HTTP API if none is available
//  3. "play" – plays one game in the terminal, reading commands from stdin
//
// Flags control host/port, the deal preset directory, log level, version
// output, and optional ngrok tunneling for external access during development.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"

	"github.com/wricardo/freecell/api"
	"github.com/wricardo/freecell/game/config"
	"github.com/wricardo/freecell/game/engine"
	"github.com/wricardo/freecell/game/render"
	"github.com/wricardo/freecell/game/service"
	"github.com/wricardo/freecell/game/session"
	"github.com/wricardo/freecell/transport/mcp"
	"github.com/wricardo/freecell/transport/websocket"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "FreeCell Server"
)

const (
	sessionCleanupInterval = time.Hour
	sessionMaxAge          = 24 * time.Hour
)

const playInstructions = `Type the character for the source position followed by the destination position.
For instance, to move from the third column to the first free cell, type "3a".
Prefix a count to move several cards at once ("3+15"), or type "u" to undo.`

// main loads .env, builds the command tree and runs it until a signal arrives.
func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logrus.WithError(err).Warn("error loading .env file")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().Run(ctx, os.Args); err != nil {
		logrus.WithError(err).Fatal("freecell failed")
	}
}

// newApp builds the command tree. Flags declared on the root are inherited
// by every subcommand.
func newApp() *cli.Command {
	return &cli.Command{
		Name:    "freecell",
		Usage:   AppName,
		Version: Version,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Value:   8080,
				Usage:   "HTTP server port",
				Sources: cli.EnvVars("PORT"),
			},
			&cli.StringFlag{
				Name:    "host",
				Value:   "localhost",
				Usage:   "HTTP server host",
				Sources: cli.EnvVars("HOST"),
			},
			&cli.StringFlag{
				Name:    "deals-dir",
				Value:   "configs",
				Usage:   "Directory containing deal presets (.json, .yaml)",
				Sources: cli.EnvVars("DEALS_DIR"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
			&cli.BoolFlag{
				Name:    "debug",
				Usage:   "Shorthand for --log-level debug",
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
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			return ctx, configureLogging(cmd.String("log-level"), cmd.Bool("debug"))
		},
		Action: runServe,
		Commands: []*cli.Command{
			{
				Name:    "serve",
				Aliases: []string{"server", "http"},
				Usage:   "Run HTTP server with API, WebSocket, and MCP endpoint",
				Action:  runServe,
			},
			{
				Name:    "mcp",
				Aliases: []string{"stdio-mcp", "mcp-stdio"},
				Usage:   "Run MCP stdio server with internal HTTP server",
				Action:  runStdioMCP,
			},
			{
				Name:  "play",
				Usage: "Play one game in the terminal",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "deal",
						Value: "random",
						Usage: "Deal preset to play",
					},
					&cli.BoolFlag{
						Name:  "plain",
						Usage: "Disable colours and suit symbols",
					},
				},
				Action: runPlay,
			},
		},
	}
}

// configureLogging sets the global logrus level and formatter.
func configureLogging(level string, debug bool) error {
	if debug {
		level = "debug"
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	logrus.SetLevel(lvl)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return nil
}

// services bundles what every mode needs.
type services struct {
	game     service.GameService
	sessions *session.Manager
	deals    *config.Manager
}

// initializeServices wires the session and deal managers into the game service.
func initializeServices(dealsDir string, logger logrus.FieldLogger) (*services, error) {
	if dealsDir != "" {
		if _, err := os.Stat(dealsDir); errors.Is(err, os.ErrNotExist) {
			logger.WithField("dir", dealsDir).Warn("deal directory not found, using built-in deals only")
			dealsDir = ""
		}
	}

	dealManager, err := config.NewManager(dealsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create deal manager: %w", err)
	}

	sessionManager := session.NewManager(logger)
	gameService := service.NewGameService(sessionManager, dealManager, logger)

	return &services{
		game:     gameService,
		sessions: sessionManager,
		deals:    dealManager,
	}, nil
}

// mcpHandler exposes the MCP server over plain HTTP POST.
func mcpHandler(mcpClient *mcp.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := mcpClient.GetMCPServer().HandleMessage(r.Context(), body)

		w.Header().Set("Content-Type", "application/json")
		responseData, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Write(responseData)
	}
}

// runServe starts the HTTP server with REST API, WebSocket hub, and an /mcp
// proxy endpoint. With --ngrok it also provisions a public tunnel.
func runServe(ctx context.Context, cmd *cli.Command) error {
	logger := logrus.StandardLogger()
	logger.WithField("version", Version).Infof("starting %s", AppName)

	svc, err := initializeServices(cmd.String("deals-dir"), logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	svc.sessions.StartCleanup(ctx, sessionCleanupInterval, sessionMaxAge)

	hub := websocket.NewHub(logger)
	go hub.Run(ctx)

	apiServer := api.NewServer(svc.game, hub, logger)

	addr := fmt.Sprintf("%s:%d", cmd.String("host"), cmd.Int("port"))
	mcpClient := mcp.NewClient("http://" + addr)
	apiServer.Router().HandleFunc("/mcp", mcpHandler(mcpClient)).Methods("POST")

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      apiServer,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	var wg sync.WaitGroup
	serveErr := make(chan error, 1)

	wg.Add(1)
	go func() {
		defer wg.Done()

		logger.WithFields(logrus.Fields{
			"rest": "http://" + addr + "/api",
			"ws":   "ws://" + addr + "/ws?session=<session_id>",
			"mcp":  "http://" + addr + "/mcp",
		}).Infof("HTTP server listening on %s", addr)

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	if cmd.Bool("ngrok") {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runTunnel(ctx, cmd.String("ngrok-auth"), cmd.String("ngrok-domain"), apiServer, logger)
		}()
	}

	var result error
	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case result = <-serveErr:
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("HTTP server shutdown error")
	}

	wg.Wait()
	logger.Info("server stopped")
	return result
}

// runTunnel serves handler through an ngrok endpoint until ctx is done.
func runTunnel(ctx context.Context, authToken, domain string, handler http.Handler, logger logrus.FieldLogger) {
	if authToken == "" {
		logger.Warn("ngrok enabled but no auth token provided (use --ngrok-auth or NGROK_AUTHTOKEN)")
		return
	}

	logger.Info("starting ngrok tunnel")

	var tunnel ngrokConfig.Tunnel
	if domain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(domain))
		logger.WithField("domain", domain).Info("using custom ngrok domain")
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	tun, err := ngrok.Listen(ctx, tunnel, ngrok.WithAuthtoken(authToken))
	if err != nil {
		logger.WithError(err).Error("failed to start ngrok tunnel")
		return
	}

	go func() {
		<-ctx.Done()
		if err := tun.Close(); err != nil {
			logger.WithError(err).Warn("failed to close ngrok tunnel")
		}
	}()

	url := tun.URL()
	logger.WithFields(logrus.Fields{
		"rest": url + "/api",
		"ws":   url + "/ws?session=<session_id>",
		"mcp":  url + "/mcp",
	}).Infof("ngrok tunnel established: %s", url)

	if err := http.Serve(tun, handler); err != nil && !errors.Is(err, http.ErrServerClosed) && ctx.Err() == nil {
		logger.WithError(err).Error("ngrok server error")
	}
	logger.Info("ngrok tunnel closed")
}

// runStdioMCP runs an MCP stdio server. It reuses an API already listening
// on --host/--port and otherwise starts an internal API on a random loopback
// port. Logs go to stderr so stdout stays a clean protocol stream.
func runStdioMCP(ctx context.Context, cmd *cli.Command) error {
	logger := logrus.StandardLogger()
	logger.SetOutput(os.Stderr)

	externalURL := fmt.Sprintf("http://%s:%d", cmd.String("host"), cmd.Int("port"))
	baseURL := externalURL

	logger.WithField("url", externalURL).Info("checking for external API server")
	if !apiAvailable(externalURL) {
		logger.Info("no external API server found, starting internal HTTP server")

		svc, err := initializeServices(cmd.String("deals-dir"), logger)
		if err != nil {
			return err
		}
		svc.sessions.StartCleanup(ctx, sessionCleanupInterval, sessionMaxAge)

		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			return fmt.Errorf("failed to get available port: %w", err)
		}

		hub := websocket.NewHub(logger)
		go hub.Run(ctx)

		httpServer := &http.Server{Handler: api.NewServer(svc.game, hub, logger)}
		go func() {
			if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.WithError(err).Error("internal HTTP server error")
			}
		}()
		defer httpServer.Close()

		baseURL = "http://" + listener.Addr().String()
	}

	logger.WithField("api", baseURL).Info("MCP stdio server ready")
	if err := server.ServeStdio(mcp.NewClient(baseURL).GetMCPServer()); err != nil {
		return fmt.Errorf("MCP stdio server error: %w", err)
	}
	return nil
}

// apiAvailable reports whether a FreeCell API answers at baseURL.
func apiAvailable(baseURL string) bool {
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(baseURL + "/health")
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// runPlay deals from the chosen preset and plays it on stdin/stdout.
func runPlay(ctx context.Context, cmd *cli.Command) error {
	dealsDir := cmd.String("deals-dir")
	if _, err := os.Stat(dealsDir); err != nil {
		dealsDir = ""
	}
	deals, err := config.NewManager(dealsDir)
	if err != nil {
		return fmt.Errorf("failed to create deal manager: %w", err)
	}

	deal, err := deals.LoadDeal(cmd.String("deal"))
	if err != nil {
		return err
	}
	game, err := engine.NewGameFromConfig(deal)
	if err != nil {
		return fmt.Errorf("failed to deal %q: %w", deal.Name, err)
	}

	opts := render.Terminal
	if cmd.Bool("plain") {
		opts = render.Plain
	}
	return playGame(game, os.Stdin, os.Stdout, opts)
}

// playGame runs the read-apply-print loop until the game is won or input
// ends. Rejected commands print their message and the loop continues.
func playGame(game *engine.Game, in io.Reader, out io.Writer, opts render.Options) error {
	printBoard := func() {
		tab := game.Current()
		fmt.Fprintln(out, render.Board(&tab, opts))
		fmt.Fprintln(out, render.Summary(&tab))
	}

	printBoard()
	fmt.Fprintln(out, playInstructions)

	scanner := bufio.NewScanner(in)
	for !game.IsWon() {
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("reading input: %w", err)
			}
			return nil
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		action, err := engine.ParseAction(line)
		if err == nil {
			err = game.Apply(action)
		}
		if err != nil {
			fmt.Fprintln(out, err)
		}
		printBoard()
	}

	fmt.Fprintln(out, "You win!")
	return nil
}
