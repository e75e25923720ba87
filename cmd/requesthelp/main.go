package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/jshacar-hms/requesthelp/internal/config"
	"github.com/jshacar-hms/requesthelp/internal/device"
	"github.com/jshacar-hms/requesthelp/internal/dispatch"
	"github.com/jshacar-hms/requesthelp/internal/hours"
	"github.com/jshacar-hms/requesthelp/internal/model"
	"github.com/jshacar-hms/requesthelp/internal/server"
	"github.com/jshacar-hms/requesthelp/internal/tui"
	"github.com/jshacar-hms/requesthelp/internal/workflow"
)

func main() {
	// Secrets may live in a .env file next to the binary.
	_ = godotenv.Load()

	configPath := os.Getenv("REQUESTHELP_CONFIG")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logLevel := slog.LevelInfo
	if cfg.LogLevel == "debug" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	window, err := cfg.Hours.Window()
	if err != nil {
		logger.Error("invalid hours config", "error", err)
		os.Exit(1)
	}

	fanout := dispatch.NewFanout(
		dispatch.NewSlackNotifier(cfg.Slack.WebhookURL),
		dispatch.NewServiceNowClient(cfg.Snow.BaseURL(), cfg.Snow.Key),
		logger,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch cfg.UI {
	case config.UIConsole:
		runConsole(ctx, fanout, window, logger)
	default:
		runDevice(ctx, cfg, fanout, window, logger)
	}
}

// runDevice drives the room device's touch panel and listens for its
// feedback events.
func runDevice(ctx context.Context, cfg *config.Config, fanout *dispatch.Fanout, window hours.TimeWindow, logger *slog.Logger) {
	dev := device.NewClient(cfg.Device.BaseURL, cfg.Device.Username, cfg.Device.Password)

	engine := workflow.NewEngine(dev, dev, fanout, window, nil, logger)
	go engine.Run(ctx)

	if err := dev.RegisterPanel(ctx); err != nil {
		logger.Error("failed to register panel", "error", err)
		os.Exit(1)
	}

	ident, err := dev.Snapshot(ctx)
	if err != nil {
		logger.Error("failed to read device identity", "error", err)
		os.Exit(1)
	}
	logger.Info("requesthelp loaded",
		"room", ident.DisplayName,
		"ip", ident.IPAddress,
		"serial", ident.SerialNumber,
		"software", ident.SoftwareVersion,
	)

	srv := &http.Server{
		Addr:         cfg.Listen,
		Handler:      server.NewRouter(engine, engine, logger),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("feedback listener starting", "addr", cfg.Listen)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
	logger.Info("stopped")
}

// runConsole runs the terminal panel front end for local development.
func runConsole(ctx context.Context, fanout *dispatch.Fanout, window hours.TimeWindow, logger *slog.Logger) {
	roomName := os.Getenv("REQUESTHELP_ROOM_NAME")
	if roomName == "" {
		roomName = "Console Test Room"
	}
	host, _ := os.Hostname()

	ident := device.StaticIdentity{Identity: model.DeviceIdentity{
		DisplayName:     roomName,
		SerialNumber:    "CONSOLE",
		IPAddress:       "127.0.0.1",
		SoftwareVersion: "requesthelp-console@" + host,
	}}

	prompter := &tui.Prompter{}
	engine := workflow.NewEngine(prompter, ident, fanout, window, nil, logger)

	m := tui.NewModel(roomName, engine.Trigger, engine)
	program := tea.NewProgram(m, tea.WithAltScreen())
	prompter.SetProgram(program)

	go engine.Run(ctx)

	if _, err := program.Run(); err != nil {
		logger.Error("tui error", "error", err)
		os.Exit(1)
	}
}
