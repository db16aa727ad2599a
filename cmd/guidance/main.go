package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/robot-guidance/server/internal/bridge"
	"github.com/robot-guidance/server/internal/config"
	"github.com/robot-guidance/server/internal/events"
	"github.com/robot-guidance/server/internal/monitor"
	"github.com/robot-guidance/server/internal/server"
	"github.com/robot-guidance/server/internal/session"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "guidance",
		Short: "TCP guidance server for autonomous robots",
		Long: `guidance serves the robot guidance protocol: robots connect over TCP,
authenticate with a challenge/response handshake and are steered across
the target grid until each retrieves its message.

Configuration comes from GUIDANCE_* environment variables and REDIS_URL.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := initLogger(cfg.Logging.Level)
	defer logger.Sync()

	logger.Info("Starting robot guidance server",
		zap.String("addr", cfg.Server.Addr()),
		zap.Bool("monitor", cfg.Monitor.Enabled),
	)

	var sinks []events.Sink

	if cfg.Monitor.Enabled {
		hub := monitor.NewHub(logger)
		go hub.Run()
		monServer := &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Monitor.Port),
			Handler:      monitor.NewServer(hub, logger).Handler(),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		}
		go func() {
			logger.Info("Monitor server starting", zap.String("addr", monServer.Addr))
			if err := monServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("Monitor server failed", zap.Error(err))
			}
		}()
		defer monServer.Close()
		sinks = append(sinks, hub)
	}

	if cfg.Redis.URL != "" {
		publisher, err := bridge.NewRedisPublisher(cfg.Redis.URL, logger)
		if err != nil {
			logger.Warn("Redis connection failed, running without session audit", zap.Error(err))
		} else {
			defer publisher.Close()
			sinks = append(sinks, publisher)
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	listener := server.NewListener(
		cfg.Server.Addr(),
		cfg.Timeouts.AcceptIdle(),
		session.Config{
			ServerKey:       cfg.Keys.ServerKey,
			ClientKey:       cfg.Keys.ClientKey,
			ReadTimeout:     cfg.Timeouts.Read(),
			RechargeTimeout: cfg.Timeouts.Recharge(),
		},
		events.Fanout(sinks...),
		logger,
	)
	if err := listener.Serve(ctx); err != nil {
		logger.Error("Server failed", zap.Error(err))
		return err
	}

	logger.Info("Guidance server stopped")
	return nil
}

func initLogger(level string) *zap.Logger {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	cfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      zapLevel == zapcore.DebugLevel,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	return logger
}
