// Command serve runs the a2abatch HTTP API in front of one A2A agent.
//
// Configuration is via environment variables (a .env file is loaded if
// present) or a YAML file named by A2A_CONFIG:
//
//	A2A_SERVER_URL       - Agent endpoint URL (required)
//	A2A_TIMEOUT          - Per-request transport timeout (default: 60s)
//	A2A_CONTINUE_ON_FAIL - Default batch mode (default: false)
//	A2A_PORT             - Server port (default: 8000)
//	A2A_ALLOW_ORIGINS    - Comma separated CORS origins (default: *)
//	A2A_LOG_LEVEL        - debug, info, warn, error (default: info)
//	A2A_LOG_FORMAT       - text or json (default: text)
//
// Usage:
//
//	A2A_SERVER_URL=http://localhost:9999/agent go run ./cmd/serve
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/spetersoncode/a2abatch/a2a"
	"github.com/spetersoncode/a2abatch/batch"
	"github.com/spetersoncode/a2abatch/internal/config"
	"github.com/spetersoncode/a2abatch/internal/logging"
	"github.com/spetersoncode/a2abatch/internal/server"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	gin.SetMode(gin.ReleaseMode)

	client := a2a.NewClient(cfg.ServerURL,
		a2a.WithTimeout(cfg.Timeout),
		a2a.WithLogger(logger),
	)

	api := server.New(client,
		server.WithMode(batch.ModeFor(cfg.ContinueOnFail)),
		server.WithLogger(logger),
		server.WithAllowOrigins(cfg.AllowOrigins...),
	)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      api.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 0, // SSE needs no write timeout
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		logger.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.WithError(err).Error("shutdown error")
		}
	}()

	logger.WithFields(logrus.Fields{
		"port":     cfg.Port,
		"endpoint": cfg.ServerURL,
		"mode":     batch.ModeFor(cfg.ContinueOnFail).String(),
	}).Info("server starting")

	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		logger.WithError(err).Fatal("server error")
	}

	logger.Info("server stopped")
}
