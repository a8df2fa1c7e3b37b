// Command elms-mock is a development stand-in for the fulfillment import
// endpoint. It accepts the encoded order payload, logs the decoded
// document, and answers OK, so the client can be exercised end to end
// without touching the real service.
package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/elmscz/elms-client/internal/config"
	"github.com/elmscz/elms-client/internal/logger"
)

const shutdownTimeout = 5 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg)

	server := &http.Server{
		Addr:    cfg.RunAddress,
		Handler: setupRouter(log),
	}

	go func() {
		log.Info("mock fulfillment endpoint listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server terminated", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown failed", slog.String("error", err.Error()))
	}
}

func setupRouter(log *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestLogger(log))
	engine.Use(gzip.Gzip(gzip.DefaultCompression))
	engine.GET("/orders/import", importHandler(log))
	return engine
}

// requestLogger logs information about incoming requests using slog.
func requestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("http request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("latency", time.Since(start)),
		)
	}
}

func importHandler(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		payload := c.Query("data")
		if payload == "" {
			c.String(http.StatusBadRequest, "missing data parameter")
			return
		}

		decoded, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			c.String(http.StatusBadRequest, "payload is not valid base64")
			return
		}
		var record map[string]any
		if err := json.Unmarshal(decoded, &record); err != nil {
			c.String(http.StatusBadRequest, "payload is not valid JSON")
			return
		}

		log.Info("order received",
			slog.Any("source", record["source"]),
			slog.Any("order_number", record["order_number"]),
			slog.Any("total", record["total"]))
		log.Debug("order payload", slog.String("json", string(decoded)))

		c.String(http.StatusOK, "OK")
	}
}
