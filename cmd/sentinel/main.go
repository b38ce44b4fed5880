/*
main.go - Application entry point

PURPOSE:
  Runs the missing-hours notifier either as a one-shot batch job (the
  normal cron deployment) or as a small HTTP trigger server.

MODES:
  one-shot (default)  Evaluate today's active cadences, post reports, exit.
                      Exit code 1 if any cadence failed.
  -serve              Expose POST /api/run and GET /api/preview and wait.

COMMAND-LINE FLAGS:
  -serve      Run the HTTP trigger server instead of a one-shot run
  -port       HTTP port for serve mode (default: 8080)
  -cadence    Force one cadence (daily|weekly|monthly) in one-shot mode
  -date       Override today (2006-01-02), for replaying a missed run

ENVIRONMENT:
  HARVEST_ACCOUNT_ID, HARVEST_TOKEN   Time-tracking credentials (required)
  SLACK_TOKEN, SLACK_CHANNEL          Chat credentials and destination
  MISSING_HOURS_THRESHOLD             Base expected hours per day (7.5)
  DAILY_CAPACITY_THRESHOLD            Weekly-capacity floor for daily pings
  EXCLUDED_EMAILS                     CSV of roster emails to skip
  LOG_LEVEL                           debug|info|warn|error

EXAMPLES:
  # Normal cron invocation
  ./sentinel

  # Replay last Friday's weekly check
  ./sentinel -cadence=weekly -date=2026-08-21

  # Trigger server for a cloud scheduler
  ./sentinel -serve -port=3000
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/warp/hours-sentinel/api"
	"github.com/warp/hours-sentinel/cadence"
	"github.com/warp/hours-sentinel/calendar"
	"github.com/warp/hours-sentinel/config"
	"github.com/warp/hours-sentinel/harvest"
	"github.com/warp/hours-sentinel/logger"
	"github.com/warp/hours-sentinel/runner"
	"github.com/warp/hours-sentinel/slack"
)

func main() {
	serve := flag.Bool("serve", false, "run the HTTP trigger server")
	port := flag.Int("port", 8080, "HTTP server port (serve mode)")
	forced := flag.String("cadence", "", "force one cadence: daily|weekly|monthly")
	dateStr := flag.String("date", "", "override today (2006-01-02)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	zl, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zl.Sync()

	tracker := harvest.NewClient(cfg.HarvestAccountID, cfg.HarvestToken)
	notifier := slack.NewNotifier(slack.NewClient(cfg.SlackToken), cfg.SlackChannel)
	run := runner.New(tracker, notifier, cfg.Engine(), cfg.Excluded(), zl)

	if *serve {
		serveHTTP(run, zl, *port)
		return
	}

	today := calendar.Today()
	if *dateStr != "" {
		t, err := time.Parse("2006-01-02", *dateStr)
		if err != nil {
			zl.Fatal("invalid -date", zap.String("date", *dateStr), zap.Error(err))
		}
		today = calendar.FromTime(t)
	}

	ctx := context.Background()
	if *forced != "" {
		c, err := cadence.Parse(*forced)
		if err != nil {
			zl.Fatal("invalid -cadence", zap.Error(err))
		}
		if _, err := run.RunCadence(ctx, c, today); err != nil {
			zl.Error("run failed", zap.Error(err))
			os.Exit(1)
		}
		return
	}

	if err := run.RunToday(ctx, today); err != nil {
		zl.Error("run failed", zap.Error(err))
		os.Exit(1)
	}
}

func serveHTTP(run *runner.Runner, zl *zap.Logger, port int) {
	handler := api.NewHandler(run, zl)
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		zl.Info("trigger server listening", zap.Int("port", port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zl.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zl.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		zl.Fatal("forced shutdown", zap.Error(err))
	}
	zl.Info("server stopped")
}
