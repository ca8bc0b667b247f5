package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	redis "github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/betform/betform/internal/httpapi"
	"github.com/betform/betform/internal/notify"
	"github.com/betform/betform/internal/state"
	"github.com/betform/betform/internal/store"
	"github.com/betform/betform/internal/worker"
)

var workerOnce bool

// workerCmd implements the 'betform worker' command
var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Run the scheduled export+analyze pipeline",
	Long: `Run the analysis pipeline on a cron schedule (default: daily at 09:00 UTC).

Each run exports the completed opportunities, analyzes them, stores the
rendered report and delivers the triggered recommendations to the configured
Telegram chats. A read-only HTTP server exposes /health, /report and
/metrics while the worker is running.`,
	RunE: runWorker,
}

func init() {
	rootCmd.AddCommand(workerCmd)
	workerCmd.Flags().BoolVar(&workerOnce, "once", false, "Run the pipeline once and exit")
}

func runWorker(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var st *store.Store
	if cfg.Database.DSN != "" {
		st, err = store.Open(cfg.Database)
		if err != nil {
			return err
		}
		defer st.Close()
	} else {
		log.Warn().Msg("No database configured, analyzing the existing artifact only")
	}

	notifier, err := notify.New(cfg.Telegram)
	if err != nil {
		return err
	}

	runState := state.New()
	if cfg.Redis.Addr != "" {
		runState = state.NewRedis(redis.NewClient(&redis.Options{
			Addr: cfg.Redis.Addr,
			DB:   cfg.Redis.DB,
		}))
	}

	metrics := worker.NewMetrics()
	w := worker.New(cfg, st, notifier, runState, metrics)

	if workerOnce {
		w.RunOnce(ctx)
		return nil
	}

	server := httpapi.NewServer(cfg.Worker.HTTPAddr, runState, metrics.Handler())
	go func() {
		if err := server.Start(); err != nil {
			log.Error().Err(err).Msg("HTTP server failed")
		}
	}()

	err = w.Run(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if shutdownErr := server.Shutdown(shutdownCtx); shutdownErr != nil {
		log.Error().Err(shutdownErr).Msg("HTTP server shutdown failed")
	}
	return err
}
