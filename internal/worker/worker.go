// Package worker runs the export+analyze pipeline on a schedule, records
// each run's outcome and hands the findings to the notifier.
package worker

import (
	"bytes"
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/betform/betform/internal/analysis"
	"github.com/betform/betform/internal/config"
	"github.com/betform/betform/internal/notify"
	"github.com/betform/betform/internal/state"
	"github.com/betform/betform/internal/store"
)

// Worker owns one scheduled pipeline: export the completed opportunities,
// run the analyzer, persist the report and deliver the recommendations. A
// run failure is counted and logged, never fatal to the worker.
type Worker struct {
	cfg      config.Config
	store    *store.Store    // nil: analyze an existing artifact only
	notifier *notify.Notifier // nil: delivery disabled
	state    state.Store
	metrics  *Metrics

	running atomic.Bool
}

// New assembles a worker. store and notifier are optional.
func New(cfg config.Config, st *store.Store, notifier *notify.Notifier, runState state.Store, metrics *Metrics) *Worker {
	return &Worker{
		cfg:      cfg,
		store:    st,
		notifier: notifier,
		state:    runState,
		metrics:  metrics,
	}
}

// Run schedules the pipeline and blocks until the context is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	c := cron.New()
	if _, err := c.AddFunc(w.cfg.Worker.Schedule, func() { w.RunOnce(ctx) }); err != nil {
		return err
	}
	c.Start()
	defer c.Stop()

	log.Info().Str("schedule", w.cfg.Worker.Schedule).Msg("Worker started")
	<-ctx.Done()
	log.Info().Msg("Worker stopping")
	return nil
}

// RunOnce executes a single pipeline run. Overlapping invocations are
// skipped: the analyzer owns its dataset and bucket tables exclusively for
// the duration of one run.
func (w *Worker) RunOnce(ctx context.Context) {
	if !w.running.CompareAndSwap(false, true) {
		log.Warn().Msg("Previous run still in progress, skipping")
		return
	}
	defer w.running.Store(false)

	runID := uuid.NewString()
	started := time.Now().UTC()
	logger := log.With().Str("run_id", runID).Logger()
	logger.Info().Msg("Starting scheduled analysis run")

	summary := state.RunSummary{ID: runID, Status: state.StatusOK, StartedAt: started}
	result, err := w.runPipeline(ctx)
	summary.FinishedAt = time.Now().UTC()
	summary.Records = result.Records

	w.metrics.RunDuration.Observe(summary.FinishedAt.Sub(started).Seconds())
	if err != nil {
		summary.Status = state.StatusFailed
		summary.Error = err.Error()
		w.metrics.RunsTotal.WithLabelValues("error").Inc()
		logger.Error().Err(err).Msg("Analysis run failed")
	} else {
		w.metrics.RunsTotal.WithLabelValues("ok").Inc()
		w.metrics.RecordsAnalyzed.Set(float64(result.Records))
		w.metrics.Recommendations.Set(float64(len(result.Recommendations)))
		logger.Info().Int("records", result.Records).
			Int("recommendations", len(result.Recommendations)).
			Msg("Analysis run completed")
	}

	if stateErr := w.state.SetLastRun(ctx, summary); stateErr != nil {
		logger.Error().Err(stateErr).Msg("Failed to record run summary")
	}
}

func (w *Worker) runPipeline(ctx context.Context) (analysis.Result, error) {
	datasetPath := w.cfg.Analysis.DatasetPath

	if w.store != nil {
		if _, err := w.store.ExportCSV(ctx, datasetPath); err != nil {
			return analysis.Result{}, err
		}
	}

	var report bytes.Buffer
	result, err := analysis.NewRunner(datasetPath, &report).Run()
	if err != nil {
		return analysis.Result{}, err
	}

	if err := w.state.SetReport(ctx, report.String()); err != nil {
		log.Error().Err(err).Msg("Failed to persist report")
	}

	if w.notifier != nil {
		if err := w.notifier.SendRecommendations(ctx, result.Recommendations); err != nil {
			log.Error().Err(err).Msg("Recommendation delivery incomplete")
		}
	}

	return result, nil
}
