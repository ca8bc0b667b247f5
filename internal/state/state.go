// Package state keeps the worker's last run summary and last rendered
// report. The default store is in-memory; deployments that already run the
// Redis broker can point the worker at it so the report survives restarts.
package state

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	redis "github.com/go-redis/redis/v8"
)

// Run statuses recorded after each worker run.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// RunSummary describes one completed worker run.
type RunSummary struct {
	ID         string    `json:"id"`
	Status     string    `json:"status"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Records    int       `json:"records"`
	Error      string    `json:"error,omitempty"`
}

// Store holds the most recent report text and run summary.
type Store interface {
	SetReport(ctx context.Context, text string) error
	Report(ctx context.Context) (string, bool, error)
	SetLastRun(ctx context.Context, run RunSummary) error
	LastRun(ctx context.Context) (RunSummary, bool, error)
}

type memory struct {
	mu        sync.Mutex
	report    string
	hasReport bool
	run       RunSummary
	hasRun    bool
}

// New returns the in-memory store.
func New() Store { return &memory{} }

func (m *memory) SetReport(_ context.Context, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.report = text
	m.hasReport = true
	return nil
}

func (m *memory) Report(_ context.Context) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.report, m.hasReport, nil
}

func (m *memory) SetLastRun(_ context.Context, run RunSummary) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.run = run
	m.hasRun = true
	return nil
}

func (m *memory) LastRun(_ context.Context) (RunSummary, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.run, m.hasRun, nil
}

const (
	reportKey  = "betform:last_report"
	lastRunKey = "betform:last_run"
)

type redisStore struct{ client *redis.Client }

// NewRedis returns a store backed by the given Redis client.
func NewRedis(client *redis.Client) Store { return &redisStore{client: client} }

func (r *redisStore) SetReport(ctx context.Context, text string) error {
	if err := r.client.Set(ctx, reportKey, text, 0).Err(); err != nil {
		return fmt.Errorf("set last report: %w", err)
	}
	return nil
}

func (r *redisStore) Report(ctx context.Context) (string, bool, error) {
	text, err := r.client.Get(ctx, reportKey).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get last report: %w", err)
	}
	return text, true, nil
}

func (r *redisStore) SetLastRun(ctx context.Context, run RunSummary) error {
	data, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("marshal run summary: %w", err)
	}
	if err := r.client.Set(ctx, lastRunKey, data, 0).Err(); err != nil {
		return fmt.Errorf("set last run: %w", err)
	}
	return nil
}

func (r *redisStore) LastRun(ctx context.Context) (RunSummary, bool, error) {
	data, err := r.client.Get(ctx, lastRunKey).Bytes()
	if err == redis.Nil {
		return RunSummary{}, false, nil
	}
	if err != nil {
		return RunSummary{}, false, fmt.Errorf("get last run: %w", err)
	}
	var run RunSummary
	if err := json.Unmarshal(data, &run); err != nil {
		return RunSummary{}, false, fmt.Errorf("unmarshal run summary: %w", err)
	}
	return run, true, nil
}
