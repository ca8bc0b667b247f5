package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/betform/betform/internal/config"
)

// Store reads completed betting opportunities from Postgres. It is
// read-only: schema management and writes belong to the bot layer.
type Store struct {
	db      *sqlx.DB
	timeout time.Duration
}

// Open connects to Postgres and verifies the connection.
func Open(cfg config.DatabaseConfig) (*Store, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("database DSN is required")
	}

	db, err := sqlx.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	timeout := cfg.QueryTimeout()
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Store{db: db, timeout: timeout}, nil
}

// Close releases the connection pool.
func (s *Store) Close() error { return s.db.Close() }

// Opportunity is one completed betting opportunity joined with its match
// context. Details carries the per-opportunity JSON blob written by the rule
// engine (analyzed team, ranks, streak counts).
type Opportunity struct {
	ID              int64           `db:"id"`
	MatchID         int64           `db:"match_id"`
	MatchDate       sql.NullTime    `db:"match_date"`
	League          string          `db:"league"`
	Country         string          `db:"country"`
	HomeTeam        string          `db:"home_team"`
	AwayTeam        string          `db:"away_team"`
	HomeScore       sql.NullInt64   `db:"home_score"`
	AwayScore       sql.NullInt64   `db:"away_score"`
	MatchStatus     string          `db:"match_status"`
	Minute          sql.NullInt64   `db:"minute"`
	RedCardsHome    sql.NullInt64   `db:"red_cards_home"`
	RedCardsAway    sql.NullInt64   `db:"red_cards_away"`
	Season          sql.NullInt64   `db:"season"`
	Round           sql.NullInt64   `db:"round"`
	RuleSlug        string          `db:"rule_slug"`
	ConfidenceScore float64         `db:"confidence_score"`
	Outcome         string          `db:"outcome"`
	Details         json.RawMessage `db:"details"`
	CreatedAt       sql.NullTime    `db:"created_at"`
}

const completedOpportunitiesQuery = `
	SELECT bo.id,
	       bo.match_id,
	       bo.rule_slug,
	       bo.confidence_score,
	       bo.outcome,
	       bo.details,
	       bo.created_at,
	       m.match_date,
	       m.status       AS match_status,
	       m.home_score,
	       m.away_score,
	       m.minute,
	       m.red_cards_home,
	       m.red_cards_away,
	       m.season,
	       m.round,
	       ht.name        AS home_team,
	       awt.name       AS away_team,
	       l.name         AS league,
	       l.country      AS country
	FROM betting_opportunity bo
	JOIN match m   ON m.id = bo.match_id
	JOIN team ht   ON ht.id = m.home_team_id
	JOIN team awt  ON awt.id = m.away_team_id
	JOIN league l  ON l.id = m.league_id
	WHERE bo.outcome <> 'unknown'
	ORDER BY bo.created_at DESC`

// CompletedOpportunities returns every opportunity whose outcome has been
// resolved, newest first.
func (s *Store) CompletedOpportunities(ctx context.Context) ([]Opportunity, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var opportunities []Opportunity
	if err := s.db.SelectContext(ctx, &opportunities, completedOpportunitiesQuery); err != nil {
		return nil, fmt.Errorf("select completed opportunities: %w", err)
	}
	return opportunities, nil
}
