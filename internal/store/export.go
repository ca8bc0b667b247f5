package store

import (
	"context"
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog/log"
)

// exportColumns is the full column set of the analysis artifact. The
// analyzer matches columns by header name and ignores the ones it does not
// use, so the exporter can stay a superset.
var exportColumns = []string{
	"opportunity_id",
	"match_id",
	"match_date",
	"league",
	"country",
	"home_team",
	"away_team",
	"home_score",
	"away_score",
	"match_status",
	"minute",
	"red_cards_home",
	"red_cards_away",
	"season",
	"round",
	"rule_slug",
	"rule_name",
	"bet_type",
	"opportunity_type",
	"confidence_score",
	"team_analyzed",
	"outcome",
	"home_team_rank",
	"away_team_rank",
	"home_confidence",
	"away_confidence",
	"home_consecutive_losses",
	"away_consecutive_losses",
	"home_consecutive_draws",
	"away_consecutive_draws",
	"home_consecutive_no_goals",
	"away_consecutive_no_goals",
	"created_at",
}

// ExportCSV writes every completed opportunity to the analysis artifact at
// path and returns the number of exported rows. Zero completed opportunities
// still produce a header-only file, which the analyzer accepts as an empty
// dataset.
func (s *Store) ExportCSV(ctx context.Context, path string) (int, error) {
	opportunities, err := s.CompletedOpportunities(ctx)
	if err != nil {
		return 0, err
	}
	log.Info().Int("opportunities", len(opportunities)).Msg("Found completed betting opportunities")

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create export file %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(exportColumns); err != nil {
		return 0, fmt.Errorf("write export header: %w", err)
	}
	for _, opp := range opportunities {
		if err := w.Write(exportRow(opp)); err != nil {
			return 0, fmt.Errorf("write export row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return 0, fmt.Errorf("flush export: %w", err)
	}

	log.Info().Int("rows", len(opportunities)).Str("path", path).
		Msg("Exported betting opportunities")
	return len(opportunities), nil
}

func exportRow(opp Opportunity) []string {
	details := decodeDetails(opp.Details)
	rule := ruleBySlug(opp.RuleSlug)

	matchDate := "N/A"
	if opp.MatchDate.Valid {
		matchDate = opp.MatchDate.Time.Format("2006-01-02 15:04")
	}
	createdAt := "N/A"
	if opp.CreatedAt.Valid {
		createdAt = opp.CreatedAt.Time.Format("2006-01-02 15:04:05")
	}

	// Live fields prefer the snapshot captured in details over the current
	// match row, matching what the rule engine saw at trigger time.
	minute := details.orInt("minute", opp.Minute)
	redCardsHome := details.orInt("red_cards_home", opp.RedCardsHome)
	redCardsAway := details.orInt("red_cards_away", opp.RedCardsAway)

	return []string{
		strconv.FormatInt(opp.ID, 10),
		strconv.FormatInt(opp.MatchID, 10),
		matchDate,
		opp.League,
		opp.Country,
		opp.HomeTeam,
		opp.AwayTeam,
		nullInt(opp.HomeScore),
		nullInt(opp.AwayScore),
		opp.MatchStatus,
		minute,
		redCardsHome,
		redCardsAway,
		nullInt(opp.Season),
		nullInt(opp.Round),
		opp.RuleSlug,
		rule.Name,
		rule.BetType,
		rule.OpportunityType,
		strconv.FormatFloat(opp.ConfidenceScore, 'g', -1, 64),
		details.str("team_analyzed"),
		opp.Outcome,
		details.str("home_team_rank"),
		details.str("away_team_rank"),
		details.str("home_confidence"),
		details.str("away_confidence"),
		details.str("home_consecutive_losses"),
		details.str("away_consecutive_losses"),
		details.str("home_consecutive_draws"),
		details.str("away_consecutive_draws"),
		details.str("home_consecutive_no_goals"),
		details.str("away_consecutive_no_goals"),
		createdAt,
	}
}

// details is the decoded per-opportunity JSON blob. Values are numbers or
// strings depending on what the rule engine recorded.
type details map[string]any

func decodeDetails(raw json.RawMessage) details {
	if len(raw) == 0 {
		return details{}
	}
	var d details
	if err := json.Unmarshal(raw, &d); err != nil {
		log.Warn().Err(err).Msg("Skipping malformed opportunity details")
		return details{}
	}
	return d
}

// str formats a details value, with "N/A" for anything absent or null.
func (d details) str(key string) string {
	return formatDetail(d[key])
}

// orInt prefers the details value, falling back to the match column.
func (d details) orInt(key string, fallback sql.NullInt64) string {
	if v, ok := d[key]; ok && v != nil {
		return formatDetail(v)
	}
	return nullInt(fallback)
}

func formatDetail(v any) string {
	switch val := v.(type) {
	case nil:
		return "N/A"
	case string:
		if val == "" {
			return "N/A"
		}
		return val
	case float64:
		if val == float64(int64(val)) {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

func nullInt(v sql.NullInt64) string {
	if !v.Valid {
		return "N/A"
	}
	return strconv.FormatInt(v.Int64, 10)
}
