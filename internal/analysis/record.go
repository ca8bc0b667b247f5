package analysis

import (
	"strconv"
	"strings"
)

// Rule slugs produced by the betting rules engine. The set is stable but
// extensible: the analyzer treats unknown slugs as just another bucket.
const (
	RuleConsecutiveLosses     = "consecutive_losses"
	RuleConsecutiveDraws      = "consecutive_draws"
	RuleTop5ConsecutiveLosses = "top5_consecutive_losses"
	RuleLiveRedCard           = "live_red_card"
)

// Outcome values. Anything other than win/lose (typically "unknown") stays in
// bucket totals but never counts toward wins or losses.
const (
	OutcomeWin     = "win"
	OutcomeLose    = "lose"
	OutcomeUnknown = "unknown"
)

// MissingValue is the literal the exporter writes for absent numeric fields.
const MissingValue = "N/A"

// Side identifies which side of a match the analyzed team played.
type Side int

const (
	SideHome Side = iota
	SideAway
)

// Record is one historical betting opportunity as exported to the analysis
// dataset. Every field is kept as the raw string from the artifact; numeric
// coercion happens inside the bucketing functions so that a malformed value
// only excludes the record from the analyses that need it.
type Record struct {
	RuleSlug        string
	Outcome         string
	ConfidenceScore string
	TeamAnalyzed    string
	HomeTeam        string
	AwayTeam        string
	HomeTeamRank    string
	AwayTeamRank    string
	HomeConsLosses  string
	AwayConsLosses  string
}

// AnalyzedSide resolves whether the analyzed team is the home or away side.
// Returns false when team_analyzed matches neither team, which excludes the
// record from side-dependent analyses without affecting any other dimension.
func (r Record) AnalyzedSide() (Side, bool) {
	switch r.TeamAnalyzed {
	case r.HomeTeam:
		return SideHome, true
	case r.AwayTeam:
		return SideAway, true
	default:
		return 0, false
	}
}

// HomeRank returns the home team's league rank, if known.
func (r Record) HomeRank() (int, bool) { return parseOptionalInt(r.HomeTeamRank) }

// AwayRank returns the away team's league rank, if known.
func (r Record) AwayRank() (int, bool) { return parseOptionalInt(r.AwayTeamRank) }

// AnalyzedRank returns the analyzed team's league rank, if both the side and
// the rank can be resolved.
func (r Record) AnalyzedRank() (int, bool) {
	side, ok := r.AnalyzedSide()
	if !ok {
		return 0, false
	}
	if side == SideHome {
		return r.HomeRank()
	}
	return r.AwayRank()
}

// AnalyzedStreak returns the analyzed team's consecutive-loss count, if known.
func (r Record) AnalyzedStreak() (int, bool) {
	side, ok := r.AnalyzedSide()
	if !ok {
		return 0, false
	}
	if side == SideHome {
		return parseOptionalInt(r.HomeConsLosses)
	}
	return parseOptionalInt(r.AwayConsLosses)
}

// parseOptionalInt parses an integer field where "N/A" or an empty string
// means unknown. Non-numeric garbage is treated the same as unknown.
func parseOptionalInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == MissingValue {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
