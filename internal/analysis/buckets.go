package analysis

import "strconv"

// A bucketing function maps a record to exactly one bucket key along one
// analysis dimension, or excludes it (ok=false) when a required field is
// unknown. Each function is pure and independent of the others: exclusion
// from one dimension never affects another, and adding a new dimension never
// touches the existing ones.

// ByRule buckets by the rule slug verbatim. Never excludes.
func ByRule(r Record) (string, bool) {
	return r.RuleSlug, true
}

// ByTeamRank buckets by the analyzed team's league rank. Excludes when the
// analyzed side or its rank cannot be resolved.
func ByTeamRank(r Record) (int, bool) {
	return r.AnalyzedRank()
}

// ConfidenceBand classifies a confidence score into one of four bands.
type ConfidenceBand int

const (
	// ConfidenceBase is a score of exactly 0.5, the rule engine's floor.
	ConfidenceBase ConfidenceBand = iota
	ConfidenceLow                 // (0.5, 0.6]
	ConfidenceMid                 // (0.6, 0.7]
	ConfidenceHigh                // everything else, labeled 0.7+
)

// ConfidenceBands lists the bands in rendering order.
var ConfidenceBands = []ConfidenceBand{ConfidenceBase, ConfidenceLow, ConfidenceMid, ConfidenceHigh}

func (b ConfidenceBand) String() string {
	switch b {
	case ConfidenceBase:
		return "0.5"
	case ConfidenceLow:
		return "0.5-0.6"
	case ConfidenceMid:
		return "0.6-0.7"
	default:
		return "0.7+"
	}
}

// ByConfidence buckets by confidence score band. Bands are upper-inclusive,
// so exactly 0.6 lands in 0.5-0.6, not 0.6-0.7. Scores outside the
// conventional [0.5, 1.0] range still land in exactly one band (the final
// band is a catch-all), keeping the classification total. Excludes only on
// parse failure.
func ByConfidence(r Record) (ConfidenceBand, bool) {
	score, err := strconv.ParseFloat(r.ConfidenceScore, 64)
	if err != nil {
		return 0, false
	}
	switch {
	case score == 0.5:
		return ConfidenceBase, true
	case score > 0.5 && score <= 0.6:
		return ConfidenceLow, true
	case score > 0.6 && score <= 0.7:
		return ConfidenceMid, true
	default:
		return ConfidenceHigh, true
	}
}

// RankDiffBand classifies the rank gap to the opponent. Larger rank numbers
// mean weaker teams, so a positive difference means the opponent is ranked
// worse than the analyzed team.
type RankDiffBand int

const (
	OpponentMuchStronger RankDiffBand = iota // diff <= -5
	OpponentStronger                         // (-5, -2]
	SimilarStrength                          // (-2, 2]
	OpponentWeaker                           // (2, 5]
	OpponentMuchWeaker                       // > 5
)

func (b RankDiffBand) String() string {
	switch b {
	case OpponentMuchStronger:
		return "Opponent much stronger (-5+)"
	case OpponentStronger:
		return "Opponent stronger (-2 to -5)"
	case SimilarStrength:
		return "Similar strength (-2 to +2)"
	case OpponentWeaker:
		return "Opponent weaker (+2 to +5)"
	default:
		return "Opponent much weaker (+5+)"
	}
}

// ByRankDiff buckets by opponent rank minus analyzed-team rank. Excludes
// when the analyzed side is unresolved or either rank is unknown.
func ByRankDiff(r Record) (RankDiffBand, bool) {
	side, ok := r.AnalyzedSide()
	if !ok {
		return 0, false
	}
	homeRank, ok := r.HomeRank()
	if !ok {
		return 0, false
	}
	awayRank, ok := r.AwayRank()
	if !ok {
		return 0, false
	}

	diff := awayRank - homeRank
	if side == SideAway {
		diff = homeRank - awayRank
	}

	switch {
	case diff <= -5:
		return OpponentMuchStronger, true
	case diff <= -2:
		return OpponentStronger, true
	case diff <= 2:
		return SimilarStrength, true
	case diff <= 5:
		return OpponentWeaker, true
	default:
		return OpponentMuchWeaker, true
	}
}

// ByStreakLength buckets by the analyzed team's consecutive-loss count.
// Excludes when the side or the count is unknown.
func ByStreakLength(r Record) (int, bool) {
	return r.AnalyzedStreak()
}
