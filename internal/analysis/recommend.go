package analysis

import "fmt"

// Recommendation thresholds. These are hand-tuned policy constants carried
// over from the rule review process; changing one changes the analyzer's
// advice and is a policy decision, not a bug fix.
const (
	bottomRanksWinRateFloor    = 50.0 // check 1
	baseConfidenceWinRateFloor = 50.0 // check 2
	strongOpponentWinRateFloor = 50.0 // check 3
	redCardWinRateFloor        = 40.0 // check 4
	streakComparisonThreshold  = 3    // check 5: compare exactly-3 vs 4+
)

// RecommendInput carries the aggregate slices the recommendation checks
// read. Slices with a zero total cause their check to be skipped, never a
// fault.
type RecommendInput struct {
	BottomRanks        BucketStat
	BottomLo, BottomHi int
	BaseConfidence     BucketStat
	StrongOpponent     BucketStat
	RedCard            BucketStat
	Streaks            map[int]*BucketStat
}

// Recommend applies the fixed table of threshold checks and returns the
// triggered recommendation texts in check order. All comparisons against the
// win-rate floors are strict, so a slice sitting exactly on a floor does not
// trigger.
func Recommend(in RecommendInput) []string {
	var recs []string

	if in.BottomRanks.Total > 0 {
		if rate := in.BottomRanks.WinRate(); rate < bottomRanksWinRateFloor {
			recs = append(recs, fmt.Sprintf(
				"1. CONSECUTIVE LOSSES RULE: Filter out teams in bottom 3 positions "+
					"(ranks %d-%d). Current win rate: %.1f%% (%d/%d). These teams are too weak "+
					"and consecutive losses may indicate fundamental quality issues rather than "+
					"temporary form.",
				in.BottomLo, in.BottomHi, rate, in.BottomRanks.Win, in.BottomRanks.Total))
		}
	}

	if in.BaseConfidence.Total > 0 {
		if rate := in.BaseConfidence.WinRate(); rate < baseConfidenceWinRateFloor {
			recs = append(recs, fmt.Sprintf(
				"2. CONFIDENCE SCORE: Consider filtering out opportunities with confidence = 0.5 "+
					"(base confidence only). Current win rate: %.1f%% (%d/%d). "+
					"These may be too weak signals.",
				rate, in.BaseConfidence.Win, in.BaseConfidence.Total))
		}
	}

	if in.StrongOpponent.Total > 0 {
		if rate := in.StrongOpponent.WinRate(); rate < strongOpponentWinRateFloor {
			recs = append(recs, fmt.Sprintf(
				"3. OPPONENT STRENGTH: Consider filtering out matches where the team with "+
					"consecutive losses faces a much stronger opponent (rank difference -5 or more). "+
					"Current win rate: %.1f%% (%d/%d).",
				rate, in.StrongOpponent.Win, in.StrongOpponent.Total))
		}
	}

	if in.RedCard.Total > 0 {
		if rate := in.RedCard.WinRate(); rate < redCardWinRateFloor {
			recs = append(recs, fmt.Sprintf(
				"4. LIVE RED CARD RULE: Current win rate is %.1f%% (%d/%d). "+
					"Consider reviewing the rule logic, especially regarding which team to bet on "+
					"and timing considerations.",
				rate, in.RedCard.Win, in.RedCard.Total))
		}
	}

	if rec, ok := streakThresholdRecommendation(in.Streaks); ok {
		recs = append(recs, rec)
	}

	return recs
}

// streakThresholdRecommendation compares the win rate at exactly three
// consecutive losses against the pooled rate at four or more. Requires both
// slices to be populated.
func streakThresholdRecommendation(streaks map[int]*BucketStat) (string, bool) {
	at3, ok := streaks[streakComparisonThreshold]
	if !ok || at3.Total == 0 {
		return "", false
	}

	var pooled BucketStat
	for count, s := range streaks {
		if count <= streakComparisonThreshold {
			continue
		}
		pooled.Total += s.Total
		pooled.Win += s.Win
		pooled.Lose += s.Lose
	}
	if pooled.Total == 0 {
		return "", false
	}

	if pooled.WinRate() <= at3.WinRate() {
		return "", false
	}
	return fmt.Sprintf(
		"5. CONSECUTIVE LOSSES THRESHOLD: Teams with 4+ consecutive losses have "+
			"better win rate (%.1f%%) than teams with exactly 3 losses (%.1f%%). "+
			"Consider increasing the threshold to 4 or adjusting confidence calculation "+
			"based on loss count.",
		pooled.WinRate(), at3.WinRate()), true
}
