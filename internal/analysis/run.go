package analysis

import (
	"io"

	"github.com/rs/zerolog/log"
)

// DefaultDatasetPath is the conventional name of the exported analysis
// artifact, shared with the exporter.
const DefaultDatasetPath = "betting_opportunities_analysis.csv"

// Runner orchestrates one analysis run: load the dataset, fold it through
// the seven fixed analyses, render the report and the recommendations. The
// runner owns the loaded records and all bucket tables for the duration of
// the run; nothing survives it.
type Runner struct {
	datasetPath string
	out         io.Writer
}

// NewRunner returns a runner that reads datasetPath and writes the report
// to out.
func NewRunner(datasetPath string, out io.Writer) *Runner {
	return &Runner{datasetPath: datasetPath, out: out}
}

// Result summarizes one completed run for callers that deliver or persist
// the findings.
type Result struct {
	Records         int
	Recommendations []string
}

// Run executes one full analysis. A missing dataset is the only fatal
// condition and no partial report is written for it; every per-record issue
// is absorbed by the bucketing functions as an exclusion from the affected
// dimension only.
func (r *Runner) Run() (Result, error) {
	records, err := LoadDataset(r.datasetPath)
	if err != nil {
		return Result{}, err
	}

	log.Info().Int("opportunities", len(records)).Str("dataset", r.datasetPath).
		Msg("Analyzing betting opportunities")

	lossStreakRecords := FilterByRule(records, RuleConsecutiveLosses)

	// Analysis 1: win/lose rates by rule type, over the full dataset.
	ruleStats := Aggregate(records, ByRule)
	writeBanner(r.out, "ANALYSIS 1: WIN/LOSE RATES BY RULE TYPE")
	writeRuleStats(r.out, ruleStats)

	// Analysis 2: consecutive-losses rule by analyzed-team rank, plus the
	// bottom-three-ranks slice.
	rankStats := Aggregate(lossStreakRecords, ByTeamRank)
	writeBanner(r.out, "ANALYSIS 2: CONSECUTIVE LOSSES RULE - RANK ANALYSIS")
	writeRankTable(r.out, rankStats)

	var bottomStat BucketStat
	bottomLo, bottomHi, bottomOK := BottomRanksWindow(lossStreakRecords)
	if bottomOK {
		bottomStat = BottomRanksStat(lossStreakRecords, bottomLo, bottomHi)
		writeBottomRanks(r.out, bottomLo, bottomHi, bottomStat)
	}

	// Analysis 3: confidence score effectiveness, over the full dataset.
	confidenceStats := Aggregate(records, ByConfidence)
	writeBanner(r.out, "ANALYSIS 3: CONFIDENCE SCORE EFFECTIVENESS")
	writeConfidenceTable(r.out, confidenceStats)

	// Analysis 4: opponent rank difference for the consecutive-losses rule.
	rankDiffStats := Aggregate(lossStreakRecords, ByRankDiff)
	writeBanner(r.out, "ANALYSIS 4: OPPONENT RANK DIFFERENCE ANALYSIS (Consecutive Losses Rule)")
	writeRankDiffTable(r.out, rankDiffStats)

	// Analysis 5: consecutive-losses count distribution.
	streakStats := Aggregate(lossStreakRecords, ByStreakLength)
	writeBanner(r.out, "ANALYSIS 5: CONSECUTIVE LOSSES COUNT ANALYSIS")
	writeStreakTable(r.out, streakStats)

	// Analyses 6 and 7: overall performance of the live-red-card and
	// consecutive-draws rules.
	redCardStat := overallRuleStat(records, RuleLiveRedCard)
	writeBanner(r.out, "ANALYSIS 6: LIVE RED CARD RULE ANALYSIS")
	writeRuleOverall(r.out, "Live Red Card", redCardStat)

	drawsStat := overallRuleStat(records, RuleConsecutiveDraws)
	writeBanner(r.out, "ANALYSIS 7: CONSECUTIVE DRAWS RULE ANALYSIS")
	writeRuleOverall(r.out, "Consecutive Draws", drawsStat)

	recs := Recommend(RecommendInput{
		BottomRanks:    bottomStat,
		BottomLo:       bottomLo,
		BottomHi:       bottomHi,
		BaseConfidence: statOrZero(confidenceStats, ConfidenceBase),
		StrongOpponent: statOrZero(rankDiffStats, OpponentMuchStronger),
		RedCard:        redCardStat,
		Streaks:        streakStats,
	})
	writeRecommendations(r.out, recs)

	return Result{Records: len(records), Recommendations: recs}, nil
}

func overallRuleStat(records []Record, slug string) BucketStat {
	var stat BucketStat
	for _, r := range records {
		if r.RuleSlug == slug {
			stat.Add(r.Outcome)
		}
	}
	return stat
}

func statOrZero[K comparable](stats map[K]*BucketStat, key K) BucketStat {
	if s, ok := stats[key]; ok {
		return *s
	}
	return BucketStat{}
}
