package analysis

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate_CountsAndExclusions(t *testing.T) {
	records := []Record{
		{RuleSlug: RuleConsecutiveLosses, Outcome: OutcomeWin},
		{RuleSlug: RuleConsecutiveLosses, Outcome: OutcomeLose},
		{RuleSlug: RuleConsecutiveLosses, Outcome: OutcomeUnknown},
		{RuleSlug: RuleLiveRedCard, Outcome: OutcomeWin},
	}

	stats := Aggregate(records, ByRule)
	require.Len(t, stats, 2)

	losses := stats[RuleConsecutiveLosses]
	assert.Equal(t, 3, losses.Total, "unresolved outcomes stay in the total")
	assert.Equal(t, 1, losses.Win)
	assert.Equal(t, 1, losses.Lose)

	redCard := stats[RuleLiveRedCard]
	assert.Equal(t, 1, redCard.Total)
	assert.Equal(t, 1, redCard.Win)
}

func TestAggregate_ExcludedRecordsCreateNoBucket(t *testing.T) {
	records := []Record{
		{TeamAnalyzed: "A", HomeTeam: "A", AwayTeam: "B", HomeTeamRank: "N/A", Outcome: OutcomeWin},
		{TeamAnalyzed: "A", HomeTeam: "A", AwayTeam: "B", HomeTeamRank: "7", Outcome: OutcomeLose},
	}

	stats := Aggregate(records, ByTeamRank)
	require.Len(t, stats, 1)
	assert.Equal(t, 1, stats[7].Total)
}

func TestWinRate_ZeroDenominator(t *testing.T) {
	var s BucketStat
	assert.Equal(t, 0.0, s.WinRate())
	assert.Equal(t, 0.0, s.LoseRate())

	s = BucketStat{Total: 4, Win: 3, Lose: 1}
	assert.InDelta(t, 75.0, s.WinRate(), 1e-9)
	assert.InDelta(t, 25.0, s.LoseRate(), 1e-9)
}

func TestSortedKeys_Deterministic(t *testing.T) {
	intStats := map[int]*BucketStat{9: {}, 2: {}, 15: {}}
	assert.Equal(t, []int{2, 9, 15}, SortedKeys(intStats))

	strStats := map[string]*BucketStat{"live_red_card": {}, "consecutive_draws": {}, "consecutive_losses": {}}
	assert.Equal(t, []string{"consecutive_draws", "consecutive_losses", "live_red_card"}, SortedKeys(strStats))
}

func rankRecord(analyzedRank, opponentRank int, outcome string) Record {
	return Record{
		RuleSlug:     RuleConsecutiveLosses,
		Outcome:      outcome,
		TeamAnalyzed: "Analyzed",
		HomeTeam:     "Analyzed",
		AwayTeam:     "Opponent",
		HomeTeamRank: fmt.Sprintf("%d", analyzedRank),
		AwayTeamRank: fmt.Sprintf("%d", opponentRank),
	}
}

func TestBottomRanksWindow_FullLeague(t *testing.T) {
	var records []Record
	for rank := 1; rank <= 10; rank++ {
		records = append(records, rankRecord(rank, 1, OutcomeWin))
	}

	lo, hi, ok := BottomRanksWindow(records)
	require.True(t, ok)
	assert.Equal(t, 8, lo)
	assert.Equal(t, 10, hi)
}

func TestBottomRanksWindow_SmallLeague(t *testing.T) {
	records := []Record{
		rankRecord(1, 2, OutcomeWin),
		rankRecord(3, 1, OutcomeLose),
	}

	lo, hi, ok := BottomRanksWindow(records)
	require.True(t, ok)
	assert.Equal(t, 1, lo)
	assert.Equal(t, 3, hi)

	// With max rank 3 the window covers every record.
	stat := BottomRanksStat(records, lo, hi)
	assert.Equal(t, 2, stat.Total)
}

func TestBottomRanksWindow_UsesOpponentRanks(t *testing.T) {
	// The analyzed side only ever sits at rank 5, but an opponent at rank
	// 12 pushes the window to [10, 12]: the bound reflects league size,
	// not analyzed-team appearances.
	records := []Record{
		rankRecord(5, 12, OutcomeWin),
		rankRecord(5, 3, OutcomeLose),
	}

	lo, hi, ok := BottomRanksWindow(records)
	require.True(t, ok)
	assert.Equal(t, 10, lo)
	assert.Equal(t, 12, hi)

	// No analyzed-side rank falls inside the window.
	stat := BottomRanksStat(records, lo, hi)
	assert.Equal(t, 0, stat.Total)
	assert.Equal(t, 0.0, stat.WinRate())
}

func TestBottomRanksWindow_NoKnownRanks(t *testing.T) {
	records := []Record{
		{TeamAnalyzed: "A", HomeTeam: "A", AwayTeam: "B", HomeTeamRank: "N/A", AwayTeamRank: "N/A"},
	}
	_, _, ok := BottomRanksWindow(records)
	assert.False(t, ok)

	_, _, ok = BottomRanksWindow(nil)
	assert.False(t, ok)
}

func TestBottomRanksStat_AnalyzedPerspective(t *testing.T) {
	records := []Record{
		rankRecord(9, 10, OutcomeWin),
		rankRecord(9, 10, OutcomeLose),
		rankRecord(4, 10, OutcomeLose), // analyzed rank outside the window
	}

	lo, hi, ok := BottomRanksWindow(records)
	require.True(t, ok)
	require.Equal(t, 8, lo)
	require.Equal(t, 10, hi)

	stat := BottomRanksStat(records, lo, hi)
	assert.Equal(t, 2, stat.Total)
	assert.Equal(t, 1, stat.Win)
	assert.Equal(t, 1, stat.Lose)
	assert.InDelta(t, 50.0, stat.WinRate(), 1e-9)
}

func TestFilterByRule(t *testing.T) {
	records := []Record{
		{RuleSlug: RuleConsecutiveLosses},
		{RuleSlug: RuleConsecutiveDraws},
		{RuleSlug: RuleConsecutiveLosses},
	}
	filtered := FilterByRule(records, RuleConsecutiveLosses)
	assert.Len(t, filtered, 2)
	assert.Empty(t, FilterByRule(records, RuleTop5ConsecutiveLosses))
}
