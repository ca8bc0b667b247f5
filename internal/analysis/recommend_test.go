package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecommend_EmptyInput(t *testing.T) {
	assert.Empty(t, Recommend(RecommendInput{}))
}

func TestRecommend_BottomRanksBoundary(t *testing.T) {
	// Exactly 50% must NOT trigger: the comparison is strict.
	in := RecommendInput{
		BottomRanks: BucketStat{Total: 2, Win: 1, Lose: 1},
		BottomLo:    8,
		BottomHi:    10,
	}
	assert.Empty(t, Recommend(in))

	// One more loss tips the rate to 33.3% and triggers.
	in.BottomRanks = BucketStat{Total: 3, Win: 1, Lose: 2}
	recs := Recommend(in)
	require.Len(t, recs, 1)
	assert.Contains(t, recs[0], "1. CONSECUTIVE LOSSES RULE")
	assert.Contains(t, recs[0], "ranks 8-10")
	assert.Contains(t, recs[0], "33.3% (1/3)")
}

func TestRecommend_BaseConfidence(t *testing.T) {
	in := RecommendInput{
		BaseConfidence: BucketStat{Total: 3, Win: 0, Lose: 3},
	}
	recs := Recommend(in)
	require.Len(t, recs, 1)
	assert.Contains(t, recs[0], "2. CONFIDENCE SCORE")
	assert.Contains(t, recs[0], "0.0% (0/3)")
}

func TestRecommend_StrongOpponent(t *testing.T) {
	in := RecommendInput{
		StrongOpponent: BucketStat{Total: 4, Win: 1, Lose: 3},
	}
	recs := Recommend(in)
	require.Len(t, recs, 1)
	assert.Contains(t, recs[0], "3. OPPONENT STRENGTH")
	assert.Contains(t, recs[0], "25.0% (1/4)")
}

func TestRecommend_RedCardThreshold(t *testing.T) {
	// Exactly 40% does not trigger.
	in := RecommendInput{RedCard: BucketStat{Total: 5, Win: 2, Lose: 3}}
	assert.Empty(t, Recommend(in))

	// Below 40% triggers.
	in.RedCard = BucketStat{Total: 5, Win: 1, Lose: 4}
	recs := Recommend(in)
	require.Len(t, recs, 1)
	assert.Contains(t, recs[0], "4. LIVE RED CARD RULE")
	assert.Contains(t, recs[0], "20.0% (1/5)")
}

func TestRecommend_StreakThreshold(t *testing.T) {
	// 4+ streaks pool together and beat the exactly-3 rate.
	in := RecommendInput{
		Streaks: map[int]*BucketStat{
			3: {Total: 4, Win: 1, Lose: 3},
			4: {Total: 2, Win: 1, Lose: 1},
			5: {Total: 2, Win: 2, Lose: 0},
		},
	}
	recs := Recommend(in)
	require.Len(t, recs, 1)
	assert.Contains(t, recs[0], "5. CONSECUTIVE LOSSES THRESHOLD")
	assert.Contains(t, recs[0], "(75.0%)")
	assert.Contains(t, recs[0], "(25.0%)")
}

func TestRecommend_StreakThreshold_NotBetter(t *testing.T) {
	// Equal rates must not trigger.
	in := RecommendInput{
		Streaks: map[int]*BucketStat{
			3: {Total: 2, Win: 1, Lose: 1},
			4: {Total: 2, Win: 1, Lose: 1},
		},
	}
	assert.Empty(t, Recommend(in))
}

func TestRecommend_StreakThreshold_MissingSlices(t *testing.T) {
	// No 4+ buckets: nothing to compare.
	in := RecommendInput{
		Streaks: map[int]*BucketStat{3: {Total: 4, Win: 1, Lose: 3}},
	}
	assert.Empty(t, Recommend(in))

	// No exactly-3 bucket either way.
	in.Streaks = map[int]*BucketStat{5: {Total: 4, Win: 4}}
	assert.Empty(t, Recommend(in))
}

func TestRecommend_OrderStable(t *testing.T) {
	in := RecommendInput{
		BottomRanks:    BucketStat{Total: 3, Win: 1, Lose: 2},
		BottomLo:       8,
		BottomHi:       10,
		BaseConfidence: BucketStat{Total: 3, Win: 0, Lose: 3},
		StrongOpponent: BucketStat{Total: 4, Win: 1, Lose: 3},
		RedCard:        BucketStat{Total: 5, Win: 1, Lose: 4},
		Streaks: map[int]*BucketStat{
			3: {Total: 4, Win: 1, Lose: 3},
			4: {Total: 4, Win: 3, Lose: 1},
		},
	}

	recs := Recommend(in)
	require.Len(t, recs, 5)
	assert.Contains(t, recs[0], "1. CONSECUTIVE LOSSES RULE")
	assert.Contains(t, recs[1], "2. CONFIDENCE SCORE")
	assert.Contains(t, recs[2], "3. OPPONENT STRENGTH")
	assert.Contains(t, recs[3], "4. LIVE RED CARD RULE")
	assert.Contains(t, recs[4], "5. CONSECUTIVE LOSSES THRESHOLD")
}
