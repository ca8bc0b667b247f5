package analysis

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dataset.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDataset_MissingFile(t *testing.T) {
	_, err := LoadDataset(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDatasetNotFound)
	assert.Contains(t, err.Error(), "nope.csv")
}

func TestLoadDataset_HeaderOnly(t *testing.T) {
	path := writeFile(t, "rule_slug,outcome,confidence_score\n")
	records, err := LoadDataset(path)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestLoadDataset_EmptyFile(t *testing.T) {
	path := writeFile(t, "")
	records, err := LoadDataset(path)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestLoadDataset_MatchesColumnsByName(t *testing.T) {
	// Shuffled column order plus extra columns the analyzer ignores.
	path := writeFile(t,
		"league,outcome,rule_slug,home_team,away_team,team_analyzed,confidence_score,home_team_rank,away_team_rank,home_consecutive_losses,away_consecutive_losses,created_at\n"+
			"Premier League,win,consecutive_losses,Norwich,Luton,Norwich,0.65,18,12,3,N/A,2024-03-01\n")

	records, err := LoadDataset(path)
	require.NoError(t, err)
	require.Len(t, records, 1)

	r := records[0]
	assert.Equal(t, "consecutive_losses", r.RuleSlug)
	assert.Equal(t, "win", r.Outcome)
	assert.Equal(t, "0.65", r.ConfidenceScore)
	assert.Equal(t, "Norwich", r.TeamAnalyzed)
	assert.Equal(t, "Norwich", r.HomeTeam)
	assert.Equal(t, "Luton", r.AwayTeam)
	assert.Equal(t, "18", r.HomeTeamRank)
	assert.Equal(t, "12", r.AwayTeamRank)
	assert.Equal(t, "3", r.HomeConsLosses)
	assert.Equal(t, "N/A", r.AwayConsLosses)
}

func TestLoadDataset_MissingColumnsReadEmpty(t *testing.T) {
	path := writeFile(t,
		"rule_slug,outcome\n"+
			"live_red_card,lose\n")

	records, err := LoadDataset(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "live_red_card", records[0].RuleSlug)
	assert.Equal(t, "", records[0].HomeTeamRank, "missing columns behave like unknown fields")
}

func TestLoadDataset_PreservesInputOrder(t *testing.T) {
	path := writeFile(t,
		"rule_slug,outcome\n"+
			"a,win\n"+
			"b,lose\n"+
			"c,win\n")

	records, err := LoadDataset(path)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "a", records[0].RuleSlug)
	assert.Equal(t, "b", records[1].RuleSlug)
	assert.Equal(t, "c", records[2].RuleSlug)
}

func TestLoadDataset_MalformedRowSkippedNotFatal(t *testing.T) {
	// A bare-quote row is unparseable, but the rows after it still load.
	path := writeFile(t,
		"rule_slug,outcome\n"+
			"consecutive_losses,win\n"+
			"broken\"row,lose\n"+
			"live_red_card,lose\n")

	records, err := LoadDataset(path)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "consecutive_losses", records[0].RuleSlug)
	assert.Equal(t, "live_red_card", records[1].RuleSlug)
}

func TestLoadDataset_RaggedRowsTolerated(t *testing.T) {
	// A short row reads as empty for the missing columns.
	path := writeFile(t,
		"rule_slug,outcome,confidence_score\n"+
			"consecutive_losses,win\n")

	records, err := LoadDataset(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "", records[0].ConfidenceScore)
}
