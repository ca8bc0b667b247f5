package analysis

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
)

// ErrDatasetNotFound is returned when the input artifact does not exist.
// It is the only condition that aborts a run.
var ErrDatasetNotFound = errors.New("dataset not found")

// LoadDataset reads the exported opportunities CSV into records, preserving
// input order. Columns are matched by header name so extra columns are
// ignored and column order does not matter. A header-only (or fully empty)
// file yields zero records, which is a valid dataset. A structurally
// malformed row is skipped with a warning; the rows after it still load.
func LoadDataset(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrDatasetNotFound, path)
		}
		return nil, fmt.Errorf("open dataset %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read dataset header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}
	field := func(row []string, name string) string {
		i, ok := columns[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var records []Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Warn().Err(err).Str("dataset", path).Msg("skipping malformed dataset row")
			continue
		}
		records = append(records, Record{
			RuleSlug:        field(row, "rule_slug"),
			Outcome:         field(row, "outcome"),
			ConfidenceScore: field(row, "confidence_score"),
			TeamAnalyzed:    field(row, "team_analyzed"),
			HomeTeam:        field(row, "home_team"),
			AwayTeam:        field(row, "away_team"),
			HomeTeamRank:    field(row, "home_team_rank"),
			AwayTeamRank:    field(row, "away_team_rank"),
			HomeConsLosses:  field(row, "home_consecutive_losses"),
			AwayConsLosses:  field(row, "away_consecutive_losses"),
		})
	}
	return records, nil
}
