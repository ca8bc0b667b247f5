package analysis

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// The renderer is pure formatting over already-aggregated tables. Layouts
// and the one-decimal rounding are fixed so that two runs over the same
// artifact produce byte-identical reports.

const bannerWidth = 80

func writeBanner(w io.Writer, title string) {
	rule := strings.Repeat("=", bannerWidth)
	fmt.Fprintf(w, "\n%s\n%s\n%s\n", rule, title, rule)
}

// writeRuleStats renders the per-rule win/lose breakdown, one block per rule
// slug in lexicographic order.
func writeRuleStats(w io.Writer, stats map[string]*BucketStat) {
	for _, slug := range SortedKeys(stats) {
		s := stats[slug]
		fmt.Fprintf(w, "\n%s:\n", slug)
		fmt.Fprintf(w, "  Total: %d\n", s.Total)
		fmt.Fprintf(w, "  Wins: %d (%.1f%%)\n", s.Win, s.WinRate())
		fmt.Fprintf(w, "  Losses: %d (%.1f%%)\n", s.Lose, s.LoseRate())
		fmt.Fprintf(w, "  Win Rate: %.1f%%\n", s.WinRate())
	}
}

// writeRankTable renders the per-rank performance table for the
// consecutive-losses rule, ranks ascending.
func writeRankTable(w io.Writer, stats map[int]*BucketStat) {
	fmt.Fprintf(w, "\nConsecutive Losses Rule - Performance by Team Rank:\n")
	fmt.Fprintf(w, "Rank | Total | Wins | Losses | Win Rate\n")
	fmt.Fprintln(w, strings.Repeat("-", 50))
	for _, rank := range SortedKeys(stats) {
		s := stats[rank]
		fmt.Fprintf(w, "%4d | %5d | %4d | %6d | %6.1f%%\n", rank, s.Total, s.Win, s.Lose, s.WinRate())
	}
}

// writeBottomRanks renders the bottom-three-ranks slice. The window header is
// shown whenever any rank was observed; the counters only when the slice is
// non-empty.
func writeBottomRanks(w io.Writer, lo, hi int, stat BucketStat) {
	fmt.Fprintf(w, "\nBottom 3 ranks analysis (ranks %d-%d):\n", lo, hi)
	if stat.Total == 0 {
		return
	}
	winRate := stat.WinRate()
	fmt.Fprintf(w, "  Total: %d\n", stat.Total)
	fmt.Fprintf(w, "  Wins: %d (%.1f%%)\n", stat.Win, winRate)
	fmt.Fprintf(w, "  Losses: %d (%.1f%%)\n", stat.Lose, 100-winRate)
}

// writeConfidenceTable renders the confidence-band table in band order,
// skipping bands that saw no records.
func writeConfidenceTable(w io.Writer, stats map[ConfidenceBand]*BucketStat) {
	fmt.Fprintf(w, "\nWin Rate by Confidence Score:\n")
	fmt.Fprintf(w, "Confidence | Total | Wins | Losses | Win Rate\n")
	fmt.Fprintln(w, strings.Repeat("-", 55))
	for _, band := range ConfidenceBands {
		s, ok := stats[band]
		if !ok || s.Total == 0 {
			continue
		}
		fmt.Fprintf(w, "%-10s | %5d | %4d | %6d | %6.1f%%\n", band, s.Total, s.Win, s.Lose, s.WinRate())
	}
}

// writeRankDiffTable renders the opponent rank-difference table, bands in
// lexicographic label order.
func writeRankDiffTable(w io.Writer, stats map[RankDiffBand]*BucketStat) {
	fmt.Fprintf(w, "\nWin Rate by Opponent Rank Difference:\n")
	fmt.Fprintf(w, "Rank Difference | Total | Wins | Losses | Win Rate\n")
	fmt.Fprintln(w, strings.Repeat("-", 60))

	bands := make([]RankDiffBand, 0, len(stats))
	for band := range stats {
		bands = append(bands, band)
	}
	sort.Slice(bands, func(i, j int) bool { return bands[i].String() < bands[j].String() })

	for _, band := range bands {
		s := stats[band]
		if s.Total == 0 {
			continue
		}
		fmt.Fprintf(w, "%-30s | %5d | %4d | %6d | %6.1f%%\n", band, s.Total, s.Win, s.Lose, s.WinRate())
	}
}

// writeStreakTable renders the consecutive-losses-count table, counts
// ascending.
func writeStreakTable(w io.Writer, stats map[int]*BucketStat) {
	fmt.Fprintf(w, "\nWin Rate by Consecutive Losses Count:\n")
	fmt.Fprintf(w, "Losses | Total | Wins | Losses | Win Rate\n")
	fmt.Fprintln(w, strings.Repeat("-", 50))
	for _, count := range SortedKeys(stats) {
		s := stats[count]
		fmt.Fprintf(w, "%6d | %5d | %4d | %6d | %6.1f%%\n", count, s.Total, s.Win, s.Lose, s.WinRate())
	}
}

// writeRuleOverall renders a single rule's overall totals, used by the
// live-red-card and consecutive-draws sections.
func writeRuleOverall(w io.Writer, label string, stat BucketStat) {
	fmt.Fprintf(w, "\nTotal %s opportunities: %d\n", label, stat.Total)
	if stat.Total == 0 {
		return
	}
	winRate := stat.WinRate()
	fmt.Fprintf(w, "Wins: %d (%.1f%%)\n", stat.Win, winRate)
	fmt.Fprintf(w, "Losses: %d (%.1f%%)\n", stat.Lose, 100-winRate)
}

// writeRecommendations renders the recommendations section. An empty set is
// reported explicitly so "ran with no findings" is distinguishable from "did
// not run".
func writeRecommendations(w io.Writer, recs []string) {
	writeBanner(w, "RECOMMENDATIONS")
	if len(recs) == 0 {
		fmt.Fprintf(w, "\nNo specific recommendations based on current data patterns.\n")
	} else {
		for _, rec := range recs {
			fmt.Fprintf(w, "\n%s\n", rec)
		}
	}
	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", bannerWidth))
}
