package analysis

import (
	"cmp"
	"slices"
)

// BucketStat is one aggregation cell. Counters only ever increase during a
// single aggregation pass and are never shared across dimensions.
type BucketStat struct {
	Total int
	Win   int
	Lose  int
}

// Add folds one outcome into the cell. Unresolved outcomes count toward the
// total but neither wins nor losses.
func (s *BucketStat) Add(outcome string) {
	s.Total++
	switch outcome {
	case OutcomeWin:
		s.Win++
	case OutcomeLose:
		s.Lose++
	}
}

// WinRate returns wins as a percentage of the bucket total, 0 when the
// bucket is empty.
func (s BucketStat) WinRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Win) / float64(s.Total) * 100
}

// LoseRate returns losses as a percentage of the bucket total, 0 when the
// bucket is empty.
func (s BucketStat) LoseRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Lose) / float64(s.Total) * 100
}

// Aggregate folds records through a bucketing function into per-bucket
// counters in a single linear pass. Buckets are created with zero counters on
// first encounter; excluded records are skipped entirely.
func Aggregate[K comparable](records []Record, bucket func(Record) (K, bool)) map[K]*BucketStat {
	stats := make(map[K]*BucketStat)
	for _, r := range records {
		key, ok := bucket(r)
		if !ok {
			continue
		}
		cell, ok := stats[key]
		if !ok {
			cell = &BucketStat{}
			stats[key] = cell
		}
		cell.Add(r.Outcome)
	}
	return stats
}

// SortedKeys returns the bucket keys in deterministic order: numeric keys
// ascending, string keys lexicographic.
func SortedKeys[K cmp.Ordered](stats map[K]*BucketStat) []K {
	keys := make([]K, 0, len(stats))
	for k := range stats {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// FilterByRule returns the records produced by one rule, preserving order.
func FilterByRule(records []Record, slug string) []Record {
	var filtered []Record
	for _, r := range records {
		if r.RuleSlug == slug {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// BottomRanksWindow determines the "bottom three ranks" window over the
// given records. The upper bound is the maximum rank observed across all
// known home AND away ranks, not just the analyzed side, so the window
// reflects league size rather than analyzed-team appearances. Returns false
// when no rank is known at all.
func BottomRanksWindow(records []Record) (lo, hi int, ok bool) {
	for _, r := range records {
		if rank, known := r.HomeRank(); known && (!ok || rank > hi) {
			hi = rank
			ok = true
		}
		if rank, known := r.AwayRank(); known && (!ok || rank > hi) {
			hi = rank
			ok = true
		}
	}
	if !ok {
		return 0, 0, false
	}
	return hi - 2, hi, true
}

// BottomRanksStat re-aggregates win/lose/total restricted to records whose
// analyzed-side rank falls inside [lo, hi]. This is a distinct second pass:
// the window bound comes from a superset of the per-record analyzed ranks,
// so it cannot be derived from the per-rank buckets alone.
func BottomRanksStat(records []Record, lo, hi int) BucketStat {
	var stat BucketStat
	for _, r := range records {
		rank, ok := r.AnalyzedRank()
		if !ok || rank < lo || rank > hi {
			continue
		}
		stat.Add(r.Outcome)
	}
	return stat
}
