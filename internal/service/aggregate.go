package service

import (
	"fmt"
	"sort"

	"sectorchat/internal/domain/models"
)

// Aggregate sums per-company volume across every date in raw, ranks the
// companies by total volume descending, and truncates to the first topN.
//
// The first record seen for a company fixes its symbol. Ties keep first-seen
// order: dates are visited in ascending date-key order and records in payload
// order, so the result is deterministic for a given input.
//
// An empty raw map yields an empty result, not an error; deciding whether
// that means "advance the window" is the resolver's job.
func Aggregate(raw models.DailyTransactions, topN int) (models.RankedResult, error) {
	if topN < 1 {
		return nil, fmt.Errorf("%w: top_n must be >= 1, got %d", ErrInvalidArgument, topN)
	}

	dates := make([]string, 0, len(raw))
	for d := range raw {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	type slot struct {
		entry models.RankedEntry
	}
	index := make(map[string]*slot, len(raw))
	order := make([]*slot, 0, len(raw))

	for _, d := range dates {
		for _, rec := range raw[d] {
			s, ok := index[rec.CompanyName]
			if !ok {
				s = &slot{
					entry: models.RankedEntry{
						CompanyName: rec.CompanyName,
						AggregatedEntry: models.AggregatedEntry{
							Symbol: rec.Symbol,
						},
					},
				}
				index[rec.CompanyName] = s
				order = append(order, s)
			}
			s.entry.TotalVolume += rec.Volume
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return order[i].entry.TotalVolume > order[j].entry.TotalVolume
	})

	if topN > len(order) {
		topN = len(order)
	}
	result := make(models.RankedResult, 0, topN)
	for _, s := range order[:topN] {
		result = append(result, s.entry)
	}
	return result, nil
}
