package models

// AggregatedEntry is the per-company total built by the volume aggregator.
//
// Invariant: TotalVolume equals the exact sum of contributing record volumes;
// the Symbol is fixed by the first record seen for the company.
type AggregatedEntry struct {
	Symbol      string `json:"symbol" example:"BBRI.JK"`
	TotalVolume int64  `json:"total_volume" example:"450000"`
}

// RankedEntry pairs a company name with its aggregated totals.
type RankedEntry struct {
	CompanyName string `json:"company_name" example:"Bank Rakyat Indonesia"`
	AggregatedEntry
}

// RankedResult is an ordered sequence of aggregated entries, sorted by total
// volume descending with ties broken by first-seen insertion order, and
// truncated to the requested top-N.
type RankedResult []RankedEntry

// TotalVolume returns the sum of all entry totals. Useful as a conservation
// check against the raw input.
func (r RankedResult) TotalVolume() int64 {
	var sum int64
	for _, e := range r {
		sum += e.TotalVolume
	}
	return sum
}
