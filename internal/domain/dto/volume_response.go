package dto

import (
	"encoding/json"

	"sectorchat/internal/domain/models"
)

// TopVolumeResponse is returned by GET /api/v1/volume/top.
//
// EffectiveStart may differ from the requested start date when the resolver
// had to skip non-trading days to find data.
type TopVolumeResponse struct {
	EffectiveStart string              `json:"effective_start" example:"2024-07-08"`
	End            string              `json:"end" example:"2024-07-12"`
	TopN           int                 `json:"top_n" example:"5"`
	Companies      models.RankedResult `json:"companies"`
	Table          string              `json:"table"`
}

// DailyComparisonResponse is returned by GET /api/v1/daily for one or more
// tickers over the same window. Each ticker maps to the provider's raw daily
// transaction document.
type DailyComparisonResponse struct {
	Start   string                     `json:"start" example:"2024-07-08"`
	End     string                     `json:"end" example:"2024-07-12"`
	Tickers map[string]json.RawMessage `json:"tickers"`
}
