package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"sectorchat/internal/domain/models"
	"sectorchat/internal/logger"
	"sectorchat/internal/sectors"
)

// VolumeService defines the business logic behind the volume-oriented tools:
// ranked top-by-volume resolution and multi-ticker daily comparison.
type VolumeService interface {
	// TopByVolume resolves the first trading day at or after window.Start that
	// has transaction data, aggregates volumes per company across the
	// resolved window, and returns the ranked, formatted result.
	TopByVolume(ctx context.Context, window models.DateWindow, topN int) (*TopVolumeResult, error)

	// CompareDaily fetches daily transaction documents for several tickers
	// over the same window, one fetch per ticker.
	CompareDaily(ctx context.Context, tickers []string, window models.DateWindow) (map[string]json.RawMessage, error)
}

// TopVolumeResult is the outcome of one resolved top-by-volume query.
//
// EffectiveStart is the first probed date that had data; it equals the
// requested start when that day was already a trading day.
type TopVolumeResult struct {
	EffectiveStart time.Time
	End            time.Time
	Companies      models.RankedResult
	Table          string
}

type volumeService struct {
	api          sectors.API
	maxLookahead int
	log          zerolog.Logger
}

// NewVolumeService constructs the volume service.
//
// maxLookaheadDays bounds how many consecutive calendar days TopByVolume may
// probe before giving up; values below 1 fall back to 7.
func NewVolumeService(api sectors.API, maxLookaheadDays int) VolumeService {
	if maxLookaheadDays < 1 {
		maxLookaheadDays = 7
	}
	return &volumeService{
		api:          api,
		maxLookahead: maxLookaheadDays,
		log:          logger.With("volume"),
	}
}
