package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"sectorchat/internal/domain/models"
)

// maxCompareFetches caps how many daily-transaction fetches run at once when
// comparing tickers.
const maxCompareFetches = 4

// CompareDaily fetches the daily transaction document for every ticker over
// the same window. Fetches run concurrently; the first error cancels the
// remaining ones.
func (s *volumeService) CompareDaily(ctx context.Context, tickers []string, window models.DateWindow) (map[string]json.RawMessage, error) {
	if len(tickers) == 0 {
		return nil, fmt.Errorf("%w: at least one ticker is required", ErrInvalidArgument)
	}
	if !window.Valid() {
		return nil, fmt.Errorf("%w: start date %s is after end date %s",
			ErrInvalidArgument, window.StartString(), window.EndString())
	}

	// errgroup cancels siblings on first error.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxCompareFetches)

	var mu sync.Mutex
	out := make(map[string]json.RawMessage, len(tickers))

	for _, t := range tickers {
		ticker := strings.ToUpper(strings.TrimSpace(t))
		if ticker == "" {
			return nil, fmt.Errorf("%w: empty ticker", ErrInvalidArgument)
		}
		g.Go(func() error {
			doc, err := s.api.DailyTransactions(gctx, ticker, window)
			if err != nil {
				return fmt.Errorf("ticker %s: %w", ticker, err)
			}
			mu.Lock()
			out[ticker] = doc
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
