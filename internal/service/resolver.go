package service

import (
	"context"
	"fmt"

	"sectorchat/internal/domain/models"
)

// TopByVolume implements the trading-day resolution loop.
//
// Starting from window.Start, each probe fetches the most-traded data for
// [candidate, window.End] and aggregates it. A failed fetch or an empty
// aggregation advances the candidate one calendar day; the loop ends when a
// probe yields at least one company (resolved), the candidate passes
// window.End, or maxLookahead probes have been spent (exhausted).
//
// Argument validation happens before any network call.
func (s *volumeService) TopByVolume(ctx context.Context, window models.DateWindow, topN int) (*TopVolumeResult, error) {
	if topN < 1 {
		return nil, fmt.Errorf("%w: top_n must be >= 1, got %d", ErrInvalidArgument, topN)
	}
	if !window.Valid() {
		return nil, fmt.Errorf("%w: start date %s is after end date %s",
			ErrInvalidArgument, window.StartString(), window.EndString())
	}

	candidate := window
	probes := 0
	for probes < s.maxLookahead && candidate.Valid() {
		probes++

		raw, err := s.api.MostTraded(ctx, candidate, topN)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			s.log.Warn().
				Str("candidate", candidate.StartString()).
				Int("probe", probes).
				Err(err).
				Msg("probe failed, advancing start date")
			candidate = candidate.AdvanceStart()
			continue
		}

		ranked, err := Aggregate(raw, topN)
		if err != nil {
			return nil, err
		}
		if len(ranked) == 0 {
			s.log.Info().
				Str("candidate", candidate.StartString()).
				Int("probe", probes).
				Msg("no trading data, advancing start date")
			candidate = candidate.AdvanceStart()
			continue
		}

		return &TopVolumeResult{
			EffectiveStart: candidate.Start,
			End:            candidate.End,
			Companies:      ranked,
			Table:          FormatTable(ranked),
		}, nil
	}

	return nil, &NoTradingDataError{
		OriginalStart: window.Start,
		FinalProbe:    candidate.Start.AddDate(0, 0, -1),
		Probes:        probes,
	}
}
