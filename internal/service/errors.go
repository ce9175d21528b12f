package service

import (
	"errors"
	"fmt"
	"time"

	"sectorchat/internal/domain/models"
)

// ErrInvalidArgument marks malformed caller input (top_n < 1, inverted
// window). It is raised before any network call is made.
var ErrInvalidArgument = errors.New("invalid argument")

// NoTradingDataError means the trading-day resolver exhausted its look-ahead
// ceiling without finding a day that has data. It names both the original
// start date and the last candidate probed.
type NoTradingDataError struct {
	OriginalStart time.Time
	FinalProbe    time.Time
	Probes        int
}

func (e *NoTradingDataError) Error() string {
	return fmt.Sprintf("no trading data found between %s and %s after %d probes",
		e.OriginalStart.Format(models.DateLayout), e.FinalProbe.Format(models.DateLayout), e.Probes)
}
