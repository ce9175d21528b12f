package models

import "time"

// DateLayout is the wire format for all provider date parameters.
const DateLayout = "2006-01-02"

// DateWindow is an inclusive calendar-date range. Only the trading-day
// resolver mutates it, and only by advancing Start forward; End never moves.
type DateWindow struct {
	Start time.Time
	End   time.Time
}

// NewDateWindow parses a window from "YYYY-MM-DD" strings.
func NewDateWindow(start, end string) (DateWindow, error) {
	s, err := time.Parse(DateLayout, start)
	if err != nil {
		return DateWindow{}, err
	}
	e, err := time.Parse(DateLayout, end)
	if err != nil {
		return DateWindow{}, err
	}
	return DateWindow{Start: s, End: e}, nil
}

// Valid reports whether Start <= End.
func (w DateWindow) Valid() bool {
	return !w.Start.After(w.End)
}

// AdvanceStart returns a copy of the window with Start moved forward one
// calendar day.
func (w DateWindow) AdvanceStart() DateWindow {
	return DateWindow{Start: w.Start.AddDate(0, 0, 1), End: w.End}
}

// StartString returns Start in wire format.
func (w DateWindow) StartString() string { return w.Start.Format(DateLayout) }

// EndString returns End in wire format.
func (w DateWindow) EndString() string { return w.End.Format(DateLayout) }
