package types

import "time"

// TimeRange is the half-open interval [Start, Start+Duration).
type TimeRange struct {
	Start    Timecode      `json:"start"`
	Duration time.Duration `json:"duration"`
}

func NewTimeRange(start Timecode, duration time.Duration) TimeRange {
	return TimeRange{Start: start, Duration: duration}
}

// End is the first instant after the range.
func (r TimeRange) End() Timecode {
	return r.Start.Add(r.Duration)
}

// Contains reports whether Start <= t < End.
func (r TimeRange) Contains(t Timecode) bool {
	return t >= r.Start && t < r.End()
}
