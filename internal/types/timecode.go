package types

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"vxtimeline/internal/vxerr"
)

// Timecode is an instant on a timeline, stored as the exact elapsed time
// since zero. It encodes as an integer count of nanoseconds.
type Timecode time.Duration

// FrameNumber is a zero-based frame index at some frame rate.
type FrameNumber uint64

// Zero is the start of every timeline.
const Zero Timecode = 0

// FromSeconds converts fractional seconds to a Timecode, rounding to the
// nearest nanosecond.
func FromSeconds(seconds float64) Timecode {
	return Timecode(math.Round(seconds * float64(time.Second)))
}

// FromDuration wraps an elapsed duration.
func FromDuration(d time.Duration) Timecode {
	return Timecode(d)
}

// FromFrames converts a frame count at rate to a Timecode. The result is not
// snapped to any frame grid beyond float64 precision.
func FromFrames(frames uint64, rate FrameRate) Timecode {
	return FromSeconds(float64(frames) / rate.Float64())
}

// Duration returns the elapsed time since zero.
func (t Timecode) Duration() time.Duration {
	return time.Duration(t)
}

// Seconds returns the elapsed time since zero in seconds.
func (t Timecode) Seconds() float64 {
	return time.Duration(t).Seconds()
}

// Add offsets t by d.
func (t Timecode) Add(d time.Duration) Timecode {
	return t + Timecode(d)
}

// Sub returns the signed distance t - u.
func (t Timecode) Sub(u Timecode) time.Duration {
	return time.Duration(t - u)
}

// Compare returns -1, 0 or +1 as t is before, equal to, or after u.
func (t Timecode) Compare(u Timecode) int {
	switch {
	case t < u:
		return -1
	case t > u:
		return 1
	}
	return 0
}

func (t Timecode) Before(u Timecode) bool { return t < u }

func (t Timecode) After(u Timecode) bool { return t > u }

// Frame returns the index of the frame at rate that contains t.
func (t Timecode) Frame(rate FrameRate) FrameNumber {
	f := math.Floor(t.Seconds()*rate.Float64() + 1e-6)
	if f < 0 {
		return 0
	}
	return FrameNumber(f)
}

// RoundToFrame snaps t to the nearest frame boundary at rate. Nothing in the
// timeline calls this implicitly.
func (t Timecode) RoundToFrame(rate FrameRate) Timecode {
	f := math.Round(t.Seconds() * rate.Float64())
	if f < 0 {
		f = 0
	}
	return FromFrames(uint64(f), rate)
}

// String renders HH:MM:SS.mmm.
func (t Timecode) String() string {
	d := time.Duration(t)
	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	}
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	d -= s * time.Second
	ms := d / time.Millisecond
	return fmt.Sprintf("%s%02d:%02d:%02d.%03d", sign, h, m, s, ms)
}

// maxSeconds bounds parsed timecodes to what fits in int64 nanoseconds.
const maxSeconds = math.MaxInt64 / float64(time.Second)

// ParseTimecode parses SS.mmm, MM:SS(.mmm) or HH:MM:SS(.mmm).
func ParseTimecode(s string) (Timecode, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, ":")
	if len(parts) > 3 || s == "" {
		return 0, vxerr.Invalid(vxerr.DomainTimeline, "invalid timecode format: %q", s)
	}

	var total float64
	for _, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, vxerr.Invalid(vxerr.DomainTimeline, "invalid timecode format: %q", s)
		}
		total = total*60 + v
	}
	if total >= maxSeconds {
		return 0, vxerr.Invalid(vxerr.DomainTimeline, "timecode %q out of range", s)
	}
	return FromSeconds(total), nil
}
