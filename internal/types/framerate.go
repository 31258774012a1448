package types

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"vxtimeline/internal/vxerr"
)

// FrameRate is a rational frames-per-second value. It is never reduced, so
// 24000/1001 stays 24000/1001.
type FrameRate struct {
	Numerator   uint32 `json:"numerator" yaml:"numerator"`
	Denominator uint32 `json:"denominator" yaml:"denominator"`
}

// Common rates.
var (
	FPS24     = FrameRate{Numerator: 24, Denominator: 1}
	FPS25     = FrameRate{Numerator: 25, Denominator: 1}
	FPS30     = FrameRate{Numerator: 30, Denominator: 1}
	FPS60     = FrameRate{Numerator: 60, Denominator: 1}
	FPS23_976 = FrameRate{Numerator: 24000, Denominator: 1001}
	FPS29_97  = FrameRate{Numerator: 30000, Denominator: 1001}
)

func NewFrameRate(numerator, denominator uint32) FrameRate {
	return FrameRate{Numerator: numerator, Denominator: denominator}
}

// Float64 returns numerator/denominator.
func (r FrameRate) Float64() float64 {
	return float64(r.Numerator) / float64(r.Denominator)
}

// FrameDuration is the length of one frame, truncated to the nanosecond.
func (r FrameRate) FrameDuration() time.Duration {
	if r.Numerator == 0 {
		return 0
	}
	return time.Duration(uint64(r.Denominator) * uint64(time.Second) / uint64(r.Numerator))
}

// IsZero reports whether the rate cannot be used for arithmetic.
func (r FrameRate) IsZero() bool {
	return r.Numerator == 0 || r.Denominator == 0
}

func (r FrameRate) String() string {
	return fmt.Sprintf("%d/%d", r.Numerator, r.Denominator)
}

// ParseFrameRate accepts "num/den" or a bare integer rate.
func ParseFrameRate(s string) (FrameRate, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, "/")
	if len(parts) > 2 {
		return FrameRate{}, vxerr.Invalid(vxerr.DomainTimeline, "invalid frame rate %q", s)
	}

	num, err := strconv.ParseUint(parts[0], 10, 32)
	if err != nil {
		return FrameRate{}, vxerr.Invalid(vxerr.DomainTimeline, "invalid frame rate numerator in %q", s)
	}
	den := uint64(1)
	if len(parts) == 2 {
		den, err = strconv.ParseUint(parts[1], 10, 32)
		if err != nil {
			return FrameRate{}, vxerr.Invalid(vxerr.DomainTimeline, "invalid frame rate denominator in %q", s)
		}
	}

	r := FrameRate{Numerator: uint32(num), Denominator: uint32(den)}
	if r.IsZero() {
		return FrameRate{}, vxerr.Invalid(vxerr.DomainTimeline, "frame rate %q has a zero term", s)
	}
	return r, nil
}
