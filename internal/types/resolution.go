package types

import (
	"fmt"
	"strconv"
	"strings"

	"vxtimeline/internal/vxerr"
)

// Resolution is a frame size in pixels.
type Resolution struct {
	Width  uint32 `json:"width" yaml:"width"`
	Height uint32 `json:"height" yaml:"height"`
}

var (
	HD     = Resolution{Width: 1280, Height: 720}
	FullHD = Resolution{Width: 1920, Height: 1080}
	UHD4K  = Resolution{Width: 3840, Height: 2160}
)

func NewResolution(width, height uint32) Resolution {
	return Resolution{Width: width, Height: height}
}

// AspectRatio returns width/height. A zero height yields +Inf or NaN.
func (r Resolution) AspectRatio() float64 {
	return float64(r.Width) / float64(r.Height)
}

func (r Resolution) IsZero() bool {
	return r.Width == 0 || r.Height == 0
}

func (r Resolution) String() string {
	return fmt.Sprintf("%dx%d", r.Width, r.Height)
}

// ParseResolution parses "WIDTHxHEIGHT".
func ParseResolution(s string) (Resolution, error) {
	parts := strings.Split(strings.TrimSpace(s), "x")
	if len(parts) != 2 {
		return Resolution{}, vxerr.Invalid(vxerr.DomainTimeline, "invalid resolution format %q: expected WIDTHxHEIGHT", s)
	}

	w, err := strconv.ParseUint(parts[0], 10, 32)
	if err != nil {
		return Resolution{}, vxerr.Invalid(vxerr.DomainTimeline, "invalid width in %q", s)
	}
	h, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil {
		return Resolution{}, vxerr.Invalid(vxerr.DomainTimeline, "invalid height in %q", s)
	}

	return Resolution{Width: uint32(w), Height: uint32(h)}, nil
}
