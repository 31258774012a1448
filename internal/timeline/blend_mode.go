package timeline

import "vxtimeline/internal/vxerr"

// BlendMode selects how a clip composites over the tracks below it.
type BlendMode int

const (
	BlendNormal BlendMode = iota
	BlendMultiply
	BlendScreen
	BlendOverlay
	BlendAdd
	BlendSubtract
	BlendDarken
	BlendLighten
)

var blendModeNames = [...]string{
	BlendNormal:   "normal",
	BlendMultiply: "multiply",
	BlendScreen:   "screen",
	BlendOverlay:  "overlay",
	BlendAdd:      "add",
	BlendSubtract: "subtract",
	BlendDarken:   "darken",
	BlendLighten:  "lighten",
}

func (m BlendMode) String() string {
	if m < 0 || int(m) >= len(blendModeNames) {
		return "unknown"
	}
	return blendModeNames[m]
}

// ParseBlendMode is the inverse of String.
func ParseBlendMode(s string) (BlendMode, error) {
	for i, name := range blendModeNames {
		if name == s {
			return BlendMode(i), nil
		}
	}
	return BlendNormal, vxerr.Invalid(vxerr.DomainTimeline, "unknown blend mode %q", s)
}

func (m BlendMode) MarshalText() ([]byte, error) {
	if m.String() == "unknown" {
		return nil, vxerr.Invalid(vxerr.DomainTimeline, "unknown blend mode %d", int(m))
	}
	return []byte(m.String()), nil
}

func (m *BlendMode) UnmarshalText(b []byte) error {
	v, err := ParseBlendMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}
