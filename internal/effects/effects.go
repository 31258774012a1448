// Package effects holds the data-only effect variants attached to clips.
// Processing them is the renderer's job.
package effects

import (
	"errors"
	"math"

	"vxtimeline/internal/vxerr"
)

// Kind is the wire tag of an effect variant.
type Kind string

const (
	KindTransform    Kind = "transform"
	KindOpacity      Kind = "opacity"
	KindColorCorrect Kind = "color_correct"
	KindBlur         Kind = "blur"
)

// Effect is one entry in a clip's effect stack.
type Effect interface {
	Kind() Kind
	// Name is the human-readable label.
	Name() string
	// Validate reports parameters outside their documented range.
	Validate() error
}

// Transform positions, scales and rotates a clip.
type Transform struct {
	PositionX float32 `json:"position_x"`
	PositionY float32 `json:"position_y"`
	ScaleX    float32 `json:"scale_x"`
	ScaleY    float32 `json:"scale_y"`
	Rotation  float32 `json:"rotation"` // degrees
}

func NewTransform() *Transform {
	return &Transform{ScaleX: 1, ScaleY: 1}
}

func (*Transform) Kind() Kind   { return KindTransform }
func (*Transform) Name() string { return "Transform" }

func (e *Transform) Validate() error {
	if !finite(e.PositionX, e.PositionY, e.ScaleX, e.ScaleY, e.Rotation) {
		return vxerr.Invalid(vxerr.DomainEffect, "transform parameters must be finite")
	}
	return nil
}

// Opacity scales clip alpha, 0 to 1.
type Opacity struct {
	Opacity float32 `json:"opacity"`
}

func NewOpacity() *Opacity {
	return &Opacity{Opacity: 1}
}

func (*Opacity) Kind() Kind   { return KindOpacity }
func (*Opacity) Name() string { return "Opacity" }

func (e *Opacity) Validate() error {
	return inRange("opacity", e.Opacity, 0, 1)
}

// ColorCorrect adjusts brightness, contrast, saturation and hue.
type ColorCorrect struct {
	Brightness float32 `json:"brightness"` // -1 to 1
	Contrast   float32 `json:"contrast"`   // -1 to 1
	Saturation float32 `json:"saturation"` // 0 to 2
	Hue        float32 `json:"hue"`        // -180 to 180 degrees
}

func NewColorCorrect() *ColorCorrect {
	return &ColorCorrect{Saturation: 1}
}

func (*ColorCorrect) Kind() Kind   { return KindColorCorrect }
func (*ColorCorrect) Name() string { return "Color Correction" }

func (e *ColorCorrect) Validate() error {
	return errors.Join(
		inRange("brightness", e.Brightness, -1, 1),
		inRange("contrast", e.Contrast, -1, 1),
		inRange("saturation", e.Saturation, 0, 2),
		inRange("hue", e.Hue, -180, 180),
	)
}

// Blur is a radius in pixels.
type Blur struct {
	Radius float32 `json:"radius"`
}

func NewBlur() *Blur {
	return &Blur{Radius: 5}
}

func (*Blur) Kind() Kind   { return KindBlur }
func (*Blur) Name() string { return "Blur" }

func (e *Blur) Validate() error {
	if !finite(e.Radius) || e.Radius < 0 {
		return vxerr.Invalid(vxerr.DomainEffect, "blur radius must be >= 0, got %v", e.Radius)
	}
	return nil
}

// New returns the default-valued effect for kind.
func New(kind Kind) (Effect, error) {
	switch kind {
	case KindTransform:
		return NewTransform(), nil
	case KindOpacity:
		return NewOpacity(), nil
	case KindColorCorrect:
		return NewColorCorrect(), nil
	case KindBlur:
		return NewBlur(), nil
	}
	return nil, vxerr.Effect("unknown effect type %q", kind)
}

func inRange(name string, v, lo, hi float32) error {
	if !finite(v) || v < lo || v > hi {
		return vxerr.Invalid(vxerr.DomainEffect, "%s must be within [%v, %v], got %v", name, lo, hi, v)
	}
	return nil
}

func finite(vs ...float32) bool {
	for _, v := range vs {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}
