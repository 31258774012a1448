package timeline

import (
	"encoding/json"
	"math"
	"time"

	"vxtimeline/internal/effects"
	"vxtimeline/internal/ids"
	"vxtimeline/internal/types"
)

// Clip places a range of a source media item onto the timeline.
//
// The timeline duration is always derived from the source range and speed;
// it is never stored. Speed must be positive and SourceOut must not precede
// SourceIn; neither is checked here (see Validate).
type Clip struct {
	id ids.ClipID

	Name        string
	SourceMedia ids.MediaID

	// TimelinePosition is where the clip starts on the timeline.
	TimelinePosition types.Timecode

	// SourceIn and SourceOut bound the used range of the source media.
	SourceIn  types.Timecode
	SourceOut types.Timecode

	// Speed is a multiplier: 2.0 plays twice as fast, 0.5 at half speed.
	Speed     float64
	BlendMode BlendMode
	Effects   effects.Stack
}

// NewClip creates a clip at normal speed with a fresh id from gen.
func NewClip(gen ids.Generator, name string, sourceMedia ids.MediaID, timelinePosition, sourceIn, sourceOut types.Timecode) *Clip {
	return &Clip{
		id:               ids.NewClipID(gen),
		Name:             name,
		SourceMedia:      sourceMedia,
		TimelinePosition: timelinePosition,
		SourceIn:         sourceIn,
		SourceOut:        sourceOut,
		Speed:            1.0,
		BlendMode:        BlendNormal,
	}
}

func (c *Clip) ID() ids.ClipID {
	return c.id
}

// Clone copies the clip under a new id from gen. Effects are deep-copied.
func (c *Clip) Clone(gen ids.Generator) *Clip {
	cp := *c
	cp.id = ids.NewClipID(gen)
	cp.Effects = c.Effects.Clone()
	return &cp
}

// SourceDuration is SourceOut - SourceIn.
func (c *Clip) SourceDuration() time.Duration {
	return c.SourceOut.Sub(c.SourceIn)
}

// TimelineDuration is the source duration divided by speed, rounded to the
// nanosecond.
func (c *Clip) TimelineDuration() time.Duration {
	return time.Duration(math.Round(float64(c.SourceDuration()) / c.Speed))
}

// TimelineEnd is the first instant after the clip.
func (c *Clip) TimelineEnd() types.Timecode {
	return c.TimelinePosition.Add(c.TimelineDuration())
}

// Range is the clip's half-open extent on the timeline.
func (c *Clip) Range() types.TimeRange {
	return types.NewTimeRange(c.TimelinePosition, c.TimelineDuration())
}

// ContainsTime reports whether TimelinePosition <= t < TimelineEnd.
func (c *Clip) ContainsTime(t types.Timecode) bool {
	return t >= c.TimelinePosition && t < c.TimelineEnd()
}

// OverlapsWith reports whether either endpoint of either interval lies inside
// the other. The end points are tested too, so a range that only touches the
// clip at either boundary counts as overlapping.
func (c *Clip) OverlapsWith(r types.TimeRange) bool {
	cr := c.Range()
	return cr.Contains(r.Start) ||
		cr.Contains(r.End()) ||
		r.Contains(cr.Start) ||
		r.Contains(cr.End())
}

// TimelineToSourceTime maps a timeline instant to the source instant a
// decoder should present: SourceIn + (t - TimelinePosition) * Speed.
func (c *Clip) TimelineToSourceTime(t types.Timecode) (types.Timecode, bool) {
	if !c.ContainsTime(t) {
		return 0, false
	}
	offset := t.Sub(c.TimelinePosition)
	sourceOffset := time.Duration(math.Round(float64(offset) * c.Speed))
	return c.SourceIn.Add(sourceOffset), true
}

// SourceToTimelineTime is the inverse mapping. It reports false when s is
// outside [SourceIn, SourceOut).
func (c *Clip) SourceToTimelineTime(s types.Timecode) (types.Timecode, bool) {
	if s < c.SourceIn || s >= c.SourceOut {
		return 0, false
	}
	offset := s.Sub(c.SourceIn)
	return c.TimelinePosition.Add(time.Duration(math.Round(float64(offset) / c.Speed))), true
}

type clipJSON struct {
	ID               ids.ClipID     `json:"id"`
	Name             string         `json:"name"`
	SourceMedia      ids.MediaID    `json:"source_media"`
	TimelinePosition types.Timecode `json:"timeline_position"`
	SourceIn         types.Timecode `json:"source_in"`
	SourceOut        types.Timecode `json:"source_out"`
	Speed            float64        `json:"speed"`
	BlendMode        BlendMode      `json:"blend_mode"`
	Effects          effects.Stack  `json:"effects"`
}

func (c *Clip) MarshalJSON() ([]byte, error) {
	return json.Marshal(clipJSON{
		ID:               c.id,
		Name:             c.Name,
		SourceMedia:      c.SourceMedia,
		TimelinePosition: c.TimelinePosition,
		SourceIn:         c.SourceIn,
		SourceOut:        c.SourceOut,
		Speed:            c.Speed,
		BlendMode:        c.BlendMode,
		Effects:          c.Effects,
	})
}

func (c *Clip) UnmarshalJSON(data []byte) error {
	raw := clipJSON{Speed: 1.0}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*c = Clip{
		id:               raw.ID,
		Name:             raw.Name,
		SourceMedia:      raw.SourceMedia,
		TimelinePosition: raw.TimelinePosition,
		SourceIn:         raw.SourceIn,
		SourceOut:        raw.SourceOut,
		Speed:            raw.Speed,
		BlendMode:        raw.BlendMode,
		Effects:          raw.Effects,
	}
	return nil
}
