package timeline

import (
	"encoding/json"
	"slices"

	"vxtimeline/internal/ids"
	"vxtimeline/internal/types"
	"vxtimeline/internal/vxerr"
)

// TrackID is a caller-assigned track number, unique within a sequence by
// convention only.
type TrackID int

// TrackType is the media kind a track carries.
type TrackType int

const (
	TrackVideo TrackType = iota
	TrackAudio
)

func (t TrackType) String() string {
	switch t {
	case TrackVideo:
		return "video"
	case TrackAudio:
		return "audio"
	}
	return "unknown"
}

func ParseTrackType(s string) (TrackType, error) {
	switch s {
	case "video":
		return TrackVideo, nil
	case "audio":
		return TrackAudio, nil
	}
	return TrackVideo, vxerr.Invalid(vxerr.DomainTimeline, "unknown track type %q", s)
}

func (t TrackType) MarshalText() ([]byte, error) {
	if t != TrackVideo && t != TrackAudio {
		return nil, vxerr.Invalid(vxerr.DomainTimeline, "unknown track type %d", int(t))
	}
	return []byte(t.String()), nil
}

func (t *TrackType) UnmarshalText(b []byte) error {
	v, err := ParseTrackType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Track is a lane of clips of one media kind. Clips are kept sorted by
// ascending TimelinePosition after every insertion; overlap between clips is
// allowed and not resolved.
type Track struct {
	ID     TrackID
	Name   string
	Muted  bool
	Locked bool

	trackType TrackType
	clips     []*Clip
}

// NewTrack creates an empty track. The type is fixed for the track's lifetime.
func NewTrack(id TrackID, name string, trackType TrackType) *Track {
	return &Track{
		ID:        id,
		Name:      name,
		trackType: trackType,
	}
}

func (t *Track) Type() TrackType {
	return t.trackType
}

// Clips returns the clips in timeline order. The slice is a copy; the clips
// are shared.
func (t *Track) Clips() []*Clip {
	return slices.Clone(t.clips)
}

func (t *Track) Len() int {
	return len(t.clips)
}

// AddClip inserts c and re-sorts the track. Clips sharing a position keep
// their insertion order.
func (t *Track) AddClip(c *Clip) {
	t.clips = append(t.clips, c)
	t.sortClips()
}

// RemoveClip detaches and returns the clip with the given id.
func (t *Track) RemoveClip(id ids.ClipID) (*Clip, bool) {
	i := slices.IndexFunc(t.clips, func(c *Clip) bool { return c.ID() == id })
	if i < 0 {
		return nil, false
	}
	c := t.clips[i]
	t.clips = slices.Delete(t.clips, i, i+1)
	return c, true
}

// Clip looks up a clip by id.
func (t *Track) Clip(id ids.ClipID) (*Clip, bool) {
	for _, c := range t.clips {
		if c.ID() == id {
			return c, true
		}
	}
	return nil, false
}

// ClipAtTime returns the first clip in track order that contains at. When
// clips overlap, the earliest-positioned one wins.
func (t *Track) ClipAtTime(at types.Timecode) (*Clip, bool) {
	for _, c := range t.clips {
		if c.ContainsTime(at) {
			return c, true
		}
	}
	return nil, false
}

// ClipsInRange returns every clip overlapping r, in track order.
func (t *Track) ClipsInRange(r types.TimeRange) []*Clip {
	var out []*Clip
	for _, c := range t.clips {
		if c.OverlapsWith(r) {
			out = append(out, c)
		}
	}
	return out
}

func (t *Track) sortClips() {
	slices.SortStableFunc(t.clips, func(a, b *Clip) int {
		return a.TimelinePosition.Compare(b.TimelinePosition)
	})
}

type trackJSON struct {
	ID     TrackID   `json:"id"`
	Name   string    `json:"name"`
	Type   TrackType `json:"type"`
	Clips  []*Clip   `json:"clips"`
	Muted  bool      `json:"muted"`
	Locked bool      `json:"locked"`
}

func (t *Track) MarshalJSON() ([]byte, error) {
	return json.Marshal(trackJSON{
		ID:     t.ID,
		Name:   t.Name,
		Type:   t.trackType,
		Clips:  t.clips,
		Muted:  t.Muted,
		Locked: t.Locked,
	})
}

// UnmarshalJSON decodes a track and restores sorted clip order. A null clip
// entry is rejected.
func (t *Track) UnmarshalJSON(data []byte) error {
	var raw trackJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for i, c := range raw.Clips {
		if c == nil {
			return vxerr.Invalid(vxerr.DomainTimeline, "track %d: clip %d is null", raw.ID, i)
		}
	}
	*t = Track{
		ID:        raw.ID,
		Name:      raw.Name,
		Muted:     raw.Muted,
		Locked:    raw.Locked,
		trackType: raw.Type,
		clips:     raw.Clips,
	}
	t.sortClips()
	return nil
}
