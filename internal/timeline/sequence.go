package timeline

import (
	"encoding/json"
	"slices"

	"vxtimeline/internal/ids"
	"vxtimeline/internal/types"
	"vxtimeline/internal/vxerr"
)

// MediaResolver answers whether a media id exists in some external store.
type MediaResolver interface {
	HasMedia(id ids.MediaID) bool
}

// Sequence is the composition root: video and audio tracks sharing a frame
// rate, resolution and playhead.
//
// Video track order is z-order: the first track is the bottom of the
// compositing stack. Sequence does no locking; callers that share one across
// goroutines must synchronize.
type Sequence struct {
	Name       string
	FrameRate  types.FrameRate
	Resolution types.Resolution

	// Playhead is set by playback callers and not checked against Duration.
	Playhead types.Timecode

	videoTracks []*Track
	audioTracks []*Track
}

func NewSequence(name string, frameRate types.FrameRate, resolution types.Resolution) *Sequence {
	return &Sequence{
		Name:       name,
		FrameRate:  frameRate,
		Resolution: resolution,
		Playhead:   types.Zero,
	}
}

// AddTrack appends t to the video or audio list according to its type.
func (s *Sequence) AddTrack(t *Track) {
	switch t.Type() {
	case TrackVideo:
		s.videoTracks = append(s.videoTracks, t)
	case TrackAudio:
		s.audioTracks = append(s.audioTracks, t)
	}
}

func (s *Sequence) VideoTracks() []*Track {
	return slices.Clone(s.videoTracks)
}

func (s *Sequence) AudioTracks() []*Track {
	return slices.Clone(s.audioTracks)
}

// Tracks returns video tracks followed by audio tracks.
func (s *Sequence) Tracks() []*Track {
	return slices.Concat(s.videoTracks, s.audioTracks)
}

// GetTrack searches video tracks then audio tracks; the first id match wins.
func (s *Sequence) GetTrack(id TrackID) (*Track, bool) {
	for _, t := range s.videoTracks {
		if t.ID == id {
			return t, true
		}
	}
	for _, t := range s.audioTracks {
		if t.ID == id {
			return t, true
		}
	}
	return nil, false
}

// AllClips returns every clip, track by track, video first.
func (s *Sequence) AllClips() []*Clip {
	var out []*Clip
	for _, t := range s.Tracks() {
		out = append(out, t.clips...)
	}
	return out
}

// Duration is the latest TimelineEnd over all clips, or zero when empty.
func (s *Sequence) Duration() types.Timecode {
	end := types.Zero
	for _, c := range s.AllClips() {
		if e := c.TimelineEnd(); e > end {
			end = e
		}
	}
	return end
}

// VideoClipsAtTime returns at most one clip per video track covering t, in
// track order. The result is the compositing stack, bottom first.
func (s *Sequence) VideoClipsAtTime(t types.Timecode) []*Clip {
	return clipsAtTime(s.videoTracks, t)
}

// AudioClipsAtTime is the audio counterpart of VideoClipsAtTime.
func (s *Sequence) AudioClipsAtTime(t types.Timecode) []*Clip {
	return clipsAtTime(s.audioTracks, t)
}

func clipsAtTime(tracks []*Track, t types.Timecode) []*Clip {
	var out []*Clip
	for _, track := range tracks {
		if c, ok := track.ClipAtTime(t); ok {
			out = append(out, c)
		}
	}
	return out
}

// MissingMedia lists the clips whose source media the resolver does not know.
func (s *Sequence) MissingMedia(r MediaResolver) []ids.ClipID {
	var missing []ids.ClipID
	for _, c := range s.AllClips() {
		if !r.HasMedia(c.SourceMedia) {
			missing = append(missing, c.ID())
		}
	}
	return missing
}

type sequenceJSON struct {
	Name        string           `json:"name"`
	FrameRate   types.FrameRate  `json:"frame_rate"`
	Resolution  types.Resolution `json:"resolution"`
	VideoTracks []*Track         `json:"video_tracks"`
	AudioTracks []*Track         `json:"audio_tracks"`
	Playhead    types.Timecode   `json:"playhead"`
}

func (s *Sequence) MarshalJSON() ([]byte, error) {
	return json.Marshal(sequenceJSON{
		Name:        s.Name,
		FrameRate:   s.FrameRate,
		Resolution:  s.Resolution,
		VideoTracks: s.videoTracks,
		AudioTracks: s.audioTracks,
		Playhead:    s.Playhead,
	})
}

// UnmarshalJSON keeps both track lists exactly as encoded. A track filed
// under the wrong list is reported by Validate rather than moved; a null
// track entry is rejected here.
func (s *Sequence) UnmarshalJSON(data []byte) error {
	var raw sequenceJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if err := rejectNullTracks("video_tracks", raw.VideoTracks); err != nil {
		return err
	}
	if err := rejectNullTracks("audio_tracks", raw.AudioTracks); err != nil {
		return err
	}
	*s = Sequence{
		Name:        raw.Name,
		FrameRate:   raw.FrameRate,
		Resolution:  raw.Resolution,
		Playhead:    raw.Playhead,
		videoTracks: raw.VideoTracks,
		audioTracks: raw.AudioTracks,
	}
	return nil
}

func rejectNullTracks(list string, tracks []*Track) error {
	for i, t := range tracks {
		if t == nil {
			return vxerr.Invalid(vxerr.DomainTimeline, "%s entry %d is null", list, i)
		}
	}
	return nil
}
