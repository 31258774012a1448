package timeline

import (
	"errors"
	"fmt"
	"math"

	"vxtimeline/internal/ids"
	"vxtimeline/internal/vxerr"
)

// Validate rejects clips whose derived duration is undefined: non-positive or
// non-finite speed, or SourceOut before SourceIn. Queries never call it.
func (c *Clip) Validate() error {
	var errs []error
	if !(c.Speed > 0) || math.IsInf(c.Speed, 0) {
		errs = append(errs, vxerr.Invalid(vxerr.DomainTimeline, "clip %s: speed must be positive and finite, got %v", c.id, c.Speed))
	}
	if c.SourceOut < c.SourceIn {
		errs = append(errs, vxerr.Invalid(vxerr.DomainTimeline, "clip %s: source out %s precedes source in %s", c.id, c.SourceOut, c.SourceIn))
	}
	if err := c.Effects.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("clip %s: %w", c.id, err))
	}
	return errors.Join(errs...)
}

// Validate checks every clip and rejects duplicate clip ids. Overlapping clips
// are not an error.
func (t *Track) Validate() error {
	var errs []error
	if t.trackType != TrackVideo && t.trackType != TrackAudio {
		errs = append(errs, vxerr.Invalid(vxerr.DomainTimeline, "track %d: unknown track type %d", t.ID, int(t.trackType)))
	}
	seen := make(map[ids.ClipID]struct{}, len(t.clips))
	for _, c := range t.clips {
		if err := c.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("track %d: %w", t.ID, err))
		}
		if _, dup := seen[c.ID()]; dup {
			errs = append(errs, vxerr.Invalid(vxerr.DomainTimeline, "track %d: duplicate clip id %s", t.ID, c.ID()))
		}
		seen[c.ID()] = struct{}{}
	}
	return errors.Join(errs...)
}

// Validate checks sequence settings, every track, list membership by type,
// and id uniqueness across all tracks.
func (s *Sequence) Validate() error {
	var errs []error
	if s.FrameRate.IsZero() {
		errs = append(errs, vxerr.Invalid(vxerr.DomainTimeline, "sequence %q: frame rate %s has a zero term", s.Name, s.FrameRate))
	}
	if s.Resolution.IsZero() {
		errs = append(errs, vxerr.Invalid(vxerr.DomainTimeline, "sequence %q: resolution %s has a zero dimension", s.Name, s.Resolution))
	}

	check := func(tracks []*Track, want TrackType) {
		for _, t := range tracks {
			if t.trackType != want {
				errs = append(errs, vxerr.Invalid(vxerr.DomainTimeline, "track %d: %s track filed under %s tracks", t.ID, t.trackType, want))
			}
		}
	}
	check(s.videoTracks, TrackVideo)
	check(s.audioTracks, TrackAudio)

	trackIDs := make(map[TrackID]struct{})
	clipOwner := make(map[ids.ClipID]*Track)
	for _, t := range s.Tracks() {
		if _, dup := trackIDs[t.ID]; dup {
			errs = append(errs, vxerr.Invalid(vxerr.DomainTimeline, "duplicate track id %d", t.ID))
		}
		trackIDs[t.ID] = struct{}{}

		if err := t.Validate(); err != nil {
			errs = append(errs, err)
		}
		for _, c := range t.clips {
			if owner, dup := clipOwner[c.ID()]; dup && owner != t {
				errs = append(errs, vxerr.Invalid(vxerr.DomainTimeline, "clip id %s appears on tracks %d and %d", c.ID(), owner.ID, t.ID))
			}
			clipOwner[c.ID()] = t
		}
	}
	return errors.Join(errs...)
}
