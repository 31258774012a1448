package timeline

import (
	"encoding/json"
	"math"
	"testing"

	"vxtimeline/internal/effects"
	"vxtimeline/internal/ids"
	"vxtimeline/internal/types"
	"vxtimeline/internal/vxerr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClip_Validate(t *testing.T) {
	gen := ids.NewSequentialGenerator()

	tests := []struct {
		name    string
		mutate  func(c *Clip)
		wantErr bool
	}{
		{"valid", func(c *Clip) {}, false},
		{"zero length", func(c *Clip) { c.SourceOut = c.SourceIn }, false},
		{"zero speed", func(c *Clip) { c.Speed = 0 }, true},
		{"negative speed", func(c *Clip) { c.Speed = -1 }, true},
		{"nan speed", func(c *Clip) { c.Speed = math.NaN() }, true},
		{"infinite speed", func(c *Clip) { c.Speed = math.Inf(1) }, true},
		{"inverted source", func(c *Clip) { c.SourceIn, c.SourceOut = c.SourceOut, c.SourceIn }, true},
		{"bad effect", func(c *Clip) { c.Effects = effects.Stack{&effects.Opacity{Opacity: 2}} }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClip(gen, 0, 2, 6)
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, vxerr.ErrInvalidParameter)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTrack_ValidateAllowsOverlap(t *testing.T) {
	gen := ids.NewSequentialGenerator()
	track := NewTrack(0, "V1", TrackVideo)
	track.AddClip(newTestClip(gen, 0, 0, 10))
	track.AddClip(newTestClip(gen, 5, 0, 10))

	assert.NoError(t, track.Validate())
}

func TestTrack_ValidateDuplicateClipIDs(t *testing.T) {
	gen := ids.NewSequentialGenerator()
	track := NewTrack(0, "V1", TrackVideo)
	c := newTestClip(gen, 0, 0, 1)
	dup := *c
	track.AddClip(c)
	track.AddClip(&dup)

	err := track.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate clip id")
}

func TestSequence_Validate(t *testing.T) {
	gen := ids.NewSequentialGenerator()

	t.Run("valid", func(t *testing.T) {
		seq := NewSequence("ok", types.FPS24, types.FullHD)
		v := NewTrack(0, "V1", TrackVideo)
		v.AddClip(newTestClip(gen, 0, 0, 1))
		seq.AddTrack(v)
		seq.AddTrack(NewTrack(1, "A1", TrackAudio))
		assert.NoError(t, seq.Validate())
	})

	t.Run("zero settings", func(t *testing.T) {
		seq := NewSequence("bad", types.NewFrameRate(24, 0), types.NewResolution(0, 0))
		err := seq.Validate()
		assert.ErrorIs(t, err, vxerr.ErrInvalidParameter)
		assert.Contains(t, err.Error(), "frame rate")
		assert.Contains(t, err.Error(), "resolution")
	})

	t.Run("duplicate track ids", func(t *testing.T) {
		seq := NewSequence("dup", types.FPS24, types.FullHD)
		seq.AddTrack(NewTrack(4, "V1", TrackVideo))
		seq.AddTrack(NewTrack(4, "A1", TrackAudio))
		err := seq.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate track id 4")
	})

	t.Run("clip on two tracks", func(t *testing.T) {
		seq := NewSequence("dup", types.FPS24, types.FullHD)
		v1 := NewTrack(0, "V1", TrackVideo)
		v2 := NewTrack(1, "V2", TrackVideo)
		c := newTestClip(gen, 0, 0, 1)
		v1.AddClip(c)
		v2.AddClip(c)
		seq.AddTrack(v1)
		seq.AddTrack(v2)
		err := seq.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "appears on tracks 0 and 1")
	})

	t.Run("clip on two tracks sharing an id", func(t *testing.T) {
		seq := NewSequence("dup", types.FPS24, types.FullHD)
		v1 := NewTrack(5, "V1", TrackVideo)
		v2 := NewTrack(5, "V2", TrackVideo)
		c := newTestClip(gen, 0, 0, 1)
		v1.AddClip(c)
		v2.AddClip(c)
		seq.AddTrack(v1)
		seq.AddTrack(v2)
		err := seq.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate track id 5")
		assert.Contains(t, err.Error(), "appears on tracks 5 and 5")
	})

	t.Run("track in wrong list", func(t *testing.T) {
		raw := `{"name":"x","frame_rate":{"numerator":24,"denominator":1},
			"resolution":{"width":1920,"height":1080},
			"video_tracks":[{"id":0,"name":"A1","type":"audio","clips":null}],
			"audio_tracks":null,"playhead":0}`
		var seq Sequence
		require.NoError(t, json.Unmarshal([]byte(raw), &seq))
		assert.Len(t, seq.VideoTracks(), 1, "decoding does not reroute")

		err := seq.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "audio track filed under video tracks")
	})
}
