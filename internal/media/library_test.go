package media

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"

	"vxtimeline/internal/ids"
	"vxtimeline/internal/timeline"
	"vxtimeline/internal/types"
	"vxtimeline/internal/vxerr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockLogger is a no-op logger for testing purposes.
type mockLogger struct{}

func (m *mockLogger) Debugf(format string, v ...interface{}) {}
func (m *mockLogger) Infof(format string, v ...interface{})  {}
func (m *mockLogger) Warnf(format string, v ...interface{})  {}
func (m *mockLogger) Errorf(format string, v ...interface{}) {}

var _ timeline.MediaResolver = (*Library)(nil)

func TestNewItem(t *testing.T) {
	gen := ids.NewSequentialGenerator()

	item := NewItem(gen, filepath.Join("footage", "beach.mov"), TypeVideo)
	assert.Equal(t, "beach.mov", item.Name)
	assert.False(t, item.ImportedAt.IsZero())

	_, ok := item.DurationSeconds()
	assert.False(t, ok)

	d := 12.5
	item.Metadata.Duration = &d
	tc, ok := item.DurationTimecode()
	require.True(t, ok)
	assert.Equal(t, types.FromSeconds(12.5), tc)

	assert.Equal(t, "Untitled", NewItem(gen, "", TypeImage).Name)
}

func TestLibrary_AddRemove(t *testing.T) {
	lib := NewLibrary(&mockLogger{})
	item := NewItem(ids.NewSequentialGenerator(), "video.mp4", TypeVideo)

	id := lib.Add(item)
	assert.Equal(t, 1, lib.Count())
	got, ok := lib.Get(id)
	require.True(t, ok)
	assert.Same(t, item, got)
	assert.True(t, lib.HasMedia(id))

	removed, ok := lib.Remove(id)
	require.True(t, ok)
	assert.Same(t, item, removed)
	assert.Equal(t, 0, lib.Count())

	_, ok = lib.Remove(id)
	assert.False(t, ok)
	assert.False(t, lib.HasMedia(id))
}

func TestLibrary_FilterByType(t *testing.T) {
	gen := ids.NewSequentialGenerator()
	lib := NewLibrary(&mockLogger{})
	lib.Add(NewItem(gen, "video1.mp4", TypeVideo))
	lib.Add(NewItem(gen, "audio1.mp3", TypeAudio))
	lib.Add(NewItem(gen, "video2.mov", TypeVideo))
	lib.Add(NewItem(gen, "image1.png", TypeImage))

	assert.Len(t, lib.ByType(TypeVideo), 2)
	assert.Len(t, lib.ByType(TypeAudio), 1)
	assert.Len(t, lib.ByType(TypeImage), 1)
	assert.Len(t, lib.Items(), 4)

	lib.Clear()
	assert.Empty(t, lib.Items())
}

func TestLibrary_Search(t *testing.T) {
	gen := ids.NewSequentialGenerator()
	lib := NewLibrary(&mockLogger{})
	lib.Add(NewItem(gen, "vacation_2024.mp4", TypeVideo))
	lib.Add(NewItem(gen, "interview.mp4", TypeVideo))
	lib.Add(NewItem(gen, "Vacation_audio.mp3", TypeAudio))

	results := lib.Search("VACATION")
	require.Len(t, results, 2)
	assert.Equal(t, "Vacation_audio.mp3", results[0].Name, "results are sorted by name")
	assert.Empty(t, lib.Search("wedding"))
}

func TestLibrary_VerifyFiles(t *testing.T) {
	dir := t.TempDir()
	present := filepath.Join(dir, "present.wav")
	require.NoError(t, os.WriteFile(present, []byte("RIFF"), 0o644))

	gen := ids.NewSequentialGenerator()
	lib := NewLibrary(&mockLogger{})
	lib.Add(NewItem(gen, present, TypeAudio))
	gone := lib.Add(NewItem(gen, filepath.Join(dir, "gone.wav"), TypeAudio))

	assert.Equal(t, []ids.MediaID{gone}, lib.VerifyFiles())
}

func TestLibrary_ResolvesSequenceMedia(t *testing.T) {
	gen := ids.NewSequentialGenerator()
	lib := NewLibrary(&mockLogger{})
	imported := lib.Add(NewItem(gen, "a.mov", TypeVideo))

	seq := timeline.NewSequence("main", types.FPS24, types.FullHD)
	track := timeline.NewTrack(0, "V1", timeline.TrackVideo)
	seq.AddTrack(track)
	known := timeline.NewClip(gen, "known", imported, types.Zero, types.Zero, types.FromSeconds(1))
	orphan := timeline.NewClip(gen, "orphan", ids.NewMediaID(gen), types.FromSeconds(1), types.Zero, types.FromSeconds(1))
	track.AddClip(known)
	track.AddClip(orphan)

	assert.Equal(t, []ids.ClipID{orphan.ID()}, seq.MissingMedia(lib))
}

func writeLibrary(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "library.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadLibrary(t *testing.T) {
	gen := ids.NewSequentialGenerator()
	d := 4.0
	clip := NewItem(gen, "clip.mov", TypeVideo)
	clip.Metadata.Duration = &d
	res := types.FullHD
	clip.Metadata.Resolution = &res
	still := NewItem(gen, "still.png", TypeImage)

	data, err := json.Marshal([]*Item{clip, still})
	require.NoError(t, err)

	lib, err := LoadLibrary(writeLibrary(t, string(data)), &mockLogger{})
	require.NoError(t, err)
	assert.Equal(t, 2, lib.Count())

	got, ok := lib.Get(clip.ID)
	require.True(t, ok)
	assert.Equal(t, "clip.mov", got.Name)
	tc, ok := got.DurationTimecode()
	require.True(t, ok)
	assert.Equal(t, types.FromSeconds(4), tc)
	assert.True(t, lib.HasMedia(still.ID))
}

func TestLoadLibrary_Rejects(t *testing.T) {
	const a = `{"id":"00000000-0000-0000-0000-00000000000a","name":"a.mov","type":"video","metadata":{"file_size":0}}`
	tests := []struct {
		name    string
		body    string
		want    string
		invalid bool
	}{
		{"null entry", `[` + a + `,null]`, "entry 1 is null", true},
		{"missing id", `[{"name":"b.mov","type":"video"}]`, "entry 0 (b.mov) has no id", true},
		{"repeated id", `[` + a + `,` + a + `]`, "duplicate media id 00000000-0000-0000-0000-00000000000a", true},
		{"not an array", `{"items":[]}`, "failed to decode media library", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadLibrary(writeLibrary(t, tt.body), &mockLogger{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			d, ok := vxerr.DomainOf(err)
			assert.True(t, ok)
			assert.Equal(t, vxerr.DomainMedia, d)
			if tt.invalid {
				assert.ErrorIs(t, err, vxerr.ErrInvalidParameter)
			}
		})
	}

	_, err := LoadLibrary(filepath.Join(t.TempDir(), "absent.json"), &mockLogger{})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLibrary_ConcurrentAccess(t *testing.T) {
	gen := ids.NewSequentialGenerator()
	lib := NewLibrary(&mockLogger{})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			lib.Add(NewItem(gen, "clip_"+strconv.Itoa(i)+".mp4", TypeVideo))
		}(i)
		go func() {
			defer wg.Done()
			lib.Search("clip")
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, lib.Count())
}
