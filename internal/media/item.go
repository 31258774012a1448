package media

import (
	"os"
	"path/filepath"
	"time"

	"vxtimeline/internal/ids"
	"vxtimeline/internal/types"
)

// Type is the kind of a source media file.
type Type string

const (
	TypeVideo Type = "video"
	TypeAudio Type = "audio"
	TypeImage Type = "image"
)

// Metadata describes a media file as read at import time. Fields the import
// could not determine are nil.
type Metadata struct {
	// Duration in seconds; nil for images.
	Duration   *float64          `json:"duration,omitempty"`
	Resolution *types.Resolution `json:"resolution,omitempty"`
	FrameRate  *types.FrameRate  `json:"frame_rate,omitempty"`
	Codec      string            `json:"codec,omitempty"`
	SampleRate uint32            `json:"sample_rate,omitempty"` // Hz
	Bitrate    uint64            `json:"bitrate,omitempty"`     // bits per second
	FileSize   uint64            `json:"file_size"`
}

// Item is one imported source file.
type Item struct {
	ID            ids.MediaID `json:"id"`
	Name          string      `json:"name"`
	Path          string      `json:"path"`
	Type          Type        `json:"type"`
	Metadata      Metadata    `json:"metadata"`
	ThumbnailPath string      `json:"thumbnail_path,omitempty"`
	ImportedAt    time.Time   `json:"imported_at"`
}

// NewItem creates an item named after the file at path.
func NewItem(gen ids.Generator, path string, mediaType Type) *Item {
	name := filepath.Base(path)
	if path == "" || name == "." || name == string(filepath.Separator) {
		name = "Untitled"
	}

	return &Item{
		ID:         ids.NewMediaID(gen),
		Name:       name,
		Path:       path,
		Type:       mediaType,
		ImportedAt: time.Now().UTC(),
	}
}

// Exists reports whether the file is still on disk.
func (i *Item) Exists() bool {
	_, err := os.Stat(i.Path)
	return err == nil
}

// DurationSeconds returns the imported duration, if any.
func (i *Item) DurationSeconds() (float64, bool) {
	if i.Metadata.Duration == nil {
		return 0, false
	}
	return *i.Metadata.Duration, true
}

// DurationTimecode is the imported duration as a Timecode.
func (i *Item) DurationTimecode() (types.Timecode, bool) {
	d, ok := i.DurationSeconds()
	if !ok {
		return types.Zero, false
	}
	return types.FromSeconds(d), true
}
