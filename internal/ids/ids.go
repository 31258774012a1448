package ids

import (
	"encoding/binary"
	"sync"

	"github.com/google/uuid"
)

// Generator issues the UUIDs behind every ClipID and MediaID. Constructors
// take one explicitly so tests can supply a deterministic sequence.
type Generator interface {
	NewUUID() uuid.UUID
}

// UUIDGenerator issues random (version 4) UUIDs.
type UUIDGenerator struct{}

func (UUIDGenerator) NewUUID() uuid.UUID {
	return uuid.New()
}

// Default is the random generator used by production callers.
var Default Generator = UUIDGenerator{}

// SequentialGenerator issues UUIDs whose low 8 bytes count up from 1. It is
// safe for concurrent use.
type SequentialGenerator struct {
	mu   sync.Mutex
	next uint64
}

func NewSequentialGenerator() *SequentialGenerator {
	return &SequentialGenerator{next: 1}
}

func (g *SequentialGenerator) NewUUID() uuid.UUID {
	g.mu.Lock()
	n := g.next
	g.next++
	g.mu.Unlock()

	var u uuid.UUID
	binary.BigEndian.PutUint64(u[8:], n)
	return u
}

// ClipID identifies a clip instance.
type ClipID uuid.UUID

// MediaID identifies a source media item. It is opaque to the timeline and
// resolved by the media store.
type MediaID uuid.UUID

func NewClipID(g Generator) ClipID {
	return ClipID(g.NewUUID())
}

func NewMediaID(g Generator) MediaID {
	return MediaID(g.NewUUID())
}

func ParseClipID(s string) (ClipID, error) {
	u, err := uuid.Parse(s)
	return ClipID(u), err
}

func ParseMediaID(s string) (MediaID, error) {
	u, err := uuid.Parse(s)
	return MediaID(u), err
}

func (id ClipID) String() string { return uuid.UUID(id).String() }

func (id ClipID) IsZero() bool { return id == ClipID(uuid.Nil) }

func (id ClipID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

func (id *ClipID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }

func (id MediaID) String() string { return uuid.UUID(id).String() }

func (id MediaID) IsZero() bool { return id == MediaID(uuid.Nil) }

func (id MediaID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

func (id *MediaID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }
