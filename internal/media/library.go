package media

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strings"
	"sync"

	"vxtimeline/internal/ids"
	"vxtimeline/internal/logger"
	"vxtimeline/internal/vxerr"
)

// Library is a thread-safe keyed store of imported media items. Clips refer
// to its entries by MediaID only.
type Library struct {
	mutex  sync.RWMutex
	items  map[ids.MediaID]*Item
	logger logger.Logger
}

// NewLibrary creates an empty library.
func NewLibrary(log logger.Logger) *Library {
	return &Library{
		items:  make(map[ids.MediaID]*Item),
		logger: log,
	}
}

// LoadLibrary reads a JSON array of items from path into a new library.
// Null entries, items without an id and repeated ids are rejected.
func LoadLibrary(path string, log logger.Logger) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read media library at %s: %w", path, err)
	}

	var items []*Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, vxerr.Wrap(vxerr.DomainMedia, err, "failed to decode media library %s", path)
	}

	lib := NewLibrary(log)
	for i, item := range items {
		switch {
		case item == nil:
			return nil, vxerr.Invalid(vxerr.DomainMedia, "library %s: entry %d is null", path, i)
		case item.ID.IsZero():
			return nil, vxerr.Invalid(vxerr.DomainMedia, "library %s: entry %d (%s) has no id", path, i, item.Name)
		case lib.HasMedia(item.ID):
			return nil, vxerr.Invalid(vxerr.DomainMedia, "library %s: duplicate media id %s", path, item.ID)
		}
		lib.Add(item)
	}
	log.Infof("Loaded %d media items from %s", lib.Count(), path)
	return lib, nil
}

// Add stores item, replacing any entry with the same id, and returns its id.
func (l *Library) Add(item *Item) ids.MediaID {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.items[item.ID] = item
	l.logger.Debugf("Added media %s (%s) to library", item.ID, item.Name)
	return item.ID
}

// Remove detaches and returns the item with id.
func (l *Library) Remove(id ids.MediaID) (*Item, bool) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	item, found := l.items[id]
	if found {
		delete(l.items, id)
		l.logger.Debugf("Removed media %s from library", id)
	}
	return item, found
}

// Get retrieves an item by id.
func (l *Library) Get(id ids.MediaID) (*Item, bool) {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	item, found := l.items[id]
	return item, found
}

// HasMedia lets the library act as a timeline.MediaResolver.
func (l *Library) HasMedia(id ids.MediaID) bool {
	_, found := l.Get(id)
	return found
}

// Items returns every item, ordered by name then id for stable output.
func (l *Library) Items() []*Item {
	return l.filter(func(*Item) bool { return true })
}

// ByType returns the items of one media type.
func (l *Library) ByType(t Type) []*Item {
	return l.filter(func(i *Item) bool { return i.Type == t })
}

// Search matches a case-insensitive substring of the item name.
func (l *Library) Search(query string) []*Item {
	q := strings.ToLower(query)
	return l.filter(func(i *Item) bool {
		return strings.Contains(strings.ToLower(i.Name), q)
	})
}

func (l *Library) Count() int {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	return len(l.items)
}

func (l *Library) Clear() {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.items = make(map[ids.MediaID]*Item)
	l.logger.Infof("Cleared media library")
}

// VerifyFiles returns the ids of items whose file no longer exists.
func (l *Library) VerifyFiles() []ids.MediaID {
	var missing []ids.MediaID
	for _, item := range l.Items() {
		if !item.Exists() {
			l.logger.Warnf("Media file missing for %s: %s", item.ID, item.Path)
			missing = append(missing, item.ID)
		}
	}
	return missing
}

func (l *Library) filter(keep func(*Item) bool) []*Item {
	l.mutex.RLock()
	out := make([]*Item, 0, len(l.items))
	for _, item := range l.items {
		if keep(item) {
			out = append(out, item)
		}
	}
	l.mutex.RUnlock()

	slices.SortFunc(out, func(a, b *Item) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.ID.String(), b.ID.String())
	})
	return out
}
