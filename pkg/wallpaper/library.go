package wallpaper

import (
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/livelypi/lively/util/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Entry is one saved wallpaper in the library. Kind is stored for
// display only; classification from the reference stays authoritative
// when an entry is turned back into a Descriptor.
type Entry struct {
	ID            string            `json:"id"`
	Reference     string            `json:"reference"`
	Kind          string            `json:"kind"`
	MonitorTarget int               `json:"monitor_target"`
	Properties    map[string]string `json:"properties,omitempty"`
	Enabled       bool              `json:"enabled"`
	AddedAt       time.Time         `json:"added_at"`
}

// Descriptor rebuilds a dispatchable descriptor from the entry.
func (e Entry) Descriptor() (Descriptor, error) {
	opts := []DescriptorOption{
		WithMonitor(e.MonitorTarget),
		WithEnabled(e.Enabled),
	}
	for k, v := range e.Properties {
		opts = append(opts, WithProperty(k, v))
	}
	return NewDescriptor(e.Reference, opts...)
}

// Library is a thread-safe, disk-backed collection of wallpaper entries.
// Mutations schedule a debounced asynchronous save; writes go through a
// temp file and rename so a crash never truncates the store.
type Library struct {
	mu      sync.RWMutex
	entries []Entry
	idSet   map[string]bool
	path    string
	limit   int

	asyncSave bool
	saveTimer *time.Timer
	saveMu    sync.Mutex

	// Testing hook
	saveFunc func()

	debounceDuration time.Duration
}

// NewLibrary creates a library persisted at path. A limit of zero or
// less means unlimited.
func NewLibrary(path string, limit int) *Library {
	return &Library{
		entries:          make([]Entry, 0),
		idSet:            make(map[string]bool),
		path:             path,
		limit:            limit,
		asyncSave:        true,
		debounceDuration: LibrarySaveDebounce,
	}
}

// SetDebounceDuration adjusts the save debounce window.
func (l *Library) SetDebounceDuration(d time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.debounceDuration = d
}

// SetAsyncSave toggles debounced saving; disabled, every mutation saves
// synchronously before returning.
func (l *Library) SetAsyncSave(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.asyncSave = enabled
}

// Load reads the library file. A missing file is an empty library.
func (l *Library) Load() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.path == "" {
		return nil
	}

	file, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	if err := json.NewDecoder(file).Decode(&l.entries); err != nil {
		return err
	}

	l.idSet = make(map[string]bool)
	for _, e := range l.entries {
		l.idSet[e.ID] = true
	}
	return nil
}

// Add appends a new entry built from the descriptor and returns it.
// When the library exceeds its limit, the oldest entries are pruned.
func (l *Library) Add(desc Descriptor) Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry := Entry{
		ID:            uuid.NewString(),
		Reference:     desc.Reference,
		Kind:          desc.Kind.String(),
		MonitorTarget: desc.MonitorTarget,
		Properties:    desc.Properties,
		Enabled:       desc.Enabled,
		AddedAt:       time.Now(),
	}
	l.entries = append(l.entries, entry)
	l.idSet[entry.ID] = true

	if l.limit > 0 && len(l.entries) > l.limit {
		excess := len(l.entries) - l.limit
		for _, pruned := range l.entries[:excess] {
			delete(l.idSet, pruned.ID)
		}
		l.entries = append([]Entry(nil), l.entries[excess:]...)
	}

	l.scheduleSaveLocked()
	return entry
}

// Remove deletes the entry with the given id.
func (l *Library) Remove(id string) (Entry, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, e := range l.entries {
		if e.ID == id {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			delete(l.idSet, id)
			l.scheduleSaveLocked()
			return e, true
		}
	}
	return Entry{}, false
}

// Get returns the entry with the given id.
func (l *Library) Get(id string) (Entry, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, e := range l.entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// Contains reports whether an entry with the given id exists.
func (l *Library) Contains(id string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.idSet[id]
}

// Count returns the number of entries.
func (l *Library) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// List returns a copy of all entries in insertion order.
func (l *Library) List() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	res := make([]Entry, len(l.entries))
	copy(res, l.entries)
	return res
}

// Clear removes every entry.
func (l *Library) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = make([]Entry, 0)
	l.idSet = make(map[string]bool)
	l.scheduleSaveLocked()
}

// scheduleSaveLocked handles persistence.
// CALLER MUST HOLD l.mu.Lock()
func (l *Library) scheduleSaveLocked() {
	if !l.asyncSave {
		snapshot := make([]Entry, len(l.entries))
		copy(snapshot, l.entries)
		l.saveInternal(snapshot)
		return
	}

	l.saveMu.Lock()
	defer l.saveMu.Unlock()

	if l.saveTimer != nil {
		l.saveTimer.Stop()
	}
	l.saveTimer = time.AfterFunc(l.debounceDuration, func() {
		l.Save()
	})
}

// Save writes the current entries to disk immediately.
func (l *Library) Save() {
	l.mu.RLock()
	snapshot := make([]Entry, len(l.entries))
	copy(snapshot, l.entries)
	l.mu.RUnlock()

	l.saveInternal(snapshot)
}

func (l *Library) saveInternal(entries []Entry) {
	if l.saveFunc != nil {
		l.saveFunc()
	}

	if l.path == "" {
		return
	}

	tmp := l.path + ".tmp"
	file, err := os.Create(tmp)
	if err != nil {
		log.Printf("Library: Failed to save: %v", err)
		return
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(entries); err != nil {
		file.Close()
		log.Printf("Library: Failed to encode: %v", err)
		return
	}
	file.Close()

	if err := os.Rename(tmp, l.path); err != nil {
		log.Printf("Library: Failed to rename: %v", err)
	}
}
