package dataset

import (
	"sync"
	"time"

	"pbihub/domain/sales"
)

// Info describes where the active dataset came from.
type Info struct {
	Source   string    `json:"source"` // "generated" or the uploaded file name
	Seed     int64     `json:"seed,omitempty"`
	Rows     int       `json:"rows"`
	Version  int       `json:"version"`
	LoadedAt time.Time `json:"loaded_at"`
}

// Current holds the dataset the hub is showing. Records are never mutated in
// place; an upload or regeneration swaps in a new slice.
type Current struct {
	mu      sync.RWMutex
	records []sales.Record
	info    Info
}

// NewCurrent starts with records as version 1.
func NewCurrent(records []sales.Record, source string, seed int64) *Current {
	c := &Current{}
	c.Replace(records, source, seed)
	return c
}

// Replace swaps in a new dataset and returns its info.
func (c *Current) Replace(records []sales.Record, source string, seed int64) Info {
	owned := make([]sales.Record, len(records))
	copy(owned, records)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = owned
	c.info = Info{
		Source:   source,
		Seed:     seed,
		Rows:     len(owned),
		Version:  c.info.Version + 1,
		LoadedAt: time.Now(),
	}
	return c.info
}

// Snapshot returns the active records and their info. The slice is shared
// and must be treated as read-only.
func (c *Current) Snapshot() ([]sales.Record, Info) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.records, c.info
}

// Records is Snapshot without the info.
func (c *Current) Records() []sales.Record {
	records, _ := c.Snapshot()
	return records
}
