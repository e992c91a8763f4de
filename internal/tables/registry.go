package tables

import (
	"sync"
	"time"
)

// TableCode is the generated token of one table.
type TableCode struct {
	TableNumber int    `json:"tableNumber"`
	Token       string `json:"token"`
	URL         string `json:"url"`
}

type entry struct {
	codes     []TableCode
	expiresAt time.Time
}

// Registry remembers the last generated codes of each session until the
// session expires.
type Registry struct {
	mu      sync.Mutex
	entries map[string]entry
}

func NewRegistry() *Registry {
	return &Registry{entries: map[string]entry{}}
}

func (r *Registry) Put(sessionID string, codes []TableCode, expiresAt time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	for id, e := range r.entries {
		if now.After(e.expiresAt) {
			delete(r.entries, id)
		}
	}
	r.entries[sessionID] = entry{codes: codes, expiresAt: expiresAt}
}

func (r *Registry) Get(sessionID string) []TableCode {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[sessionID]
	if !ok || time.Now().After(e.expiresAt) {
		return nil
	}
	return e.codes
}

// Find returns the code of table from the session's last generation.
func (r *Registry) Find(sessionID string, table int) (TableCode, bool) {
	for _, code := range r.Get(sessionID) {
		if code.TableNumber == table {
			return code, true
		}
	}
	return TableCode{}, false
}
