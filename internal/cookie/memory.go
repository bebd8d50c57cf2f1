package cookie

import (
	"time"

	"github.com/smallbiznis/trackpoint/internal/clock"
)

type memoryEntry struct {
	value   string
	domain  string
	expires time.Time
}

// MemoryStore is an in-memory Store honoring expiry against an
// injected clock. It backs deterministic unit tests.
type MemoryStore struct {
	clk     clock.Clock
	entries map[string]memoryEntry
}

func NewMemoryStore(clk clock.Clock) *MemoryStore {
	return &MemoryStore{
		clk:     clk,
		entries: make(map[string]memoryEntry),
	}
}

func (s *MemoryStore) Get(name string) (string, bool) {
	entry, ok := s.entries[name]
	if !ok {
		return "", false
	}
	if !s.clk.Now().Before(entry.expires) {
		delete(s.entries, name)
		return "", false
	}
	return entry.value, true
}

func (s *MemoryStore) Set(name, value string, days int, domain string) {
	if bareHost(domain) {
		domain = ""
	}
	s.entries[name] = memoryEntry{
		value:   value,
		domain:  domain,
		expires: s.clk.Now().AddDate(0, 0, days),
	}
}

func (s *MemoryStore) Delete(name, domain string) {
	delete(s.entries, name)
}

// Domain returns the domain attribute a cookie was stored with.
func (s *MemoryStore) Domain(name string) (string, bool) {
	entry, ok := s.entries[name]
	if !ok {
		return "", false
	}
	return entry.domain, true
}
