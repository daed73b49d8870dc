package service

import (
	"sync"
	"time"
)

// Denylist is the process-wide set of tokens revoked before their natural
// expiry. It is shared by every in-flight request: the logout handler adds
// to it and the auth middleware reads it, so all access goes through the
// lock. Entries survive until Prune observes their embedded expiry, after
// which signature verification alone rejects the token anyway.
type Denylist struct {
	mu      sync.RWMutex
	revoked map[string]time.Time
}

func NewDenylist() *Denylist {
	return &Denylist{revoked: make(map[string]time.Time)}
}

// Add marks the token revoked until expiresAt. Adding the same token twice
// is a no-op in effect.
func (d *Denylist) Add(token string, expiresAt time.Time) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.revoked[token] = expiresAt
}

func (d *Denylist) Contains(token string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.revoked[token]
	return ok
}

// Prune drops entries whose token has expired on its own and reports how
// many were removed.
func (d *Denylist) Prune(now time.Time) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	removed := 0
	for token, expiresAt := range d.revoked {
		if now.After(expiresAt) {
			delete(d.revoked, token)
			removed++
		}
	}
	return removed
}

func (d *Denylist) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.revoked)
}
