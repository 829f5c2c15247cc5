package memory

import (
	"context"
	"sync"
	"time"
)

// TokenDenylist is the in-process fallback used when Redis is not configured.
// Entries are lost on restart and are not shared between replicas.
type TokenDenylist struct {
	mu      sync.Mutex
	entries map[string]time.Time
	now     func() time.Time
}

func NewTokenDenylist() *TokenDenylist {
	return &TokenDenylist{entries: map[string]time.Time{}, now: time.Now}
}

func (d *TokenDenylist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sweepLocked()
	d.entries[tokenID] = d.now().Add(ttl)
	return nil
}

func (d *TokenDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	exp, ok := d.entries[tokenID]
	if !ok {
		return false, nil
	}
	if !d.now().Before(exp) {
		delete(d.entries, tokenID)
		return false, nil
	}
	return true, nil
}

func (d *TokenDenylist) sweepLocked() {
	now := d.now()
	for id, exp := range d.entries {
		if !now.Before(exp) {
			delete(d.entries, id)
		}
	}
}
