package tokenstore

import (
	"sync"
	"time"
)

// RevocationList remembers logged-out token ids until they would have
// expired anyway. In memory only, so revocations do not survive a restart.
type RevocationList struct {
	mu      sync.Mutex
	revoked map[string]time.Time
}

func NewRevocationList() *RevocationList {
	return &RevocationList{revoked: make(map[string]time.Time)}
}

func (r *RevocationList) Revoke(jti string, expiresAt time.Time) {
	if jti == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pruneNoLock(time.Now())
	r.revoked[jti] = expiresAt
}

func (r *RevocationList) IsRevoked(jti string) bool {
	if jti == "" {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.revoked[jti]
	return ok
}

func (r *RevocationList) pruneNoLock(now time.Time) {
	for jti, exp := range r.revoked {
		if now.After(exp) {
			delete(r.revoked, jti)
		}
	}
}
